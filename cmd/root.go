/*
Package cmd implements the cinematch command-line interface: the A2A server,
the MCP tool server and a few commands for trying the tools from a terminal.
*/
package cmd

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the service,
which allows a developer to easily override the config file.
*/
//go:embed cfg/*
var embedded embed.FS

var (
	projectName = "cinematch"
	cfgFile     string
	logLevel    string

	rootCmd = &cobra.Command{
		Use:   "cinematch",
		Short: "A mood-based movie recommendation agent",
		Long:  longRoot,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setLogLevel()
		},
	}
)

/*
Execute is the main entry point for the cinematch CLI.
*/
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file (default is $HOME/."+projectName+"/config.yml)",
	)

	rootCmd.PersistentFlags().StringVar(
		&logLevel,
		"log-level",
		"",
		"log level (debug, info, warn, error), overrides log.level",
	)
}

/*
initConfig writes the default config file to the user's home directory if it
doesn't exist, then reads it. Any key can be overridden from the environment
with a CINEMATCH_ prefix, e.g. CINEMATCH_SERVER_MODE=sync.
*/
func initConfig() {
	var err error

	if err = writeConfig(); err != nil {
		log.Fatal("failed to write config", "error", err)
	}

	viper.SetConfigName(strings.TrimSuffix(cfgFile, ".yml"))
	viper.SetConfigType("yml")

	home, _ := os.UserHomeDir()
	viper.AddConfigPath(home + "/." + projectName)

	viper.SetEnvPrefix(strings.ToUpper(projectName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		log.Fatal("failed to read config", "error", err)
	}
}

func setLogLevel() {
	level := logLevel
	if level == "" {
		level = viper.GetString("log.level")
	}

	if level == "" {
		return
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		log.Warn("unknown log level, keeping default", "level", level)
		return
	}

	log.SetLevel(parsed)
}

/*
writeConfig writes the embedded default config to the user's home directory.
An existing file is left alone.
*/
func writeConfig() (err error) {
	var (
		home, _ = os.UserHomeDir()
		fh      fs.File
		buf     bytes.Buffer
	)

	configDir := home + "/." + projectName
	if !CheckFileExists(configDir) {
		if err = os.MkdirAll(configDir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	fullPath := configDir + "/" + cfgFile

	if CheckFileExists(fullPath) {
		return nil
	}

	if fh, err = embedded.Open("cfg/config.yml"); err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}
	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Info("wrote config file", "path", fullPath)

	return nil
}

func CheckFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

/*
longRoot contains the detailed help text for the root command.
*/
var longRoot = `
cinematch is an A2A agent that recommends movies for the mood you are in.

It can run as a Telex webhook agent that acknowledges requests immediately and
pushes the result to a callback later, or as a plain synchronous A2A agent.
Its tools can also be served on their own over MCP.

Secrets are read from the environment:
  GEMINI_API_KEY     agent model and default mood classifier
  TMDB_API_KEY       movie discovery
  OPENAI_API_KEY     optional classifier backend
  ANTHROPIC_API_KEY  optional classifier backend
  OLLAMA_HOST        optional classifier backend
`
