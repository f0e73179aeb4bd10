package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/cinematch/pkg/a2a"
)

var (
	serverFlag  string
	contextFlag string

	askCmd = &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Send a prompt to a cinematch agent running in sync mode",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a2a.NewClient(serverFlag)

			task, err := client.Send(
				cmd.Context(),
				viper.GetString("agent.id"),
				contextFlag,
				strings.Join(args, " "),
			)

			if err != nil {
				return err
			}

			fmt.Println(task.String())
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringVarP(&serverFlag, "server", "s", "http://localhost:3210", "Base url of the agent server")
	askCmd.Flags().StringVarP(&contextFlag, "context", "c", "", "Context id, to continue a conversation")
}
