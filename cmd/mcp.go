package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/theapemachine/cinematch/pkg/tools"
)

var (
	mcpCmd = &cobra.Command{
		Use:   "mcp",
		Short: "Serve the movie tools over MCP on stdio",
		Long:  longMCP,
		RunE: func(cmd *cobra.Command, args []string) error {
			stack, err := newToolStack(nil)
			if err != nil {
				return err
			}

			return server.ServeStdio(tools.NewMCPServer(projectName, "1.0.0", stack.registry))
		},
	}
)

func init() {
	rootCmd.AddCommand(mcpCmd)
}

var longMCP = `
Serve movieRecommendation and discoverMovies as MCP tools over stdio, so any
MCP client can use them without going through the agent.

Example:
  cinematch mcp
`
