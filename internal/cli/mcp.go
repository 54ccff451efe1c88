package cli

import (
	"github.com/spf13/cobra"

	"github.com/bountyops/bountyops/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP stdio server",
	Long: `Exposes the operations backend to agent tooling over the Model
Context Protocol. Connects to the HTTP API given by --api-url and
serves resources and tools on stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.New(apiClient(), version).ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
