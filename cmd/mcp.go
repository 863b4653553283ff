package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pkgpulse/pkgpulse/internal/iocache"
	"github.com/pkgpulse/pkgpulse/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the pkgpulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to compare packages and inspect health via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newFetcher(), iocache.Manager.GetCategoryStore())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
