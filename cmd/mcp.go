package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pulseworks/rhythmscan/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Rhythmscan MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze and generate ECG recordings via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; result writing happens
		// inside the tool handlers, not through the output writers.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}
