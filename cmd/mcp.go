package cmd

import (
	"github.com/huangsam/mfscan/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [root]",
	Short: "Start the mfscan MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents scan mainframe trees.

Tools: scan_directory, get_jcl_datasets, get_io_references, get_cron_jobs.
Each tool takes an optional root_path; the positional root is the default.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
