package cmd

import (
	"github.com/huangsam/mfscan/core"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/spf13/cobra"
)

// foldersCmd shows the per-folder category breakdown.
var foldersCmd = &cobra.Command{
	Use:   "folders [root]",
	Short: "Show the folders holding the most artifacts.",
	Long: `Break down every folder by artifact category, busiest folders first.

Files directly under the root are reported under ".".

Examples:
  # Top 10 folders
  mfscan folders ./legacy --limit 10

  # Full breakdown as YAML
  mfscan folders ./legacy --output yaml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFolders(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run folders analysis", err)
		}
	},
}
