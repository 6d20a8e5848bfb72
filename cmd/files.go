package cmd

import (
	"github.com/huangsam/mfscan/core"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/spf13/cobra"
)

// filesCmd lists analyzed files ranked by code lines.
var filesCmd = &cobra.Command{
	Use:   "files [root]",
	Short: "Show the largest source members ranked by code lines.",
	Long: `List every analyzed file with its line statistics, largest first.

Files are ranked by code lines. Ties keep category order (COBOL programs,
JCL, copybooks, procedures, control cards, data files) and then walk order.

Examples:
  # The 50 largest members of any kind
  mfscan files ./legacy --limit 50

  # Only COBOL programs, with absolute paths and sizes
  mfscan files ./legacy --category cobol_programs --detail

  # Export to CSV for a migration tracker
  mfscan files ./legacy --output csv --output-file files.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFiles(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run files analysis", err)
		}
	},
}
