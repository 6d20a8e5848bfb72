package cmd

import (
	"github.com/huangsam/mfscan/core"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/spf13/cobra"
)

// cronCmd inventories scheduled jobs.
var cronCmd = &cobra.Command{
	Use:   "cron [root]",
	Short: "Inventory crontabs and the shell scripts they schedule.",
	Long: `Find crontab files and shell scripts under the root and summarize them.

Reports the most frequent commands and schedules, the scripts invoked from
cron jobs and a full inventory of shell scripts found in the tree.

Examples:
  # Summarize scheduled work
  mfscan cron ./ops

  # Export the job list as CSV
  mfscan cron ./ops --output csv --output-file cron.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCron(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run cron analysis", err)
		}
	},
}
