package cmd

import (
	"github.com/huangsam/mfscan/core"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/spf13/cobra"
)

// scanCmd produces the full inventory report.
var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Inventory a mainframe source tree.",
	Long: `Walk a directory tree and report on every legacy artifact inside it.

Each file is classified by extension into COBOL programs, JCL jobs, copybooks,
procedures, control cards, data files or other files. Files containing the
marker "THIS JOB IS ALREADY ON LINUX" are counted as excluded and skipped.

The report covers:
- File counts per category and per folder
- Line statistics (code, comment, blank) per category
- COBOL file I/O references (READ, WRITE, OPEN INPUT/OUTPUT, ...)
- Every JCL DD statement with its dataset, disposition and type
- Frequency tables for dataset types, dispositions and names

Examples:
  # Scan the current directory
  mfscan scan

  # Scan a checkout and write the full report as JSON
  mfscan scan ./legacy --output json --output-file report.json

  # Include crontabs and shell scripts found in the tree
  mfscan scan ./legacy --cron`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScan(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}
