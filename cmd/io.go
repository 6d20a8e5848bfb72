package cmd

import (
	"github.com/huangsam/mfscan/core"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/spf13/cobra"
)

// ioCmd ranks the names used in COBOL I/O statements.
var ioCmd = &cobra.Command{
	Use:   "io [root]",
	Short: "Show the files and devices COBOL programs read and write.",
	Long: `Rank the names referenced by COBOL I/O statements across all programs.

Recognized statements: READ, WRITE, OPEN INPUT, OPEN OUTPUT, ACCEPT ... FROM,
DISPLAY ... UPON and SELECT ... ASSIGN TO. Each name is listed with its input
and output counts and the programs that reference it.

Examples:
  # Most referenced names
  mfscan io ./legacy

  # Only names that programs write to
  mfscan io ./legacy --operation OUTPUT`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIO(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run io analysis", err)
		}
	},
}
