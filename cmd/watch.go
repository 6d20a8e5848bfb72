package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/mfscan/core"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/spf13/cobra"
)

// watchCmd re-runs the scan whenever the tree changes.
var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Re-scan the tree every time a file changes.",
	Long: `Print a scan report, then watch the tree and print a fresh report after
each burst of changes. Changes are batched until the tree has been quiet for
the --debounce period. Stop with Ctrl+C.

Examples:
  # Watch the current directory
  mfscan watch

  # Wait two seconds of quiet before re-scanning
  mfscan watch ./legacy --debounce 2s`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := core.ExecuteWatch(ctx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot watch", err)
		}
	},
}
