package cmd

import (
	"github.com/huangsam/mfscan/core"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/spf13/cobra"
)

// datasetsCmd lists JCL DD declarations.
var datasetsCmd = &cobra.Command{
	Use:   "datasets [root]",
	Short: "List the datasets referenced by JCL DD statements.",
	Long: `Parse every JCL job and procedure and list its DD statements in source order.

Each declaration carries the job, step and procedure it belongs to, the
dataset name, its disposition (status, normal, abnormal) and a type:
DATASET, SYSOUT, SYSIN, TEMPORARY, DUMMY, HFS or OTHER.

DD statements that name no dataset and no disposition are dropped unless
--emit-all-dd is set. DUMMY, SYSOUT and SYSIN are always kept.

Examples:
  # Every named dataset
  mfscan datasets ./legacy --type DATASET

  # Temporary datasets, as CSV
  mfscan datasets ./legacy --type TEMPORARY --output csv

  # Export all declarations to Parquet
  mfscan datasets ./legacy --output parquet --output-file datasets.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDatasets(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run datasets analysis", err)
		}
	},
}
