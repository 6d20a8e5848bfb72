package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/internal/parquet"
)

// ExecuteAnalysisExport writes the scan history in store to three Parquet
// files named after the outputFile prefix.
func ExecuteAnalysisExport(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis tracking is not configured. Set --analysis-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no scan history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total scan runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total file records: %d\n", status.TableSizes[fileRecordsTable])
	_, _ = fmt.Fprintf(w, "Total dataset records: %d\n", status.TotalDatasets)

	runs, err := store.GetAllScanRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scan runs: %w", err)
	}
	files, err := store.GetAllFileRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve file records: %w", err)
	}
	datasets, err := store.GetAllDatasetRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve dataset records: %w", err)
	}

	runsFile := outputFile + ".scan_runs.parquet"
	if err := parquet.WriteScanRunsParquet(parquet.ConvertScanRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write scan runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d scan runs to: %s\n", len(runs), runsFile)

	filesFile := outputFile + ".file_records.parquet"
	if err := parquet.WriteFileRecordsParquet(parquet.ConvertFileRecordRows(files), filesFile); err != nil {
		return fmt.Errorf("failed to write file records: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d file records to: %s\n", len(files), filesFile)

	datasetsFile := outputFile + ".dataset_records.parquet"
	if err := parquet.WriteDatasetRecordsParquet(parquet.ConvertDatasetRecordRows(datasets), datasetsFile); err != nil {
		return fmt.Errorf("failed to write dataset records: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d dataset records to: %s\n", len(datasets), datasetsFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be loaded with DuckDB, Spark or pandas (pyarrow).")
	return nil
}
