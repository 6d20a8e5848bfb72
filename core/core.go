// Package core has core logic for walking, analyzing and reporting on mainframe source trees.
package core

import (
	"context"
	"time"

	"github.com/huangsam/mfscan/core/algo"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/internal/outwriter"
	"github.com/huangsam/mfscan/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteScan runs a full scan and prints the report.
// It serves as the main entry point for the 'scan' mode.
func ExecuteScan(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := ScanDirectory(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintScanReport(report, cfg, time.Since(start))
}

// ExecuteFiles runs a scan and prints the detailed files ranked by code lines.
func ExecuteFiles(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := ScanDirectory(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ranked := algo.RankFiles(FileRecords(report, cfg.CategoryFilter), cfg.ResultLimit)
	return outwriter.PrintFileRecords(ranked, cfg, time.Since(start))
}

// ExecuteFolders runs a scan and prints the folders holding the most files.
func ExecuteFolders(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := ScanDirectory(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ranked := algo.RankFolders(FolderRows(report), cfg.ResultLimit)
	return outwriter.PrintFolderRows(ranked, cfg, time.Since(start))
}

// ExecuteDatasets runs a scan and prints the JCL DD declarations in source order.
func ExecuteDatasets(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := ScanDirectory(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	decls := FilterDatasets(report.JCLDatasets, cfg.DatasetFilter)
	if len(decls) > cfg.ResultLimit {
		decls = decls[:cfg.ResultLimit]
	}
	return outwriter.PrintDatasets(decls, report.DatasetStatistics, cfg, time.Since(start))
}

// ExecuteIO runs a scan and prints the most referenced COBOL I/O names.
func ExecuteIO(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := ScanDirectory(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ranked := algo.RankIONames(IONameRows(report, cfg.OperationFilter), cfg.ResultLimit)
	return outwriter.PrintIONames(ranked, cfg, time.Since(start))
}

// ExecuteCron runs the cron analysis on its own and prints it.
func ExecuteCron(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	if !shouldSuppressHeader(ctx) {
		outwriter.LogScanHeader(cfg)
	}
	analysis, err := ScanCron(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintCronAnalysis(analysis, cfg, time.Since(start))
}

// GetScanReport runs a scan without printing the header. It is meant for
// callers that render the report themselves.
func GetScanReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisReport, error) {
	return ScanDirectory(withSuppressHeader(ctx), cfg, mgr)
}

// GetCronAnalysis runs the cron analysis for callers that render it themselves.
func GetCronAnalysis(ctx context.Context, cfg *contract.Config) (*schema.CronAnalysis, error) {
	return ScanCron(ctx, cfg)
}
