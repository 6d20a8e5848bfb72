package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/huangsam/mfscan/core/agg"
	"github.com/huangsam/mfscan/core/jcl"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/internal/outwriter"
	"github.com/huangsam/mfscan/schema"
)

// ScanDirectory walks cfg.RootPath, analyzes every file and folds the
// results into a report. The fold runs in walk order, so the report does
// not depend on worker timing.
func ScanDirectory(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisReport, error) {
	// --- 0. Root Validation ---
	info, err := os.Stat(cfg.RootPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("root directory %s does not exist", cfg.RootPath)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path %s is not a directory", cfg.RootPath)
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogScanHeader(cfg)
	}
	scannedAt := time.Now()

	// --- 1. Walk ---
	entries, err := walkTree(ctx, cfg.RootPath, cfg.Excludes)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", cfg.RootPath, err)
	}

	// Add cache manager to context for use in worker goroutines
	if mgr != nil {
		ctx = contextWithCacheManager(ctx, mgr)
	}

	// --- 2. Begin Analysis Tracking (if configured) ---
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	if analysisStore != nil {
		configParams := map[string]any{
			"root_path":   cfg.RootPath,
			"workers":     cfg.Workers,
			"emit_all_dd": cfg.EmitAllDD,
			"excludes":    cfg.Excludes,
		}
		analysisID, err := analysisStore.BeginAnalysis(scannedAt, cfg.RootPath, configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
		} else if analysisID > 0 {
			ctx = withAnalysisID(ctx, analysisID)
		}
	}

	// --- 3. Per-file Analysis ---
	results := analyzeFiles(ctx, cfg, entries)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- 4. Fold in walk order ---
	aggregator := agg.NewAggregator()
	analysisID, tracking := getAnalysisID(ctx)
	tracking = tracking && analysisStore != nil
	for _, fa := range results {
		if fa.Err != "" {
			contract.LogWarn(fmt.Sprintf("Could not read %s", fa.Record.Path), errors.New(fa.Err))
		}
		aggregator.Add(fa)
		if tracking {
			recordFileAnalysis(analysisStore, analysisID, fa, scannedAt)
		}
	}
	report := aggregator.Report(cfg.RootPath, scannedAt, cfg.TopN)

	// --- 5. Optional Cron Analysis ---
	if cfg.IncludeCron {
		cronReport, err := ScanCron(ctx, cfg)
		if err != nil {
			contract.LogWarn("Cron analysis failed", err)
		} else {
			report.CronAnalysis = cronReport
		}
	}

	// --- 6. End Analysis Tracking ---
	if tracking {
		if err := analysisStore.EndAnalysis(analysisID, time.Now(), len(results)); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}

	return report, nil
}

// analyzeFiles processes all entries in parallel using a worker pool.
// Each result lands at its entry's index.
func analyzeFiles(ctx context.Context, cfg *contract.Config, entries []schema.WalkEntry) []schema.FileAnalysis {
	parser := jcl.NewParser(jcl.Options{EmitAll: cfg.EmitAllDD, Logger: contract.Logger()})
	results := make([]schema.FileAnalysis, len(entries))
	indexCh := make(chan int, len(entries))
	var wg sync.WaitGroup

	for range max(cfg.Workers, 1) {
		wg.Go(func() {
			for i := range indexCh {
				if ctx.Err() != nil {
					continue // drain
				}
				results[i] = cachedAnalyzeFile(ctx, cfg, entries[i], parser)
			}
		})
	}

	for i := range entries {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	return results
}

// analyzeFile runs the builder chain for a single file.
func analyzeFile(entry schema.WalkEntry, parser *jcl.Parser) schema.FileAnalysis {
	return NewFileAnalysisBuilder(entry, parser).
		ReadContent().    // Loads and decodes the file
		CheckExclusion(). // Skips migrated members
		CountLines().     // Classifies every line
		ScanIO().         // COBOL programs only
		ParseDatasets().  // JCL jobs and procedures only
		Build()
}

// recordFileAnalysis records one file and its datasets in the scan-history store.
func recordFileAnalysis(store contract.AnalysisStore, analysisID int64, fa schema.FileAnalysis, now time.Time) {
	rec := fa.Record
	row := schema.FileRecordRow{
		AnalysisID:    analysisID,
		FilePath:      rec.Path,
		Category:      string(rec.Category),
		AnalysisTime:  now,
		SizeBytes:     rec.SizeBytes,
		TotalLines:    int32(rec.TotalLines),
		NonEmptyLines: int32(rec.NonEmptyLines),
		CommentLines:  int32(rec.CommentLines),
		CodeLines:     int32(rec.CodeLines),
		Excluded:      fa.Excluded,
	}
	if err := store.RecordFile(analysisID, row); err != nil {
		logTrackingError("RecordFile", rec.Path, err)
		return
	}
	if len(fa.Datasets) == 0 {
		return
	}
	if err := store.RecordDatasets(analysisID, datasetRows(analysisID, fa.Datasets)); err != nil {
		logTrackingError("RecordDatasets", rec.Path, err)
	}
}

// datasetRows converts declarations to scan-history rows.
func datasetRows(analysisID int64, decls []schema.DatasetDeclaration) []schema.DatasetRecordRow {
	rows := make([]schema.DatasetRecordRow, len(decls))
	for i, d := range decls {
		rows[i] = schema.DatasetRecordRow{
			AnalysisID:   analysisID,
			JCLFile:      d.JCLFile,
			LineNumber:   int32(d.LineNumber),
			JobName:      d.JobName,
			StepName:     d.StepName,
			ProcName:     d.ProcName,
			DDName:       d.DDName,
			DatasetName:  d.DatasetName,
			DatasetType:  string(d.DatasetType),
			DispStatus:   d.DispStatus,
			DispNormal:   d.DispNormal,
			DispAbnormal: d.DispAbnormal,
		}
	}
	return rows
}

// logTrackingError logs database tracking errors to stderr without disrupting the scan.
func logTrackingError(operation, path string, err error) {
	contract.LogWarn(fmt.Sprintf("Analysis tracking failed for %s on %s", operation, path), err)
}
