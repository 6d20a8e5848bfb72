package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/internal/parquet"
	"github.com/huangsam/mfscan/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintScanReport outputs a full scan report, dispatching based on the output format configured.
// JSON and YAML carry the whole report; the other formats carry the category breakdown.
func PrintScanReport(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	if ok, err := writeStructured(cfg, report); ok {
		if err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
		return nil
	}

	fmtFloat, intFmt := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVScanReport(w, report, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetScanReport(report, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScanTable(w, report, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// categoryRow holds the per-category numbers shown by the scan views.
type categoryRow struct {
	Category schema.Category
	Files    int
	Excluded int
	Lines    schema.CategoryLineStats
	HasLines bool
}

// categoryRows lists every category in report order, other_files last.
func categoryRows(report *schema.AnalysisReport) []categoryRow {
	cats := append(slices.Clone(schema.KnownCategories), schema.OtherFiles)
	rows := make([]categoryRow, 0, len(cats))
	for _, cat := range cats {
		lines, ok := report.Summary.LineStatistics[string(cat)]
		rows = append(rows, categoryRow{
			Category: cat,
			Files:    report.FileCounts[cat],
			Excluded: report.ExcludedCounts[cat],
			Lines:    lines,
			HasLines: ok,
		})
	}
	return rows
}

// writeScanTable renders the category table followed by the report summary.
func writeScanTable(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Category", "Files", "Excluded", "Lines", "Code", "Comments", "Code %"}
	if cfg.Detail {
		headers = append(headers, "Non-empty", "Only comments", "Empty")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, r := range categoryRows(report) {
		row := []string{string(r.Category), fmt.Sprintf(intFmt, r.Files), fmt.Sprintf(intFmt, r.Excluded)}
		if r.HasLines {
			row = append(row,
				fmt.Sprintf(intFmt, r.Lines.TotalLines),
				fmt.Sprintf(intFmt, r.Lines.CodeLines),
				fmt.Sprintf(intFmt, r.Lines.CommentLines),
				fmtFloat(percent(r.Lines.CodeLines, r.Lines.NonEmptyLines)),
			)
		} else {
			row = append(row, "-", "-", "-", "-")
		}
		if cfg.Detail {
			if r.HasLines {
				row = append(row,
					fmt.Sprintf(intFmt, r.Lines.NonEmptyLines),
					fmt.Sprintf(intFmt, r.Lines.FilesWithOnlyComments),
					fmt.Sprintf(intFmt, r.Lines.EmptyFiles),
				)
			} else {
				row = append(row, "-", "-", "-")
			}
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := report.Summary
	all := s.LineStatistics[schema.AllFilesKey]
	if _, err := fmt.Fprintf(w, "Total lines: %d (code: %d, comments: %d) across %d folders\n",
		all.TotalLines, all.CodeLines, all.CommentLines, s.FoldersAnalyzed); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "I/O names: %d input, %d output. JCL datasets: %d. Excluded files: %d\n",
		s.TotalInputFileReferences, s.TotalOutputFileReferences, s.TotalJCLDatasets, s.TotalExcludedFiles); err != nil {
		return err
	}
	if len(report.FileErrors) > 0 {
		if _, err := fmt.Fprintf(w, "Unreadable files: %d (see warnings)\n", len(report.FileErrors)); err != nil {
			return err
		}
	}

	if cfg.Detail {
		if err := writeFrequencyTable(w, "Dataset type", report.DatasetStatistics.TypeFrequency, intFmt); err != nil {
			return err
		}
		if err := writeFrequencyTable(w, "Dataset", report.DatasetStatistics.TopDatasets, intFmt); err != nil {
			return err
		}
		if err := writeFrequencyTable(w, "I/O name", report.DatasetStatistics.TopIONames, intFmt); err != nil {
			return err
		}
	}
	if report.CronAnalysis != nil {
		if err := writeCronSummary(w, report.CronAnalysis, intFmt); err != nil {
			return err
		}
	}
	return printSummaryLine(w, cfg, duration)
}

// writeFrequencyTable renders a value/count table. Empty tables are skipped.
func writeFrequencyTable(w io.Writer, label string, entries []schema.FrequencyEntry, intFmt string) error {
	if len(entries) == 0 {
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", label, "Count"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	data := make([][]string, 0, len(entries))
	for i, e := range entries {
		data = append(data, []string{strconv.Itoa(i + 1), e.Value, fmt.Sprintf(intFmt, e.Count)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVScanReport writes one CSV row per category.
func writeCSVScanReport(w io.Writer, report *schema.AnalysisReport, intFmt string) error {
	header := []string{
		"category",
		"files",
		"excluded",
		"total_lines",
		"non_empty_lines",
		"comment_lines",
		"code_lines",
		"files_with_code",
		"files_with_only_comments",
		"empty_files",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range categoryRows(report) {
			rec := []string{
				string(r.Category),
				fmt.Sprintf(intFmt, r.Files),
				fmt.Sprintf(intFmt, r.Excluded),
				fmt.Sprintf(intFmt, r.Lines.TotalLines),
				fmt.Sprintf(intFmt, r.Lines.NonEmptyLines),
				fmt.Sprintf(intFmt, r.Lines.CommentLines),
				fmt.Sprintf(intFmt, r.Lines.CodeLines),
				fmt.Sprintf(intFmt, r.Lines.FilesWithCode),
				fmt.Sprintf(intFmt, r.Lines.FilesWithOnlyComments),
				fmt.Sprintf(intFmt, r.Lines.EmptyFiles),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeParquetScanReport writes the files, datasets and I/O references of a
// report to three Parquet files sharing the outputFile prefix.
func writeParquetScanReport(report *schema.AnalysisReport, outputFile string) error {
	if outputFile == "" {
		return errParquetNeedsFile
	}

	var files []schema.FileRecord
	for _, cat := range schema.KnownCategories {
		for _, f := range report.DetailedFiles[cat] {
			f.Category = cat
			files = append(files, f)
		}
	}
	filesPath := outputFile + ".files.parquet"
	if err := parquet.WriteFileRecordsParquet(parquet.ConvertFileRecords(files, report.ScanTimestamp), filesPath); err != nil {
		return err
	}

	datasetsPath := outputFile + ".datasets.parquet"
	if err := parquet.WriteDatasetRecordsParquet(parquet.ConvertDatasetDeclarations(report.JCLDatasets), datasetsPath); err != nil {
		return err
	}

	names := slices.Sorted(maps.Keys(report.IOAnalysis.FileReferences))
	ioPath := outputFile + ".io_references.parquet"
	if err := parquet.WriteIOReferencesParquet(parquet.ConvertFileReferences(names, report.IOAnalysis.FileReferences), ioPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s, %s, %s\n", filesPath, datasetsPath, ioPath)
	return nil
}
