package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/internal/parquet"
	"github.com/huangsam/mfscan/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// rankedFile is the JSON/YAML view of a ranked file record.
type rankedFile struct {
	Rank              int             `json:"rank" yaml:"rank"`
	Category          schema.Category `json:"category" yaml:"category"`
	Kind              string          `json:"kind" yaml:"kind"`
	schema.FileRecord `yaml:",inline"`
}

// PrintFileRecords outputs ranked file records, dispatching based on the output format configured.
func PrintFileRecords(files []schema.FileRecord, cfg *contract.Config, duration time.Duration) error {
	if ok, err := writeStructured(cfg, toRankedFiles(files)); ok {
		if err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
		return nil
	}

	fmtFloat, intFmt := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForFiles(w, files, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		if err := parquet.WriteFileRecordsParquet(parquet.ConvertFileRecords(files, time.Now()), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFileTable(w, files, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

func toRankedFiles(files []schema.FileRecord) []rankedFile {
	output := make([]rankedFile, len(files))
	for i, f := range files {
		output[i] = rankedFile{
			Rank:       i + 1,
			Category:   f.Category,
			Kind:       contract.GetPlainLabel(f.LineStats),
			FileRecord: f,
		}
	}
	return output
}

// writeFileTable generates and writes the human-readable table.
func writeFileTable(w io.Writer, files []schema.FileRecord, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Rank", "Path", "Category", "Lines", "Code", "Kind"}
	if cfg.Detail {
		headers = append(headers, "Non-empty", "Comments", "Code %", "Size")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	maxWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	totalCode := 0
	for i, f := range files {
		kind := contract.GetPlainLabel(f.LineStats)
		if cfg.UseColors {
			kind = contract.GetColorLabel(f.LineStats)
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Path, maxWidth),
			string(f.Category),
			fmt.Sprintf(intFmt, f.TotalLines),
			fmt.Sprintf(intFmt, f.CodeLines),
			kind,
		}
		if cfg.Detail {
			row = append(row,
				fmt.Sprintf(intFmt, f.NonEmptyLines),
				fmt.Sprintf(intFmt, f.CommentLines),
				fmtFloat(percent(f.CodeLines, f.NonEmptyLines)),
				fmt.Sprintf(intFmt, f.SizeBytes),
			)
		}
		data = append(data, row)
		totalCode += f.CodeLines
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d files (total code lines: %d)\n", len(files), totalCode); err != nil {
		return err
	}
	return printSummaryLine(w, cfg, duration)
}

// writeCSVResultsForFiles writes ranked file records in CSV format.
func writeCSVResultsForFiles(w io.Writer, files []schema.FileRecord, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"rank",
		"path",
		"name",
		"category",
		"kind",
		"size_bytes",
		"total_lines",
		"non_empty_lines",
		"comment_lines",
		"code_lines",
		"code_pct",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, f := range files {
			rec := []string{
				strconv.Itoa(i + 1),                  // Rank
				f.Path,                               // Relative path
				f.Name,                               // Base name
				string(f.Category),                   // Category
				contract.GetPlainLabel(f.LineStats),  // Kind
				fmt.Sprintf(intFmt, f.SizeBytes),     // Size
				fmt.Sprintf(intFmt, f.TotalLines),    // Lines
				fmt.Sprintf(intFmt, f.NonEmptyLines), // Non-empty lines
				fmt.Sprintf(intFmt, f.CommentLines),  // Comment lines
				fmt.Sprintf(intFmt, f.CodeLines),     // Code lines
				fmtFloat(percent(f.CodeLines, f.NonEmptyLines)),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
