package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// folderColumns are the categories shown as folder table columns.
var folderColumns = []schema.Category{
	schema.CobolPrograms,
	schema.JCLFiles,
	schema.Copybooks,
	schema.Procedures,
	schema.ControlCards,
	schema.DataFiles,
	schema.OtherFiles,
}

// folderHeaders are short labels for folderColumns.
var folderHeaders = []string{"COBOL", "JCL", "Copy", "Proc", "Ctl", "Data", "Other"}

// PrintFolderRows outputs ranked folders, dispatching based on the output format configured.
func PrintFolderRows(rows []schema.FolderRow, cfg *contract.Config, duration time.Duration) error {
	if ok, err := writeStructured(cfg, rows); ok {
		if err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
		return nil
	}

	_, intFmt := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForFolders(w, rows, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return parquetUnsupported("folders")
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeFolderTable(w, rows, cfg, intFmt, duration)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// writeFolderTable prints the per-folder category breakdown using the tablewriter API.
func writeFolderTable(w io.Writer, rows []schema.FolderRow, cfg *contract.Config, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Folder", "Files"}
	if cfg.Detail {
		headers = append(headers, folderHeaders...)
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	totalFiles := 0
	for i, r := range rows {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(r.Folder, maxWidth),
			fmt.Sprintf(intFmt, r.Total),
		}
		if cfg.Detail {
			for _, cat := range folderColumns {
				row = append(row, fmt.Sprintf(intFmt, r.Counts[cat]))
			}
		}
		data = append(data, row)
		totalFiles += r.Total
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d folders (total files: %d)\n", len(rows), totalFiles); err != nil {
		return err
	}
	return printSummaryLine(w, cfg, duration)
}

// writeCSVResultsForFolders writes one row per folder with a column per category.
func writeCSVResultsForFolders(w io.Writer, rows []schema.FolderRow, intFmt string) error {
	header := []string{"rank", "folder", "total"}
	for _, cat := range folderColumns {
		header = append(header, string(cat))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range rows {
			rec := []string{strconv.Itoa(i + 1), r.Folder, fmt.Sprintf(intFmt, r.Total)}
			for _, cat := range folderColumns {
				rec = append(rec, fmt.Sprintf(intFmt, r.Counts[cat]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
