package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/internal/parquet"
	"github.com/huangsam/mfscan/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintIONames outputs ranked COBOL I/O names, dispatching based on the output format configured.
func PrintIONames(rows []schema.IONameRow, cfg *contract.Config, duration time.Duration) error {
	if rows == nil {
		rows = []schema.IONameRow{}
	}
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
			return writeCSVResultsForIONames(w, rows, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		if err := parquet.WriteIOReferencesParquet(ioNameReferences(rows), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIONameTable(w, rows, cfg, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// ioNameReferences flattens rows to one Parquet record per referencing file.
// Names used in both directions get the operation "INPUT,OUTPUT".
func ioNameReferences(rows []schema.IONameRow) []parquet.IOReference {
	var out []parquet.IOReference
	for _, r := range rows {
		var op string
		switch {
		case r.Outputs == 0:
			op = string(schema.InputOp)
		case r.Inputs == 0:
			op = string(schema.OutputOp)
		default:
			op = string(schema.InputOp) + "," + string(schema.OutputOp)
		}
		for _, f := range r.Files {
			out = append(out, parquet.IOReference{Name: r.Name, Operation: op, SourceFile: f})
		}
	}
	return out
}

// writeIONameTable renders names with their input/output counts.
func writeIONameTable(w io.Writer, rows []schema.IONameRow, cfg *contract.Config, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Name", "Refs", "Input", "Output", "Files"}
	if cfg.Detail {
		headers = append(headers, "Programs")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, r := range rows {
		row := []string{
			strconv.Itoa(i + 1),
			r.Name,
			fmt.Sprintf(intFmt, r.References),
			fmt.Sprintf(intFmt, r.Inputs),
			fmt.Sprintf(intFmt, r.Outputs),
			fmt.Sprintf(intFmt, len(r.Files)),
		}
		if cfg.Detail {
			row = append(row, contract.TruncatePath(strings.Join(r.Files, ", "), maxWidth))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d I/O names\n", len(rows)); err != nil {
		return err
	}
	return printSummaryLine(w, cfg, duration)
}

// writeCSVResultsForIONames writes one row per name; files are joined with '|'.
func writeCSVResultsForIONames(w io.Writer, rows []schema.IONameRow, intFmt string) error {
	header := []string{"rank", "name", "references", "inputs", "outputs", "files"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range rows {
			rec := []string{
				strconv.Itoa(i + 1),
				r.Name,
				fmt.Sprintf(intFmt, r.References),
				fmt.Sprintf(intFmt, r.Inputs),
				fmt.Sprintf(intFmt, r.Outputs),
				strings.Join(r.Files, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
