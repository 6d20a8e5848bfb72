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

// datasetOutput is the JSON/YAML shape of the datasets view.
type datasetOutput struct {
	Datasets   []schema.DatasetDeclaration `json:"jcl_datasets" yaml:"jcl_datasets"`
	Statistics schema.DatasetStatistics    `json:"dataset_statistics" yaml:"dataset_statistics"`
}

// PrintDatasets outputs JCL DD declarations, dispatching based on the output format configured.
func PrintDatasets(decls []schema.DatasetDeclaration, stats schema.DatasetStatistics, cfg *contract.Config, duration time.Duration) error {
	if decls == nil {
		decls = []schema.DatasetDeclaration{}
	}
	if ok, err := writeStructured(cfg, datasetOutput{Datasets: decls, Statistics: stats}); ok {
		if err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
		return nil
	}

	_, intFmt := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForDatasets(w, decls)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errParquetNeedsFile
		}
		if err := parquet.WriteDatasetRecordsParquet(parquet.ConvertDatasetDeclarations(decls), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDatasetTable(w, decls, stats, cfg, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// writeDatasetTable renders declarations in source order, then the frequency tables.
func writeDatasetTable(w io.Writer, decls []schema.DatasetDeclaration, stats schema.DatasetStatistics, cfg *contract.Config, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"JCL", "Line", "Job", "Step", "DD", "Type", "Dataset", "Disp"}
	if cfg.Detail {
		headers = append(headers, "Proc", "Volume", "Unit", "Space", "DCB")
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	maxWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for _, d := range decls {
		row := []string{
			contract.TruncatePath(d.JCLFile, maxWidth),
			strconv.Itoa(d.LineNumber),
			d.JobName,
			d.StepName,
			d.DDName,
			contract.GetDatasetTypeLabel(d.DatasetType, cfg.UseColors),
			d.DatasetName,
			formatDisp(d),
		}
		if cfg.Detail {
			row = append(row, d.ProcName, d.Volume, d.Unit, d.Space, d.DCB)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d DD declarations\n", len(decls)); err != nil {
		return err
	}
	if err := writeFrequencyTable(w, "Dataset type", stats.TypeFrequency, intFmt); err != nil {
		return err
	}
	if err := writeFrequencyTable(w, "Disposition", stats.DispFrequency, intFmt); err != nil {
		return err
	}
	if err := writeFrequencyTable(w, "Dataset", stats.TopDatasets, intFmt); err != nil {
		return err
	}
	return printSummaryLine(w, cfg, duration)
}

// formatDisp renders DISP as it is written in JCL, e.g. (NEW,CATLG,DELETE).
func formatDisp(d schema.DatasetDeclaration) string {
	switch {
	case d.DispStatus == "":
		return ""
	case d.DispNormal == "" && d.DispAbnormal == "":
		return d.DispStatus
	default:
		return fmt.Sprintf("(%s,%s,%s)", d.DispStatus, d.DispNormal, d.DispAbnormal)
	}
}

// writeCSVResultsForDatasets writes every declaration field, in source order.
func writeCSVResultsForDatasets(w io.Writer, decls []schema.DatasetDeclaration) error {
	header := []string{
		"jcl_file",
		"line_number",
		"job_name",
		"step_name",
		"proc_name",
		"dd_name",
		"dataset_type",
		"dataset_name",
		"disp_status",
		"disp_normal",
		"disp_abnormal",
		"volume",
		"unit",
		"space",
		"dcb",
		"original_line",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range decls {
			rec := []string{
				d.JCLFile,
				strconv.Itoa(d.LineNumber),
				d.JobName,
				d.StepName,
				d.ProcName,
				d.DDName,
				string(d.DatasetType),
				d.DatasetName,
				d.DispStatus,
				d.DispNormal,
				d.DispAbnormal,
				d.Volume,
				d.Unit,
				d.Space,
				d.DCB,
				d.OriginalLine,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
