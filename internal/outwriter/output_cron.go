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

// PrintCronAnalysis outputs the cron analysis, dispatching based on the output format configured.
func PrintCronAnalysis(analysis *schema.CronAnalysis, cfg *contract.Config, duration time.Duration) error {
	if ok, err := writeStructured(cfg, analysis); ok {
		if err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
		return nil
	}

	_, intFmt := createFormatters(cfg.Precision)
	switch cfg.Output {
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVCronJobs(w, analysis)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return parquetUnsupported("cron")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCronTable(w, analysis, cfg, intFmt, duration)
		}, "Wrote table")
	}
	return nil
}

// writeCronSummary prints the headline cron numbers.
func writeCronSummary(w io.Writer, a *schema.CronAnalysis, intFmt string) error {
	_, err := fmt.Fprintf(w, "Cron: %s jobs in %s files (%s unique commands, %s unique schedules, %s shell scripts)\n",
		fmt.Sprintf(intFmt, a.TotalCronJobs),
		fmt.Sprintf(intFmt, a.CronFilesFound),
		fmt.Sprintf(intFmt, a.UniqueCronCommands),
		fmt.Sprintf(intFmt, a.UniqueSchedules),
		fmt.Sprintf(intFmt, len(a.ShellScriptsInventory)),
	)
	return err
}

// writeCronTable renders the ranked commands, schedules and scheduled scripts.
func writeCronTable(w io.Writer, a *schema.CronAnalysis, cfg *contract.Config, intFmt string, duration time.Duration) error {
	if err := writeCronSummary(w, a, intFmt); err != nil {
		return err
	}
	if err := writeFrequencyTable(w, "Command", a.MostFrequentCommands, intFmt); err != nil {
		return err
	}

	if len(a.MostFrequentSchedules) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rank", "Schedule", "Count", "Description"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignLeft
		})
		var data [][]string
		for i, s := range a.MostFrequentSchedules {
			data = append(data, []string{strconv.Itoa(i + 1), s.Schedule, fmt.Sprintf(intFmt, s.Count), s.Description})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if scripts := a.ShellScriptAnalysis.MostFrequentScripts; len(scripts) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rank", "Script", "Runs", "Schedules"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		maxWidth := GetMaxTablePathWidth(cfg)
		var data [][]string
		for i, s := range scripts {
			data = append(data, []string{
				strconv.Itoa(i + 1),
				contract.TruncatePath(s.ScriptPath, maxWidth),
				fmt.Sprintf(intFmt, s.Frequency),
				fmt.Sprintf(intFmt, s.UniqueSchedules),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if cfg.Detail {
		for _, f := range a.CronDetails {
			if _, err := fmt.Fprintf(w, "%s (%d jobs)\n", f.RelativePath, f.Count); err != nil {
				return err
			}
			for _, j := range f.Jobs {
				if _, err := fmt.Fprintf(w, "  %4d  %-20s %s\n", j.Line, j.Schedule, j.TimingDescription); err != nil {
					return err
				}
			}
		}
	}
	return printSummaryLine(w, cfg, duration)
}

// writeCSVCronJobs writes one row per cron job.
func writeCSVCronJobs(w io.Writer, a *schema.CronAnalysis) error {
	header := []string{
		"cron_file",
		"line",
		"schedule",
		"timing",
		"command",
		"normalized_command",
		"shell_script",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range a.CronDetails {
			for _, j := range f.Jobs {
				rec := []string{
					f.RelativePath,
					strconv.Itoa(j.Line),
					j.Schedule,
					j.TimingDescription,
					j.Command,
					j.NormalizedCommand,
					j.ShellScriptPath,
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
