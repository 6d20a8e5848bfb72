package cron

import (
	"github.com/huangsam/mfscan/core/agg"
	"github.com/huangsam/mfscan/schema"
)

// Analyzer accumulates cron files and shell scripts found during a walk.
// Like agg.Aggregator it is owned by a single goroutine.
type Analyzer struct {
	files        []schema.CronFile
	commands     *agg.FrequencyTable
	schedules    *agg.FrequencyTable
	combinations map[string]struct{}

	scripts         *agg.FrequencyTable
	scriptSchedules map[string]*agg.FrequencyTable
	scriptJobs      []schema.ShellScriptJob
	inventory       []string
}

// NewAnalyzer creates an empty Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		commands:        agg.NewFrequencyTable(),
		schedules:       agg.NewFrequencyTable(),
		combinations:    make(map[string]struct{}),
		scripts:         agg.NewFrequencyTable(),
		scriptSchedules: make(map[string]*agg.FrequencyTable),
	}
}

// AddShellScript records a shell script in the inventory.
func (a *Analyzer) AddShellScript(relPath string) {
	a.inventory = append(a.inventory, relPath)
}

// AddCronFile parses a crontab and records its jobs. Files without jobs are ignored.
func (a *Analyzer) AddCronFile(file, relPath, text string) {
	entries := ParseCrontab(text)
	if len(entries) == 0 {
		return
	}
	cf := schema.CronFile{File: file, RelativePath: relPath}
	for _, e := range entries {
		normalized := NormalizeCommand(e.Command)
		timing := DescribeTiming(e.Fields)
		a.commands.Add(normalized)
		a.schedules.Add(e.Schedule)
		a.combinations[e.Schedule+"||"+normalized] = struct{}{}

		job := schema.CronJob{
			Line:              e.Line,
			Schedule:          e.Schedule,
			Command:           e.Command,
			NormalizedCommand: normalized,
			TimingDescription: timing,
		}
		if ref, ok := ExtractShellScript(e.Command); ok {
			job.IsShellScript = true
			job.ShellScriptPath = ref.Path
			job.ShellScriptName = ref.Name
			a.addScriptJob(ref, e, timing, file)
		}
		cf.Jobs = append(cf.Jobs, job)
	}
	cf.Count = len(cf.Jobs)
	a.files = append(a.files, cf)
}

func (a *Analyzer) addScriptJob(ref ScriptRef, e Entry, timing, file string) {
	a.scripts.Add(ref.Path)
	sched, ok := a.scriptSchedules[ref.Path]
	if !ok {
		sched = agg.NewFrequencyTable()
		a.scriptSchedules[ref.Path] = sched
	}
	sched.Add(e.Schedule)
	a.scriptJobs = append(a.scriptJobs, schema.ShellScriptJob{
		ScriptPath:        ref.Path,
		ScriptName:        ref.Name,
		Schedule:          e.Schedule,
		TimingDescription: timing,
		CronFile:          file,
		Line:              e.Line,
		FullCommand:       e.Command,
	})
}

// Report builds the cron analysis. topN bounds every ranked list.
func (a *Analyzer) Report(topN int) *schema.CronAnalysis {
	total := 0
	for _, f := range a.files {
		total += f.Count
	}

	var schedules []schema.ScheduleEntry
	for _, e := range a.schedules.Top(topN) {
		schedules = append(schedules, schema.ScheduleEntry{
			Schedule: e.Value, Count: e.Count, Description: DescribeSchedule(e.Value),
		})
	}

	var scripts []schema.ScheduledScript
	for _, e := range a.scripts.Top(topN) {
		seen := a.scriptSchedules[e.Value].Entries()
		uniq := make([]string, len(seen))
		for i, s := range seen {
			uniq[i] = s.Value
		}
		scripts = append(scripts, schema.ScheduledScript{
			ScriptPath:      e.Value,
			ScriptName:      baseName(e.Value),
			Frequency:       e.Count,
			UniqueSchedules: len(uniq),
			Schedules:       uniq,
		})
	}

	scheduled := make([]string, 0, a.scripts.Len())
	for _, e := range a.scripts.Entries() {
		scheduled = append(scheduled, e.Value)
	}

	return &schema.CronAnalysis{
		TotalCronJobs:         total,
		UniqueCronCommands:    a.commands.Len(),
		UniqueSchedules:       a.schedules.Len(),
		UniqueJobCombinations: len(a.combinations),
		CronFilesFound:        len(a.files),
		MostFrequentCommands:  a.commands.Top(topN),
		MostFrequentSchedules: schedules,
		CronDetails:           a.files,
		CommandFrequency:      a.commands.Map(),
		ScheduleFrequency:     a.schedules.Map(),
		ShellScriptAnalysis: schema.ShellScriptAnalysis{
			UniqueScheduledShellScripts: a.scripts.Len(),
			TotalShellScriptJobs:        len(a.scriptJobs),
			ScheduledScripts:            scheduled,
			MostFrequentScripts:         scripts,
			ShellScriptJobs:             a.scriptJobs,
			ScriptFrequency:             a.scripts.Map(),
		},
		ShellScriptsInventory: a.inventory,
	}
}
