package outwriter

import (
	"time"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/schema"
)

// sampleReport is a small report covering every section the printers read.
func sampleReport() *schema.AnalysisReport {
	cobol := schema.FileRecord{
		Name: "PAYROLL.cbl", Path: "cobol/PAYROLL.cbl", AbsolutePath: "/src/cobol/PAYROLL.cbl", SizeBytes: 400,
		LineStats: schema.LineStats{TotalLines: 12, NonEmptyLines: 10, CommentLines: 2, CodeLines: 8},
	}
	jcl := schema.FileRecord{
		Name: "PAYJOB.jcl", Path: "jcl/PAYJOB.jcl", AbsolutePath: "/src/jcl/PAYJOB.jcl", SizeBytes: 200,
		LineStats: schema.LineStats{TotalLines: 5, NonEmptyLines: 5, CommentLines: 1, CodeLines: 4},
	}
	return &schema.AnalysisReport{
		ScanTimestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		RootDirectory: "/src",
		FileCounts:    map[schema.Category]int{schema.CobolPrograms: 1, schema.JCLFiles: 1, schema.OtherFiles: 2},
		FolderAnalysis: map[string]map[schema.Category]int{
			"cobol": {schema.CobolPrograms: 1},
			"jcl":   {schema.JCLFiles: 1},
			".":     {schema.OtherFiles: 2},
		},
		IOAnalysis: schema.IOAnalysis{
			InputFiles:  []string{"CUSTMAST"},
			OutputFiles: []string{"PAYRPT"},
			FileReferences: map[string][]schema.FileReference{
				"CUSTMAST": {{File: "cobol/PAYROLL.cbl", Operation: schema.InputOp}},
				"PAYRPT":   {{File: "cobol/PAYROLL.cbl", Operation: schema.OutputOp}},
			},
		},
		DetailedFiles: map[schema.Category][]schema.FileRecord{
			schema.CobolPrograms: {cobol},
			schema.JCLFiles:      {jcl},
		},
		JCLDatasets: []schema.DatasetDeclaration{
			{JCLFile: "jcl/PAYJOB.jcl", JobName: "PAYJOB", StepName: "STEP1", ProcName: "UNKNOWN", DDName: "OUT1", LineNumber: 3,
				DatasetName: "MY.DATA.SET", DispStatus: "NEW", DispNormal: "CATLG", DispAbnormal: "DELETE", DatasetType: schema.NamedDataset},
		},
		ExcludedCounts: map[schema.Category]int{},
		Summary: schema.Summary{
			TotalCobolPrograms:        1,
			TotalJCLFiles:             1,
			TotalOtherFiles:           2,
			TotalInputFileReferences:  1,
			TotalOutputFileReferences: 1,
			TotalJCLDatasets:          1,
			FoldersAnalyzed:           3,
			LineStatistics: map[string]schema.CategoryLineStats{
				string(schema.CobolPrograms): {TotalLines: 12, CodeLines: 8, CommentLines: 2, NonEmptyLines: 10, FilesWithCode: 1},
				string(schema.JCLFiles):      {TotalLines: 5, CodeLines: 4, CommentLines: 1, NonEmptyLines: 5, FilesWithCode: 1},
				schema.AllFilesKey:           {TotalLines: 17, CodeLines: 12, CommentLines: 3, NonEmptyLines: 15, FilesWithCode: 2},
			},
			ExcludedFiles: map[schema.Category]int{},
		},
		DatasetStatistics: schema.DatasetStatistics{
			TypeFrequency: []schema.FrequencyEntry{{Value: "DATASET", Count: 1}},
			DispFrequency: []schema.FrequencyEntry{{Value: "NEW", Count: 1}},
			TopDatasets:   []schema.FrequencyEntry{{Value: "MY.DATA.SET", Count: 1}},
			TopIONames:    []schema.FrequencyEntry{{Value: "CUSTMAST", Count: 1}, {Value: "PAYRPT", Count: 1}},
		},
	}
}

// sampleCron is a cron analysis with one file and one scheduled script.
func sampleCron() *schema.CronAnalysis {
	return &schema.CronAnalysis{
		TotalCronJobs:         1,
		UniqueCronCommands:    1,
		UniqueSchedules:       1,
		UniqueJobCombinations: 1,
		CronFilesFound:        1,
		MostFrequentCommands:  []schema.FrequencyEntry{{Value: "bash nightly.sh", Count: 1}},
		MostFrequentSchedules: []schema.ScheduleEntry{{Schedule: "0 2 * * *", Count: 1, Description: "minute 0 hour 2"}},
		CronDetails: []schema.CronFile{{
			File: "/src/ops/crontab", RelativePath: "ops/crontab", Count: 1,
			Jobs: []schema.CronJob{{Line: 2, Schedule: "0 2 * * *", Command: "bash /opt/jobs/nightly.sh", NormalizedCommand: "bash nightly.sh",
				TimingDescription: "minute 0 hour 2", IsShellScript: true, ShellScriptPath: "/opt/jobs/nightly.sh", ShellScriptName: "nightly.sh"}},
		}},
		ShellScriptAnalysis: schema.ShellScriptAnalysis{
			UniqueScheduledShellScripts: 1,
			TotalShellScriptJobs:        1,
			ScheduledScripts:            []string{"/opt/jobs/nightly.sh"},
			MostFrequentScripts:         []schema.ScheduledScript{{ScriptPath: "/opt/jobs/nightly.sh", ScriptName: "nightly.sh", Frequency: 1, UniqueSchedules: 1, Schedules: []string{"0 2 * * *"}}},
		},
		ShellScriptsInventory: []string{"ops/backup.sh"},
	}
}

// testConfig returns a config that renders narrow, uncolored tables.
func testConfig(mode schema.OutputMode, outputFile string) *contract.Config {
	return &contract.Config{
		Output:       mode,
		OutputFile:   outputFile,
		Precision:    1,
		Workers:      2,
		Width:        120,
		CacheBackend: schema.NoneBackend,
		ResultLimit:  contract.DefaultResultLimit,
	}
}
