package schema

// CronJob is a single scheduled line from a crontab.
type CronJob struct {
	Line              int    `json:"line" yaml:"line"`
	Schedule          string `json:"schedule" yaml:"schedule"`
	Command           string `json:"command" yaml:"command"`
	NormalizedCommand string `json:"normalized_command" yaml:"normalized_command"`
	TimingDescription string `json:"timing_description" yaml:"timing_description"`
	IsShellScript     bool   `json:"is_shell_script" yaml:"is_shell_script"`
	ShellScriptPath   string `json:"shell_script_path,omitempty" yaml:"shell_script_path,omitempty"`
	ShellScriptName   string `json:"shell_script_name,omitempty" yaml:"shell_script_name,omitempty"`
}

// CronFile groups the jobs found in one cron file.
type CronFile struct {
	File         string    `json:"file" yaml:"file"`
	RelativePath string    `json:"relative_path" yaml:"relative_path"`
	Jobs         []CronJob `json:"jobs" yaml:"jobs"`
	Count        int       `json:"count" yaml:"count"`
}

// ScheduleEntry is a ranked schedule with its human-readable timing.
type ScheduleEntry struct {
	Schedule    string `json:"schedule" yaml:"schedule"`
	Count       int    `json:"count" yaml:"count"`
	Description string `json:"description" yaml:"description"`
}

// ScheduledScript is a shell script invoked from one or more cron jobs.
type ScheduledScript struct {
	ScriptPath      string   `json:"script_path" yaml:"script_path"`
	ScriptName      string   `json:"script_name" yaml:"script_name"`
	Frequency       int      `json:"frequency" yaml:"frequency"`
	UniqueSchedules int      `json:"unique_schedules" yaml:"unique_schedules"`
	Schedules       []string `json:"schedules" yaml:"schedules"`
}

// ShellScriptJob ties a cron job back to the script it runs.
type ShellScriptJob struct {
	ScriptPath        string `json:"script_path" yaml:"script_path"`
	ScriptName        string `json:"script_name" yaml:"script_name"`
	Schedule          string `json:"schedule" yaml:"schedule"`
	TimingDescription string `json:"timing_description" yaml:"timing_description"`
	CronFile          string `json:"cron_file" yaml:"cron_file"`
	Line              int    `json:"line" yaml:"line"`
	FullCommand       string `json:"full_command" yaml:"full_command"`
}

// ShellScriptAnalysis summarizes scheduled shell scripts.
type ShellScriptAnalysis struct {
	UniqueScheduledShellScripts int               `json:"unique_scheduled_shell_scripts" yaml:"unique_scheduled_shell_scripts"`
	TotalShellScriptJobs        int               `json:"total_shell_script_jobs" yaml:"total_shell_script_jobs"`
	ScheduledScripts            []string          `json:"scheduled_scripts" yaml:"scheduled_scripts"`
	MostFrequentScripts         []ScheduledScript `json:"most_frequent_scripts" yaml:"most_frequent_scripts"`
	ShellScriptJobs             []ShellScriptJob  `json:"shell_script_jobs" yaml:"shell_script_jobs"`
	ScriptFrequency             map[string]int    `json:"script_frequency" yaml:"script_frequency"`
}

// CronAnalysis is the result of the cron scan.
type CronAnalysis struct {
	TotalCronJobs         int                 `json:"total_cron_jobs" yaml:"total_cron_jobs"`
	UniqueCronCommands    int                 `json:"unique_cron_commands" yaml:"unique_cron_commands"`
	UniqueSchedules       int                 `json:"unique_schedules" yaml:"unique_schedules"`
	UniqueJobCombinations int                 `json:"unique_job_combinations" yaml:"unique_job_combinations"`
	CronFilesFound        int                 `json:"cron_files_found" yaml:"cron_files_found"`
	MostFrequentCommands  []FrequencyEntry    `json:"most_frequent_commands" yaml:"most_frequent_commands"`
	MostFrequentSchedules []ScheduleEntry     `json:"most_frequent_schedules" yaml:"most_frequent_schedules"`
	CronDetails           []CronFile          `json:"cron_details" yaml:"cron_details"`
	CommandFrequency      map[string]int      `json:"command_frequency" yaml:"command_frequency"`
	ScheduleFrequency     map[string]int      `json:"schedule_frequency" yaml:"schedule_frequency"`
	ShellScriptAnalysis   ShellScriptAnalysis `json:"shell_script_analysis" yaml:"shell_script_analysis"`
	ShellScriptsInventory []string            `json:"shell_scripts_inventory" yaml:"shell_scripts_inventory"`
}
