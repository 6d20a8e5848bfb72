package schema

import "time"

// IOAnalysis is the project-wide view of COBOL I/O references.
type IOAnalysis struct {
	InputFiles     []string                   `json:"input_files" yaml:"input_files"`
	OutputFiles    []string                   `json:"output_files" yaml:"output_files"`
	FileReferences map[string][]FileReference `json:"file_references" yaml:"file_references"`
}

// CategoryLineStats sums line stats over every file of one category.
type CategoryLineStats struct {
	TotalLines            int `json:"total_lines" yaml:"total_lines"`
	CodeLines             int `json:"code_lines" yaml:"code_lines"`
	CommentLines          int `json:"comment_lines" yaml:"comment_lines"`
	NonEmptyLines         int `json:"non_empty_lines" yaml:"non_empty_lines"`
	FilesWithOnlyComments int `json:"files_with_only_comments" yaml:"files_with_only_comments"`
	FilesWithCode         int `json:"files_with_code" yaml:"files_with_code"`
	EmptyFiles            int `json:"empty_files" yaml:"empty_files"`
}

// Summary is the derived statistics block of the report.
type Summary struct {
	TotalCobolPrograms        int                          `json:"total_cobol_programs" yaml:"total_cobol_programs"`
	TotalJCLFiles             int                          `json:"total_jcl_files" yaml:"total_jcl_files"`
	TotalCopybooks            int                          `json:"total_copybooks" yaml:"total_copybooks"`
	TotalProcedures           int                          `json:"total_procedures" yaml:"total_procedures"`
	TotalControlCards         int                          `json:"total_control_cards" yaml:"total_control_cards"`
	TotalDataFiles            int                          `json:"total_data_files" yaml:"total_data_files"`
	TotalInputFileReferences  int                          `json:"total_input_file_references" yaml:"total_input_file_references"`
	TotalOutputFileReferences int                          `json:"total_output_file_references" yaml:"total_output_file_references"`
	TotalJCLDatasets          int                          `json:"total_jcl_datasets" yaml:"total_jcl_datasets"`
	TotalOtherFiles           int                          `json:"total_other_files" yaml:"total_other_files"`
	FoldersAnalyzed           int                          `json:"folders_analyzed" yaml:"folders_analyzed"`
	LineStatistics            map[string]CategoryLineStats `json:"line_statistics" yaml:"line_statistics"`
	ExcludedFiles             map[Category]int             `json:"excluded_files" yaml:"excluded_files"`
	TotalExcludedFiles        int                          `json:"total_excluded_files" yaml:"total_excluded_files"`
}

// FrequencyEntry is one row of a ranked frequency table.
type FrequencyEntry struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// DatasetStatistics holds frequency tables derived from the DD declarations.
type DatasetStatistics struct {
	TypeFrequency []FrequencyEntry `json:"type_frequency" yaml:"type_frequency"`
	DispFrequency []FrequencyEntry `json:"disp_frequency" yaml:"disp_frequency"`
	TopDatasets   []FrequencyEntry `json:"top_datasets" yaml:"top_datasets"`
	TopIONames    []FrequencyEntry `json:"top_io_names" yaml:"top_io_names"`
}

// AnalysisReport is the root aggregate produced by a scan.
type AnalysisReport struct {
	ScanTimestamp     time.Time                   `json:"scan_timestamp" yaml:"scan_timestamp"`
	RootDirectory     string                      `json:"root_directory" yaml:"root_directory"`
	FileCounts        map[Category]int            `json:"file_counts" yaml:"file_counts"`
	FolderAnalysis    map[string]map[Category]int `json:"folder_analysis" yaml:"folder_analysis"`
	IOAnalysis        IOAnalysis                  `json:"io_analysis" yaml:"io_analysis"`
	DetailedFiles     map[Category][]FileRecord   `json:"detailed_files" yaml:"detailed_files"`
	JCLDatasets       []DatasetDeclaration        `json:"jcl_datasets" yaml:"jcl_datasets"`
	ExcludedCounts    map[Category]int            `json:"excluded_counts" yaml:"excluded_counts"`
	Summary           Summary                     `json:"summary" yaml:"summary"`
	DatasetStatistics DatasetStatistics           `json:"dataset_statistics" yaml:"dataset_statistics"`
	CronAnalysis      *CronAnalysis               `json:"cron_analysis,omitempty" yaml:"cron_analysis,omitempty"`
	FileErrors        map[string]string           `json:"file_errors,omitempty" yaml:"file_errors,omitempty"`
}

// FolderRow is one folder's category breakdown, used by the folders view.
type FolderRow struct {
	Folder string           `json:"folder" yaml:"folder"`
	Total  int              `json:"total" yaml:"total"`
	Counts map[Category]int `json:"counts" yaml:"counts"`
}

// IONameRow summarizes every reference to one I/O name, used by the io view.
type IONameRow struct {
	Name       string   `json:"name" yaml:"name"`
	Inputs     int      `json:"inputs" yaml:"inputs"`
	Outputs    int      `json:"outputs" yaml:"outputs"`
	Files      []string `json:"files" yaml:"files"`
	References int      `json:"references" yaml:"references"`
}
