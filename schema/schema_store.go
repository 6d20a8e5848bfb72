package schema

import "time"

// ScanRunRecord represents a row from the mfscan_scan_runs table.
type ScanRunRecord struct {
	AnalysisID         int64
	RootDirectory      string
	StartTime          time.Time
	EndTime            *time.Time
	RunDurationMs      *int32
	TotalFilesAnalyzed int32
	ConfigParams       *string
}

// FileRecordRow represents a row from the mfscan_file_records table.
type FileRecordRow struct {
	AnalysisID    int64
	FilePath      string
	Category      string
	AnalysisTime  time.Time
	SizeBytes     int64
	TotalLines    int32
	NonEmptyLines int32
	CommentLines  int32
	CodeLines     int32
	Excluded      bool
}

// DatasetRecordRow represents a row from the mfscan_dataset_records table.
type DatasetRecordRow struct {
	AnalysisID   int64
	JCLFile      string
	LineNumber   int32
	JobName      string
	StepName     string
	ProcName     string
	DDName       string
	DatasetName  string
	DatasetType  string
	DispStatus   string
	DispNormal   string
	DispAbnormal string
}
