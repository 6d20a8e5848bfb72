// Package parquet provides data structures and functions for exporting mfscan
// scan data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/mfscan/schema"
	"github.com/parquet-go/parquet-go"
)

// ScanRun represents a single mfscan run with metadata.
// This struct maps to the mfscan_scan_runs database table.
type ScanRun struct {
	// AnalysisID is the unique identifier for this scan run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// RootDirectory is the absolute path of the scanned tree
	RootDirectory string `parquet:"root_directory,snappy"`

	// StartTime is when the scan began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the scan completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the scan in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalFilesAnalyzed is the number of files walked in this run
	TotalFilesAnalyzed int32 `parquet:"total_files_analyzed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileRecord represents the classification and line stats of one file.
// This struct maps to the mfscan_file_records database table.
type FileRecord struct {
	AnalysisID    int64     `parquet:"analysis_id,snappy"`
	FilePath      string    `parquet:"file_path,snappy"`
	Category      string    `parquet:"category,dict,snappy"`
	AnalysisTime  time.Time `parquet:"analysis_time,snappy"`
	SizeBytes     int64     `parquet:"size_bytes,snappy"`
	TotalLines    int32     `parquet:"total_lines,snappy"`
	NonEmptyLines int32     `parquet:"non_empty_lines,snappy"`
	CommentLines  int32     `parquet:"comment_lines,snappy"`
	CodeLines     int32     `parquet:"code_lines,snappy"`
	Excluded      bool      `parquet:"excluded,snappy"`
}

// DatasetRecord represents one JCL DD declaration.
// This struct maps to the mfscan_dataset_records database table.
type DatasetRecord struct {
	AnalysisID   int64  `parquet:"analysis_id,snappy"`
	JCLFile      string `parquet:"jcl_file,snappy"`
	LineNumber   int32  `parquet:"line_number,snappy"`
	JobName      string `parquet:"job_name,snappy"`
	StepName     string `parquet:"step_name,snappy"`
	ProcName     string `parquet:"proc_name,snappy"`
	DDName       string `parquet:"dd_name,snappy"`
	DatasetName  string `parquet:"dataset_name,snappy"`
	DatasetType  string `parquet:"dataset_type,dict,snappy"`
	DispStatus   string `parquet:"disp_status,dict,snappy"`
	DispNormal   string `parquet:"disp_normal,dict,snappy"`
	DispAbnormal string `parquet:"disp_abnormal,dict,snappy"`
}

// IOReference represents one COBOL SELECT/ASSIGN reference.
type IOReference struct {
	Name       string `parquet:"name,snappy"`
	Operation  string `parquet:"operation,dict,snappy"`
	SourceFile string `parquet:"source_file,snappy"`
}

// writeParquet writes rows to outputPath, inferring the schema from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteScanRunsParquet writes a slice of ScanRun structs to a Parquet file.
func WriteScanRunsParquet(data []ScanRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteFileRecordsParquet writes a slice of FileRecord structs to a Parquet file.
func WriteFileRecordsParquet(data []FileRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDatasetRecordsParquet writes a slice of DatasetRecord structs to a Parquet file.
func WriteDatasetRecordsParquet(data []DatasetRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteIOReferencesParquet writes a slice of IOReference structs to a Parquet file.
func WriteIOReferencesParquet(data []IOReference, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertScanRunRecords converts schema.ScanRunRecord to ScanRun for Parquet export.
func ConvertScanRunRecords(records []schema.ScanRunRecord) []ScanRun {
	result := make([]ScanRun, len(records))
	for i, record := range records {
		result[i] = ScanRun{
			AnalysisID:         record.AnalysisID,
			RootDirectory:      record.RootDirectory,
			StartTime:          record.StartTime,
			EndTime:            record.EndTime,
			RunDurationMs:      record.RunDurationMs,
			TotalFilesAnalyzed: record.TotalFilesAnalyzed,
			ConfigParams:       record.ConfigParams,
		}
	}
	return result
}

// ConvertFileRecordRows converts schema.FileRecordRow to FileRecord for Parquet export.
func ConvertFileRecordRows(records []schema.FileRecordRow) []FileRecord {
	result := make([]FileRecord, len(records))
	for i, record := range records {
		result[i] = FileRecord(record)
	}
	return result
}

// ConvertDatasetRecordRows converts schema.DatasetRecordRow to DatasetRecord for Parquet export.
func ConvertDatasetRecordRows(records []schema.DatasetRecordRow) []DatasetRecord {
	result := make([]DatasetRecord, len(records))
	for i, record := range records {
		result[i] = DatasetRecord(record)
	}
	return result
}

// ConvertFileRecords converts report file records, stamping them with the scan time.
func ConvertFileRecords(files []schema.FileRecord, scannedAt time.Time) []FileRecord {
	result := make([]FileRecord, len(files))
	for i, f := range files {
		result[i] = FileRecord{
			FilePath:      f.Path,
			Category:      string(f.Category),
			AnalysisTime:  scannedAt,
			SizeBytes:     f.SizeBytes,
			TotalLines:    int32(f.TotalLines),
			NonEmptyLines: int32(f.NonEmptyLines),
			CommentLines:  int32(f.CommentLines),
			CodeLines:     int32(f.CodeLines),
		}
	}
	return result
}

// ConvertDatasetDeclarations converts parsed DD declarations for Parquet export.
func ConvertDatasetDeclarations(decls []schema.DatasetDeclaration) []DatasetRecord {
	result := make([]DatasetRecord, len(decls))
	for i, d := range decls {
		result[i] = DatasetRecord{
			JCLFile:      d.JCLFile,
			LineNumber:   int32(d.LineNumber),
			JobName:      d.JobName,
			StepName:     d.StepName,
			ProcName:     d.ProcName,
			DDName:       d.DDName,
			DatasetName:  d.DatasetName,
			DatasetType:  string(d.DatasetType),
			DispStatus:   d.DispStatus,
			DispNormal:   d.DispNormal,
			DispAbnormal: d.DispAbnormal,
		}
	}
	return result
}

// ConvertFileReferences flattens the io_analysis references, sorted by name.
func ConvertFileReferences(names []string, refs map[string][]schema.FileReference) []IOReference {
	var result []IOReference
	for _, name := range names {
		for _, r := range refs[name] {
			result = append(result, IOReference{
				Name:       name,
				Operation:  string(r.Operation),
				SourceFile: r.File,
			})
		}
	}
	return result
}
