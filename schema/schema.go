// Package schema has models and constants for all parts of mfscan.
package schema

// LineStats holds the line classification totals for a single file.
// CodeLines + CommentLines == NonEmptyLines <= TotalLines always holds.
type LineStats struct {
	TotalLines    int `json:"lines_of_code" yaml:"lines_of_code"`
	NonEmptyLines int `json:"non_empty_lines" yaml:"non_empty_lines"`
	CommentLines  int `json:"comment_lines" yaml:"comment_lines"`
	CodeLines     int `json:"code_lines" yaml:"code_lines"`
}

// Add accumulates another file's stats into s.
func (s *LineStats) Add(o LineStats) {
	s.TotalLines += o.TotalLines
	s.NonEmptyLines += o.NonEmptyLines
	s.CommentLines += o.CommentLines
	s.CodeLines += o.CodeLines
}

// FileRecord represents one scanned file in a known category.
type FileRecord struct {
	Name         string   `json:"name" yaml:"name"`
	Path         string   `json:"path" yaml:"path"` // relative to the scan root
	AbsolutePath string   `json:"absolute_path" yaml:"absolute_path"`
	Folder       string   `json:"-" yaml:"-"`
	Category     Category `json:"-" yaml:"-"`
	SizeBytes    int64    `json:"size" yaml:"size"`
	LineStats    `yaml:",inline"`
}

// IOReference is a single COBOL I/O operation naming a file or device.
type IOReference struct {
	Name       string    `json:"referenced_name" yaml:"referenced_name"`
	Operation  Operation `json:"operation" yaml:"operation"`
	SourceFile string    `json:"source_file" yaml:"source_file"`
}

// FileReference is the report view of an IOReference, keyed by its name.
type FileReference struct {
	File      string    `json:"file" yaml:"file"`
	Operation Operation `json:"operation" yaml:"operation"`
}

// DatasetDeclaration is one parsed JCL DD statement.
type DatasetDeclaration struct {
	JCLFile      string      `json:"jcl_file" yaml:"jcl_file"`
	JobName      string      `json:"job_name" yaml:"job_name"`
	StepName     string      `json:"step_name" yaml:"step_name"`
	ProcName     string      `json:"proc_name" yaml:"proc_name"`
	DDName       string      `json:"dd_name" yaml:"dd_name"`
	LineNumber   int         `json:"line_number" yaml:"line_number"`
	DatasetName  string      `json:"dataset_name" yaml:"dataset_name"`
	DispStatus   string      `json:"disp_status" yaml:"disp_status"`
	DispNormal   string      `json:"disp_normal" yaml:"disp_normal"`
	DispAbnormal string      `json:"disp_abnormal" yaml:"disp_abnormal"`
	DatasetType  DatasetType `json:"dataset_type" yaml:"dataset_type"`
	Volume       string      `json:"volume" yaml:"volume"`
	Unit         string      `json:"unit" yaml:"unit"`
	Space        string      `json:"space" yaml:"space"`
	DCB          string      `json:"dcb" yaml:"dcb"`
	OriginalLine string      `json:"original_line" yaml:"original_line"`
}

// FileAnalysis is the per-file result handed from a worker to the aggregator.
type FileAnalysis struct {
	Record   FileRecord           `json:"record"`
	Excluded bool                 `json:"excluded"`
	IORefs   []IOReference        `json:"io_refs,omitempty"`
	Datasets []DatasetDeclaration `json:"datasets,omitempty"`
	Err      string               `json:"error,omitempty"` // per-file failure, if any
}

// WalkEntry is a single file produced by the directory walk.
type WalkEntry struct {
	Path         string // absolute
	RelativePath string
	Folder       string // relative folder, "." for the root
}
