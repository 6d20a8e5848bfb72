package core

import (
	"os"
	"path/filepath"

	"github.com/huangsam/mfscan/core/jcl"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/schema"
	"go.uber.org/zap"
)

// FileAnalysisBuilder runs the per-file pipeline. Each step is a no-op once
// the file has failed to read or has been excluded.
type FileAnalysisBuilder struct {
	entry   schema.WalkEntry
	parser  *jcl.Parser
	result  schema.FileAnalysis
	content string
	done    bool
}

// NewFileAnalysisBuilder is the starting point for analyzing one walked file.
func NewFileAnalysisBuilder(entry schema.WalkEntry, parser *jcl.Parser) *FileAnalysisBuilder {
	return &FileAnalysisBuilder{
		entry:  entry,
		parser: parser,
		result: schema.FileAnalysis{
			Record: schema.FileRecord{
				Name:         filepath.Base(entry.Path),
				Path:         entry.RelativePath,
				AbsolutePath: entry.Path,
				Folder:       entry.Folder,
				Category:     Classify(entry.Path),
			},
		},
	}
}

// ReadContent loads the file. Unrecognized files are only counted, so they are never read.
// A read failure is recorded on the result and stops the remaining steps.
func (b *FileAnalysisBuilder) ReadContent() *FileAnalysisBuilder {
	if !b.result.Record.Category.IsAnalyzed() {
		b.done = true
		return b
	}
	data, err := os.ReadFile(b.entry.Path)
	if err != nil {
		contract.Logger().Debug("unreadable file", zap.String("path", b.entry.RelativePath), zap.Error(err))
		b.result.Err = err.Error()
		b.done = true
		return b
	}
	b.result.Record.SizeBytes = int64(len(data))
	b.content = DecodeLossy(data)
	return b
}

// CheckExclusion marks migrated files. Excluded files get no further analysis.
func (b *FileAnalysisBuilder) CheckExclusion() *FileAnalysisBuilder {
	if b.done {
		return b
	}
	if IsExcluded(b.content) {
		b.result.Excluded = true
		b.done = true
	}
	return b
}

// CountLines fills in the line statistics.
func (b *FileAnalysisBuilder) CountLines() *FileAnalysisBuilder {
	if b.done {
		return b
	}
	b.result.Record.LineStats = CountLines(b.content, b.entry.Path)
	return b
}

// ScanIO extracts I/O references from COBOL programs.
func (b *FileAnalysisBuilder) ScanIO() *FileAnalysisBuilder {
	if b.done || b.result.Record.Category != schema.CobolPrograms {
		return b
	}
	b.result.IORefs = ScanIO(b.content, b.entry.RelativePath)
	return b
}

// ParseDatasets extracts DD declarations from JCL jobs and procedures.
func (b *FileAnalysisBuilder) ParseDatasets() *FileAnalysisBuilder {
	if b.done {
		return b
	}
	switch b.result.Record.Category {
	case schema.JCLFiles, schema.Procedures:
		b.result.Datasets = b.parser.Parse(b.content, b.entry.RelativePath)
	}
	return b
}

// Build returns the finished analysis.
func (b *FileAnalysisBuilder) Build() schema.FileAnalysis {
	return b.result
}
