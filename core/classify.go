package core

import (
	"path/filepath"
	"strings"

	"github.com/huangsam/mfscan/schema"
)

// ExclusionMarker flags a file whose job has already been migrated.
const ExclusionMarker = "THIS JOB IS ALREADY ON LINUX"

// categoryExtensions maps each known category to the lowercase extensions it owns.
var categoryExtensions = map[schema.Category][]string{
	schema.CobolPrograms: {".cbl", ".cob", ".cobol", ".pgm"},
	schema.JCLFiles:      {".jcl", ".job"},
	schema.Copybooks:     {".cpy", ".copy", ".inc"},
	schema.Procedures:    {".prc", ".proc", ".prn"},
	schema.ControlCards:  {".ctc", ".ctl", ".card", ".cc", ".ctrl"},
	schema.DataFiles:     {".dat", ".data", ".txt", ".csv", ".seq"},
}

// extensionIndex is the inverted categoryExtensions table.
var extensionIndex = func() map[string]schema.Category {
	idx := make(map[string]schema.Category)
	for cat, exts := range categoryExtensions {
		for _, ext := range exts {
			idx[ext] = cat
		}
	}
	return idx
}()

// Classify maps a file path to its category by lowercase extension.
func Classify(path string) schema.Category {
	if cat, ok := extensionIndex[strings.ToLower(filepath.Ext(path))]; ok {
		return cat
	}
	return schema.OtherFiles
}

// IsExcluded reports whether the content carries the exclusion marker, ignoring case.
func IsExcluded(content string) bool {
	return strings.Contains(strings.ToUpper(content), ExclusionMarker)
}
