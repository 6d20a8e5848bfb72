package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/mfscan/schema"
)

// File kind label constants.
const (
	CodeValue    = "Code"     // File has at least one code line
	CommentValue = "Comments" // File has only comment lines
	BlankValue   = "Blank"    // File has lines but all are whitespace
	EmptyValue   = "Empty"    // File has no lines
)

// Color variables for console output.
var (
	CodeColor    = color.New(color.FgGreen, color.Bold) // CodeColor marks files carrying logic.
	CommentColor = color.New(color.FgYellow)            // CommentColor marks comment-only members.
	BlankColor   = color.New(color.FgCyan)              // BlankColor marks whitespace-only members.
	EmptyColor   = color.New(color.FgRed)               // EmptyColor marks zero-line members.
)

// datasetColors maps DD types to their table colors.
var datasetColors = map[schema.DatasetType]*color.Color{
	schema.DummyDataset:     color.New(color.FgHiBlack),
	schema.SysoutDataset:    color.New(color.FgCyan),
	schema.SysinDataset:     color.New(color.FgBlue),
	schema.TemporaryDataset: color.New(color.FgYellow),
	schema.NamedDataset:     color.New(color.FgGreen, color.Bold),
	schema.HFSDataset:       color.New(color.FgMagenta),
	schema.OtherDataset:     color.New(color.FgWhite),
}

// GetPlainLabel returns a plain text label describing what a file contains,
// based on its line stats. This is the core logic used for CSV, JSON, and
// table printing.
func GetPlainLabel(stats schema.LineStats) string {
	switch {
	case stats.TotalLines == 0:
		return EmptyValue
	case stats.CodeLines > 0:
		return CodeValue
	case stats.CommentLines > 0:
		return CommentValue
	default:
		return BlankValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(stats schema.LineStats) string {
	text := GetPlainLabel(stats)

	switch text {
	case CodeValue:
		return CodeColor.Sprint(text)
	case CommentValue:
		return CommentColor.Sprint(text)
	case BlankValue:
		return BlankColor.Sprint(text)
	default:
		return EmptyColor.Sprint(text)
	}
}

// GetDatasetTypeLabel returns the dataset type, colored when useColors is set.
func GetDatasetTypeLabel(dt schema.DatasetType, useColors bool) string {
	if !useColors {
		return string(dt)
	}
	if c, ok := datasetColors[dt]; ok {
		return c.Sprint(string(dt))
	}
	return string(dt)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated
// as prefixes. Patterns starting with '.' are treated as suffix (extension) matches.
// A user can provide patterns like "archive/", "*.bak", ".lst".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.bak)
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path+"/", ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mfscan_cache.db"
	}
	return filepath.Join(homeDir, ".mfscan_cache.db")
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mfscan_analysis.db"
	}
	return filepath.Join(homeDir, ".mfscan_analysis.db")
}

// ToSlashRel returns path relative to root using forward slashes.
// Paths outside root are returned unchanged.
func ToSlashRel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
