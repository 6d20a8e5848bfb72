package core

import (
	"path/filepath"
	"strings"

	"github.com/huangsam/mfscan/schema"
)

// commentRule decides whether a non-blank line is a comment.
// raw is the line as read; trimmed has surrounding whitespace removed.
type commentRule func(raw, trimmed string) bool

// cobolComment matches '*' as the first visible character or in column 7,
// plus the '//' form used by some dialects.
func cobolComment(raw, trimmed string) bool {
	if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "//") {
		return true
	}
	r := []rune(raw)
	return len(r) > 6 && r[6] == '*'
}

func jclComment(_, trimmed string) bool {
	return strings.HasPrefix(trimmed, "//*")
}

func controlCardComment(_, trimmed string) bool {
	return strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//")
}

// commentRules is keyed by extension rather than category: .prc follows the
// COBOL rules while .proc follows JCL, and .prn has no comment syntax at all.
var commentRules = map[string]commentRule{
	".cbl": cobolComment, ".cob": cobolComment, ".cobol": cobolComment, ".pgm": cobolComment,
	".cpy": cobolComment, ".copy": cobolComment, ".inc": cobolComment, ".prc": cobolComment,
	".jcl": jclComment, ".job": jclComment, ".proc": jclComment,
	".ctc": controlCardComment, ".ctl": controlCardComment, ".card": controlCardComment,
	".cc": controlCardComment, ".ctrl": controlCardComment,
}

// DecodeLossy converts raw bytes to text, dropping invalid UTF-8 sequences.
func DecodeLossy(content []byte) string {
	return strings.ToValidUTF8(string(content), "")
}

// SplitLines splits text on \n, \r\n and lone \r. A trailing line without a
// terminator still counts and an empty text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// CountLines classifies every line of text using the comment rule for path's extension.
func CountLines(text, path string) schema.LineStats {
	rule := commentRules[strings.ToLower(filepath.Ext(path))]
	var stats schema.LineStats
	for _, line := range SplitLines(text) {
		stats.TotalLines++
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		stats.NonEmptyLines++
		if rule != nil && rule(line, trimmed) {
			stats.CommentLines++
		} else {
			stats.CodeLines++
		}
	}
	return stats
}
