// Package jcl extracts dataset declarations from JCL jobs and procedures.
package jcl

import (
	"errors"
	"regexp"
	"strings"

	"github.com/huangsam/mfscan/schema"
	"go.uber.org/zap"
)

// UnknownContext is reported for a job, step or proc not yet seen in the file.
const UnknownContext = "UNKNOWN"

// continuationNameWidth is how far past "//" a continuation may not carry a blank.
const continuationNameWidth = 13

var procRef = regexp.MustCompile(`PROC=([^,\s]+)`)

// Options tune the parser.
type Options struct {
	EmitAll bool        // keep DD statements that name no dataset
	Logger  *zap.Logger // receives dropped-statement diagnostics; nil disables them
}

// ScanContext is the per-file state carried from line to line.
type ScanContext struct {
	Job         string
	Step        string
	Proc        string
	pending     []string
	pendingLine int
}

// NewScanContext returns a context with no job, step or proc seen.
func NewScanContext() *ScanContext {
	return &ScanContext{Job: UnknownContext, Step: UnknownContext, Proc: UnknownContext}
}

// Accumulating reports whether a continued DD statement is buffered.
func (sc *ScanContext) Accumulating() bool {
	return len(sc.pending) > 0
}

// Parser turns JCL text into dataset declarations.
type Parser struct {
	opts   Options
	logger *zap.Logger
}

// NewParser creates a Parser.
func NewParser(opts Options) *Parser {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{opts: opts, logger: logger}
}

// Parse scans text line by line and returns every declaration it emits, in source order.
// jclFile is recorded on each declaration. Malformed statements are dropped, never fatal.
func (p *Parser) Parse(text, jclFile string) []schema.DatasetDeclaration {
	sc := NewScanContext()
	var out []schema.DatasetDeclaration
	emit := func() {
		if d, ok := p.flush(sc, jclFile); ok {
			out = append(out, d)
		}
	}

	lineNumber := 0
	for _, raw := range splitLines(text) {
		lineNumber++
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "//*") {
			continue
		}
		upper := strings.ToUpper(line)
		isStatement := strings.HasPrefix(line, "//")

		// A new JOB, EXEC or PROC ends any dangling DD under the old context
		if isStatement && sc.Accumulating() && !hasKeyword(upper, "DD") && !isContinuation(line) {
			emit()
		}

		switch {
		case isStatement && hasKeyword(upper, "JOB"):
			sc.Job = labelOf(line)
		case isStatement && hasKeyword(upper, "EXEC"):
			sc.Step = labelOf(line)
			if m := procRef.FindStringSubmatch(upper); m != nil {
				sc.Proc = m[1]
			}
		case isStatement && hasKeyword(upper, "PROC"):
			sc.Proc = labelOf(line)
		case isStatement && hasKeyword(upper, "DD"):
			if sc.Accumulating() {
				emit()
			}
			sc.pending = []string{line}
			sc.pendingLine = lineNumber
			if !continues(line) {
				emit()
			}
		case sc.Accumulating() && isContinuation(line):
			sc.pending = append(sc.pending, strings.TrimSpace(line[2:]))
			if !continues(line) {
				emit()
			}
		}
	}
	if sc.Accumulating() {
		emit()
	}
	return out
}

// flush parses the buffered statement, resets the buffer and reports whether it produced a declaration.
func (p *Parser) flush(sc *ScanContext, jclFile string) (schema.DatasetDeclaration, bool) {
	statement := strings.Join(sc.pending, " ")
	line := sc.pendingLine
	sc.pending = nil
	sc.pendingLine = 0

	decl, err := ParseStatement(statement, p.opts.EmitAll)
	if err != nil {
		if !errors.Is(err, ErrNoDatasetInfo) {
			p.logger.Debug("Dropped DD statement",
				zap.String("file", jclFile), zap.Int("line", line), zap.Error(err))
		}
		return schema.DatasetDeclaration{}, false
	}
	decl.JCLFile = jclFile
	decl.JobName = sc.Job
	decl.StepName = sc.Step
	decl.ProcName = sc.Proc
	decl.LineNumber = line
	return decl, true
}

// hasKeyword reports whether kw appears as a blank-delimited operation field.
func hasKeyword(upper, kw string) bool {
	return strings.Contains(upper, " "+kw+" ") || strings.HasSuffix(upper, " "+kw)
}

// labelOf returns the name field of a statement without the leading "//".
func labelOf(line string) string {
	return strings.Fields(line)[0][2:]
}

func continues(line string) bool {
	return strings.HasSuffix(strings.TrimRight(line, " \t"), ",")
}

// isContinuation accepts "//" followed either by a blank name field or by
// text with no blank in the first columns after the prefix.
func isContinuation(line string) bool {
	if !strings.HasPrefix(line, "//") || len(line) <= 2 {
		return false
	}
	if line[2] == ' ' || line[2] == '\t' {
		return true
	}
	end := min(len(line), 2+continuationNameWidth)
	return !strings.Contains(line[2:end], " ")
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
