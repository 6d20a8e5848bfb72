package core

import (
	"regexp"
	"strings"

	"github.com/huangsam/mfscan/schema"
)

// ioPattern pairs a COBOL statement pattern with the direction it implies.
// The first capture group is the referenced name.
type ioPattern struct {
	re *regexp.Regexp
	op schema.Operation
}

// ioPatterns are evaluated in order against the uppercased program text.
var ioPatterns = []ioPattern{
	{regexp.MustCompile(`(?i)READ\s+(\w+)`), schema.InputOp},
	{regexp.MustCompile(`(?i)ACCEPT\s+.*FROM\s+(\w+)`), schema.InputOp},
	{regexp.MustCompile(`(?i)OPEN\s+INPUT\s+(\w+)`), schema.InputOp},
	{regexp.MustCompile(`(?i)SELECT\s+(\w+)\s+ASSIGN\s+TO\s+.*INPUT`), schema.InputOp},
	{regexp.MustCompile(`(?i)WRITE\s+(\w+)`), schema.OutputOp},
	{regexp.MustCompile(`(?i)DISPLAY\s+.*UPON\s+(\w+)`), schema.OutputOp},
	{regexp.MustCompile(`(?i)OPEN\s+OUTPUT\s+(\w+)`), schema.OutputOp},
	{regexp.MustCompile(`(?i)SELECT\s+(\w+)\s+ASSIGN\s+TO\s+.*OUTPUT`), schema.OutputOp},
}

// ScanIO returns one IOReference per pattern match in text. Duplicates are kept.
func ScanIO(text, sourceFile string) []schema.IOReference {
	upper := strings.ToUpper(text)
	var refs []schema.IOReference
	for _, p := range ioPatterns {
		for _, m := range p.re.FindAllStringSubmatch(upper, -1) {
			refs = append(refs, schema.IOReference{Name: m[1], Operation: p.op, SourceFile: sourceFile})
		}
	}
	return refs
}
