package core

import (
	"testing"

	"github.com/huangsam/mfscan/schema"
	"github.com/stretchr/testify/assert"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"single without newline", "abc", []string{"abc"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"lone cr", "a\rb", []string{"a", "b"}},
		{"blank lines kept", "a\n\n\nb", []string{"a", "", "", "b"}},
		{"only newline", "\n", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.text))
		})
	}
}

func TestDecodeLossy(t *testing.T) {
	assert.Equal(t, "ABC", DecodeLossy([]byte{'A', 0xff, 'B', 0xfe, 'C'}))
	assert.Equal(t, "plain", DecodeLossy([]byte("plain")))
}

func TestCountLinesCobol(t *testing.T) {
	text := "" +
		"       IDENTIFICATION DIVISION.\n" +
		"      * column seven comment\n" +
		"* leading star comment\n" +
		"\n" +
		"   \n" +
		"       PROCEDURE DIVISION.\n" +
		"// slash comment\n" +
		"000100 STOP RUN.\n"

	got := CountLines(text, "PAY.cbl")
	assert.Equal(t, schema.LineStats{TotalLines: 8, NonEmptyLines: 6, CommentLines: 3, CodeLines: 3}, got)
}

func TestCountLinesSequenceNumberComment(t *testing.T) {
	// Sequence area in columns 1-6, indicator in column 7
	got := CountLines("000100*COMMENT IN COLUMN SEVEN\n000200 MOVE A TO B.\n", "X.cpy")
	assert.Equal(t, 1, got.CommentLines)
	assert.Equal(t, 1, got.CodeLines)
}

func TestCountLinesJCL(t *testing.T) {
	text := "//PAYJOB JOB (ACCT)\n//* a comment\n//STEP1 EXEC PGM=PAYROLL\n* not a JCL comment\n"
	got := CountLines(text, "jobs/PAY.jcl")
	assert.Equal(t, schema.LineStats{TotalLines: 4, NonEmptyLines: 4, CommentLines: 1, CodeLines: 3}, got)
}

func TestCountLinesProcedureExtensions(t *testing.T) {
	text := "* star comment\n//* jcl comment\nSTATEMENT\n"

	// .prc follows the COBOL rules
	prc := CountLines(text, "SORT.prc")
	assert.Equal(t, 2, prc.CommentLines)

	// .proc follows the JCL rules
	proc := CountLines(text, "SORT.proc")
	assert.Equal(t, 1, proc.CommentLines)

	// .prn has no comment syntax
	prn := CountLines(text, "SORT.prn")
	assert.Equal(t, 0, prn.CommentLines)
	assert.Equal(t, 3, prn.CodeLines)
}

func TestCountLinesControlCards(t *testing.T) {
	text := "* star\n# hash\n// slash\n SORT FIELDS=(1,10,CH,A)\n"
	got := CountLines(text, "sort.ctl")
	assert.Equal(t, 3, got.CommentLines)
	assert.Equal(t, 1, got.CodeLines)
}

func TestCountLinesDataFiles(t *testing.T) {
	got := CountLines("* looks like a comment\nrecord\n\n", "customers.dat")
	assert.Equal(t, schema.LineStats{TotalLines: 3, NonEmptyLines: 2, CodeLines: 2}, got)
}

func TestCountLinesInvariant(t *testing.T) {
	texts := []string{"", "\n\n", "a\r\n*b\r\n\r\n", "      *x\n y\n"}
	for _, text := range texts {
		for _, path := range []string{"a.cbl", "a.jcl", "a.ctl", "a.dat", "a.prn"} {
			s := CountLines(text, path)
			assert.Equal(t, s.NonEmptyLines, s.CodeLines+s.CommentLines, "%q in %s", text, path)
			assert.LessOrEqual(t, s.NonEmptyLines, s.TotalLines)
		}
	}
}

func TestCountLinesEmpty(t *testing.T) {
	assert.Equal(t, schema.LineStats{}, CountLines("", "EMPTY.cbl"))
}
