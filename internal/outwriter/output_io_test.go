package outwriter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/mfscan/internal/parquet"
	"github.com/huangsam/mfscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIONames() []schema.IONameRow {
	return []schema.IONameRow{
		{Name: "CUSTMAST", Inputs: 2, Outputs: 1, Files: []string{"cobol/A.cbl", "cobol/B.cbl"}, References: 3},
		{Name: "PAYRPT", Outputs: 1, Files: []string{"cobol/A.cbl"}, References: 1},
	}
}

func TestIONameReferences(t *testing.T) {
	refs := ioNameReferences(sampleIONames())
	assert.Equal(t, []parquet.IOReference{
		{Name: "CUSTMAST", Operation: "INPUT,OUTPUT", SourceFile: "cobol/A.cbl"},
		{Name: "CUSTMAST", Operation: "INPUT,OUTPUT", SourceFile: "cobol/B.cbl"},
		{Name: "PAYRPT", Operation: "OUTPUT", SourceFile: "cobol/A.cbl"},
	}, refs)
}

func TestWriteCSVResultsForIONames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVResultsForIONames(&buf, sampleIONames(), "%d"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,name,references,inputs,outputs,files", lines[0])
	assert.Equal(t, "1,CUSTMAST,3,2,1,cobol/A.cbl|cobol/B.cbl", lines[1])
}

func TestWriteIONameTable(t *testing.T) {
	cfg := testConfig(schema.TextOut, "")
	cfg.Detail = true
	var buf bytes.Buffer
	require.NoError(t, writeIONameTable(&buf, sampleIONames(), cfg, "%d", time.Second))
	assert.Contains(t, buf.String(), "CUSTMAST")
	assert.Contains(t, buf.String(), "Showing top 2 I/O names")
}
