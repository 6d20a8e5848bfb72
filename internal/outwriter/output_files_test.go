package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/mfscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleFiles returns the detailed files of sampleReport with categories set.
func sampleFiles() []schema.FileRecord {
	report := sampleReport()
	cobol := report.DetailedFiles[schema.CobolPrograms][0]
	cobol.Category = schema.CobolPrograms
	jcl := report.DetailedFiles[schema.JCLFiles][0]
	jcl.Category = schema.JCLFiles
	return []schema.FileRecord{cobol, jcl}
}

func TestPrintFileRecords_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files.json")
	require.NoError(t, PrintFileRecords(sampleFiles(), testConfig(schema.JSONOut, path), time.Second))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var result []map[string]any
	require.NoError(t, json.Unmarshal(content, &result))
	require.Len(t, result, 2)
	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "cobol_programs", result[0]["category"])
	assert.Equal(t, "Code", result[0]["kind"])
	assert.Equal(t, "cobol/PAYROLL.cbl", result[0]["path"])
	assert.Equal(t, float64(12), result[0]["lines_of_code"])
	assert.Equal(t, float64(8), result[0]["code_lines"])
	assert.Equal(t, float64(400), result[0]["size"])
}

func TestWriteCSVResultsForFiles(t *testing.T) {
	fmtFloat, intFmt := createFormatters(1)
	var buf bytes.Buffer
	require.NoError(t, writeCSVResultsForFiles(&buf, sampleFiles(), fmtFloat, intFmt))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rank,path,name,category,kind,size_bytes,total_lines,non_empty_lines,comment_lines,code_lines,code_pct", lines[0])
	assert.Equal(t, "1,cobol/PAYROLL.cbl,PAYROLL.cbl,cobol_programs,Code,400,12,10,2,8,80.0", lines[1])
	assert.Equal(t, "2,jcl/PAYJOB.jcl,PAYJOB.jcl,jcl_files,Code,200,5,5,1,4,80.0", lines[2])
}

func TestWriteFileTable(t *testing.T) {
	cfg := testConfig(schema.TextOut, "")
	cfg.Detail = true
	cfg.Width = 200
	fmtFloat, intFmt := createFormatters(1)

	var buf bytes.Buffer
	require.NoError(t, writeFileTable(&buf, sampleFiles(), cfg, fmtFloat, intFmt, time.Second))

	out := buf.String()
	assert.Contains(t, out, "cobol/PAYROLL.cbl")
	assert.Contains(t, out, "jcl_files")
	assert.Contains(t, out, "80.0")
	assert.Contains(t, out, "Showing top 2 files (total code lines: 12)")
}

func TestWriteFileTable_TruncatesPaths(t *testing.T) {
	cfg := testConfig(schema.TextOut, "")
	cfg.Detail = true // 120 columns leave 15 for the path
	fmtFloat, intFmt := createFormatters(1)

	var buf bytes.Buffer
	require.NoError(t, writeFileTable(&buf, sampleFiles(), cfg, fmtFloat, intFmt, time.Second))

	out := buf.String()
	assert.Contains(t, out, ".../PAYROLL.cbl")
	assert.NotContains(t, out, "cobol/PAYROLL.cbl")
}

func TestPrintFileRecords_Parquet(t *testing.T) {
	require.ErrorIs(t, PrintFileRecords(sampleFiles(), testConfig(schema.ParquetOut, ""), time.Second), errParquetNeedsFile)

	path := filepath.Join(t.TempDir(), "files.parquet")
	require.NoError(t, PrintFileRecords(sampleFiles(), testConfig(schema.ParquetOut, path), time.Second))
	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestPrintFolderRows(t *testing.T) {
	rows := []schema.FolderRow{
		{Folder: "cobol", Total: 3, Counts: map[schema.Category]int{schema.CobolPrograms: 2, schema.Copybooks: 1}},
		{Folder: ".", Total: 1, Counts: map[schema.Category]int{schema.OtherFiles: 1}},
	}

	t.Run("csv has a column per category", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeCSVResultsForFolders(&buf, rows, "%d"))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "rank,folder,total,cobol_programs,jcl_files,copybooks,procedures,control_cards,data_files,other_files", lines[0])
		assert.Equal(t, "1,cobol,3,2,0,1,0,0,0,0", lines[1])
		assert.Equal(t, "2,.,1,0,0,0,0,0,0,1", lines[2])
	})

	t.Run("table", func(t *testing.T) {
		cfg := testConfig(schema.TextOut, "")
		cfg.Detail = true
		var buf bytes.Buffer
		require.NoError(t, writeFolderTable(&buf, rows, cfg, "%d", time.Second))
		assert.Contains(t, buf.String(), "Showing top 2 folders (total files: 4)")
	})

	t.Run("parquet is unsupported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "folders.parquet")
		require.Error(t, PrintFolderRows(rows, testConfig(schema.ParquetOut, path), time.Second))
	})

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "folders.json")
		require.NoError(t, PrintFolderRows(rows, testConfig(schema.JSONOut, path), time.Second))
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		var decoded []schema.FolderRow
		require.NoError(t, json.Unmarshal(content, &decoded))
		assert.Equal(t, rows, decoded)
	})
}
