//go:build basic

// Package integration contains end-to-end tests that drive the mfscan binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/mfscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolatedEnv keeps the default SQLite files out of the real home directory.
func isolatedEnv(t *testing.T) []string {
	return []string{"HOME=" + t.TempDir(), "MFSCAN_CACHE_BACKEND=none"}
}

func TestScanJSON(t *testing.T) {
	root := writeSampleTree(t)
	out, err := runCommand(t, isolatedEnv(t), "scan", root, "--output", "json")
	require.NoError(t, err)

	var report schema.AnalysisReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))

	s := report.Summary
	assert.Equal(t, 2, s.TotalCobolPrograms)
	assert.Equal(t, 1, s.TotalJCLFiles)
	assert.Equal(t, 1, s.TotalCopybooks)
	assert.Equal(t, 1, s.TotalControlCards)
	assert.Equal(t, 2, s.TotalOtherFiles)
	assert.Equal(t, 1, s.TotalExcludedFiles)
	assert.Equal(t, 3, s.TotalJCLDatasets)
	assert.Equal(t, []string{"BILLIN", "PAYFILE"}, report.IOAnalysis.InputFiles)
	assert.Equal(t, []string{"CONSOLE", "RPTFILE"}, report.IOAnalysis.OutputFiles)

	// Continuation lines fold into the DD statement they extend
	require.Len(t, report.JCLDatasets, 3)
	assert.Equal(t, "PROD.PAY.REPORT", report.JCLDatasets[1].DatasetName)
	assert.Equal(t, "CATLG", report.JCLDatasets[1].DispNormal)
	assert.Nil(t, report.CronAnalysis)
}

func TestScanWithCron(t *testing.T) {
	root := writeSampleTree(t)
	out, err := runCommand(t, isolatedEnv(t), "scan", root, "--output", "json", "--cron")
	require.NoError(t, err)

	var report schema.AnalysisReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.CronAnalysis)
	assert.Equal(t, 1, report.CronAnalysis.TotalCronJobs)
}

func TestDatasetsCSV(t *testing.T) {
	root := writeSampleTree(t)
	out, err := runCommand(t, isolatedEnv(t), "datasets", root, "--output", "csv", "--type", "DATASET")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 named datasets
}

func TestFilesCategoryFilter(t *testing.T) {
	root := writeSampleTree(t)
	out, err := runCommand(t, isolatedEnv(t), "files", root, "--output", "json", "--category", "cobol_programs")
	require.NoError(t, err)

	var files []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 2)
	assert.Equal(t, "src/PAYROLL.cbl", files[0]["path"])
}

func TestInvalidInputs(t *testing.T) {
	root := writeSampleTree(t)
	_, err := runCommand(t, isolatedEnv(t), "scan", filepath.Join(root, "missing"))
	assert.Error(t, err)

	_, err = runCommand(t, isolatedEnv(t), "datasets", root, "--type", "BOGUS")
	assert.Error(t, err)

	_, err = runCommand(t, isolatedEnv(t), "scan", root, "--output", "xml")
	assert.Error(t, err)
}

func TestScanHistoryWithSQLite(t *testing.T) {
	root := writeSampleTree(t)
	dbPath := filepath.Join(t.TempDir(), "history.db")
	env := append(isolatedEnv(t), "MFSCAN_ANALYSIS_BACKEND=sqlite", "MFSCAN_ANALYSIS_DB_CONNECT="+dbPath)

	_, err := runCommand(t, env, "analysis", "migrate")
	require.NoError(t, err)

	for range 2 {
		_, err = runCommand(t, env, "scan", root, "--output", "json")
		require.NoError(t, err)
	}

	status, err := runCommand(t, env, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, status, "Total Runs: 2")
	assert.Contains(t, status, "Total Datasets: 6")

	exportBase := filepath.Join(t.TempDir(), "history")
	_, err = runCommand(t, env, "analysis", "export", "--output-file", exportBase)
	require.NoError(t, err)
	for _, suffix := range []string{".scan_runs.parquet", ".file_records.parquet", ".dataset_records.parquet"} {
		info, err := os.Stat(exportBase + suffix)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	_, err = runCommand(t, env, "analysis", "clear")
	require.NoError(t, err)
	assert.NoFileExists(t, dbPath)
}

func TestVersion(t *testing.T) {
	out, err := runCommand(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mfscan CLI")
}
