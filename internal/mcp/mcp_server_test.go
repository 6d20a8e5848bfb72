package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/mfscan/internal/contract"
	mcp_internal "github.com/huangsam/mfscan/internal/mcp"
	"github.com/huangsam/mfscan/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const payrollJCL = `//PAYROLL  JOB (ACCT),'PAYROLL RUN'
//STEP01   EXEC PGM=PAY001
//INFILE   DD DSN=PROD.PAYROLL.INPUT,DISP=SHR
//REPORT   DD SYSOUT=*
`

const payrollCobol = `       IDENTIFICATION DIVISION.
       PROGRAM-ID. PAY001.
      * Reads the weekly payroll file
       PROCEDURE DIVISION.
           OPEN INPUT PAYFILE.
           OPEN OUTPUT RPTFILE.
           STOP RUN.
`

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "jcl/PAYROLL.jcl", payrollJCL)
	writeFile(t, root, "cobol/PAY001.cbl", payrollCobol)
	writeFile(t, root, "ops/crontab", "0 2 * * * /opt/batch/nightly_backup.sh\n")
	return root
}

func newBaseConfig(root string) *contract.Config {
	return &contract.Config{
		RootPath:     root,
		ResultLimit:  25,
		TopN:         5,
		Workers:      2,
		Output:       schema.JSONOut,
		CacheBackend: schema.NoneBackend,
	}
}

func callTool(t *testing.T, cfg *contract.Config, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	s := mcp_internal.NewMCPServer(cfg, nil)
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	cfg := newBaseConfig(newTree(t))

	t.Run("scan_directory missing root", func(t *testing.T) {
		res := callTool(t, cfg, "scan_directory", map[string]any{"root_path": filepath.Join(cfg.RootPath, "missing")})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "does not exist")
	})

	t.Run("get_jcl_datasets invalid type", func(t *testing.T) {
		res := callTool(t, cfg, "get_jcl_datasets", map[string]any{"dataset_type": "TAPE"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid dataset type")
	})

	t.Run("get_jcl_datasets negative limit", func(t *testing.T) {
		res := callTool(t, cfg, "get_jcl_datasets", map[string]any{"limit": -1.0})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "limit must be positive")
	})

	t.Run("get_io_references invalid operation", func(t *testing.T) {
		res := callTool(t, cfg, "get_io_references", map[string]any{"operation": "UPDATE"})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "must be INPUT or OUTPUT")
	})

	t.Run("get_cron_jobs root is a file", func(t *testing.T) {
		res := callTool(t, cfg, "get_cron_jobs", map[string]any{"root_path": filepath.Join(cfg.RootPath, "ops", "crontab")})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "is not a directory")
	})
}

func TestMCPServerHandlers_Results(t *testing.T) {
	root := newTree(t)
	cfg := newBaseConfig(t.TempDir()) // Tools point at root explicitly

	t.Run("scan_directory", func(t *testing.T) {
		res := callTool(t, cfg, "scan_directory", map[string]any{"root_path": root})
		require.False(t, res.IsError, resultText(t, res))

		var payload struct {
			RootDirectory string         `json:"root_directory"`
			FileCounts    map[string]int `json:"file_counts"`
			Summary       schema.Summary `json:"summary"`
		}
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &payload))
		assert.Equal(t, root, payload.RootDirectory)
		assert.Equal(t, 1, payload.FileCounts[string(schema.CobolPrograms)])
		assert.Equal(t, 1, payload.FileCounts[string(schema.JCLFiles)])
		assert.Equal(t, 1, payload.Summary.TotalCobolPrograms)
		assert.Equal(t, 2, payload.Summary.TotalJCLDatasets)
	})

	t.Run("get_jcl_datasets filtered", func(t *testing.T) {
		res := callTool(t, cfg, "get_jcl_datasets", map[string]any{"root_path": root, "dataset_type": "SYSOUT"})
		require.False(t, res.IsError, resultText(t, res))

		var decls []schema.DatasetDeclaration
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decls))
		require.Len(t, decls, 1)
		assert.Equal(t, "REPORT", decls[0].DDName)
		assert.Equal(t, "PAYROLL", decls[0].JobName)
		assert.Equal(t, "STEP01", decls[0].StepName)
	})

	t.Run("get_jcl_datasets limited", func(t *testing.T) {
		res := callTool(t, cfg, "get_jcl_datasets", map[string]any{"root_path": root, "limit": 1.0})
		require.False(t, res.IsError, resultText(t, res))

		var decls []schema.DatasetDeclaration
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &decls))
		require.Len(t, decls, 1)
		assert.Equal(t, "INFILE", decls[0].DDName)
		assert.Equal(t, "PROD.PAYROLL.INPUT", decls[0].DatasetName)
	})

	t.Run("get_io_references", func(t *testing.T) {
		res := callTool(t, cfg, "get_io_references", map[string]any{"root_path": root, "operation": "INPUT"})
		require.False(t, res.IsError, resultText(t, res))

		var rows []schema.IONameRow
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "PAYFILE", rows[0].Name)
		assert.Equal(t, 1, rows[0].Inputs)
		assert.Equal(t, []string{"cobol/PAY001.cbl"}, rows[0].Files)
	})

	t.Run("get_cron_jobs", func(t *testing.T) {
		res := callTool(t, cfg, "get_cron_jobs", map[string]any{"root_path": root})
		require.False(t, res.IsError, resultText(t, res))

		var analysis schema.CronAnalysis
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &analysis))
		assert.Equal(t, 1, analysis.TotalCronJobs)
	})
}
