// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// datasetTypes is the enum offered to clients for the dataset_type argument.
var datasetTypes = []string{"DUMMY", "SYSOUT", "SYSIN", "TEMPORARY", "DATASET", "HFS", "OTHER"}

// NewMCPServer initializes and configures the mfscan MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Mainframe Scan Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: scan_directory ---
	s.AddTool(mcp.NewTool("scan_directory",
		mcp.WithDescription("Scan a mainframe source tree and summarize file categories, line statistics, I/O names and JCL datasets."),
		mcp.WithString("root_path", mcp.Description("Directory to scan (defaults to the server's root directory).")),
	), h.handleScanDirectory)

	// --- 2. Tool: get_jcl_datasets ---
	s.AddTool(mcp.NewTool("get_jcl_datasets",
		mcp.WithDescription("List the DD statements declared by JCL jobs and procedures, in source order."),
		mcp.WithString("root_path", mcp.Description("Directory to scan.")),
		mcp.WithString("dataset_type", mcp.Description("Keep only one dataset type."), mcp.Enum(datasetTypes...)),
		mcp.WithNumber("limit", mcp.Description("Limit the number of declarations returned.")),
	), h.handleGetJCLDatasets)

	// --- 3. Tool: get_io_references ---
	s.AddTool(mcp.NewTool("get_io_references",
		mcp.WithDescription("List the files COBOL programs open, with the programs that reference them."),
		mcp.WithString("root_path", mcp.Description("Directory to scan.")),
		mcp.WithString("operation", mcp.Description("Keep only INPUT or OUTPUT references."), mcp.Enum("INPUT", "OUTPUT")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of names returned.")),
	), h.handleGetIOReferences)

	// --- 4. Tool: get_cron_jobs ---
	s.AddTool(mcp.NewTool("get_cron_jobs",
		mcp.WithDescription("Analyze crontab files: scheduled commands, schedules and the shell scripts they run."),
		mcp.WithString("root_path", mcp.Description("Directory to scan.")),
	), h.handleGetCronJobs)

	return s
}

// StartMCPServer serves the tools over stdio until the client disconnects.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
