package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/mfscan/core"
	"github.com/huangsam/mfscan/core/algo"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// scanSummary is the scan_directory payload.
type scanSummary struct {
	RootDirectory  string                  `json:"root_directory"`
	ScanTimestamp  time.Time               `json:"scan_timestamp"`
	FileCounts     map[schema.Category]int `json:"file_counts"`
	ExcludedCounts map[schema.Category]int `json:"excluded_counts"`
	Summary        schema.Summary          `json:"summary"`
	FileErrors     map[string]string       `json:"file_errors,omitempty"`
}

// configFor clones the base config and applies the common root_path argument.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateRoot(cfg, request.GetString("root_path", "")); err != nil {
		return nil, fmt.Errorf("invalid root_path: %w", err)
	}
	return cfg, nil
}

// jsonResult renders v as an indented JSON text result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScanDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := core.GetScanReport(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	return jsonResult(scanSummary{
		RootDirectory:  report.RootDirectory,
		ScanTimestamp:  report.ScanTimestamp,
		FileCounts:     report.FileCounts,
		ExcludedCounts: report.ExcludedCounts,
		Summary:        report.Summary,
		FileErrors:     report.FileErrors,
	})
}

func (h *toolHandler) handleGetJCLDatasets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := contract.RevalidateFilters(cfg, request.GetString("dataset_type", ""), ""); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dataset_type: %v", err)), nil
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("limit must be positive (received %d)", limit)), nil
	}

	report, err := core.GetScanReport(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	decls := core.FilterDatasets(report.JCLDatasets, cfg.DatasetFilter)
	if limit > 0 && len(decls) > limit {
		decls = decls[:limit]
	}
	if decls == nil {
		decls = []schema.DatasetDeclaration{}
	}
	return jsonResult(decls)
}

func (h *toolHandler) handleGetIOReferences(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := contract.RevalidateFilters(cfg, "", request.GetString("operation", "")); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid operation: %v", err)), nil
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	report, err := core.GetScanReport(ctx, cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	rows := algo.RankIONames(core.IONameRows(report, cfg.OperationFilter), cfg.ResultLimit)
	if rows == nil {
		rows = []schema.IONameRow{}
	}
	return jsonResult(rows)
}

func (h *toolHandler) handleGetCronJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	analysis, err := core.GetCronAnalysis(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cron analysis failed: %v", err)), nil
	}
	return jsonResult(analysis)
}
