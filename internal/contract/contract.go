// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/mfscan/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetFileStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for recording scan runs and their per-file results.
type AnalysisStore interface {
	// BeginAnalysis creates a new scan run and returns its unique ID
	BeginAnalysis(startTime time.Time, rootDir string, configParams map[string]any) (int64, error)

	// EndAnalysis updates the scan run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalFiles int) error

	// RecordFile stores the classification and line stats of one file
	RecordFile(analysisID int64, row schema.FileRecordRow) error

	// RecordDatasets stores the DD statements parsed from one JCL member
	RecordDatasets(analysisID int64, rows []schema.DatasetRecordRow) error

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// GetAllScanRuns retrieves all scan runs for export
	GetAllScanRuns() ([]schema.ScanRunRecord, error)

	// GetAllFileRecords retrieves all per-file rows for export
	GetAllFileRecords() ([]schema.FileRecordRow, error)

	// GetAllDatasetRecords retrieves all dataset rows for export
	GetAllDatasetRecords() ([]schema.DatasetRecordRow, error)

	// Close closes the underlying connection
	Close() error
}
