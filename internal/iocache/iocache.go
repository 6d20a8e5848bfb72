// Package iocache persists per-file analysis results and scan history
// across SQLite, MySQL and PostgreSQL.
package iocache

import (
	"sync"

	"github.com/huangsam/mfscan/internal/contract"
)

// CacheStoreManager manages the file cache and the scan history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	file         contract.CacheStore
	analysis     contract.AnalysisStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetFileStore returns the per-file CacheStore.
func (mgr *CacheStoreManager) GetFileStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.file
}

// GetAnalysisStore returns the scan history AnalysisStore.
func (mgr *CacheStoreManager) GetAnalysisStore() contract.AnalysisStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.analysis
}
