package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/mfscan/schema"
)

// fileCacheTable is the name of the table for per-file caching.
const fileCacheTable = "file_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitCaching initializes the global cache manager with separate cache and analysis stores.
// An empty backend leaves the corresponding store nil.
func InitCaching(cacheBackend schema.DatabaseBackend, cacheConnStr string, analysisBackend schema.DatabaseBackend, analysisConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		initErr = initStores(Manager, cacheBackend, cacheConnStr, analysisBackend, analysisConnStr)
	})

	return initErr
}

// initStores opens both stores and assigns them to mgr, closing the
// file store if the analysis store fails.
func initStores(mgr *CacheStoreManager, cacheBackend schema.DatabaseBackend, cacheConnStr string, analysisBackend schema.DatabaseBackend, analysisConnStr string) error {
	var fileStore *CacheStoreImpl
	if cacheBackend != "" {
		store, err := NewCacheStore(fileCacheTable, cacheBackend, cacheConnStr)
		if err != nil {
			return fmt.Errorf("failed to initialize file caching: %w", err)
		}
		fileStore = store.(*CacheStoreImpl)
	}

	var analysisStore *AnalysisStoreImpl
	if analysisBackend != "" {
		store, aerr := NewAnalysisStore(analysisBackend, analysisConnStr)
		if aerr != nil {
			var closeErr error
			if fileStore != nil {
				closeErr = fileStore.Close()
			}
			return errors.Join(fmt.Errorf("failed to initialize analysis store: %w", aerr), closeErr)
		}
		analysisStore = store.(*AnalysisStoreImpl)
	}

	mgr.Lock()
	defer mgr.Unlock()
	if fileStore != nil {
		mgr.file = fileStore
	}
	if analysisStore != nil {
		mgr.analysis = analysisStore
	}
	return nil
}

// CloseCaching should be called on application shutdown.
func CloseCaching() { // called in main defer
	closeOnce.Do(func() {
		closeStores(Manager)
	})
}

// closeStores closes and forgets both stores of mgr.
func closeStores(mgr *CacheStoreManager) {
	mgr.Lock()
	defer mgr.Unlock()
	if mgr.file != nil {
		_ = mgr.file.Close()
		mgr.file = nil
	}
	if mgr.analysis != nil {
		_ = mgr.analysis.Close()
		mgr.analysis = nil
	}
}

// ClearCache clears the file cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearBackend(backend, dbFilePath, connStr, fileCacheTable)
}

// ClearAnalysis clears the scan history for the specified backend.
func ClearAnalysis(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearBackend(backend, dbFilePath, connStr, analysisTables...)
}

// clearBackend removes the SQLite file or drops the given tables.
func clearBackend(backend schema.DatabaseBackend, dbFilePath, connStr string, tables ...string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		driverName, _ := driverFor(backend)
		return clearSQLTables(driverName, backend, connStr, tables)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// clearSQLTables connects to the SQL database and drops the tables if they exist.
func clearSQLTables(driverName string, backend schema.DatabaseBackend, connStr string, tables []string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
