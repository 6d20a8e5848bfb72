package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/mfscan/core/jcl"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/schema"
	"go.uber.org/zap"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL bounds how long a cached file analysis is trusted.
const cacheTTL = 7 * 24 * time.Hour

// cachedAnalyzeFile returns the analysis of one file, served from the file
// store when the file is unchanged since it was cached.
func cachedAnalyzeFile(ctx context.Context, cfg *contract.Config, entry schema.WalkEntry, parser *jcl.Parser) schema.FileAnalysis {
	var store contract.CacheStore
	if mgr := cacheManagerFromContext(ctx); mgr != nil {
		store = mgr.GetFileStore()
	}
	if store == nil || !Classify(entry.Path).IsAnalyzed() {
		return analyzeFile(entry, parser)
	}

	info, err := os.Stat(entry.Path)
	if err != nil {
		return analyzeFile(entry, parser)
	}
	key := generateCacheKey(cfg, entry, info)

	if result, ok := checkCacheHit(store, key); ok {
		contract.Logger().Debug("cache hit", zap.String("path", entry.RelativePath))
		// Folder and category are not serialized
		result.Record.Folder = entry.Folder
		result.Record.Category = Classify(entry.Path)
		return result
	}

	return computeAndStore(store, key, entry, parser)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) (schema.FileAnalysis, bool) {
	var result schema.FileAnalysis
	data, version, ts, err := store.Get(key)
	if err != nil {
		return result, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}

// computeAndStore analyzes the file and stores the result in cache.
// Failed reads are not cached so a transient error is retried next scan.
func computeAndStore(store contract.CacheStore, key string, entry schema.WalkEntry, parser *jcl.Parser) schema.FileAnalysis {
	result := analyzeFile(entry, parser)
	if result.Err != "" {
		return result
	}
	data, err := json.Marshal(result)
	if err != nil {
		return result
	}
	if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.Logger().Debug("cache write failed", zap.String("path", entry.RelativePath), zap.Error(err))
	}
	return result
}

// generateCacheKey creates a unique key from the file identity and the parse options
func generateCacheKey(cfg *contract.Config, entry schema.WalkEntry, info os.FileInfo) string {
	key := fmt.Sprintf("%s:%s:%d:%d:%t:%d",
		entry.Path,
		entry.RelativePath,
		info.Size(),
		info.ModTime().UnixNano(),
		cfg.EmitAllDD,
		currentCacheVersion,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
