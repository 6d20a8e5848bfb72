package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/internal/outwriter"
	"go.uber.org/zap"
)

// ExecuteWatch prints a scan report, then re-scans every time the tree
// settles after a change. It returns when ctx is cancelled.
func ExecuteWatch(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	rescan := func(ctx context.Context) error {
		start := time.Now()
		report, err := ScanDirectory(ctx, cfg, mgr)
		if err != nil {
			return err
		}
		return outwriter.PrintScanReport(report, cfg, time.Since(start))
	}
	if err := rescan(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := addWatchDirs(watcher, cfg.RootPath, cfg.RootPath, cfg.Excludes); err != nil {
		return err
	}
	outwriter.LogWatching(cfg)

	return watchLoop(ctx, watcher, cfg, func() {
		if err := rescan(withSuppressHeader(ctx)); err != nil && ctx.Err() == nil {
			contract.LogWarn("Re-scan failed", err)
		}
	})
}

// addWatchDirs registers start and every directory below it that a scan of root would visit.
func addWatchDirs(watcher *fsnotify.Watcher, root, start string, excludes []string) error {
	return filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == start {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipWatchPath(root, path, excludes) {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			contract.Logger().Debug("cannot watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
}

// skipWatchPath reports whether a path sits in VCS metadata or is excluded.
func skipWatchPath(root, path string, excludes []string) bool {
	rel := contract.ToSlashRel(root, path)
	for part := range strings.SplitSeq(rel, "/") {
		if _, ok := vcsDirs[part]; ok {
			return true
		}
	}
	return contract.ShouldIgnore(rel, excludes)
}

// watchLoop calls onChange once the tree has been quiet for cfg.Debounce
// after one or more relevant events.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, cfg *contract.Config, onChange func()) error {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = contract.DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(cfg, event) {
				continue
			}
			contract.Logger().Debug("change detected", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			if event.Has(fsnotify.Create) {
				// New directories need their own watches
				_ = addWatchDirsIfDir(watcher, cfg, event.Name)
			}
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			contract.Logger().Warn("watcher error", zap.Error(err))

		case <-timer.C:
			onChange()
		}
	}
}

// relevantEvent drops chmod-only events and events on skipped paths.
func relevantEvent(cfg *contract.Config, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return !skipWatchPath(cfg.RootPath, event.Name, cfg.Excludes)
}

// addWatchDirsIfDir starts watching a freshly created directory tree.
func addWatchDirsIfDir(watcher *fsnotify.Watcher, cfg *contract.Config, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return err
	}
	return addWatchDirs(watcher, cfg.RootPath, path, cfg.Excludes)
}
