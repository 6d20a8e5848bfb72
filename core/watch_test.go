package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipWatchPath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "repo")
	excludes := []string{"archive/", ".bak"}

	tests := []struct {
		rel  string
		want bool
	}{
		{"src/PAYROLL.cbl", false},
		{".git/index", true},
		{"src/.svn/entries", true},
		{"archive/OLD.cbl", true},
		{"jobs/PAYJOB.jcl.bak", true},
		{"jobs", false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, skipWatchPath(root, filepath.Join(root, filepath.FromSlash(tt.rel)), excludes))
		})
	}
}

func TestRelevantEvent(t *testing.T) {
	cfg := &contract.Config{RootPath: "/repo", Excludes: []string{"*.tmp"}}

	assert.True(t, relevantEvent(cfg, fsnotify.Event{Name: "/repo/src/A.cbl", Op: fsnotify.Write}))
	assert.True(t, relevantEvent(cfg, fsnotify.Event{Name: "/repo/src/A.cbl", Op: fsnotify.Write | fsnotify.Chmod}))
	assert.False(t, relevantEvent(cfg, fsnotify.Event{Name: "/repo/src/A.cbl", Op: fsnotify.Chmod}))
	assert.False(t, relevantEvent(cfg, fsnotify.Event{Name: "/repo/.git/HEAD", Op: fsnotify.Write}))
	assert.False(t, relevantEvent(cfg, fsnotify.Event{Name: "/repo/src/edit.tmp", Op: fsnotify.Create}))
}

func TestAddWatchDirs(t *testing.T) {
	root := newMainframeTree(t)
	writeTree(t, root, map[string]string{"archive/OLD.cbl": payrollCobol})

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	require.NoError(t, addWatchDirs(watcher, root, root, []string{"archive/"}))

	watched := watcher.WatchList()
	assert.Contains(t, watched, root)
	assert.Contains(t, watched, filepath.Join(root, "src"))
	assert.Contains(t, watched, filepath.Join(root, "jobs"))
	assert.NotContains(t, watched, filepath.Join(root, ".git"))
	assert.NotContains(t, watched, filepath.Join(root, "archive"))
}

func TestWatchLoopDebouncesChanges(t *testing.T) {
	root := t.TempDir()
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()
	require.NoError(t, watcher.Add(root))

	cfg := &contract.Config{RootPath: root, Debounce: 50 * time.Millisecond}
	changes := make(chan struct{}, 10)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchLoop(ctx, watcher, cfg, func() { changes <- struct{}{} })
	}()

	for i := range 3 {
		name := filepath.Join(root, "PAY"+string(rune('A'+i))+".cbl")
		require.NoError(t, os.WriteFile(name, []byte(payrollCobol), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no re-scan after file changes")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch loop did not stop after cancel")
	}
}

func TestWatchLoopIgnoresSkippedPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()
	require.NoError(t, watcher.Add(filepath.Join(root, ".git")))

	cfg := &contract.Config{RootPath: root, Debounce: 20 * time.Millisecond}
	changes := make(chan struct{}, 10)
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "HEAD"), []byte("ref"), 0o644))
	require.NoError(t, watchLoop(ctx, watcher, cfg, func() { changes <- struct{}{} }))
	assert.Empty(t, changes)
}

func TestWatchLoopStopsWhenWatcherCloses(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	require.NoError(t, watcher.Close())

	cfg := &contract.Config{RootPath: t.TempDir()}
	assert.NoError(t, watchLoop(context.Background(), watcher, cfg, func() {}))
}

func TestExecuteWatchInitialScanError(t *testing.T) {
	cfg := &contract.Config{RootPath: filepath.Join(t.TempDir(), "missing"), Workers: 1}
	err := ExecuteWatch(quietContext(), cfg, nil)
	assert.Error(t, err)
}
