package core

import (
	"context"
	"io/fs"
	"path/filepath"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/schema"
	"go.uber.org/zap"
)

// vcsDirs are version-control metadata directories never descended into.
var vcsDirs = map[string]struct{}{
	".git": {},
	".svn": {},
	".hg":  {},
	"CVS":  {},
}

// walkTree lists every file under root in lexical order. Unreadable
// subdirectories are logged and skipped; only a failure on root itself is returned.
func walkTree(ctx context.Context, root string, excludes []string) ([]schema.WalkEntry, error) {
	var entries []schema.WalkEntry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			contract.Logger().Debug("skipping unreadable path", zap.String("path", path), zap.Error(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := contract.ToSlashRel(root, path)
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, ok := vcsDirs[d.Name()]; ok || contract.ShouldIgnore(rel, excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil // sockets, devices, pipes
		}
		if contract.ShouldIgnore(rel, excludes) {
			return nil
		}

		entries = append(entries, schema.WalkEntry{
			Path:         path,
			RelativePath: rel,
			Folder:       contract.ToSlashRel(root, filepath.Dir(path)),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
