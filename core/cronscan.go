package core

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/mfscan/core/cron"
	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/schema"
	"go.uber.org/zap"
)

// ScanCron walks cfg.RootPath for crontabs and shell scripts.
func ScanCron(ctx context.Context, cfg *contract.Config) (*schema.CronAnalysis, error) {
	analyzer := cron.NewAnalyzer()
	err := filepath.WalkDir(cfg.RootPath, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == cfg.RootPath {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel := contract.ToSlashRel(cfg.RootPath, path)
		if d.IsDir() {
			if path != cfg.RootPath && (skipCronDir(d.Name()) || contract.ShouldIgnore(rel, cfg.Excludes)) {
				return filepath.SkipDir
			}
			return nil
		}
		if contract.ShouldIgnore(rel, cfg.Excludes) {
			return nil
		}
		addCronCandidate(analyzer, path, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", cfg.RootPath, err)
	}
	return analyzer.Report(cfg.TopN), nil
}

// skipCronDir matches VCS metadata and build output directories.
func skipCronDir(name string) bool {
	return strings.HasPrefix(name, ".git") || name == "node_modules" || name == "target"
}

// addCronCandidate files a single path as a shell script, a crontab or neither.
// Shell scripts win over cron names.
func addCronCandidate(analyzer *cron.Analyzer, path, rel string) {
	name := filepath.Base(path)
	if cron.IsShellScript(name, readFirstLine(path)) {
		analyzer.AddShellScript(rel)
		return
	}
	if !cron.IsCronFile(name) {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		contract.Logger().Debug("unreadable cron file", zap.String("path", rel), zap.Error(err))
		return
	}
	analyzer.AddCronFile(path, rel, DecodeLossy(data))
}

// readFirstLine returns up to the first 512 bytes of a file's first line,
// or "" when it cannot be read.
func readFirstLine(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()
	line, _ := bufio.NewReaderSize(f, 512).ReadSlice('\n')
	return DecodeLossy(line)
}
