// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/huangsam/mfscan/internal/contract"
	"golang.org/x/term"
)

// LogScanHeader prints a one-line header for a scan. It goes to stderr so
// machine-readable output on stdout stays clean.
func LogScanHeader(cfg *contract.Config) {
	rootName := filepath.Base(cfg.RootPath)
	if rootName == "" || rootName == "." || rootName == string(filepath.Separator) {
		rootName = cfg.RootPath
	}
	_, _ = fmt.Fprintf(os.Stderr, "%sRoot: %s (Workers: %d)\n", emoji(cfg, "🔎 "), rootName, cfg.Workers)
}

// LogWatching tells the user that watch mode is waiting for changes.
func LogWatching(cfg *contract.Config) {
	_, _ = fmt.Fprintf(os.Stderr, "%sWatching %s for changes (debounce: %v). Press Ctrl+C to stop.\n",
		emoji(cfg, "👀 "), cfg.RootPath, cfg.Debounce)
}

// emoji returns e when emojis are enabled.
func emoji(cfg *contract.Config, e string) string {
	if cfg.UseEmojis {
		return e
	}
	return ""
}

// GetMaxTablePathWidth calculates the maximum width for file paths in table output
// based on terminal width and table configuration.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Category + Lines + Kind with borders/padding
	baseWidth := 45

	if cfg.Detail {
		baseWidth += 40 // Non-empty + Comments + Code% + Size
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
