// Package algo has ranking helpers shared by the aggregators.
package algo

import (
	"sort"

	"github.com/huangsam/mfscan/schema"
)

// TopFrequencies sorts entries by count in descending order and returns the
// top 'limit' entries. The sort is stable, so equal counts keep the order in
// which their values were first encountered. A non-positive limit returns all.
func TopFrequencies(entries []schema.FrequencyEntry, limit int) []schema.FrequencyEntry {
	sorted := make([]schema.FrequencyEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	return truncate(sorted, limit)
}

// RankFiles sorts files by code lines in descending order and returns the top 'limit' files.
func RankFiles(files []schema.FileRecord, limit int) []schema.FileRecord {
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].CodeLines > files[j].CodeLines
	})
	return truncate(files, limit)
}

// RankFolders sorts folders by total file count in descending order and returns the top 'limit' folders.
func RankFolders(folders []schema.FolderRow, limit int) []schema.FolderRow {
	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].Total > folders[j].Total
	})
	return truncate(folders, limit)
}

// RankIONames sorts I/O names by reference count in descending order and returns the top 'limit' names.
func RankIONames(rows []schema.IONameRow, limit int) []schema.IONameRow {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].References > rows[j].References
	})
	return truncate(rows, limit)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
