package agg

import (
	"maps"

	"github.com/huangsam/mfscan/core/algo"
	"github.com/huangsam/mfscan/schema"
)

// FrequencyTable counts values and remembers the order they were first seen,
// so rankings with equal counts are reproducible for a given traversal.
type FrequencyTable struct {
	order  []string
	counts map[string]int
}

// NewFrequencyTable creates an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: make(map[string]int)}
}

// Add counts one occurrence of value.
func (f *FrequencyTable) Add(value string) {
	if _, ok := f.counts[value]; !ok {
		f.order = append(f.order, value)
	}
	f.counts[value]++
}

// Len returns the number of distinct values.
func (f *FrequencyTable) Len() int {
	return len(f.order)
}

// Entries returns every value in first-seen order.
func (f *FrequencyTable) Entries() []schema.FrequencyEntry {
	entries := make([]schema.FrequencyEntry, len(f.order))
	for i, v := range f.order {
		entries[i] = schema.FrequencyEntry{Value: v, Count: f.counts[v]}
	}
	return entries
}

// Top returns the n most frequent values, ties in first-seen order.
func (f *FrequencyTable) Top(n int) []schema.FrequencyEntry {
	return algo.TopFrequencies(f.Entries(), n)
}

// Map returns a copy of the raw counts.
func (f *FrequencyTable) Map() map[string]int {
	return maps.Clone(f.counts)
}
