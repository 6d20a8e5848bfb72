// Package agg folds per-file analysis results into the project report.
package agg

import (
	"slices"
	"time"

	"github.com/huangsam/mfscan/schema"
)

// Aggregator accumulates file results in walk order. It is not safe for
// concurrent use: a single goroutine owns it until Report is called.
type Aggregator struct {
	fileCounts map[schema.Category]int
	folders    map[string]map[schema.Category]int
	detailed   map[schema.Category][]schema.FileRecord
	excluded   map[schema.Category]int
	inputs     map[string]struct{}
	outputs    map[string]struct{}
	references map[string][]schema.FileReference
	datasets   []schema.DatasetDeclaration
	fileErrors map[string]string

	typeFreq    *FrequencyTable
	dispFreq    *FrequencyTable
	datasetFreq *FrequencyTable
	ioFreq      *FrequencyTable
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		fileCounts:  make(map[schema.Category]int),
		folders:     make(map[string]map[schema.Category]int),
		detailed:    make(map[schema.Category][]schema.FileRecord),
		excluded:    make(map[schema.Category]int),
		inputs:      make(map[string]struct{}),
		outputs:     make(map[string]struct{}),
		references:  make(map[string][]schema.FileReference),
		fileErrors:  make(map[string]string),
		typeFreq:    NewFrequencyTable(),
		dispFreq:    NewFrequencyTable(),
		datasetFreq: NewFrequencyTable(),
		ioFreq:      NewFrequencyTable(),
	}
}

// Add folds one file's analysis into the aggregate.
func (a *Aggregator) Add(fa schema.FileAnalysis) {
	rec := fa.Record
	if fa.Err != "" {
		a.fileErrors[rec.Path] = fa.Err
	}
	switch {
	case fa.Excluded:
		a.excluded[rec.Category]++
	case !rec.Category.IsAnalyzed():
		a.countFile(schema.OtherFiles, rec.Folder)
	default:
		a.countFile(rec.Category, rec.Folder)
		a.detailed[rec.Category] = append(a.detailed[rec.Category], rec)
		a.AddIORefs(fa.IORefs)
		a.AddDatasets(fa.Datasets)
	}
}

func (a *Aggregator) countFile(cat schema.Category, folder string) {
	if folder == "" {
		folder = "."
	}
	a.fileCounts[cat]++
	counts, ok := a.folders[folder]
	if !ok {
		counts = make(map[schema.Category]int)
		a.folders[folder] = counts
	}
	counts[cat]++
}

// AddIORefs records COBOL I/O references.
func (a *Aggregator) AddIORefs(refs []schema.IOReference) {
	for _, r := range refs {
		switch r.Operation {
		case schema.InputOp:
			a.inputs[r.Name] = struct{}{}
		case schema.OutputOp:
			a.outputs[r.Name] = struct{}{}
		}
		a.references[r.Name] = append(a.references[r.Name], schema.FileReference{File: r.SourceFile, Operation: r.Operation})
		a.ioFreq.Add(r.Name)
	}
}

// AddDatasets records JCL dataset declarations.
func (a *Aggregator) AddDatasets(decls []schema.DatasetDeclaration) {
	for _, d := range decls {
		a.datasets = append(a.datasets, d)
		a.typeFreq.Add(string(d.DatasetType))
		if d.DispStatus != "" {
			a.dispFreq.Add(d.DispStatus)
		}
		if d.DatasetName != "" {
			a.datasetFreq.Add(d.DatasetName)
		}
	}
}

// Report builds the final report. topN bounds the ranked dataset and I/O tables.
func (a *Aggregator) Report(root string, scannedAt time.Time, topN int) *schema.AnalysisReport {
	io := schema.IOAnalysis{
		InputFiles:     sortedKeys(a.inputs),
		OutputFiles:    sortedKeys(a.outputs),
		FileReferences: a.references,
	}
	datasets := a.datasets
	if datasets == nil {
		datasets = []schema.DatasetDeclaration{}
	}
	return &schema.AnalysisReport{
		ScanTimestamp:  scannedAt,
		RootDirectory:  root,
		FileCounts:     a.fileCounts,
		FolderAnalysis: a.folders,
		IOAnalysis:     io,
		DetailedFiles:  a.detailed,
		JCLDatasets:    datasets,
		ExcludedCounts: a.excluded,
		Summary:        a.summary(len(io.InputFiles), len(io.OutputFiles)),
		DatasetStatistics: schema.DatasetStatistics{
			TypeFrequency: a.typeFreq.Top(0),
			DispFrequency: a.dispFreq.Top(0),
			TopDatasets:   a.datasetFreq.Top(topN),
			TopIONames:    a.ioFreq.Top(topN),
		},
		FileErrors: a.fileErrors,
	}
}

func (a *Aggregator) summary(inputs, outputs int) schema.Summary {
	totalExcluded := 0
	for _, n := range a.excluded {
		totalExcluded += n
	}
	return schema.Summary{
		TotalCobolPrograms:        a.fileCounts[schema.CobolPrograms],
		TotalJCLFiles:             a.fileCounts[schema.JCLFiles],
		TotalCopybooks:            a.fileCounts[schema.Copybooks],
		TotalProcedures:           a.fileCounts[schema.Procedures],
		TotalControlCards:         a.fileCounts[schema.ControlCards],
		TotalDataFiles:            a.fileCounts[schema.DataFiles],
		TotalInputFileReferences:  inputs,
		TotalOutputFileReferences: outputs,
		TotalJCLDatasets:          len(a.datasets),
		TotalOtherFiles:           a.fileCounts[schema.OtherFiles],
		FoldersAnalyzed:           len(a.folders),
		LineStatistics:            a.lineStatistics(),
		ExcludedFiles:             a.excluded,
		TotalExcludedFiles:        totalExcluded,
	}
}

// lineStatistics sums line stats per category and classifies each file as
// empty, comment-only or containing code.
func (a *Aggregator) lineStatistics() map[string]schema.CategoryLineStats {
	stats := make(map[string]schema.CategoryLineStats, len(schema.LineStatCategories)+1)
	var all schema.CategoryLineStats
	var allLines schema.LineStats
	for _, cat := range schema.LineStatCategories {
		var cs schema.CategoryLineStats
		var lines schema.LineStats
		for _, f := range a.detailed[cat] {
			lines.Add(f.LineStats)
			switch {
			case f.TotalLines == 0:
				cs.EmptyFiles++
			case f.CodeLines == 0 && f.CommentLines > 0:
				cs.FilesWithOnlyComments++
			case f.CodeLines > 0:
				cs.FilesWithCode++
			}
		}
		setLineTotals(&cs, lines)
		stats[string(cat)] = cs
		allLines.Add(lines)
		all.EmptyFiles += cs.EmptyFiles
		all.FilesWithOnlyComments += cs.FilesWithOnlyComments
		all.FilesWithCode += cs.FilesWithCode
	}
	setLineTotals(&all, allLines)
	stats[schema.AllFilesKey] = all
	return stats
}

func setLineTotals(cs *schema.CategoryLineStats, lines schema.LineStats) {
	cs.TotalLines = lines.TotalLines
	cs.CodeLines = lines.CodeLines
	cs.CommentLines = lines.CommentLines
	cs.NonEmptyLines = lines.NonEmptyLines
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
