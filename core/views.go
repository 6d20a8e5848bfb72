package core

import (
	"maps"
	"slices"

	"github.com/huangsam/mfscan/schema"
)

// FileRecords flattens the detailed files in category order. A non-empty
// filter keeps a single category.
func FileRecords(report *schema.AnalysisReport, filter schema.Category) []schema.FileRecord {
	var files []schema.FileRecord
	for _, cat := range schema.KnownCategories {
		if filter != "" && cat != filter {
			continue
		}
		for _, f := range report.DetailedFiles[cat] {
			f.Category = cat
			files = append(files, f)
		}
	}
	return files
}

// FolderRows turns the folder breakdown into rows sorted by folder path.
func FolderRows(report *schema.AnalysisReport) []schema.FolderRow {
	folders := slices.Sorted(maps.Keys(report.FolderAnalysis))
	rows := make([]schema.FolderRow, 0, len(folders))
	for _, folder := range folders {
		counts := report.FolderAnalysis[folder]
		total := 0
		for _, n := range counts {
			total += n
		}
		rows = append(rows, schema.FolderRow{Folder: folder, Total: total, Counts: counts})
	}
	return rows
}

// IONameRows summarizes the references to every I/O name, sorted by name.
// A non-empty op keeps only references in that direction.
func IONameRows(report *schema.AnalysisReport, op schema.Operation) []schema.IONameRow {
	refs := report.IOAnalysis.FileReferences
	names := slices.Sorted(maps.Keys(refs))
	rows := make([]schema.IONameRow, 0, len(names))
	for _, name := range names {
		row := schema.IONameRow{Name: name}
		for _, r := range refs[name] {
			if op != "" && r.Operation != op {
				continue
			}
			switch r.Operation {
			case schema.InputOp:
				row.Inputs++
			case schema.OutputOp:
				row.Outputs++
			}
			row.References++
			if !slices.Contains(row.Files, r.File) {
				row.Files = append(row.Files, r.File)
			}
		}
		if row.References > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// FilterDatasets keeps the declarations of one dataset type, in source order.
// An empty filter keeps everything.
func FilterDatasets(decls []schema.DatasetDeclaration, filter schema.DatasetType) []schema.DatasetDeclaration {
	if filter == "" {
		return decls
	}
	var out []schema.DatasetDeclaration
	for _, d := range decls {
		if d.DatasetType == filter {
			out = append(out, d)
		}
	}
	return out
}
