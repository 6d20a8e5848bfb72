package agg

import (
	"testing"
	"time"

	"github.com/huangsam/mfscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cobolFile(path, folder string, stats schema.LineStats) schema.FileAnalysis {
	return schema.FileAnalysis{Record: schema.FileRecord{
		Name: path, Path: path, Folder: folder, Category: schema.CobolPrograms, LineStats: stats,
	}}
}

func TestAggregatorCounts(t *testing.T) {
	a := NewAggregator()
	a.Add(cobolFile("PAY.cbl", ".", schema.LineStats{TotalLines: 10, NonEmptyLines: 8, CommentLines: 2, CodeLines: 6}))
	a.Add(cobolFile("src/EMPTY.cbl", "src", schema.LineStats{}))
	a.Add(cobolFile("src/DOC.cbl", "src", schema.LineStats{TotalLines: 3, NonEmptyLines: 2, CommentLines: 2}))
	a.Add(schema.FileAnalysis{Record: schema.FileRecord{Path: "README.md", Folder: ".", Category: schema.OtherFiles}})
	a.Add(schema.FileAnalysis{Record: schema.FileRecord{Path: "old.jcl", Folder: ".", Category: schema.JCLFiles}, Excluded: true})

	r := a.Report("/tmp/root", time.Unix(0, 0), 5)

	assert.Equal(t, 3, r.FileCounts[schema.CobolPrograms])
	assert.Equal(t, 1, r.FileCounts[schema.OtherFiles])
	assert.Zero(t, r.FileCounts[schema.JCLFiles])
	assert.Equal(t, 1, r.ExcludedCounts[schema.JCLFiles])
	assert.Equal(t, 1, r.Summary.TotalExcludedFiles)
	assert.Equal(t, 2, r.Summary.FoldersAnalyzed)
	assert.Equal(t, map[schema.Category]int{schema.CobolPrograms: 1, schema.OtherFiles: 1}, r.FolderAnalysis["."])
	assert.Len(t, r.DetailedFiles[schema.CobolPrograms], 3)
	assert.Empty(t, r.DetailedFiles[schema.OtherFiles])

	cobol := r.Summary.LineStatistics[string(schema.CobolPrograms)]
	assert.Equal(t, 13, cobol.TotalLines)
	assert.Equal(t, 6, cobol.CodeLines)
	assert.Equal(t, 1, cobol.EmptyFiles)
	assert.Equal(t, 1, cobol.FilesWithOnlyComments)
	assert.Equal(t, 1, cobol.FilesWithCode)
	assert.Equal(t, cobol, r.Summary.LineStatistics[schema.AllFilesKey])
	assert.NotContains(t, r.Summary.LineStatistics, string(schema.DataFiles))
}

func TestAggregatorIO(t *testing.T) {
	a := NewAggregator()
	fa := cobolFile("PAY.cbl", ".", schema.LineStats{})
	fa.IORefs = []schema.IOReference{
		{Name: "PAYFILE", Operation: schema.InputOp, SourceFile: "PAY.cbl"},
		{Name: "PAYFILE", Operation: schema.InputOp, SourceFile: "PAY.cbl"},
		{Name: "REPORT", Operation: schema.OutputOp, SourceFile: "PAY.cbl"},
		{Name: "AUDIT", Operation: schema.OutputOp, SourceFile: "PAY.cbl"},
	}
	a.Add(fa)
	r := a.Report(".", time.Unix(0, 0), 5)

	assert.Equal(t, []string{"PAYFILE"}, r.IOAnalysis.InputFiles)
	assert.Equal(t, []string{"AUDIT", "REPORT"}, r.IOAnalysis.OutputFiles)
	assert.Len(t, r.IOAnalysis.FileReferences["PAYFILE"], 2)
	assert.Equal(t, 1, r.Summary.TotalInputFileReferences)
	assert.Equal(t, 2, r.Summary.TotalOutputFileReferences)
	require.NotEmpty(t, r.DatasetStatistics.TopIONames)
	assert.Equal(t, schema.FrequencyEntry{Value: "PAYFILE", Count: 2}, r.DatasetStatistics.TopIONames[0])
}

func TestAggregatorDatasets(t *testing.T) {
	a := NewAggregator()
	fa := schema.FileAnalysis{
		Record: schema.FileRecord{Path: "a.jcl", Folder: ".", Category: schema.JCLFiles},
		Datasets: []schema.DatasetDeclaration{
			{DatasetName: "A", DispStatus: "SHR", DatasetType: schema.NamedDataset},
			{DatasetType: schema.SysoutDataset},
			{DatasetName: "B", DispStatus: "NEW", DatasetType: schema.NamedDataset},
			{DatasetName: "A", DispStatus: "SHR", DatasetType: schema.NamedDataset},
		},
	}
	a.Add(fa)
	r := a.Report(".", time.Unix(0, 0), 1)

	assert.Equal(t, 4, r.Summary.TotalJCLDatasets)
	assert.Equal(t, []schema.FrequencyEntry{
		{Value: "DATASET", Count: 3},
		{Value: "SYSOUT", Count: 1},
	}, r.DatasetStatistics.TypeFrequency)
	assert.Equal(t, []schema.FrequencyEntry{
		{Value: "SHR", Count: 2},
		{Value: "NEW", Count: 1},
	}, r.DatasetStatistics.DispFrequency)
	assert.Equal(t, []schema.FrequencyEntry{{Value: "A", Count: 2}}, r.DatasetStatistics.TopDatasets)
}

func TestAggregatorEmptyReport(t *testing.T) {
	r := NewAggregator().Report(".", time.Unix(0, 0), 5)
	assert.NotNil(t, r.JCLDatasets)
	assert.Empty(t, r.IOAnalysis.InputFiles)
	assert.Zero(t, r.Summary.FoldersAnalyzed)
	assert.Contains(t, r.Summary.LineStatistics, schema.AllFilesKey)
}

func TestAggregatorLineStatisticsAcrossCategories(t *testing.T) {
	a := NewAggregator()
	a.Add(cobolFile("PAY.cbl", ".", schema.LineStats{TotalLines: 10, NonEmptyLines: 8, CommentLines: 2, CodeLines: 6}))
	a.Add(schema.FileAnalysis{Record: schema.FileRecord{
		Path: "jcl/RUN.jcl", Folder: "jcl", Category: schema.JCLFiles,
		LineStats: schema.LineStats{TotalLines: 5, NonEmptyLines: 4, CommentLines: 1, CodeLines: 3},
	}})

	r := a.Report("/tmp/root", time.Unix(0, 0), 5)

	jcl := r.Summary.LineStatistics[string(schema.JCLFiles)]
	assert.Equal(t, schema.CategoryLineStats{
		TotalLines: 5, CodeLines: 3, CommentLines: 1, NonEmptyLines: 4, FilesWithCode: 1,
	}, jcl)
	assert.Equal(t, schema.CategoryLineStats{
		TotalLines: 15, CodeLines: 9, CommentLines: 3, NonEmptyLines: 12, FilesWithCode: 2,
	}, r.Summary.LineStatistics[schema.AllFilesKey])
}
