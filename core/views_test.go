package core

import (
	"testing"

	"github.com/huangsam/mfscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func viewReport() *schema.AnalysisReport {
	return &schema.AnalysisReport{
		DetailedFiles: map[schema.Category][]schema.FileRecord{
			schema.JCLFiles:      {{Path: "jobs/A.jcl"}},
			schema.CobolPrograms: {{Path: "src/A.cbl"}, {Path: "src/B.cbl"}},
		},
		FolderAnalysis: map[string]map[schema.Category]int{
			"src":  {schema.CobolPrograms: 2},
			".":    {schema.OtherFiles: 1},
			"jobs": {schema.JCLFiles: 1, schema.ControlCards: 2},
		},
		IOAnalysis: schema.IOAnalysis{
			FileReferences: map[string][]schema.FileReference{
				"PAYFILE": {
					{File: "src/A.cbl", Operation: schema.InputOp},
					{File: "src/A.cbl", Operation: schema.InputOp},
					{File: "src/B.cbl", Operation: schema.OutputOp},
				},
				"CONSOLE": {{File: "src/B.cbl", Operation: schema.OutputOp}},
			},
		},
	}
}

func TestFileRecords(t *testing.T) {
	all := FileRecords(viewReport(), "")
	require.Len(t, all, 3)
	// Category order, then walk order
	assert.Equal(t, "src/A.cbl", all[0].Path)
	assert.Equal(t, schema.CobolPrograms, all[0].Category)
	assert.Equal(t, "jobs/A.jcl", all[2].Path)
	assert.Equal(t, schema.JCLFiles, all[2].Category)

	jcl := FileRecords(viewReport(), schema.JCLFiles)
	require.Len(t, jcl, 1)
	assert.Empty(t, FileRecords(viewReport(), schema.Copybooks))
}

func TestFolderRows(t *testing.T) {
	rows := FolderRows(viewReport())
	require.Len(t, rows, 3)
	assert.Equal(t, ".", rows[0].Folder)
	assert.Equal(t, "jobs", rows[1].Folder)
	assert.Equal(t, 3, rows[1].Total)
	assert.Equal(t, "src", rows[2].Folder)
}

func TestIONameRows(t *testing.T) {
	rows := IONameRows(viewReport(), "")
	require.Len(t, rows, 2)
	assert.Equal(t, schema.IONameRow{Name: "CONSOLE", Outputs: 1, References: 1, Files: []string{"src/B.cbl"}}, rows[0])
	assert.Equal(t, schema.IONameRow{Name: "PAYFILE", Inputs: 2, Outputs: 1, References: 3, Files: []string{"src/A.cbl", "src/B.cbl"}}, rows[1])

	inputs := IONameRows(viewReport(), schema.InputOp)
	require.Len(t, inputs, 1)
	assert.Equal(t, "PAYFILE", inputs[0].Name)
	assert.Equal(t, 2, inputs[0].References)
	assert.Zero(t, inputs[0].Outputs)
}

func TestFilterDatasets(t *testing.T) {
	decls := []schema.DatasetDeclaration{
		{DDName: "IN", DatasetType: schema.NamedDataset},
		{DDName: "SYSPRINT", DatasetType: schema.SysoutDataset},
		{DDName: "OUT", DatasetType: schema.NamedDataset},
	}
	assert.Equal(t, decls, FilterDatasets(decls, ""))

	named := FilterDatasets(decls, schema.NamedDataset)
	require.Len(t, named, 2)
	assert.Equal(t, "IN", named[0].DDName)
	assert.Equal(t, "OUT", named[1].DDName)

	assert.Empty(t, FilterDatasets(decls, schema.DummyDataset))
}
