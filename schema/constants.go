package schema

// Custom string types for type safety.
type (
	// Category represents the artifact class a file belongs to.
	Category string

	// DatasetType represents the classification of a JCL DD statement.
	DatasetType string

	// Operation represents the direction of a COBOL I/O reference.
	Operation string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// All file categories recognized by the classifier.
const (
	CobolPrograms Category = "cobol_programs"
	JCLFiles      Category = "jcl_files"
	Copybooks     Category = "copybooks"
	Procedures    Category = "procedures"
	ControlCards  Category = "control_cards"
	DataFiles     Category = "data_files"
	OtherFiles    Category = "other_files" // anything unrecognized
)

// All dataset types, listed in classification precedence order.
const (
	DummyDataset     DatasetType = "DUMMY"
	SysoutDataset    DatasetType = "SYSOUT"
	SysinDataset     DatasetType = "SYSIN"
	TemporaryDataset DatasetType = "TEMPORARY"
	NamedDataset     DatasetType = "DATASET"
	HFSDataset       DatasetType = "HFS"
	OtherDataset     DatasetType = "OTHER"
)

// All I/O operation directions.
const (
	InputOp  Operation = "INPUT"
	OutputOp Operation = "OUTPUT"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllFilesKey is the line_statistics entry summing every line-stat category.
const AllFilesKey = "all_files"

// KnownCategories lists the recognized categories in report order.
// OtherFiles is deliberately absent: it is counted but never analyzed.
var KnownCategories = []Category{CobolPrograms, JCLFiles, Copybooks, Procedures, ControlCards, DataFiles}

// LineStatCategories lists the categories that get a line_statistics entry.
var LineStatCategories = []Category{CobolPrograms, JCLFiles, Copybooks, Procedures, ControlCards}

// AllDatasetTypes returns every dataset type in precedence order.
var AllDatasetTypes = []DatasetType{
	DummyDataset, SysoutDataset, SysinDataset, TemporaryDataset, NamedDataset, HFSDataset, OtherDataset,
}

// ValidCategories lists all categories accepted by filters.
var ValidCategories = map[Category]struct{}{
	CobolPrograms: {},
	JCLFiles:      {},
	Copybooks:     {},
	Procedures:    {},
	ControlCards:  {},
	DataFiles:     {},
	OtherFiles:    {},
}

// ValidDatasetTypes lists all dataset types accepted by filters.
var ValidDatasetTypes = map[DatasetType]struct{}{
	DummyDataset:     {},
	SysoutDataset:    {},
	SysinDataset:     {},
	TemporaryDataset: {},
	NamedDataset:     {},
	HFSDataset:       {},
	OtherDataset:     {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// CategoryFromString resolves a category name, reporting whether it is valid.
func CategoryFromString(s string) (Category, bool) {
	c := Category(s)
	_, ok := ValidCategories[c]
	return c, ok
}

// IsAnalyzed reports whether files of this category get line-level analysis.
func (c Category) IsAnalyzed() bool {
	return c != OtherFiles && c != ""
}

// AlwaysEmitted reports whether a DD statement of this type is kept
// even when it names no dataset and no disposition.
func (d DatasetType) AlwaysEmitted() bool {
	return d == DummyDataset || d == SysoutDataset || d == SysinDataset
}
