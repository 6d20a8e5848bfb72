package contract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/mfscan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// validInput returns raw input that passes validation against dir.
func validInput(dir string) *ConfigRawInput {
	return &ConfigRawInput{
		RootPathStr:  dir,
		Limit:        10,
		Top:          5,
		Workers:      4,
		Precision:    1,
		Output:       "text",
		CacheBackend: string(schema.SQLiteBackend),
		Emoji:        "no",
		Color:        "no",
	}
}

func TestProcessAndValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "PAYROLL.cbl")
	require.NoError(t, os.WriteFile(file, []byte("       IDENTIFICATION DIVISION.\n"), 0o644))

	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "invalid limit (zero)", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: true},
		{name: "invalid limit (negative)", mutate: func(in *ConfigRawInput) { in.Limit = -1 }, expectError: true},
		{name: "invalid limit (too large)", mutate: func(in *ConfigRawInput) { in.Limit = 1001 }, expectError: true},
		{name: "invalid top (zero)", mutate: func(in *ConfigRawInput) { in.Top = 0 }, expectError: true},
		{name: "invalid workers (zero)", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "invalid precision (too high)", mutate: func(in *ConfigRawInput) { in.Precision = 3 }, expectError: true},
		{name: "yaml output", mutate: func(in *ConfigRawInput) { in.Output = "YAML" }},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "invalid emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }, expectError: true},
		{name: "invalid log level", mutate: func(in *ConfigRawInput) { in.LogLevel = "loud" }, expectError: true},
		{name: "invalid cache backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "invalid_backend" }, expectError: true},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = string(schema.MySQLBackend) },
			expectError: true,
		},
		{
			name: "mysql with connection string",
			mutate: func(in *ConfigRawInput) {
				in.CacheBackend = string(schema.MySQLBackend)
				in.CacheDBConnect = "user:pass@tcp(localhost:3306)/mfscan"
			},
		},
		{
			name:        "postgres missing dbname",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "postgresql"; in.CacheDBConnect = "host=localhost" },
			expectError: true,
		},
		{
			name: "sqlite cache and analysis share a file",
			mutate: func(in *ConfigRawInput) {
				in.CacheDBConnect = filepath.Join(dir, "shared.db")
				in.AnalysisBackend = "sqlite"
				in.AnalysisDBConnect = filepath.Join(dir, "shared.db")
			},
			expectError: true,
		},
		{
			name: "sqlite cache and analysis on different files",
			mutate: func(in *ConfigRawInput) {
				in.AnalysisBackend = "sqlite"
				in.AnalysisDBConnect = filepath.Join(dir, "history.db")
			},
		},
		{name: "valid category filter", mutate: func(in *ConfigRawInput) { in.Category = "JCL_FILES" }},
		{name: "invalid category filter", mutate: func(in *ConfigRawInput) { in.Category = "binaries" }, expectError: true},
		{name: "valid dataset type filter", mutate: func(in *ConfigRawInput) { in.Type = "sysout" }},
		{name: "invalid dataset type filter", mutate: func(in *ConfigRawInput) { in.Type = "TAPE" }, expectError: true},
		{name: "invalid operation filter", mutate: func(in *ConfigRawInput) { in.Operation = "EXTEND" }, expectError: true},
		{name: "invalid debounce", mutate: func(in *ConfigRawInput) { in.Debounce = "soon" }, expectError: true},
		{name: "missing root", mutate: func(in *ConfigRawInput) { in.RootPathStr = filepath.Join(dir, "nope") }, expectError: true},
		{name: "root is a file", mutate: func(in *ConfigRawInput) { in.RootPathStr = file }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(dir)
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)

			if tt.expectError {
				assert.Error(t, err, "contract.ProcessAndValidate should return an error for %s", tt.name)
				return
			}
			require.NoError(t, err, "contract.ProcessAndValidate should not return an error for %s", tt.name)
			assert.Equal(t, input.Limit, cfg.ResultLimit)
			assert.True(t, filepath.IsAbs(cfg.RootPath))
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	dir := t.TempDir()
	input := validInput(dir)
	input.Exclude = " archive/ ,*.bak,, .lst "
	input.Type = "sysout"
	input.Operation = "output"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, []string{"archive/", "*.bak", ".lst"}, cfg.Excludes)
	assert.Equal(t, zapcore.WarnLevel, cfg.LogLevel)
	assert.Equal(t, DefaultDebounce, cfg.Debounce)
	assert.Equal(t, schema.SysoutDataset, cfg.DatasetFilter)
	assert.Equal(t, schema.OutputOp, cfg.OperationFilter)
	assert.Equal(t, schema.Category(""), cfg.CategoryFilter)
	assert.False(t, cfg.EmitAllDD)
}

func TestProcessAndValidateDebounce(t *testing.T) {
	input := validInput(t.TempDir())
	input.Debounce = "2s"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 2*time.Second, cfg.Debounce)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{RootPath: "/src", Excludes: []string{"archive/"}}
	clone := cfg.CloneWithRoot("/other")

	clone.Excludes[0] = "changed/"
	assert.Equal(t, "archive/", cfg.Excludes[0])
	assert.Equal(t, "/other", clone.RootPath)
	assert.Equal(t, "/src", cfg.RootPath)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite ignores string", schema.SQLiteBackend, "", false},
		{"none ignores string", schema.NoneBackend, "anything", false},
		{"mysql ok", schema.MySQLBackend, "root:pw@tcp(db:3306)/scan", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@db/scan", true},
		{"postgres ok", schema.PostgreSQLBackend, "host=db port=5432 dbname=scan", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=scan", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessProfilingConfig(t *testing.T) {
	var profile ProfileConfig
	require.NoError(t, ProcessProfilingConfig(&profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(&profile, "mfscan"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "mfscan", profile.Prefix)
}

func TestRevalidateRoot(t *testing.T) {
	base := &Config{RootPath: "/src"}

	require.NoError(t, RevalidateRoot(base, ""))
	assert.Equal(t, "/src", base.RootPath)

	dir := t.TempDir()
	require.NoError(t, RevalidateRoot(base, dir))
	assert.Equal(t, filepath.Clean(dir), base.RootPath)

	err := RevalidateRoot(base, filepath.Join(dir, "missing"))
	assert.ErrorContains(t, err, "does not exist")

	file := filepath.Join(dir, "PAY001.cbl")
	require.NoError(t, os.WriteFile(file, []byte("       IDENTIFICATION DIVISION.\n"), 0o644))
	assert.ErrorContains(t, RevalidateRoot(base, file), "is not a directory")
}

func TestRevalidateFilters(t *testing.T) {
	cfg := &Config{Debounce: 3 * time.Second}

	require.NoError(t, RevalidateFilters(cfg, "sysout", "output"))
	assert.Equal(t, schema.SysoutDataset, cfg.DatasetFilter)
	assert.Equal(t, schema.OutputOp, cfg.OperationFilter)
	assert.Equal(t, 3*time.Second, cfg.Debounce)

	require.NoError(t, RevalidateFilters(cfg, "", ""))
	assert.Empty(t, cfg.DatasetFilter)
	assert.Empty(t, cfg.OperationFilter)

	assert.ErrorContains(t, RevalidateFilters(cfg, "TAPE", ""), "invalid dataset type")
	assert.ErrorContains(t, RevalidateFilters(cfg, "", "UPDATE"), "invalid operation")
}
