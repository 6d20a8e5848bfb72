package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/internal/iocache"
	"github.com/huangsam/mfscan/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// analysisSetup loads minimal configuration needed for scan history operations.
// This is used by commands that need history access without full shared setup.
func analysisSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get analysis-related config values
	backend := backendFromViper("analysis-backend")
	connStr := viper.GetString("analysis-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export command)
	outputFile := viper.GetString("output-file")

	// Initialize stores with the loaded config (no file cache for analysis commands)
	if err := iocache.InitCaching("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize analysis: %w", err)
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// analysisSetupWrapper wraps analysisSetup to provide PreRunE for analysis commands.
func analysisSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisSetup()
}

// analysisMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func analysisMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := backendFromViper("analysis-backend")
	connStr := viper.GetString("analysis-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetAnalysisDBFilePath()
	}

	cfg.AnalysisBackend = backend
	cfg.AnalysisDBConnect = connStr

	return nil
}

// analysisMigrateSetupWrapper wraps analysisMigrateSetup to provide PreRunE for migrate command.
func analysisMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return analysisMigrateSetup()
}

// analysisCmd focused on scan history management.
//
// Note: Analysis subcommands use minimal initialization (analysisSetup) instead of
// the full sharedSetup used by scan commands. This avoids root directory
// validation and complex config processing for simple history operations.
var analysisCmd = &cobra.Command{
	Use:   "analysis",
	Short: "Manage scan history tracking and exports",
	Long: `Manage the scan history used to follow a migration over time.

When enabled with --analysis-backend, mfscan records every scan run, storing:
- Run metadata (timestamp, root directory, configuration, duration)
- Category and line statistics for every file
- Every JCL DD declaration found

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show scan history statistics
  export  - Export history to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  mfscan analysis status --analysis-backend sqlite

  # Export for analysis in pandas/DuckDB
  mfscan analysis export --analysis-backend sqlite --output-file history`,
}

// analysisClearCmd clears the scan history.
var analysisClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all scan history",
	Long: `Delete all stored scan runs, file records and dataset records.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  mfscan analysis export --output-file backup
  mfscan analysis clear`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the open handle before the SQLite file goes away
		iocache.CloseCaching()
		if err := iocache.ClearAnalysis(cfg.AnalysisBackend, sqliteFilePath(cfg.AnalysisDBConnect, contract.GetAnalysisDBFilePath()), cfg.AnalysisDBConnect); err != nil {
			contract.LogFatal("Failed to clear analysis data", err)
		}
		fmt.Println("Analysis data cleared successfully.")
	},
}

// analysisStatusCmd shows scan history status.
var analysisStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display scan history statistics and connection details",
	Long: `Show detailed information about scan history tracking.

Displays:
- Backend type and connection status
- Total number of scan runs stored
- Last and oldest scan timestamps
- Total files and datasets recorded
- Database table sizes

Examples:
  # Check scan history status
  mfscan analysis status`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetAnalysisStore()
		if store == nil {
			contract.LogFatal("Failed to get analysis status", fmt.Errorf("analysis tracking is not configured. Set --analysis-backend"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get analysis status", err)
		}
		iocache.PrintAnalysisStatus(os.Stdout, status)
	},
}

// analysisExportCmd exports scan history to Parquet files.
var analysisExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scan history to Parquet for BI tools and analytics",
	Long: `Export all stored scan history to Parquet format.

Writes three files next to --output-file:
- <output-file>.scan_runs.parquet - one row per scan
- <output-file>.file_records.parquet - one row per file per scan
- <output-file>.dataset_records.parquet - one row per DD declaration per scan

Requires: --output-file parameter

Examples:
  # Export all data
  mfscan analysis export --output-file history

  # Use with DuckDB
  duckdb -c "SELECT category, count(*) FROM 'history.file_records.parquet' GROUP BY 1"`,
	PreRunE: analysisSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteAnalysisExport(os.Stdout, iocache.Manager.GetAnalysisStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export analysis data", err)
		}
	},
}

// analysisMigrateCmd runs database migrations for the analysis store.
var analysisMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the scan history store.

By default, migrates to the latest version. Use --target-version for specific versions.
MySQL connection strings need multiStatements=true.

Examples:
  # Migrate to latest version (default)
  mfscan analysis migrate --analysis-backend sqlite

  # Migrate to specific version
  mfscan analysis migrate --target-version 1

  # Roll back everything
  mfscan analysis migrate --target-version 0`,
	PreRunE: analysisMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateAnalysis(os.Stdout, cfg.AnalysisBackend, cfg.AnalysisDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
