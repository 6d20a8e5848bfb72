package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/mfscan/internal/contract"
	"github.com/huangsam/mfscan/schema"
)

// Table names for scan history.
const (
	scanRunsTable       = "mfscan_scan_runs"
	fileRecordsTable    = "mfscan_file_records"
	datasetRecordsTable = "mfscan_dataset_records"
)

// analysisTables lists the scan history tables in creation order.
var analysisTables = []string{scanRunsTable, fileRecordsTable, datasetRecordsTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, driverName, err := openDatabase(backend, connStr, contract.GetAnalysisDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analysis store: %w", err)
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createAnalysisTables creates the scan history tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	for _, table := range analysisTables {
		if _, err := db.Exec(getCreateAnalysisTableQuery(table, backend)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return nil
}

// getCreateAnalysisTableQuery returns the CREATE TABLE query for one scan history table.
func getCreateAnalysisTableQuery(table string, backend schema.DatabaseBackend) string {
	quoted := quoteTableName(table, backend)

	switch table {
	case scanRunsTable:
		switch backend {
		case schema.MySQLBackend:
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					analysis_id BIGINT AUTO_INCREMENT PRIMARY KEY,
					root_directory VARCHAR(1024) NOT NULL,
					start_time DATETIME(6) NOT NULL,
					end_time DATETIME(6),
					run_duration_ms INT,
					total_files_analyzed INT NOT NULL DEFAULT 0,
					config_params TEXT
				);
			`, quoted)
		case schema.PostgreSQLBackend:
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					analysis_id BIGSERIAL PRIMARY KEY,
					root_directory TEXT NOT NULL,
					start_time TIMESTAMPTZ NOT NULL,
					end_time TIMESTAMPTZ,
					run_duration_ms INT,
					total_files_analyzed INT NOT NULL DEFAULT 0,
					config_params TEXT
				);
			`, quoted)
		default: // SQLite
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					analysis_id INTEGER PRIMARY KEY AUTOINCREMENT,
					root_directory TEXT NOT NULL,
					start_time TEXT NOT NULL,
					end_time TEXT,
					run_duration_ms INTEGER,
					total_files_analyzed INTEGER NOT NULL DEFAULT 0,
					config_params TEXT
				);
			`, quoted)
		}

	case fileRecordsTable:
		switch backend {
		case schema.MySQLBackend:
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					analysis_id BIGINT NOT NULL,
					file_path VARCHAR(512) NOT NULL,
					category VARCHAR(32) NOT NULL,
					analysis_time DATETIME(6) NOT NULL,
					size_bytes BIGINT NOT NULL,
					total_lines INT NOT NULL,
					non_empty_lines INT NOT NULL,
					comment_lines INT NOT NULL,
					code_lines INT NOT NULL,
					excluded BOOLEAN NOT NULL,
					PRIMARY KEY (analysis_id, file_path)
				);
			`, quoted)
		case schema.PostgreSQLBackend:
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					analysis_id BIGINT NOT NULL,
					file_path TEXT NOT NULL,
					category TEXT NOT NULL,
					analysis_time TIMESTAMPTZ NOT NULL,
					size_bytes BIGINT NOT NULL,
					total_lines INT NOT NULL,
					non_empty_lines INT NOT NULL,
					comment_lines INT NOT NULL,
					code_lines INT NOT NULL,
					excluded BOOLEAN NOT NULL,
					PRIMARY KEY (analysis_id, file_path)
				);
			`, quoted)
		default: // SQLite
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					analysis_id INTEGER NOT NULL,
					file_path TEXT NOT NULL,
					category TEXT NOT NULL,
					analysis_time TEXT NOT NULL,
					size_bytes INTEGER NOT NULL,
					total_lines INTEGER NOT NULL,
					non_empty_lines INTEGER NOT NULL,
					comment_lines INTEGER NOT NULL,
					code_lines INTEGER NOT NULL,
					excluded INTEGER NOT NULL,
					PRIMARY KEY (analysis_id, file_path)
				);
			`, quoted)
		}

	default: // datasetRecordsTable
		switch backend {
		case schema.MySQLBackend:
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					record_id BIGINT AUTO_INCREMENT PRIMARY KEY,
					analysis_id BIGINT NOT NULL,
					jcl_file VARCHAR(512) NOT NULL,
					line_number INT NOT NULL,
					job_name VARCHAR(64) NOT NULL,
					step_name VARCHAR(64) NOT NULL,
					proc_name VARCHAR(64) NOT NULL,
					dd_name VARCHAR(64) NOT NULL,
					dataset_name VARCHAR(255) NOT NULL,
					dataset_type VARCHAR(16) NOT NULL,
					disp_status VARCHAR(16) NOT NULL,
					disp_normal VARCHAR(16) NOT NULL,
					disp_abnormal VARCHAR(16) NOT NULL,
					INDEX idx_dataset_records_analysis (analysis_id)
				);
			`, quoted)
		case schema.PostgreSQLBackend:
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					record_id BIGSERIAL PRIMARY KEY,
					analysis_id BIGINT NOT NULL,
					jcl_file TEXT NOT NULL,
					line_number INT NOT NULL,
					job_name TEXT NOT NULL,
					step_name TEXT NOT NULL,
					proc_name TEXT NOT NULL,
					dd_name TEXT NOT NULL,
					dataset_name TEXT NOT NULL,
					dataset_type TEXT NOT NULL,
					disp_status TEXT NOT NULL,
					disp_normal TEXT NOT NULL,
					disp_abnormal TEXT NOT NULL
				);
			`, quoted)
		default: // SQLite
			return fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					record_id INTEGER PRIMARY KEY AUTOINCREMENT,
					analysis_id INTEGER NOT NULL,
					jcl_file TEXT NOT NULL,
					line_number INTEGER NOT NULL,
					job_name TEXT NOT NULL,
					step_name TEXT NOT NULL,
					proc_name TEXT NOT NULL,
					dd_name TEXT NOT NULL,
					dataset_name TEXT NOT NULL,
					dataset_type TEXT NOT NULL,
					disp_status TEXT NOT NULL,
					disp_normal TEXT NOT NULL,
					disp_abnormal TEXT NOT NULL
				);
			`, quoted)
		}
	}
}

// disabled reports whether the store silently ignores writes.
func (as *AnalysisStoreImpl) disabled() bool {
	return as.backend == schema.NoneBackend || as.db == nil
}

// BeginAnalysis creates a new scan run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, rootDir string, configParams map[string]any) (int64, error) {
	if as.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(scanRunsTable, as.backend)
	query := fmt.Sprintf(`INSERT INTO %s (root_directory, start_time, config_params) VALUES (%s)`,
		quotedTableName, placeholders(as.backend, 3))
	args := []any{rootDir, formatTime(startTime, as.backend), string(configJSON)}

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		err = as.db.QueryRow(query+" RETURNING analysis_id", args...).Scan(&analysisID)
	default: // SQLite and MySQL
		var result sql.Result
		result, err = as.db.Exec(query, args...)
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan run: %w", err)
	}

	return analysisID, nil
}

// EndAnalysis updates the scan run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalFiles int) error {
	if as.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(scanRunsTable, as.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, placeholders(as.backend, 1))
	startTime, err := as.scanTime(as.db.QueryRow(query, analysisID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	switch as.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_files_analyzed = $3 WHERE analysis_id = $4`, quotedTableName)
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_files_analyzed = ? WHERE analysis_id = ?`, quotedTableName)
	}

	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalFiles, analysisID); err != nil {
		return fmt.Errorf("failed to update scan run: %w", err)
	}
	return nil
}

// RecordFile stores the classification and line stats of one file.
func (as *AnalysisStoreImpl) RecordFile(analysisID int64, row schema.FileRecordRow) error {
	if as.disabled() {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (analysis_id, file_path, category, analysis_time, size_bytes,
		                total_lines, non_empty_lines, comment_lines, code_lines, excluded)
		VALUES (%s)
	`, quoteTableName(fileRecordsTable, as.backend), placeholders(as.backend, 10))

	_, err := as.db.Exec(query,
		analysisID, row.FilePath, row.Category, formatTime(row.AnalysisTime, as.backend), row.SizeBytes,
		row.TotalLines, row.NonEmptyLines, row.CommentLines, row.CodeLines, as.boolValue(row.Excluded),
	)
	if err != nil {
		return fmt.Errorf("failed to insert file record: %w", err)
	}
	return nil
}

// RecordDatasets stores the DD statements parsed from one JCL member in a single transaction.
func (as *AnalysisStoreImpl) RecordDatasets(analysisID int64, rows []schema.DatasetRecordRow) error {
	if as.disabled() || len(rows) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (analysis_id, jcl_file, line_number, job_name, step_name, proc_name,
		                dd_name, dataset_name, dataset_type, disp_status, disp_normal, disp_abnormal)
		VALUES (%s)
	`, quoteTableName(datasetRecordsTable, as.backend), placeholders(as.backend, 12))

	tx, err := as.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin dataset transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare dataset insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		if _, err := stmt.Exec(analysisID, r.JCLFile, r.LineNumber, r.JobName, r.StepName, r.ProcName,
			r.DDName, r.DatasetName, r.DatasetType, r.DispStatus, r.DispNormal, r.DispAbnormal); err != nil {
			return fmt.Errorf("failed to insert dataset record for %s: %w", r.DDName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit dataset records: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.disabled() {
		return status, nil
	}

	runs := quoteTableName(scanRunsTable, as.backend)
	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runs)
		var err error
		status.LastRunID, status.LastRunTime, err = as.scanIDAndTime(as.db.QueryRow(lastRunQuery))
		if err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}

		oldestRunQuery := fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runs)
		_, status.OldestRunTime, err = as.scanIDAndTime(as.db.QueryRow(oldestRunQuery))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		filesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_files_analyzed), 0) FROM %s", runs)
		if err := as.db.QueryRow(filesQuery).Scan(&status.TotalFilesAnalyzed); err != nil {
			return status, fmt.Errorf("failed to get total files analyzed: %w", err)
		}
	}

	for _, table := range analysisTables {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend))
		if err := as.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalDatasets = int(status.TableSizes[datasetRecordsTable])

	return status, nil
}

// GetAllScanRuns retrieves all scan runs from the store.
func (as *AnalysisStoreImpl) GetAllScanRuns() ([]schema.ScanRunRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, root_directory, start_time, end_time, run_duration_ms,
		total_files_analyzed, config_params FROM %s ORDER BY analysis_id`, quoteTableName(scanRunsTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ScanRunRecord
	for rows.Next() {
		var record schema.ScanRunRecord

		switch as.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.AnalysisID, &record.RootDirectory, &startTimeStr, &endTimeStr,
				&record.RunDurationMs, &record.TotalFilesAnalyzed, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan scan run: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.AnalysisID, &record.RootDirectory, &record.StartTime, &record.EndTime,
				&record.RunDurationMs, &record.TotalFilesAnalyzed, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan scan run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scan runs: %w", err)
	}
	return results, nil
}

// GetAllFileRecords retrieves all per-file rows from the store.
func (as *AnalysisStoreImpl) GetAllFileRecords() ([]schema.FileRecordRow, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, file_path, category, analysis_time, size_bytes,
		total_lines, non_empty_lines, comment_lines, code_lines, excluded
		FROM %s ORDER BY analysis_id, file_path`, quoteTableName(fileRecordsTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query file records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FileRecordRow
	for rows.Next() {
		var record schema.FileRecordRow
		var analysisTime any
		if err := rows.Scan(&record.AnalysisID, &record.FilePath, &record.Category, &analysisTime,
			&record.SizeBytes, &record.TotalLines, &record.NonEmptyLines, &record.CommentLines,
			&record.CodeLines, &record.Excluded); err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		if record.AnalysisTime, err = toTime(analysisTime); err != nil {
			return nil, fmt.Errorf("failed to parse analysis_time: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file records: %w", err)
	}
	return results, nil
}

// GetAllDatasetRecords retrieves all dataset rows from the store.
func (as *AnalysisStoreImpl) GetAllDatasetRecords() ([]schema.DatasetRecordRow, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, jcl_file, line_number, job_name, step_name, proc_name,
		dd_name, dataset_name, dataset_type, disp_status, disp_normal, disp_abnormal
		FROM %s ORDER BY analysis_id, record_id`, quoteTableName(datasetRecordsTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dataset records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.DatasetRecordRow
	for rows.Next() {
		var r schema.DatasetRecordRow
		if err := rows.Scan(&r.AnalysisID, &r.JCLFile, &r.LineNumber, &r.JobName, &r.StepName, &r.ProcName,
			&r.DDName, &r.DatasetName, &r.DatasetType, &r.DispStatus, &r.DispNormal, &r.DispAbnormal); err != nil {
			return nil, fmt.Errorf("failed to scan dataset record: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dataset records: %w", err)
	}
	return results, nil
}

// scanTime reads a single timestamp column, which SQLite stores as text.
func (as *AnalysisStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	var raw any
	if err := row.Scan(&raw); err != nil {
		return time.Time{}, err
	}
	return toTime(raw)
}

// scanIDAndTime reads an (analysis_id, start_time) pair.
func (as *AnalysisStoreImpl) scanIDAndTime(row *sql.Row) (int64, time.Time, error) {
	var id int64
	var raw any
	if err := row.Scan(&id, &raw); err != nil {
		return 0, time.Time{}, err
	}
	t, err := toTime(raw)
	return id, t, err
}

// boolValue binds a flag as BOOLEAN on PostgreSQL and as 0/1 elsewhere.
func (as *AnalysisStoreImpl) boolValue(b bool) any {
	if as.backend == schema.PostgreSQLBackend {
		return b
	}
	if b {
		return 1
	}
	return 0
}

// toTime normalizes a scanned timestamp column across drivers.
func toTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTime(v)
	case []byte:
		return parseTime(string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", raw)
	}
}
