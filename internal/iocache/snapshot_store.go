package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// Table names for score snapshot tracking.
const (
	snapshotRunsTable   = "pkgpulse_runs"
	snapshotScoresTable = "pkgpulse_scores"
)

// SnapshotStoreImpl implements the SnapshotStore interface.
type SnapshotStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.SnapshotStore = &SnapshotStoreImpl{} // Compile-time check

// NewSnapshotStore creates a new SnapshotStore with the specified backend.
func NewSnapshotStore(backend schema.DatabaseBackend, connStr string) (contract.SnapshotStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &SnapshotStoreImpl{db: nil, backend: backend}, nil
	}

	db, _, err := openBackendDB(backend, connStr, GetSnapshotDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createSnapshotTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create snapshot tables: %w", err)
	}

	return &SnapshotStoreImpl{db: db, backend: backend}, nil
}

// createSnapshotTables creates the snapshot tracking tables.
func createSnapshotTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{snapshotRunsTable, getCreateRunsQuery(backend)},
		{snapshotScoresTable, getCreateScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for pkgpulse_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(snapshotRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				package_count INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				package_count INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				package_count INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateScoresQuery returns the CREATE TABLE query for pkgpulse_scores.
func getCreateScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(snapshotScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				package_name VARCHAR(255) NOT NULL,
				recorded_at DATETIME(6) NOT NULL,
				score INT NOT NULL,
				weekly_downloads BIGINT NOT NULL,
				bundle_size INT NOT NULL,
				last_commit_days INT NOT NULL,
				security_issues INT NOT NULL,
				deprecated BOOLEAN NOT NULL,
				PRIMARY KEY (run_id, package_name)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				package_name TEXT NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL,
				score INT NOT NULL,
				weekly_downloads BIGINT NOT NULL,
				bundle_size INT NOT NULL,
				last_commit_days INT NOT NULL,
				security_issues INT NOT NULL,
				deprecated BOOLEAN NOT NULL,
				PRIMARY KEY (run_id, package_name)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				package_name TEXT NOT NULL,
				recorded_at TEXT NOT NULL,
				score INTEGER NOT NULL,
				weekly_downloads INTEGER NOT NULL,
				bundle_size INTEGER NOT NULL,
				last_commit_days INTEGER NOT NULL,
				security_issues INTEGER NOT NULL,
				deprecated BOOLEAN NOT NULL,
				PRIMARY KEY (run_id, package_name)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new scoring run and returns its unique ID.
func (ss *SnapshotStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(snapshotRunsTable, ss.backend)

	var runID int64
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = ss.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = ss.db.Exec(query, formatTime(startTime, ss.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot run: %w", err)
	}

	return runID, nil
}

// EndRun updates the scoring run with completion data.
func (ss *SnapshotStoreImpl) EndRun(runID int64, endTime time.Time, totalPackages int) error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(snapshotRunsTable, ss.backend)

	var query string
	var args []any
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, package_count = $2 WHERE run_id = $3`, quotedTableName)
		args = []any{endTime, totalPackages, runID}
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, package_count = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, ss.backend), totalPackages, runID}
	}

	if _, err := ss.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update snapshot run: %w", err)
	}

	return nil
}

// RecordScore stores one package's score for a run.
func (ss *SnapshotStoreImpl) RecordScore(runID int64, pkg schema.ScoredPackage) error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(snapshotScoresTable, ss.backend)
	recordedAt := formatTime(time.Now().UTC(), ss.backend)

	var query string
	switch ss.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, package_name, recorded_at, score, weekly_downloads,
			                bundle_size, last_commit_days, security_issues, deprecated)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, package_name, recorded_at, score, weekly_downloads,
			                bundle_size, last_commit_days, security_issues, deprecated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	args := []any{
		runID, pkg.Name, recordedAt, pkg.Score, pkg.Metrics.WeeklyDownloads,
		pkg.Metrics.BundleSize, pkg.Metrics.LastCommitDays, pkg.Metrics.SecurityIssues, pkg.Metrics.Deprecated,
	}

	if _, err := ss.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert package score: %w", err)
	}

	return nil
}

// GetRuns retrieves all scoring runs from the store.
func (ss *SnapshotStoreImpl) GetRuns() ([]schema.SnapshotRunRecord, error) {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(snapshotRunsTable, ss.backend)
	query := fmt.Sprintf("SELECT run_id, start_time, end_time, package_count, config_params FROM %s ORDER BY run_id DESC", quotedTableName)

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SnapshotRunRecord

	for rows.Next() {
		var record schema.SnapshotRunRecord
		var packageCount sql.NullInt32

		switch ss.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &packageCount, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &packageCount, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
			}
		}

		if packageCount.Valid {
			record.PackageCount = packageCount.Int32
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot runs: %w", err)
	}

	return results, nil
}

// GetScores retrieves all recorded package scores from the store.
func (ss *SnapshotStoreImpl) GetScores() ([]schema.SnapshotScoreRecord, error) {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(snapshotScoresTable, ss.backend)
	query := fmt.Sprintf(`SELECT run_id, package_name, recorded_at, score, weekly_downloads,
	    bundle_size, last_commit_days, security_issues, deprecated
	    FROM %s ORDER BY run_id DESC, package_name`, quotedTableName)

	rows, err := ss.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query package scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SnapshotScoreRecord

	for rows.Next() {
		var record schema.SnapshotScoreRecord

		switch ss.backend {
		case schema.SQLiteBackend:
			var recordedAtStr string
			if err := rows.Scan(&record.RunID, &record.PackageName, &recordedAtStr, &record.Score,
				&record.WeeklyDownloads, &record.BundleSize, &record.LastCommitDays,
				&record.SecurityIssues, &record.Deprecated); err != nil {
				return nil, fmt.Errorf("failed to scan package score: %w", err)
			}
			recordedAt, err := time.Parse(time.RFC3339Nano, recordedAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
			}
			record.RecordedAt = recordedAt
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.PackageName, &record.RecordedAt, &record.Score,
				&record.WeeklyDownloads, &record.BundleSize, &record.LastCommitDays,
				&record.SecurityIssues, &record.Deprecated); err != nil {
				return nil, fmt.Errorf("failed to scan package score: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating package scores: %w", err)
	}

	return results, nil
}

// Clear removes all recorded runs and scores.
func (ss *SnapshotStoreImpl) Clear() error {
	// Skip for NoneBackend
	if ss.backend == schema.NoneBackend || ss.db == nil {
		return nil
	}

	for _, table := range []string{snapshotScoresTable, snapshotRunsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, ss.backend))
		if _, err := ss.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (ss *SnapshotStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}

// GetStatus returns status information about the snapshot store.
func (ss *SnapshotStoreImpl) GetStatus() (schema.SnapshotStatus, error) {
	status := schema.SnapshotStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}

	if ss.backend == schema.NoneBackend || ss.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(snapshotRunsTable, ss.backend))
	row := ss.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(snapshotRunsTable, ss.backend))
		row = ss.db.QueryRow(lastRunQuery)

		switch ss.backend {
		case schema.SQLiteBackend:
			var lastRunTimeStr string
			if err := row.Scan(&status.LastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(snapshotRunsTable, ss.backend))
		row = ss.db.QueryRow(oldestRunQuery)

		switch ss.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}

		// Get total packages recorded
		packagesQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(snapshotScoresTable, ss.backend))
		row = ss.db.QueryRow(packagesQuery)
		if err := row.Scan(&status.TotalPackages); err != nil {
			return status, fmt.Errorf("failed to get total packages: %w", err)
		}
	}

	return status, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
