package iocache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pkgpulse/pkgpulse/internal/contract"
	"github.com/pkgpulse/pkgpulse/schema"
)

// CategoryStoreImpl is a SQL-backed hash store for discovered categories.
// It exposes the hash read operations the category catalog consumes;
// the discovery job writes through HSet.
type CategoryStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
}

var _ contract.KVStore = &CategoryStoreImpl{} // Compile-time check

// NewCategoryStore initializes and returns a new hash store based on the backend type.
func NewCategoryStore(tableName string, backend schema.DatabaseBackend, connStr string) (*CategoryStoreImpl, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	if backend == schema.NoneBackend {
		// Return a no-op store for disabled category persistence
		return &CategoryStoreImpl{
			db:        nil,
			tableName: tableName,
			backend:   backend,
		}, nil
	}

	db, _, err := openBackendDB(backend, connStr, GetCategoryDBFilePath())
	if err != nil {
		return nil, err
	}

	query := getCreateHashTableQuery(tableName, backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &CategoryStoreImpl{
		db:        db,
		tableName: tableName,
		backend:   backend,
	}, nil
}

// getCreateHashTableQuery returns the CREATE TABLE query for the given backend.
func getCreateHashTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				hash_key VARCHAR(255) NOT NULL,
				hash_field VARCHAR(255) NOT NULL,
				hash_value TEXT NOT NULL,
				PRIMARY KEY (hash_key, hash_field)
			);
		`, quotedTableName)

	default: // SQLite and PostgreSQL
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				hash_key TEXT NOT NULL,
				hash_field TEXT NOT NULL,
				hash_value TEXT NOT NULL,
				PRIMARY KEY (hash_key, hash_field)
			);
		`, quotedTableName)
	}
}

// HGetAll returns every field/value pair stored under key.
func (cs *CategoryStoreImpl) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if cs.backend == schema.NoneBackend || cs.db == nil {
		return map[string]string{}, nil
	}

	quotedTableName := quoteTableName(cs.tableName, cs.backend)
	placeholder := placeholderFor(cs.backend, 1)
	query := fmt.Sprintf(`SELECT hash_field, hash_value FROM %s WHERE hash_key = %s`, quotedTableName, placeholder)

	rows, err := cs.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query hash %s: %w", key, err)
	}
	defer func() { _ = rows.Close() }()

	fields := make(map[string]string)
	for rows.Next() {
		var field, value string
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("failed to scan hash field: %w", err)
		}
		fields[field] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hash fields: %w", err)
	}
	return fields, nil
}

// HGet returns the value of one field under key, or "" when absent.
func (cs *CategoryStoreImpl) HGet(ctx context.Context, key, field string) (string, error) {
	if cs.backend == schema.NoneBackend || cs.db == nil {
		return "", nil
	}

	quotedTableName := quoteTableName(cs.tableName, cs.backend)
	query := fmt.Sprintf(`SELECT hash_value FROM %s WHERE hash_key = %s AND hash_field = %s`,
		quotedTableName, placeholderFor(cs.backend, 1), placeholderFor(cs.backend, 2))

	var value string
	err := cs.db.QueryRowContext(ctx, query, key, field).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read hash field %s/%s: %w", key, field, err)
	}
	return value, nil
}

// HSet inserts or replaces one field under key.
func (cs *CategoryStoreImpl) HSet(ctx context.Context, key, field, value string) error {
	if cs.backend == schema.NoneBackend || cs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(cs.tableName, cs.backend)
	var query string
	switch cs.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (hash_key, hash_field, hash_value) VALUES (?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE hash_value = new.hash_value`, quotedTableName)

	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (hash_key, hash_field, hash_value) VALUES ($1, $2, $3)
			ON CONFLICT (hash_key, hash_field) DO UPDATE SET hash_value = EXCLUDED.hash_value`, quotedTableName)

	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (hash_key, hash_field, hash_value) VALUES (?, ?, ?)`, quotedTableName)
	}

	if _, err := cs.db.ExecContext(ctx, query, key, field, value); err != nil {
		return fmt.Errorf("failed to write hash field %s/%s: %w", key, field, err)
	}
	return nil
}

// Close closes the underlying DB connection.
func (cs *CategoryStoreImpl) Close() error {
	if cs.db != nil {
		return cs.db.Close()
	}
	return nil
}
