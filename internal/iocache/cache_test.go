package iocache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pkgpulse/pkgpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		// Clean up any existing test databases
		testDBPath := GetCacheDBFilePath()
		defer func() { _ = os.Remove(testDBPath) }()
		defer func() { _ = os.Remove(GetCategoryDBFilePath()) }()
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Test initialization with SQLite backend
		err := InitStores(schema.SQLiteBackend, "", "", "")
		assert.NoError(t, err, "Failed to initialize persistence")

		// Test that Manager is accessible
		assert.NotNil(t, Manager, "Manager should not be nil")

		// Test that stores are accessible
		assert.NotNil(t, Manager.GetMetricsStore(), "Metrics store should not be nil")
		assert.NotNil(t, Manager.GetCategoryStore(), "Category store should not be nil")
		assert.Nil(t, Manager.GetSnapshotStore(), "Snapshot store stays nil when unconfigured")

		// Test cleanup
		CloseStores()

		// Verify database file was created
		_, err = os.Stat(testDBPath)
		assert.False(t, os.IsNotExist(err), "Database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		testDBPath := GetCacheDBFilePath()
		defer func() { _ = os.Remove(testDBPath) }()
		defer func() { _ = os.Remove(GetCategoryDBFilePath()) }()
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Multiple initializations should be safe (sync.Once)
		err1 := InitStores(schema.SQLiteBackend, "", "", "")
		err2 := InitStores(schema.SQLiteBackend, "", "", "")
		err3 := InitStores(schema.SQLiteBackend, "", "", "")

		assert.NoError(t, err1, "First init should not fail")
		assert.NoError(t, err2, "Second init should not fail")
		assert.NoError(t, err3, "Third init should not fail")

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
		CloseStores()
	})

	t.Run("none backend operations", func(t *testing.T) {
		// Create a none backend store directly
		store, err := NewCacheStore("test_table", schema.NoneBackend, "")
		assert.NoError(t, err, "Failed to create none backend store")

		// Test Get returns error (no data)
		_, _, _, err = store.Get("test_key")
		assert.Error(t, err, "Expected error from Get on none backend")

		// Test Set is no-op (no error)
		err = store.Set("test_key", []byte("test_value"), 1, 123456789)
		assert.NoError(t, err, "Set should not error on none backend")

		// Verify Get still returns error after Set (no-op)
		_, _, _, err = store.Get("test_key")
		assert.Error(t, err, "Expected error from Get after Set on none backend")

		// Status reports disconnected
		status, err := store.GetStatus()
		assert.NoError(t, err)
		assert.False(t, status.Connected)

		// Close is safe
		err = store.Close()
		assert.NoError(t, err, "Close should not error on none backend")
	})
}

func TestCacheStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache_test.db")
	store, err := NewCacheStore("metrics_cache", schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	t.Run("get missing key", func(t *testing.T) {
		_, _, _, err := store.Get("npm:missing")
		assert.Error(t, err)
	})

	t.Run("set and get", func(t *testing.T) {
		now := time.Now().Unix()
		err := store.Set("npm:axios", []byte(`{"name":"axios"}`), 1, now)
		require.NoError(t, err)

		value, version, ts, err := store.Get("npm:axios")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"name":"axios"}`), value)
		assert.Equal(t, 1, version)
		assert.Equal(t, now, ts)
	})

	t.Run("overwrite existing key", func(t *testing.T) {
		err := store.Set("npm:axios", []byte(`{"name":"axios","score":74}`), 2, time.Now().Unix())
		require.NoError(t, err)

		value, version, _, err := store.Get("npm:axios")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"name":"axios","score":74}`), value)
		assert.Equal(t, 2, version)
	})

	t.Run("status reflects entries", func(t *testing.T) {
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 1, status.TotalEntries)
		assert.False(t, status.LastEntryTime.IsZero())
	})
}

// TestValidateTableName tests the validateTableName function with various inputs.
func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple name", "test_table", false},
		{"valid name with numbers", "test_table_123", false},
		{"valid name starting with underscore", "_private_table", false},
		{"empty name", "", true},
		{"name with spaces", "test table", true},
		{"name with dash", "test-table", true},
		{"name with semicolon", "test;drop", true},
		{"name starting with number", "1table", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateTableName(tc.tableName)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"scores"`, quoteTableName("scores", schema.SQLiteBackend))
	assert.Equal(t, "`scores`", quoteTableName("scores", schema.MySQLBackend))
	assert.Equal(t, `"scores"`, quoteTableName("scores", schema.PostgreSQLBackend))
}
