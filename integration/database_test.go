//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestPkgpulseWithMySQL tests the pkgpulse CLI with a MySQL backend.
func TestPkgpulseWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "pkgpulse",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/pkgpulse?parseTime=true", host, port.Port())

	runBackendSuite(t, "mysql", connStr)
}

// TestPkgpulseWithPostgres tests the pkgpulse CLI with a PostgreSQL backend.
func TestPkgpulseWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())

	runBackendSuite(t, "postgresql", connStr)
}

// runBackendSuite exercises the cache, snapshot and category stores of
// one database backend through the CLI.
func runBackendSuite(t *testing.T, backend, connStr string) {
	// Set environment variables
	_ = os.Setenv("PKGPULSE_CACHE_BACKEND", backend)
	_ = os.Setenv("PKGPULSE_CACHE_DB_CONNECT", connStr)
	_ = os.Setenv("PKGPULSE_SNAPSHOT_BACKEND", backend)
	_ = os.Setenv("PKGPULSE_SNAPSHOT_DB_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("PKGPULSE_CACHE_BACKEND") }()
	defer func() { _ = os.Unsetenv("PKGPULSE_CACHE_DB_CONNECT") }()
	defer func() { _ = os.Unsetenv("PKGPULSE_SNAPSHOT_BACKEND") }()
	defer func() { _ = os.Unsetenv("PKGPULSE_SNAPSHOT_DB_CONNECT") }()

	// Run pkgpulse cache clear
	err := runPkgpulseCommand(t, "cache", "clear")
	require.NoError(t, err)

	// Run pkgpulse snapshots clear
	err = runPkgpulseCommand(t, "snapshots", "clear")
	require.NoError(t, err)

	// Run pkgpulse categories (reads the category store without network)
	err = runPkgpulseCommand(t, "categories")
	require.NoError(t, err)

	// Run pkgpulse cache status
	err = runPkgpulseCommand(t, "cache", "status")
	require.NoError(t, err)

	// Run pkgpulse snapshots status
	err = runPkgpulseCommand(t, "snapshots", "status")
	require.NoError(t, err)
}
