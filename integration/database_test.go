//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestMfscanWithMySQL tests the mfscan CLI with a MySQL backend.
func TestMfscanWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "mfscan",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
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

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/mfscan?parseTime=true&multiStatements=true", host, port.Port())
	runBackendLifecycle(t, "mysql", connStr)
}

// TestMfscanWithPostgres tests the mfscan CLI with a PostgreSQL backend.
func TestMfscanWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runBackendLifecycle(t, "postgresql", connStr)
}

// runBackendLifecycle clears, migrates, scans twice and checks status on one backend.
func runBackendLifecycle(t *testing.T, backend, connStr string) {
	t.Helper()
	root := writeSampleTree(t)
	env := []string{
		"HOME=" + t.TempDir(),
		"MFSCAN_CACHE_BACKEND=" + backend,
		"MFSCAN_CACHE_DB_CONNECT=" + connStr,
		"MFSCAN_ANALYSIS_BACKEND=" + backend,
		"MFSCAN_ANALYSIS_DB_CONNECT=" + connStr,
	}

	_, err := runCommand(t, env, "cache", "clear")
	require.NoError(t, err)
	_, err = runCommand(t, env, "analysis", "clear")
	require.NoError(t, err)
	_, err = runCommand(t, env, "analysis", "migrate")
	require.NoError(t, err)

	_, err = runCommand(t, env, "scan", root, "--output", "json")
	require.NoError(t, err)
	// Second run is served from the cache
	_, err = runCommand(t, env, "files", root, "--limit", "5", "--output", "csv")
	require.NoError(t, err)

	cacheStatus, err := runCommand(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, cacheStatus, "Connected: true")
	assert.Contains(t, cacheStatus, "Total Entries: 6")

	analysisStatus, err := runCommand(t, env, "analysis", "status")
	require.NoError(t, err)
	assert.Contains(t, analysisStatus, "Total Runs: 2")
	assert.Contains(t, analysisStatus, "Total Datasets: 6")
}
