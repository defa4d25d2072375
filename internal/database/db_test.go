package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openMigrated(t *testing.T, dbPath string) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, RunMigrations(db))
	return db
}

func TestRunMigrationsCreatesKVStore(t *testing.T) {
	ctx := context.Background()
	db := openMigrated(t, filepath.Join(t.TempDir(), "test.db"))
	// second run is a no-op
	require.NoError(t, RunMigrations(db))

	_, err := db.ExecContext(ctx, `INSERT INTO kv_store(key, value) VALUES (?, ?)`, "k", "v")
	require.NoError(t, err)

	var value string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?`, "k").Scan(&value))
	require.Equal(t, "v", value)
}

func TestRunMigrationsPathWithSpaces(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "My Data")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	dbPath := filepath.Join(dir, "gm.db")

	db := openMigrated(t, dbPath)
	_, err := db.ExecContext(ctx, `INSERT INTO kv_store(key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// the rows landed in the file at dbPath, not somewhere the path got mangled to
	reopened := openMigrated(t, dbPath)
	var count int
	require.NoError(t, reopened.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_store`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestOpenMissingDirFails(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope", "x.db"))
	require.ErrorContains(t, err, "ping sqlite")
}

func TestNowTruncatesToSeconds(t *testing.T) {
	n := Now()
	require.Zero(t, n.Nanosecond())
	require.Equal(t, "UTC", n.Location().String())
}
