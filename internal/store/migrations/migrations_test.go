package migrations_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/starcluster/starcluster/internal/store/migrations"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLoad(t *testing.T) {
	all, err := migrations.Load()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(all), 2)

	for i := 1; i < len(all); i++ {
		require.Greater(t, all[i].Version, all[i-1].Version)
	}
	require.Equal(t, "clusters", all[0].Description)
}

func TestRunIdempotent(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, migrations.Run(ctx, db))
	v1, err := migrations.CurrentVersion(ctx, db)
	require.NoError(t, err)

	require.NoError(t, migrations.Run(ctx, db))
	v2, err := migrations.CurrentVersion(ctx, db)
	require.NoError(t, err)

	require.Equal(t, v1, v2)
}

func TestPending(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	all, err := migrations.Load()
	require.NoError(t, err)

	pending, err := migrations.Pending(ctx, db)
	require.NoError(t, err)
	require.Len(t, pending, len(all))

	require.NoError(t, migrations.Run(ctx, db))

	pending, err = migrations.Pending(ctx, db)
	require.NoError(t, err)
	require.Empty(t, pending)
}

func TestSchema_ActiveTagIsUnique(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	require.NoError(t, migrations.Run(ctx, db))

	insert := `INSERT INTO clusters (id, tag, size, created_at, removed_at) VALUES (?, ?, 1, '2010-01-01T00:00:00Z', ?)`

	_, err := db.ExecContext(ctx, insert, "a", "@sc-x", "2010-01-02T00:00:00Z")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, insert, "b", "@sc-x", nil)
	require.NoError(t, err, "a removed cluster must not block its tag")
	_, err = db.ExecContext(ctx, insert, "c", "@sc-x", nil)
	require.Error(t, err)
}
