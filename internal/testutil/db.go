// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/starcluster/starcluster/internal/domain"
	"github.com/starcluster/starcluster/internal/store"
	"github.com/starcluster/starcluster/internal/store/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")

	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	err = migrations.Run(context.Background(), db)
	require.NoError(t, err, "failed to run migrations")

	return db
}

// NewTestStore returns a Store over a fresh in-memory database.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.NewWithDB(NewTestDB(t))
}

// SeedClusters records the given clusters.
func SeedClusters(t *testing.T, s *store.Store, clusters ...domain.Cluster) []domain.Cluster {
	t.Helper()

	out := make([]domain.Cluster, 0, len(clusters))
	for _, c := range clusters {
		recorded, err := s.Record(context.Background(), c)
		require.NoError(t, err, "failed to seed cluster: %+v", c)
		out = append(out, recorded)
	}
	return out
}
