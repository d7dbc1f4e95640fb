package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sradha-notes/backend/internal/store"
	"github.com/sradha-notes/backend/internal/store/sqlite"
	"github.com/sradha-notes/backend/internal/store/storetest"
)

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	return s
}

func TestSQLiteCompliance(t *testing.T) {
	storetest.Run(t, newStore)
}

func TestSQLiteHealthPing(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.HealthPing(context.Background()))
}

func TestSQLiteSchemaIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.db")

	s, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, s.HealthPing(context.Background()))

	// Reopening an existing database must not fail on CREATE statements.
	s2, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, s2.HealthPing(context.Background()))
}
