package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sradha-notes/backend/internal/store"
	"github.com/sradha-notes/backend/internal/store/postgres"
	"github.com/sradha-notes/backend/internal/store/storetest"
)

// The compliance suite needs a live server. Point NOTES_TEST_POSTGRES_DSN at
// a scratch database to enable it; the suite truncates every table it owns.
const dsnEnv = "NOTES_TEST_POSTGRES_DSN"

func newStore(t *testing.T) store.Store {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s not set", dsnEnv)
	}

	db, err := postgres.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, postgres.EnsureSchema(ctx, db))
	_, err = db.ExecContext(ctx,
		"TRUNCATE notes, moods, letters, memories, todos, events, study_sections, study_pdfs")
	require.NoError(t, err)

	return postgres.NewWithDB(db)
}

func TestPostgresCompliance(t *testing.T) {
	storetest.Run(t, newStore)
}

func TestPostgresHealthPing(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.HealthPing(context.Background()))
}
