// Package postgres is the alternative store driver for deployments that
// outgrow the single-file default.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New opens the database, ensures the schema, and returns a store.
func New(dsn string) (store.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wires a store onto an existing connection.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Notes() store.Notes       { return &notes{db: s.db} }
func (s *pgStore) Moods() store.Moods       { return &moods{db: s.db} }
func (s *pgStore) Letters() store.Letters   { return &letters{db: s.db} }
func (s *pgStore) Memories() store.Memories { return &memories{db: s.db} }
func (s *pgStore) Todos() store.Todos       { return &todos{db: s.db} }
func (s *pgStore) Events() store.Events     { return &events{db: s.db} }
func (s *pgStore) Sections() store.Sections { return &sections{db: s.db} }
func (s *pgStore) Pdfs() store.Pdfs         { return &pdfs{db: s.db} }

func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL,
    color       TEXT NOT NULL DEFAULT 'rose',
    emoji       TEXT NOT NULL DEFAULT '💕',
    category    TEXT NOT NULL DEFAULT 'personal',
    images      JSONB NOT NULL DEFAULT '[]',
    is_loved    BOOLEAN NOT NULL DEFAULT FALSE,
    is_pinned   BOOLEAN NOT NULL DEFAULT FALSE,
    is_archived BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_pinned_created ON notes (is_pinned DESC, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_notes_category ON notes (category);
CREATE INDEX IF NOT EXISTS idx_notes_archived ON notes (is_archived);

CREATE TABLE IF NOT EXISTS moods (
    id         TEXT PRIMARY KEY,
    emoji      TEXT NOT NULL,
    name       TEXT NOT NULL,
    color      TEXT NOT NULL,
    message    TEXT NOT NULL DEFAULT '',
    note       TEXT NOT NULL DEFAULT '',
    date       TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moods_date ON moods (date DESC);
CREATE INDEX IF NOT EXISTS idx_moods_name ON moods (name);

CREATE TABLE IF NOT EXISTS letters (
    id         TEXT PRIMARY KEY,
    recipient  TEXT NOT NULL,
    subject    TEXT NOT NULL DEFAULT '',
    content    TEXT NOT NULL,
    is_read    BOOLEAN NOT NULL DEFAULT FALSE,
    hearts     INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_letters_created ON letters (created_at DESC);

CREATE TABLE IF NOT EXISTS memories (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    images      JSONB NOT NULL DEFAULT '[]',
    date        TIMESTAMPTZ,
    hearts      INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_memories_created ON memories (created_at DESC);

CREATE TABLE IF NOT EXISTS todos (
    id         TEXT PRIMARY KEY,
    text       TEXT NOT NULL,
    priority   TEXT NOT NULL DEFAULT 'normal',
    completed  BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_completed_created ON todos (completed, created_at DESC);

CREATE TABLE IF NOT EXISTS events (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    emoji      TEXT NOT NULL DEFAULT '💕',
    date       TEXT NOT NULL,
    time       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_date ON events (date);

CREATE TABLE IF NOT EXISTS study_sections (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    emoji      TEXT NOT NULL DEFAULT '📚',
    color      TEXT NOT NULL DEFAULT 'rose',
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS study_pdfs (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    section_id  TEXT NOT NULL,
    file_data   TEXT NOT NULL,
    size        TEXT NOT NULL DEFAULT '',
    last_page   INTEGER NOT NULL DEFAULT 1,
    total_pages INTEGER NOT NULL DEFAULT 1,
    is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pdfs_section_created ON study_pdfs (section_id, created_at DESC);
`

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

func now() time.Time { return time.Now().UTC() }

func encodeImages(imgs []model.Image) (string, error) {
	if imgs == nil {
		imgs = []model.Image{}
	}
	b, err := json.Marshal(imgs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeImages(raw string) ([]model.Image, error) {
	imgs := []model.Image{}
	if raw == "" {
		return imgs, nil
	}
	if err := json.Unmarshal([]byte(raw), &imgs); err != nil {
		return nil, err
	}
	return imgs, nil
}

func notFound(err error) error {
	if err == sql.ErrNoRows {
		return model.ErrNotFound
	}
	return err
}
