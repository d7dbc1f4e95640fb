package sqlite

import (
	"context"
	"database/sql"
)

// Schema mirrors the original document collections one table per entity.
// Image arrays are stored as JSON text; the store encodes and decodes them.
const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL,
    color       TEXT NOT NULL DEFAULT 'rose',
    emoji       TEXT NOT NULL DEFAULT '💕',
    category    TEXT NOT NULL DEFAULT 'personal',
    images      TEXT NOT NULL DEFAULT '[]',
    is_loved    BOOLEAN NOT NULL DEFAULT 0,
    is_pinned   BOOLEAN NOT NULL DEFAULT 0,
    is_archived BOOLEAN NOT NULL DEFAULT 0,
    created_at  TIMESTAMP NOT NULL,
    updated_at  TIMESTAMP NOT NULL
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
    date       TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_moods_date ON moods (date DESC);
CREATE INDEX IF NOT EXISTS idx_moods_name ON moods (name);

CREATE TABLE IF NOT EXISTS letters (
    id         TEXT PRIMARY KEY,
    recipient  TEXT NOT NULL,
    subject    TEXT NOT NULL DEFAULT '',
    content    TEXT NOT NULL,
    is_read    BOOLEAN NOT NULL DEFAULT 0,
    hearts     INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_letters_created ON letters (created_at DESC);

CREATE TABLE IF NOT EXISTS memories (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    images      TEXT NOT NULL DEFAULT '[]',
    date        TIMESTAMP,
    hearts      INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMP NOT NULL,
    updated_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_memories_created ON memories (created_at DESC);

CREATE TABLE IF NOT EXISTS todos (
    id         TEXT PRIMARY KEY,
    text       TEXT NOT NULL,
    priority   TEXT NOT NULL DEFAULT 'normal',
    completed  BOOLEAN NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_completed_created ON todos (completed, created_at DESC);

CREATE TABLE IF NOT EXISTS events (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    emoji      TEXT NOT NULL DEFAULT '💕',
    date       TEXT NOT NULL,
    time       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_date ON events (date);

CREATE TABLE IF NOT EXISTS study_sections (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    emoji      TEXT NOT NULL DEFAULT '📚',
    color      TEXT NOT NULL DEFAULT 'rose',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS study_pdfs (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    section_id  TEXT NOT NULL,
    file_data   TEXT NOT NULL,
    size        TEXT NOT NULL DEFAULT '',
    last_page   INTEGER NOT NULL DEFAULT 1,
    total_pages INTEGER NOT NULL DEFAULT 1,
    is_favorite BOOLEAN NOT NULL DEFAULT 0,
    created_at  TIMESTAMP NOT NULL,
    updated_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pdfs_section_created ON study_pdfs (section_id, created_at DESC);
`

// EnsureSchema creates the tables and indexes if they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
