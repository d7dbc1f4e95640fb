// Package sqlite is the default store driver: a single-file (or in-memory)
// database that matches the app's single-user deployment.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/store"
)

// New opens the database at path, ensures the schema, and returns a store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wires a store onto an existing connection (used by tests and the
// factory). The schema must already exist.
func NewWithDB(db *sql.DB) store.Store { return &liteStore{db: db} }

type liteStore struct{ db *sql.DB }

func (s *liteStore) Notes() store.Notes       { return &notes{db: s.db} }
func (s *liteStore) Moods() store.Moods       { return &moods{db: s.db} }
func (s *liteStore) Letters() store.Letters   { return &letters{db: s.db} }
func (s *liteStore) Memories() store.Memories { return &memories{db: s.db} }
func (s *liteStore) Todos() store.Todos       { return &todos{db: s.db} }
func (s *liteStore) Events() store.Events     { return &events{db: s.db} }
func (s *liteStore) Sections() store.Sections { return &sections{db: s.db} }
func (s *liteStore) Pdfs() store.Pdfs         { return &pdfs{db: s.db} }

func (s *liteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
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

// notFound maps sql.ErrNoRows onto the model sentinel.
func notFound(err error) error {
	if err == sql.ErrNoRows {
		return model.ErrNotFound
	}
	return err
}
