package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/sradha-notes/backend/internal/model"
)

// --- Moods ---

type moods struct{ db *sql.DB }

const moodColumns = `id, emoji, name, color, message, note, date, created_at, updated_at`

func scanMood(row interface{ Scan(...any) error }) (*model.Mood, error) {
	var m model.Mood
	if err := row.Scan(&m.ID, &m.Mood.Emoji, &m.Mood.Name, &m.Mood.Color, &m.Mood.Message,
		&m.Note, &m.Date, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *moods) Create(ctx context.Context, m *model.Mood) (*model.Mood, error) {
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	out := *m
	out.ID = uuid.New().String()
	out.CreatedAt = now()
	out.UpdatedAt = out.CreatedAt
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO moods (`+moodColumns+`) VALUES (?,?,?,?,?,?,?,?,?)
    `, out.ID, out.Mood.Emoji, out.Mood.Name, out.Mood.Color, out.Mood.Message,
		out.Note, out.Date, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *moods) List(ctx context.Context) ([]*model.Mood, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+moodColumns+` FROM moods ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Mood
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *moods) Stats(ctx context.Context) ([]model.MoodStat, error) {
	// "First seen" is pinned to the earliest created entry per name so the
	// aggregation stays deterministic across drivers.
	rows, err := r.db.QueryContext(ctx, `
        SELECT m.name, COUNT(*) AS cnt,
               (SELECT m2.emoji FROM moods m2 WHERE m2.name = m.name ORDER BY m2.created_at ASC, m2.id ASC LIMIT 1),
               (SELECT m2.color FROM moods m2 WHERE m2.name = m.name ORDER BY m2.created_at ASC, m2.id ASC LIMIT 1)
        FROM moods m
        GROUP BY m.name
        ORDER BY cnt DESC, m.name ASC
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []model.MoodStat{}
	for rows.Next() {
		var st model.MoodStat
		if err := rows.Scan(&st.Name, &st.Count, &st.Emoji, &st.Color); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *moods) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM moods WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Letters ---

type letters struct{ db *sql.DB }

const letterColumns = `id, recipient, subject, content, is_read, hearts, created_at, updated_at`

func scanLetter(row interface{ Scan(...any) error }) (*model.Letter, error) {
	var l model.Letter
	if err := row.Scan(&l.ID, &l.To, &l.Subject, &l.Content, &l.IsRead, &l.Hearts,
		&l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &l, nil
}

func (r *letters) Create(ctx context.Context, l *model.Letter) (*model.Letter, error) {
	l.Normalize()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	out := *l
	out.ID = uuid.New().String()
	out.CreatedAt = now()
	out.UpdatedAt = out.CreatedAt
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO letters (`+letterColumns+`) VALUES (?,?,?,?,?,?,?,?)
    `, out.ID, out.To, out.Subject, out.Content, out.IsRead, out.Hearts, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *letters) GetByID(ctx context.Context, id string) (*model.Letter, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+letterColumns+` FROM letters WHERE id = ?`, id)
	return scanLetter(row)
}

func (r *letters) List(ctx context.Context) ([]*model.Letter, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+letterColumns+` FROM letters ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Letter
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *letters) MarkRead(ctx context.Context, id string) (*model.Letter, error) {
	// Idempotent: re-reading an already-read letter is a no-op that still
	// returns the letter.
	row := r.db.QueryRowContext(ctx, `
        UPDATE letters SET is_read = 1, updated_at = ?
        WHERE id = ? RETURNING `+letterColumns+`
    `, now(), id)
	return scanLetter(row)
}

func (r *letters) AddHeart(ctx context.Context, id string) (*model.Letter, error) {
	row := r.db.QueryRowContext(ctx, `
        UPDATE letters SET hearts = hearts + 1, updated_at = ?
        WHERE id = ? RETURNING `+letterColumns+`
    `, now(), id)
	return scanLetter(row)
}

func (r *letters) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM letters WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Memories ---

type memories struct{ db *sql.DB }

const memoryColumns = `id, title, description, images, date, hearts, created_at, updated_at`

func scanMemory(row interface{ Scan(...any) error }) (*model.Memory, error) {
	var m model.Memory
	var images string
	var date sql.NullTime
	if err := row.Scan(&m.ID, &m.Title, &m.Description, &images, &date, &m.Hearts,
		&m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	if date.Valid {
		d := date.Time
		m.Date = &d
	}
	imgs, err := decodeImages(images)
	if err != nil {
		return nil, err
	}
	m.Images = imgs
	return &m, nil
}

func (r *memories) Create(ctx context.Context, m *model.Memory) (*model.Memory, error) {
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	images, err := encodeImages(m.Images)
	if err != nil {
		return nil, err
	}
	out := *m
	out.ID = uuid.New().String()
	out.CreatedAt = now()
	out.UpdatedAt = out.CreatedAt
	var date any
	if out.Date != nil {
		date = *out.Date
	}
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO memories (`+memoryColumns+`) VALUES (?,?,?,?,?,?,?,?)
    `, out.ID, out.Title, out.Description, images, date, out.Hearts, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memories) GetByID(ctx context.Context, id string) (*model.Memory, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memoryColumns+` FROM memories WHERE id = ?`, id)
	return scanMemory(row)
}

func (r *memories) List(ctx context.Context) ([]*model.Memory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+memoryColumns+` FROM memories ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *memories) AddHeart(ctx context.Context, id string) (*model.Memory, error) {
	row := r.db.QueryRowContext(ctx, `
        UPDATE memories SET hearts = hearts + 1, updated_at = ?
        WHERE id = ? RETURNING `+memoryColumns+`
    `, now(), id)
	return scanMemory(row)
}

func (r *memories) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
