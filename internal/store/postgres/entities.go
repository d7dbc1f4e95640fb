package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sradha-notes/backend/internal/model"
)

// setBuilder accumulates SET clauses with numbered placeholders.
type setBuilder struct {
	sets []string
	args []any
}

func (b *setBuilder) add(col string, v any) {
	b.args = append(b.args, v)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

func (b *setBuilder) clause() string { return strings.Join(b.sets, ", ") }

func (b *setBuilder) next() int { return len(b.args) + 1 }

// --- Notes ---

type notes struct{ db *sql.DB }

const noteColumns = `id, title, content, color, emoji, category, images, is_loved, is_pinned, is_archived, created_at, updated_at`

func scanNote(row interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	var images string
	if err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Color, &n.Emoji, &n.Category, &images,
		&n.IsLoved, &n.IsPinned, &n.IsArchived, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	imgs, err := decodeImages(images)
	if err != nil {
		return nil, err
	}
	n.Images = imgs
	return &n, nil
}

func (r *notes) Create(ctx context.Context, n *model.Note) (*model.Note, error) {
	n.Normalize()
	if err := n.Validate(); err != nil {
		return nil, err
	}
	images, err := encodeImages(n.Images)
	if err != nil {
		return nil, err
	}
	out := *n
	out.ID = uuid.New().String()
	out.CreatedAt = now()
	out.UpdatedAt = out.CreatedAt
	_, err = r.db.ExecContext(ctx, `
        INSERT INTO notes (`+noteColumns+`)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    `, out.ID, out.Title, out.Content, out.Color, out.Emoji, out.Category, images,
		out.IsLoved, out.IsPinned, out.IsArchived, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *notes) GetByID(ctx context.Context, id string) (*model.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = $1`, id)
	return scanNote(row)
}

func (r *notes) List(ctx context.Context, f model.NoteFilter) ([]*model.Note, error) {
	where := []string{"is_archived = $1"}
	args := []any{f.Archived}
	if f.Category != "" && f.Category != "all" {
		args = append(args, f.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+noteColumns+` FROM notes
        WHERE `+strings.Join(where, " AND ")+`
        ORDER BY is_pinned DESC, created_at DESC
    `, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notes) Update(ctx context.Context, id string, u model.NoteUpdate) (*model.Note, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	var b setBuilder
	b.add("updated_at", now())
	if u.Title != nil {
		b.add("title", *u.Title)
	}
	if u.Content != nil {
		b.add("content", *u.Content)
	}
	if u.Color != nil {
		b.add("color", *u.Color)
	}
	if u.Emoji != nil {
		b.add("emoji", *u.Emoji)
	}
	if u.Category != nil {
		b.add("category", *u.Category)
	}
	if u.Images != nil {
		images, err := encodeImages(u.Images)
		if err != nil {
			return nil, err
		}
		b.add("images", images)
	}
	if u.IsLoved != nil {
		b.add("is_loved", *u.IsLoved)
	}
	if u.IsPinned != nil {
		b.add("is_pinned", *u.IsPinned)
	}
	if u.IsArchived != nil {
		b.add("is_archived", *u.IsArchived)
	}
	q := fmt.Sprintf(`UPDATE notes SET %s WHERE id = $%d RETURNING %s`, b.clause(), b.next(), noteColumns)
	row := r.db.QueryRowContext(ctx, q, append(b.args, id)...)
	return scanNote(row)
}

func (r *notes) ToggleLove(ctx context.Context, id string) (*model.Note, error) {
	row := r.db.QueryRowContext(ctx, `
        UPDATE notes SET is_loved = NOT is_loved, updated_at = $1
        WHERE id = $2 RETURNING `+noteColumns,
		now(), id)
	return scanNote(row)
}

func (r *notes) TogglePin(ctx context.Context, id string) (*model.Note, error) {
	row := r.db.QueryRowContext(ctx, `
        UPDATE notes SET is_pinned = NOT is_pinned, updated_at = $1
        WHERE id = $2 RETURNING `+noteColumns,
		now(), id)
	return scanNote(row)
}

func (r *notes) ToggleArchive(ctx context.Context, id string) (*model.Note, error) {
	row := r.db.QueryRowContext(ctx, `
        UPDATE notes SET
            is_pinned   = CASE WHEN NOT is_archived THEN FALSE ELSE is_pinned END,
            is_archived = NOT is_archived,
            updated_at  = $1
        WHERE id = $2 RETURNING `+noteColumns,
		now(), id)
	return scanNote(row)
}

func (r *notes) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

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
        INSERT INTO moods (`+moodColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM moods WHERE id = $1`, id)
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
        INSERT INTO letters (`+letterColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, out.ID, out.To, out.Subject, out.Content, out.IsRead, out.Hearts, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *letters) GetByID(ctx context.Context, id string) (*model.Letter, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+letterColumns+` FROM letters WHERE id = $1`, id)
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
	row := r.db.QueryRowContext(ctx, `
        UPDATE letters SET is_read = TRUE, updated_at = $1
        WHERE id = $2 RETURNING `+letterColumns,
		now(), id)
	return scanLetter(row)
}

func (r *letters) AddHeart(ctx context.Context, id string) (*model.Letter, error) {
	row := r.db.QueryRowContext(ctx, `
        UPDATE letters SET hearts = hearts + 1, updated_at = $1
        WHERE id = $2 RETURNING `+letterColumns,
		now(), id)
	return scanLetter(row)
}

func (r *letters) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM letters WHERE id = $1`, id)
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
        INSERT INTO memories (`+memoryColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, out.ID, out.Title, out.Description, images, date, out.Hearts, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *memories) GetByID(ctx context.Context, id string) (*model.Memory, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+memoryColumns+` FROM memories WHERE id = $1`, id)
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
        UPDATE memories SET hearts = hearts + 1, updated_at = $1
        WHERE id = $2 RETURNING `+memoryColumns,
		now(), id)
	return scanMemory(row)
}

func (r *memories) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Todos ---

type todos struct{ db *sql.DB }

const todoColumns = `id, text, priority, completed, created_at, updated_at`

func scanTodo(row interface{ Scan(...any) error }) (*model.Todo, error) {
	var t model.Todo
	if err := row.Scan(&t.ID, &t.Text, &t.Priority, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *todos) Create(ctx context.Context, t *model.Todo) (*model.Todo, error) {
	t.Normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out := *t
	out.ID = uuid.New().String()
	out.CreatedAt = now()
	out.UpdatedAt = out.CreatedAt
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO todos (`+todoColumns+`) VALUES ($1,$2,$3,$4,$5,$6)
    `, out.ID, out.Text, out.Priority, out.Completed, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *todos) List(ctx context.Context, filter string) ([]*model.Todo, error) {
	q := `SELECT ` + todoColumns + ` FROM todos`
	var args []any
	switch filter {
	case "active":
		q += ` WHERE completed = $1`
		args = append(args, false)
	case "completed":
		q += ` WHERE completed = $1`
		args = append(args, true)
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *todos) Toggle(ctx context.Context, id string) (*model.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
        UPDATE todos SET completed = NOT completed, updated_at = $1
        WHERE id = $2 RETURNING `+todoColumns,
		now(), id)
	return scanTodo(row)
}

func (r *todos) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *todos) ClearCompleted(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE completed = TRUE`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// --- Events ---

type events struct{ db *sql.DB }

const eventColumns = `id, title, emoji, date, time, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	if err := row.Scan(&e.ID, &e.Title, &e.Emoji, &e.Date, &e.Time, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (r *events) Create(ctx context.Context, e *model.Event) (*model.Event, error) {
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	out := *e
	out.ID = uuid.New().String()
	out.CreatedAt = now()
	out.UpdatedAt = out.CreatedAt
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO events (`+eventColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, out.ID, out.Title, out.Emoji, out.Date, out.Time, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *events) List(ctx context.Context, f model.EventFilter) ([]*model.Event, error) {
	var where []string
	var args []any
	if f.Date != "" {
		args = append(args, f.Date)
		where = append(where, fmt.Sprintf("date = $%d", len(args)))
	}
	if f.Upcoming {
		args = append(args, time.Now().UTC().Format("2006-01-02"))
		where = append(where, fmt.Sprintf("date >= $%d", len(args)))
	}
	q := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY date ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *events) ListByDate(ctx context.Context, date string) ([]*model.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT `+eventColumns+` FROM events WHERE date = $1 ORDER BY time ASC
    `, date)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *events) Update(ctx context.Context, id string, u model.EventUpdate) (*model.Event, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	var b setBuilder
	b.add("updated_at", now())
	if u.Title != nil {
		b.add("title", *u.Title)
	}
	if u.Emoji != nil {
		b.add("emoji", *u.Emoji)
	}
	if u.Date != nil {
		b.add("date", *u.Date)
	}
	if u.Time != nil {
		b.add("time", *u.Time)
	}
	q := fmt.Sprintf(`UPDATE events SET %s WHERE id = $%d RETURNING %s`, b.clause(), b.next(), eventColumns)
	row := r.db.QueryRowContext(ctx, q, append(b.args, id)...)
	return scanEvent(row)
}

func (r *events) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

// --- Sections ---

type sections struct{ db *sql.DB }

const sectionColumns = `id, name, emoji, color, created_at, updated_at`

func scanSection(row interface{ Scan(...any) error }) (*model.StudySection, error) {
	var s model.StudySection
	if err := row.Scan(&s.ID, &s.Name, &s.Emoji, &s.Color, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *sections) Create(ctx context.Context, s *model.StudySection) (*model.StudySection, error) {
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := *s
	out.ID = uuid.New().String()
	out.CreatedAt = now()
	out.UpdatedAt = out.CreatedAt
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO study_sections (`+sectionColumns+`) VALUES ($1,$2,$3,$4,$5,$6)
    `, out.ID, out.Name, out.Emoji, out.Color, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sections) GetByID(ctx context.Context, id string) (*model.StudySection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sectionColumns+` FROM study_sections WHERE id = $1`, id)
	return scanSection(row)
}

func (r *sections) List(ctx context.Context) ([]*model.StudySection, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sectionColumns+` FROM study_sections ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.StudySection
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *sections) Update(ctx context.Context, id string, u model.SectionUpdate) (*model.StudySection, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	var b setBuilder
	b.add("updated_at", now())
	if u.Name != nil {
		b.add("name", *u.Name)
	}
	if u.Emoji != nil {
		b.add("emoji", *u.Emoji)
	}
	if u.Color != nil {
		b.add("color", *u.Color)
	}
	q := fmt.Sprintf(`UPDATE study_sections SET %s WHERE id = $%d RETURNING %s`, b.clause(), b.next(), sectionColumns)
	row := r.db.QueryRowContext(ctx, q, append(b.args, id)...)
	return scanSection(row)
}

func (r *sections) DeleteCascade(ctx context.Context, id string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_sections WHERE id = $1`, id).Scan(&exists); err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, model.ErrNotFound
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM study_pdfs WHERE section_id = $1`, id)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	if _, err := tx.ExecContext(ctx, `DELETE FROM study_sections WHERE id = $1`, id); err != nil {
		return 0, err
	}
	return deleted, tx.Commit()
}

// --- PDFs ---

type pdfs struct{ db *sql.DB }

const pdfColumns = `id, name, section_id, file_data, size, last_page, total_pages, is_favorite, created_at, updated_at`

const pdfMetaColumns = `id, name, section_id, size, last_page, total_pages, is_favorite, created_at, updated_at`

func scanPdf(row interface{ Scan(...any) error }) (*model.StudyPdf, error) {
	var p model.StudyPdf
	if err := row.Scan(&p.ID, &p.Name, &p.SectionID, &p.FileData, &p.Size, &p.LastPage,
		&p.TotalPages, &p.IsFavorite, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func scanPdfMeta(row interface{ Scan(...any) error }) (*model.StudyPdf, error) {
	var p model.StudyPdf
	if err := row.Scan(&p.ID, &p.Name, &p.SectionID, &p.Size, &p.LastPage,
		&p.TotalPages, &p.IsFavorite, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *pdfs) Create(ctx context.Context, p *model.StudyPdf) (*model.StudyPdf, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := *p
	out.ID = uuid.New().String()
	out.CreatedAt = now()
	out.UpdatedAt = out.CreatedAt
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO study_pdfs (`+pdfColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    `, out.ID, out.Name, out.SectionID, out.FileData, out.Size, out.LastPage,
		out.TotalPages, out.IsFavorite, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *pdfs) GetByID(ctx context.Context, id string) (*model.StudyPdf, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+pdfColumns+` FROM study_pdfs WHERE id = $1`, id)
	return scanPdf(row)
}

func (r *pdfs) List(ctx context.Context, f model.PdfFilter) ([]*model.StudyPdf, error) {
	var where []string
	var args []any
	if f.SectionID != "" {
		args = append(args, f.SectionID)
		where = append(where, fmt.Sprintf("section_id = $%d", len(args)))
	}
	if f.Favorite {
		where = append(where, "is_favorite = TRUE")
	}
	q := `SELECT ` + pdfMetaColumns + ` FROM study_pdfs`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []*model.StudyPdf{}
	for rows.Next() {
		p, err := scanPdfMeta(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *pdfs) Update(ctx context.Context, id string, u model.PdfUpdate) (*model.StudyPdf, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	var b setBuilder
	b.add("updated_at", now())
	if u.Name != nil {
		b.add("name", *u.Name)
	}
	if u.LastPage != nil {
		b.add("last_page", *u.LastPage)
	}
	if u.TotalPages != nil {
		b.add("total_pages", *u.TotalPages)
	}
	if u.IsFavorite != nil {
		b.add("is_favorite", *u.IsFavorite)
	}
	q := fmt.Sprintf(`UPDATE study_pdfs SET %s WHERE id = $%d RETURNING %s`, b.clause(), b.next(), pdfMetaColumns)
	row := r.db.QueryRowContext(ctx, q, append(b.args, id)...)
	return scanPdfMeta(row)
}

func (r *pdfs) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	var fav bool
	err := r.db.QueryRowContext(ctx, `
        UPDATE study_pdfs SET is_favorite = NOT is_favorite, updated_at = $1
        WHERE id = $2 RETURNING is_favorite
    `, now(), id).Scan(&fav)
	if err != nil {
		return false, notFound(err)
	}
	return fav, nil
}

func (r *pdfs) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_pdfs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
