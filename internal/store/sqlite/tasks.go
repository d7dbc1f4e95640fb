package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sradha-notes/backend/internal/model"
)

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
        INSERT INTO todos (`+todoColumns+`) VALUES (?,?,?,?,?,?)
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
		q += ` WHERE completed = ?`
		args = append(args, false)
	case "completed":
		q += ` WHERE completed = ?`
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
        UPDATE todos SET completed = NOT completed, updated_at = ?
        WHERE id = ? RETURNING `+todoColumns+`
    `, now(), id)
	return scanTodo(row)
}

func (r *todos) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *todos) ClearCompleted(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE completed = ?`, true)
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
        INSERT INTO events (`+eventColumns+`) VALUES (?,?,?,?,?,?,?)
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
		where = append(where, "date = ?")
		args = append(args, f.Date)
	}
	if f.Upcoming {
		// "YYYY-MM-DD" sorts lexically, so string comparison is date order.
		where = append(where, "date >= ?")
		args = append(args, time.Now().UTC().Format("2006-01-02"))
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
        SELECT `+eventColumns+` FROM events WHERE date = ? ORDER BY time ASC
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
	sets := []string{"updated_at = ?"}
	args := []any{now()}
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.Title != nil {
		set("title", *u.Title)
	}
	if u.Emoji != nil {
		set("emoji", *u.Emoji)
	}
	if u.Date != nil {
		set("date", *u.Date)
	}
	if u.Time != nil {
		set("time", *u.Time)
	}
	args = append(args, id)
	row := r.db.QueryRowContext(ctx, `
        UPDATE events SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING `+eventColumns,
		args...)
	return scanEvent(row)
}

func (r *events) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
