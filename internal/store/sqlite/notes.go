package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/sradha-notes/backend/internal/model"
)

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
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
    `, out.ID, out.Title, out.Content, out.Color, out.Emoji, out.Category, images,
		out.IsLoved, out.IsPinned, out.IsArchived, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *notes) GetByID(ctx context.Context, id string) (*model.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	return scanNote(row)
}

func (r *notes) List(ctx context.Context, f model.NoteFilter) ([]*model.Note, error) {
	where := []string{"is_archived = ?"}
	args := []any{f.Archived}
	if f.Category != "" && f.Category != "all" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Search != "" {
		where = append(where, "(lower(title) LIKE '%'||lower(?)||'%' OR lower(content) LIKE '%'||lower(?)||'%')")
		args = append(args, f.Search, f.Search)
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
	sets := []string{"updated_at = ?"}
	args := []any{now()}
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if u.Title != nil {
		set("title", *u.Title)
	}
	if u.Content != nil {
		set("content", *u.Content)
	}
	if u.Color != nil {
		set("color", *u.Color)
	}
	if u.Emoji != nil {
		set("emoji", *u.Emoji)
	}
	if u.Category != nil {
		set("category", *u.Category)
	}
	if u.Images != nil {
		images, err := encodeImages(u.Images)
		if err != nil {
			return nil, err
		}
		set("images", images)
	}
	if u.IsLoved != nil {
		set("is_loved", *u.IsLoved)
	}
	if u.IsPinned != nil {
		set("is_pinned", *u.IsPinned)
	}
	if u.IsArchived != nil {
		set("is_archived", *u.IsArchived)
	}
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, `UPDATE notes SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, model.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *notes) ToggleLove(ctx context.Context, id string) (*model.Note, error) {
	row := r.db.QueryRowContext(ctx, `
        UPDATE notes SET is_loved = NOT is_loved, updated_at = ?
        WHERE id = ? RETURNING `+noteColumns+`
    `, now(), id)
	return scanNote(row)
}

func (r *notes) TogglePin(ctx context.Context, id string) (*model.Note, error) {
	row := r.db.QueryRowContext(ctx, `
        UPDATE notes SET is_pinned = NOT is_pinned, updated_at = ?
        WHERE id = ? RETURNING `+noteColumns+`
    `, now(), id)
	return scanNote(row)
}

func (r *notes) ToggleArchive(ctx context.Context, id string) (*model.Note, error) {
	// RHS references see the old row: pinning clears only on the
	// transition into archived, never on the way back out.
	row := r.db.QueryRowContext(ctx, `
        UPDATE notes SET
            is_pinned   = CASE WHEN is_archived = 0 THEN 0 ELSE is_pinned END,
            is_archived = NOT is_archived,
            updated_at  = ?
        WHERE id = ? RETURNING `+noteColumns+`
    `, now(), id)
	return scanNote(row)
}

func (r *notes) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
