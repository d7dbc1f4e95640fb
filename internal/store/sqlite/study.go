package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/sradha-notes/backend/internal/model"
)

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
        INSERT INTO study_sections (`+sectionColumns+`) VALUES (?,?,?,?,?,?)
    `, out.ID, out.Name, out.Emoji, out.Color, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sections) GetByID(ctx context.Context, id string) (*model.StudySection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sectionColumns+` FROM study_sections WHERE id = ?`, id)
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
	sets := []string{"updated_at = ?"}
	args := []any{now()}
	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.Emoji != nil {
		sets = append(sets, "emoji = ?")
		args = append(args, *u.Emoji)
	}
	if u.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *u.Color)
	}
	args = append(args, id)
	row := r.db.QueryRowContext(ctx, `
        UPDATE study_sections SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING `+sectionColumns,
		args...)
	return scanSection(row)
}

func (r *sections) DeleteCascade(ctx context.Context, id string) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_sections WHERE id = ?`, id).Scan(&exists); err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, model.ErrNotFound
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM study_pdfs WHERE section_id = ?`, id)
	if err != nil {
		return 0, err
	}
	deleted, _ := res.RowsAffected()
	if _, err := tx.ExecContext(ctx, `DELETE FROM study_sections WHERE id = ?`, id); err != nil {
		return 0, err
	}
	return deleted, tx.Commit()
}

// --- PDFs ---

type pdfs struct{ db *sql.DB }

const pdfColumns = `id, name, section_id, file_data, size, last_page, total_pages, is_favorite, created_at, updated_at`

// pdfMetaColumns leaves file_data in the database; list responses must never
// carry the payload.
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
        INSERT INTO study_pdfs (`+pdfColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?)
    `, out.ID, out.Name, out.SectionID, out.FileData, out.Size, out.LastPage,
		out.TotalPages, out.IsFavorite, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *pdfs) GetByID(ctx context.Context, id string) (*model.StudyPdf, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+pdfColumns+` FROM study_pdfs WHERE id = ?`, id)
	return scanPdf(row)
}

func (r *pdfs) List(ctx context.Context, f model.PdfFilter) ([]*model.StudyPdf, error) {
	var where []string
	var args []any
	if f.SectionID != "" {
		where = append(where, "section_id = ?")
		args = append(args, f.SectionID)
	}
	if f.Favorite {
		where = append(where, "is_favorite = ?")
		args = append(args, true)
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
	sets := []string{"updated_at = ?"}
	args := []any{now()}
	if u.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *u.Name)
	}
	if u.LastPage != nil {
		sets = append(sets, "last_page = ?")
		args = append(args, *u.LastPage)
	}
	if u.TotalPages != nil {
		sets = append(sets, "total_pages = ?")
		args = append(args, *u.TotalPages)
	}
	if u.IsFavorite != nil {
		sets = append(sets, "is_favorite = ?")
		args = append(args, *u.IsFavorite)
	}
	args = append(args, id)
	row := r.db.QueryRowContext(ctx, `
        UPDATE study_pdfs SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING `+pdfMetaColumns,
		args...)
	return scanPdfMeta(row)
}

func (r *pdfs) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	var fav bool
	err := r.db.QueryRowContext(ctx, `
        UPDATE study_pdfs SET is_favorite = NOT is_favorite, updated_at = ?
        WHERE id = ? RETURNING is_favorite
    `, now(), id).Scan(&fav)
	if err != nil {
		return false, notFound(err)
	}
	return fav, nil
}

func (r *pdfs) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_pdfs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound
	}
	return nil
}
