package store

import (
	"context"

	"github.com/sradha-notes/backend/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (sqlite, postgres).
type Store interface {
	Notes() Notes
	Moods() Moods
	Letters() Letters
	Memories() Memories
	Todos() Todos
	Events() Events
	Sections() Sections
	Pdfs() Pdfs

	// HealthPing reports whether the backing database is reachable.
	HealthPing(ctx context.Context) error
}

type Notes interface {
	Create(ctx context.Context, n *model.Note) (*model.Note, error)
	GetByID(ctx context.Context, id string) (*model.Note, error)
	List(ctx context.Context, f model.NoteFilter) ([]*model.Note, error)
	Update(ctx context.Context, id string, u model.NoteUpdate) (*model.Note, error)
	ToggleLove(ctx context.Context, id string) (*model.Note, error)
	TogglePin(ctx context.Context, id string) (*model.Note, error)
	// ToggleArchive flips IsArchived and clears IsPinned when the note
	// transitions to archived. Unarchiving never restores the pin.
	ToggleArchive(ctx context.Context, id string) (*model.Note, error)
	Delete(ctx context.Context, id string) error
}

type Moods interface {
	Create(ctx context.Context, m *model.Mood) (*model.Mood, error)
	List(ctx context.Context) ([]*model.Mood, error)
	// Stats groups entries by mood name, counting each group and carrying
	// the emoji and color of the earliest entry per name, count descending.
	Stats(ctx context.Context) ([]model.MoodStat, error)
	Delete(ctx context.Context, id string) error
}

type Letters interface {
	Create(ctx context.Context, l *model.Letter) (*model.Letter, error)
	GetByID(ctx context.Context, id string) (*model.Letter, error)
	List(ctx context.Context) ([]*model.Letter, error)
	MarkRead(ctx context.Context, id string) (*model.Letter, error)
	// AddHeart increments the hearts counter by exactly one as a single
	// atomic statement and returns the updated letter.
	AddHeart(ctx context.Context, id string) (*model.Letter, error)
	Delete(ctx context.Context, id string) error
}

type Memories interface {
	Create(ctx context.Context, m *model.Memory) (*model.Memory, error)
	GetByID(ctx context.Context, id string) (*model.Memory, error)
	List(ctx context.Context) ([]*model.Memory, error)
	AddHeart(ctx context.Context, id string) (*model.Memory, error)
	Delete(ctx context.Context, id string) error
}

type Todos interface {
	Create(ctx context.Context, t *model.Todo) (*model.Todo, error)
	// List returns all todos, or only active/completed ones when filter is
	// "active" or "completed".
	List(ctx context.Context, filter string) ([]*model.Todo, error)
	Toggle(ctx context.Context, id string) (*model.Todo, error)
	Delete(ctx context.Context, id string) error
	// ClearCompleted bulk-deletes completed todos and returns the count.
	ClearCompleted(ctx context.Context) (int64, error)
}

type Events interface {
	Create(ctx context.Context, e *model.Event) (*model.Event, error)
	List(ctx context.Context, f model.EventFilter) ([]*model.Event, error)
	// ListByDate returns the events of one day ordered by time of day.
	ListByDate(ctx context.Context, date string) ([]*model.Event, error)
	Update(ctx context.Context, id string, u model.EventUpdate) (*model.Event, error)
	Delete(ctx context.Context, id string) error
}

type Sections interface {
	Create(ctx context.Context, s *model.StudySection) (*model.StudySection, error)
	GetByID(ctx context.Context, id string) (*model.StudySection, error)
	List(ctx context.Context) ([]*model.StudySection, error)
	Update(ctx context.Context, id string, u model.SectionUpdate) (*model.StudySection, error)
	// DeleteCascade removes the section and every PDF referencing it in one
	// transaction, returning the number of PDFs deleted. A section without
	// PDFs deletes cleanly with a zero count.
	DeleteCascade(ctx context.Context, id string) (int64, error)
}

type Pdfs interface {
	Create(ctx context.Context, p *model.StudyPdf) (*model.StudyPdf, error)
	// GetByID includes the FileData payload.
	GetByID(ctx context.Context, id string) (*model.StudyPdf, error)
	// List never loads FileData; the column stays in the database.
	List(ctx context.Context, f model.PdfFilter) ([]*model.StudyPdf, error)
	Update(ctx context.Context, id string, u model.PdfUpdate) (*model.StudyPdf, error)
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
