// Package storetest holds the driver compliance suite. Every store driver
// must pass Run against a fresh, empty database.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/store"
)

// Factory returns a fresh store backed by an empty database. It is called
// once per subtest so state never leaks between cases.
type Factory func(t *testing.T) store.Store

// Run executes the compliance suite against the driver under test.
func Run(t *testing.T, newStore Factory) {
	t.Run("NotesCRUD", func(t *testing.T) { testNotesCRUD(t, newStore(t)) })
	t.Run("NotesToggles", func(t *testing.T) { testNotesToggles(t, newStore(t)) })
	t.Run("NotesFilter", func(t *testing.T) { testNotesFilter(t, newStore(t)) })
	t.Run("MoodsStats", func(t *testing.T) { testMoodsStats(t, newStore(t)) })
	t.Run("Letters", func(t *testing.T) { testLetters(t, newStore(t)) })
	t.Run("Memories", func(t *testing.T) { testMemories(t, newStore(t)) })
	t.Run("Todos", func(t *testing.T) { testTodos(t, newStore(t)) })
	t.Run("Events", func(t *testing.T) { testEvents(t, newStore(t)) })
	t.Run("StudyCascade", func(t *testing.T) { testStudyCascade(t, newStore(t)) })
	t.Run("PdfFileData", func(t *testing.T) { testPdfFileData(t, newStore(t)) })
	t.Run("NotFound", func(t *testing.T) { testNotFound(t, newStore(t)) })
	t.Run("Validation", func(t *testing.T) { testValidation(t, newStore(t)) })
}

func testNotesCRUD(t *testing.T, s store.Store) {
	ctx := context.Background()

	created, err := s.Notes().Create(ctx, &model.Note{Title: "groceries", Content: "milk and bread"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "rose", created.Color)
	require.Equal(t, "💕", created.Emoji)
	require.Equal(t, "personal", created.Category)
	require.NotNil(t, created.Images)
	require.False(t, created.CreatedAt.IsZero())
	require.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := s.Notes().GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "milk and bread", got.Content)
	require.NotNil(t, got.Images)

	title := "errands"
	updated, err := s.Notes().Update(ctx, created.ID, model.NoteUpdate{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "errands", updated.Title)
	require.Equal(t, "milk and bread", updated.Content, "untouched fields survive a merge update")

	require.NoError(t, s.Notes().Delete(ctx, created.ID))
	_, err = s.Notes().GetByID(ctx, created.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func testNotesToggles(t *testing.T, s store.Store) {
	ctx := context.Background()

	n, err := s.Notes().Create(ctx, &model.Note{Content: "toggle me"})
	require.NoError(t, err)

	n, err = s.Notes().ToggleLove(ctx, n.ID)
	require.NoError(t, err)
	require.True(t, n.IsLoved)

	n, err = s.Notes().TogglePin(ctx, n.ID)
	require.NoError(t, err)
	require.True(t, n.IsPinned)

	// Archiving clears the pin in the same statement.
	n, err = s.Notes().ToggleArchive(ctx, n.ID)
	require.NoError(t, err)
	require.True(t, n.IsArchived)
	require.False(t, n.IsPinned)
	require.True(t, n.IsLoved, "love survives archiving")

	// Unarchiving does not restore the pin.
	n, err = s.Notes().ToggleArchive(ctx, n.ID)
	require.NoError(t, err)
	require.False(t, n.IsArchived)
	require.False(t, n.IsPinned)
}

func testNotesFilter(t *testing.T, s store.Store) {
	ctx := context.Background()

	mk := func(content, category string) *model.Note {
		n, err := s.Notes().Create(ctx, &model.Note{Content: content, Category: category})
		require.NoError(t, err)
		return n
	}
	a := mk("physics revision", "study")
	mk("beach day", "memories")
	pinned := mk("call home", "personal")

	_, err := s.Notes().TogglePin(ctx, pinned.ID)
	require.NoError(t, err)

	archived := mk("old draft", "personal")
	_, err = s.Notes().ToggleArchive(ctx, archived.ID)
	require.NoError(t, err)

	all, err := s.Notes().List(ctx, model.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3, "archived notes stay out of the default view")
	require.Equal(t, pinned.ID, all[0].ID, "pinned notes sort first")

	study, err := s.Notes().List(ctx, model.NoteFilter{Category: "study"})
	require.NoError(t, err)
	require.Len(t, study, 1)
	require.Equal(t, a.ID, study[0].ID)

	everything, err := s.Notes().List(ctx, model.NoteFilter{Category: "all"})
	require.NoError(t, err)
	require.Len(t, everything, 3, `category "all" is a no-op filter`)

	found, err := s.Notes().List(ctx, model.NoteFilter{Search: "PHYSICS"})
	require.NoError(t, err)
	require.Len(t, found, 1, "search is case-insensitive")

	arch, err := s.Notes().List(ctx, model.NoteFilter{Archived: true})
	require.NoError(t, err)
	require.Len(t, arch, 1)
	require.Equal(t, archived.ID, arch[0].ID)
}

func testMoodsStats(t *testing.T, s store.Store) {
	ctx := context.Background()

	add := func(name, emoji, color string) {
		_, err := s.Moods().Create(ctx, &model.Mood{
			Mood: model.MoodInfo{Name: name, Emoji: emoji, Color: color},
		})
		require.NoError(t, err)
	}
	add("Happy", "😊", "yellow")
	add("Happy", "😄", "gold")
	add("Tired", "😴", "gray")

	list, err := s.Moods().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	stats, err := s.Moods().Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	require.Equal(t, "Happy", stats[0].Name)
	require.Equal(t, 3, stats[0].Count+stats[1].Count)
	require.Equal(t, 2, stats[0].Count)
	require.Equal(t, "😊", stats[0].Emoji, "stats carry the earliest entry's emoji")
	require.Equal(t, "yellow", stats[0].Color)

	require.NoError(t, s.Moods().Delete(ctx, list[0].ID))
	list, err = s.Moods().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func testLetters(t *testing.T, s store.Store) {
	ctx := context.Background()

	l, err := s.Letters().Create(ctx, &model.Letter{Content: "dear me"})
	require.NoError(t, err)
	require.Equal(t, "My Beautiful Self", l.To)
	require.False(t, l.IsRead)
	require.Zero(t, l.Hearts)

	l, err = s.Letters().MarkRead(ctx, l.ID)
	require.NoError(t, err)
	require.True(t, l.IsRead)

	// Marking read twice stays read.
	l, err = s.Letters().MarkRead(ctx, l.ID)
	require.NoError(t, err)
	require.True(t, l.IsRead)

	l, err = s.Letters().AddHeart(ctx, l.ID)
	require.NoError(t, err)
	l, err = s.Letters().AddHeart(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, 2, l.Hearts)

	got, err := s.Letters().GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Hearts)

	require.NoError(t, s.Letters().Delete(ctx, l.ID))
	require.ErrorIs(t, s.Letters().Delete(ctx, l.ID), model.ErrNotFound)
}

func testMemories(t *testing.T, s store.Store) {
	ctx := context.Background()

	m, err := s.Memories().Create(ctx, &model.Memory{
		Title:  "sunset",
		Images: []model.Image{{URL: "https://img.example/sunset.jpg", ExternalID: "abc123"}},
	})
	require.NoError(t, err)
	require.Nil(t, m.Date)

	got, err := s.Memories().GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 1)
	require.Equal(t, "abc123", got.Images[0].ExternalID)
	require.Nil(t, got.Date)

	got, err = s.Memories().AddHeart(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Hearts)

	require.NoError(t, s.Memories().Delete(ctx, m.ID))
}

func testTodos(t *testing.T, s store.Store) {
	ctx := context.Background()

	a, err := s.Todos().Create(ctx, &model.Todo{Text: "water plants"})
	require.NoError(t, err)
	require.Equal(t, "normal", a.Priority)
	b, err := s.Todos().Create(ctx, &model.Todo{Text: "file taxes", Priority: "urgent"})
	require.NoError(t, err)

	b, err = s.Todos().Toggle(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, b.Completed)

	active, err := s.Todos().List(ctx, "active")
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, a.ID, active[0].ID)

	done, err := s.Todos().List(ctx, "completed")
	require.NoError(t, err)
	require.Len(t, done, 1)

	n, err := s.Todos().ClearCompleted(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	all, err := s.Todos().List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func testEvents(t *testing.T, s store.Store) {
	ctx := context.Background()

	mk := func(title, date, tm string) *model.Event {
		e, err := s.Events().Create(ctx, &model.Event{Title: title, Date: date, Time: tm})
		require.NoError(t, err)
		return e
	}
	mk("dentist", "2099-03-01", "14:00")
	mk("coffee", "2099-03-01", "09:30")
	mk("old thing", "2001-01-01", "")

	day, err := s.Events().ListByDate(ctx, "2099-03-01")
	require.NoError(t, err)
	require.Len(t, day, 2)
	require.Equal(t, "coffee", day[0].Title, "same-day events order by time")

	upcoming, err := s.Events().List(ctx, model.EventFilter{Upcoming: true})
	require.NoError(t, err)
	require.Len(t, upcoming, 2)

	newDate := "2099-04-02"
	e, err := s.Events().Update(ctx, day[0].ID, model.EventUpdate{Date: &newDate})
	require.NoError(t, err)
	require.Equal(t, "2099-04-02", e.Date)
	require.Equal(t, "coffee", e.Title)

	require.NoError(t, s.Events().Delete(ctx, e.ID))
}

func testStudyCascade(t *testing.T, s store.Store) {
	ctx := context.Background()

	sec, err := s.Sections().Create(ctx, &model.StudySection{Name: "Math"})
	require.NoError(t, err)
	require.Equal(t, "📚", sec.Emoji)
	require.Equal(t, "rose", sec.Color)

	for i := 0; i < 2; i++ {
		_, err := s.Pdfs().Create(ctx, &model.StudyPdf{
			Name: "chapter", SectionID: sec.ID, FileData: "ZGF0YQ==",
		})
		require.NoError(t, err)
	}

	other, err := s.Sections().Create(ctx, &model.StudySection{Name: "History", Color: "blue"})
	require.NoError(t, err)
	_, err = s.Pdfs().Create(ctx, &model.StudyPdf{Name: "notes", SectionID: other.ID, FileData: "ZGF0YQ=="})
	require.NoError(t, err)

	deleted, err := s.Sections().DeleteCascade(ctx, sec.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	_, err = s.Sections().GetByID(ctx, sec.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	remaining, err := s.Pdfs().List(ctx, model.PdfFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1, "other sections' PDFs survive the cascade")

	// Empty section deletes cleanly with a zero count.
	empty, err := s.Sections().Create(ctx, &model.StudySection{Name: "Empty"})
	require.NoError(t, err)
	deleted, err = s.Sections().DeleteCascade(ctx, empty.ID)
	require.NoError(t, err)
	require.Zero(t, deleted)

	_, err = s.Sections().DeleteCascade(ctx, empty.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func testPdfFileData(t *testing.T, s store.Store) {
	ctx := context.Background()

	sec, err := s.Sections().Create(ctx, &model.StudySection{Name: "Physics"})
	require.NoError(t, err)

	p, err := s.Pdfs().Create(ctx, &model.StudyPdf{
		Name: "optics", SectionID: sec.ID, FileData: "JVBERi0base64",
		Size: "1.2 MB", TotalPages: 40,
	})
	require.NoError(t, err)
	require.Equal(t, 1, p.LastPage)

	got, err := s.Pdfs().GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "JVBERi0base64", got.FileData, "detail fetch carries the payload")

	list, err := s.Pdfs().List(ctx, model.PdfFilter{SectionID: sec.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Empty(t, list[0].FileData, "list views never carry the payload")

	fav, err := s.Pdfs().ToggleFavorite(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, fav)
	fav, err = s.Pdfs().ToggleFavorite(ctx, p.ID)
	require.NoError(t, err)
	require.False(t, fav)

	page := 17
	upd, err := s.Pdfs().Update(ctx, p.ID, model.PdfUpdate{LastPage: &page})
	require.NoError(t, err)
	require.Equal(t, 17, upd.LastPage)
	require.Equal(t, 40, upd.TotalPages)

	favs, err := s.Pdfs().List(ctx, model.PdfFilter{Favorite: true})
	require.NoError(t, err)
	require.Empty(t, favs)

	require.NoError(t, s.Pdfs().Delete(ctx, p.ID))
}

func testNotFound(t *testing.T, s store.Store) {
	ctx := context.Background()
	const id = "no-such-id"

	_, err := s.Notes().GetByID(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Notes().ToggleLove(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	c := "x"
	_, err = s.Notes().Update(ctx, id, model.NoteUpdate{Content: &c})
	require.ErrorIs(t, err, model.ErrNotFound)
	require.ErrorIs(t, s.Notes().Delete(ctx, id), model.ErrNotFound)

	require.ErrorIs(t, s.Moods().Delete(ctx, id), model.ErrNotFound)
	_, err = s.Letters().MarkRead(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Letters().AddHeart(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Memories().AddHeart(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Todos().Toggle(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Events().Update(ctx, id, model.EventUpdate{})
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Sections().GetByID(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
	_, err = s.Pdfs().ToggleFavorite(ctx, id)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func testValidation(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.Notes().Create(ctx, &model.Note{})
	require.ErrorIs(t, err, model.ErrValidation)
	_, err = s.Notes().Create(ctx, &model.Note{Content: "x", Color: "mauve"})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.Moods().Create(ctx, &model.Mood{Mood: model.MoodInfo{Name: "Furious", Emoji: "😡", Color: "red"}})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.Letters().Create(ctx, &model.Letter{})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.Todos().Create(ctx, &model.Todo{Text: "x", Priority: "whenever"})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.Events().Create(ctx, &model.Event{Title: "bad date", Date: "March 1"})
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = s.Pdfs().Create(ctx, &model.StudyPdf{Name: "x", SectionID: "s"})
	require.ErrorIs(t, err, model.ErrValidation)

	n, err := s.Notes().Create(ctx, &model.Note{Content: "ok"})
	require.NoError(t, err)
	bad := "mauve"
	_, err = s.Notes().Update(ctx, n.ID, model.NoteUpdate{Color: &bad})
	require.ErrorIs(t, err, model.ErrValidation)
}
