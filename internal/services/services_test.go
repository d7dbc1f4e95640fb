package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sradha-notes/backend/internal/media"
	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/store"
	"github.com/sradha-notes/backend/internal/store/sqlite"
)

// fakeUploader records uploads and deletes in memory.
type fakeUploader struct {
	mu       sync.Mutex
	n        int
	deleted  []string
	fail     bool
	onDelete func(externalID string)
}

func (f *fakeUploader) UploadRaw(ctx context.Context, data []byte, contentType string) (*media.Asset, error) {
	return f.UploadDataURI(ctx, "data:"+contentType+";base64,")
}

func (f *fakeUploader) UploadDataURI(_ context.Context, _ string) (*media.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, fmt.Errorf("%w: host unavailable", model.ErrUpstream)
	}
	f.n++
	return &media.Asset{
		URL:        fmt.Sprintf("https://cdn.example/img-%d.png", f.n),
		ExternalID: fmt.Sprintf("ext-%d", f.n),
	}, nil
}

func (f *fakeUploader) Delete(_ context.Context, externalID string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, externalID)
	f.mu.Unlock()
	if f.onDelete != nil {
		f.onDelete(externalID)
	}
	return nil
}

func newStore(t *testing.T) store.Store {
	t.Helper()
	s, err := sqlite.New(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	return s
}

func str(s string) *string { return &s }

func TestNotesCreateUploadsDataURIs(t *testing.T) {
	up := &fakeUploader{}
	svc := NewNotes(newStore(t), up, zerolog.Nop())

	n, err := svc.Create(context.Background(), NoteInput{
		Content: str("with pictures"),
		Images: []model.ImageInput{
			{Raw: "data:image/png;base64,aGVsbG8="},
			{Raw: "https://elsewhere.example/pic.jpg"},
		},
	})
	require.NoError(t, err)
	require.Len(t, n.Images, 2)
	assert.Equal(t, "https://cdn.example/img-1.png", n.Images[0].URL)
	assert.Equal(t, "ext-1", n.Images[0].ExternalID)
	assert.Equal(t, "https://elsewhere.example/pic.jpg", n.Images[1].URL)
	assert.Empty(t, n.Images[1].ExternalID, "plain URLs are not re-hosted")
}

func TestNotesCreateAbortsOnUploadFailure(t *testing.T) {
	s := newStore(t)
	svc := NewNotes(s, &fakeUploader{fail: true}, zerolog.Nop())

	_, err := svc.Create(context.Background(), NoteInput{
		Content: str("doomed"),
		Images:  []model.ImageInput{{Raw: "data:image/png;base64,aGVsbG8="}},
	})
	require.ErrorIs(t, err, model.ErrUpstream)

	list, err := s.Notes().List(context.Background(), model.NoteFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "no note is stored when an upload fails")
}

func TestNotesCreateRejectsBadImageString(t *testing.T) {
	svc := NewNotes(newStore(t), &fakeUploader{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), NoteInput{
		Content: str("x"),
		Images:  []model.ImageInput{{Raw: "ftp://nope"}},
	})
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestNotesDeleteReleasesHostedImages(t *testing.T) {
	up := &fakeUploader{}
	svc := NewNotes(newStore(t), up, zerolog.Nop())
	ctx := context.Background()

	n, err := svc.Create(ctx, NoteInput{
		Content: str("temp"),
		Images: []model.ImageInput{
			{Raw: "data:image/png;base64,aGVsbG8="},
			{Raw: "https://elsewhere.example/keep.jpg"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, n.ID))
	assert.Equal(t, []string{"ext-1"}, up.deleted, "only hosted images are released")
}

func TestNotesDeleteReleasesImagesBeforeRecord(t *testing.T) {
	up := &fakeUploader{}
	s := newStore(t)
	svc := NewNotes(s, up, zerolog.Nop())
	ctx := context.Background()

	n, err := svc.Create(ctx, NoteInput{
		Content: str("temp"),
		Images:  []model.ImageInput{{Raw: "data:image/png;base64,aGVsbG8="}},
	})
	require.NoError(t, err)

	up.onDelete = func(string) {
		_, err := s.Notes().GetByID(ctx, n.ID)
		assert.NoError(t, err, "record still present while images are released")
	}
	require.NoError(t, svc.Delete(ctx, n.ID))

	_, err = s.Notes().GetByID(ctx, n.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestNotesDuplicate(t *testing.T) {
	up := &fakeUploader{}
	s := newStore(t)
	svc := NewNotes(s, up, zerolog.Nop())
	ctx := context.Background()

	orig, err := svc.Create(ctx, NoteInput{
		Title:   str("plan"),
		Content: str("step one"),
		Color:   str("blue"),
	})
	require.NoError(t, err)
	_, err = s.Notes().TogglePin(ctx, orig.ID)
	require.NoError(t, err)

	dup, err := svc.Duplicate(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, "plan (Copy)", dup.Title)
	assert.Equal(t, "step one (Copy)", dup.Content)
	assert.Equal(t, "blue", dup.Color)
	assert.False(t, dup.IsPinned, "flags reset on the copy")
	assert.NotEqual(t, orig.ID, dup.ID)

	untitled, err := svc.Create(ctx, NoteInput{Content: str("just content")})
	require.NoError(t, err)
	dup, err = svc.Duplicate(ctx, untitled.ID)
	require.NoError(t, err)
	assert.Empty(t, dup.Title, "an untitled note stays untitled")
	assert.Equal(t, "just content (Copy)", dup.Content)
}

func TestNotesUpdateAppendsDataURIImages(t *testing.T) {
	up := &fakeUploader{}
	svc := NewNotes(newStore(t), up, zerolog.Nop())
	ctx := context.Background()

	n, err := svc.Create(ctx, NoteInput{
		Content: str("x"),
		Images:  []model.ImageInput{{Raw: "data:image/png;base64,aGVsbG8="}},
	})
	require.NoError(t, err)

	n, err = svc.Update(ctx, n.ID, NoteInput{Title: str("renamed")})
	require.NoError(t, err)
	assert.Len(t, n.Images, 1, "images untouched when the field is absent")

	n, err = svc.Update(ctx, n.ID, NoteInput{Images: []model.ImageInput{
		{Raw: "data:image/png;base64,bW9yZQ=="},
		{Raw: "https://elsewhere.example/skip.jpg"},
	}})
	require.NoError(t, err)
	require.Len(t, n.Images, 2, "only the data URI is appended")
	assert.Equal(t, "ext-2", n.Images[1].ExternalID)
}

func TestMemoriesCreateAndDelete(t *testing.T) {
	up := &fakeUploader{}
	svc := NewMemories(newStore(t), up, zerolog.Nop())
	ctx := context.Background()

	m, err := svc.Create(ctx, MemoryInput{
		Title: "trip",
		Images: []model.ImageInput{
			{Raw: "data:image/jpeg;base64,aGVsbG8="},
			{URL: "https://cdn.example/old.jpg", ExternalID: "old-ext"},
		},
	})
	require.NoError(t, err)
	require.Len(t, m.Images, 2)
	assert.Equal(t, "old-ext", m.Images[1].ExternalID)

	require.NoError(t, svc.Delete(ctx, m.ID))
	assert.ElementsMatch(t, []string{"ext-1", "old-ext"}, up.deleted)
}

func TestStudyCreatePdfRequiresSection(t *testing.T) {
	s := newStore(t)
	svc := NewStudy(s)
	ctx := context.Background()

	_, err := svc.CreatePdf(ctx, &model.StudyPdf{Name: "orphan", SectionID: "ghost", FileData: "ZGF0YQ=="})
	require.ErrorIs(t, err, model.ErrNotFound)

	sec, err := s.Sections().Create(ctx, &model.StudySection{Name: "Math"})
	require.NoError(t, err)
	p, err := svc.CreatePdf(ctx, &model.StudyPdf{Name: "algebra", SectionID: sec.ID, FileData: "ZGF0YQ=="})
	require.NoError(t, err)
	assert.Equal(t, sec.ID, p.SectionID)
}
