package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sradha-notes/backend/internal/api"
	"github.com/sradha-notes/backend/internal/auth"
	"github.com/sradha-notes/backend/internal/media"
	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/store/sqlite"
)

type fakeUploader struct {
	mu      sync.Mutex
	n       int
	deleted []string
}

func (f *fakeUploader) UploadRaw(ctx context.Context, data []byte, contentType string) (*media.Asset, error) {
	return f.UploadDataURI(ctx, "data:"+contentType+";base64,")
}

func (f *fakeUploader) UploadDataURI(context.Context, string) (*media.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	return &media.Asset{
		URL:        fmt.Sprintf("https://cdn.example/img-%d.png", f.n),
		ExternalID: fmt.Sprintf("ext-%d", f.n),
	}, nil
}

func (f *fakeUploader) Delete(_ context.Context, externalID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, externalID)
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Error   string          `json:"error"`
}

type harness struct {
	srv   *httptest.Server
	up    *fakeUploader
	token string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st, err := sqlite.New(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)

	up := &fakeUploader{}
	server := api.NewServer(st, api.Options{
		Auth:    auth.New("test-secret"),
		Media:   up,
		Log:     zerolog.Nop(),
		DevMode: true,
	})
	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)

	h := &harness{srv: srv, up: up}
	env, status := h.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "sradha", "password": "iloveyou",
	})
	require.Equal(t, http.StatusOK, status)
	var loginData struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loginData))
	h.token = loginData.Token
	return h
}

// do sends a JSON request with the harness token and decodes the envelope.
func (h *harness) do(t *testing.T, method, path string, body any) (envelope, int) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env, resp.StatusCode
}

func unmarshal[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestAuthMatrix(t *testing.T) {
	h := newHarness(t)

	t.Run("wrong password", func(t *testing.T) {
		env, status := (&harness{srv: h.srv}).do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "sradha", "password": "ILOVEYOU",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.False(t, env.Success)
	})

	t.Run("case-insensitive username", func(t *testing.T) {
		_, status := (&harness{srv: h.srv}).do(t, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "SRADHA", "password": "iloveyou",
		})
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		anon := &harness{srv: h.srv}
		_, status := anon.do(t, http.MethodGet, "/api/notes", nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		bad := &harness{srv: h.srv, token: "garbage"}
		_, status = bad.do(t, http.MethodGet, "/api/notes", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("verify", func(t *testing.T) {
		env, status := h.do(t, http.MethodGet, "/api/auth/verify", nil)
		require.Equal(t, http.StatusOK, status)
		var data struct {
			User auth.User `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "Sradha Priyadarshini", data.User.Name)
	})

	t.Run("logout is a stateless ack", func(t *testing.T) {
		_, status := h.do(t, http.MethodPost, "/api/auth/logout", nil)
		assert.Equal(t, http.StatusOK, status)
		_, status = h.do(t, http.MethodGet, "/api/notes", nil)
		assert.Equal(t, http.StatusOK, status, "token still works after logout")
	})

	t.Run("open endpoints", func(t *testing.T) {
		anon := &harness{srv: h.srv}
		_, status := anon.do(t, http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusOK, status)
		_, status = anon.do(t, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("unknown route", func(t *testing.T) {
		env, status := h.do(t, http.MethodGet, "/api/nope", nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Route not found 🔍", env.Message)
	})
}

func TestNoteLifecycle(t *testing.T) {
	h := newHarness(t)

	env, status := h.do(t, http.MethodPost, "/api/notes", map[string]any{"content": "hi"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Note created successfully! 💕", env.Message)
	note := unmarshal[model.Note](t, env.Data)
	assert.Equal(t, "rose", note.Color)
	assert.Equal(t, "💕", note.Emoji)
	assert.Equal(t, "personal", note.Category)

	env, status = h.do(t, http.MethodPatch, "/api/notes/"+note.ID+"/pin", nil)
	require.Equal(t, http.StatusOK, status)
	note = unmarshal[model.Note](t, env.Data)
	assert.True(t, note.IsPinned)

	// Archiving clears the pin.
	env, status = h.do(t, http.MethodPatch, "/api/notes/"+note.ID+"/archive", nil)
	require.Equal(t, http.StatusOK, status)
	note = unmarshal[model.Note](t, env.Data)
	assert.True(t, note.IsArchived)
	assert.False(t, note.IsPinned)

	env, status = h.do(t, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Count)
	assert.Zero(t, *env.Count, "archived notes hidden from the default list")

	env, status = h.do(t, http.MethodGet, "/api/notes?archived=true", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, *env.Count)

	_, status = h.do(t, http.MethodDelete, "/api/notes/"+note.ID, nil)
	require.Equal(t, http.StatusOK, status)
	env, status = h.do(t, http.MethodGet, "/api/notes/"+note.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Note not found 🔍", env.Message)
}

func TestNoteValidationError(t *testing.T) {
	h := newHarness(t)

	env, status := h.do(t, http.MethodPost, "/api/notes", map[string]any{"content": ""})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error, "dev mode includes the diagnostic detail")

	_, status = h.do(t, http.MethodPost, "/api/notes", map[string]any{"content": "x", "color": "mauve"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestNoteImagesAndDuplicate(t *testing.T) {
	h := newHarness(t)

	env, status := h.do(t, http.MethodPost, "/api/notes", map[string]any{
		"title":   "pics",
		"content": "look",
		"images":  []any{"data:image/png;base64,aGVsbG8=", "https://elsewhere.example/p.jpg"},
	})
	require.Equal(t, http.StatusCreated, status)
	note := unmarshal[model.Note](t, env.Data)
	require.Len(t, note.Images, 2)
	assert.Equal(t, "ext-1", note.Images[0].ExternalID)
	assert.Empty(t, note.Images[1].ExternalID)

	env, status = h.do(t, http.MethodPost, "/api/notes/"+note.ID+"/duplicate", nil)
	require.Equal(t, http.StatusCreated, status)
	dup := unmarshal[model.Note](t, env.Data)
	assert.Equal(t, "pics (Copy)", dup.Title)
	assert.Equal(t, "look (Copy)", dup.Content)
	assert.Len(t, dup.Images, 2)

	_, status = h.do(t, http.MethodDelete, "/api/notes/"+note.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"ext-1"}, h.up.deleted, "hosted image released on delete")
}

func TestMoodStats(t *testing.T) {
	h := newHarness(t)

	post := func(name, emoji, color string) {
		_, status := h.do(t, http.MethodPost, "/api/moods", map[string]any{
			"mood": map[string]string{"name": name, "emoji": emoji, "color": color},
		})
		require.Equal(t, http.StatusCreated, status)
	}
	post("Happy", "😊", "yellow")
	post("Happy", "😄", "gold")
	post("Sad", "😢", "blue")

	env, status := h.do(t, http.MethodGet, "/api/moods/stats", nil)
	require.Equal(t, http.StatusOK, status)
	stats := unmarshal[[]model.MoodStat](t, env.Data)
	require.Len(t, stats, 2)
	assert.Equal(t, "Happy", stats[0].Name)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, "😊", stats[0].Emoji)

	_, status = h.do(t, http.MethodPost, "/api/moods", map[string]any{
		"mood": map[string]string{"name": "Furious", "emoji": "😡", "color": "red"},
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLettersFlow(t *testing.T) {
	h := newHarness(t)

	env, status := h.do(t, http.MethodPost, "/api/letters", map[string]any{"content": "dear me"})
	require.Equal(t, http.StatusCreated, status)
	letter := unmarshal[model.Letter](t, env.Data)
	assert.Equal(t, "My Beautiful Self", letter.To)

	env, _ = h.do(t, http.MethodPatch, "/api/letters/"+letter.ID+"/read", nil)
	letter = unmarshal[model.Letter](t, env.Data)
	assert.True(t, letter.IsRead)

	env, _ = h.do(t, http.MethodPatch, "/api/letters/"+letter.ID+"/heart", nil)
	letter = unmarshal[model.Letter](t, env.Data)
	assert.Equal(t, 1, letter.Hearts)
}

func TestTodosFlow(t *testing.T) {
	h := newHarness(t)

	env, status := h.do(t, http.MethodPost, "/api/todos", map[string]any{"text": "water plants"})
	require.Equal(t, http.StatusCreated, status)
	todo := unmarshal[model.Todo](t, env.Data)

	env, _ = h.do(t, http.MethodPatch, "/api/todos/"+todo.ID+"/toggle", nil)
	todo = unmarshal[model.Todo](t, env.Data)
	assert.True(t, todo.Completed)

	env, status = h.do(t, http.MethodDelete, "/api/todos/completed/clear", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1 completed todos cleared! 🧹", env.Message)
}

func TestEventsByDate(t *testing.T) {
	h := newHarness(t)

	mk := func(title, date, tm string) {
		_, status := h.do(t, http.MethodPost, "/api/events", map[string]any{
			"title": title, "date": date, "time": tm,
		})
		require.Equal(t, http.StatusCreated, status)
	}
	mk("dentist", "2099-03-01", "14:00")
	mk("coffee", "2099-03-01", "09:30")

	env, status := h.do(t, http.MethodGet, "/api/events/date/2099-03-01", nil)
	require.Equal(t, http.StatusOK, status)
	events := unmarshal[[]model.Event](t, env.Data)
	require.Len(t, events, 2)
	assert.Equal(t, "coffee", events[0].Title)

	_, status = h.do(t, http.MethodGet, "/api/events/date/not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStudySectionsAndPdfs(t *testing.T) {
	h := newHarness(t)

	env, status := h.do(t, http.MethodPost, "/api/study/sections", map[string]any{"name": "Math"})
	require.Equal(t, http.StatusCreated, status)
	section := unmarshal[model.StudySection](t, env.Data)

	_, status = h.do(t, http.MethodPost, "/api/study/pdfs", map[string]any{
		"name": "algebra", "sectionId": "ghost", "fileData": "ZGF0YQ==",
	})
	assert.Equal(t, http.StatusNotFound, status, "PDFs cannot target a missing section")

	env, status = h.do(t, http.MethodPost, "/api/study/pdfs", map[string]any{
		"name": "algebra", "sectionId": section.ID, "fileData": "ZGF0YQ==",
	})
	require.Equal(t, http.StatusCreated, status)
	pdf := unmarshal[model.StudyPdf](t, env.Data)

	// List strips the payload; the detail fetch carries it.
	env, _ = h.do(t, http.MethodGet, "/api/study/pdfs?sectionId="+section.ID, nil)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	_, hasPayload := listed[0]["fileData"]
	assert.False(t, hasPayload)

	env, _ = h.do(t, http.MethodGet, "/api/study/pdfs/"+pdf.ID, nil)
	got := unmarshal[model.StudyPdf](t, env.Data)
	assert.Equal(t, "ZGF0YQ==", got.FileData)

	env, status = h.do(t, http.MethodDelete, "/api/study/sections/"+section.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Section and all its PDFs deleted! 🗑️", env.Message)
	cascade := unmarshal[map[string]int64](t, env.Data)
	assert.Equal(t, int64(1), cascade["deletedPdfs"])

	_, status = h.do(t, http.MethodGet, "/api/study/pdfs/"+pdf.ID, nil)
	assert.Equal(t, http.StatusNotFound, status, "cascade removed the PDF")
}

func TestUploadImage(t *testing.T) {
	h := newHarness(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "a.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, h.srv.URL+"/api/upload/image", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+h.token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	var uploaded struct {
		URL        string `json:"url"`
		ExternalID string `json:"externalId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &uploaded))
	assert.Equal(t, "ext-1", uploaded.ExternalID)

	_, status := h.do(t, http.MethodDelete, "/api/upload/"+uploaded.ExternalID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"ext-1"}, h.up.deleted)
}

func TestUploadBase64AndMultiple(t *testing.T) {
	h := newHarness(t)

	env, status := h.do(t, http.MethodPost, "/api/upload/base64", map[string]string{
		"image": "data:image/png;base64,aGVsbG8=",
	})
	require.Equal(t, http.StatusOK, status)
	var one struct {
		ExternalID string `json:"externalId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &one))
	assert.Equal(t, "ext-1", one.ExternalID)

	_, status = h.do(t, http.MethodPost, "/api/upload/base64", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)

	env, status = h.do(t, http.MethodPost, "/api/upload/multiple", map[string]any{
		"images": []string{"data:image/png;base64,YQ==", "data:image/png;base64,Yg=="},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2 images uploaded successfully! 📸", env.Message)
	var many []struct {
		ExternalID string `json:"externalId"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &many))
	require.Len(t, many, 2)

	_, status = h.do(t, http.MethodPost, "/api/upload/multiple", map[string]any{"images": []string{}})
	assert.Equal(t, http.StatusBadRequest, status)
}
