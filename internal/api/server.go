// Package api wires the HTTP surface: routing, middleware, and handlers.
package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/sradha-notes/backend/internal/api/respond"
	"github.com/sradha-notes/backend/internal/auth"
	"github.com/sradha-notes/backend/internal/media"
	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/services"
	"github.com/sradha-notes/backend/internal/store"
)

// Server holds the handler dependencies.
type Server struct {
	store    store.Store
	notes    *services.Notes
	memories *services.Memories
	study    *services.Study
	auth     *auth.Authenticator
	media    media.Uploader

	log           zerolog.Logger
	devMode       bool
	allowedOrigin string
}

// Options carries everything the server needs beyond the store.
type Options struct {
	Auth          *auth.Authenticator
	Media         media.Uploader
	Log           zerolog.Logger
	DevMode       bool
	AllowedOrigin string
}

func NewServer(st store.Store, opts Options) *Server {
	return &Server{
		store:         st,
		notes:         services.NewNotes(st, opts.Media, opts.Log),
		memories:      services.NewMemories(st, opts.Media, opts.Log),
		study:         services.NewStudy(st),
		auth:          opts.Auth,
		media:         opts.Media,
		log:           opts.Log,
		devMode:       opts.DevMode,
		allowedOrigin: opts.AllowedOrigin,
	}
}

// Router builds the full route tree.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recoverMiddleware, s.corsMiddleware, s.requestLogMiddleware)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond.Fail(w, http.StatusNotFound, "Route not found 🔍", "", s.devMode)
	})

	r.HandleFunc("/", s.handleWelcome).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", s.handleVerify).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)

	p := api.NewRoute().Subrouter()
	p.Use(s.authMiddleware)

	p.HandleFunc("/notes", s.handleListNotes).Methods(http.MethodGet)
	p.HandleFunc("/notes", s.handleCreateNote).Methods(http.MethodPost)
	p.HandleFunc("/notes/{id}", s.handleGetNote).Methods(http.MethodGet)
	p.HandleFunc("/notes/{id}", s.handleUpdateNote).Methods(http.MethodPut)
	p.HandleFunc("/notes/{id}", s.handleDeleteNote).Methods(http.MethodDelete)
	p.HandleFunc("/notes/{id}/love", s.handleToggleLove).Methods(http.MethodPatch)
	p.HandleFunc("/notes/{id}/pin", s.handleTogglePin).Methods(http.MethodPatch)
	p.HandleFunc("/notes/{id}/archive", s.handleToggleArchive).Methods(http.MethodPatch)
	p.HandleFunc("/notes/{id}/duplicate", s.handleDuplicateNote).Methods(http.MethodPost)

	p.HandleFunc("/moods", s.handleListMoods).Methods(http.MethodGet)
	p.HandleFunc("/moods", s.handleCreateMood).Methods(http.MethodPost)
	p.HandleFunc("/moods/stats", s.handleMoodStats).Methods(http.MethodGet)
	p.HandleFunc("/moods/{id}", s.handleDeleteMood).Methods(http.MethodDelete)

	p.HandleFunc("/letters", s.handleListLetters).Methods(http.MethodGet)
	p.HandleFunc("/letters", s.handleCreateLetter).Methods(http.MethodPost)
	p.HandleFunc("/letters/{id}", s.handleGetLetter).Methods(http.MethodGet)
	p.HandleFunc("/letters/{id}/read", s.handleMarkLetterRead).Methods(http.MethodPatch)
	p.HandleFunc("/letters/{id}/heart", s.handleHeartLetter).Methods(http.MethodPatch)
	p.HandleFunc("/letters/{id}", s.handleDeleteLetter).Methods(http.MethodDelete)

	p.HandleFunc("/memories", s.handleListMemories).Methods(http.MethodGet)
	p.HandleFunc("/memories", s.handleCreateMemory).Methods(http.MethodPost)
	p.HandleFunc("/memories/{id}", s.handleGetMemory).Methods(http.MethodGet)
	p.HandleFunc("/memories/{id}/heart", s.handleHeartMemory).Methods(http.MethodPatch)
	p.HandleFunc("/memories/{id}", s.handleDeleteMemory).Methods(http.MethodDelete)

	p.HandleFunc("/todos", s.handleListTodos).Methods(http.MethodGet)
	p.HandleFunc("/todos", s.handleCreateTodo).Methods(http.MethodPost)
	p.HandleFunc("/todos/completed/clear", s.handleClearCompletedTodos).Methods(http.MethodDelete)
	p.HandleFunc("/todos/{id}/toggle", s.handleToggleTodo).Methods(http.MethodPatch)
	p.HandleFunc("/todos/{id}", s.handleDeleteTodo).Methods(http.MethodDelete)

	p.HandleFunc("/events", s.handleListEvents).Methods(http.MethodGet)
	p.HandleFunc("/events", s.handleCreateEvent).Methods(http.MethodPost)
	p.HandleFunc("/events/date/{date}", s.handleListEventsByDate).Methods(http.MethodGet)
	p.HandleFunc("/events/{id}", s.handleUpdateEvent).Methods(http.MethodPut)
	p.HandleFunc("/events/{id}", s.handleDeleteEvent).Methods(http.MethodDelete)

	p.HandleFunc("/study/sections", s.handleListSections).Methods(http.MethodGet)
	p.HandleFunc("/study/sections", s.handleCreateSection).Methods(http.MethodPost)
	p.HandleFunc("/study/sections/{id}", s.handleUpdateSection).Methods(http.MethodPut)
	p.HandleFunc("/study/sections/{id}", s.handleDeleteSection).Methods(http.MethodDelete)
	p.HandleFunc("/study/pdfs", s.handleListPdfs).Methods(http.MethodGet)
	p.HandleFunc("/study/pdfs", s.handleCreatePdf).Methods(http.MethodPost)
	p.HandleFunc("/study/pdfs/{id}", s.handleGetPdf).Methods(http.MethodGet)
	p.HandleFunc("/study/pdfs/{id}", s.handleUpdatePdf).Methods(http.MethodPatch)
	p.HandleFunc("/study/pdfs/{id}/favorite", s.handleTogglePdfFavorite).Methods(http.MethodPatch)
	p.HandleFunc("/study/pdfs/{id}", s.handleDeletePdf).Methods(http.MethodDelete)

	p.HandleFunc("/upload/image", s.handleUploadImage).Methods(http.MethodPost)
	p.HandleFunc("/upload/base64", s.handleUploadBase64).Methods(http.MethodPost)
	p.HandleFunc("/upload/multiple", s.handleUploadMultiple).Methods(http.MethodPost)
	p.HandleFunc("/upload/{externalId:.+}", s.handleDeleteUpload).Methods(http.MethodDelete)

	return r
}

// fail maps a service or store error onto the right status and envelope.
// notFoundMsg customizes the 404 message per resource.
func (s *Server) fail(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.Fail(w, http.StatusBadRequest, err.Error(), err.Error(), s.devMode)
	case errors.Is(err, model.ErrNotFound):
		respond.Fail(w, http.StatusNotFound, notFoundMsg, err.Error(), s.devMode)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		respond.Fail(w, http.StatusUnauthorized, "Oops! Wrong credentials, my love 💔", err.Error(), s.devMode)
	case errors.Is(err, model.ErrUpstream):
		s.log.Error().Err(err).Msg("upstream failure")
		respond.Fail(w, http.StatusInternalServerError, "The image host let us down 😔", err.Error(), s.devMode)
	default:
		s.log.Error().Err(err).Msg("internal error")
		respond.Fail(w, http.StatusInternalServerError, "Something went wrong 😔", err.Error(), s.devMode)
	}
}
