package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sradha-notes/backend/internal/api/respond"
	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/services"
)

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body", model.ErrValidation)
	}
	return nil
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.NoteFilter{
		Category: q.Get("category"),
		Archived: q.Get("archived") == "true",
		Search:   q.Get("search"),
	}
	notes, err := s.store.Notes().List(r.Context(), f)
	if err != nil {
		s.fail(w, err, "Note not found 🔍")
		return
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	respond.List(w, notes, len(notes))
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var in services.NoteInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	note, err := s.notes.Create(r.Context(), in)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.Created(w, "Note created successfully! 💕", note)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.store.Notes().GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Note not found 🔍")
		return
	}
	respond.OK(w, "", note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var in services.NoteInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	note, err := s.notes.Update(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		s.fail(w, err, "Note not found 🔍")
		return
	}
	respond.OK(w, "Note updated successfully! ✨", note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.notes.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err, "Note not found 🔍")
		return
	}
	respond.OK(w, "Note deleted successfully! 🗑️", nil)
}

func (s *Server) handleToggleLove(w http.ResponseWriter, r *http.Request) {
	note, err := s.store.Notes().ToggleLove(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Note not found 🔍")
		return
	}
	msg := "Love removed 🤍"
	if note.IsLoved {
		msg = "Note loved! ❤️"
	}
	respond.OK(w, msg, note)
}

func (s *Server) handleTogglePin(w http.ResponseWriter, r *http.Request) {
	note, err := s.store.Notes().TogglePin(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Note not found 🔍")
		return
	}
	msg := "Note unpinned"
	if note.IsPinned {
		msg = "Note pinned! 📌"
	}
	respond.OK(w, msg, note)
}

func (s *Server) handleToggleArchive(w http.ResponseWriter, r *http.Request) {
	note, err := s.store.Notes().ToggleArchive(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Note not found 🔍")
		return
	}
	msg := "Note restored! ✨"
	if note.IsArchived {
		msg = "Note archived! 📦"
	}
	respond.OK(w, msg, note)
}

func (s *Server) handleDuplicateNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.notes.Duplicate(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Note not found 🔍")
		return
	}
	respond.Created(w, "Note duplicated! 📋", note)
}
