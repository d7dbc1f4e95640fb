package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sradha-notes/backend/internal/api/respond"
	"github.com/sradha-notes/backend/internal/model"
	"github.com/sradha-notes/backend/internal/services"
)

// --- Moods ---

func (s *Server) handleListMoods(w http.ResponseWriter, r *http.Request) {
	moods, err := s.store.Moods().List(r.Context())
	if err != nil {
		s.fail(w, err, "")
		return
	}
	if moods == nil {
		moods = []*model.Mood{}
	}
	respond.List(w, moods, len(moods))
}

func (s *Server) handleCreateMood(w http.ResponseWriter, r *http.Request) {
	var in model.Mood
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	mood, err := s.store.Moods().Create(r.Context(), &in)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.Created(w, "Mood saved! 💕", mood)
}

func (s *Server) handleMoodStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Moods().Stats(r.Context())
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.OK(w, "", stats)
}

func (s *Server) handleDeleteMood(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Moods().Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err, "Mood not found 🔍")
		return
	}
	respond.OK(w, "Mood deleted! 🗑️", nil)
}

// --- Letters ---

func (s *Server) handleListLetters(w http.ResponseWriter, r *http.Request) {
	letters, err := s.store.Letters().List(r.Context())
	if err != nil {
		s.fail(w, err, "")
		return
	}
	if letters == nil {
		letters = []*model.Letter{}
	}
	respond.List(w, letters, len(letters))
}

func (s *Server) handleCreateLetter(w http.ResponseWriter, r *http.Request) {
	var in model.Letter
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	letter, err := s.store.Letters().Create(r.Context(), &in)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.Created(w, "Letter saved with love! 💌", letter)
}

func (s *Server) handleGetLetter(w http.ResponseWriter, r *http.Request) {
	letter, err := s.store.Letters().GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Letter not found 🔍")
		return
	}
	respond.OK(w, "", letter)
}

func (s *Server) handleMarkLetterRead(w http.ResponseWriter, r *http.Request) {
	letter, err := s.store.Letters().MarkRead(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Letter not found 🔍")
		return
	}
	respond.OK(w, "Letter marked as read! 📬", letter)
}

func (s *Server) handleHeartLetter(w http.ResponseWriter, r *http.Request) {
	letter, err := s.store.Letters().AddHeart(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Letter not found 🔍")
		return
	}
	respond.OK(w, "Heart added! 💕", letter)
}

func (s *Server) handleDeleteLetter(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Letters().Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err, "Letter not found 🔍")
		return
	}
	respond.OK(w, "Letter deleted! 🗑️", nil)
}

// --- Memories ---

func (s *Server) handleListMemories(w http.ResponseWriter, r *http.Request) {
	memories, err := s.store.Memories().List(r.Context())
	if err != nil {
		s.fail(w, err, "")
		return
	}
	if memories == nil {
		memories = []*model.Memory{}
	}
	respond.List(w, memories, len(memories))
}

func (s *Server) handleCreateMemory(w http.ResponseWriter, r *http.Request) {
	var in services.MemoryInput
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	memory, err := s.memories.Create(r.Context(), in)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.Created(w, "Memory saved! 📸", memory)
}

func (s *Server) handleGetMemory(w http.ResponseWriter, r *http.Request) {
	memory, err := s.store.Memories().GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Memory not found 🔍")
		return
	}
	respond.OK(w, "", memory)
}

func (s *Server) handleHeartMemory(w http.ResponseWriter, r *http.Request) {
	memory, err := s.store.Memories().AddHeart(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Memory not found 🔍")
		return
	}
	respond.OK(w, "Heart added! 💕", memory)
}

func (s *Server) handleDeleteMemory(w http.ResponseWriter, r *http.Request) {
	if err := s.memories.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err, "Memory not found 🔍")
		return
	}
	respond.OK(w, "Memory deleted! 🗑️", nil)
}
