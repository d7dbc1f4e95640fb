package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sradha-notes/backend/internal/api/respond"
	"github.com/sradha-notes/backend/internal/model"
)

// --- Sections ---

func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := s.store.Sections().List(r.Context())
	if err != nil {
		s.fail(w, err, "")
		return
	}
	if sections == nil {
		sections = []*model.StudySection{}
	}
	respond.List(w, sections, len(sections))
}

func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	var in model.StudySection
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	section, err := s.store.Sections().Create(r.Context(), &in)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.Created(w, "Section created! 📁", section)
}

func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name  *string `json:"name"`
		Emoji *string `json:"emoji"`
		Color *string `json:"color"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	section, err := s.store.Sections().Update(r.Context(), mux.Vars(r)["id"], model.SectionUpdate{
		Name: in.Name, Emoji: in.Emoji, Color: in.Color,
	})
	if err != nil {
		s.fail(w, err, "Section not found 🔍")
		return
	}
	respond.OK(w, "Section updated! ✨", section)
}

func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.study.DeleteSection(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "Section not found 🔍")
		return
	}
	respond.OK(w, "Section and all its PDFs deleted! 🗑️", map[string]int64{"deletedPdfs": deleted})
}

// --- PDFs ---

func (s *Server) handleListPdfs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.PdfFilter{
		SectionID: q.Get("sectionId"),
		Favorite:  q.Get("favorite") == "true",
	}
	pdfs, err := s.store.Pdfs().List(r.Context(), f)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.List(w, pdfs, len(pdfs))
}

func (s *Server) handleCreatePdf(w http.ResponseWriter, r *http.Request) {
	var in model.StudyPdf
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	pdf, err := s.study.CreatePdf(r.Context(), &in)
	if err != nil {
		s.fail(w, err, "Section not found 🔍")
		return
	}
	// The payload just came over the wire; no need to echo it back.
	stripped := *pdf
	stripped.FileData = ""
	respond.Created(w, "PDF uploaded successfully! 📄", &stripped)
}

func (s *Server) handleGetPdf(w http.ResponseWriter, r *http.Request) {
	pdf, err := s.store.Pdfs().GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "PDF not found 🔍")
		return
	}
	respond.OK(w, "", pdf)
}

func (s *Server) handleUpdatePdf(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name       *string `json:"name"`
		LastPage   *int    `json:"lastPage"`
		TotalPages *int    `json:"totalPages"`
		IsFavorite *bool   `json:"isFavorite"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	pdf, err := s.store.Pdfs().Update(r.Context(), mux.Vars(r)["id"], model.PdfUpdate{
		Name: in.Name, LastPage: in.LastPage, TotalPages: in.TotalPages, IsFavorite: in.IsFavorite,
	})
	if err != nil {
		s.fail(w, err, "PDF not found 🔍")
		return
	}
	respond.OK(w, "PDF updated! ✨", pdf)
}

func (s *Server) handleTogglePdfFavorite(w http.ResponseWriter, r *http.Request) {
	fav, err := s.store.Pdfs().ToggleFavorite(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, err, "PDF not found 🔍")
		return
	}
	msg := "Removed from favorites"
	if fav {
		msg = "Added to favorites! ⭐"
	}
	respond.OK(w, msg, map[string]bool{"isFavorite": fav})
}

func (s *Server) handleDeletePdf(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Pdfs().Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.fail(w, err, "PDF not found 🔍")
		return
	}
	respond.OK(w, "PDF deleted! 🗑️", nil)
}
