package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/sradha-notes/backend/internal/api/respond"
)

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, "💕 Welcome to Sradha's Notes API! 💕", map[string]string{
		"health": "/health",
		"api":    "/api",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.HealthPing(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("health check failed")
		respond.Fail(w, http.StatusServiceUnavailable, "Database unreachable", err.Error(), s.devMode)
		return
	}
	respond.OK(w, "Server is running with love 💖", map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Auth ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	token, user, err := s.auth.Login(in.Username, in.Password)
	if err != nil {
		respond.Fail(w, http.StatusUnauthorized, "Oops! Wrong credentials, my love 💔", "", s.devMode)
		return
	}
	respond.OK(w, "Welcome back, beautiful! 💕", map[string]any{
		"token": token,
		"user":  user,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respond.Fail(w, http.StatusUnauthorized, "No token provided 🔐", "", s.devMode)
		return
	}
	user, err := s.auth.Verify(token)
	if err != nil {
		respond.Fail(w, http.StatusUnauthorized, "Invalid token 🔐", "", s.devMode)
		return
	}
	respond.OK(w, "Token is valid! ✨", map[string]any{"user": user})
}

// handleLogout is a stateless acknowledgement; tokens expire on their own
// and the client simply discards its copy.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, "Logged out successfully! See you soon 💕", nil)
}

// --- Upload ---

const maxUploadBytes = 10 << 20

type uploadedImage struct {
	URL        string `json:"url"`
	ExternalID string `json:"externalId"`
}

// handleUploadImage accepts a single file in the "image" multipart field.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Fail(w, http.StatusBadRequest, "No image file provided 📷", err.Error(), s.devMode)
		return
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		respond.Fail(w, http.StatusBadRequest, "No image file provided 📷", "", s.devMode)
		return
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		s.fail(w, err, "")
		return
	}
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	_ = f.Close()
	if err != nil {
		s.fail(w, err, "")
		return
	}
	asset, err := s.media.UploadRaw(r.Context(), data, fh.Header.Get("Content-Type"))
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.OK(w, "Image uploaded successfully! 📸", uploadedImage{URL: asset.URL, ExternalID: asset.ExternalID})
}

// handleUploadBase64 accepts {"image": "data:...;base64,..."}.
func (s *Server) handleUploadBase64(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Image string `json:"image"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	if in.Image == "" {
		respond.Fail(w, http.StatusBadRequest, "No image data provided 📷", "", s.devMode)
		return
	}
	asset, err := s.media.UploadDataURI(r.Context(), in.Image)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	respond.OK(w, "Image uploaded successfully! 📸", uploadedImage{URL: asset.URL, ExternalID: asset.ExternalID})
}

// handleUploadMultiple uploads a batch of base64 images one at a time. A
// failure part-way returns an error; images already uploaded stay hosted.
func (s *Server) handleUploadMultiple(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Images []string `json:"images"`
	}
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, err, "")
		return
	}
	if len(in.Images) == 0 {
		respond.Fail(w, http.StatusBadRequest, "No images provided 📷", "", s.devMode)
		return
	}
	out := make([]uploadedImage, 0, len(in.Images))
	for _, img := range in.Images {
		asset, err := s.media.UploadDataURI(r.Context(), img)
		if err != nil {
			s.fail(w, err, "")
			return
		}
		out = append(out, uploadedImage{URL: asset.URL, ExternalID: asset.ExternalID})
	}
	respond.OK(w, fmt.Sprintf("%d images uploaded successfully! 📸", len(out)), out)
}

func (s *Server) handleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	externalID := mux.Vars(r)["externalId"]
	if err := s.media.Delete(r.Context(), externalID); err != nil {
		s.fail(w, err, "")
		return
	}
	respond.OK(w, "Image deleted successfully! 🗑️", nil)
}
