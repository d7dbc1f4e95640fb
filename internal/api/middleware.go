package api

import (
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/sradha-notes/backend/internal/api/respond"
)

// recoverMiddleware converts panics into 500 envelopes so a bad handler
// never tears down the server.
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				respond.Fail(w, http.StatusInternalServerError, "Something went wrong 😔", "", s.devMode)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware allows the configured frontend origin. An empty origin
// config allows any caller, which fits local single-user use.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := s.allowedOrigin
		if origin == "" {
			origin = "*"
		}
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogMiddleware logs each request at debug level.
func (s *Server) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r)
	})
}

// authMiddleware requires a valid Bearer token on everything behind it.
// There is only one user, so nothing from the claims needs to travel with
// the request.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respond.Fail(w, http.StatusUnauthorized, "No token provided 🔐", "", s.devMode)
			return
		}
		if _, err := s.auth.Verify(token); err != nil {
			respond.Fail(w, http.StatusUnauthorized, "Invalid token 🔐", "", s.devMode)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
