package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// studentContext resolves {id} to a student session
func (s *Server) studentContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		session, err := s.students.Get(id)
		if err != nil {
			slog.Debug("student session lookup failed", "session_id", id, "error", err)
			respondDomainError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithStudent(r.Context(), session)))
	})
}

// editorContext resolves {id} to an editor
func (s *Server) editorContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		editor, err := s.editors.Get(id)
		if err != nil {
			slog.Debug("editor lookup failed", "editor_id", id, "error", err)
			respondDomainError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithEditor(r.Context(), editor)))
	})
}
