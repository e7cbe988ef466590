package api

import (
	"log/slog"
	"net/http"

	"github.com/terra-clan/career-assessment/internal/models"
	"github.com/terra-clan/career-assessment/internal/workflow"
)

func (s *Server) handleCreateEditor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	t := models.AssessmentCareer
	if req.Type != "" {
		parsed, err := models.ParseAssessmentType(string(req.Type))
		if err != nil {
			respondDomainError(w, err)
			return
		}
		t = parsed
	}

	editor, err := workflow.NewEditor(s.catalog, t)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := s.editors.Create(editor); err != nil {
		respondDomainError(w, err)
		return
	}
	s.trackSessions()

	slog.Info("editor opened", "editor_id", editor.ID(), "assessment", t)
	respondJSON(w, http.StatusCreated, editor.Snapshot())
}

func (s *Server) handleGetEditor(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, EditorFromContext(r.Context()).Snapshot())
}

func (s *Server) handleDeleteEditor(w http.ResponseWriter, r *http.Request) {
	editor := EditorFromContext(r.Context())
	if err := s.CloseSession(models.SessionRef{ID: editor.ID(), Kind: models.KindEditor}); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "editor closed",
	})
}

func (s *Server) handleSelectEditorType(w http.ResponseWriter, r *http.Request) {
	editor := EditorFromContext(r.Context())

	var req models.SelectTypeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	t, err := models.ParseAssessmentType(string(req.Type))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := editor.SelectType(t); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, editor.Snapshot())
}

func (s *Server) handleSetDraft(w http.ResponseWriter, r *http.Request) {
	editor := EditorFromContext(r.Context())

	var req models.DraftRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	editor.SetDraft(req.Text)
	respondJSON(w, http.StatusOK, editor.Snapshot())
}

func (s *Server) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	editor := EditorFromContext(r.Context())

	added := editor.AddQuestion()
	respondJSON(w, http.StatusOK, models.AddQuestionResponse{
		Added:  added,
		Editor: editor.Snapshot(),
	})
}

func (s *Server) handleRemoveQuestion(w http.ResponseWriter, r *http.Request) {
	editor := EditorFromContext(r.Context())

	index, err := indexParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "index must be an integer")
		return
	}

	if err := editor.RemoveQuestion(index); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, editor.Snapshot())
}
