package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/terra-clan/career-assessment/internal/models"
	"github.com/terra-clan/career-assessment/internal/workflow"
)

func (s *Server) handleCreateStudentSession(w http.ResponseWriter, r *http.Request) {
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

	session, err := workflow.NewStudentSession(s.catalog, s.recommender, t)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if err := s.students.Create(session); err != nil {
		respondDomainError(w, err)
		return
	}
	s.trackSessions()

	slog.Info("student session created", "session_id", session.ID(), "assessment", t)
	respondJSON(w, http.StatusCreated, session.Snapshot())
}

func (s *Server) handleGetStudentSession(w http.ResponseWriter, r *http.Request) {
	session := StudentFromContext(r.Context())
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (s *Server) handleDeleteStudentSession(w http.ResponseWriter, r *http.Request) {
	session := StudentFromContext(r.Context())
	if err := s.CloseSession(models.SessionRef{ID: session.ID(), Kind: models.KindStudent}); err != nil {
		respondDomainError(w, err)
		return
	}

	slog.Info("student session closed", "session_id", session.ID())
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "session closed",
	})
}

func (s *Server) handleSelectStudentType(w http.ResponseWriter, r *http.Request) {
	session := StudentFromContext(r.Context())

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

	// The selector is locked for the duration of a test
	if session.Started() {
		respondDomainError(w, errTestInProgress)
		return
	}

	if err := session.SelectType(t); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (s *Server) handleStartTest(w http.ResponseWriter, r *http.Request) {
	session := StudentFromContext(r.Context())
	if err := session.StartTest(); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (s *Server) handleSetAnswer(w http.ResponseWriter, r *http.Request) {
	session := StudentFromContext(r.Context())

	index, err := indexParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", "index must be an integer")
		return
	}

	var req models.AnswerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := session.SetAnswer(index, req.Answer); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session := StudentFromContext(r.Context())

	pending, err := session.Submit(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	if !wait {
		respondJSON(w, http.StatusAccepted, session.Snapshot())
		return
	}

	if _, err := pending.Wait(r.Context()); err != nil {
		// The call keeps running; the client can poll or watch for the result
		slog.Warn("stopped waiting for recommendations", "session_id", session.ID(), "error", err)
		respondJSON(w, http.StatusAccepted, session.Snapshot())
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}
