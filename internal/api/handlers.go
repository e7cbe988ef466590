package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/career-assessment/internal/catalog"
	"github.com/terra-clan/career-assessment/internal/models"
	"github.com/terra-clan/career-assessment/internal/storage"
	"github.com/terra-clan/career-assessment/internal/workflow"
)

// errTestInProgress locks the student's type selector while a test runs
var errTestInProgress = errors.New("cannot change assessment type while a test is in progress")

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondDomainError maps workflow and catalog errors to HTTP statuses
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownAssessmentType):
		respondError(w, http.StatusBadRequest, "invalid_type", err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "session not found")
	case errors.Is(err, errTestInProgress):
		respondError(w, http.StatusConflict, "test_in_progress", err.Error())
	case errors.Is(err, workflow.ErrSubmissionInProgress):
		respondError(w, http.StatusConflict, "submission_in_progress", err.Error())
	case errors.Is(err, workflow.ErrTestNotStarted):
		respondError(w, http.StatusConflict, "test_not_started", err.Error())
	case errors.Is(err, workflow.ErrAnswerOutOfRange), errors.Is(err, catalog.ErrOutOfRange):
		respondError(w, http.StatusUnprocessableEntity, "out_of_range", err.Error())
	default:
		slog.Error("unhandled error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeBody decodes an optional JSON body; an empty body leaves v untouched
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func indexParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Recommendations cannot be served without a credential
	if err := s.recommender.Ready(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "not_ready", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

// Assessment handlers

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	assessments := s.catalog.List()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"assessments": assessments,
		"total":       len(assessments),
	})
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	t, err := models.ParseAssessmentType(chi.URLParam(r, "type"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, s.catalog.Assessment(t))
}

func (s *Server) trackSessions() {
	if s.metrics == nil {
		return
	}
	s.metrics.ActiveSessions.WithLabelValues(models.KindStudent).Set(float64(s.students.Len()))
	s.metrics.ActiveSessions.WithLabelValues(models.KindEditor).Set(float64(s.editors.Len()))
}
