package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/career-assessment/internal/catalog"
	"github.com/terra-clan/career-assessment/internal/config"
	"github.com/terra-clan/career-assessment/internal/monitoring"
	"github.com/terra-clan/career-assessment/internal/storage"
	"github.com/terra-clan/career-assessment/internal/workflow"
)

// Recommender is the recommendation client as seen by the API
type Recommender interface {
	workflow.Recommender
	Ready() error
}

// Server represents the HTTP API server
type Server struct {
	config      config.ServerConfig
	router      *chi.Mux
	catalog     *catalog.Catalog
	recommender Recommender
	students    storage.Repository[*workflow.StudentSession]
	editors     storage.Repository[*workflow.Editor]
	metrics     *monitoring.Metrics
}

// NewServer creates a new API server; metrics may be nil
func NewServer(
	cfg config.ServerConfig,
	cat *catalog.Catalog,
	recommender Recommender,
	metrics *monitoring.Metrics,
) *Server {
	s := &Server{
		config:      cfg,
		catalog:     cat,
		recommender: recommender,
		students:    storage.NewMemoryRepository[*workflow.StudentSession](),
		editors:     storage.NewMemoryRepository[*workflow.Editor](),
		metrics:     metrics,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// Close drops every open session
func (s *Server) Close() {
	for _, session := range s.students.List() {
		session.Close()
	}
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}
	r.Use(middleware.Recoverer)

	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	timeout := s.config.RequestTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Catalog
		r.With(middleware.Timeout(timeout)).Route("/assessments", func(r chi.Router) {
			r.Get("/", s.handleListAssessments)
			r.Get("/{type}", s.handleGetAssessment)
		})

		// Student workflow
		r.Route("/student/sessions", func(r chi.Router) {
			r.With(middleware.Timeout(timeout)).Post("/", s.handleCreateStudentSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(s.studentContext)

				// long-lived, outside the request timeout
				r.Get("/watch", s.handleWatchStudentSession)

				r.Group(func(r chi.Router) {
					r.Use(middleware.Timeout(timeout))
					r.Get("/", s.handleGetStudentSession)
					r.Delete("/", s.handleDeleteStudentSession)
					r.Put("/type", s.handleSelectStudentType)
					r.Post("/start", s.handleStartTest)
					r.Put("/answers/{index}", s.handleSetAnswer)
					r.Post("/submit", s.handleSubmit)
				})
			})
		})

		// Catalog editor
		r.With(middleware.Timeout(timeout)).Route("/admin/editors", func(r chi.Router) {
			r.Post("/", s.handleCreateEditor)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(s.editorContext)
				r.Get("/", s.handleGetEditor)
				r.Delete("/", s.handleDeleteEditor)
				r.Put("/type", s.handleSelectEditorType)
				r.Put("/draft", s.handleSetDraft)
				r.Post("/questions", s.handleAddQuestion)
				r.Delete("/questions/{index}", s.handleRemoveQuestion)
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
