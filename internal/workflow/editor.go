package workflow

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/career-assessment/internal/models"
)

// QuestionStore is the catalog surface the editor delegates to
type QuestionStore interface {
	QuestionSource
	AddQuestion(t models.AssessmentType, text string) bool
	RemoveQuestion(t models.AssessmentType, index int) error
}

// Editor is one admin view over the catalog.
// Its selection is independent from every student session.
type Editor struct {
	id        string
	catalog   QuestionStore
	createdAt time.Time

	mu         sync.Mutex
	selected   models.AssessmentType
	draft      string
	lastActive time.Time
}

// NewEditor creates an editor managing the given type
func NewEditor(catalog QuestionStore, t models.AssessmentType) (*Editor, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownAssessmentType, t)
	}
	now := time.Now()
	return &Editor{
		id:         uuid.New().String(),
		catalog:    catalog,
		createdAt:  now,
		selected:   t,
		lastActive: now,
	}, nil
}

// ID returns the editor id
func (e *Editor) ID() string {
	return e.id
}

// LastActive returns the time of the last edit
func (e *Editor) LastActive() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastActive
}

// SelectType changes which assessment is managed
func (e *Editor) SelectType(t models.AssessmentType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownAssessmentType, t)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = t
	e.lastActive = time.Now()
	return nil
}

// SetDraft replaces the pending question text
func (e *Editor) SetDraft(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = text
	e.lastActive = time.Now()
}

// AddQuestion appends the draft to the selected assessment.
// The draft is cleared only when a question was actually added.
func (e *Editor) AddQuestion() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lastActive = time.Now()
	if !e.catalog.AddQuestion(e.selected, e.draft) {
		return false
	}
	e.draft = ""
	return true
}

// RemoveQuestion removes the question at index from the selected assessment
func (e *Editor) RemoveQuestion(index int) error {
	e.mu.Lock()
	t := e.selected
	e.lastActive = time.Now()
	e.mu.Unlock()

	return e.catalog.RemoveQuestion(t, index)
}

// Snapshot returns the current presentation view
func (e *Editor) Snapshot() models.EditorSession {
	e.mu.Lock()
	defer e.mu.Unlock()

	return models.EditorSession{
		ID:           e.id,
		SelectedType: e.selected,
		Draft:        e.draft,
		Questions:    e.catalog.Questions(e.selected),
		CreatedAt:    e.createdAt,
	}
}
