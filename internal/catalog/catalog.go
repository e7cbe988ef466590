package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/terra-clan/career-assessment/internal/models"
)

// ErrOutOfRange is returned when a question index does not address an existing question
var ErrOutOfRange = errors.New("question index out of range")

// Catalog holds the question lists of the three assessments.
// It is the single source of truth shared by student sessions and editors.
type Catalog struct {
	mu        sync.RWMutex
	questions map[models.AssessmentType][]string
}

// New creates a catalog seeded with the built-in default questions
func New() *Catalog {
	c := &Catalog{
		questions: make(map[models.AssessmentType][]string, len(models.AllAssessmentTypes)),
	}
	for t, qs := range DefaultQuestions() {
		c.questions[t] = append([]string(nil), qs...)
	}
	return c
}

// DefaultQuestions returns the built-in questions for every assessment type
func DefaultQuestions() map[models.AssessmentType][]string {
	return map[models.AssessmentType][]string{
		models.AssessmentCareer: {
			"Do you enjoy solving complex problems?",
			"Are you more interested in working with technology, people, or ideas?",
			"What is your ideal work environment (e.g., fast-paced, collaborative, quiet)?",
		},
		models.AssessmentPersonality: {
			"Do you prefer working alone or in a team?",
			"Are you more of a big-picture thinker or detail-oriented?",
			"How do you handle stress and pressure?",
		},
		models.AssessmentSkills: {
			"On a scale of 1-10, rate your communication skills.",
			"On a scale of 1-10, rate your technical/coding skills.",
			"On a scale of 1-10, rate your leadership abilities.",
		},
	}
}

// Questions returns a copy of the current question list for t
func (c *Catalog) Questions(t models.AssessmentType) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	qs := c.questions[t]
	out := make([]string, len(qs))
	copy(out, qs)
	return out
}

// Assessment returns a snapshot of one assessment
func (c *Catalog) Assessment(t models.AssessmentType) models.Assessment {
	qs := c.Questions(t)
	return models.Assessment{
		Type:           t,
		Title:          t.Title(),
		Questions:      qs,
		QuestionsCount: len(qs),
	}
}

// List returns snapshots of all assessments in display order
func (c *Catalog) List() []models.Assessment {
	result := make([]models.Assessment, 0, len(models.AllAssessmentTypes))
	for _, t := range models.AllAssessmentTypes {
		result = append(result, c.Assessment(t))
	}
	return result
}

// AddQuestion appends the trimmed text to the list of t.
// Blank text is a no-op; the return value reports whether a question was added.
func (c *Catalog) AddQuestion(t models.AssessmentType, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	c.mu.Lock()
	c.questions[t] = append(c.questions[t], text)
	count := len(c.questions[t])
	c.mu.Unlock()

	slog.Info("question added", "assessment", t, "questions", count)
	return true
}

// RemoveQuestion deletes the question at index from the list of t.
// The list is left untouched when index is out of range.
func (c *Catalog) RemoveQuestion(t models.AssessmentType, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	qs := c.questions[t]
	if index < 0 || index >= len(qs) {
		return fmt.Errorf("%w: index %d, %s has %d questions", ErrOutOfRange, index, t, len(qs))
	}

	// Copy rather than splice in place so earlier snapshots stay intact
	next := make([]string, 0, len(qs)-1)
	next = append(next, qs[:index]...)
	next = append(next, qs[index+1:]...)
	c.questions[t] = next

	slog.Info("question removed", "assessment", t, "index", index, "questions", len(next))
	return nil
}

// replace swaps the whole list of t, used by the seed loader
func (c *Catalog) replace(t models.AssessmentType, qs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions[t] = qs
}
