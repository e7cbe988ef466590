package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/career-assessment/internal/models"
	"github.com/terra-clan/career-assessment/internal/recommend"
)

// Common errors
var (
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
	ErrTestNotStarted       = errors.New("no test has been started")
	ErrAnswerOutOfRange     = errors.New("answer index out of range")
)

// QuestionSource provides the current question list for an assessment type
type QuestionSource interface {
	Questions(t models.AssessmentType) []string
}

// Recommender turns a completed assessment into recommendations
type Recommender interface {
	Recommend(ctx context.Context, t models.AssessmentType, questions, answers []string) ([]models.Recommendation, error)
}

// StudentSession drives one student through select, start, answer and submit.
// All methods are safe for concurrent use.
type StudentSession struct {
	id          string
	catalog     QuestionSource
	recommender Recommender
	createdAt   time.Time

	mu        sync.Mutex
	selected  models.AssessmentType
	started   bool
	questions []string
	answers   []string
	state     models.RequestState
	updatedAt time.Time

	subscribers map[int]chan models.StudentSession
	nextSub     int
}

// NewStudentSession creates an idle session with the given type selected
func NewStudentSession(catalog QuestionSource, recommender Recommender, t models.AssessmentType) (*StudentSession, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownAssessmentType, t)
	}

	now := time.Now()
	return &StudentSession{
		id:          uuid.New().String(),
		catalog:     catalog,
		recommender: recommender,
		createdAt:   now,
		selected:    t,
		questions:   []string{},
		answers:     []string{},
		state:       models.RequestState{Status: models.RequestIdle},
		updatedAt:   now,
		subscribers: make(map[int]chan models.StudentSession),
	}, nil
}

// ID returns the session id
func (s *StudentSession) ID() string {
	return s.id
}

// Started reports whether a test is running
func (s *StudentSession) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// LastActive returns the time of the last transition
func (s *StudentSession) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// InProgress reports whether a submission is outstanding
func (s *StudentSession) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsInProgress()
}

// SelectType changes the selected assessment type.
// Locking the selector during a test is up to the presentation layer.
func (s *StudentSession) SelectType(t models.AssessmentType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownAssessmentType, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = t
	s.touchLocked()
	return nil
}

// StartTest snapshots the selected assessment and resets answers and results.
// It is refused while a submission is outstanding.
func (s *StudentSession) StartTest() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsInProgress() {
		return ErrSubmissionInProgress
	}

	s.questions = s.catalog.Questions(s.selected)
	s.answers = make([]string, len(s.questions))
	s.started = true
	s.state = models.RequestState{Status: models.RequestIdle}
	s.touchLocked()

	slog.Info("test started",
		"session_id", s.id,
		"assessment", s.selected,
		"questions", len(s.questions),
	)
	return nil
}

// SetAnswer replaces the answer at one position
func (s *StudentSession) SetAnswer(index int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrTestNotStarted
	}
	if index < 0 || index >= len(s.answers) {
		return fmt.Errorf("%w: index %d, test has %d questions", ErrAnswerOutOfRange, index, len(s.answers))
	}

	s.answers[index] = answer
	s.touchLocked()
	return nil
}

// Submit launches the single recommendation call for the running test.
// The call is detached from ctx: cancellation is not supported and a
// submitted request always runs to completion.
func (s *StudentSession) Submit(ctx context.Context) (*Pending, error) {
	s.mu.Lock()
	if s.state.IsInProgress() {
		s.mu.Unlock()
		return nil, ErrSubmissionInProgress
	}
	if !s.started {
		s.mu.Unlock()
		return nil, ErrTestNotStarted
	}

	t := s.selected
	questions := append([]string(nil), s.questions...)
	answers := append([]string(nil), s.answers...)

	s.state = models.RequestState{Status: models.RequestInProgress}
	s.touchLocked()
	s.mu.Unlock()

	slog.Info("submission started", "session_id", s.id, "assessment", t)

	p := &Pending{done: make(chan struct{})}
	go s.run(context.WithoutCancel(ctx), p, t, questions, answers)
	return p, nil
}

func (s *StudentSession) run(ctx context.Context, p *Pending, t models.AssessmentType, questions, answers []string) {
	recs, err := s.recommender.Recommend(ctx, t, questions, answers)

	var state models.RequestState
	if err != nil {
		state = models.RequestState{
			Status: models.RequestFailed,
			Error:  recommend.UserMessage(err),
		}
		slog.Warn("submission failed", "session_id", s.id, "error", err)
	} else {
		state = models.RequestState{
			Status:          models.RequestSucceeded,
			Recommendations: recs,
		}
		slog.Info("submission succeeded", "session_id", s.id, "recommendations", len(recs))
	}

	s.mu.Lock()
	s.state = state
	s.started = false
	s.touchLocked()
	s.mu.Unlock()

	p.state = state
	close(p.done)
}

// Snapshot returns the current presentation view
func (s *StudentSession) Snapshot() models.StudentSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel receiving a snapshot after every transition.
// Slow readers only see the latest snapshot. The returned func unsubscribes.
func (s *StudentSession) Subscribe() (<-chan models.StudentSession, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan models.StudentSession, 1)
	ch <- s.snapshotLocked()
	s.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subscribers[id]; ok {
				delete(s.subscribers, id)
				close(ch)
			}
		})
	}
}

// Close drops all subscribers
func (s *StudentSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
}

func (s *StudentSession) touchLocked() {
	s.updatedAt = time.Now()
	if len(s.subscribers) == 0 {
		return
	}

	snap := s.snapshotLocked()
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (s *StudentSession) snapshotLocked() models.StudentSession {
	state := s.state
	if state.Recommendations != nil {
		state.Recommendations = append([]models.Recommendation(nil), state.Recommendations...)
	}

	return models.StudentSession{
		ID:           s.id,
		SelectedType: s.selected,
		TestStarted:  s.started,
		Questions:    append([]string{}, s.questions...),
		Answers:      append([]string{}, s.answers...),
		State:        state,
		CreatedAt:    s.createdAt,
		UpdatedAt:    s.updatedAt,
	}
}

// Pending is the outstanding recommendation call of one submission
type Pending struct {
	done  chan struct{}
	state models.RequestState
}

// Done is closed when the call has resolved
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call resolves or ctx ends.
// Giving up on Wait does not abort the call.
func (p *Pending) Wait(ctx context.Context) (models.RequestState, error) {
	select {
	case <-p.done:
		return p.state, nil
	case <-ctx.Done():
		return models.RequestState{}, ctx.Err()
	}
}
