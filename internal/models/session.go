package models

import "time"

// RequestStatus represents the lifecycle of one recommendation request
type RequestStatus string

const (
	RequestIdle       RequestStatus = "idle"        // Nothing submitted since the last start
	RequestInProgress RequestStatus = "in_progress" // One call outstanding
	RequestSucceeded  RequestStatus = "succeeded"   // Recommendations available
	RequestFailed     RequestStatus = "failed"      // Error message available
)

// RequestState is the request status together with its payload.
// Recommendations is set only when succeeded, Error only when failed.
type RequestState struct {
	Status          RequestStatus    `json:"status"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Error           string           `json:"error,omitempty"`
}

// IsTerminal returns true if the request has resolved
func (s RequestState) IsTerminal() bool {
	return s.Status == RequestSucceeded || s.Status == RequestFailed
}

// IsInProgress returns true while a call is outstanding
func (s RequestState) IsInProgress() bool {
	return s.Status == RequestInProgress
}

// StudentSession is the presentation view of one student's workflow
type StudentSession struct {
	ID           string         `json:"id"`
	SelectedType AssessmentType `json:"selected_type"`
	TestStarted  bool           `json:"test_started"`
	Questions    []string       `json:"questions"`
	Answers      []string       `json:"answers"`
	State        RequestState   `json:"state"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// EditorSession is the presentation view of one admin catalog editor
type EditorSession struct {
	ID           string         `json:"id"`
	SelectedType AssessmentType `json:"selected_type"`
	Draft        string         `json:"draft"`
	Questions    []string       `json:"questions"`
	CreatedAt    time.Time      `json:"created_at"`
}

// Session kinds
const (
	KindStudent = "student"
	KindEditor  = "editor"
)

// SessionRef identifies one live session for housekeeping
type SessionRef struct {
	ID         string
	Kind       string
	LastActive time.Time
}

// CreateSessionRequest opens a student or editor view
type CreateSessionRequest struct {
	Type AssessmentType `json:"type,omitempty"`
}

// SelectTypeRequest changes the selected assessment type
type SelectTypeRequest struct {
	Type AssessmentType `json:"type"`
}

// AnswerRequest sets the answer at one position
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// DraftRequest sets the editor's pending question text
type DraftRequest struct {
	Text string `json:"text"`
}

// AddQuestionResponse is returned after the editor tries to add its draft
type AddQuestionResponse struct {
	Added  bool          `json:"added"`
	Editor EditorSession `json:"editor"`
}
