package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAssessmentType is returned when a value is not one of the fixed assessment types
var ErrUnknownAssessmentType = errors.New("unknown assessment type")

// AssessmentType identifies one of the fixed questionnaires
type AssessmentType string

const (
	AssessmentCareer      AssessmentType = "career"
	AssessmentPersonality AssessmentType = "personality"
	AssessmentSkills      AssessmentType = "skills"
)

// AllAssessmentTypes lists the assessment types in display order
var AllAssessmentTypes = []AssessmentType{
	AssessmentCareer,
	AssessmentPersonality,
	AssessmentSkills,
}

// ParseAssessmentType converts a raw value into an AssessmentType
func ParseAssessmentType(s string) (AssessmentType, error) {
	t := AssessmentType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAssessmentType, s)
	}
	return t, nil
}

// Valid reports whether t is one of the fixed assessment types
func (t AssessmentType) Valid() bool {
	switch t {
	case AssessmentCareer, AssessmentPersonality, AssessmentSkills:
		return true
	}
	return false
}

// Title returns the display name used by the selector
func (t AssessmentType) Title() string {
	switch t {
	case AssessmentCareer:
		return "Career Test"
	case AssessmentPersonality:
		return "Personality Test"
	case AssessmentSkills:
		return "Skills Evaluation"
	}
	return string(t)
}

// Assessment is the ordered question list of one assessment type
type Assessment struct {
	Type           AssessmentType `json:"type"`
	Title          string         `json:"title"`
	Questions      []string       `json:"questions"`
	QuestionsCount int            `json:"questions_count"`
}

// Recommendation is one AI-suggested career with its justification
type Recommendation struct {
	Career string `json:"career"`
	Reason string `json:"reason"`
}
