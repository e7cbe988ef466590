package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/terra-clan/career-assessment/internal/api"
	"github.com/terra-clan/career-assessment/internal/catalog"
	"github.com/terra-clan/career-assessment/internal/config"
	"github.com/terra-clan/career-assessment/internal/models"
	"github.com/terra-clan/career-assessment/internal/recommend"
)

type cannedGenerator struct {
	response string
}

func (g cannedGenerator) Generate(context.Context, recommend.GenerateRequest) (string, error) {
	return g.response, nil
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	rec := recommend.NewClient(
		cannedGenerator{response: `{"recommendations":[{"career":"Data Analyst","reason":"Likes numbers."},{"career":"Teacher","reason":"Explains well."}]}`},
		recommend.WithAPIKeySource(func() string { return "key" }),
	)
	srv := api.NewServer(config.ServerConfig{RequestTimeout: 5 * time.Second}, catalog.New(), rec, nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	return NewClient(ts.URL+"/", WithTimeout(5*time.Second))
}

func TestStudentRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if err := c.Health(ctx); err != nil {
		t.Fatalf("Health failed: %v", err)
	}

	session, err := c.CreateStudentSession(ctx, models.AssessmentSkills)
	if err != nil {
		t.Fatalf("CreateStudentSession failed: %v", err)
	}

	started, err := c.StartTest(ctx, session.ID)
	if err != nil {
		t.Fatalf("StartTest failed: %v", err)
	}
	for i := range started.Questions {
		if _, err := c.SetAnswer(ctx, session.ID, i, "8"); err != nil {
			t.Fatalf("SetAnswer(%d) failed: %v", i, err)
		}
	}

	final, err := c.Submit(ctx, session.ID, true)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if final.State.Status != models.RequestSucceeded || len(final.State.Recommendations) != 2 {
		t.Fatalf("unexpected final state %+v", final.State)
	}
	if final.State.Recommendations[0].Career != "Data Analyst" {
		t.Errorf("order not preserved: %+v", final.State.Recommendations)
	}

	if err := c.CloseStudentSession(ctx, session.ID); err != nil {
		t.Fatalf("CloseStudentSession failed: %v", err)
	}

	_, err = c.GetStudentSession(ctx, session.ID)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound || apiErr.Code != "not_found" {
		t.Errorf("expected not_found API error, got %v", err)
	}
}

func TestEditorRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	editor, err := c.CreateEditor(ctx, models.AssessmentPersonality)
	if err != nil {
		t.Fatalf("CreateEditor failed: %v", err)
	}

	if _, err := c.SetDraft(ctx, editor.ID, "Do you enjoy public speaking?"); err != nil {
		t.Fatalf("SetDraft failed: %v", err)
	}
	added, err := c.AddQuestion(ctx, editor.ID)
	if err != nil {
		t.Fatalf("AddQuestion failed: %v", err)
	}
	if !added.Added || len(added.Editor.Questions) != 4 {
		t.Fatalf("unexpected add result %+v", added)
	}

	assessment, err := c.GetAssessment(ctx, models.AssessmentPersonality)
	if err != nil {
		t.Fatalf("GetAssessment failed: %v", err)
	}
	if assessment.QuestionsCount != 4 {
		t.Errorf("expected 4 questions, got %d", assessment.QuestionsCount)
	}

	_, err = c.RemoveQuestion(ctx, editor.ID, 10)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "out_of_range" {
		t.Errorf("expected out_of_range, got %v", err)
	}

	list, err := c.ListAssessments(ctx)
	if err != nil {
		t.Fatalf("ListAssessments failed: %v", err)
	}
	if list.Total != 3 {
		t.Errorf("expected 3 assessments, got %d", list.Total)
	}
}
