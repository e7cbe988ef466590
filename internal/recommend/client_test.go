package recommend

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/terra-clan/career-assessment/internal/models"
)

type fakeGenerator struct {
	mu       sync.Mutex
	calls    int
	last     GenerateRequest
	response string
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, req GenerateRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	return f.response, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func staticKey(key string) Option {
	return WithAPIKeySource(func() string { return key })
}

func TestRecommendWithoutKeyMakesNoCall(t *testing.T) {
	gen := &fakeGenerator{response: fiveRecommendations()}
	var outcomes []string
	client := NewClient(gen, staticKey("  "), WithObserver(func(_ models.AssessmentType, outcome string, _ time.Duration) {
		outcomes = append(outcomes, outcome)
	}))

	recs, err := client.Recommend(context.Background(), models.AssessmentCareer, []string{"Q"}, []string{"A"})
	if !errors.Is(err, ErrAPIKeyNotSet) {
		t.Fatalf("expected ErrAPIKeyNotSet, got %v", err)
	}
	if recs != nil {
		t.Errorf("expected no recommendations, got %+v", recs)
	}
	if gen.callCount() != 0 {
		t.Errorf("expected no generator calls, got %d", gen.callCount())
	}
	if len(outcomes) != 1 || outcomes[0] != OutcomeConfigError {
		t.Errorf("expected config_error outcome, got %v", outcomes)
	}
	if UserMessage(err) != "API key not set" {
		t.Errorf("unexpected user message %q", UserMessage(err))
	}
}

func TestRecommendReadsKeyFromEnvironment(t *testing.T) {
	t.Setenv("CAREER_TEST_KEY", "")
	gen := &fakeGenerator{response: fiveRecommendations()}
	client := NewClient(gen, WithAPIKeyEnv("CAREER_TEST_KEY"))

	if _, err := client.Recommend(context.Background(), models.AssessmentCareer, nil, nil); !errors.Is(err, ErrAPIKeyNotSet) {
		t.Fatalf("expected ErrAPIKeyNotSet, got %v", err)
	}

	if err := client.Ready(); !errors.Is(err, ErrAPIKeyNotSet) {
		t.Errorf("expected not ready without key, got %v", err)
	}

	t.Setenv("CAREER_TEST_KEY", "secret")
	if err := client.Ready(); err != nil {
		t.Errorf("expected ready with key, got %v", err)
	}
	if _, err := client.Recommend(context.Background(), models.AssessmentCareer, nil, nil); err != nil {
		t.Fatalf("expected success once key is set, got %v", err)
	}
	if gen.last.APIKey != "secret" {
		t.Errorf("expected key from env, got %q", gen.last.APIKey)
	}
}

func TestRecommendCareerScenario(t *testing.T) {
	gen := &fakeGenerator{
		response: `{"recommendations":[{"career":"Software Engineer","reason":"Enjoys complex problem solving."}]}`,
	}
	client := NewClient(gen, staticKey("key"), WithModel("test-model"))

	questions := []string{"Do you enjoy solving complex problems?"}
	answers := []string{"Yes, very much"}

	recs, err := client.Recommend(context.Background(), models.AssessmentCareer, questions, answers)
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Career != "Software Engineer" || recs[0].Reason != "Enjoys complex problem solving." {
		t.Errorf("unexpected recommendation %+v", recs[0])
	}

	req := gen.last
	if req.Model != "test-model" {
		t.Errorf("expected model test-model, got %q", req.Model)
	}
	if req.Temperature != Temperature {
		t.Errorf("expected temperature %v, got %v", Temperature, req.Temperature)
	}
	if req.Schema == nil || len(req.Schema.Required) == 0 || req.Schema.Required[0] != "recommendations" {
		t.Errorf("expected schema requiring recommendations, got %+v", req.Schema)
	}
	if !strings.Contains(req.Prompt, "Question: Do you enjoy solving complex problems?\nAnswer: Yes, very much") {
		t.Errorf("prompt missing answered question:\n%s", req.Prompt)
	}
	if !strings.Contains(req.Prompt, "Assessment Type: career") {
		t.Errorf("prompt missing assessment type:\n%s", req.Prompt)
	}
}

func TestRecommendFailures(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"transport error", &fakeGenerator{err: errors.New("connection refused")}},
		{"malformed output", &fakeGenerator{response: `{"recommendations":[{"career":"Chef"}]}`}},
		{"not json", &fakeGenerator{response: "I think you should be a chef."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var outcome string
			client := NewClient(tt.gen, staticKey("key"), WithObserver(func(_ models.AssessmentType, o string, _ time.Duration) {
				outcome = o
			}))

			recs, err := client.Recommend(context.Background(), models.AssessmentSkills, []string{"Q"}, []string{"A"})
			if !errors.Is(err, ErrRequestFailed) {
				t.Fatalf("expected ErrRequestFailed, got %v", err)
			}
			if recs != nil {
				t.Errorf("expected no partial data, got %+v", recs)
			}
			if tt.gen.callCount() != 1 {
				t.Errorf("expected exactly one attempt, got %d", tt.gen.callCount())
			}
			if outcome != OutcomeFailed {
				t.Errorf("expected failed outcome, got %q", outcome)
			}
			if UserMessage(err) != RequestFailedMessage {
				t.Errorf("unexpected user message %q", UserMessage(err))
			}
		})
	}
}
