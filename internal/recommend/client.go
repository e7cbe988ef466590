package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/terra-clan/career-assessment/internal/models"
)

// Common errors
var (
	ErrAPIKeyNotSet  = errors.New("API key not set")
	ErrRequestFailed = errors.New("recommendation request failed")
)

// RequestFailedMessage is shown to students for every failure except a missing key
const RequestFailedMessage = "Failed to get recommendations from AI. Please check your API key and try again."

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.5-flash"

// DefaultAPIKeyEnv names the environment variable holding the credential
const DefaultAPIKeyEnv = "API_KEY"

// Outcome labels reported to the observer
const (
	OutcomeSuccess     = "success"
	OutcomeConfigError = "config_error"
	OutcomeFailed      = "failed"
)

// UserMessage maps a recommendation error to the text shown to the student.
// A missing key is actionable and surfaced verbatim; any other cause is hidden.
func UserMessage(err error) string {
	if errors.Is(err, ErrAPIKeyNotSet) {
		return ErrAPIKeyNotSet.Error()
	}
	return RequestFailedMessage
}

// GenerateRequest is one single-shot structured generation call
type GenerateRequest struct {
	APIKey      string
	Model       string
	Prompt      string
	Schema      *genai.Schema
	Temperature float32
}

// Generator performs the generate-content call and returns the raw response text
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// ObserverFunc receives the outcome and duration of every Recommend call
type ObserverFunc func(t models.AssessmentType, outcome string, elapsed time.Duration)

// Client turns a completed assessment into validated recommendations
type Client struct {
	generator Generator
	model     string
	apiKey    func() string
	observe   ObserverFunc
}

// Option configures the client
type Option func(*Client)

// WithModel sets the model id
func WithModel(model string) Option {
	return func(c *Client) {
		if model = strings.TrimSpace(model); model != "" {
			c.model = model
		}
	}
}

// WithAPIKeyEnv reads the credential from the named environment variable on every call
func WithAPIKeyEnv(name string) Option {
	return func(c *Client) {
		if name == "" {
			name = DefaultAPIKeyEnv
		}
		c.apiKey = func() string { return os.Getenv(name) }
	}
}

// WithAPIKeySource overrides where the credential comes from
func WithAPIKeySource(source func() string) Option {
	return func(c *Client) {
		c.apiKey = source
	}
}

// WithObserver registers a callback for request outcomes
func WithObserver(fn ObserverFunc) Option {
	return func(c *Client) {
		c.observe = fn
	}
}

// NewClient creates a recommendation client on top of a generator
func NewClient(generator Generator, opts ...Option) *Client {
	c := &Client{
		generator: generator,
		model:     DefaultModel,
	}
	WithAPIKeyEnv(DefaultAPIKeyEnv)(c)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Ready reports whether a credential is currently configured
func (c *Client) Ready() error {
	if strings.TrimSpace(c.apiKey()) == "" {
		return ErrAPIKeyNotSet
	}
	return nil
}

// Recommend requests career recommendations for one set of answers.
// It makes a single attempt; errors wrap ErrAPIKeyNotSet or ErrRequestFailed.
func (c *Client) Recommend(ctx context.Context, t models.AssessmentType, questions, answers []string) ([]models.Recommendation, error) {
	start := time.Now()

	key := strings.TrimSpace(c.apiKey())
	if key == "" {
		c.report(t, OutcomeConfigError, start)
		return nil, ErrAPIKeyNotSet
	}

	text, err := c.generator.Generate(ctx, GenerateRequest{
		APIKey:      key,
		Model:       c.model,
		Prompt:      BuildPrompt(t, questions, answers),
		Schema:      ResponseSchema(),
		Temperature: Temperature,
	})
	if err != nil {
		slog.Error("recommendation call failed", "error", err, "assessment", t, "model", c.model)
		c.report(t, OutcomeFailed, start)
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	recs, err := ParseResponse(text)
	if err != nil {
		slog.Error("invalid recommendation response", "error", err, "assessment", t, "model", c.model)
		c.report(t, OutcomeFailed, start)
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	slog.Info("recommendations received",
		"assessment", t,
		"count", len(recs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	c.report(t, OutcomeSuccess, start)
	return recs, nil
}

func (c *Client) report(t models.AssessmentType, outcome string, start time.Time) {
	if c.observe != nil {
		c.observe(t, outcome, time.Since(start))
	}
}
