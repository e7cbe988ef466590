package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/terra-clan/career-assessment/internal/models"
)

// Client is a Go SDK for the career-assessment API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new career-assessment client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a non-2xx response from the API
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s - %s", e.StatusCode, e.Code, e.Message)
}

// AssessmentList is the catalog listing
type AssessmentList struct {
	Assessments []models.Assessment `json:"assessments"`
	Total       int                 `json:"total"`
}

// ListAssessments returns every assessment with its current questions
func (c *Client) ListAssessments(ctx context.Context) (*AssessmentList, error) {
	var out AssessmentList
	if err := c.call(ctx, http.MethodGet, "/api/v1/assessments", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAssessment returns one assessment
func (c *Client) GetAssessment(ctx context.Context, t models.AssessmentType) (*models.Assessment, error) {
	var out models.Assessment
	if err := c.call(ctx, http.MethodGet, "/api/v1/assessments/"+url.PathEscape(string(t)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStudentSession opens a student view; an empty type selects career
func (c *Client) CreateStudentSession(ctx context.Context, t models.AssessmentType) (*models.StudentSession, error) {
	return c.student(ctx, http.MethodPost, "/api/v1/student/sessions", models.CreateSessionRequest{Type: t})
}

// GetStudentSession returns the current view of a student session
func (c *Client) GetStudentSession(ctx context.Context, id string) (*models.StudentSession, error) {
	return c.student(ctx, http.MethodGet, studentPath(id, ""), nil)
}

// CloseStudentSession discards a student session
func (c *Client) CloseStudentSession(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, studentPath(id, ""), nil, nil)
}

// SelectType changes the assessment type; refused while a test runs
func (c *Client) SelectType(ctx context.Context, id string, t models.AssessmentType) (*models.StudentSession, error) {
	return c.student(ctx, http.MethodPut, studentPath(id, "/type"), models.SelectTypeRequest{Type: t})
}

// StartTest starts or retakes the selected assessment
func (c *Client) StartTest(ctx context.Context, id string) (*models.StudentSession, error) {
	return c.student(ctx, http.MethodPost, studentPath(id, "/start"), nil)
}

// SetAnswer sets the answer at index
func (c *Client) SetAnswer(ctx context.Context, id string, index int, answer string) (*models.StudentSession, error) {
	return c.student(ctx, http.MethodPut, studentPath(id, fmt.Sprintf("/answers/%d", index)), models.AnswerRequest{Answer: answer})
}

// Submit sends the answers for recommendations.
// With wait the call returns once the request has resolved.
func (c *Client) Submit(ctx context.Context, id string, wait bool) (*models.StudentSession, error) {
	path := studentPath(id, "/submit")
	if wait {
		path += "?wait=true"
	}
	return c.student(ctx, http.MethodPost, path, nil)
}

// CreateEditor opens an admin catalog editor
func (c *Client) CreateEditor(ctx context.Context, t models.AssessmentType) (*models.EditorSession, error) {
	return c.editor(ctx, http.MethodPost, "/api/v1/admin/editors", models.CreateSessionRequest{Type: t})
}

// GetEditor returns the current view of an editor
func (c *Client) GetEditor(ctx context.Context, id string) (*models.EditorSession, error) {
	return c.editor(ctx, http.MethodGet, editorPath(id, ""), nil)
}

// CloseEditor discards an editor
func (c *Client) CloseEditor(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, editorPath(id, ""), nil, nil)
}

// SelectEditorType changes which assessment the editor manages
func (c *Client) SelectEditorType(ctx context.Context, id string, t models.AssessmentType) (*models.EditorSession, error) {
	return c.editor(ctx, http.MethodPut, editorPath(id, "/type"), models.SelectTypeRequest{Type: t})
}

// SetDraft sets the pending question text
func (c *Client) SetDraft(ctx context.Context, id, text string) (*models.EditorSession, error) {
	return c.editor(ctx, http.MethodPut, editorPath(id, "/draft"), models.DraftRequest{Text: text})
}

// AddQuestion adds the draft; Added is false for a blank draft
func (c *Client) AddQuestion(ctx context.Context, id string) (*models.AddQuestionResponse, error) {
	var out models.AddQuestionResponse
	if err := c.call(ctx, http.MethodPost, editorPath(id, "/questions"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveQuestion removes the question at index
func (c *Client) RemoveQuestion(ctx context.Context, id string, index int) (*models.EditorSession, error) {
	return c.editor(ctx, http.MethodDelete, editorPath(id, fmt.Sprintf("/questions/%d", index)), nil)
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/health", nil, nil)
}

func studentPath(id, suffix string) string {
	return "/api/v1/student/sessions/" + url.PathEscape(id) + suffix
}

func editorPath(id, suffix string) string {
	return "/api/v1/admin/editors/" + url.PathEscape(id) + suffix
}

func (c *Client) student(ctx context.Context, method, path string, body interface{}) (*models.StudentSession, error) {
	var out models.StudentSession
	if err := c.call(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) editor(ctx context.Context, method, path string, body interface{}) (*models.EditorSession, error) {
	var out models.EditorSession
	if err := c.call(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// call performs a request and decodes the envelope's data into out, if non-nil
func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	status, resp, err := c.doRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}

	var result envelope
	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success {
		apiErr := &APIError{StatusCode: status}
		if result.Error != nil {
			apiErr.Code = result.Error.Code
			apiErr.Message = result.Error.Message
		}
		return apiErr
	}

	if out != nil && len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal data: %w", err)
		}
	}
	return nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 && !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return resp.StatusCode, nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "http_error",
			Message:    strings.TrimSpace(string(respBody)),
		}
	}

	return resp.StatusCode, respBody, nil
}
