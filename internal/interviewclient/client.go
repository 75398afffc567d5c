package interviewclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/justsurfingit/job-tracker/internal/dtos"
	"github.com/justsurfingit/job-tracker/internal/practice"
)

// Client calls the interview endpoints of the job tracker API.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ practice.Evaluator = (*Client)(nil)

// New returns a client for baseURL (e.g. http://localhost:8000). Timeouts
// come from the caller's context, so httpClient may be nil.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

func (c *Client) GenerateQuestions(ctx context.Context, jobID string) ([]practice.Question, error) {
	var resp dtos.GenerateQuestionsResponse
	if err := c.post(ctx, "/interview/generate-questions", dtos.GenerateQuestionsRequest{JobID: jobID}, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

func (c *Client) GetFeedback(ctx context.Context, req practice.FeedbackRequest) (*practice.Feedback, error) {
	body := dtos.FeedbackRequest{
		SessionID:        req.SessionID,
		Question:         req.Question,
		Answer:           req.Answer,
		QuestionCategory: string(req.QuestionCategory),
	}

	var resp dtos.FeedbackResponse
	if err := c.post(ctx, "/interview/get-feedback", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchJob looks up the title and company of a tracked job.
func (c *Client) FetchJob(ctx context.Context, jobID string) (practice.Job, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/jobs/"+url.PathEscape(jobID), nil)
	if err != nil {
		return practice.Job{}, fmt.Errorf("error creating request: %w", err)
	}

	var job dtos.JobResponse
	if err := c.do(req, &job); err != nil {
		return practice.Job{}, err
	}
	return practice.Job{ID: jobID, Title: job.Title, Company: job.Company}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	jsonBody, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error unmarshaling response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx reply from the API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: status %d: %s", e.Code, e.Message)
}

// errorMessage pulls "error" out of a gin.H error body, falling back to the
// raw text.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
