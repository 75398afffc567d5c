package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/justsurfingit/job-tracker/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/googleai/vertex"
	"google.golang.org/api/googleapi"
)

type LLMService struct {
	// Held here so the client is not recreated on every call
	Client        llms.Model
	Temperature   float64
	MaxInputChars int

	// Attempts per prompt; transient API errors are retried with backoff.
	Attempts   int
	RetryDelay time.Duration
}

// NewLLMService initializes the Gemini client for the configured provider:
// "googleai" uses an API key, "vertex" uses application default credentials.
func NewLLMService(ctx context.Context, cfg *config.Config) (*LLMService, error) {
	var (
		client llms.Model
		err    error
	)

	switch cfg.LLMProvider {
	case "vertex":
		client, err = vertex.New(ctx,
			googleai.WithCloudProject(cfg.CloudProject),
			googleai.WithCloudLocation(cfg.CloudLocation),
			googleai.WithDefaultModel(cfg.GeminiModel),
		)
	default:
		client, err = googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.GeminiModel),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	log.Printf("🤖 LLM ready (%s, %s)", cfg.LLMProvider, cfg.GeminiModel)
	s := NewLLMServiceWithModel(client, cfg.Interview)
	s.Attempts = 3
	s.RetryDelay = time.Second
	return s, nil
}

// NewLLMServiceWithModel wraps an existing model, e.g. a stub in tests.
func NewLLMServiceWithModel(client llms.Model, iv config.Interview) *LLMService {
	return &LLMService{
		Client:        client,
		Temperature:   iv.Temperature,
		MaxInputChars: iv.MaxInputChars,
		Attempts:      1,
	}
}

// Generate sends a single prompt and returns the raw completion text.
func (s *LLMService) Generate(ctx context.Context, prompt string) (string, error) {
	var resp string
	err := retry(ctx, s.Attempts, s.RetryDelay, func() error {
		var err error
		resp, err = llms.GenerateFromSinglePrompt(ctx, s.Client, prompt, llms.WithTemperature(s.Temperature))
		return err
	})
	return resp, err
}

// retry executes f with exponential backoff. Cancellation and client errors
// from the API are not retried.
func retry(ctx context.Context, attempts int, sleep time.Duration, f func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if ctx.Err() != nil || isPermanentError(err) || i == attempts-1 {
			break
		}

		log.Printf("⚠️ LLM Error: %v. Retrying in %v...", err, sleep)
		select {
		case <-time.After(sleep):
		case <-ctx.Done():
			return ctx.Err()
		}
		sleep *= 2
	}
	if attempts == 1 {
		return err
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

// isPermanentError reports 4xx responses other than rate limiting.
func isPermanentError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code >= 400 && gErr.Code < 500 && gErr.Code != http.StatusTooManyRequests
	}
	return false
}

// GenerateJSON sends prompt and returns the JSON object embedded in the reply.
func (s *LLMService) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := s.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	obj, err := extractJSONObject(resp)
	if err != nil {
		return "", err
	}
	if !json.Valid([]byte(obj)) {
		return "", errors.New("LLM response contains malformed JSON")
	}
	return obj, nil
}

func (s *LLMService) truncate(text string) string {
	if s.MaxInputChars > 0 && len(text) > s.MaxInputChars {
		cut := s.MaxInputChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		return text[:cut]
	}
	return text
}

// extractJSONObject finds the outermost {...} in a model reply, which may be
// wrapped in markdown fences or prose.
func extractJSONObject(response string) (string, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return "", errors.New("no JSON object found in LLM response")
	}
	return response[start : end+1], nil
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "company": "Name of the company (e.g., Google, StartupInc)",
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements. Remove HTML tags.",
    "url": "%s"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractJobDetails takes raw HTML and returns a structured JSON object
// shaped like a job creation request.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML, url string) (string, error) {
	prompt := fmt.Sprintf(jobExtractionPrompt, url, s.truncate(rawHTML))
	return s.GenerateJSON(ctx, prompt)
}
