package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/justsurfingit/job-tracker/internal/config"
	"github.com/justsurfingit/job-tracker/internal/database"
	"github.com/justsurfingit/job-tracker/internal/dtos"
	"github.com/justsurfingit/job-tracker/internal/models"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"gorm.io/gorm"
)

// stubModel is an llms.Model that replays canned responses.
type stubModel struct {
	mu        sync.Mutex
	responses []string
	err       error
	failFirst int
	calls     int
	prompts   []string

	// respond, when set, answers each prompt instead of responses.
	respond func(prompt string) string
}

func (m *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompts = append(m.prompts, text.Text)
			}
		}
	}
	m.calls++
	if m.respond != nil {
		resp := m.respond(m.prompts[len(m.prompts)-1])
		return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: resp}}}, nil
	}
	if m.failFirst > 0 {
		m.failFirst--
		return nil, m.err
	}
	if m.err != nil && len(m.responses) == 0 {
		return nil, m.err
	}

	resp := "{}"
	if len(m.responses) > 0 {
		resp = m.responses[0]
		m.responses = m.responses[1:]
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: resp}}}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func (m *stubModel) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("sqlite", filepath.Join(t.TempDir(), "jobs.db"))
	require.NoError(t, err)
	return db
}

func createTestJob(t *testing.T, jobs *JobService) *models.Job {
	t.Helper()
	job, err := jobs.CreateJob(&dtos.JobCreationRequest{
		Title:       "Backend Engineer",
		Company:     "Stripe",
		Description: "Build payment APIs in Go.",
		URL:         "https://stripe.com/jobs/1",
		DateApplied: "2026-09-01",
	})
	require.NoError(t, err)
	return job
}

func testInterviewSettings() config.Interview {
	iv := config.DefaultInterview()
	iv.QuestionCount = 3
	iv.CategoryMix = map[string]int{"technical": 2, "behavioral": 1}
	return iv
}
