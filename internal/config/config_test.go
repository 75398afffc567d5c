package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "interview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadInterviewOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
question_count: 3
category_mix:
  technical: 2
  behavioral: 1
`)

	iv, err := LoadInterview(path)
	require.NoError(t, err)
	assert.Equal(t, 3, iv.QuestionCount)
	assert.Equal(t, map[string]int{"technical": 2, "behavioral": 1}, iv.CategoryMix)
	assert.Equal(t, 0.4, iv.Temperature)
	assert.Equal(t, 20000, iv.MaxInputChars)
}

func TestLoadInterviewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero questions", body: "question_count: 0\ncategory_mix: {}\n"},
		{name: "unknown category", body: "question_count: 1\ncategory_mix:\n  trivia: 1\n"},
		{name: "mix mismatch", body: "question_count: 5\ncategory_mix:\n  technical: 2\n"},
		{name: "temperature", body: "temperature: 3\n"},
		{name: "bad yaml", body: "question_count: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadInterview(writeFile(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadInterviewMissingFile(t *testing.T) {
	_, err := LoadInterview(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:")
	t.Setenv("LLM_PROVIDER", "googleai")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LLM_TEMPERATURE", "0.9")
	t.Setenv("INTERVIEW_CONFIG", "")
	t.Setenv("ALLOW_ORIGINS", "http://localhost:5173, https://tracker.example.com,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, []string{"http://localhost:5173", "https://tracker.example.com"}, cfg.AllowOrigins)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 0.9, cfg.Interview.Temperature)
	assert.Equal(t, 8, cfg.Interview.QuestionCount)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DBDriver:       "postgres",
			LLMProvider:    "googleai",
			GeminiAPIKey:   "k",
			RequestTimeout: time.Second,
			Interview:      DefaultInterview(),
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.DBDriver = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.GeminiAPIKey = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.LLMProvider = "vertex"
	assert.Error(t, cfg.Validate())
	cfg.CloudProject = "my-project"
	assert.NoError(t, cfg.Validate())
}

func TestExampleInterviewConfig(t *testing.T) {
	iv, err := LoadInterview(filepath.Join("..", "..", "config", "interview.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultInterview(), *iv)
}
