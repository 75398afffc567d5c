package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/justsurfingit/job-tracker/internal/config"
	"github.com/justsurfingit/job-tracker/internal/metrics"
	"github.com/justsurfingit/job-tracker/internal/models"
	"github.com/justsurfingit/job-tracker/internal/practice"
)

var ErrInvalidJobID = errors.New("invalid job ID")

// InterviewService generates practice questions for a tracked job and scores
// answers. It satisfies practice.Evaluator, so a Controller can drive it
// directly as well as through the HTTP API.
type InterviewService struct {
	LLM      *LLMService
	Jobs     *JobService
	Settings config.Interview
	Metrics  *metrics.Metrics
}

func NewInterviewService(llm *LLMService, jobs *JobService, settings config.Interview, m *metrics.Metrics) *InterviewService {
	if m == nil {
		m = metrics.NewNop()
	}
	return &InterviewService{
		LLM:      llm,
		Jobs:     jobs,
		Settings: settings,
		Metrics:  m,
	}
}

var _ practice.Evaluator = (*InterviewService)(nil)

// GenerateQuestions builds the question set for a job from its description.
func (s *InterviewService) GenerateQuestions(ctx context.Context, jobID string) (questions []practice.Question, err error) {
	defer func() { s.Metrics.RecordGeneration(len(questions), err) }()

	id, err := strconv.ParseUint(strings.TrimSpace(jobID), 10, 64)
	if err != nil || id == 0 {
		return nil, ErrInvalidJobID
	}
	job, err := s.Jobs.GetJob(uint(id))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := s.LLM.GenerateJSON(ctx, s.questionPrompt(job))
	s.Metrics.ObserveLLM("generate_questions", start)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	questions, err = parseQuestions(raw)
	if err != nil {
		return nil, err
	}
	log.Printf("🎯 Generated %d questions for job %d (%s at %s)", len(questions), job.ID, job.Title, job.Company.Name)
	return questions, nil
}

func (s *InterviewService) questionPrompt(job *models.Job) string {
	var sb strings.Builder

	sb.WriteString("You are an experienced hiring manager preparing a candidate for an interview.\n\n")
	sb.WriteString("## JOB\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", job.Title))
	sb.WriteString(fmt.Sprintf("Company: %s\n", job.Company.Name))
	sb.WriteString("Description:\n")
	sb.WriteString(s.LLM.truncate(job.Description))
	sb.WriteString("\n\n")

	sb.WriteString("## TASK\n")
	sb.WriteString(fmt.Sprintf("Write %d interview questions tailored to this role.\n", s.Settings.QuestionCount))
	if len(s.Settings.CategoryMix) > 0 {
		categories := make([]string, 0, len(s.Settings.CategoryMix))
		for c := range s.Settings.CategoryMix {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		sb.WriteString("Use this mix of categories:\n")
		for _, c := range categories {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", c, s.Settings.CategoryMix[c]))
		}
	}
	sb.WriteString("Vary difficulty between easy, medium and hard.\n\n")

	sb.WriteString("Return ONLY a JSON object in this format:\n")
	sb.WriteString(`{"questions": [{"question": "<text>", "category": "technical|behavioral|company-specific", "difficulty": "easy|medium|hard"}]}` + "\n")
	return sb.String()
}

// parseQuestions decodes the model reply, normalises category and difficulty
// and drops blank questions. An empty result is an error.
func parseQuestions(raw string) ([]practice.Question, error) {
	var payload struct {
		Questions []practice.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}

	questions := make([]practice.Question, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question == "" {
			continue
		}
		q.Category = normalizeCategory(string(q.Category))
		q.Difficulty = normalizeDifficulty(string(q.Difficulty))
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, practice.ErrNoQuestions
	}
	return questions, nil
}

func normalizeCategory(s string) practice.Category {
	c := practice.Category(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-"))
	if c == "company" {
		c = practice.CategoryCompanySpecific
	}
	if !c.Valid() {
		return practice.CategoryTechnical
	}
	return c
}

func normalizeDifficulty(s string) practice.Difficulty {
	d := practice.Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return practice.DifficultyMedium
	}
	return d
}

// GetFeedback scores one answer. The returned record always echoes the
// question and answer it was asked about, and the score is clamped to 0-10.
func (s *InterviewService) GetFeedback(ctx context.Context, req practice.FeedbackRequest) (fb *practice.Feedback, err error) {
	category := string(normalizeCategory(string(req.QuestionCategory)))
	defer func() {
		score := 0
		if fb != nil {
			score = fb.Score
		}
		s.Metrics.RecordFeedback(category, score, err)
	}()

	start := time.Now()
	raw, err := s.LLM.GenerateJSON(ctx, s.feedbackPrompt(req, category))
	s.Metrics.ObserveLLM("get_feedback", start)
	if err != nil {
		return nil, fmt.Errorf("feedback generation failed: %w", err)
	}

	fb, err = parseFeedback(raw)
	if err != nil {
		return nil, err
	}
	fb.Question = req.Question
	fb.UserAnswer = req.Answer

	log.Printf("📝 Session %s scored %d/10 (%s)", req.SessionID, fb.Score, category)
	return fb, nil
}

func (s *InterviewService) feedbackPrompt(req practice.FeedbackRequest, category string) string {
	var sb strings.Builder

	sb.WriteString("You are an interview coach evaluating a candidate's practice answer.\n\n")
	sb.WriteString(fmt.Sprintf("Question category: %s\n", category))
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", req.Question))
	sb.WriteString("Candidate answer:\n")
	sb.WriteString(s.LLM.truncate(req.Answer))
	sb.WriteString("\n\n")

	sb.WriteString("Score the answer from 0 to 10. 8 or above is a strong answer, 6-7 adequate, below 6 weak.\n")
	sb.WriteString("Return ONLY a JSON object in this format:\n")
	sb.WriteString("{\n")
	sb.WriteString(`  "feedback": "<2-4 sentences of overall feedback>",` + "\n")
	sb.WriteString(`  "score": <integer 0-10>,` + "\n")
	sb.WriteString(`  "improvement_suggestions": ["<concrete suggestion>"],` + "\n")
	sb.WriteString(`  "ideal_points": ["<point a strong answer covers>"]` + "\n")
	sb.WriteString("}\n")
	return sb.String()
}

func parseFeedback(raw string) (*practice.Feedback, error) {
	var payload struct {
		Feedback               string   `json:"feedback"`
		Score                  float64  `json:"score"`
		ImprovementSuggestions []string `json:"improvement_suggestions"`
		IdealPoints            []string `json:"ideal_points"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse feedback: %w", err)
	}

	score := int(payload.Score + 0.5)
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	fb := &practice.Feedback{
		Feedback:               strings.TrimSpace(payload.Feedback),
		Score:                  score,
		ImprovementSuggestions: payload.ImprovementSuggestions,
		IdealPoints:            payload.IdealPoints,
	}
	if fb.ImprovementSuggestions == nil {
		fb.ImprovementSuggestions = []string{}
	}
	if fb.IdealPoints == nil {
		fb.IdealPoints = []string{}
	}
	return fb, nil
}
