package practice

import "strings"

type Category string

const (
	CategoryTechnical       Category = "technical"
	CategoryBehavioral      Category = "behavioral"
	CategoryCompanySpecific Category = "company-specific"
)

// Valid reports whether c is one of the known question categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTechnical, CategoryBehavioral, CategoryCompanySpecific:
		return true
	}
	return false
}

// Label renders the category for display, e.g. "company specific".
func (c Category) Label() string {
	return strings.ReplaceAll(string(c), "-", " ")
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is one generated interview question. Never mutated after generation.
type Question struct {
	Question   string     `json:"question"`
	Category   Category   `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
}

// Feedback is the evaluation of one submitted answer.
type Feedback struct {
	Question               string   `json:"question"`
	UserAnswer             string   `json:"user_answer"`
	Feedback               string   `json:"feedback"`
	Score                  int      `json:"score"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
	IdealPoints            []string `json:"ideal_points"`
}

// Phase is the coarse state of a practice session.
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhaseQuestions Phase = "questions"
	PhasePractice  Phase = "practice"
	PhaseReview    Phase = "review"
	PhaseClosed    Phase = "closed"
)

// Operation names the network call a session is currently waiting on.
// It is tracked separately from Phase so "generating questions" and
// "scoring an answer" can never be confused.
type Operation int

const (
	OpNone Operation = iota
	OpGenerate
	OpFeedback
)

func (o Operation) String() string {
	switch o {
	case OpGenerate:
		return "generate"
	case OpFeedback:
		return "feedback"
	default:
		return "none"
	}
}

// Job is the slice of a job record needed to seed a session.
type Job struct {
	ID      string
	Title   string
	Company string
}

// FeedbackRequest is what gets sent to the scorer for one answer.
type FeedbackRequest struct {
	SessionID        string
	Question         string
	Answer           string
	QuestionCategory Category
}
