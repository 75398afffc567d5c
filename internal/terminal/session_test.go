package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/justsurfingit/job-tracker/internal/practice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedEvaluator struct {
	questions   []practice.Question
	generateErr []error
	scores      []int
	feedbackErr []error
}

func (e *scriptedEvaluator) GenerateQuestions(ctx context.Context, jobID string) ([]practice.Question, error) {
	if len(e.generateErr) > 0 {
		err := e.generateErr[0]
		e.generateErr = e.generateErr[1:]
		if err != nil {
			return nil, err
		}
	}
	return e.questions, nil
}

func (e *scriptedEvaluator) GetFeedback(ctx context.Context, req practice.FeedbackRequest) (*practice.Feedback, error) {
	if len(e.feedbackErr) > 0 {
		err := e.feedbackErr[0]
		e.feedbackErr = e.feedbackErr[1:]
		if err != nil {
			return nil, err
		}
	}
	score := 5
	if len(e.scores) > 0 {
		score, e.scores = e.scores[0], e.scores[1:]
	}
	return &practice.Feedback{
		Feedback:               "Noted.",
		Score:                  score,
		ImprovementSuggestions: []string{"Be specific"},
		IdealPoints:            []string{"Trade-offs"},
	}, nil
}

func questions(n int) []practice.Question {
	all := []practice.Question{
		{Question: "Explain goroutines.", Category: practice.CategoryTechnical, Difficulty: practice.DifficultyEasy},
		{Question: "Describe a conflict.", Category: practice.CategoryBehavioral, Difficulty: practice.DifficultyMedium},
		{Question: "Why Acme?", Category: practice.CategoryCompanySpecific, Difficulty: practice.DifficultyHard},
	}
	return all[:n]
}

func run(t *testing.T, eval practice.Evaluator, input ...string) (*practice.Summary, string) {
	t.Helper()
	ctrl := practice.NewController(practice.Job{ID: "7", Title: "Go Developer", Company: "Acme"}, eval, practice.Options{})
	var out bytes.Buffer
	sum, err := NewRunner(ctrl, strings.NewReader(strings.Join(input, "\n")+"\n"), &out).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, practice.PhaseClosed, ctrl.Phase())
	return sum, out.String()
}

func TestRunToReview(t *testing.T) {
	eval := &scriptedEvaluator{questions: questions(2), scores: []int{8, 6}}

	sum, out := run(t, eval, "", "answer one", "answer two", "/show 1", "/quit")

	require.NotNil(t, sum)
	assert.Equal(t, 2, sum.CompletedCount)
	assert.Equal(t, 7.0, sum.AverageScore)

	assert.Contains(t, out, "Interview practice: Go Developer at Acme")
	assert.Contains(t, out, " 2. [behavioral, medium] Describe a conflict.")
	assert.Contains(t, out, "Question 1 of 2 (50%)")
	assert.Contains(t, out, "Question 2 of 2 (100%)")
	assert.Contains(t, out, "Score: 8/10 (strong)")
	assert.Contains(t, out, "Score: 6/10 (adequate)")
	assert.Contains(t, out, "Average score: 7.0/10 (adequate)")
	assert.Contains(t, out, "Completed 2 of 2 questions")
	assert.Contains(t, out, "Your answer: answer one")
	assert.NotContains(t, out, "Your answer: answer two")
	assert.Contains(t, out, "+ Be specific")
}

func TestRunRetriesGeneration(t *testing.T) {
	eval := &scriptedEvaluator{
		questions:   questions(1),
		generateErr: []error{errors.New("503 from model")},
		scores:      []int{4},
	}

	sum, out := run(t, eval, "/retry", "", "my answer")

	assert.Contains(t, out, "Failed to generate questions: 503 from model")
	assert.Contains(t, out, "Score: 4/10 (weak)")
	require.NotNil(t, sum)
	assert.Equal(t, practice.BandWeak, sum.Band)
}

func TestRunQuitWhileLoading(t *testing.T) {
	eval := &scriptedEvaluator{generateErr: []error{errors.New("down")}}

	sum, out := run(t, eval, "/quit")

	assert.Nil(t, sum)
	assert.Contains(t, out, "/retry to try again")
}

// cancellingEvaluator cancels the run context while generating.
type cancellingEvaluator struct {
	scriptedEvaluator
	cancel context.CancelFunc
}

func (e *cancellingEvaluator) GenerateQuestions(ctx context.Context, jobID string) ([]practice.Question, error) {
	e.cancel()
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRunStopsWhenCancelledDuringLoading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eval := &cancellingEvaluator{cancel: cancel}
	ctrl := practice.NewController(practice.Job{ID: "7", Title: "Go Developer", Company: "Acme"}, eval, practice.Options{})

	var out bytes.Buffer
	sum, err := NewRunner(ctrl, strings.NewReader("/retry\n/retry\n"), &out).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, sum)
	assert.NotContains(t, out.String(), "/retry to try again")
	assert.Equal(t, practice.PhaseClosed, ctrl.Phase())
}

func TestRunNavigation(t *testing.T) {
	eval := &scriptedEvaluator{questions: questions(3), scores: []int{9, 9, 9}}

	sum, out := run(t, eval, "", "/goto 3", "third", "/prev", "/goto 9", "/goto x", "/skip", "first", "second")

	require.NotNil(t, sum)
	assert.Equal(t, 3, sum.CompletedCount)
	assert.Contains(t, out, "1· 2· [3·]")
	assert.Contains(t, out, "[1·] 2· 3✓")
	assert.Contains(t, out, "Already at the first question")
	assert.Contains(t, out, "No question 9")
	assert.Contains(t, out, "Usage: /goto N")
	assert.Contains(t, out, "Unknown command /skip")
}

func TestRunFeedbackFailureKeepsQuestion(t *testing.T) {
	eval := &scriptedEvaluator{
		questions:   questions(1),
		feedbackErr: []error{errors.New("timeout")},
		scores:      []int{7},
	}

	sum, out := run(t, eval, "", "first try", "second try")

	assert.Contains(t, out, "Failed to get feedback: timeout. Your answer was not saved, try again.")
	require.NotNil(t, sum)
	require.Len(t, sum.Items, 1)
	assert.Equal(t, "second try", sum.Items[0].Feedback.UserAnswer)
}

func TestRunRestartFromReview(t *testing.T) {
	eval := &scriptedEvaluator{questions: questions(1), scores: []int{3, 10}}

	sum, out := run(t, eval, "", "weak answer", "/restart", "", "great answer", "/quit")

	assert.Contains(t, out, "Generating new questions...")
	require.NotNil(t, sum)
	assert.Equal(t, 10.0, sum.AverageScore)
	assert.Equal(t, practice.BandStrong, sum.Band)
}

func TestRunEndsOnEOF(t *testing.T) {
	eval := &scriptedEvaluator{questions: questions(2)}

	sum, out := run(t, eval, "", "only one")

	assert.Nil(t, sum)
	assert.Contains(t, out, "Question 2 of 2")
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		wantName string
		wantArg  string
		wantOK   bool
	}{
		{"/goto 3", "goto", "3", true},
		{"/PREV", "prev", "", true},
		{"/", "", "", false},
		{"an answer", "", "", false},
		{"/show  2 extra", "show", "2", true},
	}

	for _, tt := range tests {
		name, arg, ok := parseCommand(tt.line)
		assert.Equal(t, tt.wantName, name, tt.line)
		assert.Equal(t, tt.wantArg, arg, tt.line)
		assert.Equal(t, tt.wantOK, ok, tt.line)
	}
}
