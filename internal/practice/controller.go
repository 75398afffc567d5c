package practice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Evaluator is the remote side of a practice session: it generates the
// question set for a job and scores individual answers.
type Evaluator interface {
	GenerateQuestions(ctx context.Context, jobID string) ([]Question, error)
	GetFeedback(ctx context.Context, req FeedbackRequest) (*Feedback, error)
}

type Options struct {
	// Timeout bounds each call to the Evaluator. Zero means no timeout.
	Timeout time.Duration
	// OnClose fires once when the session is dismissed.
	OnClose func()
	// NewSessionID mints the correlation token at the start of practice.
	NewSessionID func() string
}

// Controller is the session phase state machine. All transitions go through
// it; it allows at most one outstanding Evaluator call at a time.
type Controller struct {
	mu        sync.Mutex
	job       Job
	eval      Evaluator
	opts      Options
	session   *Session
	inFlight  Operation
	draft     string
	closed    bool
	closeOnce sync.Once
}

// NewController creates a controller in the loading phase. Call
// GenerateQuestions to fetch the question set.
func NewController(job Job, eval Evaluator, opts Options) *Controller {
	if opts.NewSessionID == nil {
		opts.NewSessionID = func() string { return uuid.New().String() }
	}
	return &Controller{
		job:     job,
		eval:    eval,
		opts:    opts,
		session: newSession(job.ID),
	}
}

func (c *Controller) Job() Job { return c.job }

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Session:  c.session.clone(),
		Job:      c.job,
		InFlight: c.inFlight,
		Draft:    c.draft,
	}
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Phase
}

// CanSubmit mirrors the submit button: practice phase, nothing in flight and
// a non-blank draft.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.session.Phase == PhasePractice && c.inFlight == OpNone && strings.TrimSpace(c.draft) != ""
}

func (c *Controller) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.Timeout > 0 {
		return context.WithTimeout(ctx, c.opts.Timeout)
	}
	return context.WithCancel(ctx)
}

// GenerateQuestions fetches the question set. Only valid in the loading
// phase. On failure the phase stays loading and a *GenerationError is returned.
func (c *Controller) GenerateQuestions(ctx context.Context) ([]Question, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.session.Phase != PhaseLoading {
		c.mu.Unlock()
		return nil, ErrInvalidPhase
	}
	if c.inFlight != OpNone {
		c.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	c.inFlight = OpGenerate
	session := c.session
	c.mu.Unlock()

	reqCtx, cancel := c.withTimeout(ctx)
	questions, err := c.eval.GenerateQuestions(reqCtx, c.job.ID)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = OpNone

	if c.closed || c.session != session {
		return nil, ErrClosed
	}
	if err == nil {
		err = validateQuestions(questions)
	}
	if err != nil {
		log.Printf("❌ Question generation failed for job %s: %v", c.job.ID, err)
		return nil, &GenerationError{JobID: c.job.ID, Err: err}
	}

	session.Questions = append([]Question(nil), questions...)
	session.Phase = PhaseQuestions
	log.Printf("✅ Generated %d questions for %s at %s", len(questions), c.job.Title, c.job.Company)
	return append([]Question(nil), questions...), nil
}

// Retry re-attempts question generation after a failure.
func (c *Controller) Retry(ctx context.Context) ([]Question, error) {
	return c.GenerateQuestions(ctx)
}

func validateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}
	}
	return nil
}

// StartPractice moves from questions to practice, resetting the index and
// minting a fresh session id.
func (c *Controller) StartPractice() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.session.Phase != PhaseQuestions || c.inFlight != OpNone {
		return ErrInvalidPhase
	}
	c.session.CurrentIndex = 0
	c.session.SessionID = c.opts.NewSessionID()
	c.session.Phase = PhasePractice
	c.draft = ""
	log.Printf("🚀 Practice session %s started (%d questions)", c.session.SessionID, len(c.session.Questions))
	return nil
}

// SetDraft stores the in-progress answer text. There is one draft, not one
// per question; navigating away discards it.
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SubmitDraft submits the current draft.
func (c *Controller) SubmitDraft(ctx context.Context) (*Feedback, error) {
	return c.SubmitAnswer(ctx, c.Draft())
}

// SubmitAnswer records text as the answer to the current question, waits for
// its feedback and advances to the next unanswered question, or to review
// once every question is answered.
//
// The answer is recorded before feedback is requested. If the request fails
// the index does not move, the answer slot is put back the way it was, and a
// *FeedbackError is returned.
func (c *Controller) SubmitAnswer(ctx context.Context, text string) (*Feedback, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.session.Phase != PhasePractice {
		c.mu.Unlock()
		return nil, ErrInvalidPhase
	}
	if strings.TrimSpace(text) == "" {
		c.mu.Unlock()
		return nil, ErrEmptyAnswer
	}
	if c.inFlight != OpNone {
		c.mu.Unlock()
		return nil, ErrRequestInFlight
	}

	session := c.session
	idx := session.CurrentIndex
	question := session.Questions[idx]
	prevAnswer, hadAnswer := session.Answers[idx]
	prevFeedback, hadFeedback := session.Feedback[idx]

	session.Answers[idx] = text
	delete(session.Feedback, idx)
	c.inFlight = OpFeedback
	req := FeedbackRequest{
		SessionID:        session.SessionID,
		Question:         question.Question,
		Answer:           text,
		QuestionCategory: question.Category,
	}
	c.mu.Unlock()

	reqCtx, cancel := c.withTimeout(ctx)
	fb, err := c.eval.GetFeedback(reqCtx, req)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = OpNone

	if c.closed || c.session != session {
		return nil, ErrClosed
	}
	if err == nil {
		err = validateFeedback(fb)
	}
	if err != nil {
		if hadAnswer {
			session.Answers[idx] = prevAnswer
		} else {
			delete(session.Answers, idx)
		}
		if hadFeedback {
			session.Feedback[idx] = prevFeedback
		}
		log.Printf("❌ Feedback failed for question %d in session %s: %v", idx+1, session.SessionID, err)
		return nil, &FeedbackError{Index: idx, Err: err}
	}

	record := fb.clone()
	if record.Question == "" {
		record.Question = question.Question
	}
	if record.UserAnswer == "" {
		record.UserAnswer = text
	}
	session.Feedback[idx] = record
	c.draft = ""

	if next, ok := session.nextUnanswered(idx); ok {
		session.CurrentIndex = next
	} else {
		session.Phase = PhaseReview
		log.Printf("🎉 Session %s complete: %d answers scored", session.SessionID, len(session.Feedback))
	}

	out := record.clone()
	return &out, nil
}

func validateFeedback(fb *Feedback) error {
	if fb == nil {
		return errors.New("empty feedback response")
	}
	if fb.Score < 0 || fb.Score > 10 {
		return fmt.Errorf("score %d outside 0-10", fb.Score)
	}
	return nil
}

// GoToQuestion moves the displayed question without touching any recorded
// answer or feedback. The draft is discarded.
func (c *Controller) GoToQuestion(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.session.Phase != PhasePractice {
		return ErrInvalidPhase
	}
	if c.inFlight != OpNone {
		return ErrRequestInFlight
	}
	if index < 0 || index >= len(c.session.Questions) {
		return ErrIndexOutOfRange
	}
	c.session.CurrentIndex = index
	c.draft = ""
	return nil
}

// Previous steps back one question.
func (c *Controller) Previous() error {
	c.mu.Lock()
	current := c.session.CurrentIndex
	c.mu.Unlock()
	return c.GoToQuestion(current - 1)
}

// Review summarises the feedback collected so far. Available in any phase.
func (c *Controller) Review() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Summarize(c.session.Questions, c.session.Feedback)
}

// Restart discards all progress and generates a fresh question set.
func (c *Controller) Restart(ctx context.Context) ([]Question, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.inFlight != OpNone {
		c.mu.Unlock()
		return nil, ErrRequestInFlight
	}
	c.session = newSession(c.job.ID)
	c.draft = ""
	c.mu.Unlock()

	return c.GenerateQuestions(ctx)
}

// Close discards the session from any phase. OnClose fires exactly once.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.session = newSession(c.job.ID)
	c.session.Phase = PhaseClosed
	c.draft = ""
	c.mu.Unlock()

	c.closeOnce.Do(func() {
		if c.opts.OnClose != nil {
			c.opts.OnClose()
		}
	})
}
