package practice

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPhase    = errors.New("operation not allowed in current phase")
	ErrEmptyAnswer     = errors.New("answer is empty")
	ErrRequestInFlight = errors.New("a request is already in flight for this session")
	ErrIndexOutOfRange = errors.New("question index out of range")
	ErrClosed          = errors.New("session is closed")
	ErrNoQuestions     = errors.New("generator returned no questions")
)

// GenerationError reports a failed question generation. The session stays in
// the loading phase and can be retried.
type GenerationError struct {
	JobID string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate questions for job %s: %v", e.JobID, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// FeedbackError reports a failed scoring request for one question index.
// Nothing is committed for that index and it can be resubmitted.
type FeedbackError struct {
	Index int
	Err   error
}

func (e *FeedbackError) Error() string {
	return fmt.Sprintf("get feedback for question %d: %v", e.Index+1, e.Err)
}

func (e *FeedbackError) Unwrap() error { return e.Err }
