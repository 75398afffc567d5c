package dtos

import "github.com/justsurfingit/job-tracker/internal/practice"

// Wire shapes for the two interview endpoints. Both the API server and the
// practice client use these.

type GenerateQuestionsRequest struct {
	JobID string `json:"job_id" binding:"required"`
}

type GenerateQuestionsResponse struct {
	Questions []practice.Question `json:"questions"`
}

type FeedbackRequest struct {
	SessionID        string `json:"session_id"`
	Question         string `json:"question" binding:"required"`
	Answer           string `json:"answer" binding:"required"`
	QuestionCategory string `json:"question_category"`
}

// FeedbackResponse has the same fields as practice.Feedback.
type FeedbackResponse = practice.Feedback
