package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-tracker/internal/dtos"
	"github.com/justsurfingit/job-tracker/internal/practice"
	"github.com/justsurfingit/job-tracker/internal/services"
)

type InterviewHandler struct {
	Interviews *services.InterviewService
}

func NewInterviewHandler(s *services.InterviewService) *InterviewHandler {
	return &InterviewHandler{Interviews: s}
}

// GenerateQuestions is POST /interview/generate-questions
func (h *InterviewHandler) GenerateQuestions(c *gin.Context) {
	var req dtos.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	questions, err := h.Interviews.GenerateQuestions(c.Request.Context(), req.JobID)
	switch {
	case errors.Is(err, services.ErrInvalidJobID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	case errors.Is(err, services.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Question generation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.GenerateQuestionsResponse{Questions: questions})
}

// GetFeedback is POST /interview/get-feedback
func (h *InterviewHandler) GetFeedback(c *gin.Context) {
	var req dtos.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Answer) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answer must not be empty"})
		return
	}

	fb, err := h.Interviews.GetFeedback(c.Request.Context(), practice.FeedbackRequest{
		SessionID:        req.SessionID,
		Question:         req.Question,
		Answer:           req.Answer,
		QuestionCategory: practice.Category(req.QuestionCategory),
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Feedback generation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.FeedbackResponse(*fb))
}
