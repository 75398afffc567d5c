package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-tracker/internal/dtos"
	"github.com/justsurfingit/job-tracker/internal/services"
)

type ResumeHandler struct {
	Resumes *services.ResumeService
}

func NewResumeHandler(s *services.ResumeService) *ResumeHandler {
	return &ResumeHandler{Resumes: s}
}

// TailorResume is POST /jobs/:id/resume
func (h *ResumeHandler) TailorResume(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	var req dtos.ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	resp, err := h.Resumes.TailorResume(c.Request.Context(), id, &req)
	switch {
	case errors.Is(err, services.ErrEmptyKnowledgeBank):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Knowledge bank has no skills, experience or projects"})
		return
	case errors.Is(err, services.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Resume generation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
