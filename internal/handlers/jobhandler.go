package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-tracker/internal/dtos"
	"github.com/justsurfingit/job-tracker/internal/services"
)

// Jobs only need the LLM for /jobs/extract.
type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(llm *services.LLMService, j *services.JobService) *JobHandler {
	return &JobHandler{
		LLMService: llm,
		JobService: j,
	}
}

// ParseJob is the POST /jobs/extract endpoint
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	extractedJSON, err := h.LLMService.ExtractJobDetails(c.Request.Context(), req.RawHTML, req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "AI Extraction failed: " + err.Error()})
		return
	}

	// RawMessage keeps the model's JSON from being re-escaped as a string
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    json.RawMessage(extractedJSON),
	})
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.CreateJob(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dtos.NewJobResponse(job))
}

func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListJobs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs: " + err.Error()})
		return
	}

	out := make([]dtos.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, dtos.NewJobResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	job, err := h.JobService.GetJob(id)
	if err != nil {
		respondJobError(c, err, "Failed to fetch job")
		return
	}
	c.JSON(http.StatusOK, dtos.NewJobResponse(job))
}

// ReplaceJob is PUT /jobs/:id and takes the same body as create.
func (h *JobHandler) ReplaceJob(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	job, err := h.JobService.ReplaceJob(id, &req)
	if err != nil {
		respondJobError(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, dtos.NewJobResponse(job))
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	if req.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	job, err := h.JobService.UpdateJob(id, &req)
	if err != nil {
		respondJobError(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, dtos.NewJobResponse(job))
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}

	if err := h.JobService.DeleteJob(id); err != nil {
		respondJobError(c, err, "Failed to delete job")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobHandler) JobEvents(c *gin.Context) {
	id, ok := parseJobID(c)
	if !ok {
		return
	}
	if _, err := h.JobService.GetJob(id); err != nil {
		respondJobError(c, err, "Failed to fetch job")
		return
	}

	events, err := h.JobService.JobEvents(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

func parseJobID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return 0, false
	}
	return uint(id), true
}

func respondJobError(c *gin.Context, err error, msg string) {
	if errors.Is(err, services.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg + ": " + err.Error()})
}
