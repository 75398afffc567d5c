package dtos

import (
	"time"

	"github.com/justsurfingit/job-tracker/internal/models"
)

const DateLayout = "2006-01-02"

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

// JobCreationRequest is used for POST and PUT.
type JobCreationRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Description string `json:"description"`
	URL         string `json:"url" binding:"required,url"`
	DateApplied string `json:"date_applied" binding:"required,datetime=2006-01-02"`

	// Optional Fields
	Status     string `json:"status" binding:"omitempty,oneof=Applied Interview Rejected"` // Defaults to "Applied" if empty
	ResumePath string `json:"resume_path"`
	Notes      string `json:"notes"`
}

// JobUpdateRequest is used for PATCH; nil fields are left alone.
type JobUpdateRequest struct {
	Title       *string `json:"title"`
	Company     *string `json:"company"`
	Description *string `json:"description"`
	URL         *string `json:"url" binding:"omitempty,url"`
	Status      *string `json:"status" binding:"omitempty,oneof=Applied Interview Rejected"`
	DateApplied *string `json:"date_applied" binding:"omitempty,datetime=2006-01-02"`
	ResumePath  *string `json:"resume_path"`
	Notes       *string `json:"notes"`
}

// Empty reports whether the patch carries no fields.
func (r *JobUpdateRequest) Empty() bool {
	return r.Title == nil && r.Company == nil && r.Description == nil && r.URL == nil &&
		r.Status == nil && r.DateApplied == nil && r.ResumePath == nil && r.Notes == nil
}

type JobResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Status      string    `json:"status"`
	DateApplied string    `json:"date_applied"`
	ResumePath  string    `json:"resume_path,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewJobResponse flattens the company association. The job must be loaded
// with Preload("Company").
func NewJobResponse(job *models.Job) JobResponse {
	return JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Company:     job.Company.Name,
		Description: job.Description,
		URL:         job.URL,
		Status:      job.Status,
		DateApplied: job.DateApplied.Format(DateLayout),
		ResumePath:  job.ResumePath,
		Notes:       job.Notes,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}
