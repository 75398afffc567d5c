package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/justsurfingit/job-tracker/internal/dtos"
	"github.com/justsurfingit/job-tracker/internal/metrics"
	"github.com/justsurfingit/job-tracker/internal/models"
	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobService struct {
	DB      *gorm.DB
	Metrics *metrics.Metrics
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB: db,
	}
}

func (s *JobService) CreateJob(req *dtos.JobCreationRequest) (*models.Job, error) {
	dateApplied, err := time.Parse(dtos.DateLayout, req.DateApplied)
	if err != nil {
		return nil, fmt.Errorf("invalid date_applied: %w", err)
	}

	var job *models.Job
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		company, err := findOrCreateCompany(tx, req.Company)
		if err != nil {
			return err
		}

		status := req.Status
		if status == "" {
			status = models.StatusApplied
		}
		job = &models.Job{
			CompanyID:   company.ID,
			Company:     *company,
			Title:       req.Title,
			Description: req.Description,
			URL:         req.URL,
			Status:      status,
			DateApplied: dateApplied,
			ResumePath:  req.ResumePath,
			Notes:       req.Notes,
		}
		if err := tx.Create(job).Error; err != nil {
			return err
		}
		return tx.Create(&models.JobEvent{
			JobID:     job.ID,
			EventType: "CREATED",
			Details:   fmt.Sprintf("Tracked %s at %s with status %s", job.Title, company.Name, status),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("✅ Created job %d: %s at %s", job.ID, job.Title, job.Company.Name)
	return job, nil
}

func (s *JobService) ListJobs() ([]models.Job, error) {
	var jobs []models.Job
	if err := s.DB.Preload("Company").Order("id").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) GetJob(id uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.Preload("Company").First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ReplaceJob overwrites every editable field of a job (PUT).
func (s *JobService) ReplaceJob(id uint, req *dtos.JobCreationRequest) (*models.Job, error) {
	status := req.Status
	if status == "" {
		status = models.StatusApplied
	}
	return s.UpdateJob(id, &dtos.JobUpdateRequest{
		Title:       &req.Title,
		Company:     &req.Company,
		Description: &req.Description,
		URL:         &req.URL,
		Status:      &status,
		DateApplied: &req.DateApplied,
		ResumePath:  &req.ResumePath,
		Notes:       &req.Notes,
	})
}

// UpdateJob applies the non-nil fields of req (PATCH). A status change is
// logged as a JobEvent.
func (s *JobService) UpdateJob(id uint, req *dtos.JobUpdateRequest) (*models.Job, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.ResumePath != nil {
		updates["resume_path"] = *req.ResumePath
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.DateApplied != nil {
		d, err := time.Parse(dtos.DateLayout, *req.DateApplied)
		if err != nil {
			return nil, fmt.Errorf("invalid date_applied: %w", err)
		}
		updates["date_applied"] = d
	}

	statusChanged := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.First(&job, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return err
		}

		if req.Company != nil {
			company, err := findOrCreateCompany(tx, *req.Company)
			if err != nil {
				return err
			}
			updates["company_id"] = company.ID
		}

		if len(updates) == 0 {
			return nil
		}
		// Updates writes the new values back into job.
		oldStatus := job.Status
		if err := tx.Model(&job).Updates(updates).Error; err != nil {
			return err
		}

		if req.Status != nil && *req.Status != oldStatus {
			log.Printf("⚡ Job %d status: %s -> %s", job.ID, oldStatus, *req.Status)
			statusChanged = true
			return tx.Create(&models.JobEvent{
				JobID:     job.ID,
				EventType: "STATUS_CHANGE",
				Details:   fmt.Sprintf("Status changed from %s to %s", oldStatus, *req.Status),
			}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if statusChanged && s.Metrics != nil {
		s.Metrics.JobStatusChanges.WithLabelValues(*req.Status).Inc()
	}
	return s.GetJob(id)
}

func (s *JobService) DeleteJob(id uint) error {
	result := s.DB.Delete(&models.Job{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	log.Printf("🗑️  Deleted job %d", id)
	return nil
}

// JobEvents returns the audit trail for a job, oldest first.
func (s *JobService) JobEvents(id uint) ([]models.JobEvent, error) {
	var events []models.JobEvent
	if err := s.DB.Where("job_id = ?", id).Order("id").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// it creates an entry if it doesn't already exist
func findOrCreateCompany(tx *gorm.DB, name string) (*models.Company, error) {
	var company models.Company
	if err := tx.Where(models.Company{Name: name}).FirstOrCreate(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}
