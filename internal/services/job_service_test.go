package services

import (
	"testing"

	"github.com/justsurfingit/job-tracker/internal/dtos"
	"github.com/justsurfingit/job-tracker/internal/metrics"
	"github.com/justsurfingit/job-tracker/internal/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateJobDefaultsStatusAndReusesCompany(t *testing.T) {
	jobs := NewJobService(newTestDB(t))

	first := createTestJob(t, jobs)
	second := createTestJob(t, jobs)

	assert.Equal(t, models.StatusApplied, first.Status)
	assert.Equal(t, first.CompanyID, second.CompanyID)
	assert.Equal(t, "2026-09-01", first.DateApplied.Format(dtos.DateLayout))

	var companies int64
	jobs.DB.Model(&models.Company{}).Count(&companies)
	assert.Equal(t, int64(1), companies)

	events, err := jobs.JobEvents(first.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "CREATED", events[0].EventType)
}

func TestCreateJobRejectsBadDate(t *testing.T) {
	jobs := NewJobService(newTestDB(t))
	_, err := jobs.CreateJob(&dtos.JobCreationRequest{
		Title: "SRE", Company: "Acme", URL: "https://acme.io", DateApplied: "01/09/2026",
	})
	assert.Error(t, err)
}

func TestGetAndListJobs(t *testing.T) {
	jobs := NewJobService(newTestDB(t))
	created := createTestJob(t, jobs)

	got, err := jobs.GetJob(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stripe", got.Company.Name)

	list, err := jobs.ListJobs()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Stripe", list[0].Company.Name)

	_, err = jobs.GetJob(999)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestUpdateJobStatusRecordsEvent(t *testing.T) {
	jobs := NewJobService(newTestDB(t))
	jobs.Metrics = metrics.NewNop()
	created := createTestJob(t, jobs)

	updated, err := jobs.UpdateJob(created.ID, &dtos.JobUpdateRequest{Status: strPtr(models.StatusInterview)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInterview, updated.Status)
	assert.Equal(t, "Backend Engineer", updated.Title)

	events, err := jobs.JobEvents(created.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "STATUS_CHANGE", events[1].EventType)
	assert.Contains(t, events[1].Details, "Applied to Interview")
	assert.Equal(t, 1.0, testutil.ToFloat64(jobs.Metrics.JobStatusChanges.WithLabelValues(models.StatusInterview)))

	// Same status again is not a change.
	_, err = jobs.UpdateJob(created.ID, &dtos.JobUpdateRequest{Status: strPtr(models.StatusInterview)})
	require.NoError(t, err)
	events, err = jobs.JobEvents(created.ID)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestUpdateJobMovesCompany(t *testing.T) {
	jobs := NewJobService(newTestDB(t))
	created := createTestJob(t, jobs)

	updated, err := jobs.UpdateJob(created.ID, &dtos.JobUpdateRequest{
		Company: strPtr("Adyen"),
		Notes:   strPtr("Referred by a friend"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Adyen", updated.Company.Name)
	assert.Equal(t, "Referred by a friend", updated.Notes)
}

func TestReplaceJob(t *testing.T) {
	jobs := NewJobService(newTestDB(t))
	created := createTestJob(t, jobs)

	replaced, err := jobs.ReplaceJob(created.ID, &dtos.JobCreationRequest{
		Title:       "Staff Engineer",
		Company:     "Stripe",
		URL:         "https://stripe.com/jobs/2",
		DateApplied: "2026-10-01",
		Status:      models.StatusRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", replaced.Title)
	assert.Equal(t, models.StatusRejected, replaced.Status)
	assert.Equal(t, "", replaced.Description)
	assert.Equal(t, "2026-10-01", replaced.DateApplied.Format(dtos.DateLayout))
}

func TestUpdateMissingJob(t *testing.T) {
	jobs := NewJobService(newTestDB(t))
	_, err := jobs.UpdateJob(42, &dtos.JobUpdateRequest{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestDeleteJob(t *testing.T) {
	jobs := NewJobService(newTestDB(t))
	created := createTestJob(t, jobs)

	require.NoError(t, jobs.DeleteJob(created.ID))
	_, err := jobs.GetJob(created.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.ErrorIs(t, jobs.DeleteJob(created.ID), ErrJobNotFound)
}
