package jobs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillmarket/internal/core/jobs"
	"skillmarket/internal/storage/storetest"
	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

func newTestEngine(t *testing.T) (*jobs.Engine, *storetest.Jobs, *storetest.Users) {
	t.Helper()
	jobStore := storetest.NewJobs()
	users := storetest.NewUsers()
	users.Seed(&models.User{ID: "provider-1", Name: "Priya", Email: "priya@example.com", UserType: models.UserTypeProvider})
	users.Seed(&models.User{ID: "worker-1", Name: "Asha", Email: "asha@example.com", UserType: models.UserTypeWorker})
	users.Seed(&models.User{ID: "worker-2", Name: "Ravi", Email: "ravi@example.com", UserType: models.UserTypeWorker})
	return jobs.NewEngine(jobStore, users, nil), jobStore, users
}

func validJobRequest() *models.CreateJobRequest {
	return &models.CreateJobRequest{
		Title:       "Cook for a family dinner",
		Description: "Need someone to cook a three course meal",
		Category:    "cooking",
		Location:    models.Location{City: "Gurugram"},
		Duration:    "1 day",
		Payment:     models.Payment{Amount: 500, Type: "fixed"},
	}
}

func TestPostJobDefaults(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	job, err := engine.PostJob(context.Background(), "provider-1", validJobRequest())
	require.NoError(t, err)

	assert.Equal(t, "open", job.Status)
	assert.Equal(t, "on-site", job.WorkType, "work type should default to on-site")
	assert.Equal(t, "provider-1", job.ProviderID)
	assert.Empty(t, job.AssignedWorkerID)
	assert.NotNil(t, job.Applicants)
	assert.Len(t, job.Applicants, 0)
	assert.False(t, job.PostedDate.IsZero())
}

func TestPostJobValidation(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.CreateJobRequest)
	}{
		{"missing title", func(r *models.CreateJobRequest) { r.Title = "" }},
		{"missing description", func(r *models.CreateJobRequest) { r.Description = "" }},
		{"unknown category", func(r *models.CreateJobRequest) { r.Category = "astrology" }},
		{"missing city", func(r *models.CreateJobRequest) { r.Location.City = "" }},
		{"missing duration", func(r *models.CreateJobRequest) { r.Duration = "" }},
		{"zero payment", func(r *models.CreateJobRequest) { r.Payment.Amount = 0 }},
		{"unknown payment type", func(r *models.CreateJobRequest) { r.Payment.Type = "barter" }},
		{"unknown work type", func(r *models.CreateJobRequest) { r.WorkType = "underwater" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validJobRequest()
			tt.mutate(req)
			_, err := engine.PostJob(ctx, "provider-1", req)
			require.Error(t, err)
			ce := utils.AsCustomError(err)
			require.NotNil(t, ce)
			assert.Equal(t, "validation_failed", ce.Kind)
		})
	}
}

func TestApplyToJob(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)

	applicant, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "I can cook")
	require.NoError(t, err)
	assert.Equal(t, "worker-1", applicant.WorkerID)
	assert.Equal(t, "pending", applicant.Status)
	assert.Equal(t, "I can cook", applicant.CoverLetter)

	stored, err := engine.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.Len(t, stored.Applicants, 1)
	assert.Equal(t, applicant.ID, stored.Applicants[0].ID)
}

func TestApplyToJobDuplicate(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)

	_, err = engine.ApplyToJob(ctx, "worker-1", job.ID, "first")
	require.NoError(t, err)

	_, err = engine.ApplyToJob(ctx, "worker-1", job.ID, "second")
	require.Error(t, err)
	ce := utils.AsCustomError(err)
	require.NotNil(t, ce)
	assert.Equal(t, "duplicate", ce.Kind)

	stored, err := engine.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Applicants, 1, "duplicate apply must not append")
}

func TestApplyToJobNotOpen(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)

	_, err = engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)

	// Accept worker-1 so the job leaves open.
	stored, err := engine.GetJob(ctx, job.ID)
	require.NoError(t, err)
	_, err = engine.DecideApplicant(ctx, "provider-1", job.ID, stored.Applicants[0].ID, "accepted")
	require.NoError(t, err)

	_, err = engine.ApplyToJob(ctx, "worker-2", job.ID, "")
	require.Error(t, err)
	ce := utils.AsCustomError(err)
	require.NotNil(t, ce)
	assert.Equal(t, "invalid_state", ce.Kind)
}

func TestDecideApplicantAccept(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	applicant, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)

	decided, err := engine.DecideApplicant(ctx, "provider-1", job.ID, applicant.ID, "accepted")
	require.NoError(t, err)

	assert.Equal(t, "in-progress", decided.Status)
	assert.Equal(t, "worker-1", decided.AssignedWorkerID)
	assert.Equal(t, "accepted", decided.Applicants[0].Status)
}

func TestDecideApplicantReject(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	applicant, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)

	decided, err := engine.DecideApplicant(ctx, "provider-1", job.ID, applicant.ID, "rejected")
	require.NoError(t, err)

	assert.Equal(t, "open", decided.Status, "reject must not move the job")
	assert.Empty(t, decided.AssignedWorkerID)
	assert.Equal(t, "rejected", decided.Applicants[0].Status)
}

func TestDecideApplicantRejectAfterAccept(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	first, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)
	second, err := engine.ApplyToJob(ctx, "worker-2", job.ID, "")
	require.NoError(t, err)

	_, err = engine.DecideApplicant(ctx, "provider-1", job.ID, first.ID, "accepted")
	require.NoError(t, err)

	// Rejecting the other applicant leaves the assignment and status alone.
	decided, err := engine.DecideApplicant(ctx, "provider-1", job.ID, second.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, "in-progress", decided.Status)
	assert.Equal(t, "worker-1", decided.AssignedWorkerID)
}

func TestDecideApplicantAcceptSwapsWorker(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	first, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)
	second, err := engine.ApplyToJob(ctx, "worker-2", job.ID, "")
	require.NoError(t, err)

	_, err = engine.DecideApplicant(ctx, "provider-1", job.ID, first.ID, "accepted")
	require.NoError(t, err)

	// Accepting another applicant on the now in-progress job re-points the
	// assignment; there is no status guard on the decision.
	decided, err := engine.DecideApplicant(ctx, "provider-1", job.ID, second.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, "in-progress", decided.Status)
	assert.Equal(t, "worker-2", decided.AssignedWorkerID)
	assert.Equal(t, "accepted", decided.ApplicantByID(first.ID).Status, "earlier acceptance is left untouched")
	assert.Equal(t, "accepted", decided.ApplicantByID(second.ID).Status)
}

func TestDecideApplicantAcceptOnCompletedJob(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	applicant, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)

	_, err = engine.CompleteJob(ctx, "provider-1", job.ID)
	require.NoError(t, err)

	// Acceptance forces the job back to in-progress even from completed.
	decided, err := engine.DecideApplicant(ctx, "provider-1", job.ID, applicant.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, "in-progress", decided.Status)
	assert.Equal(t, "worker-1", decided.AssignedWorkerID)
}

func TestDecideApplicantPendingRejected(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	applicant, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)

	for _, decision := range []string{"pending", "maybe", ""} {
		_, err := engine.DecideApplicant(ctx, "provider-1", job.ID, applicant.ID, decision)
		require.Error(t, err, "decision %q must be rejected", decision)
		ce := utils.AsCustomError(err)
		require.NotNil(t, ce)
		assert.Equal(t, "validation_failed", ce.Kind)
	}
}

func TestDecideApplicantOwnership(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	applicant, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)

	_, err = engine.DecideApplicant(ctx, "someone-else", job.ID, applicant.ID, "accepted")
	require.Error(t, err)
	ce := utils.AsCustomError(err)
	require.NotNil(t, ce)
	assert.Equal(t, "forbidden", ce.Kind)
}

func TestDecideApplicantNotFound(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)

	_, err = engine.DecideApplicant(ctx, "provider-1", job.ID, "no-such-applicant", "accepted")
	require.Error(t, err)
	ce := utils.AsCustomError(err)
	require.NotNil(t, ce)
	assert.Equal(t, "not_found", ce.Kind)
}

func TestCompleteJobIncrementsCounter(t *testing.T) {
	engine, _, users := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	applicant, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)
	_, err = engine.DecideApplicant(ctx, "provider-1", job.ID, applicant.ID, "accepted")
	require.NoError(t, err)

	completed, err := engine.CompleteJob(ctx, "provider-1", job.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)

	worker, err := users.GetByID(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, 1, worker.CompletedJobs)

	// Completing again re-increments: the operation has no idempotence guard.
	_, err = engine.CompleteJob(ctx, "provider-1", job.ID)
	require.NoError(t, err)
	worker, err = users.GetByID(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, 2, worker.CompletedJobs)
}

func TestCompleteJobCounterFailureIsBestEffort(t *testing.T) {
	engine, _, users := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	applicant, err := engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)
	_, err = engine.DecideApplicant(ctx, "provider-1", job.ID, applicant.ID, "accepted")
	require.NoError(t, err)

	users.IncrementErr = errors.New("users table unavailable")

	completed, err := engine.CompleteJob(ctx, "provider-1", job.ID)
	require.NoError(t, err, "counter failure must not fail completion")
	assert.Equal(t, "completed", completed.Status)
}

func TestCompleteJobWithoutAssignedWorker(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)

	// Completing an open job with nobody assigned is allowed.
	completed, err := engine.CompleteJob(ctx, "provider-1", job.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.Empty(t, completed.AssignedWorkerID)
}

func TestUpdateJobOwnershipOnly(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)

	title := "Cook for a wedding"
	_, err = engine.UpdateJob(ctx, "someone-else", job.ID, &models.UpdateJobRequest{Title: &title})
	require.Error(t, err)
	ce := utils.AsCustomError(err)
	require.NotNil(t, ce)
	assert.Equal(t, "forbidden", ce.Kind)

	updated, err := engine.UpdateJob(ctx, "provider-1", job.ID, &models.UpdateJobRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
}

func TestListJobsCityFilter(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	gurugram := validJobRequest()
	_, err := engine.PostJob(ctx, "provider-1", gurugram)
	require.NoError(t, err)

	pune := validJobRequest()
	pune.Location.City = "Pune"
	_, err = engine.PostJob(ctx, "provider-1", pune)
	require.NoError(t, err)

	// Case-insensitive substring match on city.
	list, err := engine.ListJobs(ctx, jobs.Filter{City: "gur"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Gurugram", list[0].Location.City)
}

func TestMyJobsBranchesOnUserType(t *testing.T) {
	engine, _, users := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)
	_, err = engine.ApplyToJob(ctx, "worker-1", job.ID, "")
	require.NoError(t, err)

	provider, err := users.GetByID(ctx, "provider-1")
	require.NoError(t, err)
	posted, err := engine.MyJobs(ctx, provider)
	require.NoError(t, err)
	assert.Len(t, posted, 1)

	worker, err := users.GetByID(ctx, "worker-1")
	require.NoError(t, err)
	applied, err := engine.MyJobs(ctx, worker)
	require.NoError(t, err)
	assert.Len(t, applied, 1)

	other, err := users.GetByID(ctx, "worker-2")
	require.NoError(t, err)
	none, err := engine.MyJobs(ctx, other)
	require.NoError(t, err)
	assert.Len(t, none, 0)
}

func TestDeleteJob(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	job, err := engine.PostJob(ctx, "provider-1", validJobRequest())
	require.NoError(t, err)

	err = engine.DeleteJob(ctx, "someone-else", job.ID)
	require.Error(t, err)

	require.NoError(t, engine.DeleteJob(ctx, "provider-1", job.ID))

	_, err = engine.GetJob(ctx, job.ID)
	require.Error(t, err)
	ce := utils.AsCustomError(err)
	require.NotNil(t, ce)
	assert.Equal(t, "not_found", ce.Kind)
}
