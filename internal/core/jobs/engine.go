package jobs

import (
	"context"
	"time"

	"skillmarket/internal/events"
	"skillmarket/internal/logging"
	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

// Filter narrows job listings. City matches as a case-insensitive substring;
// the rest are exact matches.
type Filter struct {
	Category string
	City     string
	Status   string
	WorkType string
}

// JobStore is the job record store consumed by the engine. Updates persist
// the whole job document, embedded applicants included.
type JobStore interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f Filter) ([]models.Job, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Job, error)
	ListByApplicant(ctx context.Context, workerID string) ([]models.Job, error)
}

// UserStore is the slice of the identity store the lifecycle touches.
type UserStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	IncrementCompletedJobs(ctx context.Context, workerID string) error
}

// Engine enforces the job lifecycle. It is transport-agnostic: the HTTP
// handlers call into it and map its errors onto status codes.
type Engine struct {
	store  JobStore
	users  UserStore
	events events.Publisher
}

// NewEngine returns a configured Engine.
func NewEngine(store JobStore, users UserStore, publisher events.Publisher) *Engine {
	if publisher == nil {
		publisher = events.Noop()
	}
	return &Engine{store: store, users: users, events: publisher}
}

// requireOwner checks that the actor owns the job. Every mutating operation
// calls this before touching anything.
func requireOwner(actorID string, job *models.Job) error {
	if job.ProviderID != actorID {
		return utils.NewForbiddenError("Not authorized to modify this job")
	}
	return nil
}

// PostJob creates a new open job owned by the provider.
func (e *Engine) PostJob(ctx context.Context, providerID string, req *models.CreateJobRequest) (*models.Job, error) {
	if err := validatePostJob(req); err != nil {
		return nil, err
	}

	workType := req.WorkType
	if workType == "" {
		workType = "on-site"
	}

	now := time.Now().UTC()
	job := &models.Job{
		ID:             utils.NewID(),
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		SkillsRequired: req.SkillsRequired,
		Location:       req.Location,
		WorkType:       workType,
		Duration:       req.Duration,
		Payment:        req.Payment,
		ProviderID:     providerID,
		Status:         string(StatusOpen),
		Applicants:     []models.Applicant{},
		Deadline:       req.Deadline,
		PostedDate:     now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := e.store.Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func validatePostJob(req *models.CreateJobRequest) error {
	switch {
	case req.Title == "":
		return utils.NewValidationError("Please provide a job title")
	case req.Description == "":
		return utils.NewValidationError("Please provide a job description")
	case req.Category == "":
		return utils.NewValidationError("Please specify a category")
	case !utils.Contains(models.JobCategories, req.Category):
		return utils.NewValidationError("Unknown job category")
	case req.Location.City == "":
		return utils.NewValidationError("Please provide a city")
	case req.Duration == "":
		return utils.NewValidationError("Please specify a duration")
	case req.Payment.Amount <= 0:
		return utils.NewValidationError("Please specify payment amount")
	case !utils.Contains([]string{"hourly", "daily", "fixed", "monthly"}, req.Payment.Type):
		return utils.NewValidationError("Unknown payment type")
	}
	if req.WorkType != "" && !utils.Contains([]string{"remote", "on-site", "hybrid"}, req.WorkType) {
		return utils.NewValidationError("Unknown work type")
	}
	return nil
}

// ListJobs returns jobs matching the filter, newest postedDate first.
func (e *Engine) ListJobs(ctx context.Context, f Filter) ([]models.Job, error) {
	return e.store.List(ctx, f)
}

// GetJob returns a single job with populated provider, assigned worker and
// applicant worker summaries.
func (e *Engine) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return e.store.GetByID(ctx, id)
}

// UpdateJob applies a generic field patch, gated by ownership only. There is
// no state-machine constraint here: a provider may edit a completed job.
func (e *Engine) UpdateJob(ctx context.Context, actorID, jobID string, patch *models.UpdateJobRequest) (*models.Job, error) {
	job, err := e.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actorID, job); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		job.Title = *patch.Title
	}
	if patch.Description != nil {
		job.Description = *patch.Description
	}
	if patch.Category != nil {
		if !utils.Contains(models.JobCategories, *patch.Category) {
			return nil, utils.NewValidationError("Unknown job category")
		}
		job.Category = *patch.Category
	}
	if patch.SkillsRequired != nil {
		job.SkillsRequired = patch.SkillsRequired
	}
	if patch.Location != nil {
		job.Location = *patch.Location
	}
	if patch.WorkType != nil {
		job.WorkType = *patch.WorkType
	}
	if patch.Duration != nil {
		job.Duration = *patch.Duration
	}
	if patch.Payment != nil {
		job.Payment = *patch.Payment
	}
	if patch.Status != nil {
		if _, err := ParseStatus(*patch.Status); err != nil {
			return nil, utils.NewValidationError(err.Error())
		}
		job.Status = *patch.Status
	}
	if patch.Deadline != nil {
		job.Deadline = patch.Deadline
	}
	job.UpdatedAt = time.Now().UTC()

	if err := e.store.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes a job, gated by ownership only.
func (e *Engine) DeleteJob(ctx context.Context, actorID, jobID string) error {
	job, err := e.store.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := requireOwner(actorID, job); err != nil {
		return err
	}
	return e.store.Delete(ctx, jobID)
}

// ApplyToJob appends a pending application for the worker. The duplicate
// check is a read-then-write sequence with no store constraint behind it;
// two racing calls can both pass it (documented, store-level ordering only).
func (e *Engine) ApplyToJob(ctx context.Context, workerID, jobID, coverLetter string) (*models.Applicant, error) {
	job, err := e.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != string(StatusOpen) {
		return nil, utils.NewInvalidStateError("This job is no longer accepting applications")
	}
	if job.HasApplicantFrom(workerID) {
		return nil, utils.NewDuplicateError("You have already applied for this job")
	}

	applicant := models.Applicant{
		ID:          utils.NewID(),
		WorkerID:    workerID,
		AppliedAt:   time.Now().UTC(),
		CoverLetter: coverLetter,
		Status:      string(ApplicantPending),
	}
	job.Applicants = append(job.Applicants, applicant)
	job.UpdatedAt = time.Now().UTC()

	if err := e.store.Update(ctx, job); err != nil {
		return nil, err
	}

	e.events.Publish(ctx, events.ChannelJobApplied, map[string]string{
		"job_id":    job.ID,
		"worker_id": workerID,
	})
	return &applicant, nil
}

// DecideApplicant accepts or rejects an application. On accept the job moves
// to in-progress and the worker is assigned, whatever the job's current
// status; other pending applicants are left untouched.
func (e *Engine) DecideApplicant(ctx context.Context, actorID, jobID, applicantID, decision string) (*models.Job, error) {
	status, err := ParseApplicantStatus(decision)
	if err != nil || status == ApplicantPending {
		return nil, utils.NewValidationError("Decision must be accepted or rejected")
	}

	job, err := e.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actorID, job); err != nil {
		return nil, err
	}

	applicant := job.ApplicantByID(applicantID)
	if applicant == nil {
		return nil, utils.NewNotFoundError("Applicant not found")
	}

	applicant.Status = string(status)
	if status == ApplicantAccepted {
		job.AssignedWorkerID = applicant.WorkerID
		job.Status = string(StatusInProgress)
	}
	job.UpdatedAt = time.Now().UTC()

	if err := e.store.Update(ctx, job); err != nil {
		return nil, err
	}

	if status == ApplicantAccepted {
		e.events.Publish(ctx, events.ChannelJobAssigned, map[string]string{
			"job_id":    job.ID,
			"worker_id": applicant.WorkerID,
		})
	}
	return job, nil
}

// CompleteJob marks a job completed and bumps the assigned worker's
// completed-jobs counter. The counter update is best-effort: its failure is
// logged and never rolls back the status change.
func (e *Engine) CompleteJob(ctx context.Context, actorID, jobID string) (*models.Job, error) {
	job, err := e.store.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(actorID, job); err != nil {
		return nil, err
	}

	job.Status = string(StatusCompleted)
	job.UpdatedAt = time.Now().UTC()
	if err := e.store.Update(ctx, job); err != nil {
		return nil, err
	}

	if job.AssignedWorkerID != "" {
		if err := e.users.IncrementCompletedJobs(ctx, job.AssignedWorkerID); err != nil {
			logging.GetGlobalLogger().Warn("completed-jobs counter update failed", map[string]interface{}{
				"job_id":    job.ID,
				"worker_id": job.AssignedWorkerID,
				"error":     err.Error(),
			})
		}
	}

	e.events.Publish(ctx, events.ChannelJobCompleted, map[string]string{
		"job_id":    job.ID,
		"worker_id": job.AssignedWorkerID,
	})
	return job, nil
}

// MyJobs returns the jobs a provider posted, or the jobs a worker applied to.
func (e *Engine) MyJobs(ctx context.Context, user *models.User) ([]models.Job, error) {
	if user.UserType == models.UserTypeProvider {
		return e.store.ListByProvider(ctx, user.ID)
	}
	return e.store.ListByApplicant(ctx, user.ID)
}
