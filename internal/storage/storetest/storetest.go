// Package storetest provides in-memory store doubles for the lifecycle
// engine, the rating aggregator and the HTTP handlers.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"skillmarket/internal/core/jobs"
	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

// Jobs is an in-memory jobs.JobStore.
type Jobs struct {
	mu   sync.Mutex
	byID map[string]*models.Job
}

// NewJobs returns an empty in-memory job store.
func NewJobs() *Jobs {
	return &Jobs{byID: make(map[string]*models.Job)}
}

func copyJob(j *models.Job) *models.Job {
	out := *j
	out.Applicants = make([]models.Applicant, len(j.Applicants))
	copy(out.Applicants, j.Applicants)
	return &out
}

func (s *Jobs) Create(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[job.ID] = copyJob(job)
	return nil
}

func (s *Jobs) GetByID(_ context.Context, id string) (*models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.byID[id]
	if !ok {
		return nil, utils.NewNotFoundError("Job not found")
	}
	return copyJob(job), nil
}

func (s *Jobs) Update(_ context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[job.ID]; !ok {
		return utils.NewNotFoundError("Job not found")
	}
	s.byID[job.ID] = copyJob(job)
	return nil
}

func (s *Jobs) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return utils.NewNotFoundError("Job not found")
	}
	delete(s.byID, id)
	return nil
}

func (s *Jobs) List(_ context.Context, f jobs.Filter) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Job, 0)
	for _, job := range s.byID {
		if f.Category != "" && job.Category != f.Category {
			continue
		}
		if f.Status != "" && job.Status != f.Status {
			continue
		}
		if f.WorkType != "" && job.WorkType != f.WorkType {
			continue
		}
		if f.City != "" && !strings.Contains(strings.ToLower(job.Location.City), strings.ToLower(f.City)) {
			continue
		}
		result = append(result, *copyJob(job))
	}
	sortByPostedDate(result)
	return result, nil
}

func (s *Jobs) ListByProvider(_ context.Context, providerID string) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Job, 0)
	for _, job := range s.byID {
		if job.ProviderID == providerID {
			result = append(result, *copyJob(job))
		}
	}
	sortByPostedDate(result)
	return result, nil
}

func (s *Jobs) ListByApplicant(_ context.Context, workerID string) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Job, 0)
	for _, job := range s.byID {
		if job.HasApplicantFrom(workerID) {
			result = append(result, *copyJob(job))
		}
	}
	sortByPostedDate(result)
	return result, nil
}

func sortByPostedDate(list []models.Job) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].PostedDate.After(list[j].PostedDate)
	})
}

// Users is an in-memory account store. It satisfies both the engine's
// UserStore and the handlers' user directory.
type Users struct {
	mu   sync.Mutex
	byID map[string]*models.User

	// IncrementErr, when set, is returned by IncrementCompletedJobs.
	IncrementErr error
}

// NewUsers returns an empty in-memory user store.
func NewUsers() *Users {
	return &Users{byID: make(map[string]*models.User)}
}

// Seed inserts a user directly, bypassing uniqueness checks.
func (s *Users) Seed(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *user
	s.byID[user.ID] = &cp
}

func (s *Users) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == user.Email {
			return utils.NewDuplicateError("An account with this email already exists")
		}
	}
	cp := *user
	s.byID[user.ID] = &cp
	return nil
}

func (s *Users) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	if !ok {
		return nil, utils.NewNotFoundError("User not found")
	}
	cp := *user
	return &cp, nil
}

func (s *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Users) Update(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[user.ID]; !ok {
		return utils.NewNotFoundError("User not found")
	}
	cp := *user
	s.byID[user.ID] = &cp
	return nil
}

func (s *Users) IncrementCompletedJobs(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.IncrementErr != nil {
		return s.IncrementErr
	}
	user, ok := s.byID[userID]
	if !ok {
		return utils.NewNotFoundError("User not found")
	}
	user.CompletedJobs++
	return nil
}

func (s *Users) ListWorkers(_ context.Context) ([]models.User, error) {
	return s.workers(func(*models.User) bool { return true })
}

func (s *Users) SearchWorkers(_ context.Context, f models.WorkerFilter) ([]models.User, error) {
	return s.workers(func(u *models.User) bool {
		if f.Category != "" && !utils.Contains(u.Categories, f.Category) {
			return false
		}
		if len(f.Skills) > 0 && !hasAnySkill(u.Skills, f.Skills) {
			return false
		}
		if f.City != "" && !strings.Contains(strings.ToLower(u.Location.City), strings.ToLower(f.City)) {
			return false
		}
		if f.Availability != "" && u.Availability != f.Availability {
			return false
		}
		return true
	})
}

func hasAnySkill(have, want []string) bool {
	for _, skill := range want {
		if utils.Contains(have, skill) {
			return true
		}
	}
	return false
}

func (s *Users) workers(match func(*models.User) bool) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.User, 0)
	for _, u := range s.byID {
		if u.UserType == models.UserTypeWorker && match(u) {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Rating > result[j].Rating
	})
	return result, nil
}

// Reviews is an in-memory reviews.Store. It recomputes the reviewee aggregate
// against the linked Users store, mirroring the transactional behavior of the
// real store.
type Reviews struct {
	mu    sync.Mutex
	byID  map[string]*models.Review
	users *Users
}

// NewReviews returns an empty in-memory review store writing aggregates into
// users.
func NewReviews(users *Users) *Reviews {
	return &Reviews{byID: make(map[string]*models.Review), users: users}
}

func (s *Reviews) SubmitAndRecalculate(_ context.Context, review *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.JobID == review.JobID && r.ReviewerID == review.ReviewerID {
			return utils.NewDuplicateError("You have already reviewed this job")
		}
	}
	review.CreatedAt = time.Now().UTC()
	cp := *review
	s.byID[review.ID] = &cp

	var sum, count int
	for _, r := range s.byID {
		if r.RevieweeID == review.RevieweeID {
			sum += r.Rating
			count++
		}
	}

	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	if reviewee, ok := s.users.byID[review.RevieweeID]; ok {
		reviewee.Rating = float64(sum) / float64(count)
		reviewee.ReviewCount = count
	}
	return nil
}

func (s *Reviews) GetByJobAndReviewer(_ context.Context, jobID, reviewerID string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.JobID == jobID && r.ReviewerID == reviewerID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Reviews) GetByID(_ context.Context, id string) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	review, ok := s.byID[id]
	if !ok {
		return nil, utils.NewNotFoundError("Review not found")
	}
	cp := *review
	return &cp, nil
}

func (s *Reviews) ListByReviewee(_ context.Context, userID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Review, 0)
	for _, r := range s.byID {
		if r.RevieweeID == userID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
