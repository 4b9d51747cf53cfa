package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillmarket/internal/core/jobs"
	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

// JobStore is the PostgreSQL job record store. The applicant list is stored
// as a jsonb document inside the job row, mirroring the embedded-document
// shape the lifecycle operates on.
type JobStore struct {
	pool *pgxpool.Pool
}

// NewJobStore returns a job store backed by the pool.
func NewJobStore(pool *pgxpool.Pool) *JobStore {
	return &JobStore{pool: pool}
}

const jobSelect = `
	SELECT j.id, j.title, j.description, j.category, j.skills_required,
	       j.address, j.city, j.state, j.pincode, j.latitude, j.longitude,
	       j.work_type, j.duration, j.payment_amount, j.payment_type,
	       j.provider_id, j.status, COALESCE(j.assigned_worker_id, ''),
	       j.applicants, j.deadline, j.posted_date, j.created_at, j.updated_at,
	       p.name, p.email, p.phone, p.rating, p.city,
	       COALESCE(w.name, ''), COALESCE(w.email, ''), COALESCE(w.phone, ''), COALESCE(w.rating, 0)
	FROM jobs j
	JOIN users p ON p.id = j.provider_id
	LEFT JOIN users w ON w.id = j.assigned_worker_id`

func scanJob(sc rowScanner) (*models.Job, error) {
	var (
		j        models.Job
		lat, lng *float64
		pName    string
		pEmail   string
		pPhone   string
		pRating  float64
		pCity    string
		wName    string
		wEmail   string
		wPhone   string
		wRating  float64
	)
	err := sc.Scan(
		&j.ID, &j.Title, &j.Description, &j.Category, &j.SkillsRequired,
		&j.Location.Address, &j.Location.City, &j.Location.State, &j.Location.Pincode, &lat, &lng,
		&j.WorkType, &j.Duration, &j.Payment.Amount, &j.Payment.Type,
		&j.ProviderID, &j.Status, &j.AssignedWorkerID,
		&j.Applicants, &j.Deadline, &j.PostedDate, &j.CreatedAt, &j.UpdatedAt,
		&pName, &pEmail, &pPhone, &pRating, &pCity,
		&wName, &wEmail, &wPhone, &wRating,
	)
	if err != nil {
		return nil, err
	}

	if lat != nil && lng != nil {
		j.Location.Coordinates = &models.Coordinates{Latitude: *lat, Longitude: *lng}
	}
	j.Provider = &models.UserSummary{
		ID:     j.ProviderID,
		Name:   pName,
		Email:  pEmail,
		Phone:  pPhone,
		Rating: pRating,
		City:   pCity,
	}
	if j.AssignedWorkerID != "" {
		j.AssignedWorker = &models.UserSummary{
			ID:     j.AssignedWorkerID,
			Name:   wName,
			Email:  wEmail,
			Phone:  wPhone,
			Rating: wRating,
		}
	}
	if j.Applicants == nil {
		j.Applicants = []models.Applicant{}
	}
	return &j, nil
}

// Create inserts a new job row.
func (s *JobStore) Create(ctx context.Context, job *models.Job) error {
	applicants, err := json.Marshal(job.Applicants)
	if err != nil {
		return fmt.Errorf("marshal applicants: %w", err)
	}

	var lat, lng *float64
	if c := job.Location.Coordinates; c != nil {
		lat, lng = &c.Latitude, &c.Longitude
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO jobs (id, title, description, category, skills_required,
		                   address, city, state, pincode, latitude, longitude,
		                   work_type, duration, payment_amount, payment_type,
		                   provider_id, status, assigned_worker_id, applicants,
		                   deadline, posted_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		         $15, $16, $17, NULLIF($18, ''), $19, $20, $21, $22, $23)`,
		job.ID, job.Title, job.Description, job.Category, job.SkillsRequired,
		job.Location.Address, job.Location.City, job.Location.State, job.Location.Pincode, lat, lng,
		job.WorkType, job.Duration, job.Payment.Amount, job.Payment.Type,
		job.ProviderID, job.Status, job.AssignedWorkerID, applicants,
		job.Deadline, job.PostedDate, job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetByID returns a job with populated provider, assigned worker and
// applicant worker summaries.
func (s *JobStore) GetByID(ctx context.Context, id string) (*models.Job, error) {
	row := s.pool.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewNotFoundError("Job not found")
		}
		return nil, fmt.Errorf("get job: %w", err)
	}

	if err := s.populateApplicantWorkers(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Update persists the whole job document, embedded applicants included.
func (s *JobStore) Update(ctx context.Context, job *models.Job) error {
	// Strip populated summaries before storing the applicant list; they are
	// rebuilt on read.
	stored := make([]models.Applicant, len(job.Applicants))
	copy(stored, job.Applicants)
	for i := range stored {
		stored[i].Worker = nil
	}
	applicants, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal applicants: %w", err)
	}

	var lat, lng *float64
	if c := job.Location.Coordinates; c != nil {
		lat, lng = &c.Latitude, &c.Longitude
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs
		 SET title = $2, description = $3, category = $4, skills_required = $5,
		     address = $6, city = $7, state = $8, pincode = $9, latitude = $10, longitude = $11,
		     work_type = $12, duration = $13, payment_amount = $14, payment_type = $15,
		     status = $16, assigned_worker_id = NULLIF($17, ''), applicants = $18,
		     deadline = $19, updated_at = $20
		 WHERE id = $1`,
		job.ID, job.Title, job.Description, job.Category, job.SkillsRequired,
		job.Location.Address, job.Location.City, job.Location.State, job.Location.Pincode, lat, lng,
		job.WorkType, job.Duration, job.Payment.Amount, job.Payment.Type,
		job.Status, job.AssignedWorkerID, applicants,
		job.Deadline, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NewNotFoundError("Job not found")
	}
	return nil
}

// Delete removes a job row.
func (s *JobStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return utils.NewNotFoundError("Job not found")
	}
	return nil
}

// List returns jobs matching the filter, newest postedDate first.
func (s *JobStore) List(ctx context.Context, f jobs.Filter) ([]models.Job, error) {
	query := jobSelect + ` WHERE 1=1`
	args := []any{}

	if f.Category != "" {
		args = append(args, f.Category)
		query += fmt.Sprintf(" AND j.category = $%d", len(args))
	}
	if f.City != "" {
		args = append(args, "%"+f.City+"%")
		query += fmt.Sprintf(" AND j.city ILIKE $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND j.status = $%d", len(args))
	}
	if f.WorkType != "" {
		args = append(args, f.WorkType)
		query += fmt.Sprintf(" AND j.work_type = $%d", len(args))
	}
	query += ` ORDER BY j.posted_date DESC`

	return s.queryJobs(ctx, query, args...)
}

// ListByProvider returns the jobs a provider posted, newest first.
func (s *JobStore) ListByProvider(ctx context.Context, providerID string) ([]models.Job, error) {
	return s.queryJobs(ctx, jobSelect+` WHERE j.provider_id = $1 ORDER BY j.posted_date DESC`, providerID)
}

// ListByApplicant returns the jobs a worker has applied to, newest first.
func (s *JobStore) ListByApplicant(ctx context.Context, workerID string) ([]models.Job, error) {
	return s.queryJobs(ctx, jobSelect+`
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements(j.applicants) a
			WHERE a->>'worker_id' = $1
		)
		ORDER BY j.posted_date DESC`, workerID)
}

func (s *JobStore) queryJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs query: %w", err)
	}
	defer rows.Close()

	result := make([]models.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("list jobs scan: %w", err)
		}
		result = append(result, *job)
	}
	return result, rows.Err()
}

// populateApplicantWorkers attaches worker summaries to each embedded
// applicant.
func (s *JobStore) populateApplicantWorkers(ctx context.Context, job *models.Job) error {
	if len(job.Applicants) == 0 {
		return nil
	}

	ids := make([]string, 0, len(job.Applicants))
	for _, a := range job.Applicants {
		ids = append(ids, a.WorkerID)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, phone, rating, skills, city FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("applicant workers query: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]*models.UserSummary)
	for rows.Next() {
		var sum models.UserSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Email, &sum.Phone, &sum.Rating, &sum.Skills, &sum.City); err != nil {
			return fmt.Errorf("applicant workers scan: %w", err)
		}
		summaries[sum.ID] = &sum
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range job.Applicants {
		job.Applicants[i].Worker = summaries[job.Applicants[i].WorkerID]
	}
	return nil
}
