package models

import "time"

// Job categories accepted by the marketplace. Kept as a list so both the
// validator tags and the profile category filters stay in sync with it.
var JobCategories = []string{
	"home-based", "part-time", "freelancing", "local-services", "manual-jobs",
	"cooking", "packing", "handicrafts", "tailoring", "baking", "artwork",
	"plumbing", "electrical", "delivery", "repair", "other",
}

// Coordinates holds an optional geo point for a location.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a free-text city/state address with optional coordinates.
type Location struct {
	Address     string       `json:"address,omitempty"`
	City        string       `json:"city" validate:"required"`
	State       string       `json:"state,omitempty"`
	Pincode     string       `json:"pincode,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Payment describes how a job pays out.
type Payment struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Type   string  `json:"type" validate:"required,oneof=hourly daily fixed monthly"`
}

// Applicant is a worker's application, embedded in its parent job. It has no
// identity outside the job and no storage-level uniqueness constraint; the
// one-application-per-worker rule is enforced at write time by the engine.
type Applicant struct {
	ID          string       `json:"id"`
	WorkerID    string       `json:"worker_id"`
	Worker      *UserSummary `json:"worker,omitempty"`
	AppliedAt   time.Time    `json:"applied_at"`
	CoverLetter string       `json:"cover_letter,omitempty"`
	Status      string       `json:"status"`
}

// Job represents a posted job and its embedded applicant list.
type Job struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Category         string       `json:"category"`
	SkillsRequired   []string     `json:"skills_required,omitempty"`
	Location         Location     `json:"location"`
	WorkType         string       `json:"work_type"`
	Duration         string       `json:"duration"`
	Payment          Payment      `json:"payment"`
	ProviderID       string       `json:"provider_id"`
	Provider         *UserSummary `json:"provider,omitempty"`
	Status           string       `json:"status"`
	AssignedWorkerID string       `json:"assigned_worker_id,omitempty"`
	AssignedWorker   *UserSummary `json:"assigned_worker,omitempty"`
	Applicants       []Applicant  `json:"applicants"`
	Deadline         *time.Time   `json:"deadline,omitempty"`
	PostedDate       time.Time    `json:"posted_date"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// ApplicantByID returns the embedded applicant with the given id, or nil.
func (j *Job) ApplicantByID(id string) *Applicant {
	for i := range j.Applicants {
		if j.Applicants[i].ID == id {
			return &j.Applicants[i]
		}
	}
	return nil
}

// HasApplicantFrom reports whether the worker already applied to this job.
func (j *Job) HasApplicantFrom(workerID string) bool {
	for i := range j.Applicants {
		if j.Applicants[i].WorkerID == workerID {
			return true
		}
	}
	return false
}
