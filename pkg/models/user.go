package models

import "time"

// User types recognized by the role guard.
const (
	UserTypeWorker   = "worker"
	UserTypeProvider = "provider"
)

// User is a marketplace account. The aggregate fields (Rating, ReviewCount,
// CompletedJobs) are only ever written by the rating aggregator and the
// job-completion step.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Phone         string    `json:"phone"`
	UserType      string    `json:"user_type"`
	Skills        []string  `json:"skills,omitempty"`
	Categories    []string  `json:"categories,omitempty"`
	Experience    string    `json:"experience,omitempty"`
	Availability  string    `json:"availability,omitempty"`
	Location      Location  `json:"location"`
	Bio           string    `json:"bio,omitempty"`
	Verified      bool      `json:"verified"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
	CompletedJobs int       `json:"completed_jobs"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UserSummary is the populated subset of a user embedded in job and review
// responses.
type UserSummary struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Phone  string   `json:"phone,omitempty"`
	Rating float64  `json:"rating"`
	Skills []string `json:"skills,omitempty"`
	City   string   `json:"city,omitempty"`
}

// Summary projects a user onto its embeddable summary form.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Phone:  u.Phone,
		Rating: u.Rating,
		Skills: u.Skills,
		City:   u.Location.City,
	}
}

// WorkerFilter narrows worker directory searches.
type WorkerFilter struct {
	Category     string
	Skills       []string
	City         string
	Availability string
}
