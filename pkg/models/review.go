package models

import "time"

// Review types: a provider reviewing a worker or the other way around.
const (
	ReviewTypeWorker   = "worker-review"
	ReviewTypeProvider = "provider-review"
)

// Review is a one-per-(job, reviewer) rating. Unlike applicants, reviews are
// top-level entities and their uniqueness is backed by a storage constraint.
type Review struct {
	ID         string       `json:"id"`
	JobID      string       `json:"job_id"`
	JobTitle   string       `json:"job_title,omitempty"`
	ReviewerID string       `json:"reviewer_id"`
	Reviewer   *UserSummary `json:"reviewer,omitempty"`
	RevieweeID string       `json:"reviewee_id"`
	Reviewee   *UserSummary `json:"reviewee,omitempty"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment"`
	ReviewType string       `json:"review_type"`
	CreatedAt  time.Time    `json:"created_at"`
}
