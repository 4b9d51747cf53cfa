package models

import "time"

// ErrorResponse is the uniform error body returned by every handler.
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageResponse is a minimal acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// JobListResponse wraps job listings in the count+array envelope.
type JobListResponse struct {
	Count int   `json:"count"`
	Jobs  []Job `json:"jobs"`
}

// ApplyResponse acknowledges a submitted application.
type ApplyResponse struct {
	Message   string     `json:"message"`
	Applicant *Applicant `json:"applicant"`
}

// DecisionResponse returns the decided application together with the job.
type DecisionResponse struct {
	Message string `json:"message"`
	Job     *Job   `json:"job"`
}

// ReviewListResponse wraps review listings.
type ReviewListResponse struct {
	Count   int      `json:"count"`
	Reviews []Review `json:"reviews"`
}

// WorkerListResponse wraps worker directory listings.
type WorkerListResponse struct {
	Count   int    `json:"count"`
	Workers []User `json:"workers"`
}

// AuthResponse carries a fresh bearer token and the account it belongs to.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
