// Package jobs implements the job application lifecycle: posting, applying,
// the accept/reject decision and completion.
//
// Canonical status graph for a job:
//
//	open ──► in-progress ──► completed
//	  │
//	  └────► cancelled
//
// completed and cancelled are terminal states. DecideApplicant deliberately
// does not consult this graph (the owning provider may re-accept an applicant
// on a job that already left open, which re-assigns the worker); the graph is
// the documented forward path, enforced where the source system enforced it.
package jobs

import "fmt"

// Status values for a job posting.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ApplicantStatus values for an embedded application.
type ApplicantStatus string

const (
	ApplicantPending  ApplicantStatus = "pending"
	ApplicantAccepted ApplicantStatus = "accepted"
	ApplicantRejected ApplicantStatus = "rejected"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	// completed and cancelled are terminal — no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// ParseApplicantStatus converts a raw string to an ApplicantStatus.
func ParseApplicantStatus(s string) (ApplicantStatus, error) {
	st := ApplicantStatus(s)
	switch st {
	case ApplicantPending, ApplicantAccepted, ApplicantRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown applicant status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// canonical state graph.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true for completed and cancelled.
func IsTerminal(s Status) bool {
	_, ok := validTransitions[s]
	return !ok
}
