package models

import "time"

// CreateJobRequest is the payload for posting a job.
type CreateJobRequest struct {
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description" validate:"required"`
	Category       string     `json:"category" validate:"required,oneof=home-based part-time freelancing local-services manual-jobs cooking packing handicrafts tailoring baking artwork plumbing electrical delivery repair other"`
	SkillsRequired []string   `json:"skills_required,omitempty"`
	Location       Location   `json:"location" validate:"required"`
	WorkType       string     `json:"work_type,omitempty" validate:"omitempty,oneof=remote on-site hybrid"`
	Duration       string     `json:"duration" validate:"required"`
	Payment        Payment    `json:"payment" validate:"required"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}

// UpdateJobRequest is a partial patch; nil fields are left untouched.
type UpdateJobRequest struct {
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Category       *string    `json:"category,omitempty" validate:"omitempty,oneof=home-based part-time freelancing local-services manual-jobs cooking packing handicrafts tailoring baking artwork plumbing electrical delivery repair other"`
	SkillsRequired []string   `json:"skills_required,omitempty"`
	Location       *Location  `json:"location,omitempty"`
	WorkType       *string    `json:"work_type,omitempty" validate:"omitempty,oneof=remote on-site hybrid"`
	Duration       *string    `json:"duration,omitempty"`
	Payment        *Payment   `json:"payment,omitempty"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=open in-progress completed cancelled"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}

// ApplyRequest is the payload for a worker applying to a job.
type ApplyRequest struct {
	CoverLetter string `json:"cover_letter,omitempty" validate:"omitempty,max=2000"`
}

// DecideApplicantRequest carries the provider's accept/reject decision.
type DecideApplicantRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// CreateReviewRequest is the payload for submitting a review.
type CreateReviewRequest struct {
	Job        string `json:"job" validate:"required"`
	Reviewee   string `json:"reviewee" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"required,max=500"`
	ReviewType string `json:"review_type" validate:"required,oneof=worker-review provider-review"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Phone    string   `json:"phone" validate:"required"`
	UserType string   `json:"user_type" validate:"required,oneof=worker provider"`
	Skills   []string `json:"skills,omitempty"`
	Location Location `json:"location"`
}

// LoginRequest exchanges credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest is a partial profile patch; worker-only fields are
// ignored for providers.
type UpdateProfileRequest struct {
	Name         *string   `json:"name,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	Bio          *string   `json:"bio,omitempty" validate:"omitempty,max=500"`
	Location     *Location `json:"location,omitempty"`
	Skills       []string  `json:"skills,omitempty"`
	Categories   []string  `json:"categories,omitempty"`
	Availability *string   `json:"availability,omitempty" validate:"omitempty,oneof=full-time part-time flexible weekends-only"`
	Experience   *string   `json:"experience,omitempty"`
	Password     *string   `json:"password,omitempty" validate:"omitempty,min=6"`
}
