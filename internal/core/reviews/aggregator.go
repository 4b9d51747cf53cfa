// Package reviews implements review submission and the rating aggregate it
// drives. A user's rating is always the arithmetic mean of every review they
// have received, recomputed in full on each submission — never adjusted
// incrementally.
package reviews

import (
	"context"

	"skillmarket/internal/events"
	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

// Store is the review record store. SubmitAndRecalculate must insert the
// review and recompute the reviewee's aggregate (mean rating + review count)
// as one atomic unit, and must surface a duplicate error when the
// (job, reviewer) uniqueness constraint trips.
type Store interface {
	SubmitAndRecalculate(ctx context.Context, review *models.Review) error
	GetByJobAndReviewer(ctx context.Context, jobID, reviewerID string) (*models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListByReviewee(ctx context.Context, userID string) ([]models.Review, error)
}

// Aggregator handles review creation and lookups.
type Aggregator struct {
	store  Store
	events events.Publisher
}

// NewAggregator returns a configured Aggregator.
func NewAggregator(store Store, publisher events.Publisher) *Aggregator {
	if publisher == nil {
		publisher = events.Noop()
	}
	return &Aggregator{store: store, events: publisher}
}

// SubmitReview creates a review for (job, reviewer). The explicit lookup is
// the first line of defense against duplicates; the store's uniqueness
// constraint is the second and authoritative one.
func (a *Aggregator) SubmitReview(ctx context.Context, reviewerID string, req *models.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.NewValidationError("Rating must be between 1 and 5")
	}
	if req.Comment == "" {
		return nil, utils.NewValidationError("Please provide a review comment")
	}
	if req.ReviewType != models.ReviewTypeWorker && req.ReviewType != models.ReviewTypeProvider {
		return nil, utils.NewValidationError("Unknown review type")
	}

	existing, err := a.store.GetByJobAndReviewer(ctx, req.Job, reviewerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewDuplicateError("You have already reviewed this job")
	}

	review := &models.Review{
		ID:         utils.NewID(),
		JobID:      req.Job,
		ReviewerID: reviewerID,
		RevieweeID: req.Reviewee,
		Rating:     req.Rating,
		Comment:    req.Comment,
		ReviewType: req.ReviewType,
	}
	if err := a.store.SubmitAndRecalculate(ctx, review); err != nil {
		return nil, err
	}

	a.events.Publish(ctx, events.ChannelReviewCreated, map[string]string{
		"review_id":   review.ID,
		"job_id":      review.JobID,
		"reviewee_id": review.RevieweeID,
	})
	return review, nil
}

// ListReviewsFor returns a user's received reviews, newest first.
func (a *Aggregator) ListReviewsFor(ctx context.Context, userID string) ([]models.Review, error) {
	return a.store.ListByReviewee(ctx, userID)
}

// GetReview returns one review by id.
func (a *Aggregator) GetReview(ctx context.Context, id string) (*models.Review, error) {
	return a.store.GetByID(ctx, id)
}

// Mean is the aggregate a reviewee's rating must always equal: the arithmetic
// mean of all their review ratings, 0 when there are none.
func Mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
