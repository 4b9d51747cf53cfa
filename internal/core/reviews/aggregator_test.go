package reviews_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillmarket/internal/core/reviews"
	"skillmarket/internal/storage/storetest"
	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

func newTestAggregator(t *testing.T) (*reviews.Aggregator, *storetest.Users) {
	t.Helper()
	users := storetest.NewUsers()
	users.Seed(&models.User{ID: "worker-1", Name: "Asha", Email: "asha@example.com", UserType: models.UserTypeWorker})
	users.Seed(&models.User{ID: "provider-1", Name: "Priya", Email: "priya@example.com", UserType: models.UserTypeProvider})
	store := storetest.NewReviews(users)
	return reviews.NewAggregator(store, nil), users
}

func workerReview(jobID string, rating int) *models.CreateReviewRequest {
	return &models.CreateReviewRequest{
		Job:        jobID,
		Reviewee:   "worker-1",
		Rating:     rating,
		Comment:    "did a great job",
		ReviewType: models.ReviewTypeWorker,
	}
}

func TestSubmitReviewUpdatesAggregate(t *testing.T) {
	aggregator, users := newTestAggregator(t)
	ctx := context.Background()

	_, err := aggregator.SubmitReview(ctx, "provider-1", workerReview("job-1", 4))
	require.NoError(t, err)

	worker, err := users.GetByID(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, worker.Rating)
	assert.Equal(t, 1, worker.ReviewCount)

	_, err = aggregator.SubmitReview(ctx, "provider-1", workerReview("job-2", 5))
	require.NoError(t, err)

	worker, err = users.GetByID(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, 4.5, worker.Rating, "rating must be the exact mean of 4 and 5")
	assert.Equal(t, 2, worker.ReviewCount)
}

func TestSubmitReviewDuplicate(t *testing.T) {
	aggregator, users := newTestAggregator(t)
	ctx := context.Background()

	_, err := aggregator.SubmitReview(ctx, "provider-1", workerReview("job-1", 4))
	require.NoError(t, err)

	_, err = aggregator.SubmitReview(ctx, "provider-1", workerReview("job-1", 1))
	require.Error(t, err)
	ce := utils.AsCustomError(err)
	require.NotNil(t, ce)
	assert.Equal(t, "duplicate", ce.Kind)

	// The failed submission must leave the aggregate untouched.
	worker, err := users.GetByID(ctx, "worker-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, worker.Rating)
	assert.Equal(t, 1, worker.ReviewCount)
}

func TestSubmitReviewValidation(t *testing.T) {
	aggregator, _ := newTestAggregator(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.CreateReviewRequest)
	}{
		{"rating too low", func(r *models.CreateReviewRequest) { r.Rating = 0 }},
		{"rating too high", func(r *models.CreateReviewRequest) { r.Rating = 6 }},
		{"missing comment", func(r *models.CreateReviewRequest) { r.Comment = "" }},
		{"unknown review type", func(r *models.CreateReviewRequest) { r.ReviewType = "peer-review" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := workerReview("job-1", 4)
			tt.mutate(req)
			_, err := aggregator.SubmitReview(ctx, "provider-1", req)
			require.Error(t, err)
			ce := utils.AsCustomError(err)
			require.NotNil(t, ce)
			assert.Equal(t, "validation_failed", ce.Kind)
		})
	}
}

func TestListReviewsForNewestFirst(t *testing.T) {
	aggregator, _ := newTestAggregator(t)
	ctx := context.Background()

	first, err := aggregator.SubmitReview(ctx, "provider-1", workerReview("job-1", 3))
	require.NoError(t, err)
	second, err := aggregator.SubmitReview(ctx, "provider-1", workerReview("job-2", 5))
	require.NoError(t, err)

	list, err := aggregator.ListReviewsFor(ctx, "worker-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestMean(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []int{4}, 4},
		{"exact mean", []int{4, 5}, 4.5},
		{"thirds", []int{5, 4, 3}, 4},
		{"all ones", []int{1, 1, 1, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reviews.Mean(tt.ratings))
		})
	}
}
