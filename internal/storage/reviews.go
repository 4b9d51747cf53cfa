package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

// ReviewStore is the PostgreSQL review store. It owns the reviewee aggregate:
// rating and review_count on users are only ever written inside
// SubmitAndRecalculate's transaction.
type ReviewStore struct {
	pool *pgxpool.Pool
}

// NewReviewStore returns a review store backed by the pool.
func NewReviewStore(pool *pgxpool.Pool) *ReviewStore {
	return &ReviewStore{pool: pool}
}

// SubmitAndRecalculate inserts the review and recomputes the reviewee's
// rating as the full mean over all their reviews, in one transaction. Either
// both land or neither does.
func (s *ReviewStore) SubmitAndRecalculate(ctx context.Context, review *models.Review) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin review tx: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO reviews (id, job_id, reviewer_id, reviewee_id, rating, comment, review_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		review.ID, review.JobID, review.ReviewerID, review.RevieweeID,
		review.Rating, review.Comment, review.ReviewType,
	).Scan(&review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return utils.NewDuplicateError("You have already reviewed this job")
		}
		return fmt.Errorf("insert review: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE users u
		 SET rating = agg.mean, review_count = agg.cnt, updated_at = NOW()
		 FROM (
		     SELECT AVG(rating)::DOUBLE PRECISION AS mean, COUNT(*)::INTEGER AS cnt
		     FROM reviews WHERE reviewee_id = $1
		 ) agg
		 WHERE u.id = $1`,
		review.RevieweeID,
	)
	if err != nil {
		return fmt.Errorf("recalculate rating: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit review tx: %w", err)
	}
	return nil
}

const reviewSelect = `
	SELECT r.id, r.job_id, j.title, r.reviewer_id, r.reviewee_id,
	       r.rating, r.comment, r.review_type, r.created_at,
	       er.name, er.rating, ee.name, ee.rating
	FROM reviews r
	JOIN jobs j ON j.id = r.job_id
	JOIN users er ON er.id = r.reviewer_id
	JOIN users ee ON ee.id = r.reviewee_id`

func scanReview(sc rowScanner) (*models.Review, error) {
	var (
		r              models.Review
		reviewerName   string
		reviewerRating float64
		revieweeName   string
		revieweeRating float64
	)
	err := sc.Scan(
		&r.ID, &r.JobID, &r.JobTitle, &r.ReviewerID, &r.RevieweeID,
		&r.Rating, &r.Comment, &r.ReviewType, &r.CreatedAt,
		&reviewerName, &reviewerRating, &revieweeName, &revieweeRating,
	)
	if err != nil {
		return nil, err
	}
	r.Reviewer = &models.UserSummary{ID: r.ReviewerID, Name: reviewerName, Rating: reviewerRating}
	r.Reviewee = &models.UserSummary{ID: r.RevieweeID, Name: revieweeName, Rating: revieweeRating}
	return &r, nil
}

// GetByJobAndReviewer returns the review a reviewer left on a job, or
// (nil, nil) when they have not reviewed it.
func (s *ReviewStore) GetByJobAndReviewer(ctx context.Context, jobID, reviewerID string) (*models.Review, error) {
	row := s.pool.QueryRow(ctx, reviewSelect+` WHERE r.job_id = $1 AND r.reviewer_id = $2`, jobID, reviewerID)
	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review by job and reviewer: %w", err)
	}
	return review, nil
}

// GetByID returns one review by id.
func (s *ReviewStore) GetByID(ctx context.Context, id string) (*models.Review, error) {
	row := s.pool.QueryRow(ctx, reviewSelect+` WHERE r.id = $1`, id)
	review, err := scanReview(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NewNotFoundError("Review not found")
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// ListByReviewee returns a user's received reviews, newest first.
func (s *ReviewStore) ListByReviewee(ctx context.Context, userID string) ([]models.Review, error) {
	rows, err := s.pool.Query(ctx, reviewSelect+` WHERE r.reviewee_id = $1 ORDER BY r.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews query: %w", err)
	}
	defer rows.Close()

	result := make([]models.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("list reviews scan: %w", err)
		}
		result = append(result, *review)
	}
	return result, rows.Err()
}
