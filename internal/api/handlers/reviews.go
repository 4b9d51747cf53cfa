package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skillmarket/internal/api/middleware"
	"skillmarket/internal/core/reviews"
	"skillmarket/internal/logging"
	"skillmarket/pkg/models"
)

// CreateReviewHandler submits a review by the authenticated user.
func CreateReviewHandler(aggregator *reviews.Aggregator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateReviewRequest
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		user := middleware.CurrentUser(c)
		review, err := aggregator.SubmitReview(c.Request().Context(), user.ID, &req)
		if err != nil {
			return respondError(c, err)
		}

		logging.GetGlobalLogger().Info("Review submitted", map[string]interface{}{
			"request_id":  requestID(c),
			"review_id":   review.ID,
			"job_id":      review.JobID,
			"reviewee_id": review.RevieweeID,
			"rating":      review.Rating,
		})
		return c.JSON(http.StatusCreated, review)
	}
}

// ListUserReviewsHandler returns the reviews a user has received, newest
// first.
func ListUserReviewsHandler(aggregator *reviews.Aggregator) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := aggregator.ListReviewsFor(c.Request().Context(), c.Param("userId"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.ReviewListResponse{Count: len(list), Reviews: list})
	}
}

// GetReviewHandler returns one review by id.
func GetReviewHandler(aggregator *reviews.Aggregator) echo.HandlerFunc {
	return func(c echo.Context) error {
		review, err := aggregator.GetReview(c.Request().Context(), c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, review)
	}
}
