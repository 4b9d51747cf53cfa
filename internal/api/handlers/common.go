// Package handlers contains the HTTP facade. Handlers bind and validate
// payloads, call into the lifecycle engine or rating aggregator, and map
// domain errors onto the uniform error body.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"skillmarket/internal/logging"
	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

var validate = validator.New()

// UserDirectory is the account store slice the handlers consume.
type UserDirectory interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ListWorkers(ctx context.Context) ([]models.User, error)
	SearchWorkers(ctx context.Context, f models.WorkerFilter) ([]models.User, error)
}

func requestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}

// bindAndValidate decodes the JSON body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return utils.NewValidationError("Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return utils.NewValidationError(err.Error())
	}
	return nil
}

// respondError maps a domain error onto the uniform error body. Anything that
// is not a CustomError is logged and collapsed to a 500.
func respondError(c echo.Context, err error) error {
	if ce := utils.AsCustomError(err); ce != nil {
		return c.JSON(ce.Code, models.ErrorResponse{
			Error:     ce.Kind,
			Message:   ce.Message,
			RequestID: requestID(c),
			Timestamp: time.Now(),
		})
	}

	logging.GetGlobalLogger().Error("Request failed", map[string]interface{}{
		"request_id": requestID(c),
		"path":       c.Path(),
		"error":      err.Error(),
	})
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:     "internal_error",
		Message:   "Something went wrong",
		RequestID: requestID(c),
		Timestamp: time.Now(),
	})
}
