package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"skillmarket/internal/auth"
	"skillmarket/internal/config"
	"skillmarket/pkg/models"
)

const userContextKey = "user"

// UserResolver loads the authenticated account referenced by a token.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Protect returns middleware that requires a valid bearer token and stashes
// the resolved user on the echo context.
func Protect(cfg *config.Config, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return unauthorized(c, "Missing or malformed authorization header")
			}

			claims, err := auth.ParseToken(cfg.Auth.JWTSecret, strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				return unauthorized(c, "Invalid or expired token")
			}

			user, err := users.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return unauthorized(c, "Account no longer exists")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireUserType returns middleware that rejects authenticated users of the
// wrong type. It must run after Protect.
func RequireUserType(userType string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return unauthorized(c, "Authentication required")
			}
			if user.UserType != userType {
				return c.JSON(http.StatusForbidden, models.ErrorResponse{
					Error:     "forbidden",
					Message:   "Your account type cannot perform this action",
					RequestID: requestID(c),
					Timestamp: time.Now(),
				})
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user set by Protect, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:     "unauthorized",
		Message:   message,
		RequestID: requestID(c),
		Timestamp: time.Now(),
	})
}

func requestID(c echo.Context) string {
	id, _ := c.Get("request_id").(string)
	return id
}
