package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"skillmarket/internal/auth"
	"skillmarket/internal/config"
	"skillmarket/internal/logging"
	"skillmarket/pkg/models"
	"skillmarket/pkg/utils"
)

// RegisterHandler creates a new account and returns a fresh token.
func RegisterHandler(cfg *config.Config, users UserDirectory) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.RegisterRequest
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		ctx := c.Request().Context()
		existing, err := users.GetByEmail(ctx, req.Email)
		if err != nil {
			return respondError(c, err)
		}
		if existing != nil {
			return respondError(c, utils.NewDuplicateError("An account with this email already exists"))
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return respondError(c, err)
		}

		now := time.Now().UTC()
		user := &models.User{
			ID:           utils.NewID(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Phone:        req.Phone,
			UserType:     req.UserType,
			Skills:       req.Skills,
			Location:     req.Location,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := users.Create(ctx, user); err != nil {
			return respondError(c, err)
		}

		token, err := auth.GenerateToken(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, user)
		if err != nil {
			return respondError(c, err)
		}

		logging.GetGlobalLogger().Info("Account registered", map[string]interface{}{
			"request_id": requestID(c),
			"user_id":    user.ID,
			"user_type":  user.UserType,
		})
		return c.JSON(http.StatusCreated, models.AuthResponse{Token: token, User: user})
	}
}

// LoginHandler exchanges credentials for a token.
func LoginHandler(cfg *config.Config, users UserDirectory) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.LoginRequest
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		user, err := users.GetByEmail(c.Request().Context(), req.Email)
		if err != nil {
			return respondError(c, err)
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			return respondError(c, utils.NewUnauthorizedError("Invalid email or password"))
		}

		token, err := auth.GenerateToken(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, user)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.AuthResponse{Token: token, User: user})
	}
}
