package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"skillmarket/internal/api/middleware"
	"skillmarket/internal/auth"
	"skillmarket/pkg/models"
)

// GetProfileHandler returns the authenticated user's own account.
func GetProfileHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, middleware.CurrentUser(c))
	}
}

// UpdateProfileHandler applies a partial patch to the authenticated user's
// profile.
func UpdateProfileHandler(users UserDirectory) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.UpdateProfileRequest
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		user := middleware.CurrentUser(c)
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Phone != nil {
			user.Phone = *req.Phone
		}
		if req.Bio != nil {
			user.Bio = *req.Bio
		}
		if req.Location != nil {
			user.Location = *req.Location
		}
		if req.Skills != nil {
			user.Skills = req.Skills
		}
		if req.Categories != nil {
			user.Categories = req.Categories
		}
		if req.Availability != nil {
			user.Availability = *req.Availability
		}
		if req.Experience != nil {
			user.Experience = *req.Experience
		}
		if req.Password != nil {
			hash, err := auth.HashPassword(*req.Password)
			if err != nil {
				return respondError(c, err)
			}
			user.PasswordHash = hash
		}
		user.UpdatedAt = time.Now().UTC()

		if err := users.Update(c.Request().Context(), user); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}

// GetUserHandler returns a public account profile by id.
func GetUserHandler(users UserDirectory) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := users.GetByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, user)
	}
}

// ListWorkersHandler returns all workers, best rated first.
func ListWorkersHandler(users UserDirectory) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := users.ListWorkers(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.WorkerListResponse{Count: len(list), Workers: list})
	}
}

// SearchWorkersHandler returns workers matching the query filters, best rated
// first. Skills are comma-separated; a worker matches on any of them.
func SearchWorkersHandler(users UserDirectory) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := models.WorkerFilter{
			Category:     c.QueryParam("category"),
			City:         c.QueryParam("city"),
			Availability: c.QueryParam("availability"),
		}
		if skills := c.QueryParam("skills"); skills != "" {
			for _, skill := range strings.Split(skills, ",") {
				if skill = strings.TrimSpace(skill); skill != "" {
					filter.Skills = append(filter.Skills, skill)
				}
			}
		}

		list, err := users.SearchWorkers(c.Request().Context(), filter)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.WorkerListResponse{Count: len(list), Workers: list})
	}
}
