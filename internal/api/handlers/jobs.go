package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skillmarket/internal/api/middleware"
	"skillmarket/internal/core/jobs"
	"skillmarket/internal/logging"
	"skillmarket/pkg/models"
)

// CreateJobHandler posts a new open job owned by the authenticated provider.
func CreateJobHandler(engine *jobs.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateJobRequest
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		user := middleware.CurrentUser(c)
		job, err := engine.PostJob(c.Request().Context(), user.ID, &req)
		if err != nil {
			return respondError(c, err)
		}

		logging.GetGlobalLogger().Info("Job posted", map[string]interface{}{
			"request_id":  requestID(c),
			"job_id":      job.ID,
			"provider_id": user.ID,
			"category":    job.Category,
		})
		return c.JSON(http.StatusCreated, job)
	}
}

// ListJobsHandler returns jobs matching the query filters, newest first.
func ListJobsHandler(engine *jobs.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := jobs.Filter{
			Category: c.QueryParam("category"),
			City:     c.QueryParam("city"),
			Status:   c.QueryParam("status"),
			WorkType: c.QueryParam("work_type"),
		}

		list, err := engine.ListJobs(c.Request().Context(), filter)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.JobListResponse{Count: len(list), Jobs: list})
	}
}

// GetJobHandler returns one job with populated applicant and owner summaries.
func GetJobHandler(engine *jobs.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := engine.GetJob(c.Request().Context(), c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, job)
	}
}

// UpdateJobHandler applies a partial patch, gated by ownership.
func UpdateJobHandler(engine *jobs.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.UpdateJobRequest
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		user := middleware.CurrentUser(c)
		job, err := engine.UpdateJob(c.Request().Context(), user.ID, c.Param("id"), &req)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, job)
	}
}

// DeleteJobHandler removes a job, gated by ownership.
func DeleteJobHandler(engine *jobs.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		if err := engine.DeleteJob(c.Request().Context(), user.ID, c.Param("id")); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.MessageResponse{Message: "Job deleted successfully"})
	}
}

// ApplyHandler submits a pending application by the authenticated worker.
func ApplyHandler(engine *jobs.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ApplyRequest
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		user := middleware.CurrentUser(c)
		applicant, err := engine.ApplyToJob(c.Request().Context(), user.ID, c.Param("id"), req.CoverLetter)
		if err != nil {
			return respondError(c, err)
		}

		logging.GetGlobalLogger().Info("Application submitted", map[string]interface{}{
			"request_id": requestID(c),
			"job_id":     c.Param("id"),
			"worker_id":  user.ID,
		})
		return c.JSON(http.StatusCreated, models.ApplyResponse{
			Message:   "Application submitted successfully",
			Applicant: applicant,
		})
	}
}

// DecideApplicantHandler accepts or rejects one application on the provider's
// job.
func DecideApplicantHandler(engine *jobs.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.DecideApplicantRequest
		if err := bindAndValidate(c, &req); err != nil {
			return respondError(c, err)
		}

		user := middleware.CurrentUser(c)
		job, err := engine.DecideApplicant(c.Request().Context(), user.ID, c.Param("id"), c.Param("applicantId"), req.Status)
		if err != nil {
			return respondError(c, err)
		}

		message := "Applicant rejected"
		if req.Status == "accepted" {
			message = "Applicant accepted"
		}
		return c.JSON(http.StatusOK, models.DecisionResponse{Message: message, Job: job})
	}
}

// CompleteJobHandler marks the provider's job completed.
func CompleteJobHandler(engine *jobs.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		job, err := engine.CompleteJob(c.Request().Context(), user.ID, c.Param("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.DecisionResponse{Message: "Job marked as completed", Job: job})
	}
}

// MyJobsHandler returns the jobs the caller posted (provider) or applied to
// (worker).
func MyJobsHandler(engine *jobs.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := middleware.CurrentUser(c)
		list, err := engine.MyJobs(c.Request().Context(), user)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, models.JobListResponse{Count: len(list), Jobs: list})
	}
}
