package routes

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"skillmarket/internal/api/handlers"
	"skillmarket/internal/api/middleware"
	"skillmarket/internal/config"
	"skillmarket/internal/core/jobs"
	"skillmarket/internal/core/reviews"
	"skillmarket/pkg/models"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Config     *config.Config
	Engine     *jobs.Engine
	Aggregator *reviews.Aggregator
	Users      handlers.UserDirectory
	Pool       *pgxpool.Pool
	Redis      *redis.Client
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, deps Deps) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.RateLimit(deps.Config))
	e.Use(middleware.TimeoutConfig(deps.Config.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Pool, deps.Redis))
		health.GET("/live", handlers.LivenessHandler)
	}

	protect := middleware.Protect(deps.Config, deps.Users)
	providerOnly := middleware.RequireUserType(models.UserTypeProvider)
	workerOnly := middleware.RequireUserType(models.UserTypeWorker)

	v1 := e.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterHandler(deps.Config, deps.Users))
			auth.POST("/login", handlers.LoginHandler(deps.Config, deps.Users))
		}

		jobs := v1.Group("/jobs")
		{
			jobs.GET("", handlers.ListJobsHandler(deps.Engine))
			jobs.POST("", handlers.CreateJobHandler(deps.Engine), protect, providerOnly)
			jobs.GET("/my/jobs", handlers.MyJobsHandler(deps.Engine), protect)
			jobs.GET("/:id", handlers.GetJobHandler(deps.Engine))
			jobs.PUT("/:id", handlers.UpdateJobHandler(deps.Engine), protect)
			jobs.DELETE("/:id", handlers.DeleteJobHandler(deps.Engine), protect)
			jobs.POST("/:id/apply", handlers.ApplyHandler(deps.Engine), protect, workerOnly)
			jobs.PUT("/:id/applicants/:applicantId", handlers.DecideApplicantHandler(deps.Engine), protect, providerOnly)
			jobs.PUT("/:id/complete", handlers.CompleteJobHandler(deps.Engine), protect, providerOnly)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.POST("", handlers.CreateReviewHandler(deps.Aggregator), protect)
			reviews.GET("/review/:id", handlers.GetReviewHandler(deps.Aggregator))
			reviews.GET("/:userId", handlers.ListUserReviewsHandler(deps.Aggregator))
		}

		users := v1.Group("/users")
		{
			users.GET("/profile", handlers.GetProfileHandler(), protect)
			users.PUT("/profile", handlers.UpdateProfileHandler(deps.Users), protect)
			users.GET("/workers", handlers.ListWorkersHandler(deps.Users))
			users.GET("/workers/search", handlers.SearchWorkersHandler(deps.Users))
			users.GET("/:id", handlers.GetUserHandler(deps.Users))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "SkillMarket API",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
