package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wryteup/jobboard-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, jwtSecret string) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "jobboard-api-service",
		})
	})

	jobHandler := handler.NewJobHandler(deps)
	bannerHandler := handler.NewBannerHandler(deps)

	authRequired := AuthMiddleware(jwtSecret)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Public job profile by uuid; only active jobs resolve.
		v1.GET("/profile/:uuid", jobHandler.JobProfile)

		jobs := v1.Group("/jobs", authRequired)
		{
			// GET /api/v1/jobs - Own jobs, or all jobs for elevated roles
			jobs.GET("", jobHandler.ListJobs)

			// POST /api/v1/jobs - Create a new job (starts pending review)
			jobs.POST("", jobHandler.CreateJob)

			// GET /api/v1/jobs/pending - Review queue, elevated roles only
			jobs.GET("/pending", RequireElevated(), jobHandler.PendingJobs)

			// GET /api/v1/jobs/:job_id - Job detail view
			jobs.GET("/:job_id", jobHandler.ShowJob)

			// POST /api/v1/jobs/:job_id/activate - Publish a pending job
			jobs.POST("/:job_id/activate", jobHandler.ActivateJob)

			// POST /api/v1/jobs/:job_id/decline - Reject a pending job
			jobs.POST("/:job_id/decline", jobHandler.DeclineJob)

			// DELETE /api/v1/jobs/:job_id - Permanently delete a job
			jobs.DELETE("/:job_id", jobHandler.DeleteJob)

			// GET/PUT /api/v1/jobs/edit/:uuid - Editor load and save
			jobs.GET("/edit/:uuid", jobHandler.EditJob)
			jobs.PUT("/edit/:uuid", jobHandler.SaveJob)
		}

		// POST /api/v1/banners - Pre-association banner upload
		v1.POST("/banners", authRequired, bannerHandler.UploadBanner)
	}

	return r
}
