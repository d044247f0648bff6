package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wryteup/jobboard-be/internal/api/domain"
	"github.com/wryteup/jobboard-be/internal/api/dto"
	"github.com/wryteup/jobboard-be/internal/api/lifecycle"
	"github.com/wryteup/jobboard-be/internal/api/model"
)

// ListJobs handles GET /api/v1/jobs
// Elevated actors see every job; everyone else sees only their own.
func (h *JobHandler) ListJobs(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	jobs, err := h.manager.List(c.Request.Context(), actor)
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list jobs"})
		return
	}

	c.JSON(http.StatusOK, dto.ListJobsResponse{Jobs: toJobDTOs(jobs)})
}

// CreateJob handles POST /api/v1/jobs
// Precondition failures come back as 403 with a distinct message per missing
// setup step; validation failures as a per-field error map.
func (h *JobHandler) CreateJob(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.Any("error", err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	job, err := h.manager.Create(c.Request.Context(), actor, lifecycle.JobInput{
		Title:             req.Title,
		Description:       req.Description,
		Rate:              req.Rate,
		ExpediteRate:      req.ExpediteRate,
		MinWords:          req.MinWords,
		RevisionNumber:    req.RevisionNumber,
		DeliveryGuarantee: req.DeliveryGuarantee,
		DeliveryExpedite:  req.DeliveryExpedite,
		CategoryID:        req.Category,
		BannerIDs:         req.Banner,
	})
	if err != nil {
		var fieldErrs domain.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: fieldErrs})
		case errors.Is(err, domain.ErrPaypalNotSet):
			c.JSON(http.StatusForbidden, gin.H{"error": "Paypal account not set!"})
		case errors.Is(err, domain.ErrEmailNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": "Email not confirmed!"})
		default:
			h.logger.Error("Failed to create job", slog.Any("error", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		}
		return
	}

	c.JSON(http.StatusCreated, toJobDTO(*job))
}

// PendingJobs handles GET /api/v1/jobs/pending
// The review queue: jobs awaiting confirmation, keyset paginated. Routing
// restricts this to elevated roles.
func (h *JobHandler) PendingJobs(c *gin.Context) {
	var req dto.ListPendingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	cursor, err := DecodeJobCursor(req.Cursor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
		return
	}

	page, err := h.manager.Pending(c.Request.Context(), cursor, req.PageSize)
	if err != nil {
		h.logger.Error("Failed to list pending jobs", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending jobs"})
		return
	}

	resp := dto.ListPendingResponse{Jobs: toJobDTOs(page.Jobs)}
	if page.NextCursor != nil {
		resp.NextCursor = EncodeJobCursor(page.NextCursor)
	}

	c.JSON(http.StatusOK, resp)
}

// ShowJob handles GET /api/v1/jobs/:job_id
// Returns the job enriched with category title, display banner, and owner
// payment status.
func (h *JobHandler) ShowJob(c *gin.Context) {
	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	details, err := h.manager.Show(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		h.logger.Error("Failed to show job", slog.Int64("job_id", id), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get job"})
		return
	}

	c.JSON(http.StatusOK, dto.ShowJobResponse{
		Job:          toJobDTO(*details.Job),
		CategoryName: details.CategoryName,
		Image:        details.Image,
		HasPaypal:    details.HasPaypal,
	})
}

// ActivateJob handles POST /api/v1/jobs/:job_id/activate
// Both outcomes carry a flash message plus the review-queue redirect; a
// denial is not an error status.
func (h *JobHandler) ActivateJob(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	err := h.manager.Activate(c.Request.Context(), actor, id)
	h.respondAction(c, err, "Job published successfully!", RouteReviewQueue)
}

// DeclineJob handles POST /api/v1/jobs/:job_id/decline
func (h *JobHandler) DeclineJob(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	var req dto.DeclineJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	err := h.manager.Decline(c.Request.Context(), actor, id, req.Reason)
	h.respondAction(c, err, "Job declined successfully!", RouteReviewQueue)
}

// DeleteJob handles DELETE /api/v1/jobs/:job_id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := jobIDParam(c)
	if !ok {
		return
	}

	err := h.manager.Delete(c.Request.Context(), actor, id)
	h.respondAction(c, err, "Job deleted successfully!", RouteReviewQueue)
}

// JobProfile handles GET /api/v1/profile/:uuid
// Public lookup: resolves only active jobs. Inactive, declined, and unknown
// uuids are indistinguishable.
func (h *JobHandler) JobProfile(c *gin.Context) {
	jobUUID := c.Param("uuid")

	job, err := h.manager.Profile(c.Request.Context(), jobUUID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		h.logger.Error("Failed to load job profile", slog.String("uuid", jobUUID), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get job"})
		return
	}

	c.JSON(http.StatusOK, toJobDTO(*job))
}

// EditJob handles GET /api/v1/jobs/edit/:uuid
// Unknown uuid and insufficient permission both return 404.
func (h *JobHandler) EditJob(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	jobUUID := c.Param("uuid")

	job, err := h.manager.ForEdit(c.Request.Context(), actor, jobUUID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		h.logger.Error("Failed to load job for edit", slog.String("uuid", jobUUID), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get job"})
		return
	}

	c.JSON(http.StatusOK, toJobDTO(*job))
}

// SaveJob handles PUT /api/v1/jobs/edit/:uuid
// A successful save forces the job back to pending review. A missing job or
// a denied actor both get the soft "could not save" message.
func (h *JobHandler) SaveJob(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	jobUUID := c.Param("uuid")

	var req dto.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	_, err := h.manager.Save(c.Request.Context(), actor, jobUUID, lifecycle.JobInput{
		Title:             req.Title,
		Description:       req.Description,
		Rate:              req.Rate,
		ExpediteRate:      req.ExpediteRate,
		MinWords:          req.MinWords,
		RevisionNumber:    req.RevisionNumber,
		DeliveryGuarantee: req.DeliveryGuarantee,
		DeliveryExpedite:  req.DeliveryExpedite,
	})
	if err != nil {
		var fieldErrs domain.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: fieldErrs})
		case errors.Is(err, domain.ErrPermissionDenied), errors.Is(err, domain.ErrJobNotFound):
			c.JSON(http.StatusOK, dto.ActionResponse{Message: "Could not save changes!"})
		default:
			h.logger.Error("Failed to save job", slog.String("uuid", jobUUID), slog.Any("error", err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save job"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ActionResponse{
		Message:  "Changes saved!",
		Redirect: RouteDashboard,
	})
}

// respondAction maps an activate/decline/delete outcome to the flash-style
// response. Permission denials return 200 with the denial message; only
// missing jobs and collaborator failures use error statuses.
func (h *JobHandler) respondAction(c *gin.Context, err error, successMsg, redirect string) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, dto.ActionResponse{Message: successMsg, Redirect: redirect})
	case errors.Is(err, domain.ErrPermissionDenied):
		c.JSON(http.StatusOK, dto.ActionResponse{Message: "Permission denied!", Redirect: redirect})
	case errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
	default:
		h.logger.Error("Job action failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Job action failed"})
	}
}

func jobIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("job_id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "job_id must be a positive integer"})
		return 0, false
	}
	return id, true
}

func toJobDTO(job model.Job) dto.JobDTO {
	out := dto.JobDTO{
		ID:                job.ID,
		UUID:              job.UUID,
		Title:             job.Title,
		Description:       job.Description,
		MinWords:          job.MinWords,
		RevisionNumber:    job.RevisionNumber,
		DeliveryGuarantee: job.DeliveryGuarantee,
		Category:          job.CategoryID,
		UserID:            job.UserID,
		Status:            job.Status,
		CreatedAt:         job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         job.UpdatedAt.Format(time.RFC3339),
	}

	if job.Rate.Valid {
		rate := job.Rate.Float64
		out.Rate = &rate
	}
	if job.ExpediteRate.Valid {
		rate := job.ExpediteRate.Float64
		out.ExpediteRate = &rate
	}
	if job.DeliveryExpedite.Valid {
		days := int(job.DeliveryExpedite.Int64)
		out.DeliveryExpedite = &days
	}
	if job.DeclinedReason.Valid {
		out.DeclinedReason = job.DeclinedReason.String
	}

	return out
}

func toJobDTOs(jobs []model.Job) []dto.JobDTO {
	out := make([]dto.JobDTO, len(jobs))
	for i, job := range jobs {
		out[i] = toJobDTO(job)
	}
	return out
}
