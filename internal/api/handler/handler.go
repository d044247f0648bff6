package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wryteup/jobboard-be/internal/api/domain"
	"github.com/wryteup/jobboard-be/internal/api/lifecycle"
	"github.com/wryteup/jobboard-be/internal/api/storage"
	"github.com/wryteup/jobboard-be/internal/filestore"
)

// ActorContextKey is where the auth middleware stores the authenticated
// actor on the gin context.
const ActorContextKey = "actor"

// Fixed redirect targets returned with flash-style action responses.
const (
	RouteDashboard   = "/jobs/dashboard"
	RouteReviewQueue = "/jobs/pending"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger  *slog.Logger
	Manager *lifecycle.Manager
	Storage *storage.Storage
	Files   *filestore.Store
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger  *slog.Logger
	manager *lifecycle.Manager
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger:  deps.Logger,
		manager: deps.Manager,
	}
}

// BannerHandler handles pre-association banner uploads
type BannerHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
	files   *filestore.Store
}

// NewBannerHandler creates a new BannerHandler instance
func NewBannerHandler(deps *Dependencies) *BannerHandler {
	return &BannerHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
		files:   deps.Files,
	}
}

// actorFromContext returns the actor placed on the context by the auth
// middleware.
func actorFromContext(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(ActorContextKey)
	if !ok {
		return domain.Actor{}, false
	}

	actor, ok := v.(domain.Actor)
	return actor, ok
}
