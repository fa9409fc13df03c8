package handlers

import (
	"context"

	"hush-backend/internal/core/services"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether backing storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	updateSvc    *services.UpdateService
	dashboardSvc *services.DashboardService
	storage      Pinger
}

func New(
	updateSvc *services.UpdateService,
	dashboardSvc *services.DashboardService,
	storage Pinger,
) *Handler {
	return &Handler{
		updateSvc:    updateSvc,
		dashboardSvc: dashboardSvc,
		storage:      storage,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Status
	r.GET("/", h.Root)
	r.GET("/healthz", h.Healthz)

	// Federated Learning
	r.POST("/v1/submit-update", h.SubmitUpdate)
	r.GET("/v1/model", h.GetGlobalModel)

	// Dashboard
	r.GET("/v1/dashboard-data", h.GetDashboardData)
}
