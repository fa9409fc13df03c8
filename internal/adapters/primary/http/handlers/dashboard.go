package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"hush-backend/internal/adapters/primary/http/dto"
)

// GetDashboardData returns every stored data point in timestamp order.
func (h *Handler) GetDashboardData(c *gin.Context) {
	points, err := h.dashboardSvc.List(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list dashboard data failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDataPointResponses(points))
}
