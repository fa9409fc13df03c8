package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"hush-backend/internal/adapters/primary/http/dto"
)

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{Status: "HUSH Backend is running."})
}

// Healthz pings storage.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.storage.Ping(c.Request.Context()); err != nil {
		log.WithError(err).Warn("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
