package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"hush-backend/internal/adapters/primary/http/dto"
)

// SubmitUpdate accepts one on-device update, privatizes it and folds it
// into the global model.
func (h *Handler) SubmitUpdate(c *gin.Context) {
	var req dto.SubmitUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.updateSvc.Reject("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	point, err := h.updateSvc.Submit(c.Request.Context(), req.ToDomain())
	if err != nil {
		log.WithError(err).Error("submit model update failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitUpdateResponse{
		Status:       "update received and saved",
		NewDataPoint: dto.ToDashboardDataPointResponse(point),
	})
}

func (h *Handler) GetGlobalModel(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToGlobalModelResponse(h.updateSvc.Snapshot(), h.updateSvc.NoiseScale()))
}
