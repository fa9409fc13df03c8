package dto

import (
	"hush-backend/internal/core/domain"
)

// ============================================================================
// Model Update DTOs
// ============================================================================

type SubmitUpdateRequest struct {
	FeatureAttributions map[string]float64 `json:"feature_attributions" binding:"required"`
	UserID              string             `json:"user_id" binding:"required,max=256"`
}

func (r SubmitUpdateRequest) ToDomain() domain.ModelUpdate {
	return domain.ModelUpdate{
		UserID:              r.UserID,
		FeatureAttributions: r.FeatureAttributions,
	}
}

type SubmitUpdateResponse struct {
	Status       string                     `json:"status"`
	NewDataPoint DashboardDataPointResponse `json:"new_data_point"`
}

// ============================================================================
// Global Model DTOs
// ============================================================================

type GlobalModelResponse struct {
	Weights     domain.FeatureVector `json:"weights"`
	UpdateCount int                  `json:"update_count"`
	NoiseScale  float64              `json:"noise_scale"`
}

func ToGlobalModelResponse(m domain.GlobalModel, noiseScale float64) GlobalModelResponse {
	return GlobalModelResponse{
		Weights:     m.Weights,
		UpdateCount: m.UpdateCount,
		NoiseScale:  noiseScale,
	}
}

type StatusResponse struct {
	Status string `json:"status"`
}
