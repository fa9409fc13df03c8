package dto

import (
	"hush-backend/internal/core/domain"
)

type DashboardDataPointResponse struct {
	ID                  int64   `json:"id"`
	Timestamp           string  `json:"timestamp"`
	AvgTextImportance   float64 `json:"avg_text_importance"`
	AvgTypingImportance float64 `json:"avg_typing_importance"`
	AvgVoiceImportance  float64 `json:"avg_voice_importance"`
	UpdateCount         int     `json:"update_count"`
}

func ToDashboardDataPointResponse(p *domain.DashboardDataPoint) DashboardDataPointResponse {
	return DashboardDataPointResponse{
		ID:                  p.ID,
		Timestamp:           p.Timestamp,
		AvgTextImportance:   p.AvgTextImportance,
		AvgTypingImportance: p.AvgTypingImportance,
		AvgVoiceImportance:  p.AvgVoiceImportance,
		UpdateCount:         p.UpdateCount,
	}
}

func ToDashboardDataPointResponses(points []*domain.DashboardDataPoint) []DashboardDataPointResponse {
	items := make([]DashboardDataPointResponse, 0, len(points))
	for _, p := range points {
		items = append(items, ToDashboardDataPointResponse(p))
	}
	return items
}
