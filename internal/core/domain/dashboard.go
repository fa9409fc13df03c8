package domain

import "time"

// TimestampLayout keeps a fixed number of fractional digits so that the
// lexical order of stored timestamps matches their chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DashboardDataPoint is one snapshot of the global model averages, as
// charted by the admin dashboard.
type DashboardDataPoint struct {
	ID                  int64   `json:"id"`
	Timestamp           string  `json:"timestamp"`
	AvgTextImportance   float64 `json:"avg_text_importance"`
	AvgTypingImportance float64 `json:"avg_typing_importance"`
	AvgVoiceImportance  float64 `json:"avg_voice_importance"`
	UpdateCount         int     `json:"update_count"`
}

func NewDashboardDataPoint(model GlobalModel, at time.Time) *DashboardDataPoint {
	return &DashboardDataPoint{
		Timestamp:           FormatTimestamp(at),
		AvgTextImportance:   model.Weights.Text,
		AvgTypingImportance: model.Weights.Typing,
		AvgVoiceImportance:  model.Weights.Voice,
		UpdateCount:         model.UpdateCount,
	}
}

func (p *DashboardDataPoint) Weights() FeatureVector {
	return FeatureVector{
		Text:   p.AvgTextImportance,
		Typing: p.AvgTypingImportance,
		Voice:  p.AvgVoiceImportance,
	}
}

// MockDashboardData is the series written into an empty store so the
// dashboard has something to chart before clients report.
func MockDashboardData() []*DashboardDataPoint {
	return []*DashboardDataPoint{
		{Timestamp: "2025-11-01T10:00:00Z", AvgTextImportance: 0.4, AvgTypingImportance: 0.4, AvgVoiceImportance: 0.2},
		{Timestamp: "2025-11-01T11:00:00Z", AvgTextImportance: 0.42, AvgTypingImportance: 0.38, AvgVoiceImportance: 0.2},
		{Timestamp: "2025-11-01T12:00:00Z", AvgTextImportance: 0.38, AvgTypingImportance: 0.45, AvgVoiceImportance: 0.17},
	}
}
