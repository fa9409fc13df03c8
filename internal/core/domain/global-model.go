package domain

// DefaultInitialWeights is the prior used before any client has reported.
var DefaultInitialWeights = FeatureVector{Text: 0.33, Typing: 0.33, Voice: 0.34}

// GlobalModel is the running Federated Averaging state.
type GlobalModel struct {
	Weights     FeatureVector `json:"weights"`
	UpdateCount int           `json:"update_count"`
}

func NewGlobalModel(initial FeatureVector) GlobalModel {
	return GlobalModel{Weights: initial}
}

// Merge folds one (already privatized) client update into the running
// average and returns the new state. The receiver is not modified.
//
// With n updates already folded in, each weight becomes (w*n + x) / (n+1),
// so the initial weights carry no mass once the first update arrives.
func (m GlobalModel) Merge(update FeatureVector) GlobalModel {
	total := m.UpdateCount + 1
	n := float64(total - 1)
	next := m.Weights.Map(func(f Feature, w float64) float64 {
		return (w*n + update.Get(f)) / float64(total)
	})
	return GlobalModel{Weights: next, UpdateCount: total}
}

// RestoreGlobalModel rebuilds the averaging state from the most recent
// persisted data point. Points without an update count (seeded mock data)
// cannot be resumed from and report false.
func RestoreGlobalModel(p *DashboardDataPoint) (GlobalModel, bool) {
	if p == nil || p.UpdateCount <= 0 {
		return GlobalModel{}, false
	}
	return GlobalModel{Weights: p.Weights(), UpdateCount: p.UpdateCount}, true
}
