package ports

import "hush-backend/internal/core/domain"

// NoiseMechanism privatizes a client update before it is aggregated.
type NoiseMechanism interface {
	Privatize(v domain.FeatureVector) domain.FeatureVector
	Scale() float64
}

// Recorder receives aggregation events for instrumentation.
type Recorder interface {
	UpdateAccepted(model domain.GlobalModel)
	UpdateRejected(reason string)
	DashboardRead(points int)
}
