package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"hush-backend/internal/core/domain"
	"hush-backend/internal/core/ports/output"
)

// UpdateService receives client updates, privatizes them and folds them
// into the global model with Federated Averaging.
type UpdateService struct {
	repo     ports.DashboardRepository
	noise    ports.NoiseMechanism
	recorder ports.Recorder
	now      func() time.Time

	// submitMu serializes Submit so stored points follow merge order.
	submitMu sync.Mutex

	mu    sync.RWMutex
	model domain.GlobalModel
}

func NewUpdateService(repo ports.DashboardRepository, noise ports.NoiseMechanism, initial domain.FeatureVector, recorder ports.Recorder) *UpdateService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &UpdateService{
		repo:     repo,
		noise:    noise,
		recorder: recorder,
		now:      time.Now,
		model:    domain.NewGlobalModel(initial),
	}
}

// Submit runs one update through noise, aggregation and persistence. The
// in-memory model only advances once the new data point is stored.
func (s *UpdateService) Submit(ctx context.Context, update domain.ModelUpdate) (*domain.DashboardDataPoint, error) {
	attributions, err := update.Validate()
	if err != nil {
		s.recorder.UpdateRejected("invalid")
		return nil, err
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	noisy := s.noise.Privatize(attributions)
	next := s.Snapshot().Merge(noisy)
	if !next.Weights.IsFinite() {
		s.recorder.UpdateRejected("overflow")
		return nil, domain.ErrNonFiniteModel
	}

	point := domain.NewDashboardDataPoint(next, s.now())
	if err := s.repo.Create(ctx, point); err != nil {
		s.recorder.UpdateRejected("storage")
		return nil, fmt.Errorf("save data point: %w", err)
	}

	s.mu.Lock()
	s.model = next
	s.mu.Unlock()

	s.recorder.UpdateAccepted(next)
	log.WithFields(log.Fields{
		"user_id":      update.UserID,
		"update_count": next.UpdateCount,
		"data_point":   point.ID,
	}).Info("processed and saved update")

	return point, nil
}

// Reject records an update that was refused before reaching Submit, such
// as a body that failed to decode.
func (s *UpdateService) Reject(reason string) {
	s.recorder.UpdateRejected(reason)
}

// Snapshot returns the current global model.
func (s *UpdateService) Snapshot() domain.GlobalModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

func (s *UpdateService) NoiseScale() float64 {
	return s.noise.Scale()
}

// Restore resumes averaging from the latest stored point. Stores holding
// only seeded data leave the initial weights in place.
func (s *UpdateService) Restore(ctx context.Context) error {
	latest, err := s.repo.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDataPointNotFound) {
			return nil
		}
		return fmt.Errorf("load latest data point: %w", err)
	}

	model, ok := domain.RestoreGlobalModel(latest)
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.model = model
	s.mu.Unlock()

	s.recorder.UpdateAccepted(model)
	log.WithField("update_count", model.UpdateCount).Info("global model restored from storage")
	return nil
}

type nopRecorder struct{}

func (nopRecorder) UpdateAccepted(domain.GlobalModel) {}
func (nopRecorder) UpdateRejected(string)             {}
func (nopRecorder) DashboardRead(int)                 {}
