package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"hush-backend/internal/core/domain"
	"hush-backend/internal/core/ports/output"
)

type DashboardService struct {
	repo     ports.DashboardRepository
	recorder ports.Recorder
}

func NewDashboardService(repo ports.DashboardRepository, recorder ports.Recorder) *DashboardService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &DashboardService{repo: repo, recorder: recorder}
}

func (s *DashboardService) List(ctx context.Context) ([]*domain.DashboardDataPoint, error) {
	points, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if points == nil {
		points = []*domain.DashboardDataPoint{}
	}
	s.recorder.DashboardRead(len(points))
	return points, nil
}

// SeedIfEmpty writes the mock series into an empty store. It reports
// whether anything was written.
func (s *DashboardService) SeedIfEmpty(ctx context.Context) (bool, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count data points: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	log.Info("database is empty, pre-populating with mock data")
	if err := s.repo.CreateBatch(ctx, domain.MockDashboardData()); err != nil {
		return false, fmt.Errorf("seed mock data: %w", err)
	}
	return true, nil
}
