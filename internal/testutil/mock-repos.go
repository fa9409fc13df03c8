package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"hush-backend/internal/core/domain"
)

// MockDashboardRepo is a mock of DashboardRepository.
type MockDashboardRepo struct {
	mock.Mock
}

func (m *MockDashboardRepo) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDashboardRepo) Create(ctx context.Context, point *domain.DashboardDataPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockDashboardRepo) CreateBatch(ctx context.Context, points []*domain.DashboardDataPoint) error {
	args := m.Called(ctx, points)
	return args.Error(0)
}

func (m *MockDashboardRepo) List(ctx context.Context) ([]*domain.DashboardDataPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DashboardDataPoint), args.Error(1)
}

func (m *MockDashboardRepo) Latest(ctx context.Context) (*domain.DashboardDataPoint, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardDataPoint), args.Error(1)
}

func (m *MockDashboardRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDashboardRepo) Close() {
	m.Called()
}

// FixedNoise adds a constant offset to every feature.
type FixedNoise struct {
	Offset float64
}

func (n FixedNoise) Privatize(v domain.FeatureVector) domain.FeatureVector {
	return v.Map(func(_ domain.Feature, x float64) float64 { return x + n.Offset })
}

func (n FixedNoise) Scale() float64 {
	return 0
}

// RecordingRecorder keeps every aggregation event it receives.
type RecordingRecorder struct {
	mu       sync.Mutex
	Accepted []domain.GlobalModel
	Rejected []string
	Reads    []int
}

func (r *RecordingRecorder) UpdateAccepted(model domain.GlobalModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Accepted = append(r.Accepted, model)
}

func (r *RecordingRecorder) UpdateRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Rejected = append(r.Rejected, reason)
}

func (r *RecordingRecorder) DashboardRead(points int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Reads = append(r.Reads, points)
}

// RejectedReasons returns a copy of the rejection reasons seen so far.
func (r *RecordingRecorder) RejectedReasons() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Rejected...)
}
