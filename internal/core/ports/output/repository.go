package ports

import (
	"context"

	"hush-backend/internal/core/domain"
)

// DashboardRepository persists global model snapshots. List orders points
// by timestamp, then id. Latest returns the point with the highest update
// count, then id.
type DashboardRepository interface {
	Migrate(ctx context.Context) error
	Create(ctx context.Context, point *domain.DashboardDataPoint) error
	CreateBatch(ctx context.Context, points []*domain.DashboardDataPoint) error
	List(ctx context.Context) ([]*domain.DashboardDataPoint, error)
	Latest(ctx context.Context) (*domain.DashboardDataPoint, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
	Close()
}
