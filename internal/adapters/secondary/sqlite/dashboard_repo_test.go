package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush-backend/internal/core/domain"
	output "hush-backend/internal/core/ports/output"
)

func newTestRepo(t *testing.T) output.DashboardRepository {
	t.Helper()
	repo, err := NewDashboardRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(repo.Close)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestDashboardRepo_CreateAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	late := &domain.DashboardDataPoint{Timestamp: "2026-10-16T09:00:00.000000Z", AvgTextImportance: 0.5, UpdateCount: 2}
	early := &domain.DashboardDataPoint{Timestamp: "2026-10-16T08:00:00.000000Z", AvgTextImportance: 0.7, UpdateCount: 1}

	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))
	assert.NotZero(t, late.ID)
	assert.NotEqual(t, late.ID, early.ID)

	points, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, early.ID, points[0].ID)
	assert.Equal(t, late.ID, points[1].ID)
	assert.Equal(t, 0.7, points[0].AvgTextImportance)
	assert.Equal(t, 2, points[1].UpdateCount)
}

func TestDashboardRepo_ListEmpty(t *testing.T) {
	repo := newTestRepo(t)

	points, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestDashboardRepo_Latest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, domain.ErrDataPointNotFound)

	require.NoError(t, repo.CreateBatch(ctx, domain.MockDashboardData()))
	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-01T12:00:00Z", latest.Timestamp)
	assert.Equal(t, 0.17, latest.AvgVoiceImportance)
}

func TestDashboardRepo_LatestIgnoresClockSteps(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	newer := &domain.DashboardDataPoint{Timestamp: "2026-10-16T08:00:00.000000Z", AvgTextImportance: 0.3, UpdateCount: 2}
	older := &domain.DashboardDataPoint{Timestamp: "2026-10-16T09:00:00.000000Z", AvgTextImportance: 0.9, UpdateCount: 1}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
	assert.Equal(t, 2, latest.UpdateCount)
}

func TestDashboardRepo_CreateBatchAndCount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	points := domain.MockDashboardData()
	require.NoError(t, repo.CreateBatch(ctx, points))
	for _, p := range points {
		assert.NotZero(t, p.ID)
	}

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDashboardRepo_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hush.db")
	ctx := context.Background()

	repo, err := NewDashboardRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Migrate(ctx))
	require.NoError(t, repo.Create(ctx, &domain.DashboardDataPoint{Timestamp: "2026-10-16T08:00:00.000000Z", UpdateCount: 1}))
	repo.Close()

	repo, err = NewDashboardRepository(path)
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.Migrate(ctx))

	require.NoError(t, repo.Ping(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
