package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hush-backend/internal/core/domain"
	"hush-backend/internal/testutil"
)

func TestDashboardService_List(t *testing.T) {
	repo := new(testutil.MockDashboardRepo)
	svc := NewDashboardService(repo, nil)

	points := domain.MockDashboardData()
	repo.On("List", mock.Anything).Return(points, nil)

	result, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, result, 3)
}

func TestDashboardService_List_EmptyIsNotNil(t *testing.T) {
	repo := new(testutil.MockDashboardRepo)
	svc := NewDashboardService(repo, nil)
	repo.On("List", mock.Anything).Return(nil, nil)

	result, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestDashboardService_SeedIfEmpty(t *testing.T) {
	repo := new(testutil.MockDashboardRepo)
	svc := NewDashboardService(repo, nil)
	repo.On("Count", mock.Anything).Return(0, nil)
	repo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(p []*domain.DashboardDataPoint) bool {
		return len(p) == 3
	})).Return(nil)

	seeded, err := svc.SeedIfEmpty(context.Background())
	require.NoError(t, err)
	assert.True(t, seeded)
	repo.AssertExpectations(t)
}

func TestDashboardService_SeedIfEmpty_NotEmpty(t *testing.T) {
	repo := new(testutil.MockDashboardRepo)
	svc := NewDashboardService(repo, nil)
	repo.On("Count", mock.Anything).Return(5, nil)

	seeded, err := svc.SeedIfEmpty(context.Background())
	require.NoError(t, err)
	assert.False(t, seeded)
	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestDashboardService_SeedIfEmpty_CountFails(t *testing.T) {
	repo := new(testutil.MockDashboardRepo)
	svc := NewDashboardService(repo, nil)
	repo.On("Count", mock.Anything).Return(0, errors.New("boom"))

	_, err := svc.SeedIfEmpty(context.Background())
	assert.Error(t, err)
}
