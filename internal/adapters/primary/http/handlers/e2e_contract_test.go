package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush-backend/internal/adapters/secondary/sqlite"
	"hush-backend/internal/core/domain"
	"hush-backend/internal/core/privacy"
	"hush-backend/internal/core/services"
)

// End-to-end contract against a real in-memory SQLite store, mirroring
// what the dashboard and on-device clients rely on.
func TestE2E_SubmitThenDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	repo, err := sqlite.NewDashboardRepository(":memory:")
	require.NoError(t, err)
	defer repo.Close()
	require.NoError(t, repo.Migrate(ctx))

	dashboardSvc := services.NewDashboardService(repo, nil)
	seeded, err := dashboardSvc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	require.True(t, seeded)

	noise := privacy.NewLaplaceMechanism(0.1, privacy.NewSource(99))
	updateSvc := services.NewUpdateService(repo, noise, domain.DefaultInitialWeights, nil)
	require.NoError(t, updateSvc.Restore(ctx))

	r := gin.New()
	New(updateSvc, dashboardSvc, repo).RegisterRoutes(r.Group("/"))

	for _, user := range []string{"anon-1", "anon-2", "anon-3"} {
		w := postJSON(t, r, "/v1/submit-update", map[string]any{
			"feature_attributions": map[string]float64{"text": 0.6, "typing": 0.3, "voice": 0.1},
			"user_id":              user,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/dashboard-data", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var series []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &series))
	require.Len(t, series, 6)

	// seeded history first, then one point per update in submission order
	assert.Equal(t, "2025-11-01T10:00:00Z", series[0]["timestamp"])
	for i := 3; i < 6; i++ {
		assert.Equal(t, float64(i-2), series[i]["update_count"])
		assert.NotContains(t, series[i], "user_id")
	}
	for i := 1; i < len(series); i++ {
		assert.LessOrEqual(t, series[i-1]["timestamp"].(string), series[i]["timestamp"].(string))
	}

	// a restarted service resumes the average instead of resetting it
	restarted := services.NewUpdateService(repo, noise, domain.DefaultInitialWeights, nil)
	require.NoError(t, restarted.Restore(ctx))
	assert.Equal(t, updateSvc.Snapshot(), restarted.Snapshot())
}
