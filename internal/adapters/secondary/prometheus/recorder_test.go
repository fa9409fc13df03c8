package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush-backend/internal/core/domain"
)

func TestRecorder_UpdateAccepted(t *testing.T) {
	r := NewRecorder()
	r.UpdateAccepted(domain.GlobalModel{
		Weights:     domain.FeatureVector{Text: 0.5, Typing: 0.3, Voice: 0.2},
		UpdateCount: 3,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.updatesAccepted))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.updateCount))
	assert.Equal(t, 0.5, testutil.ToFloat64(r.globalWeight.WithLabelValues("text")))
	assert.Equal(t, 0.2, testutil.ToFloat64(r.globalWeight.WithLabelValues("voice")))
}

func TestRecorder_RejectedAndReads(t *testing.T) {
	r := NewRecorder()
	r.UpdateRejected("invalid")
	r.UpdateRejected("invalid")
	r.UpdateRejected("storage")
	r.DashboardRead(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.updatesRejected.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.updatesRejected.WithLabelValues("storage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.dashboardReads))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.dashboardPoints))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.DashboardRead(1)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), "hush_dashboard_reads_total 1")
}
