package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hush-backend/internal/core/domain"
	ports "hush-backend/internal/core/ports/output"
)

const namespace = "hush"

// Recorder exports aggregation activity on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	updatesAccepted prometheus.Counter
	updatesRejected *prometheus.CounterVec
	dashboardReads  prometheus.Counter
	dashboardPoints prometheus.Gauge
	globalWeight    *prometheus.GaugeVec
	updateCount     prometheus.Gauge
}

var _ ports.Recorder = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		updatesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_accepted_total",
			Help:      "Number of client updates folded into the global model",
		}),
		updatesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_rejected_total",
			Help:      "Number of client updates that were not aggregated",
		}, []string{"reason"}),
		dashboardReads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_reads_total",
			Help:      "Number of dashboard series reads",
		}),
		dashboardPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dashboard_points",
			Help:      "Number of points returned by the last dashboard read",
		}),
		globalWeight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "global_model_weight",
			Help:      "Current federated average per feature",
		}, []string{"feature"}),
		updateCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "global_model_update_count",
			Help:      "Number of updates in the current federated average",
		}),
	}

	r.registry.MustRegister(
		r.updatesAccepted,
		r.updatesRejected,
		r.dashboardReads,
		r.dashboardPoints,
		r.globalWeight,
		r.updateCount,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) UpdateAccepted(model domain.GlobalModel) {
	r.updatesAccepted.Inc()
	r.updateCount.Set(float64(model.UpdateCount))
	for _, f := range domain.Features {
		r.globalWeight.WithLabelValues(string(f)).Set(model.Weights.Get(f))
	}
}

func (r *Recorder) UpdateRejected(reason string) {
	r.updatesRejected.WithLabelValues(reason).Inc()
}

func (r *Recorder) DashboardRead(points int) {
	r.dashboardReads.Inc()
	r.dashboardPoints.Set(float64(points))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
