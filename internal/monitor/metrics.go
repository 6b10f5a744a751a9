package monitor

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"scaling_probe/internal/core"
)

const metricsNamespace = "scaling_probe"

var readyStates = []core.ReadyStatus{core.ReadyTrue, core.ReadyFalse, core.ReadyUnknown}

// MetricsSink exposes the latest observation as gauges. Each sink owns its
// registry so several can coexist in tests.
type MetricsSink struct {
	registry *prometheus.Registry

	queueLength     prometheus.Gauge
	replicas        prometheus.Gauge
	autoscalerReady *prometheus.GaugeVec
	decision        *prometheus.GaugeVec
	observations    prometheus.Counter
}

func NewMetricsSink() *MetricsSink {
	m := &MetricsSink{
		registry: prometheus.NewRegistry(),
		queueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "queue_length",
			Help:      "Work items in the queue at the last tick.",
		}),
		replicas: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "running_replicas",
			Help:      "Running worker pods at the last tick.",
		}),
		autoscalerReady: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "autoscaler_ready",
			Help:      "1 for the autoscaler readiness reported at the last tick.",
		}, []string{"status"}),
		decision: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "expected_decision",
			Help:      "1 for the scaling decision expected at the last tick.",
		}, []string{"decision"}),
		observations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "observations_total",
			Help:      "Ticks recorded since start.",
		}),
	}

	m.registry.MustRegister(m.queueLength, m.replicas, m.autoscalerReady, m.decision, m.observations)

	return m
}

func (m *MetricsSink) Record(observation core.Observation) {
	m.queueLength.Set(float64(observation.QueueLength))
	m.replicas.Set(float64(observation.Replicas))

	for _, status := range readyStates {
		m.autoscalerReady.WithLabelValues(string(status)).Set(boolToFloat(status == observation.Ready))
	}

	for _, class := range core.AllDecisionClasses {
		m.decision.WithLabelValues(class.Label()).Set(boolToFloat(class == observation.Decision))
	}

	m.observations.Inc()
}

func (m *MetricsSink) Registry() *prometheus.Registry {
	return m.registry
}

func (m *MetricsSink) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ServeMetrics blocks until ctx is done, then shuts the server down.
func ServeMetrics(ctx context.Context, address string, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logrus.Warnf("Metrics server shutdown - %v", err)
		}
	}()

	logrus.Infof("Serving metrics on %s/metrics", address)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
