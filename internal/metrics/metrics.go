// Package metrics holds the Prometheus collectors of the rewards service.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/ecobin/rewards-backend/internal/domain"
)

const namespace = "ecobin"

// Metrics owns a private registry so tests can create independent instances.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	deposits       *prometheus.CounterVec
	rewardTotal    *prometheus.CounterVec
	outboxPublish  *prometheus.CounterVec
	outboxPending  prometheus.Gauge
	reconcileRuns  *prometheus.CounterVec
	reconcileDrift prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "route"}),
		deposits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "deposits_total",
			Help:      "Committed deposits by material and whether they were idempotent replays.",
		}, []string{"material", "replayed"}),
		rewardTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "reward_credited_total",
			Help:      "Sum of rewards credited to wallets, in currency units.",
		}, []string{"material"}),
		outboxPublish: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "publish_total",
			Help:      "Outbox publish attempts by topic and result.",
		}, []string{"topic", "result"}),
		outboxPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "pending_events",
			Help:      "Unpublished outbox events at the last relay pass.",
		}),
		reconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "runs_total",
			Help:      "Reconciliation passes by result.",
		}, []string{"result"}),
		reconcileDrift: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reconcile",
			Name:      "mismatched_accounts",
			Help:      "Accounts whose aggregate disagreed with the ledger at the last pass.",
		}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.deposits,
		m.rewardTotal,
		m.outboxPublish,
		m.outboxPending,
		m.reconcileRuns,
		m.reconcileDrift,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveDeposit records a committed deposit.
func (m *Metrics) ObserveDeposit(material domain.Material, reward decimal.Decimal, replayed bool) {
	m.deposits.WithLabelValues(string(material), strconv.FormatBool(replayed)).Inc()
	if !replayed {
		m.rewardTotal.WithLabelValues(string(material)).Add(reward.InexactFloat64())
	}
}

// ObservePublish records one outbox publish attempt.
func (m *Metrics) ObservePublish(topic string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.outboxPublish.WithLabelValues(topic, result).Inc()
}

// SetOutboxPending records the outbox backlog.
func (m *Metrics) SetOutboxPending(n int64) { m.outboxPending.Set(float64(n)) }

// ObserveReconcile records a reconciliation pass.
func (m *Metrics) ObserveReconcile(mismatches int, err error) {
	if err != nil {
		m.reconcileRuns.WithLabelValues("error").Inc()
		return
	}
	m.reconcileRuns.WithLabelValues("ok").Inc()
	m.reconcileDrift.Set(float64(mismatches))
}

// Middleware records request count and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

// routePattern keeps label cardinality bounded: unmatched paths collapse into
// a single label.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
