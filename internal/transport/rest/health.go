package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is a component probed by /ready and /health. A required
// dependency that fails takes the service down; an optional one only marks
// it degraded (the ledger keeps working without cache or broker).
type Dependency struct {
	Name     string
	Check    pinger
	Required bool
}

// HealthHandler serves probe endpoints.
type HealthHandler struct {
	deps    []Dependency
	version string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler. Dependencies are probed in order.
func NewHealthHandler(version string, deps ...Dependency) *HealthHandler {
	return &HealthHandler{deps: deps, version: version, now: time.Now}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status   string `json:"status"`
	Required bool   `json:"required"`
	Latency  string `json:"latency,omitempty"`
}

// Live always returns 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready returns 503 when a required dependency is unreachable. Optional
// dependencies are not probed: a missing cache must not pull the instance out
// of rotation.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	for _, d := range h.deps {
		if !d.Required {
			continue
		}
		if err := d.Check.Ping(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: h.now()})
			return
		}
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Health probes every dependency with latency and reports the build version.
// Overall status is "down" if a required dependency fails, "degraded" if only
// optional ones do.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	components := make(map[string]CompStatus, len(h.deps))
	overall := "ok"

	for _, d := range h.deps {
		start := time.Now()
		err := d.Check.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components[d.Name] = CompStatus{Status: "down", Required: d.Required}
			switch {
			case d.Required:
				overall = "down"
			case overall == "ok":
				overall = "degraded"
			}
			continue
		}
		components[d.Name] = CompStatus{Status: "ok", Required: d.Required, Latency: latency.String()}
	}

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}
