package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/internal/service/collector"
)

type collectorService interface {
	Apply(ctx context.Context, input collector.ApplyInput) (*domain.CollectorApplication, error)
	GetMine(ctx context.Context, accountID uuid.UUID) (*domain.CollectorApplication, error)
	List(ctx context.Context, input collector.ListInput) ([]domain.CollectorApplication, error)
	Get(ctx context.Context, id uuid.UUID) (*collector.ApplicationDetail, error)
	Approve(ctx context.Context, input collector.DecideInput) (*domain.CollectorApplication, error)
	Reject(ctx context.Context, input collector.DecideInput) (*domain.CollectorApplication, error)
}

// CollectorHandler serves collector onboarding for accounts and admins.
type CollectorHandler struct {
	collectors collectorService
	log        *slog.Logger
}

// NewCollectorHandler creates a CollectorHandler.
func NewCollectorHandler(svc collectorService, logger *slog.Logger) *CollectorHandler {
	return &CollectorHandler{collectors: svc, log: logger.With("handler", "collector")}
}

type applyRequest struct {
	IDDocument    string  `json:"id_document"`
	Address       string  `json:"address"`
	CollectorType string  `json:"collector_type"`
	Schedule      *string `json:"schedule"`
}

type decideRequest struct {
	Reason *string `json:"reason"`
}

type applicationResponse struct {
	ID            string     `json:"id"`
	AccountID     string     `json:"account_id"`
	IDDocument    string     `json:"id_document"`
	Address       string     `json:"address"`
	Schedule      *string    `json:"schedule,omitempty"`
	CollectorType string     `json:"collector_type"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	DecidedBy     *string    `json:"decided_by,omitempty"`
}

type applicationListResponse struct {
	Applications []applicationResponse `json:"applications"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

type auditResponse struct {
	ActorID   string         `json:"actor_id"`
	Action    string         `json:"action"`
	Changes   map[string]any `json:"changes,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type applicationDetailResponse struct {
	applicationResponse
	Audit []auditResponse `json:"audit"`
}

// Apply submits the caller's collector application.
// POST /api/v1/collector/applications
func (h *CollectorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req applyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	app, err := h.collectors.Apply(r.Context(), collector.ApplyInput{
		AccountID:     accountID,
		IDDocument:    req.IDDocument,
		Address:       req.Address,
		CollectorType: domain.CollectorType(req.CollectorType),
		Schedule:      req.Schedule,
	})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toApplicationResponse(app))
}

// Mine returns the caller's latest application.
// GET /api/v1/collector/application
func (h *CollectorHandler) Mine(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	app, err := h.collectors.GetMine(r.Context(), accountID)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

// List returns the application queue.
// GET /api/v1/admin/collector/applications?status=&limit=&offset=
func (h *CollectorHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pagination(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	input := collector.ListInput{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.ApplicationStatus(s)
		input.Status = &status
	}

	apps, err := h.collectors.List(r.Context(), input)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	resp := applicationListResponse{
		Applications: make([]applicationResponse, 0, len(apps)),
		Limit:        limit,
		Offset:       offset,
	}
	for i := range apps {
		resp.Applications = append(resp.Applications, toApplicationResponse(&apps[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one application with its audit trail.
// GET /api/v1/admin/collector/applications/{id}
func (h *CollectorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	detail, err := h.collectors.Get(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	resp := applicationDetailResponse{
		applicationResponse: toApplicationResponse(&detail.Application),
		Audit:               make([]auditResponse, 0, len(detail.Audit)),
	}
	for _, a := range detail.Audit {
		resp.Audit = append(resp.Audit, auditResponse{
			ActorID:   a.ActorID.String(),
			Action:    a.Action.String(),
			Changes:   a.Changes,
			CreatedAt: a.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Approve grants the collector capability.
// POST /api/v1/admin/collector/applications/{id}/approve
func (h *CollectorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.collectors.Approve)
}

// Reject closes the application without granting the capability.
// POST /api/v1/admin/collector/applications/{id}/reject
func (h *CollectorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.collectors.Reject)
}

func (h *CollectorHandler) decide(
	w http.ResponseWriter,
	r *http.Request,
	fn func(context.Context, collector.DecideInput) (*domain.CollectorApplication, error),
) {
	id, ok := h.applicationID(w, r)
	if !ok {
		return
	}

	// The reason is optional, so an empty body is accepted.
	var req decideRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeServiceError(r.Context(), h.log, w, err)
			return
		}
	}

	app, err := fn(r.Context(), collector.DecideInput{ApplicationID: id, Reason: req.Reason})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}

func (h *CollectorHandler) applicationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(r.Context(), h.log, w, domain.NewValidationError("id", "must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

func toApplicationResponse(a *domain.CollectorApplication) applicationResponse {
	resp := applicationResponse{
		ID:            a.ID.String(),
		AccountID:     a.AccountID.String(),
		IDDocument:    a.IDDocument,
		Address:       a.Address,
		Schedule:      a.Schedule,
		CollectorType: a.CollectorType.String(),
		Status:        a.Status.String(),
		CreatedAt:     a.CreatedAt,
		ApprovedAt:    a.ApprovedAt,
		DecidedAt:     a.DecidedAt,
	}
	if a.DecidedBy != nil {
		by := a.DecidedBy.String()
		resp.DecidedBy = &by
	}
	return resp
}
