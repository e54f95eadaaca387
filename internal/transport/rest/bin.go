package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/internal/service/bin"
)

type binService interface {
	Resolve(ctx context.Context, code string) (*domain.Bin, error)
	List(ctx context.Context, input bin.ListInput) ([]domain.Bin, error)
	Summary(ctx context.Context) (domain.BinSummary, error)
}

// BinHandler serves the public bin registry.
type BinHandler struct {
	bins binService
	log  *slog.Logger
}

// NewBinHandler creates a BinHandler.
func NewBinHandler(svc binService, logger *slog.Logger) *BinHandler {
	return &BinHandler{bins: svc, log: logger.With("handler", "bin")}
}

type binResponse struct {
	Code           string    `json:"code"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	FillLevel      int       `json:"fill_level"`
	MunicipalityID *string   `json:"municipality_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type binListResponse struct {
	Bins   []binResponse `json:"bins"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

type binSummaryResponse struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Full      int `json:"full"`
	Offline   int `json:"offline"`
}

// List returns bins ordered by location.
// GET /api/v1/bins?status=&municipality_id=&limit=&offset=
func (h *BinHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pagination(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	input := bin.ListInput{Limit: limit, Offset: offset}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.BinStatus(s)
		input.Status = &status
	}
	if m := r.URL.Query().Get("municipality_id"); m != "" {
		id, err := uuid.Parse(m)
		if err != nil {
			writeServiceError(r.Context(), h.log, w, domain.NewValidationError("municipality_id", "must be a UUID"))
			return
		}
		input.MunicipalityID = &id
	}

	bins, err := h.bins.List(r.Context(), input)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	resp := binListResponse{Bins: make([]binResponse, 0, len(bins)), Limit: limit, Offset: offset}
	for i := range bins {
		resp.Bins = append(resp.Bins, toBinResponse(&bins[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get resolves a single bin by its public code.
// GET /api/v1/bins/{code}
func (h *BinHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.bins.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBinResponse(b))
}

// Summary counts bins per status.
// GET /api/v1/bins/summary
func (h *BinHandler) Summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.bins.Summary(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, binSummaryResponse{
		Total:     s.Total,
		Available: s.Available,
		Full:      s.Full,
		Offline:   s.Offline,
	})
}

func toBinResponse(b *domain.Bin) binResponse {
	resp := binResponse{
		Code:      b.Code,
		Location:  b.Location,
		Status:    b.Status.String(),
		FillLevel: b.FillLevel,
		CreatedAt: b.CreatedAt,
	}
	if b.MunicipalityID != nil {
		id := b.MunicipalityID.String()
		resp.MunicipalityID = &id
	}
	return resp
}
