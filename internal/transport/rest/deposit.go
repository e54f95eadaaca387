package rest

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ecobin/rewards-backend/internal/domain"
	"github.com/ecobin/rewards-backend/internal/service/ledger"
)

type ledgerService interface {
	Deposit(ctx context.Context, input ledger.DepositInput) (*domain.DepositReceipt, error)
	Quote(material domain.Material, weightKg float64) (domain.Quote, error)
	History(ctx context.Context, input ledger.HistoryInput) ([]domain.DepositView, error)
}

// IdempotencyKeyHeader carries the client's deduplication key for deposits.
const IdempotencyKeyHeader = "Idempotency-Key"

// DepositHandler serves deposit endpoints.
type DepositHandler struct {
	ledger ledgerService
	money  moneyFormat
	log    *slog.Logger
}

// NewDepositHandler creates a DepositHandler.
func NewDepositHandler(svc ledgerService, currencyPrecision int32, logger *slog.Logger) *DepositHandler {
	return &DepositHandler{
		ledger: svc,
		money:  moneyFormat(currencyPrecision),
		log:    logger.With("handler", "deposit"),
	}
}

type depositRequest struct {
	BinCode  string  `json:"bin_code"`
	Material string  `json:"material"`
	WeightKg float64 `json:"weight_kg"`
}

type receiptResponse struct {
	DepositID      string    `json:"deposit_id"`
	Reward         string    `json:"reward"`
	XP             int64     `json:"xp"`
	CarbonOffsetKg string    `json:"carbon_offset_kg"`
	NewLevel       string    `json:"new_level"`
	WalletBalance  string    `json:"wallet_balance"`
	XPPoints       int64     `json:"xp_points"`
	CreatedAt      time.Time `json:"created_at"`
	Replayed       bool      `json:"replayed"`
}

type quoteResponse struct {
	Material       string `json:"material"`
	WeightKg       string `json:"weight_kg"`
	Reward         string `json:"reward"`
	XP             int64  `json:"xp"`
	CarbonOffsetKg string `json:"carbon_offset_kg"`
}

type depositView struct {
	DepositID      string    `json:"deposit_id"`
	BinCode        string    `json:"bin_code"`
	BinLocation    string    `json:"bin_location"`
	Material       string    `json:"material"`
	WeightKg       string    `json:"weight_kg"`
	Reward         string    `json:"reward"`
	XP             int64     `json:"xp"`
	CarbonOffsetKg string    `json:"carbon_offset_kg"`
	CreatedAt      time.Time `json:"created_at"`
}

type historyResponse struct {
	Deposits []depositView `json:"deposits"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// Create records a deposit for the caller.
// POST /api/v1/deposits
func (h *DepositHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req depositRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	input := ledger.DepositInput{
		AccountID: accountID,
		BinCode:   req.BinCode,
		Material:  domain.Material(strings.ToLower(strings.TrimSpace(req.Material))),
		WeightKg:  req.WeightKg,
	}
	if values, present := r.Header[http.CanonicalHeaderKey(IdempotencyKeyHeader)]; present && len(values) > 0 {
		key := values[0]
		input.IdempotencyKey = &key
	}

	receipt, err := h.ledger.Deposit(r.Context(), input)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	status := http.StatusCreated
	if receipt.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, h.toReceipt(receipt))
}

// Quote prices a deposit without recording it.
// GET /api/v1/deposits/quote?material=&weight_kg=
func (h *DepositHandler) Quote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	material := domain.Material(strings.ToLower(strings.TrimSpace(q.Get("material"))))

	weight, err := strconv.ParseFloat(q.Get("weight_kg"), 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) {
		writeServiceError(r.Context(), h.log, w, domain.NewValidationError("weight_kg", "must be a positive number"))
		return
	}

	quote, err := h.ledger.Quote(material, weight)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		Material:       quote.Material.String(),
		WeightKg:       quote.WeightKg.String(),
		Reward:         h.money.format(quote.Reward),
		XP:             quote.XP,
		CarbonOffsetKg: quote.CarbonOffsetKg.String(),
	})
}

// History lists the caller's deposits, newest first.
// GET /api/v1/deposits?limit=&offset=
func (h *DepositHandler) History(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	limit, offset, err := pagination(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	if limit == 0 {
		limit = ledger.DefaultHistoryLimit
	}

	deposits, err := h.ledger.History(r.Context(), ledger.HistoryInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	resp := historyResponse{
		Deposits: make([]depositView, 0, len(deposits)),
		Limit:    limit,
		Offset:   offset,
	}
	for _, d := range deposits {
		resp.Deposits = append(resp.Deposits, depositView{
			DepositID:      d.ID.String(),
			BinCode:        d.BinCode,
			BinLocation:    d.BinLocation,
			Material:       d.Material.String(),
			WeightKg:       d.WeightKg.String(),
			Reward:         h.money.format(d.RewardAmount),
			XP:             d.XPEarned,
			CarbonOffsetKg: d.CarbonOffsetKg.String(),
			CreatedAt:      d.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *DepositHandler) toReceipt(rc *domain.DepositReceipt) receiptResponse {
	return receiptResponse{
		DepositID:      rc.DepositID.String(),
		Reward:         h.money.format(rc.Reward),
		XP:             rc.XP,
		CarbonOffsetKg: rc.CarbonOffsetKg.String(),
		NewLevel:       rc.NewLevel,
		WalletBalance:  h.money.format(rc.WalletBalance),
		XPPoints:       rc.XPPoints,
		CreatedAt:      rc.CreatedAt,
		Replayed:       rc.Replayed,
	}
}
