package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/service/account"
)

type accountService interface {
	GetProfile(ctx context.Context, accountID uuid.UUID) (*account.Profile, error)
}

// AccountHandler serves the caller's dashboard.
type AccountHandler struct {
	accounts accountService
	money    moneyFormat
	log      *slog.Logger
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(svc accountService, currencyPrecision int32, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: svc,
		money:    moneyFormat(currencyPrecision),
		log:      logger.With("handler", "account"),
	}
}

type profileResponse struct {
	ID            string         `json:"id"`
	DisplayName   string         `json:"display_name"`
	WalletBalance string         `json:"wallet_balance"`
	XPPoints      int64          `json:"xp_points"`
	EcoLevel      string         `json:"eco_level"`
	IsCollector   bool           `json:"is_collector"`
	Level         levelResponse  `json:"level"`
	NextLevel     *levelResponse `json:"next_level,omitempty"`
	XPToNext      int64          `json:"xp_to_next"`
	Totals        totalsResponse `json:"totals"`
}

type levelResponse struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	MinXP int64  `json:"min_xp"`
}

type totalsResponse struct {
	DepositCount  int64      `json:"deposit_count"`
	TotalReward   string     `json:"total_reward"`
	TotalXP       int64      `json:"total_xp"`
	TotalCarbonKg string     `json:"total_carbon_offset_kg"`
	TotalWeightKg string     `json:"total_weight_kg"`
	LastDepositAt *time.Time `json:"last_deposit_at,omitempty"`
}

// Me returns the caller's account with ledger totals and level progress.
// GET /api/v1/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := callerID(w, r)
	if !ok {
		return
	}

	p, err := h.accounts.GetProfile(r.Context(), accountID)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	resp := profileResponse{
		ID:            p.Account.ID.String(),
		DisplayName:   p.Account.DisplayName,
		WalletBalance: h.money.format(p.Account.WalletBalance),
		XPPoints:      p.Account.XPPoints,
		EcoLevel:      p.Account.EcoLevel,
		IsCollector:   p.Account.IsCollector,
		Level:         levelResponse{Rank: p.Level.Rank, Label: p.Level.Label, MinXP: p.Level.MinXP},
		XPToNext:      p.XPToNext,
		Totals: totalsResponse{
			DepositCount:  p.Totals.DepositCount,
			TotalReward:   h.money.format(p.Totals.TotalReward),
			TotalXP:       p.Totals.TotalXP,
			TotalCarbonKg: p.Totals.TotalCarbonKg.String(),
			TotalWeightKg: p.Totals.TotalWeightKg.String(),
			LastDepositAt: p.Totals.LastDepositAt,
		},
	}
	if p.NextLevel != nil {
		resp.NextLevel = &levelResponse{Rank: p.NextLevel.Rank, Label: p.NextLevel.Label, MinXP: p.NextLevel.MinXP}
	}

	writeJSON(w, http.StatusOK, resp)
}
