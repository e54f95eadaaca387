package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ecobin/rewards-backend/internal/domain"
)

type leaderboardService interface {
	Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error)
}

// LeaderboardHandler serves the public ranking.
type LeaderboardHandler struct {
	board leaderboardService
	money moneyFormat
	log   *slog.Logger
}

// NewLeaderboardHandler creates a LeaderboardHandler.
func NewLeaderboardHandler(svc leaderboardService, currencyPrecision int32, logger *slog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		board: svc,
		money: moneyFormat(currencyPrecision),
		log:   logger.With("handler", "leaderboard"),
	}
}

type leaderboardEntry struct {
	Rank          int    `json:"rank"`
	AccountID     string `json:"account_id"`
	DisplayName   string `json:"display_name"`
	XPPoints      int64  `json:"xp_points"`
	EcoLevel      string `json:"eco_level"`
	WalletBalance string `json:"wallet_balance"`
}

type leaderboardResponse struct {
	Entries []leaderboardEntry `json:"entries"`
}

// Top returns the highest-XP accounts.
// GET /api/v1/leaderboard?n=
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", 0)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	entries, err := h.board.Top(r.Context(), n)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}

	resp := leaderboardResponse{Entries: make([]leaderboardEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, leaderboardEntry{
			Rank:          e.Rank,
			AccountID:     e.AccountID.String(),
			DisplayName:   e.DisplayName,
			XPPoints:      e.XPPoints,
			EcoLevel:      e.EcoLevel,
			WalletBalance: h.money.format(e.WalletBalance),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
