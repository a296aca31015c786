package api

import (
	"fmt"
	"net/http"

	"github.com/DubjamMusic/hustlecodex/internal/domain/model"
)

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps Dependencies
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// periodBoard is the response shape when a single period is requested.
type periodBoard struct {
	Period model.Period                   `json:"period"`
	Teams  map[model.Team]model.TeamStats `json:"teams"`
}

// HandleGetLeaderboard handles GET /leaderboard?period=P requests. With
// no period the full three-period board is returned.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	board, err := h.deps.Leaderboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	periodStr := r.URL.Query().Get("period")
	if periodStr == "" {
		writeJSON(w, http.StatusOK, board)
		return
	}

	period := model.Period(periodStr)
	if !model.ValidPeriod(period) {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: unknown period %q", ErrBadRequest, periodStr))
		return
	}

	teams := board.Daily
	switch period {
	case model.PeriodMonthly:
		teams = board.Monthly
	case model.PeriodYearly:
		teams = board.Yearly
	}

	writeJSON(w, http.StatusOK, periodBoard{Period: period, Teams: teams})
}
