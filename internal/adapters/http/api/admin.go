package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/DubjamMusic/hustlecodex/internal/tracker"
)

// resetRequest mirrors the request schema for POST /admin/reset.
type resetRequest struct {
	Period      string `json:"period"`
	ConfirmCode string `json:"confirm_code"`
}

// AdminHandler handles privileged operations.
type AdminHandler struct {
	deps Dependencies
	code string
}

// NewAdminHandler creates a new admin handler. Resets stay disabled
// until a code is configured.
func NewAdminHandler(deps Dependencies) *AdminHandler {
	return &AdminHandler{deps: deps}
}

// HandleReset handles POST /admin/reset requests.
func (h *AdminHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid JSON body", ErrBadRequest))
		return
	}

	if h.code == "" || req.ConfirmCode != h.code {
		writeError(w, http.StatusForbidden, "forbidden", ErrForbidden)
		return
	}

	if req.Period == "" {
		req.Period = tracker.PeriodAll
	}

	if err := h.deps.ResetScores(r.Context(), req.Period); err != nil {
		if errors.Is(err, tracker.ErrInvalidPeriod) {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset", "period": req.Period})
}
