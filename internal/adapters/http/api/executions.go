package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DubjamMusic/hustlecodex/internal/orchestrator"
)

// ExecutionsHandler handles past-execution lookups.
type ExecutionsHandler struct {
	deps Dependencies
}

// NewExecutionsHandler creates a new executions handler.
func NewExecutionsHandler(deps Dependencies) *ExecutionsHandler {
	return &ExecutionsHandler{deps: deps}
}

// HandleGetExecution handles GET /executions/{id} requests.
func (h *ExecutionsHandler) HandleGetExecution(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	executionID := strings.TrimPrefix(r.URL.Path, "/executions/")
	if executionID == "" || strings.Contains(executionID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: missing execution id", ErrBadRequest))
		return
	}

	record, err := h.deps.Execution(r.Context(), executionID)
	if err != nil {
		if errors.Is(err, orchestrator.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}
