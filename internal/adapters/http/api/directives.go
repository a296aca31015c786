package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/DubjamMusic/hustlecodex/internal/orchestrator"
)

const defaultMaxDirectiveChars = 5000

// directiveRequest mirrors the request schema for POST /directives.
type directiveRequest struct {
	Directive       string `json:"directive"`
	RulesetName     string `json:"ruleset_name"`
	CompetitionMode *bool  `json:"competition_mode"`
	IncludeUltimate bool   `json:"include_ultimate"`
	IncludeDetails  bool   `json:"include_details"`
}

// DirectivesHandler handles directive execution requests.
type DirectivesHandler struct {
	deps     Dependencies
	maxChars int
}

// NewDirectivesHandler creates a new directives handler.
func NewDirectivesHandler(deps Dependencies) *DirectivesHandler {
	return &DirectivesHandler{
		deps:     deps,
		maxChars: defaultMaxDirectiveChars,
	}
}

// HandlePostDirective handles POST /directives requests.
func (h *DirectivesHandler) HandlePostDirective(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req directiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid JSON body", ErrBadRequest))
		return
	}

	req.Directive = strings.TrimSpace(req.Directive)
	if req.Directive == "" {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: directive is required", ErrBadRequest))
		return
	}
	if len(req.Directive) > h.maxChars {
		req.Directive = req.Directive[:h.maxChars]
	}

	competitionMode := true
	if req.CompetitionMode != nil {
		competitionMode = *req.CompetitionMode
	}

	result, err := h.deps.ExecuteDirective(r.Context(), orchestrator.Request{
		Directive:       req.Directive,
		RulesetName:     req.RulesetName,
		CompetitionMode: competitionMode,
		IncludeUltimate: req.IncludeUltimate,
	})
	if err != nil {
		if errors.Is(err, orchestrator.ErrEmptyDirective) {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	// Raw agent outputs are opt-in; the judgment and validation
	// reports always ship.
	if !req.IncludeDetails {
		result.Outputs = nil
	}

	writeJSON(w, http.StatusOK, result)
}
