package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rgehrsitz/itax/internal/breakeven"
	"github.com/rgehrsitz/itax/internal/calculation"
	"github.com/rgehrsitz/itax/internal/compare"
	"github.com/rgehrsitz/itax/internal/config"
	"github.com/rgehrsitz/itax/internal/domain"
)

// DefaultMaxBodyBytes caps request bodies when the handler is built without configuration
const DefaultMaxBodyBytes int64 = 64 << 10

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds the engines shared by every request. All of them are read-only
// after construction, so a single Handler serves concurrent requests.
type Handler struct {
	Engine       *calculation.TaxEngine
	Comparer     *compare.CompareEngine
	Solver       *breakeven.Solver
	Parser       *config.InputParser
	MaxBodyBytes int64
	Version      string
}

// NewHandler creates a handler around one tax engine
func NewHandler(engine *calculation.TaxEngine) *Handler {
	if engine == nil {
		engine = calculation.NewTaxEngine()
	}
	return &Handler{
		Engine:       engine,
		Comparer:     compare.NewCompareEngine(engine),
		Solver:       breakeven.NewDefaultSolver(engine),
		Parser:       config.NewInputParser(),
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// =============================================================================
// ENDPOINTS
// =============================================================================

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: h.Version})
}

// Compute handles POST /api/compute. The regime query parameter, when given,
// overrides the regime in the body.
func (h *Handler) Compute(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	regime := req.Regime
	if q := r.URL.Query().Get("regime"); q != "" {
		parsed, err := domain.ParseRegime(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid regime", err)
			return
		}
		regime = parsed
	}

	result := h.Engine.Compute(req.Inputs, regime)
	writeJSON(w, http.StatusOK, result)
}

// Compare handles POST /api/compare
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Comparer.Compare(req.Inputs))
}

// BreakEven handles POST /api/break-even. Without a target every target is searched.
func (h *Handler) BreakEven(w http.ResponseWriter, r *http.Request) {
	req, ok := h.readRequest(w, r)
	if !ok {
		return
	}

	q := r.URL.Query().Get("target")
	if q == "" {
		mt, err := h.Solver.SolveAll(r.Context(), req.Inputs)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "break-even search failed", err)
			return
		}
		writeJSON(w, http.StatusOK, mt)
		return
	}

	target, err := breakeven.ParseTarget(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid target", err)
		return
	}
	result, err := h.Solver.Solve(r.Context(), breakeven.Request{Inputs: req.Inputs, Target: target})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "break-even search failed", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Rules handles GET /api/rules
func (h *Handler) Rules(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("regime")
	if q == "" {
		writeJSON(w, http.StatusOK, h.Engine.Rules)
		return
	}
	regime, err := domain.ParseRegime(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid regime", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Engine.RegimeRules(regime))
}

// =============================================================================
// HELPERS
// =============================================================================

// readRequest decodes the body as an inputs document, writing a 400 on failure
func (h *Handler) readRequest(w http.ResponseWriter, r *http.Request) (*config.TaxRequest, bool) {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", err)
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "failed to read request body", err)
		return nil, false
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "invalid request", fmt.Errorf("empty body"))
		return nil, false
	}

	req, err := h.Parser.Parse(body)
	if err != nil {
		msg := "invalid request"
		if errors.Is(err, config.ErrMissingField) {
			msg = "missing required field"
		}
		writeError(w, http.StatusBadRequest, msg, err)
		return nil, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
