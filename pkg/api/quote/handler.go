package quote

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gridquote/pkg/core/benchmark"
	corequote "gridquote/pkg/core/quote"
	"gridquote/pkg/core/rates"
	"gridquote/pkg/core/utils"
	"gridquote/pkg/models"
)

var registry *benchmark.Registry
var provider rates.Provider
var orchestrator *corequote.Orchestrator

// InitHandler wires the shared registry, rate provider, and orchestrator
// into the package before routes are registered.
func InitHandler(reg *benchmark.Registry, p rates.Provider, orc *corequote.Orchestrator) {
	registry = reg
	provider = p
	orchestrator = orc
}

type errorResponse struct {
	Error   string      `json:"error"`
	Code    string      `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func cors(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return true
	}
	return false
}

// HandleCalculate runs the full pipeline for one facility described in
// the request body. The body may be strict JSON or the forgiving HJSON
// shape the intake forms emit.
func HandleCalculate(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != "POST" {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	input, prefs, err := utils.ParseQuoteRequest(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "BAD_REQUEST"})
		return
	}

	fmt.Printf("[API] Quote request: industry=%s state=%s\n", input.Industry, input.Location.State)
	start := time.Now()

	quote, err := orchestrator.CalculateQuote(r.Context(), input, prefs)
	if err != nil {
		var vErr *models.ValidationError
		var sErr *models.UnknownSubtypeError
		var rej *models.Rejection
		switch {
		case errors.As(err, &vErr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error(), Code: "VALIDATION", Details: vErr})
		case errors.As(err, &sErr):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: sErr.Error(), Code: "UNKNOWN_SUBTYPE", Details: sErr})
		case errors.As(err, &rej):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: rej.Error(), Code: rej.Code, Details: rej})
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	fmt.Printf("[API] Quote %s generated in %v\n", quote.QuoteID, time.Since(start).Round(time.Millisecond))
	writeJSON(w, http.StatusOK, quote)
}

type ratesRequest struct {
	State string `json:"state"`
	Zip   string `json:"zip,omitempty"`
}

type ratesResponse struct {
	Rates      models.UtilityRates `json:"rates"`
	Incentives models.IncentiveSet `json:"incentives"`
}

// HandleRates exposes the provider's rate and incentive lookup so the
// intake UI can preview numbers before a full quote is requested.
func HandleRates(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}
	if r.Method != "POST" {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var req ratesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.State == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "state is required", Code: "VALIDATION"})
		return
	}

	loc := models.Location{State: req.State, Zip: req.Zip}
	utility, err := provider.GetUtilityRate(r.Context(), loc)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	incentives, err := provider.GetIncentives(r.Context(), loc)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ratesResponse{Rates: utility, Incentives: incentives})
}

// HandleBenchmarks lists the loaded benchmark catalog, ids and sources
// included, for audit inspection.
func HandleBenchmarks(w http.ResponseWriter, r *http.Request) {
	if cors(w, r) {
		return
	}

	ids := registry.List()
	out := make([]benchmark.Benchmark, 0, len(ids))
	for _, id := range ids {
		b, err := registry.Lookup(id)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(out),
		"benchmarks": out,
	})
}
