// Package utils holds small parsing helpers shared by the binaries and
// API handlers.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"

	"gridquote/pkg/models"
)

// quoteRequest is the document shape the wizard hands over: the raw
// facility answers plus preferences.
type quoteRequest struct {
	Input models.FacilityInput `json:"input"`
	Prefs models.Preferences   `json:"prefs"`
}

// ParseQuoteRequest decodes a facility-input document. Wizard exports
// arrive in three flavors: clean JSON, Hjson (hand-edited files with
// comments and unquoted keys), and slightly broken JSON from truncated
// copy-paste. Strict JSON is tried first, then Hjson, then repair.
// Repair fixes syntax only, it never invents field values, so the
// validation rules downstream still see exactly what the user answered.
func ParseQuoteRequest(raw []byte) (models.FacilityInput, models.Preferences, error) {
	var req quoteRequest

	if err := json.Unmarshal(raw, &req); err == nil {
		return req.Input, req.Prefs, nil
	}

	if err := hjson.Unmarshal(raw, &req); err == nil {
		return req.Input, req.Prefs, nil
	}

	repaired, err := jsonrepair.RepairJSON(string(raw))
	if err != nil {
		return models.FacilityInput{}, models.Preferences{}, fmt.Errorf("input document is not parseable JSON or Hjson: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &req); err != nil {
		return models.FacilityInput{}, models.Preferences{}, fmt.Errorf("input document unparseable even after repair: %w", err)
	}
	return req.Input, req.Prefs, nil
}
