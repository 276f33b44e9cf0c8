package models

import (
	"fmt"
	"strings"
)

// ValidationError reports required inputs that were missing or malformed.
// It always names the exact fields so the UI can highlight them; the
// engine never substitutes a value for a field listed here.
type ValidationError struct {
	MissingFields []string `json:"missingFields,omitempty"`
	InvalidFields []string `json:"invalidFields,omitempty"`
	Reason        string   `json:"reason"`
}

func (e *ValidationError) Error() string {
	parts := []string{}
	if len(e.MissingFields) > 0 {
		parts = append(parts, "missing: "+strings.Join(e.MissingFields, ", "))
	}
	if len(e.InvalidFields) > 0 {
		parts = append(parts, "invalid: "+strings.Join(e.InvalidFields, ", "))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	return "validation failed (" + strings.Join(parts, "; ") + ")"
}

// NewMissingFieldsError builds a ValidationError for absent required fields.
func NewMissingFieldsError(fields ...string) *ValidationError {
	return &ValidationError{
		MissingFields: fields,
		Reason:        "required facility fields absent",
	}
}

// UnknownSubtypeError means a categorical answer was not in the
// normalization table. This is fatal for the call: silently defaulting
// unknown subtypes has historically produced multi-hundred-percent
// sizing errors.
type UnknownSubtypeError struct {
	Field    string   `json:"field"`
	Value    string   `json:"value"`
	Industry string   `json:"industry,omitempty"`
	Known    []string `json:"known"`
}

func (e *UnknownSubtypeError) Error() string {
	return fmt.Sprintf("unknown %s value %q (known: %s)",
		e.Field, e.Value, strings.Join(e.Known, ", "))
}

// ConvergenceError means an iterative solver (IRR root-find) did not
// converge within its iteration limit. The metric is reported as nil,
// never defaulted to zero.
type ConvergenceError struct {
	Metric       string  `json:"metric"`
	Iterations   int     `json:"iterations"`
	LastEstimate float64 `json:"lastEstimate"`
	Tolerance    float64 `json:"tolerance"`
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s did not converge after %d iterations (last estimate %.6f, tolerance %g)",
		e.Metric, e.Iterations, e.LastEstimate, e.Tolerance)
}

// Rejection is the authenticator's structured refusal. It pinpoints the
// failing tier and invariant; the engine never drops an offending tier
// and quietly returns the rest.
type Rejection struct {
	Code             string `json:"code"`
	Reason           string `json:"reason"`
	FailingTier      string `json:"failingTier,omitempty"`
	FailingInvariant string `json:"failingInvariant,omitempty"`
}

func (e *Rejection) Error() string {
	if e.FailingTier != "" {
		return fmt.Sprintf("quote rejected [%s]: tier %q failed %s: %s",
			e.Code, e.FailingTier, e.FailingInvariant, e.Reason)
	}
	return fmt.Sprintf("quote rejected [%s]: %s", e.Code, e.Reason)
}
