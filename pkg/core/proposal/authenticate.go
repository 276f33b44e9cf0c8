// Package proposal is the gate between candidate estimates and the
// quote a customer may actually be shown. It re-checks every tier
// against the baseline invariants and is the only package that
// constructs an AuthenticatedQuote; everything upstream only ever holds
// estimates. A tier either passes whole or the entire proposal is
// rejected with the failing tier and invariant named. A bad tier is
// never quietly dropped.
package proposal

import (
	"math"
	"time"

	"github.com/google/uuid"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/core/finance"
	"gridquote/pkg/models"
)

// Authenticate runs the invariant checks over the baseline and tiers.
// Success returns the immutable AuthenticatedQuote; any failure returns
// a *models.Rejection. The state machine is Proposed -> {Authenticated,
// Rejected} with no retry at this layer.
func Authenticate(reg *benchmark.Registry, input models.FacilityInput, baseline models.BaseCalculation, tiers []models.SystemOption, trail models.AuditTrail) (*models.AuthenticatedQuote, error) {
	boundRatio := reg.MustValue("policy.tier.bound_ratio")
	npvTolerance := reg.MustValue("policy.auth.npv_tolerance")

	if rej := checkEquipment("baseline", baseline.Equipment); rej != nil {
		return nil, rej
	}
	if rej := checkFinancials("baseline", &baseline.Financials, npvTolerance); rej != nil {
		return nil, rej
	}

	baseBattery := findByKind(baseline.Equipment, models.EquipmentBattery)

	options := make(map[string]models.SystemOption, len(tiers))
	for _, tier := range tiers {
		if !tier.IsEstimate {
			return nil, &models.Rejection{
				Code:        "TIER_NOT_ESTIMATE",
				Reason:      "a tier reached authentication without its estimate tag; an already-final tier cannot be re-authenticated",
				FailingTier: tier.Name,
			}
		}

		if rej := checkEquipment(tier.Name, tier.Equipment); rej != nil {
			return nil, rej
		}
		if rej := checkScaleBound(tier, baseBattery, boundRatio); rej != nil {
			return nil, rej
		}
		if rej := checkFinancials(tier.Name, &tier.Financials, npvTolerance); rej != nil {
			return nil, rej
		}

		authenticated := tier
		authenticated.IsEstimate = false
		options[tier.Name] = authenticated
	}

	quote := &models.AuthenticatedQuote{
		QuoteID:     uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Input:       input,
		Baseline:    baseline,
		Options:     options,
		Audit:       trail,
	}
	return quote, nil
}

// checkEquipment rejects physically impossible specs and enforces the
// battery power x duration identity.
func checkEquipment(tierName string, equipment []models.EquipmentSpec) *models.Rejection {
	for _, spec := range equipment {
		if spec.PowerKW < 0 || spec.EnergyKWh < 0 || spec.DurationHours < 0 {
			return &models.Rejection{
				Code:             "NEGATIVE_RATING",
				Reason:           "equipment spec carries a negative power, energy, or duration",
				FailingTier:      tierName,
				FailingInvariant: "powerKW >= 0, energyKWh >= 0, durationHours >= 0",
			}
		}
		if spec.Kind == models.EquipmentBattery {
			expected := spec.PowerKW * spec.DurationHours
			if math.Abs(spec.EnergyKWh-expected) > 1e-6*math.Max(1, expected) {
				return &models.Rejection{
					Code:             "BATTERY_IDENTITY",
					Reason:           "battery energy does not equal power x duration",
					FailingTier:      tierName,
					FailingInvariant: "energyKWh = powerKW x durationHours",
				}
			}
		}
	}
	return nil
}

// checkScaleBound catches runaway scaling: no tier battery may exceed
// the policy bound ratio of the baseline's size.
func checkScaleBound(tier models.SystemOption, baseBattery *models.EquipmentSpec, boundRatio float64) *models.Rejection {
	if baseBattery == nil {
		return nil
	}
	tierBattery := findByKind(tier.Equipment, models.EquipmentBattery)
	if tierBattery == nil {
		return nil
	}

	if tierBattery.PowerKW > baseBattery.PowerKW*boundRatio ||
		tierBattery.EnergyKWh > baseBattery.EnergyKWh*boundRatio {
		return &models.Rejection{
			Code:             "SCALE_BOUND_EXCEEDED",
			Reason:           "tier battery sizing exceeds the allowed ratio of baseline",
			FailingTier:      tier.Name,
			FailingInvariant: "tier size <= boundRatio x baseline size",
		}
	}
	return nil
}

// checkFinancials re-derives the consistency-critical numbers from the
// tier's own reported components and compares, instead of trusting the
// summary block.
func checkFinancials(tierName string, fin *models.FinancialResult, npvTolerance float64) *models.Rejection {
	m := fin.Metrics

	// netCost = CAPEX - incentives
	expectedNet := m.GrossCapex - m.ITCAmount - m.StateIncentives
	if expectedNet < 0 {
		expectedNet = 0
	}
	if math.Abs(m.NetCost-expectedNet) > 0.01*math.Max(1, expectedNet) {
		return &models.Rejection{
			Code:             "NET_COST_MISMATCH",
			Reason:           "reported net cost does not equal CAPEX minus incentives",
			FailingTier:      tierName,
			FailingInvariant: "netCost = CAPEX - incentives",
		}
	}

	// Independent NPV recompute from the reported cash flows.
	recomputed := recomputeNPV(fin)
	scale := math.Max(math.Abs(m.NPV), math.Max(m.NetCost, 1))
	if math.Abs(recomputed-m.NPV) > npvTolerance*scale {
		return &models.Rejection{
			Code:             "NPV_MISMATCH",
			Reason:           "independently recomputed NPV disagrees with the reported value",
			FailingTier:      tierName,
			FailingInvariant: "NPV(reported cash flows) = reported NPV",
		}
	}

	// A financed tier must present its coverage ratio; banks gate on it.
	if fin.DebtAmount > 0 {
		if m.MinimumDSCR == nil || math.IsNaN(*m.MinimumDSCR) || math.IsInf(*m.MinimumDSCR, 0) {
			return &models.Rejection{
				Code:             "DSCR_MISSING",
				Reason:           "tier carries debt but reports no finite minimum DSCR",
				FailingTier:      tierName,
				FailingInvariant: "debtAmount > 0 implies finite minimumDSCR",
			}
		}
	}

	return nil
}

// recomputeNPV rebuilds the unlevered flow series from the pro forma
// rows and discounts it, mirroring the engine's definitions without
// sharing its code path for the summary number.
func recomputeNPV(fin *models.FinancialResult) float64 {
	flows := make([]float64, 0, len(fin.CashFlows)+1)
	flows = append(flows, -fin.Metrics.NetCost)
	for _, cf := range fin.CashFlows {
		depAmount := 0.0
		if cf.DepreciationShield > 0 && fin.Capital.TaxRate > 0 {
			depAmount = cf.DepreciationShield / fin.Capital.TaxRate
		}
		uTaxes := (cf.EBITDA - depAmount) * fin.Capital.TaxRate
		if uTaxes < 0 {
			uTaxes = 0
		}
		flows = append(flows, cf.EBITDA-uTaxes)
	}
	return finance.NPV(fin.Capital.DiscountRate, flows)
}

func findByKind(equipment []models.EquipmentSpec, kind models.EquipmentKind) *models.EquipmentSpec {
	for i := range equipment {
		if equipment[i].Kind == kind {
			return &equipment[i]
		}
	}
	return nil
}
