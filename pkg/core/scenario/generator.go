// Package scenario produces the candidate system tiers ("starter",
// "balanced", "max") from one baseline. Every tier gets its own full
// financial run; a tier never borrows the baseline's numbers with a new
// label, and every tier leaves here marked as an estimate pending
// authentication.
package scenario

import (
	"fmt"
	"sort"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/core/finance"
	"gridquote/pkg/models"
)

// tierName labels a scale factor for display.
func tierName(factor float64) string {
	switch {
	case factor < 1.0:
		return fmt.Sprintf("starter-%.0f", factor*100)
	case factor == 1.0:
		return "balanced"
	default:
		return fmt.Sprintf("max-%.0f", factor*100)
	}
}

// DefaultScaleFactors reads the tier ladder from the registry.
func DefaultScaleFactors(reg *benchmark.Registry) []float64 {
	return []float64{
		reg.MustValue("policy.tier.scale.starter"),
		reg.MustValue("policy.tier.scale.balanced"),
		reg.MustValue("policy.tier.scale.max"),
	}
}

// Generate builds one SystemOption per scale factor. The baseline's
// equipment is scaled, costs re-derived, and the finance engine re-run
// from scratch per tier.
func Generate(reg *benchmark.Registry, baseline models.BaseCalculation, finIn finance.Input, factors []float64) ([]models.SystemOption, error) {
	if len(factors) == 0 {
		return nil, &models.ValidationError{
			MissingFields: []string{"tierScaleFactors"},
			Reason:        "at least one tier scale factor required",
		}
	}

	sorted := append([]float64(nil), factors...)
	sort.Float64s(sorted)

	options := make([]models.SystemOption, 0, len(sorted))
	for _, factor := range sorted {
		if factor <= 0 {
			return nil, &models.ValidationError{
				InvalidFields: []string{"tierScaleFactors"},
				Reason:        fmt.Sprintf("scale factor must be positive, got %f", factor),
			}
		}

		scaled := scaleEquipment(baseline.Equipment, factor)

		tierFin := finIn
		tierFin.Equipment = scaled
		financials, _, err := finance.Compute(reg, tierFin)
		if err != nil {
			return nil, fmt.Errorf("tier %s financial model failed: %w", tierName(factor), err)
		}

		options = append(options, models.SystemOption{
			Name:        tierName(factor),
			ScaleFactor: factor,
			Equipment:   scaled,
			Financials:  *financials,
			IsEstimate:  true,
		})
	}

	return options, nil
}

// scaleEquipment multiplies power and energy ratings by the factor.
// Battery duration is size-invariant, so energy scales through power
// and the power x duration identity holds at every tier. Charger port
// counts are physical units and round down, never up past the plan.
func scaleEquipment(equipment []models.EquipmentSpec, factor float64) []models.EquipmentSpec {
	scaled := make([]models.EquipmentSpec, len(equipment))
	for i, spec := range equipment {
		s := spec
		s.PowerKW = spec.PowerKW * factor
		if spec.Kind == models.EquipmentBattery {
			s.EnergyKWh = s.PowerKW * spec.DurationHours
		}
		if spec.Kind == models.EquipmentEVCharger && spec.Quantity > 0 {
			s.Quantity = int(float64(spec.Quantity) * factor)
			if s.Quantity < 1 {
				s.Quantity = 1
			}
			// Power follows the rounded port count so the rating and
			// the per-unit cost basis describe the same installation.
			s.PowerKW = spec.PowerKW / float64(spec.Quantity) * float64(s.Quantity)
		}
		s.Basis = models.SizingBasis{
			Formula:  fmt.Sprintf("baseline %s scaled by %.2f", spec.Kind, factor),
			Inputs:   map[string]float64{"baselinePowerKW": spec.PowerKW, "scaleFactor": factor},
			SourceID: spec.Basis.SourceID,
		}
		scaled[i] = s
	}
	return scaled
}
