// Package finance is the financial model engine: CAPEX, incentives,
// MACRS depreciation, debt amortization, revenue stacking with
// degradation and escalation, and the summary metrics (NPV, IRR, DSCR,
// LCOS, payback, ROI, MOIC) a lender gates on. Nothing else in the
// system computes financial numbers; other components only consume
// FinancialResult values produced here.
package finance

import (
	"gridquote/pkg/models"
)

// Input is everything the engine needs for one run. All fields are read
// only; the engine holds no state between calls.
type Input struct {
	Equipment  []models.EquipmentSpec
	Rates      models.UtilityRates
	Incentives models.IncentiveSet
	Capital    models.CapitalStructure
	Revenue    models.RevenueToggles

	// Profile supplies demand and consumption for the rate-driven
	// revenue streams.
	Profile *models.LoadProfile

	// InstallYear selects the date-versioned ITC rate.
	InstallYear int
}

// componentName is the stable name a spec's cost appears under in the
// CAPEX breakdown and audit trail.
func componentName(spec models.EquipmentSpec) string {
	return string(spec.Kind)
}

// findBattery returns the battery spec, which several streams key off.
func findBattery(equipment []models.EquipmentSpec) *models.EquipmentSpec {
	for i := range equipment {
		if equipment[i].Kind == models.EquipmentBattery {
			return &equipment[i]
		}
	}
	return nil
}

func findSolar(equipment []models.EquipmentSpec) *models.EquipmentSpec {
	for i := range equipment {
		if equipment[i].Kind == models.EquipmentSolar {
			return &equipment[i]
		}
	}
	return nil
}
