package finance

import (
	"math"

	"gridquote/pkg/models"
)

// computeLCOS implements the national-lab levelized-cost-of-storage
// definition: discounted lifetime cost divided by discounted lifetime
// energy discharged. Costs are the battery's share of net cost up
// front, its O&M, and the cost of charging energy grossed up for
// round-trip losses; the denominator is the discharged kWh series
// already carried on the pro forma.
//
// Returns nil when the system discharges no energy (no battery), since
// a cost-per-kWh of nothing is meaningless.
func computeLCOS(in Input, batteryShareNetCost, batteryOMPerYear, roundTripEff, discountRate float64, cashFlows []models.YearCashFlow) *float64 {
	battery := findBattery(in.Equipment)
	if battery == nil || battery.EnergyKWh <= 0 || roundTripEff <= 0 {
		return nil
	}

	costPV := batteryShareNetCost // year 0, undiscounted
	var energyPV float64

	for _, cf := range cashFlows {
		discount := math.Pow(1+discountRate, float64(cf.Year))

		chargingKWh := cf.EnergyDischargedKWh / roundTripEff
		chargingCost := chargingKWh * in.Rates.EnergyRatePerKWh

		costPV += (batteryOMPerYear + chargingCost) / discount
		energyPV += cf.EnergyDischargedKWh / discount
	}

	if energyPV <= 0 {
		return nil
	}

	lcos := costPV / energyPV
	return &lcos
}
