package finance

import (
	"gridquote/pkg/models"
)

// streamParams holds the benchmark figures the revenue stack needs,
// fetched once per engine run.
type streamParams struct {
	arbitrageSpread   float64 // $/kWh
	cyclesPerYear     float64
	freqRegPerKWYear  float64
	capacityPerKWYear float64
	drPerKWYear       float64
	solarKWhPerKWYear float64
	roundTripEff      float64
	degradationRate   float64
	escalationRate    float64
}

// Stream names as they appear in YearCashFlow.Revenue maps.
const (
	StreamArbitrage      = "energy_arbitrage"
	StreamDemandCharge   = "demand_charge_reduction"
	StreamFreqRegulation = "frequency_regulation"
	StreamCapacity       = "capacity_payments"
	StreamDemandResponse = "demand_response"
	StreamSolar          = "solar_self_consumption"
)

// yearRevenue computes every enabled stream for one year. Disabled
// streams are absent from the map: zero by omission, never a default
// estimate. degFactor is the battery capacity factor for the year and
// escFactor the cumulative utility-rate escalation.
func yearRevenue(p streamParams, in Input, degFactor, escFactor float64) map[string]float64 {
	revenue := make(map[string]float64)
	battery := findBattery(in.Equipment)
	solar := findSolar(in.Equipment)

	if in.Revenue.DemandChargeReduction && battery != nil {
		// Peak shaving clips the billed demand by the battery's power
		// rating, every month, at the escalated demand charge.
		revenue[StreamDemandCharge] = battery.PowerKW * in.Rates.DemandChargePerKWMonth * 12 * escFactor
	}

	if in.Revenue.EnergyArbitrage && battery != nil {
		usableKWh := battery.EnergyKWh * degFactor
		revenue[StreamArbitrage] = usableKWh * p.cyclesPerYear * p.arbitrageSpread * p.roundTripEff * escFactor
	}

	if in.Revenue.FrequencyRegulation && battery != nil {
		revenue[StreamFreqRegulation] = battery.PowerKW * degFactor * p.freqRegPerKWYear
	}

	if in.Revenue.CapacityPayments && battery != nil {
		revenue[StreamCapacity] = battery.PowerKW * degFactor * p.capacityPerKWYear
	}

	if in.Revenue.DemandResponse && battery != nil {
		revenue[StreamDemandResponse] = battery.PowerKW * degFactor * p.drPerKWYear
	}

	if in.Revenue.SolarSelfConsumption && solar != nil {
		// Solar output offsets retail energy purchases; panel
		// degradation is folded into the same annual factor.
		production := solar.PowerKW * p.solarKWhPerKWYear * degFactor
		revenue[StreamSolar] = production * in.Rates.EnergyRatePerKWh * escFactor
	}

	return revenue
}

// yearDischargedKWh is the battery energy delivered in one year, the
// denominator basis for LCOS.
func yearDischargedKWh(p streamParams, in Input, degFactor float64) float64 {
	battery := findBattery(in.Equipment)
	if battery == nil {
		return 0
	}
	return battery.EnergyKWh * degFactor * p.cyclesPerYear * p.roundTripEff
}

// yearOpex sums O&M across the equipment fleet at the year's
// escalation.
func yearOpex(omRates map[models.EquipmentKind]float64, in Input, escFactor float64) float64 {
	var opex float64
	for _, spec := range in.Equipment {
		rate := omRates[spec.Kind]
		switch spec.Kind {
		case models.EquipmentBattery:
			opex += rate * spec.EnergyKWh
		case models.EquipmentSolar, models.EquipmentGenerator:
			opex += rate * spec.PowerKW
		case models.EquipmentEVCharger:
			opex += rate * float64(spec.Quantity)
		}
	}
	return opex * escFactor
}
