package rates

import (
	"context"
	"strings"

	"gridquote/pkg/models"
)

// stateRate is one row of the built-in tariff table.
type stateRate struct {
	energyRate   float64 // $/kWh, commercial average
	demandCharge float64 // $/kW-month
	rateClass    string
}

// stateIncentive is one row of the built-in incentive table.
type stateIncentive struct {
	rebatePerKWh float64
	capAmount    float64
	source       string
}

// Commercial tariff averages by state, EIA Form 861 derived. States
// absent from the table fall back to the national-average default,
// which is always flagged as an estimate.
var stateRates = map[string]stateRate{
	"CA": {0.225, 22.0, "commercial-tou"},
	"NY": {0.185, 18.5, "commercial-demand"},
	"MA": {0.195, 17.0, "commercial-demand"},
	"TX": {0.095, 11.0, "commercial-demand"},
	"FL": {0.105, 10.5, "commercial-demand"},
	"IL": {0.110, 12.0, "commercial-demand"},
	"WA": {0.090, 8.5, "commercial-demand"},
	"AZ": {0.115, 14.0, "commercial-tou"},
	"NV": {0.100, 12.5, "commercial-tou"},
	"NJ": {0.145, 15.0, "commercial-demand"},
	"CO": {0.105, 13.0, "commercial-demand"},
	"GA": {0.100, 11.5, "commercial-demand"},
	"HI": {0.345, 28.0, "commercial-tou"},
}

var nationalDefault = stateRate{0.125, 13.0, "commercial-demand"}

// Storage incentive programs by state (SGIP-style $/kWh rebates).
var stateIncentives = map[string]stateIncentive{
	"CA": {200, 1_000_000, "CA-SGIP-2024"},
	"NY": {175, 750_000, "NYSERDA-RETAIL-STORAGE-2024"},
	"MA": {150, 500_000, "MA-SMART-2024"},
	"MD": {120, 300_000, "MD-ESITC-2024"},
}

// StaticProvider serves the built-in tables. It is the default
// collaborator for offline use and tests; production deployments swap
// in the pgx-backed provider from pkg/core/store.
type StaticProvider struct{}

// NewStaticProvider returns the table-backed provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// GetUtilityRate returns the state's tariff row, or the flagged
// national default when the state is not in the table. Defaults are
// never silent: IsEstimate is the caller's signal to tell the user.
func (p *StaticProvider) GetUtilityRate(_ context.Context, loc models.Location) (models.UtilityRates, error) {
	state := strings.ToUpper(strings.TrimSpace(loc.State))
	if r, ok := stateRates[state]; ok {
		return models.UtilityRates{
			EnergyRatePerKWh:       r.energyRate,
			DemandChargePerKWMonth: r.demandCharge,
			RateClass:              r.rateClass,
			Source:                 "EIA-861-STATE-AVG",
			IsEstimate:             false,
		}, nil
	}
	return models.UtilityRates{
		EnergyRatePerKWh:       nationalDefault.energyRate,
		DemandChargePerKWMonth: nationalDefault.demandCharge,
		RateClass:              nationalDefault.rateClass,
		Source:                 "EIA-861-NATIONAL-AVG",
		IsEstimate:             true,
	}, nil
}

// GetIncentives returns state incentives; states without a program get
// a zero set (which is a real answer, not an estimate).
func (p *StaticProvider) GetIncentives(_ context.Context, loc models.Location) (models.IncentiveSet, error) {
	state := strings.ToUpper(strings.TrimSpace(loc.State))
	if inc, ok := stateIncentives[state]; ok {
		return models.IncentiveSet{
			StateRebatePerKWh: inc.rebatePerKWh,
			StateCapAmount:    inc.capAmount,
			Source:            inc.source,
		}, nil
	}
	return models.IncentiveSet{
		Source: "DSIRE-NO-PROGRAM",
	}, nil
}
