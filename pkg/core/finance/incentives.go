package finance

import (
	"fmt"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/models"
)

// incentiveAmounts resolves the federal ITC and state incentives into
// dollar amounts. The ITC rate is date-versioned: the provider's figure
// wins when it supplied one, otherwise the registry rate for the
// install year applies. A year with no cataloged rate is an error, not
// a zero.
func incentiveAmounts(reg *benchmark.Registry, capex models.CapexBreakdown, inc models.IncentiveSet, equipment []models.EquipmentSpec, installYear int, trail models.AuditTrail) (itc, state float64, out models.AuditTrail, err error) {
	out = trail

	itcRate := inc.FederalITCRate
	if itcRate <= 0 {
		rateID := fmt.Sprintf("finance.itc.rate.%d", installYear)
		itcRate, out, err = reg.Record(out, "finance.incentives.itcRate", rateID)
		if err != nil {
			return 0, 0, out, fmt.Errorf("no ITC rate cataloged for install year %d: %w", installYear, err)
		}
	} else {
		out = out.Add("finance.incentives.itcRate", itcRate, "fraction", inc.Source, inc.Source)
	}

	itc = capex.Total * itcRate
	out = out.Add("finance.incentives.itcAmount", itc, "$", benchmark.SrcIRA48E,
		benchmark.SourceLabel(benchmark.SrcIRA48E))

	// State incentives are commonly $/kWh of storage with a cap.
	if inc.StateRebatePerKWh > 0 {
		if battery := findBattery(equipment); battery != nil {
			state = inc.StateRebatePerKWh * battery.EnergyKWh
			if inc.StateCapAmount > 0 && state > inc.StateCapAmount {
				state = inc.StateCapAmount
			}
			out = out.Add("finance.incentives.stateAmount", state, "$", inc.Source, inc.Source)
		}
	}

	return itc, state, out, nil
}
