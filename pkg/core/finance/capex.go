package finance

import (
	"fmt"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/models"
)

// componentCost prices one spec against its cost basis.
func componentCost(spec models.EquipmentSpec) (float64, error) {
	switch spec.CostBasis {
	case models.CostPerKWh:
		return spec.UnitCost * spec.EnergyKWh, nil
	case models.CostPerKW:
		return spec.UnitCost * spec.PowerKW, nil
	case models.CostPerUnit:
		return spec.UnitCost * float64(spec.Quantity), nil
	}
	return 0, fmt.Errorf("unknown cost basis %q for %s", spec.CostBasis, spec.Kind)
}

// computeCapex builds the itemized capital cost: equipment, then BOS,
// EPC, and contingency as fractions of equipment cost.
func computeCapex(reg *benchmark.Registry, equipment []models.EquipmentSpec, trail models.AuditTrail) (models.CapexBreakdown, models.AuditTrail, error) {
	breakdown := models.CapexBreakdown{
		ByComponent: make(map[string]float64, len(equipment)),
	}

	for _, spec := range equipment {
		cost, err := componentCost(spec)
		if err != nil {
			return breakdown, trail, err
		}
		name := componentName(spec)
		breakdown.ByComponent[name] += cost
		breakdown.EquipmentCost += cost
		trail = trail.Add(
			fmt.Sprintf("finance.capex.%s", name),
			cost, "$", spec.Basis.SourceID, benchmark.SourceLabel(spec.Basis.SourceID),
		)
	}

	bosFrac, trail, err := reg.Record(trail, "finance.capex.bosFraction", "cost.bos_fraction")
	if err != nil {
		return breakdown, trail, err
	}
	epcFrac, trail, err := reg.Record(trail, "finance.capex.epcFraction", "cost.epc_fraction")
	if err != nil {
		return breakdown, trail, err
	}
	contFrac, trail, err := reg.Record(trail, "finance.capex.contingencyFraction", "cost.contingency_fraction")
	if err != nil {
		return breakdown, trail, err
	}

	breakdown.BOSCost = breakdown.EquipmentCost * bosFrac
	breakdown.EPCCost = breakdown.EquipmentCost * epcFrac
	breakdown.ContingencyCost = breakdown.EquipmentCost * contFrac
	breakdown.Total = breakdown.EquipmentCost + breakdown.BOSCost + breakdown.EPCCost + breakdown.ContingencyCost

	trail = trail.Add("finance.capex.total", breakdown.Total, "$", "DERIVED",
		"equipment + BOS + EPC + contingency")

	return breakdown, trail, nil
}
