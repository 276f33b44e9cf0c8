package finance

import (
	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/models"
)

// macrs5Year is the IRS half-year-convention 5-year MACRS table
// (Publication 946, Table A-1). Energy storage and solar property
// qualify for the 5-year class.
var macrs5Year = []float64{0.20, 0.32, 0.192, 0.1152, 0.1152, 0.0576}

// macrsSchedule builds the depreciation rows. The depreciable basis is
// CAPEX reduced by half the ITC taken, per the basis-reduction rule.
func macrsSchedule(reg *benchmark.Registry, capexTotal, itcAmount, taxRate float64, trail models.AuditTrail) ([]models.DepreciationYear, models.AuditTrail, error) {
	basisReduction, trail, err := reg.Record(trail, "finance.depreciation.basisReductionFraction", "finance.itc.basis_reduction_fraction")
	if err != nil {
		return nil, trail, err
	}

	basis := capexTotal - itcAmount*basisReduction
	if basis < 0 {
		basis = 0
	}

	schedule := make([]models.DepreciationYear, 0, len(macrs5Year))
	for i, rate := range macrs5Year {
		amount := basis * rate
		schedule = append(schedule, models.DepreciationYear{
			Year:      i + 1,
			Rate:      rate,
			Amount:    amount,
			TaxShield: amount * taxRate,
		})
	}

	trail = trail.Add("finance.depreciation.basis", basis, "$", benchmark.SrcIRSPub946,
		benchmark.SourceLabel(benchmark.SrcIRSPub946))

	return schedule, trail, nil
}
