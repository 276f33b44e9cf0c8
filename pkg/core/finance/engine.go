package finance

import (
	"errors"
	"fmt"
	"math"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/models"
)

// DefaultCapital builds the registry-default capital structure. The
// orchestrator uses it whenever the caller supplied no override.
func DefaultCapital(reg *benchmark.Registry) models.CapitalStructure {
	return models.CapitalStructure{
		DebtFraction:   reg.MustValue("finance.debt.default_fraction"),
		InterestRate:   reg.MustValue("finance.debt.default_rate"),
		TermYears:      int(reg.MustValue("finance.debt.default_term_years")),
		TaxRate:        reg.MustValue("finance.tax.default_rate"),
		DiscountRate:   reg.MustValue("finance.discount_rate"),
		AnalysisYears:  int(reg.MustValue("finance.analysis.default_years")),
		EscalationRate: reg.MustValue("finance.escalation.utility_annual"),
	}
}

// Compute runs the full financial model. Solver failures on individual
// metrics (IRR convergence) do not fail the run: the metric comes back
// nil with a entry in ConvergenceWarnings. Structural problems (bad
// cost basis, missing ITC rate) fail the whole call.
func Compute(reg *benchmark.Registry, in Input) (*models.FinancialResult, models.AuditTrail, error) {
	if len(in.Equipment) == 0 {
		return nil, nil, &models.ValidationError{
			MissingFields: []string{"equipment"},
			Reason:        "financial model requires at least one equipment spec",
		}
	}
	if in.Capital.AnalysisYears <= 0 {
		return nil, nil, &models.ValidationError{
			InvalidFields: []string{"analysisYears"},
			Reason:        "analysis horizon must be positive",
		}
	}

	var trail models.AuditTrail

	// 1. CAPEX
	capex, trail, err := computeCapex(reg, in.Equipment, trail)
	if err != nil {
		return nil, nil, err
	}

	// 2. Incentives and net cost
	itc, state, trail, err := incentiveAmounts(reg, capex, in.Incentives, in.Equipment, in.InstallYear, trail)
	if err != nil {
		return nil, nil, err
	}
	netCost := capex.Total - itc - state
	if netCost < 0 {
		netCost = 0
	}
	trail = trail.Add("finance.netCost", netCost, "$", "DERIVED", "CAPEX - incentives")

	// 3. Debt schedule
	debtAmount := netCost * in.Capital.DebtFraction
	debtSchedule, err := amortize(debtAmount, in.Capital.InterestRate, in.Capital.TermYears)
	if err != nil {
		return nil, nil, err
	}

	// 4. Depreciation
	depreciation, trail, err := macrsSchedule(reg, capex.Total, itc, in.Capital.TaxRate, trail)
	if err != nil {
		return nil, nil, err
	}

	// 5. Benchmark figures for the revenue stack
	params, trail, err := loadStreamParams(reg, trail)
	if err != nil {
		return nil, nil, err
	}
	omRates, trail, err := loadOMRates(reg, trail)
	if err != nil {
		return nil, nil, err
	}

	// 6. Multi-year pro forma
	cashFlows := buildProForma(in, params, omRates, debtSchedule, depreciation)

	// 7. Summary metrics
	metrics, warnings := summarize(in, netCost, debtAmount, capex, itc, state, params, omRates, cashFlows)
	metrics.ConvergenceWarnings = warnings

	result := &models.FinancialResult{
		Capex:        capex,
		Incentives:   in.Incentives,
		Rates:        in.Rates,
		Capital:      in.Capital,
		DebtAmount:   debtAmount,
		CashFlows:    cashFlows,
		Depreciation: depreciation,
		DebtSchedule: debtSchedule,
		Metrics:      metrics,
	}
	return result, trail, nil
}

func loadStreamParams(reg *benchmark.Registry, trail models.AuditTrail) (streamParams, models.AuditTrail, error) {
	var p streamParams
	var err error

	fetch := func(dst *float64, component, id string) {
		if err != nil {
			return
		}
		*dst, trail, err = reg.Record(trail, component, id)
	}

	fetch(&p.arbitrageSpread, "finance.revenue.arbitrageSpread", "revenue.arbitrage.spread_per_kwh")
	fetch(&p.cyclesPerYear, "finance.revenue.cyclesPerYear", "revenue.arbitrage.cycles_per_year")
	fetch(&p.freqRegPerKWYear, "finance.revenue.freqRegRate", "revenue.frequency_regulation.per_kw_year")
	fetch(&p.capacityPerKWYear, "finance.revenue.capacityRate", "revenue.capacity.per_kw_year")
	fetch(&p.drPerKWYear, "finance.revenue.demandResponseRate", "revenue.demand_response.per_kw_year")
	fetch(&p.solarKWhPerKWYear, "finance.revenue.solarYield", "revenue.solar.kwh_per_kw_year")
	fetch(&p.roundTripEff, "finance.battery.roundTripEfficiency", "finance.battery.round_trip_efficiency")
	fetch(&p.degradationRate, "finance.battery.degradationRate", "finance.degradation.battery_annual")
	fetch(&p.escalationRate, "finance.escalationRate", "finance.escalation.utility_annual")

	return p, trail, err
}

func loadOMRates(reg *benchmark.Registry, trail models.AuditTrail) (map[models.EquipmentKind]float64, models.AuditTrail, error) {
	ids := map[models.EquipmentKind]string{
		models.EquipmentBattery:   "finance.om.battery_per_kwh_year",
		models.EquipmentSolar:     "finance.om.solar_per_kw_year",
		models.EquipmentGenerator: "finance.om.generator_per_kw_year",
		models.EquipmentEVCharger: "finance.om.ev_per_port_year",
	}

	rates := make(map[models.EquipmentKind]float64, len(ids))
	for kind, id := range ids {
		v, t, err := reg.Record(trail, fmt.Sprintf("finance.om.%s", kind), id)
		if err != nil {
			return nil, trail, err
		}
		trail = t
		rates[kind] = v
	}
	return rates, trail, nil
}

// buildProForma produces the year-by-year income and cash statement.
func buildProForma(in Input, params streamParams, omRates map[models.EquipmentKind]float64, debtSchedule []models.DebtYear, depreciation []models.DepreciationYear) []models.YearCashFlow {
	years := in.Capital.AnalysisYears
	cashFlows := make([]models.YearCashFlow, 0, years)

	for year := 1; year <= years; year++ {
		degFactor := math.Pow(1-params.degradationRate, float64(year-1))
		escFactor := math.Pow(1+params.escalationRate, float64(year-1))

		revenue := yearRevenue(params, in, degFactor, escFactor)
		var totalRevenue float64
		for _, v := range revenue {
			totalRevenue += v
		}

		opex := yearOpex(omRates, in, escFactor)
		ebitda := totalRevenue - opex

		var interest, principal float64
		if year <= len(debtSchedule) {
			interest = debtSchedule[year-1].Interest
			principal = debtSchedule[year-1].Principal
		}
		debtService := interest + principal

		var depAmount, depShield float64
		if year <= len(depreciation) {
			depAmount = depreciation[year-1].Amount
			depShield = depreciation[year-1].TaxShield
		}

		taxable := ebitda - interest - depAmount
		taxes := taxable * in.Capital.TaxRate
		if taxes < 0 {
			taxes = 0
		}

		cf := models.YearCashFlow{
			Year:                  year,
			Revenue:               revenue,
			TotalRevenue:          totalRevenue,
			OpEx:                  opex,
			EBITDA:                ebitda,
			Interest:              interest,
			Principal:             principal,
			DebtService:           debtService,
			Taxes:                 taxes,
			DepreciationShield:    depShield,
			NetCashFlow:           ebitda - taxes - debtService,
			BatteryCapacityFactor: degFactor,
			EnergyDischargedKWh:   yearDischargedKWh(params, in, degFactor),
		}

		// DSCR = (EBITDA - taxes) / debt service, only while debt is
		// actually being serviced.
		if debtService > 0 {
			dscr := (ebitda - taxes) / debtService
			cf.DSCR = &dscr
		}

		cashFlows = append(cashFlows, cf)
	}

	return cashFlows
}

// summarize derives the headline metrics from the pro forma.
func summarize(in Input, netCost, debtAmount float64, capex models.CapexBreakdown, itc, state float64, params streamParams, omRates map[models.EquipmentKind]float64, cashFlows []models.YearCashFlow) (models.SummaryMetrics, []string) {
	var warnings []string

	// Unlevered flows: operate as if all-equity (no interest shield).
	unlevered := make([]float64, 0, len(cashFlows)+1)
	unlevered = append(unlevered, -netCost)
	levered := make([]float64, 0, len(cashFlows)+1)
	equityInvested := netCost - debtAmount
	levered = append(levered, -equityInvested)

	var year1Savings float64
	for i, cf := range cashFlows {
		depAmount := 0.0
		if cf.DepreciationShield > 0 && in.Capital.TaxRate > 0 {
			depAmount = cf.DepreciationShield / in.Capital.TaxRate
		}
		uTaxable := cf.EBITDA - depAmount
		uTaxes := uTaxable * in.Capital.TaxRate
		if uTaxes < 0 {
			uTaxes = 0
		}
		unlevered = append(unlevered, cf.EBITDA-uTaxes)
		levered = append(levered, cf.NetCashFlow)

		if i == 0 {
			year1Savings = cf.EBITDA
		}
	}

	metrics := models.SummaryMetrics{
		GrossCapex:         capex.Total,
		ITCAmount:          itc,
		StateIncentives:    state,
		NetCost:            netCost,
		AnnualSavingsYear1: year1Savings,
		NPV:                NPV(in.Capital.DiscountRate, unlevered),
		PaybackYears:       simplePayback(netCost, year1Savings),
		ROI10Year:          cumulativeROI(netCost, unlevered[1:], 10),
		ROILifetime:        cumulativeROI(netCost, unlevered[1:], len(cashFlows)),
		MOIC:               moic(equityInvested, levered[1:]),
	}

	if irr, err := IRR(unlevered); err == nil {
		metrics.UnleveredIRR = &irr
	} else {
		var convErr *models.ConvergenceError
		if errors.As(err, &convErr) {
			warnings = append(warnings, "unleveredIRR: "+convErr.Error())
		}
	}

	if debtAmount > 0 {
		if irr, err := IRR(levered); err == nil {
			metrics.LeveredIRR = &irr
		} else {
			var convErr *models.ConvergenceError
			if errors.As(err, &convErr) {
				warnings = append(warnings, "leveredIRR: "+convErr.Error())
			}
		}
		metrics.MinimumDSCR = minimumDSCR(cashFlows)
	} else {
		// All-equity: levered and unlevered coincide, DSCR stays nil
		// (not applicable, not a number).
		metrics.LeveredIRR = metrics.UnleveredIRR
	}

	// LCOS over the battery's share of cost.
	batteryShare := 0.0
	if capex.EquipmentCost > 0 {
		batteryShare = capex.ByComponent[string(models.EquipmentBattery)] / capex.EquipmentCost
	}
	batteryOM := 0.0
	if battery := findBattery(in.Equipment); battery != nil {
		batteryOM = omRates[models.EquipmentBattery] * battery.EnergyKWh
	}
	metrics.LCOS = computeLCOS(in, netCost*batteryShare, batteryOM, params.roundTripEff, in.Capital.DiscountRate, cashFlows)

	return metrics, warnings
}
