package finance

import (
	"errors"
	"testing"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/models"
)

func testBattery() models.EquipmentSpec {
	return models.EquipmentSpec{
		Kind:          models.EquipmentBattery,
		PowerKW:       200,
		EnergyKWh:     400,
		DurationHours: 2,
		Quantity:      1,
		UnitCost:      380,
		CostBasis:     models.CostPerKWh,
		Basis:         models.SizingBasis{SourceID: benchmark.SrcNRELATB},
	}
}

func testProfile() *models.LoadProfile {
	return &models.LoadProfile{
		PeakDemandKW:         450,
		AverageDemandKW:      250,
		AnnualConsumptionKWh: 2000000,
		LoadFactor:           0.55,
	}
}

func testInput(reg *benchmark.Registry) Input {
	return Input{
		Equipment: []models.EquipmentSpec{testBattery()},
		Rates: models.UtilityRates{
			EnergyRatePerKWh:       0.14,
			DemandChargePerKWMonth: 18,
			RateClass:              "commercial",
			Source:                 "TEST",
		},
		Capital: DefaultCapital(reg),
		Revenue: models.RevenueToggles{
			DemandChargeReduction: true,
			EnergyArbitrage:       true,
		},
		Profile:     testProfile(),
		InstallYear: 2025,
	}
}

// =============================================================================
// CAPEX AND INCENTIVES
// =============================================================================

func TestCompute_CapexBreakdown(t *testing.T) {
	reg := benchmark.NewRegistry()
	result, trail, err := Compute(reg, testInput(reg))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// 400 kWh x $380 = 152000 equipment.
	if !approx(result.Capex.EquipmentCost, 152000, 1e-6) {
		t.Errorf("EquipmentCost = %f, want 152000", result.Capex.EquipmentCost)
	}
	// BOS 12% + EPC 15% + contingency 5% on equipment cost.
	wantTotal := 152000 * 1.32
	if !approx(result.Capex.Total, wantTotal, 1e-6) {
		t.Errorf("Total = %f, want %f", result.Capex.Total, wantTotal)
	}
	if !approx(result.Capex.ByComponent["battery"], 152000, 1e-6) {
		t.Errorf("ByComponent[battery] = %f, want 152000", result.Capex.ByComponent["battery"])
	}

	// 30% ITC for a 2025 install.
	if !approx(result.Metrics.ITCAmount, wantTotal*0.30, 1e-6) {
		t.Errorf("ITCAmount = %f, want %f", result.Metrics.ITCAmount, wantTotal*0.30)
	}
	if !approx(result.Metrics.NetCost, wantTotal*0.70, 1e-6) {
		t.Errorf("NetCost = %f, want %f", result.Metrics.NetCost, wantTotal*0.70)
	}

	if len(trail) == 0 {
		t.Error("expected audit entries from the engine")
	}
}

func TestCompute_ProviderITCRateWins(t *testing.T) {
	reg := benchmark.NewRegistry()
	in := testInput(reg)
	in.Incentives = models.IncentiveSet{FederalITCRate: 0.40, Source: "STATE-PROGRAM"}

	result, _, err := Compute(reg, in)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if !approx(result.Metrics.ITCAmount, result.Capex.Total*0.40, 1e-6) {
		t.Errorf("ITCAmount = %f, want provider 40%% of %f", result.Metrics.ITCAmount, result.Capex.Total)
	}
}

func TestCompute_UncatalogedITCYearFails(t *testing.T) {
	reg := benchmark.NewRegistry()
	in := testInput(reg)
	in.InstallYear = 2050

	_, _, err := Compute(reg, in)
	if err == nil {
		t.Fatal("install year with no cataloged ITC rate must fail, not default to zero")
	}
}

func TestCompute_StateRebateCapped(t *testing.T) {
	reg := benchmark.NewRegistry()
	in := testInput(reg)
	in.Incentives = models.IncentiveSet{
		StateRebatePerKWh: 200,
		StateCapAmount:    50000,
		Source:            "SGIP",
	}

	result, _, err := Compute(reg, in)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	// 400 kWh x $200 = 80000, capped at 50000.
	if !approx(result.Metrics.StateIncentives, 50000, 1e-6) {
		t.Errorf("StateIncentives = %f, want cap 50000", result.Metrics.StateIncentives)
	}
}

// =============================================================================
// MACRS
// =============================================================================

func TestMACRSSchedule(t *testing.T) {
	reg := benchmark.NewRegistry()
	var trail models.AuditTrail

	// Basis = 100000 - 30000 x 0.5 = 85000.
	schedule, _, err := macrsSchedule(reg, 100000, 30000, 0.26, trail)
	if err != nil {
		t.Fatalf("macrsSchedule failed: %v", err)
	}
	if len(schedule) != 6 {
		t.Fatalf("schedule length = %d, want 6 (half-year convention)", len(schedule))
	}

	wantRates := []float64{0.20, 0.32, 0.192, 0.1152, 0.1152, 0.0576}
	var totalAmount float64
	for i, row := range schedule {
		if row.Rate != wantRates[i] {
			t.Errorf("year %d rate = %f, want %f", row.Year, row.Rate, wantRates[i])
		}
		if !approx(row.Amount, 85000*wantRates[i], 1e-6) {
			t.Errorf("year %d amount = %f, want %f", row.Year, row.Amount, 85000*wantRates[i])
		}
		if !approx(row.TaxShield, row.Amount*0.26, 1e-9) {
			t.Errorf("year %d shield = %f, want amount x tax rate", row.Year, row.TaxShield)
		}
		totalAmount += row.Amount
	}

	// Rates sum to 1: the full basis depreciates.
	if !approx(totalAmount, 85000, 1e-6) {
		t.Errorf("total depreciation = %f, want full 85000 basis", totalAmount)
	}
}

// =============================================================================
// PRO FORMA AND SUMMARY METRICS
// =============================================================================

func TestCompute_ProFormaShape(t *testing.T) {
	reg := benchmark.NewRegistry()
	result, _, err := Compute(reg, testInput(reg))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(result.CashFlows) != 20 {
		t.Fatalf("cash flow years = %d, want default 20", len(result.CashFlows))
	}

	year1 := result.CashFlows[0]
	if year1.BatteryCapacityFactor != 1.0 {
		t.Errorf("year 1 capacity factor = %f, want 1.0", year1.BatteryCapacityFactor)
	}
	// Degradation compounds: each year strictly below the last.
	for i := 1; i < len(result.CashFlows); i++ {
		prev := result.CashFlows[i-1].BatteryCapacityFactor
		cur := result.CashFlows[i].BatteryCapacityFactor
		if cur >= prev {
			t.Fatalf("capacity factor not declining: year %d %f >= year %d %f",
				i+1, cur, i, prev)
		}
	}

	// Enabled streams present, disabled streams absent.
	if _, ok := year1.Revenue[StreamDemandCharge]; !ok {
		t.Error("enabled demand charge stream missing")
	}
	if _, ok := year1.Revenue[StreamFreqRegulation]; ok {
		t.Error("disabled frequency regulation stream must be absent, not zero")
	}

	// Year 1: 200 kW x $18 x 12 demand charge reduction.
	if !approx(year1.Revenue[StreamDemandCharge], 43200, 1e-6) {
		t.Errorf("demand charge revenue = %f, want 43200", year1.Revenue[StreamDemandCharge])
	}
	// Arbitrage: 400 kWh x 300 cycles x $0.06 x 0.88 RTE.
	if !approx(year1.Revenue[StreamArbitrage], 6336, 1e-6) {
		t.Errorf("arbitrage revenue = %f, want 6336", year1.Revenue[StreamArbitrage])
	}
	// O&M: 400 kWh x $7.5.
	if !approx(year1.OpEx, 3000, 1e-6) {
		t.Errorf("year 1 opex = %f, want 3000", year1.OpEx)
	}
}

func TestCompute_DebtMetricsPresent(t *testing.T) {
	reg := benchmark.NewRegistry()
	result, _, err := Compute(reg, testInput(reg))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Default capital carries 60% debt over 10 years.
	if !approx(result.DebtAmount, result.Metrics.NetCost*0.60, 1e-6) {
		t.Errorf("DebtAmount = %f, want 60%% of net cost", result.DebtAmount)
	}
	if len(result.DebtSchedule) != 10 {
		t.Fatalf("debt schedule years = %d, want 10", len(result.DebtSchedule))
	}

	if result.Metrics.MinimumDSCR == nil {
		t.Fatal("MinimumDSCR must be present for a levered project")
	}

	// DSCR rows exist exactly while debt is serviced.
	for i, cf := range result.CashFlows {
		if i < 10 && cf.DSCR == nil {
			t.Errorf("year %d missing DSCR during debt term", cf.Year)
		}
		if i >= 10 && cf.DSCR != nil {
			t.Errorf("year %d has DSCR after debt retired", cf.Year)
		}
	}
}

func TestCompute_AllEquity(t *testing.T) {
	reg := benchmark.NewRegistry()
	in := testInput(reg)
	in.Capital.DebtFraction = 0

	result, _, err := Compute(reg, in)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if result.DebtAmount != 0 || len(result.DebtSchedule) != 0 {
		t.Error("all-equity run must carry no debt schedule")
	}
	if result.Metrics.MinimumDSCR != nil {
		t.Error("MinimumDSCR must be nil without debt, never a number")
	}
	// With no leverage the two IRRs coincide.
	if result.Metrics.UnleveredIRR == nil || result.Metrics.LeveredIRR == nil {
		t.Fatal("IRRs missing")
	}
	if *result.Metrics.UnleveredIRR != *result.Metrics.LeveredIRR {
		t.Errorf("levered IRR %f != unlevered %f without debt",
			*result.Metrics.LeveredIRR, *result.Metrics.UnleveredIRR)
	}
	for _, cf := range result.CashFlows {
		if cf.DSCR != nil {
			t.Errorf("year %d has DSCR without debt", cf.Year)
		}
	}
}

func TestCompute_LCOS(t *testing.T) {
	reg := benchmark.NewRegistry()
	result, _, err := Compute(reg, testInput(reg))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if result.Metrics.LCOS == nil {
		t.Fatal("LCOS must be present for a battery system")
	}
	// Sanity band: commercial storage lands in cents-to-dollars per kWh.
	if *result.Metrics.LCOS <= 0 || *result.Metrics.LCOS > 5 {
		t.Errorf("LCOS = %f $/kWh, outside plausible range", *result.Metrics.LCOS)
	}
}

func TestCompute_NoBatteryNoLCOS(t *testing.T) {
	reg := benchmark.NewRegistry()
	in := testInput(reg)
	in.Equipment = []models.EquipmentSpec{{
		Kind:      models.EquipmentSolar,
		PowerKW:   300,
		Quantity:  1,
		UnitCost:  1750,
		CostBasis: models.CostPerKW,
		Basis:     models.SizingBasis{SourceID: benchmark.SrcNRELATB},
	}}
	in.Revenue = models.RevenueToggles{SolarSelfConsumption: true}

	result, _, err := Compute(reg, in)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if result.Metrics.LCOS != nil {
		t.Error("LCOS must be nil without a battery")
	}
	if result.CashFlows[0].EnergyDischargedKWh != 0 {
		t.Error("discharged energy must be zero without a battery")
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestCompute_Validation(t *testing.T) {
	reg := benchmark.NewRegistry()

	in := testInput(reg)
	in.Equipment = nil
	_, _, err := Compute(reg, in)
	var ve *models.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("empty equipment err = %v, want ValidationError", err)
	}

	in = testInput(reg)
	in.Capital.AnalysisYears = 0
	if _, _, err := Compute(reg, in); err == nil {
		t.Error("zero analysis horizon must fail")
	}

	in = testInput(reg)
	in.Equipment[0].CostBasis = "per_furlong"
	if _, _, err := Compute(reg, in); err == nil {
		t.Error("unknown cost basis must fail")
	}
}
