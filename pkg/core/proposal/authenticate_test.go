package proposal

import (
	"errors"
	"testing"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/core/finance"
	"gridquote/pkg/core/scenario"
	"gridquote/pkg/models"
)

func fixture(t *testing.T, reg *benchmark.Registry) (models.FacilityInput, models.BaseCalculation, []models.SystemOption) {
	t.Helper()

	battery := models.EquipmentSpec{
		Kind:          models.EquipmentBattery,
		PowerKW:       300,
		EnergyKWh:     600,
		DurationHours: 2,
		Quantity:      1,
		UnitCost:      380,
		CostBasis:     models.CostPerKWh,
		Basis:         models.SizingBasis{SourceID: benchmark.SrcNRELATB},
	}
	profile := &models.LoadProfile{
		PeakDemandKW:         700,
		AverageDemandKW:      385,
		AnnualConsumptionKWh: 3000000,
		LoadFactor:           0.55,
	}

	finIn := finance.Input{
		Equipment: []models.EquipmentSpec{battery},
		Rates: models.UtilityRates{
			EnergyRatePerKWh:       0.14,
			DemandChargePerKWMonth: 16,
			Source:                 "TEST",
		},
		Capital: finance.DefaultCapital(reg),
		Revenue: models.RevenueToggles{
			DemandChargeReduction: true,
			EnergyArbitrage:       true,
		},
		Profile:     profile,
		InstallYear: 2025,
	}

	fin, _, err := finance.Compute(reg, finIn)
	if err != nil {
		t.Fatalf("fixture finance: %v", err)
	}

	baseline := models.BaseCalculation{
		Load:       *profile,
		Equipment:  finIn.Equipment,
		Financials: *fin,
		Rates:      finIn.Rates,
	}

	tiers, err := scenario.Generate(reg, baseline, finIn, scenario.DefaultScaleFactors(reg))
	if err != nil {
		t.Fatalf("fixture tiers: %v", err)
	}

	input := models.FacilityInput{Industry: "hotel", Subtype: "upscale"}
	return input, baseline, tiers
}

func TestAuthenticate_HappyPath(t *testing.T) {
	reg := benchmark.NewRegistry()
	input, baseline, tiers := fixture(t, reg)

	var trail models.AuditTrail
	trail = trail.Add("test", 1, "x", "TEST", "test")

	quote, err := Authenticate(reg, input, baseline, tiers, trail)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}

	if quote.QuoteID == "" {
		t.Error("quote must carry an id")
	}
	if quote.GeneratedAt.IsZero() {
		t.Error("quote must carry a timestamp")
	}
	if len(quote.Options) != 3 {
		t.Fatalf("option count = %d, want 3", len(quote.Options))
	}
	for name, opt := range quote.Options {
		if opt.IsEstimate {
			t.Errorf("option %s still tagged estimate after authentication", name)
		}
	}
	if len(quote.Audit) != 1 {
		t.Errorf("audit trail not carried through: %d entries", len(quote.Audit))
	}
}

func TestAuthenticate_RejectsOversizedTier(t *testing.T) {
	reg := benchmark.NewRegistry()
	input, baseline, tiers := fixture(t, reg)

	// Inflate one tier's battery past the 2.5x policy bound. The whole
	// proposal must fail, naming the tier; the bad tier is never
	// silently dropped.
	tiers[2].Equipment[0].PowerKW = baseline.Equipment[0].PowerKW * 3
	tiers[2].Equipment[0].EnergyKWh = tiers[2].Equipment[0].PowerKW * tiers[2].Equipment[0].DurationHours

	_, err := Authenticate(reg, input, baseline, tiers, nil)
	var rej *models.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want Rejection", err)
	}
	if rej.Code != "SCALE_BOUND_EXCEEDED" {
		t.Errorf("Code = %q, want SCALE_BOUND_EXCEEDED", rej.Code)
	}
	if rej.FailingTier != tiers[2].Name {
		t.Errorf("FailingTier = %q, want %q", rej.FailingTier, tiers[2].Name)
	}
	if rej.FailingInvariant == "" {
		t.Error("rejection must name the failing invariant")
	}
}

func TestAuthenticate_RejectsBrokenBatteryIdentity(t *testing.T) {
	reg := benchmark.NewRegistry()
	input, baseline, tiers := fixture(t, reg)

	tiers[0].Equipment[0].EnergyKWh = tiers[0].Equipment[0].EnergyKWh * 1.5

	_, err := Authenticate(reg, input, baseline, tiers, nil)
	var rej *models.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want Rejection", err)
	}
	if rej.Code != "BATTERY_IDENTITY" {
		t.Errorf("Code = %q, want BATTERY_IDENTITY", rej.Code)
	}
}

func TestAuthenticate_RejectsTamperedNPV(t *testing.T) {
	reg := benchmark.NewRegistry()
	input, baseline, tiers := fixture(t, reg)

	tiers[1].Financials.Metrics.NPV = tiers[1].Financials.Metrics.NPV + 250000

	_, err := Authenticate(reg, input, baseline, tiers, nil)
	var rej *models.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want Rejection", err)
	}
	if rej.Code != "NPV_MISMATCH" {
		t.Errorf("Code = %q, want NPV_MISMATCH", rej.Code)
	}
}

func TestAuthenticate_RejectsTamperedNetCost(t *testing.T) {
	reg := benchmark.NewRegistry()
	input, baseline, tiers := fixture(t, reg)

	tiers[0].Financials.Metrics.NetCost = tiers[0].Financials.Metrics.NetCost * 0.5

	_, err := Authenticate(reg, input, baseline, tiers, nil)
	var rej *models.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want Rejection", err)
	}
	if rej.Code != "NET_COST_MISMATCH" {
		t.Errorf("Code = %q, want NET_COST_MISMATCH", rej.Code)
	}
}

func TestAuthenticate_RejectsMissingDSCR(t *testing.T) {
	reg := benchmark.NewRegistry()
	input, baseline, tiers := fixture(t, reg)

	tiers[1].Financials.Metrics.MinimumDSCR = nil

	_, err := Authenticate(reg, input, baseline, tiers, nil)
	var rej *models.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want Rejection", err)
	}
	if rej.Code != "DSCR_MISSING" {
		t.Errorf("Code = %q, want DSCR_MISSING", rej.Code)
	}
}

func TestAuthenticate_RejectsNonEstimateTier(t *testing.T) {
	reg := benchmark.NewRegistry()
	input, baseline, tiers := fixture(t, reg)

	tiers[0].IsEstimate = false

	_, err := Authenticate(reg, input, baseline, tiers, nil)
	var rej *models.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want Rejection", err)
	}
	if rej.Code != "TIER_NOT_ESTIMATE" {
		t.Errorf("Code = %q, want TIER_NOT_ESTIMATE", rej.Code)
	}
}

func TestAuthenticate_RejectsNegativeRating(t *testing.T) {
	reg := benchmark.NewRegistry()
	input, baseline, tiers := fixture(t, reg)

	baseline.Equipment[0].PowerKW = -10

	_, err := Authenticate(reg, input, baseline, tiers, nil)
	var rej *models.Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("err = %v, want Rejection", err)
	}
	if rej.Code != "NEGATIVE_RATING" {
		t.Errorf("Code = %q, want NEGATIVE_RATING", rej.Code)
	}
}
