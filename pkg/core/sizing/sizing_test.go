package sizing

import (
	"math"
	"testing"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/core/load"
	"gridquote/pkg/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func hotelProfile(peak float64) *models.LoadProfile {
	return &models.LoadProfile{
		PeakDemandKW:         peak,
		AverageDemandKW:      peak * 0.55,
		AnnualConsumptionKWh: peak * 0.55 * 24 * 365,
		LoadFactor:           0.55,
		OperatingHoursPerDay: 24,
		OperatingDaysPerYear: 365,
	}
}

func findKind(specs []models.EquipmentSpec, kind models.EquipmentKind) *models.EquipmentSpec {
	for i := range specs {
		if specs[i].Kind == kind {
			return &specs[i]
		}
	}
	return nil
}

func TestSize_BatteryAlwaysPresent(t *testing.T) {
	reg := benchmark.NewRegistry()
	specs, _, err := Size(reg, Input{
		Industry: load.IndustryHotel,
		Profile:  hotelProfile(1000),
		Prefs:    models.Preferences{Outage: models.OutagePartialShutdown},
	})
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("spec count = %d, want battery only", len(specs))
	}

	battery := findKind(specs, models.EquipmentBattery)
	if battery == nil {
		t.Fatal("battery spec missing")
	}

	// 1000 kW peak x 0.45 hotel shave fraction.
	if !approx(battery.PowerKW, 450) {
		t.Errorf("battery PowerKW = %f, want 450", battery.PowerKW)
	}
	// partial_shutdown backup is 2h, same as the duration floor.
	if !approx(battery.DurationHours, 2) {
		t.Errorf("DurationHours = %f, want 2", battery.DurationHours)
	}
	// The battery identity must hold exactly.
	if !approx(battery.EnergyKWh, battery.PowerKW*battery.DurationHours) {
		t.Errorf("EnergyKWh = %f, want PowerKW x DurationHours = %f",
			battery.EnergyKWh, battery.PowerKW*battery.DurationHours)
	}
	if battery.Basis.Formula == "" || battery.Basis.SourceID == "" {
		t.Error("sizing basis must carry the formula and source")
	}
}

func TestSize_FullShutdownExtendsDuration(t *testing.T) {
	reg := benchmark.NewRegistry()
	specs, _, err := Size(reg, Input{
		Industry: load.IndustryDataCenter,
		Profile:  hotelProfile(2000),
		Prefs:    models.Preferences{Outage: models.OutageFullShutdown},
	})
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}

	battery := findKind(specs, models.EquipmentBattery)
	// full_shutdown backup is 4h, above the 2h floor.
	if !approx(battery.DurationHours, 4) {
		t.Errorf("DurationHours = %f, want 4", battery.DurationHours)
	}
	// 2000 x 0.70 data-center shave x 4h.
	if !approx(battery.EnergyKWh, 5600) {
		t.Errorf("EnergyKWh = %f, want 5600", battery.EnergyKWh)
	}
}

func TestSize_OffGridForcesFullBackup(t *testing.T) {
	reg := benchmark.NewRegistry()
	profile := hotelProfile(1000)
	profile.GridConnection = string(load.GridOffGrid)

	specs, _, err := Size(reg, Input{
		Industry: load.IndustryHotel,
		Profile:  profile,
		// A no-impact answer would usually mean no backup runtime at
		// all, but off-grid sites cannot lean on the utility.
		Prefs: models.Preferences{Outage: models.OutageNoImpact},
	})
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}

	battery := findKind(specs, models.EquipmentBattery)
	if !approx(battery.DurationHours, 4) {
		t.Errorf("off-grid DurationHours = %f, want full-shutdown 4", battery.DurationHours)
	}
}

func TestSize_SolarRoofAreaCeiling(t *testing.T) {
	reg := benchmark.NewRegistry()

	tests := []struct {
		name     string
		roofSqft float64
		peak     float64
		wantKW   float64
	}{
		// Area ceiling binds: 20000 x 0.75 x 0.015 = 225 < 1000 x 1.2.
		{"Small roof", 20000, 1000, 225},
		// Demand ratio binds: 200000 x 0.75 x 0.015 = 2250 > 1000 x 1.2.
		{"Huge roof", 200000, 1000, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs, _, err := Size(reg, Input{
				Industry:     load.IndustryRetail,
				Profile:      hotelProfile(tt.peak),
				Prefs:        models.Preferences{SolarEnabled: true},
				RoofAreaSqft: tt.roofSqft,
			})
			if err != nil {
				t.Fatalf("Size failed: %v", err)
			}
			solar := findKind(specs, models.EquipmentSolar)
			if solar == nil {
				t.Fatal("solar spec missing")
			}
			if !approx(solar.PowerKW, tt.wantKW) {
				t.Errorf("solar PowerKW = %f, want %f", solar.PowerKW, tt.wantKW)
			}
		})
	}
}

func TestSize_SolarNoRoofOmitted(t *testing.T) {
	reg := benchmark.NewRegistry()
	specs, _, err := Size(reg, Input{
		Industry: load.IndustryRetail,
		Profile:  hotelProfile(500),
		Prefs:    models.Preferences{SolarEnabled: true},
	})
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if findKind(specs, models.EquipmentSolar) != nil {
		t.Error("solar with zero roof area should be omitted, not zero-sized")
	}
}

func TestSize_Generator(t *testing.T) {
	reg := benchmark.NewRegistry()
	specs, _, err := Size(reg, Input{
		Industry: load.IndustryGrocery,
		Profile:  hotelProfile(800),
		Prefs: models.Preferences{
			GeneratorEnabled: true,
			Outage:           models.OutageFullShutdown,
		},
	})
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}

	gen := findKind(specs, models.EquipmentGenerator)
	if gen == nil {
		t.Fatal("generator spec missing")
	}
	// 800 x 0.80 critical fraction x 1.25 reserve margin.
	if !approx(gen.PowerKW, 800) {
		t.Errorf("generator PowerKW = %f, want 800", gen.PowerKW)
	}
}

func TestSize_EVChargers(t *testing.T) {
	reg := benchmark.NewRegistry()
	specs, _, err := Size(reg, Input{
		Industry:      load.IndustryHotel,
		Profile:       hotelProfile(600),
		Prefs:         models.Preferences{EVEnabled: true},
		EVLevel2Ports: 10,
		EVDCFCPorts:   2,
	})
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}

	var evSpecs []models.EquipmentSpec
	for _, s := range specs {
		if s.Kind == models.EquipmentEVCharger {
			evSpecs = append(evSpecs, s)
		}
	}
	if len(evSpecs) != 2 {
		t.Fatalf("EV spec count = %d, want one per charger class", len(evSpecs))
	}

	// Level 2: 10 x 11.5 x 0.45 utilization.
	if !approx(evSpecs[0].PowerKW, 51.75) {
		t.Errorf("L2 PowerKW = %f, want 51.75", evSpecs[0].PowerKW)
	}
	if evSpecs[0].Quantity != 10 {
		t.Errorf("L2 Quantity = %d, want 10", evSpecs[0].Quantity)
	}
	// DCFC: 2 x 150 x 0.45.
	if !approx(evSpecs[1].PowerKW, 135) {
		t.Errorf("DCFC PowerKW = %f, want 135", evSpecs[1].PowerKW)
	}
	if evSpecs[1].UnitCost != 45000 || evSpecs[1].CostBasis != models.CostPerUnit {
		t.Errorf("DCFC cost = %f %s, want 45000 per_unit", evSpecs[1].UnitCost, evSpecs[1].CostBasis)
	}
}

func TestSize_RejectsBadProfile(t *testing.T) {
	reg := benchmark.NewRegistry()

	if _, _, err := Size(reg, Input{Industry: load.IndustryHotel}); err == nil {
		t.Error("nil profile must fail")
	}
	if _, _, err := Size(reg, Input{
		Industry: load.IndustryHotel,
		Profile:  &models.LoadProfile{PeakDemandKW: 0},
	}); err == nil {
		t.Error("zero peak must fail")
	}
}
