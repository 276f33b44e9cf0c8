// Package sizing converts a load profile and the caller's preferences
// into sized equipment specs. Every output carries the formula and
// inputs needed to reconstruct it, so nothing downstream has to trust a
// bare number.
package sizing

import (
	"fmt"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/core/load"
	"gridquote/pkg/models"
)

// Input bundles what the sizer needs beyond the registry.
type Input struct {
	Industry load.Industry
	Profile  *models.LoadProfile
	Prefs    models.Preferences

	// RoofAreaSqft bounds solar; zero means no usable roof.
	RoofAreaSqft float64

	// EV charger plans, from preferences/wizard add-ons.
	EVLevel2Ports int
	EVDCFCPorts   int
}

// Size produces the equipment list for one system. The battery is always
// present; solar, generator, and EV chargers follow the preference
// toggles. It returns the specs plus the audit entries for every
// benchmark it read.
func Size(reg *benchmark.Registry, in Input) ([]models.EquipmentSpec, models.AuditTrail, error) {
	if in.Profile == nil {
		return nil, nil, fmt.Errorf("sizing requires a load profile")
	}
	if in.Profile.PeakDemandKW <= 0 {
		return nil, nil, &models.ValidationError{
			InvalidFields: []string{"peakDemandKW"},
			Reason:        "load profile peak must be positive",
		}
	}

	var specs []models.EquipmentSpec
	var trail models.AuditTrail

	battery, trail, err := sizeBattery(reg, in, trail)
	if err != nil {
		return nil, nil, err
	}
	specs = append(specs, battery)

	if in.Prefs.SolarEnabled {
		solar, t, err := sizeSolar(reg, in, trail)
		if err != nil {
			return nil, nil, err
		}
		trail = t
		if solar.PowerKW > 0 {
			specs = append(specs, solar)
		}
	}

	if in.Prefs.GeneratorEnabled {
		gen, t, err := sizeGenerator(reg, in, trail)
		if err != nil {
			return nil, nil, err
		}
		trail = t
		specs = append(specs, gen)
	}

	if in.Prefs.EVEnabled && (in.EVLevel2Ports > 0 || in.EVDCFCPorts > 0) {
		evs, t, err := sizeEVChargers(reg, in, trail)
		if err != nil {
			return nil, nil, err
		}
		trail = t
		specs = append(specs, evs...)
	}

	return specs, trail, nil
}

// sizeBattery sizes power off the industry peak-shaving fraction and
// duration off the declared outage sensitivity.
func sizeBattery(reg *benchmark.Registry, in Input, trail models.AuditTrail) (models.EquipmentSpec, models.AuditTrail, error) {
	shaveID := fmt.Sprintf("sizing.peak_shaving.%s", in.Industry)
	shave, trail, err := reg.Record(trail, "sizing.battery.peakShavingFraction", shaveID)
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}

	outage := in.Prefs.Outage
	if outage == "" {
		outage = models.OutageMinorDisruption
		trail = trail.Add("sizing.battery.outageSensitivity.default", 0, "enum",
			benchmark.SrcEngPolicy, benchmark.SourceLabel(benchmark.SrcEngPolicy))
	}
	backupID := fmt.Sprintf("sizing.backup_hours.%s", outage)
	backupHours, err := reg.Value(backupID)
	if err != nil {
		return models.EquipmentSpec{}, trail, &models.UnknownSubtypeError{
			Field: "outageSensitivity",
			Value: string(outage),
			Known: []string{
				string(models.OutageNoImpact), string(models.OutageMinorDisruption),
				string(models.OutagePartialShutdown), string(models.OutageFullShutdown),
			},
		}
	}

	minDuration, trail, err := reg.Record(trail, "sizing.battery.minDurationHours", "sizing.battery.min_duration_hours")
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}

	// Off-grid and microgrid facilities cannot lean on the utility
	// during an outage; they always get the full backup duration.
	if in.Profile.GridConnection == string(load.GridOffGrid) ||
		in.Profile.GridConnection == string(load.GridMicrogrid) ||
		in.Profile.GridConnection == string(load.GridUnreliable) {
		if full := reg.MustValue("sizing.backup_hours.full_shutdown"); backupHours < full {
			backupHours = full
		}
	}

	powerKW := in.Profile.PeakDemandKW * shave
	duration := minDuration
	if backupHours > duration {
		duration = backupHours
	}
	energyKWh := powerKW * duration

	unitCost, trail, err := reg.Record(trail, "sizing.battery.unitCost", "cost.battery.per_kwh")
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}

	spec := models.EquipmentSpec{
		Kind:          models.EquipmentBattery,
		PowerKW:       powerKW,
		EnergyKWh:     energyKWh,
		DurationHours: duration,
		Quantity:      1,
		UnitCost:      unitCost,
		CostBasis:     models.CostPerKWh,
		Basis: models.SizingBasis{
			Formula: "powerKW = peakDemandKW x peakShavingFraction; durationHours = max(minDuration, backupRuntime); energyKWh = powerKW x durationHours",
			Inputs: map[string]float64{
				"peakDemandKW":        in.Profile.PeakDemandKW,
				"peakShavingFraction": shave,
				"minDurationHours":    minDuration,
				"backupRuntimeHours":  backupHours,
			},
			SourceID: benchmark.SrcEngPolicy,
		},
	}
	return spec, trail, nil
}

// sizeSolar bounds capacity by roof area and by a ratio to peak demand;
// the area ceiling always wins.
func sizeSolar(reg *benchmark.Registry, in Input, trail models.AuditTrail) (models.EquipmentSpec, models.AuditTrail, error) {
	packing, trail, err := reg.Record(trail, "sizing.solar.packingFactor", "sizing.solar.packing_factor")
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}
	kwPerSqft, trail, err := reg.Record(trail, "sizing.solar.kwPerSqft", "sizing.solar.kw_per_sqft")
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}
	ratioMax, trail, err := reg.Record(trail, "sizing.solar.peakRatioMax", "sizing.solar.peak_ratio_max")
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}

	areaCeiling := in.RoofAreaSqft * packing * kwPerSqft
	target := in.Profile.PeakDemandKW * ratioMax

	powerKW := target
	if areaCeiling < powerKW {
		powerKW = areaCeiling
	}
	if powerKW < 0 {
		powerKW = 0
	}

	unitCost, trail, err := reg.Record(trail, "sizing.solar.unitCost", "cost.solar.per_kw")
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}

	spec := models.EquipmentSpec{
		Kind:      models.EquipmentSolar,
		PowerKW:   powerKW,
		Quantity:  1,
		UnitCost:  unitCost,
		CostBasis: models.CostPerKW,
		Basis: models.SizingBasis{
			Formula: "powerKW = min(roofArea x packingFactor x kwPerSqft, peakDemandKW x peakRatioMax)",
			Inputs: map[string]float64{
				"roofAreaSqft":  in.RoofAreaSqft,
				"packingFactor": packing,
				"kwPerSqft":     kwPerSqft,
				"peakDemandKW":  in.Profile.PeakDemandKW,
				"peakRatioMax":  ratioMax,
			},
			SourceID: benchmark.SrcNRELATB,
		},
	}
	return spec, trail, nil
}

// sizeGenerator covers critical load with an N+1 reserve margin.
func sizeGenerator(reg *benchmark.Registry, in Input, trail models.AuditTrail) (models.EquipmentSpec, models.AuditTrail, error) {
	outage := in.Prefs.Outage
	if outage == "" {
		outage = models.OutageMinorDisruption
	}
	critID := fmt.Sprintf("sizing.critical_fraction.%s", outage)
	critical, trail, err := reg.Record(trail, "sizing.generator.criticalFraction", critID)
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}
	margin, trail, err := reg.Record(trail, "sizing.generator.reserveMargin", "sizing.generator.reserve_margin")
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}

	powerKW := in.Profile.PeakDemandKW * critical * margin

	unitCost, trail, err := reg.Record(trail, "sizing.generator.unitCost", "cost.generator.per_kw")
	if err != nil {
		return models.EquipmentSpec{}, trail, err
	}

	spec := models.EquipmentSpec{
		Kind:      models.EquipmentGenerator,
		PowerKW:   powerKW,
		Quantity:  1,
		UnitCost:  unitCost,
		CostBasis: models.CostPerKW,
		Basis: models.SizingBasis{
			Formula: "powerKW = peakDemandKW x criticalFraction x reserveMargin",
			Inputs: map[string]float64{
				"peakDemandKW":     in.Profile.PeakDemandKW,
				"criticalFraction": critical,
				"reserveMargin":    margin,
			},
			SourceID: benchmark.SrcIEEE446,
		},
	}
	return spec, trail, nil
}

// sizeEVChargers emits one spec per charger class, with load derated by
// the port utilization factor since every port never draws peak at once.
func sizeEVChargers(reg *benchmark.Registry, in Input, trail models.AuditTrail) ([]models.EquipmentSpec, models.AuditTrail, error) {
	utilization, trail, err := reg.Record(trail, "sizing.ev.utilization", "sizing.ev.utilization")
	if err != nil {
		return nil, trail, err
	}

	var specs []models.EquipmentSpec

	addClass := func(kind string, ports int, portKW float64, costID string) error {
		if ports <= 0 {
			return nil
		}
		unitCost, t, err := reg.Record(trail, fmt.Sprintf("sizing.ev.%s.unitCost", kind), costID)
		if err != nil {
			return err
		}
		trail = t
		specs = append(specs, models.EquipmentSpec{
			Kind:      models.EquipmentEVCharger,
			PowerKW:   float64(ports) * portKW * utilization,
			Quantity:  ports,
			UnitCost:  unitCost,
			CostBasis: models.CostPerUnit,
			Basis: models.SizingBasis{
				Formula: "powerKW = ports x portKW x utilization",
				Inputs: map[string]float64{
					"ports":       float64(ports),
					"portKW":      portKW,
					"utilization": utilization,
				},
				SourceID: benchmark.SrcDOEAFDC,
			},
		})
		return nil
	}

	l2KW := reg.MustValue("sizing.ev.level2_port_kw")
	dcKW := reg.MustValue("sizing.ev.dcfc_port_kw")

	if err := addClass("level2", in.EVLevel2Ports, l2KW, "cost.ev.level2_per_port"); err != nil {
		return nil, trail, err
	}
	if err := addClass("dcfc", in.EVDCFCPorts, dcKW, "cost.ev.dcfc_per_port"); err != nil {
		return nil, trail, err
	}

	return specs, trail, nil
}
