package load

import (
	"fmt"
	"strings"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/models"
)

// densityIDs gives the benchmark id pattern for each top-down industry's
// base power density; %s is the normalized subtype.
var densityIDs = map[Industry]string{
	IndustryHotel:         "load.hotel.kw_per_room.%s",
	IndustryOffice:        "load.office.kw_per_sqft.%s",
	IndustryRetail:        "load.retail.kw_per_sqft.%s",
	IndustryGrocery:       "load.grocery.kw_per_sqft.%s",
	IndustryWarehouse:     "load.warehouse.kw_per_sqft.%s",
	IndustryDataCenter:    "load.data_center.kw_per_rack.%s",
	IndustryManufacturing: "load.manufacturing.kw_per_sqft.%s",
}

// Calculate derives a LoadProfile from raw facility answers. It returns
// the profile, the audit entries for every benchmark and default it
// used, and an error for anything the engine refuses to guess at:
// missing required fields, unknown categorical values.
func Calculate(reg *benchmark.Registry, in *models.FacilityInput) (*models.LoadProfile, models.AuditTrail, error) {
	industry, err := NormalizeIndustry(in.Industry)
	if err != nil {
		return nil, nil, err
	}
	subtype, err := NormalizeSubtype(industry, in.Subtype)
	if err != nil {
		return nil, nil, err
	}
	model := industryModels[industry]

	if verr := checkRequired(model, in); verr != nil {
		return nil, nil, verr
	}

	var trail models.AuditTrail

	// Grid connection quality: optional, but if supplied it must be a
	// known value, and a limited grid must declare its capacity.
	gridConn := GridReliable
	if raw, ok := in.Choice("gridConnection"); ok {
		gridConn, err = NormalizeGridConnection(raw)
		if err != nil {
			return nil, nil, err
		}
		if gridConn == GridLimited {
			if cap, ok := kwAnswer(in, "gridCapacityKW", "gridCapacityMW"); !ok || cap <= 0 {
				return nil, nil, &models.ValidationError{
					MissingFields: []string{"gridCapacityKW"},
					Reason:        "limited grid connection declared without a capacity figure",
				}
			}
		}
	}

	// Operating days: non-critical default, labeled and audited.
	days, ok := in.Number("operatingDays")
	if !ok {
		days = model.defaultDays
		trail = trail.Add(
			fmt.Sprintf("load.%s.operatingDays.default", industry),
			days, "days/yr", benchmark.SrcEngPolicy, benchmark.SourceLabel(benchmark.SrcEngPolicy),
		)
	}
	hours, _ := in.Number("operatingHours")

	var peak float64
	var clamped bool
	var serviceCap float64

	switch model.kind {
	case topDown:
		peak, trail, err = topDownPeak(reg, industry, subtype, model, in, trail)
	case bottomUp:
		peak, serviceCap, clamped, trail, err = bottomUpPeak(reg, industry, in, trail)
	}
	if err != nil {
		return nil, nil, err
	}

	peakSource := "industry_model"

	// A utility-bill peak beats the model when the user supplied one,
	// but it never beats the declared electrical service: a billed peak
	// above the service limit re-clamps and stays flagged.
	if known, ok := kwAnswer(in, "peakLoadKnownKW", "peakLoadKnownMW"); ok && known > 0 {
		peak = known
		peakSource = "utility_bill"
		clamped = false
		trail = trail.Add(
			fmt.Sprintf("load.%s.peakDemandKW.userSupplied", industry),
			known, "kW", "USER-UTILITY-BILL", "Peak demand from customer utility bill",
		)
		if serviceCap > 0 {
			clampFrac := reg.MustValue("policy.service.clamp_fraction")
			if limit := serviceCap * clampFrac; peak > limit {
				peak = limit
				clamped = true
				trail = trail.Add(
					fmt.Sprintf("load.%s.peakDemandKW.serviceClamped", industry),
					peak, "kW", benchmark.SrcNEC, benchmark.SourceLabel(benchmark.SrcNEC),
				)
			}
		}
	}

	// A limited grid clamps the same way a declared service does.
	if gridConn == GridLimited {
		gridCap, _ := kwAnswer(in, "gridCapacityKW", "gridCapacityMW")
		clampFrac := reg.MustValue("policy.service.clamp_fraction")
		if limit := gridCap * clampFrac; peak > limit {
			peak = limit
			clamped = true
			if serviceCap == 0 || gridCap < serviceCap {
				serviceCap = gridCap
			}
			trail = trail.Add(
				fmt.Sprintf("load.%s.peakDemandKW.gridClamped", industry),
				peak, "kW", benchmark.SrcNEC, benchmark.SourceLabel(benchmark.SrcNEC),
			)
		}
	}

	lfID := model.loadFactorID
	if strings.Contains(lfID, "%s") {
		lfID = fmt.Sprintf(lfID, subtype)
	}
	loadFactor, trail, err := reg.Record(trail, fmt.Sprintf("load.%s.loadFactor", industry), lfID)
	if err != nil {
		return nil, nil, err
	}

	avg := peak * loadFactor
	annual := avg * hours * days

	profile := &models.LoadProfile{
		PeakDemandKW:         peak,
		AverageDemandKW:      avg,
		AnnualConsumptionKWh: annual,
		LoadFactor:           loadFactor,
		OperatingHoursPerDay: hours,
		OperatingDaysPerYear: days,
		ProfileShape:         model.profileShape,
		ServiceLimitReached:  clamped,
		ServiceCapacityKW:    serviceCap,
		PeakSource:           peakSource,
		GridConnection:       string(gridConn),
	}

	trail = trail.Add(
		fmt.Sprintf("load.%s.peakDemandKW", industry),
		peak, "kW", "DERIVED", "Derived by load calculator",
	)
	trail = trail.Add(
		fmt.Sprintf("load.%s.annualConsumptionKWh", industry),
		annual, "kWh/yr", "DERIVED", "averageDemandKW x operatingHours x operatingDays",
	)

	return profile, trail, nil
}

// kwAnswer resolves a power answer the wizard may give in either unit.
// The kW key wins when both are present; an MW answer is converted on
// the way in so everything downstream stays kW-denominated.
func kwAnswer(in *models.FacilityInput, kwKey, mwKey string) (float64, bool) {
	if v, ok := in.Number(kwKey); ok {
		return v, true
	}
	if v, ok := in.Number(mwKey); ok {
		return models.KWFromMW(v), true
	}
	return 0, false
}

// checkRequired verifies the industry's required fields are present and
// well-formed. The engine never substitutes a default for anything
// listed here.
func checkRequired(model industryModel, in *models.FacilityInput) *models.ValidationError {
	var missing, invalid []string

	for _, field := range model.requiredNumbers {
		v, ok := in.Number(field)
		if !ok {
			missing = append(missing, field)
			continue
		}
		if v < 0 {
			invalid = append(invalid, field)
		}
	}
	for _, field := range model.requiredChoices {
		if _, ok := in.Choice(field); !ok {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 || len(invalid) > 0 {
		return &models.ValidationError{
			MissingFields: missing,
			InvalidFields: invalid,
			Reason:        "required facility fields absent or malformed",
		}
	}
	return nil
}

// topDownPeak computes peak = density x unitCount x product(modifiers).
func topDownPeak(reg *benchmark.Registry, industry Industry, subtype string, model industryModel, in *models.FacilityInput, trail models.AuditTrail) (float64, models.AuditTrail, error) {
	units, _ := in.Number(model.unitField)
	if units <= 0 {
		return 0, trail, &models.ValidationError{
			InvalidFields: []string{model.unitField},
			Reason:        fmt.Sprintf("%s must be positive", model.unitField),
		}
	}

	densityID := fmt.Sprintf(densityIDs[industry], subtype)
	density, trail, err := reg.Record(trail, fmt.Sprintf("load.%s.density", industry), densityID)
	if err != nil {
		return 0, trail, err
	}

	peak := density * units

	mods, err := deriveModifiers(industry, in)
	if err != nil {
		return 0, trail, err
	}
	for _, m := range mods {
		id := fmt.Sprintf("load.%s.modifier.%s", industry, m.token)
		mult, err := reg.Value(id)
		if err != nil {
			return 0, trail, err
		}
		peak *= mult
		bm, _ := reg.Lookup(id)
		trail = trail.Add(
			fmt.Sprintf("load.%s.modifier.%s (from %s=%s)", industry, m.token, m.answerKey, m.answerNote),
			mult, "multiplier", bm.SourceID, bm.SourceLabel,
		)
	}

	return peak, trail, nil
}

// bottomUpPeak computes peak from declared equipment nameplate power:
// sum(nameplate) x concurrency + motor-start surge, clamped against the
// declared electrical service.
func bottomUpPeak(reg *benchmark.Registry, industry Industry, in *models.FacilityInput, trail models.AuditTrail) (peak, serviceCap float64, clamped bool, out models.AuditTrail, err error) {
	out = trail

	var nameplate, largestMotor float64

	switch industry {
	case IndustryVehicleWash:
		tunnel, _ := in.Number("tunnelMotorKW")
		pumps, _ := in.Number("pumpTotalKW")
		dryers, _ := in.Number("dryerTotalKW")
		vacuums, _ := in.Number("vacuumTotalKW") // optional; absent means none installed
		nameplate = tunnel + pumps + dryers + vacuums
		largestMotor = tunnel
	case IndustryEVCharging:
		l2Ports, _ := in.Number("level2Ports")
		l2KW, _ := in.Number("level2PortKW")
		dcPorts, _ := in.Number("dcfcPorts")
		dcKW, _ := in.Number("dcfcPortKW")
		nameplate = l2Ports*l2KW + dcPorts*dcKW
		// Chargers are power electronics; no motor-start inrush term.
		largestMotor = 0
	default:
		return 0, 0, false, out, fmt.Errorf("no bottom-up model for industry %s", industry)
	}

	if nameplate <= 0 {
		return 0, 0, false, out, &models.ValidationError{
			InvalidFields: []string{"equipment power"},
			Reason:        "declared equipment nameplate power sums to zero",
		}
	}

	concID := fmt.Sprintf("load.%s.concurrency", industry)
	concurrency, out, err := reg.Record(out, fmt.Sprintf("load.%s.concurrency", industry), concID)
	if err != nil {
		return 0, 0, false, out, err
	}

	peak = nameplate * concurrency

	if largestMotor > 0 {
		surgeFactor, o, err := reg.Record(out, fmt.Sprintf("load.%s.motorSurge", industry), fmt.Sprintf("load.%s.motor_surge_factor", industry))
		if err != nil {
			return 0, 0, false, o, err
		}
		out = o
		peak += surgeFactor * largestMotor
	}

	serviceCap, _ = in.Number("serviceCapacityKW")
	if serviceCap <= 0 {
		return 0, 0, false, out, &models.ValidationError{
			InvalidFields: []string{"serviceCapacityKW"},
			Reason:        "electrical service capacity must be positive",
		}
	}

	clampFrac := reg.MustValue("policy.service.clamp_fraction")
	if limit := serviceCap * clampFrac; peak > limit {
		peak = limit
		clamped = true
		out = out.Add(
			fmt.Sprintf("load.%s.peakDemandKW.serviceClamped", industry),
			peak, "kW", benchmark.SrcNEC, benchmark.SourceLabel(benchmark.SrcNEC),
		)
	}

	return peak, serviceCap, clamped, out, nil
}
