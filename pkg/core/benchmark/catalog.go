package benchmark

// Source identifiers used across the catalog. Labels are what end up in
// exported audit trails, so they name the actual publication.
const (
	SrcNRELATB    = "NREL-ATB-2024"
	SrcPNNLESGC   = "PNNL-ESGC-2024"
	SrcEIACapCost = "EIA-CAPCOST-2023"
	SrcEIAAEO     = "EIA-AEO-2024"
	SrcDOEAFDC    = "DOE-AFDC-2024"
	SrcLazardLCOS = "LAZARD-LCOS-V9"
	SrcIRSPub946  = "IRS-PUB946"
	SrcIRA48E     = "IRA-2022-SEC-48E"
	SrcCBECS      = "CBECS-2018"
	SrcPJMAS      = "PJM-AS-2024"
	SrcISOCap     = "ISO-CAP-2024"
	SrcDOEDR      = "DOE-DR-2023"
	SrcNEC        = "NEC-2023-ART-220"
	SrcIEEE446    = "IEEE-STD-446"
	SrcAACE       = "AACE-RP-18R-97"
	SrcEngPolicy  = "GQ-ENG-POLICY-2025"
	SrcFinPolicy  = "GQ-FIN-POLICY-2025"
)

var sourceLabels = map[string]string{
	SrcNRELATB:    "NREL Annual Technology Baseline 2024",
	SrcPNNLESGC:   "PNNL Energy Storage Grand Challenge Cost Assessment 2024",
	SrcEIACapCost: "EIA Capital Cost and Performance Characteristics 2023",
	SrcEIAAEO:     "EIA Annual Energy Outlook 2024",
	SrcDOEAFDC:    "DOE Alternative Fuels Data Center 2024",
	SrcLazardLCOS: "Lazard Levelized Cost of Storage v9.0",
	SrcIRSPub946:  "IRS Publication 946 (MACRS)",
	SrcIRA48E:     "Inflation Reduction Act of 2022, Section 48E",
	SrcCBECS:      "EIA Commercial Buildings Energy Consumption Survey 2018",
	SrcPJMAS:      "PJM Ancillary Services Market Results 2024",
	SrcISOCap:     "ISO Capacity Market Clearing Prices 2024",
	SrcDOEDR:      "DOE Demand Response Program Benchmarks 2023",
	SrcNEC:        "National Electrical Code 2023, Article 220",
	SrcIEEE446:    "IEEE Std 446 (Orange Book), N+1 practice",
	SrcAACE:       "AACE International RP 18R-97, Class 4 estimate",
	SrcEngPolicy:  "GridQuote engineering policy (tunable)",
	SrcFinPolicy:  "GridQuote financing policy defaults",
}

// SourceLabel resolves a source id to its publication label.
func SourceLabel(id string) string {
	if l, ok := sourceLabels[id]; ok {
		return l
	}
	return id
}

func b(id string, value float64, unit, sourceID string) Benchmark {
	return Benchmark{
		ID:          id,
		Value:       value,
		Unit:        unit,
		SourceID:    sourceID,
		SourceLabel: SourceLabel(sourceID),
	}
}

// defaultCatalog is the engine's full constant set. IDs are dotted paths;
// the component packages build them from normalized enum values, so an
// unmapped enum can never silently reach a "closest" constant.
var defaultCatalog = []Benchmark{
	// --- Equipment unit costs ---
	b("cost.battery.per_kwh", 380, "$/kWh", SrcNRELATB),
	b("cost.solar.per_kw", 1750, "$/kW", SrcNRELATB),
	b("cost.generator.per_kw", 850, "$/kW", SrcEIACapCost),
	b("cost.ev.level2_per_port", 6000, "$/port", SrcDOEAFDC),
	b("cost.ev.dcfc_per_port", 45000, "$/port", SrcDOEAFDC),
	b("cost.bos_fraction", 0.12, "fraction of equipment cost", SrcPNNLESGC),
	b("cost.epc_fraction", 0.15, "fraction of equipment cost", SrcPNNLESGC),
	b("cost.contingency_fraction", 0.05, "fraction of equipment cost", SrcAACE),

	// --- Financial assumptions ---
	b("finance.itc.rate.2023", 0.30, "fraction of eligible CAPEX", SrcIRA48E),
	b("finance.itc.rate.2024", 0.30, "fraction of eligible CAPEX", SrcIRA48E),
	b("finance.itc.rate.2025", 0.30, "fraction of eligible CAPEX", SrcIRA48E),
	b("finance.itc.rate.2026", 0.30, "fraction of eligible CAPEX", SrcIRA48E),
	b("finance.itc.basis_reduction_fraction", 0.5, "fraction of ITC", SrcIRSPub946),
	b("finance.discount_rate", 0.08, "annual", SrcLazardLCOS),
	b("finance.degradation.battery_annual", 0.02, "fraction/year", SrcNRELATB),
	b("finance.escalation.utility_annual", 0.025, "fraction/year", SrcEIAAEO),
	b("finance.battery.round_trip_efficiency", 0.88, "fraction", SrcPNNLESGC),
	b("finance.om.battery_per_kwh_year", 7.5, "$/kWh-yr", SrcPNNLESGC),
	b("finance.om.solar_per_kw_year", 17, "$/kW-yr", SrcNRELATB),
	b("finance.om.generator_per_kw_year", 15, "$/kW-yr", SrcEIACapCost),
	b("finance.om.ev_per_port_year", 400, "$/port-yr", SrcDOEAFDC),
	b("finance.debt.default_fraction", 0.60, "fraction of net cost", SrcFinPolicy),
	b("finance.debt.default_rate", 0.065, "annual", SrcFinPolicy),
	b("finance.debt.default_term_years", 10, "years", SrcFinPolicy),
	b("finance.tax.default_rate", 0.26, "combined effective", SrcFinPolicy),
	b("finance.analysis.default_years", 20, "years", SrcLazardLCOS),

	// --- Revenue streams ---
	b("revenue.arbitrage.spread_per_kwh", 0.06, "$/kWh", SrcLazardLCOS),
	b("revenue.arbitrage.cycles_per_year", 300, "cycles/yr", SrcLazardLCOS),
	b("revenue.frequency_regulation.per_kw_year", 55, "$/kW-yr", SrcPJMAS),
	b("revenue.capacity.per_kw_year", 48, "$/kW-yr", SrcISOCap),
	b("revenue.demand_response.per_kw_year", 40, "$/kW-yr", SrcDOEDR),
	b("revenue.solar.kwh_per_kw_year", 1500, "kWh/kW-yr", SrcNRELATB),

	// --- Policy bounds (tunable, cited to engineering policy) ---
	b("policy.tier.bound_ratio", 2.5, "x baseline", SrcEngPolicy),
	b("policy.tier.scale.starter", 0.7, "x baseline", SrcEngPolicy),
	b("policy.tier.scale.balanced", 1.0, "x baseline", SrcEngPolicy),
	b("policy.tier.scale.max", 1.25, "x baseline", SrcEngPolicy),
	b("policy.auth.npv_tolerance", 1e-4, "relative", SrcEngPolicy),
	b("policy.service.clamp_fraction", 0.95, "fraction of service capacity", SrcNEC),

	// --- Hotel load model (per room, by tier) ---
	b("load.hotel.kw_per_room.economy", 0.9, "kW/room", SrcCBECS),
	b("load.hotel.kw_per_room.midscale", 1.3, "kW/room", SrcCBECS),
	b("load.hotel.kw_per_room.upscale", 1.8, "kW/room", SrcCBECS),
	b("load.hotel.kw_per_room.luxury", 2.6, "kW/room", SrcCBECS),
	b("load.hotel.load_factor", 0.55, "avg/peak", SrcCBECS),
	b("load.hotel.modifier.restaurant", 1.18, "multiplier", SrcCBECS),
	b("load.hotel.modifier.spa", 1.10, "multiplier", SrcCBECS),
	b("load.hotel.modifier.pool", 1.08, "multiplier", SrcCBECS),
	b("load.hotel.modifier.conference", 1.12, "multiplier", SrcCBECS),
	b("load.hotel.modifier.laundry", 1.07, "multiplier", SrcCBECS),

	// --- Office load model (per sqft) ---
	b("load.office.kw_per_sqft.standard", 0.006, "kW/sqft", SrcCBECS),
	b("load.office.kw_per_sqft.class_a", 0.007, "kW/sqft", SrcCBECS),
	b("load.office.kw_per_sqft.medical", 0.009, "kW/sqft", SrcCBECS),
	b("load.office.load_factor", 0.45, "avg/peak", SrcCBECS),
	b("load.office.modifier.data_closet", 1.10, "multiplier", SrcCBECS),
	b("load.office.modifier.cafeteria", 1.08, "multiplier", SrcCBECS),

	// --- Retail load model (per sqft) ---
	b("load.retail.kw_per_sqft.strip", 0.007, "kW/sqft", SrcCBECS),
	b("load.retail.kw_per_sqft.department", 0.008, "kW/sqft", SrcCBECS),
	b("load.retail.kw_per_sqft.big_box", 0.009, "kW/sqft", SrcCBECS),
	b("load.retail.load_factor", 0.50, "avg/peak", SrcCBECS),
	b("load.retail.modifier.food_court", 1.15, "multiplier", SrcCBECS),

	// --- Grocery load model (per sqft; refrigeration-heavy) ---
	b("load.grocery.kw_per_sqft.conventional", 0.011, "kW/sqft", SrcCBECS),
	b("load.grocery.kw_per_sqft.superstore", 0.013, "kW/sqft", SrcCBECS),
	b("load.grocery.load_factor", 0.75, "avg/peak", SrcCBECS),
	b("load.grocery.modifier.prepared_foods", 1.12, "multiplier", SrcCBECS),

	// --- Warehouse load model (per sqft) ---
	b("load.warehouse.kw_per_sqft.dry", 0.0025, "kW/sqft", SrcCBECS),
	b("load.warehouse.kw_per_sqft.refrigerated", 0.009, "kW/sqft", SrcCBECS),
	b("load.warehouse.load_factor.dry", 0.40, "avg/peak", SrcCBECS),
	b("load.warehouse.load_factor.refrigerated", 0.80, "avg/peak", SrcCBECS),

	// --- Data center load model (per rack) ---
	b("load.data_center.kw_per_rack.enterprise", 5, "kW/rack", SrcCBECS),
	b("load.data_center.kw_per_rack.colocation", 8, "kW/rack", SrcCBECS),
	b("load.data_center.kw_per_rack.hyperscale", 12, "kW/rack", SrcCBECS),
	b("load.data_center.load_factor", 0.85, "avg/peak", SrcCBECS),

	// --- Manufacturing load model (per sqft) ---
	b("load.manufacturing.kw_per_sqft.light", 0.012, "kW/sqft", SrcCBECS),
	b("load.manufacturing.kw_per_sqft.heavy", 0.020, "kW/sqft", SrcCBECS),
	b("load.manufacturing.kw_per_sqft.food_processing", 0.016, "kW/sqft", SrcCBECS),
	b("load.manufacturing.load_factor", 0.65, "avg/peak", SrcCBECS),

	// --- Bottom-up industries ---
	b("load.vehicle_wash.concurrency", 0.75, "fraction", SrcEngPolicy),
	b("load.vehicle_wash.motor_surge_factor", 1.5, "x largest motor", SrcIEEE446),
	b("load.vehicle_wash.load_factor", 0.35, "avg/peak", SrcCBECS),
	b("load.ev_charging.concurrency", 0.45, "fraction", SrcDOEAFDC),
	b("load.ev_charging.load_factor", 0.30, "avg/peak", SrcDOEAFDC),

	// --- Equipment sizing ---
	b("sizing.peak_shaving.hotel", 0.45, "fraction of peak", SrcEngPolicy),
	b("sizing.peak_shaving.office", 0.40, "fraction of peak", SrcEngPolicy),
	b("sizing.peak_shaving.retail", 0.40, "fraction of peak", SrcEngPolicy),
	b("sizing.peak_shaving.grocery", 0.50, "fraction of peak", SrcEngPolicy),
	b("sizing.peak_shaving.warehouse", 0.35, "fraction of peak", SrcEngPolicy),
	b("sizing.peak_shaving.data_center", 0.70, "fraction of peak", SrcEngPolicy),
	b("sizing.peak_shaving.manufacturing", 0.55, "fraction of peak", SrcEngPolicy),
	b("sizing.peak_shaving.vehicle_wash", 0.50, "fraction of peak", SrcEngPolicy),
	b("sizing.peak_shaving.ev_charging", 0.60, "fraction of peak", SrcEngPolicy),
	b("sizing.battery.min_duration_hours", 2, "hours", SrcLazardLCOS),
	b("sizing.backup_hours.no_impact", 0, "hours", SrcEngPolicy),
	b("sizing.backup_hours.minor_disruption", 1, "hours", SrcEngPolicy),
	b("sizing.backup_hours.partial_shutdown", 2, "hours", SrcEngPolicy),
	b("sizing.backup_hours.full_shutdown", 4, "hours", SrcEngPolicy),
	b("sizing.critical_fraction.no_impact", 0.15, "fraction of peak", SrcEngPolicy),
	b("sizing.critical_fraction.minor_disruption", 0.30, "fraction of peak", SrcEngPolicy),
	b("sizing.critical_fraction.partial_shutdown", 0.50, "fraction of peak", SrcEngPolicy),
	b("sizing.critical_fraction.full_shutdown", 0.80, "fraction of peak", SrcEngPolicy),
	b("sizing.solar.packing_factor", 0.75, "fraction of roof area", SrcNRELATB),
	b("sizing.solar.kw_per_sqft", 0.015, "kW/sqft", SrcNRELATB),
	b("sizing.solar.peak_ratio_max", 1.2, "x peak demand", SrcEngPolicy),
	b("sizing.generator.reserve_margin", 1.25, "x critical load", SrcIEEE446),
	b("sizing.ev.utilization", 0.45, "fraction", SrcDOEAFDC),
	b("sizing.ev.level2_port_kw", 11.5, "kW/port", SrcDOEAFDC),
	b("sizing.ev.dcfc_port_kw", 150, "kW/port", SrcDOEAFDC),
}
