package load

// industryModels declares the per-industry contract: demand model
// direction, required inputs, and the total subtype table. Subtype
// variants cover every spelling the wizard's templates have produced;
// new raw values must be added here deliberately, never defaulted.
var industryModels = map[Industry]industryModel{
	IndustryHotel: {
		kind:            topDown,
		unitField:       "roomCount",
		requiredNumbers: []string{"roomCount", "operatingHours"},
		subtypes: map[string]string{
			"economy":       "economy",
			"budget":        "economy",
			"midscale":      "midscale",
			"mid-scale":     "midscale",
			"mid_scale":     "midscale",
			"upscale":       "upscale",
			"upper-scale":   "upscale",
			"upper_scale":   "upscale",
			"upper-upscale": "upscale",
			"luxury":        "luxury",
			"resort":        "luxury",
		},
		loadFactorID: "load.hotel.load_factor",
		profileShape: "24x7-evening-peak",
		defaultDays:  365,
	},
	IndustryOffice: {
		kind:            topDown,
		unitField:       "facilitySize",
		requiredNumbers: []string{"facilitySize", "operatingHours"},
		subtypes: map[string]string{
			"standard": "standard",
			"class-b":  "standard",
			"class_b":  "standard",
			"class-a":  "class_a",
			"class_a":  "class_a",
			"medical":  "medical",
		},
		loadFactorID: "load.office.load_factor",
		profileShape: "daytime-peak",
		defaultDays:  260,
	},
	IndustryRetail: {
		kind:            topDown,
		unitField:       "facilitySize",
		requiredNumbers: []string{"facilitySize", "operatingHours"},
		subtypes: map[string]string{
			"strip":       "strip",
			"strip-mall":  "strip",
			"strip_mall":  "strip",
			"department":  "department",
			"big-box":     "big_box",
			"big_box":     "big_box",
			"bigbox":      "big_box",
			"supercenter": "big_box",
		},
		loadFactorID: "load.retail.load_factor",
		profileShape: "daytime-peak",
		defaultDays:  360,
	},
	IndustryGrocery: {
		kind:            topDown,
		unitField:       "facilitySize",
		requiredNumbers: []string{"facilitySize", "operatingHours"},
		subtypes: map[string]string{
			"conventional": "conventional",
			"standard":     "conventional",
			"superstore":   "superstore",
			"super-store":  "superstore",
			"super_store":  "superstore",
		},
		loadFactorID: "load.grocery.load_factor",
		profileShape: "24x7-flat",
		defaultDays:  364,
	},
	IndustryWarehouse: {
		kind:            topDown,
		unitField:       "facilitySize",
		requiredNumbers: []string{"facilitySize", "operatingHours"},
		subtypes: map[string]string{
			"dry":          "dry",
			"ambient":      "dry",
			"refrigerated": "refrigerated",
			"cold-storage": "refrigerated",
			"cold_storage": "refrigerated",
		},
		// Warehouse load factor depends on subtype: refrigeration runs
		// around the clock, dry storage does not.
		loadFactorID: "load.warehouse.load_factor.%s",
		profileShape: "daytime-peak",
		defaultDays:  310,
	},
	IndustryDataCenter: {
		kind:            topDown,
		unitField:       "rackCount",
		requiredNumbers: []string{"rackCount", "operatingHours"},
		subtypes: map[string]string{
			"enterprise": "enterprise",
			"colocation": "colocation",
			"colo":       "colocation",
			"hyperscale": "hyperscale",
		},
		loadFactorID: "load.data_center.load_factor",
		profileShape: "24x7-flat",
		defaultDays:  365,
	},
	IndustryManufacturing: {
		kind:            topDown,
		unitField:       "facilitySize",
		requiredNumbers: []string{"facilitySize", "operatingHours"},
		subtypes: map[string]string{
			"light":           "light",
			"light-assembly":  "light",
			"light_assembly":  "light",
			"heavy":           "heavy",
			"food-processing": "food_processing",
			"food_processing": "food_processing",
		},
		loadFactorID: "load.manufacturing.load_factor",
		profileShape: "shift-peaked",
		defaultDays:  300,
	},
	IndustryVehicleWash: {
		kind: bottomUp,
		requiredNumbers: []string{
			"tunnelMotorKW", "pumpTotalKW", "dryerTotalKW",
			"serviceCapacityKW", "operatingHours",
		},
		subtypes: map[string]string{
			"tunnel":       "tunnel",
			"express":      "tunnel",
			"in-bay":       "in_bay",
			"in_bay":       "in_bay",
			"self-service": "self_service",
			"self_service": "self_service",
		},
		loadFactorID: "load.vehicle_wash.load_factor",
		profileShape: "daytime-peak",
		defaultDays:  360,
	},
	IndustryEVCharging: {
		kind: bottomUp,
		requiredNumbers: []string{
			"level2Ports", "level2PortKW", "dcfcPorts", "dcfcPortKW",
			"serviceCapacityKW", "operatingHours",
		},
		subtypes: map[string]string{
			"public":  "public",
			"fleet":   "fleet",
			"transit": "fleet",
			"depot":   "fleet",
		},
		loadFactorID: "load.ev_charging.load_factor",
		profileShape: "evening-peak",
		defaultDays:  365,
	},
}
