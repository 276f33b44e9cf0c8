// Package load turns raw facility answers into a LoadProfile. Each
// industry declares its required fields and its own peak-demand model;
// categorical answers pass through total normalization tables that fail
// loudly on unknown values instead of guessing.
package load

// Industry is the normalized industry tag.
type Industry string

const (
	IndustryHotel         Industry = "hotel"
	IndustryOffice        Industry = "office"
	IndustryRetail        Industry = "retail"
	IndustryGrocery       Industry = "grocery"
	IndustryWarehouse     Industry = "warehouse"
	IndustryDataCenter    Industry = "data_center"
	IndustryManufacturing Industry = "manufacturing"
	IndustryVehicleWash   Industry = "vehicle_wash"
	IndustryEVCharging    Industry = "ev_charging"
)

// GridConnection is the normalized grid-connection quality answer.
type GridConnection string

const (
	GridReliable   GridConnection = "reliable"
	GridUnreliable GridConnection = "unreliable"
	GridLimited    GridConnection = "limited"
	GridOffGrid    GridConnection = "off_grid"
	GridMicrogrid  GridConnection = "microgrid"
)

// modelKind says which direction an industry's demand model works.
type modelKind int

const (
	topDown  modelKind = iota // density x units x modifiers
	bottomUp                  // sum of equipment nameplate x concurrency
)

// industryModel declares everything the calculator needs to know about
// one industry: its demand model, required inputs, subtype table, and
// how raw categorical answers map onto load modifiers.
type industryModel struct {
	kind modelKind

	// requiredNumbers and requiredChoices are the fields that must be
	// present; a live system is never sized off a silent substitute.
	requiredNumbers []string
	requiredChoices []string

	// unitField is the count the density multiplies (topDown only).
	unitField string

	// subtypes maps raw subtype strings to the canonical token used in
	// benchmark ids. The table is total: anything absent is an
	// UnknownSubtypeError.
	subtypes map[string]string

	// loadFactorID resolves the industry load factor; for industries
	// whose factor depends on subtype the id embeds "%s".
	loadFactorID string

	profileShape string

	// defaultDays is the non-critical operating-days default, applied
	// only when absent and always recorded in the audit trail.
	defaultDays float64
}

// gridConnectionTable is the total normalization map for the
// grid-connection answer, including the variants the wizard has
// historically emitted.
var gridConnectionTable = map[string]GridConnection{
	"reliable":    GridReliable,
	"unreliable":  GridUnreliable,
	"limited":     GridLimited,
	"off_grid":    GridOffGrid,
	"off-grid":    GridOffGrid,
	"offgrid":     GridOffGrid,
	"microgrid":   GridMicrogrid,
	"micro-grid":  GridMicrogrid,
	"micro_grid":  GridMicrogrid,
}

// industryTable is the total normalization map for the industry tag.
var industryTable = map[string]Industry{
	"hotel":          IndustryHotel,
	"hospitality":    IndustryHotel,
	"lodging":        IndustryHotel,
	"office":         IndustryOffice,
	"commercial":     IndustryOffice,
	"retail":         IndustryRetail,
	"grocery":        IndustryGrocery,
	"supermarket":    IndustryGrocery,
	"warehouse":      IndustryWarehouse,
	"logistics":      IndustryWarehouse,
	"data_center":    IndustryDataCenter,
	"data-center":    IndustryDataCenter,
	"datacenter":     IndustryDataCenter,
	"manufacturing":  IndustryManufacturing,
	"industrial":     IndustryManufacturing,
	"vehicle_wash":   IndustryVehicleWash,
	"vehicle-wash":   IndustryVehicleWash,
	"car_wash":       IndustryVehicleWash,
	"car-wash":       IndustryVehicleWash,
	"carwash":        IndustryVehicleWash,
	"ev_charging":    IndustryEVCharging,
	"ev-charging":    IndustryEVCharging,
	"ev":             IndustryEVCharging,
	"charging_depot": IndustryEVCharging,
}
