// Package models defines the plain serializable value types exchanged
// between the quote engine stages and its callers. Nothing in here knows
// about HTTP, storage, or rendering: every struct must survive a JSON
// round-trip unchanged so any consumer (export, dashboard, API) can use it.
package models

import "time"

// =============================================================================
// INPUT SIDE
// =============================================================================

// Location identifies where a facility sits, for rate and incentive lookup.
type Location struct {
	Zip   string `json:"zip"`
	State string `json:"state"`
}

// FacilityInput is the raw answer set produced by the wizard for one
// facility. It never contains derived values: numbers are what the user
// typed, choices are the raw option strings, flags are raw checkboxes.
// Treated as immutable once handed to the engine.
type FacilityInput struct {
	Industry string   `json:"industry"`
	Subtype  string   `json:"subtype"`
	Location Location `json:"location"`

	// Numbers holds numeric answers keyed by question id
	// (e.g. "roomCount", "facilitySize", "operatingHours").
	Numbers map[string]float64 `json:"numbers"`

	// Flags holds boolean answers (e.g. "hasPool", "hasConferenceSpace").
	Flags map[string]bool `json:"flags"`

	// Choices holds categorical answers as raw option strings
	// (e.g. "foodService": "full-restaurant", "gridConnection": "limited").
	Choices map[string]string `json:"choices"`
}

// Number returns a numeric answer and whether it was present.
func (f *FacilityInput) Number(key string) (float64, bool) {
	v, ok := f.Numbers[key]
	return v, ok
}

// Flag returns a boolean answer, false when absent.
func (f *FacilityInput) Flag(key string) bool {
	return f.Flags[key]
}

// Choice returns a categorical answer and whether it was present.
func (f *FacilityInput) Choice(key string) (string, bool) {
	v, ok := f.Choices[key]
	return v, ok
}

// OutageSensitivity captures how badly an outage hurts the facility.
// It drives backup runtime sizing.
type OutageSensitivity string

const (
	OutageNoImpact        OutageSensitivity = "no_impact"
	OutageMinorDisruption OutageSensitivity = "minor_disruption"
	OutagePartialShutdown OutageSensitivity = "partial_shutdown"
	OutageFullShutdown    OutageSensitivity = "full_shutdown"
)

// CapitalStructure describes how the project is financed.
type CapitalStructure struct {
	DebtFraction   float64 `json:"debtFraction"`   // 0..1 share of net cost financed
	InterestRate   float64 `json:"interestRate"`   // annual, e.g. 0.065
	TermYears      int     `json:"termYears"`      // loan term
	TaxRate        float64 `json:"taxRate"`        // combined effective, e.g. 0.26
	DiscountRate   float64 `json:"discountRate"`   // for NPV, e.g. 0.08
	AnalysisYears  int     `json:"analysisYears"`  // horizon, 20-25
	EscalationRate float64 `json:"escalationRate"` // utility rate escalation
}

// RevenueToggles enables or disables individual revenue streams. A
// disabled stream contributes exactly zero, never a default estimate.
type RevenueToggles struct {
	EnergyArbitrage       bool `json:"energyArbitrage"`
	DemandChargeReduction bool `json:"demandChargeReduction"`
	FrequencyRegulation   bool `json:"frequencyRegulation"`
	CapacityPayments      bool `json:"capacityPayments"`
	DemandResponse        bool `json:"demandResponse"`
	SolarSelfConsumption  bool `json:"solarSelfConsumption"`
}

// Preferences carries the caller's goals and overrides into the engine.
type Preferences struct {
	SolarEnabled     bool              `json:"solarEnabled"`
	GeneratorEnabled bool              `json:"generatorEnabled"`
	EVEnabled        bool              `json:"evEnabled"`
	Outage           OutageSensitivity `json:"outageSensitivity"`

	// Capital overrides the registry defaults when non-nil.
	Capital *CapitalStructure `json:"capital,omitempty"`
	Revenue RevenueToggles    `json:"revenue"`

	// TierScaleFactors overrides the default tier ladder when non-empty.
	TierScaleFactors []float64 `json:"tierScaleFactors,omitempty"`
}

// =============================================================================
// LOAD PROFILE
// =============================================================================

// LoadProfile is the engine's model of a facility's electrical demand.
// Invariant: AverageDemandKW <= PeakDemandKW.
type LoadProfile struct {
	PeakDemandKW         float64 `json:"peakDemandKW"`
	AverageDemandKW      float64 `json:"averageDemandKW"`
	AnnualConsumptionKWh float64 `json:"annualConsumptionKWh"`
	LoadFactor           float64 `json:"loadFactor"`

	OperatingHoursPerDay float64 `json:"operatingHoursPerDay"`
	OperatingDaysPerYear float64 `json:"operatingDaysPerYear"`

	// ProfileShape is a coarse descriptor ("daytime-peak", "24x7-flat",
	// "evening-peak") for downstream dispatch modeling.
	ProfileShape string `json:"profileShape"`

	// ServiceLimitReached is set when the computed demand was clamped
	// against the declared electrical service capacity.
	ServiceLimitReached bool    `json:"serviceLimitReached"`
	ServiceCapacityKW   float64 `json:"serviceCapacityKW,omitempty"`

	// PeakSource records whether the peak came from the industry model
	// or a user-supplied utility-bill figure.
	PeakSource string `json:"peakSource"`

	// GridConnection is the normalized grid-quality answer; backup
	// sizing reads it downstream.
	GridConnection string `json:"gridConnection,omitempty"`
}

// =============================================================================
// EQUIPMENT
// =============================================================================

// EquipmentKind tags one arm of the equipment union.
type EquipmentKind string

const (
	EquipmentBattery   EquipmentKind = "battery"
	EquipmentSolar     EquipmentKind = "solar"
	EquipmentGenerator EquipmentKind = "generator"
	EquipmentEVCharger EquipmentKind = "ev_charger"
)

// CostBasis says what the unit cost is quoted against.
type CostBasis string

const (
	CostPerKWh  CostBasis = "per_kwh"
	CostPerKW   CostBasis = "per_kw"
	CostPerUnit CostBasis = "per_unit"
)

// SizingBasis is the formula-plus-inputs record that lets anyone
// reconstruct a sizing number. It feeds the audit trail verbatim.
type SizingBasis struct {
	Formula  string             `json:"formula"`
	Inputs   map[string]float64 `json:"inputs"`
	SourceID string             `json:"sourceId"`
}

// EquipmentSpec is one sized component of the system.
// Invariant for batteries: EnergyKWh = PowerKW * DurationHours.
type EquipmentSpec struct {
	Kind          EquipmentKind `json:"kind"`
	PowerKW       float64       `json:"powerKW"`
	EnergyKWh     float64       `json:"energyKWh,omitempty"`
	DurationHours float64       `json:"durationHours,omitempty"`
	Quantity      int           `json:"quantity"`

	UnitCost  float64   `json:"unitCost"`
	CostBasis CostBasis `json:"costBasis"`

	Basis SizingBasis `json:"basis"`
}

// =============================================================================
// RATES
// =============================================================================

// UtilityRates are the tariff figures a financial model runs against.
// IsEstimate must be true whenever a default was substituted for a real
// tariff lookup; downstream consumers surface that flag, never hide it.
type UtilityRates struct {
	EnergyRatePerKWh       float64 `json:"energyRatePerKWh"`
	DemandChargePerKWMonth float64 `json:"demandChargePerKWMonth"`
	RateClass              string  `json:"rateClass"`
	Source                 string  `json:"source"`
	IsEstimate             bool    `json:"isEstimate"`
}

// IncentiveSet is the location-dependent incentive lookup result.
type IncentiveSet struct {
	FederalITCRate    float64 `json:"federalItcRate"`
	StateRebatePerKWh float64 `json:"stateRebatePerKWh"`
	StateCapAmount    float64 `json:"stateCapAmount"` // 0 = uncapped
	Source            string  `json:"source"`
	IsEstimate        bool    `json:"isEstimate"`
}

// =============================================================================
// FINANCIAL RESULT
// =============================================================================

// YearCashFlow is one row of the multi-year pro forma.
type YearCashFlow struct {
	Year int `json:"year"`

	// Revenue by stream name; disabled streams are absent, not zero-filled.
	Revenue      map[string]float64 `json:"revenue"`
	TotalRevenue float64            `json:"totalRevenue"`

	OpEx   float64 `json:"opex"`
	EBITDA float64 `json:"ebitda"`

	Interest    float64 `json:"interest"`
	Principal   float64 `json:"principal"`
	DebtService float64 `json:"debtService"`

	Taxes              float64 `json:"taxes"`
	DepreciationShield float64 `json:"depreciationShield"`

	NetCashFlow float64 `json:"netCashFlow"`

	// DSCR is nil in years with no debt service outstanding.
	DSCR *float64 `json:"dscr,omitempty"`

	// BatteryCapacityFactor tracks degradation (1.0 in year 1).
	BatteryCapacityFactor float64 `json:"batteryCapacityFactor"`
	EnergyDischargedKWh   float64 `json:"energyDischargedKWh"`
}

// DepreciationYear is one row of the MACRS schedule.
type DepreciationYear struct {
	Year      int     `json:"year"`
	Rate      float64 `json:"rate"`
	Amount    float64 `json:"amount"`
	TaxShield float64 `json:"taxShield"`
}

// DebtYear is one row of the amortization schedule.
type DebtYear struct {
	Year             int     `json:"year"`
	BeginningBalance float64 `json:"beginningBalance"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	EndingBalance    float64 `json:"endingBalance"`
}

// SummaryMetrics are the headline numbers a lender or buyer reads first.
// Pointer-typed metrics are nil when genuinely not applicable (no debt)
// or when a solver failed to converge, never silently zero.
type SummaryMetrics struct {
	GrossCapex        float64 `json:"grossCapex"`
	ITCAmount         float64 `json:"itcAmount"`
	StateIncentives   float64 `json:"stateIncentives"`
	NetCost           float64 `json:"netCost"`
	AnnualSavingsYear1 float64 `json:"annualSavingsYear1"`

	NPV          float64  `json:"npv"`
	LeveredIRR   *float64 `json:"leveredIrr"`
	UnleveredIRR *float64 `json:"unleveredIrr"`
	MinimumDSCR  *float64 `json:"minimumDscr"`
	LCOS         *float64 `json:"lcos"`

	PaybackYears float64 `json:"paybackYears"`
	ROI10Year    float64 `json:"roi10Year"`
	ROILifetime  float64 `json:"roiLifetime"`
	MOIC         float64 `json:"moic"`

	// ConvergenceWarnings names metrics whose solver did not converge.
	ConvergenceWarnings []string `json:"convergenceWarnings,omitempty"`
}

// FinancialResult is the full output of the financial model engine.
// Only pkg/core/finance constructs it.
type FinancialResult struct {
	Capex        CapexBreakdown     `json:"capex"`
	Incentives   IncentiveSet       `json:"incentives"`
	Rates        UtilityRates       `json:"rates"`
	Capital      CapitalStructure   `json:"capital"`
	DebtAmount   float64            `json:"debtAmount"`
	CashFlows    []YearCashFlow     `json:"cashFlows"`
	Depreciation []DepreciationYear `json:"depreciation"`
	DebtSchedule []DebtYear         `json:"debtSchedule,omitempty"`
	Metrics      SummaryMetrics     `json:"metrics"`
}

// CapexBreakdown itemizes capital cost before incentives.
type CapexBreakdown struct {
	EquipmentCost   float64            `json:"equipmentCost"`
	ByComponent     map[string]float64 `json:"byComponent"`
	BOSCost         float64            `json:"bosCost"`
	EPCCost         float64            `json:"epcCost"`
	ContingencyCost float64            `json:"contingencyCost"`
	Total           float64            `json:"total"`
}

// =============================================================================
// TIERS AND THE AUTHENTICATED QUOTE
// =============================================================================

// SystemOption is one candidate system tier. It is an estimate until the
// authenticator has checked it; nothing downstream may treat an estimate
// as final.
type SystemOption struct {
	Name        string          `json:"name"`
	ScaleFactor float64         `json:"scaleFactor"`
	Equipment   []EquipmentSpec `json:"equipment"`
	Financials  FinancialResult `json:"financials"`
	IsEstimate  bool            `json:"isEstimate"`
}

// BaseCalculation bundles the baseline outputs of the pipeline.
type BaseCalculation struct {
	Load       LoadProfile     `json:"load"`
	Equipment  []EquipmentSpec `json:"equipment"`
	Financials FinancialResult `json:"financials"`
	Rates      UtilityRates    `json:"rates"`
}

// AuditEntry is one traceable number: what it is, what it was, and the
// benchmark source it came from. The flat list shape is export-ready.
type AuditEntry struct {
	Component   string  `json:"component"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	SourceID    string  `json:"sourceId"`
	SourceLabel string  `json:"sourceLabel"`
}

// AuditTrail is the ordered record of every benchmark, default, and
// derived figure used while building a quote.
type AuditTrail []AuditEntry

// Add appends an entry and returns the extended trail.
func (a AuditTrail) Add(component string, value float64, unit, sourceID, sourceLabel string) AuditTrail {
	return append(a, AuditEntry{
		Component:   component,
		Value:       value,
		Unit:        unit,
		SourceID:    sourceID,
		SourceLabel: sourceLabel,
	})
}

// AuthenticatedQuote is the single source of truth a consumer may export
// or display as final. Only pkg/core/proposal constructs one, and only
// after every tier has passed the authentication invariants.
type AuthenticatedQuote struct {
	QuoteID     string                  `json:"quoteId"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Input       FacilityInput           `json:"input"`
	Baseline    BaseCalculation         `json:"baseline"`
	Options     map[string]SystemOption `json:"options"`
	Audit       AuditTrail              `json:"audit"`
}
