// Package quote is the pipeline orchestrator: it composes the load
// calculator, sizer, financial model, tier generator, and authenticator
// over one FacilityInput and returns either an AuthenticatedQuote or
// the first error encountered. It never retries; retries are a caller
// decision.
package quote

import (
	"context"
	"fmt"
	"time"

	"gridquote/pkg/core/benchmark"
	"gridquote/pkg/core/finance"
	"gridquote/pkg/core/load"
	"gridquote/pkg/core/proposal"
	"gridquote/pkg/core/rates"
	"gridquote/pkg/core/scenario"
	"gridquote/pkg/core/sizing"
	"gridquote/pkg/models"
)

// Orchestrator wires the pipeline stages together. It is safe for
// concurrent use: the stages are pure functions over immutable inputs
// and the only shared state is the memo cache.
type Orchestrator struct {
	reg           *benchmark.Registry
	provider      rates.Provider
	cache         Cache
	lookupTimeout time.Duration
	installYear   int
	verbose       bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCache replaces the default in-memory memo cache.
func WithCache(c Cache) Option {
	return func(o *Orchestrator) { o.cache = c }
}

// WithoutCache disables memoization entirely.
func WithoutCache() Option {
	return func(o *Orchestrator) { o.cache = nopCache{} }
}

// WithLookupTimeout bounds the external rate/incentive lookups.
func WithLookupTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.lookupTimeout = d }
}

// WithInstallYear pins the ITC vintage year.
func WithInstallYear(year int) Option {
	return func(o *Orchestrator) { o.installYear = year }
}

// WithVerbose enables stage logging.
func WithVerbose() Option {
	return func(o *Orchestrator) { o.verbose = true }
}

// New builds an orchestrator around an injected registry and rate
// provider.
func New(reg *benchmark.Registry, provider rates.Provider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		reg:           reg,
		provider:      provider,
		cache:         NewMemoryCache(),
		lookupTimeout: 5 * time.Second,
		installYear:   time.Now().UTC().Year(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Orchestrator) logf(format string, args ...interface{}) {
	if o.verbose {
		fmt.Printf(format, args...)
	}
}

// CalculateQuote runs the full pipeline for one facility. Identical
// input always yields an identical quote: the memo cache returns the
// exact previous result, and a cold run recomputes the same numbers.
func (o *Orchestrator) CalculateQuote(ctx context.Context, input models.FacilityInput, prefs models.Preferences) (*models.AuthenticatedQuote, error) {
	key, err := Fingerprint(input, prefs, o.installYear)
	if err != nil {
		return nil, err
	}
	if cached, ok := o.cache.Get(ctx, key); ok {
		o.logf("[PIPELINE] Cache hit for fingerprint %s\n", key[:12])
		return cached, nil
	}

	start := time.Now()
	o.logf("[PIPELINE] Starting quote calculation (%s / %s)...\n", input.Industry, input.Subtype)

	// 1. Load profile
	profile, trail, err := load.Calculate(o.reg, &input)
	if err != nil {
		return nil, err
	}
	o.logf("[PIPELINE] Load: peak %.1f kW, annual %.0f kWh\n", profile.PeakDemandKW, profile.AnnualConsumptionKWh)

	// 2. External lookups at the orchestrator boundary, bounded.
	utilityRates, incentives, trail, err := o.lookupRates(ctx, input.Location, trail)
	if err != nil {
		return nil, err
	}

	// 3. Equipment sizing
	industry, err := load.NormalizeIndustry(input.Industry)
	if err != nil {
		return nil, err
	}
	roofArea, _ := input.Number("roofArea")
	l2Ports, _ := input.Number("plannedLevel2Ports")
	dcPorts, _ := input.Number("plannedDCFCPorts")

	equipment, sizingTrail, err := sizing.Size(o.reg, sizing.Input{
		Industry:      industry,
		Profile:       profile,
		Prefs:         prefs,
		RoofAreaSqft:  roofArea,
		EVLevel2Ports: int(l2Ports),
		EVDCFCPorts:   int(dcPorts),
	})
	if err != nil {
		return nil, err
	}
	trail = append(trail, sizingTrail...)
	o.logf("[PIPELINE] Sized %d components\n", len(equipment))

	// 4. Baseline financial model
	capital := finance.DefaultCapital(o.reg)
	if prefs.Capital != nil {
		capital = *prefs.Capital
	}

	finIn := finance.Input{
		Equipment:   equipment,
		Rates:       utilityRates,
		Incentives:  incentives,
		Capital:     capital,
		Revenue:     prefs.Revenue,
		Profile:     profile,
		InstallYear: o.installYear,
	}
	financials, finTrail, err := finance.Compute(o.reg, finIn)
	if err != nil {
		return nil, err
	}
	trail = append(trail, finTrail...)
	o.logf("[PIPELINE] Baseline: CAPEX $%.0f, net $%.0f, NPV $%.0f\n",
		financials.Metrics.GrossCapex, financials.Metrics.NetCost, financials.Metrics.NPV)

	baseline := models.BaseCalculation{
		Load:       *profile,
		Equipment:  equipment,
		Financials: *financials,
		Rates:      utilityRates,
	}

	// 5. Candidate tiers
	factors := prefs.TierScaleFactors
	if len(factors) == 0 {
		factors = scenario.DefaultScaleFactors(o.reg)
	}
	tiers, err := scenario.Generate(o.reg, baseline, finIn, factors)
	if err != nil {
		return nil, err
	}
	o.logf("[PIPELINE] Generated %d tiers\n", len(tiers))

	// 6. Authentication
	quote, err := proposal.Authenticate(o.reg, input, baseline, tiers, trail)
	if err != nil {
		return nil, err
	}

	o.cache.Set(ctx, key, quote)
	o.logf("[PIPELINE] Quote %s authenticated in %v\n", quote.QuoteID, time.Since(start))
	return quote, nil
}

// lookupRates performs the only external I/O in the pipeline. Lookup
// failure falls back to the flagged national-average defaults, and the
// fallback is always recorded in the audit trail, never silent.
func (o *Orchestrator) lookupRates(ctx context.Context, loc models.Location, trail models.AuditTrail) (models.UtilityRates, models.IncentiveSet, models.AuditTrail, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, o.lookupTimeout)
	defer cancel()

	utilityRates, err := o.provider.GetUtilityRate(lookupCtx, loc)
	if err != nil {
		o.logf("[WARNING] Utility rate lookup failed (%v); using flagged default\n", err)
		fallback := rates.NewStaticProvider()
		utilityRates, err = fallback.GetUtilityRate(ctx, models.Location{})
		if err != nil {
			return models.UtilityRates{}, models.IncentiveSet{}, trail, err
		}
		utilityRates.IsEstimate = true
		utilityRates.Source = "FALLBACK-" + utilityRates.Source
	}
	trail = trail.Add("rates.energyRatePerKWh", utilityRates.EnergyRatePerKWh, "$/kWh",
		utilityRates.Source, utilityRates.Source)
	trail = trail.Add("rates.demandChargePerKWMonth", utilityRates.DemandChargePerKWMonth, "$/kW-mo",
		utilityRates.Source, utilityRates.Source)
	if utilityRates.IsEstimate {
		trail = trail.Add("rates.isEstimate", 1, "flag", utilityRates.Source,
			"Default tariff used; flagged as estimate")
	}

	incentives, err := o.provider.GetIncentives(lookupCtx, loc)
	if err != nil {
		o.logf("[WARNING] Incentive lookup failed (%v); proceeding with federal ITC only\n", err)
		incentives = models.IncentiveSet{Source: "FALLBACK-NO-STATE-PROGRAM", IsEstimate: true}
	}
	if incentives.StateRebatePerKWh > 0 {
		trail = trail.Add("rates.stateRebatePerKWh", incentives.StateRebatePerKWh, "$/kWh",
			incentives.Source, incentives.Source)
	}

	return utilityRates, incentives, trail, nil
}
