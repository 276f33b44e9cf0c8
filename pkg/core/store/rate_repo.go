package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"gridquote/pkg/core/rates"
	"gridquote/pkg/models"
)

// RateRepo is the pgx-backed rates.Provider for deployments with
// curated tariff tables. A state missing from the tables falls back to
// the static provider's flagged national-average default, the same
// never-silent rule the engine enforces everywhere.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS utility_rates (
//	  state TEXT PRIMARY KEY,
//	  energy_rate_kwh DOUBLE PRECISION,
//	  demand_charge_kw_month DOUBLE PRECISION,
//	  rate_class TEXT,
//	  source TEXT
//	);
//	CREATE TABLE IF NOT EXISTS state_incentives (
//	  state TEXT PRIMARY KEY,
//	  rebate_per_kwh DOUBLE PRECISION,
//	  cap_amount DOUBLE PRECISION,
//	  source TEXT
//	);
type RateRepo struct {
	fallback *rates.StaticProvider
}

var _ rates.Provider = (*RateRepo)(nil)

// NewRateRepo creates the database-backed provider.
func NewRateRepo() *RateRepo {
	return &RateRepo{fallback: rates.NewStaticProvider()}
}

// GetUtilityRate looks the state up in utility_rates, falling back to
// the flagged static default when absent.
func (r *RateRepo) GetUtilityRate(ctx context.Context, loc models.Location) (models.UtilityRates, error) {
	pool := GetPool()
	if pool == nil {
		return models.UtilityRates{}, fmt.Errorf("database pool not initialized")
	}

	state := strings.ToUpper(strings.TrimSpace(loc.State))

	var out models.UtilityRates
	err := pool.QueryRow(ctx,
		`SELECT energy_rate_kwh, demand_charge_kw_month, rate_class, source
		 FROM utility_rates WHERE state = $1`, state,
	).Scan(&out.EnergyRatePerKWh, &out.DemandChargePerKWMonth, &out.RateClass, &out.Source)

	if err == pgx.ErrNoRows {
		return r.fallback.GetUtilityRate(ctx, loc)
	}
	if err != nil {
		return models.UtilityRates{}, fmt.Errorf("utility rate lookup failed: %w", err)
	}
	return out, nil
}

// GetIncentives looks the state up in state_incentives; no row means no
// program, which is a real answer.
func (r *RateRepo) GetIncentives(ctx context.Context, loc models.Location) (models.IncentiveSet, error) {
	pool := GetPool()
	if pool == nil {
		return models.IncentiveSet{}, fmt.Errorf("database pool not initialized")
	}

	state := strings.ToUpper(strings.TrimSpace(loc.State))

	var out models.IncentiveSet
	err := pool.QueryRow(ctx,
		`SELECT rebate_per_kwh, cap_amount, source
		 FROM state_incentives WHERE state = $1`, state,
	).Scan(&out.StateRebatePerKWh, &out.StateCapAmount, &out.Source)

	if err == pgx.ErrNoRows {
		return models.IncentiveSet{Source: "DSIRE-NO-PROGRAM"}, nil
	}
	if err != nil {
		return models.IncentiveSet{}, fmt.Errorf("incentive lookup failed: %w", err)
	}
	return out, nil
}
