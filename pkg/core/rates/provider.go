// Package rates defines the narrow collaborator interface through which
// the engine obtains utility tariffs and incentives by location. The
// engine never reaches into a database itself; it takes a Provider and
// treats everything it returns as data.
package rates

import (
	"context"

	"gridquote/pkg/models"
)

// Provider looks up tariff and incentive figures for a location.
// Implementations must set IsEstimate on anything that is a default
// rather than a real lookup result; the engine surfaces that flag all
// the way to the audit trail.
type Provider interface {
	GetUtilityRate(ctx context.Context, loc models.Location) (models.UtilityRates, error)
	GetIncentives(ctx context.Context, loc models.Location) (models.IncentiveSet, error)
}
