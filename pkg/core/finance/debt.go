package finance

import (
	"fmt"
	"math"

	"gridquote/pkg/models"
)

// annuityPayment is the level annual payment for a fully-amortizing
// loan.
func annuityPayment(principal, rate float64, termYears int) float64 {
	if termYears <= 0 {
		return 0
	}
	if rate == 0 {
		return principal / float64(termYears)
	}
	f := math.Pow(1+rate, float64(termYears))
	return principal * rate * f / (f - 1)
}

// amortize builds the year-by-year debt schedule. The final year's
// principal absorbs any residual rounding so the balance lands exactly
// at zero.
func amortize(principal, rate float64, termYears int) ([]models.DebtYear, error) {
	if principal < 0 {
		return nil, fmt.Errorf("debt principal cannot be negative: %f", principal)
	}
	if principal == 0 || termYears <= 0 {
		return nil, nil
	}

	payment := annuityPayment(principal, rate, termYears)
	schedule := make([]models.DebtYear, 0, termYears)

	balance := principal
	for year := 1; year <= termYears; year++ {
		interest := balance * rate
		principalPaid := payment - interest
		if year == termYears {
			principalPaid = balance
			payment = interest + principalPaid
		}
		ending := balance - principalPaid

		schedule = append(schedule, models.DebtYear{
			Year:             year,
			BeginningBalance: balance,
			Payment:          payment,
			Interest:         interest,
			Principal:        principalPaid,
			EndingBalance:    ending,
		})
		balance = ending
	}

	return schedule, nil
}
