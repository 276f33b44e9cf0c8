package finance

import (
	"math"

	"gridquote/pkg/models"
)

const (
	irrTolerance     = 1e-6
	irrMaxIterations = 100
)

// NPV discounts a cash-flow series. flows[0] is year 0 (typically the
// negative initial investment) and is not discounted.
func NPV(rate float64, flows []float64) float64 {
	var npv float64
	for i, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(i))
	}
	return npv
}

// npvDerivative is d(NPV)/d(rate), used by the Newton step.
func npvDerivative(rate float64, flows []float64) float64 {
	var d float64
	for i := 1; i < len(flows); i++ {
		t := float64(i)
		d -= t * flows[i] / math.Pow(1+rate, t+1)
	}
	return d
}

// IRR finds the rate where NPV is zero: Newton-Raphson first, falling
// back to bisection when Newton wanders. Returns a ConvergenceError
// when neither converges within bounds; callers must report the metric
// as missing, never as zero.
func IRR(flows []float64) (float64, error) {
	if !signChange(flows) {
		return 0, &models.ConvergenceError{
			Metric:    "IRR",
			Tolerance: irrTolerance,
		}
	}

	// Newton-Raphson from a conventional 10% seed.
	rate := 0.10
	for i := 0; i < irrMaxIterations; i++ {
		npv := NPV(rate, flows)
		if math.Abs(npv) < irrTolerance {
			return rate, nil
		}
		deriv := npvDerivative(rate, flows)
		if deriv == 0 || math.IsNaN(deriv) {
			break
		}
		next := rate - npv/deriv
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -0.999 {
			break
		}
		if math.Abs(next-rate) < irrTolerance {
			return next, nil
		}
		rate = next
	}

	return irrBisect(flows)
}

// irrBisect brackets the root in (-0.99, 10) and bisects.
func irrBisect(flows []float64) (float64, error) {
	lo, hi := -0.99, 10.0
	fLo := NPV(lo, flows)
	fHi := NPV(hi, flows)
	if fLo*fHi > 0 {
		return 0, &models.ConvergenceError{
			Metric:       "IRR",
			Iterations:   irrMaxIterations,
			LastEstimate: 0,
			Tolerance:    irrTolerance,
		}
	}

	var mid float64
	for i := 0; i < 200; i++ {
		mid = (lo + hi) / 2
		fMid := NPV(mid, flows)
		if math.Abs(fMid) < irrTolerance || (hi-lo)/2 < irrTolerance {
			return mid, nil
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}

	return 0, &models.ConvergenceError{
		Metric:       "IRR",
		Iterations:   200,
		LastEstimate: mid,
		Tolerance:    irrTolerance,
	}
}

// signChange reports whether a series has both positive and negative
// flows; without one an IRR does not exist.
func signChange(flows []float64) bool {
	var pos, neg bool
	for _, cf := range flows {
		if cf > 0 {
			pos = true
		}
		if cf < 0 {
			neg = true
		}
	}
	return pos && neg
}

// simplePayback is net cost over first-year savings; +Inf when year-1
// savings are not positive.
func simplePayback(netCost, year1Savings float64) float64 {
	if year1Savings <= 0 {
		return math.Inf(1)
	}
	return netCost / year1Savings
}

// cumulativeROI is (sum of flows through year N - invested) / invested.
func cumulativeROI(invested float64, flows []float64, years int) float64 {
	if invested <= 0 {
		return 0
	}
	var cum float64
	for i := 0; i < len(flows) && i < years; i++ {
		cum += flows[i]
	}
	return (cum - invested) / invested
}

// moic is total distributions over capital invested.
func moic(invested float64, flows []float64) float64 {
	if invested <= 0 {
		return 0
	}
	var total float64
	for _, cf := range flows {
		total += cf
	}
	return total / invested
}

// minimumDSCR scans the pro forma for the lowest coverage year while
// debt is outstanding. Returns nil when the project carries no debt:
// "not applicable" must never be dressed up as a number.
func minimumDSCR(cashFlows []models.YearCashFlow) *float64 {
	var min *float64
	for i := range cashFlows {
		if cashFlows[i].DSCR == nil {
			continue
		}
		v := *cashFlows[i].DSCR
		if min == nil || v < *min {
			min = &v
		}
	}
	return min
}
