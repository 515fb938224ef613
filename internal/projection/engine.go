package projection

import (
	"math"

	"github.com/iwvelando/freedom-forecast/pkg/constants"
)

// Result is the year-indexed capital trajectory of one simulation. The three
// series always have the same length; when the target is reached they stop
// at the first period whose real capital meets it.
type Result struct {
	Years           []int     `json:"years"`
	Nominal         []float64 `json:"nominal"`
	Real            []float64 `json:"real"`
	PeriodsRequired int       `json:"periodsRequired"`
	TargetReached   bool      `json:"targetReached"`
	Horizon         int       `json:"horizon"`
}

// Simulate validates in and runs the accumulation recurrence:
//
//	nominal[0] = initial + 12*monthly, real[0] = nominal[0]
//	nominal[i] = (nominal[i-1] + 12*monthly) * (1 + return)
//	real[i]    = nominal[i] / (1 + inflation)^(i+1)
//
// The target is compared against real capital only. If it is never met the
// full series up to the horizon is returned with TargetReached false and
// PeriodsRequired equal to the horizon.
func Simulate(in Input) (Result, error) {
	if err := Validate(in); err != nil {
		return Result{}, err
	}

	horizon := Horizon(in)
	annualContribution := in.MonthlyContribution * constants.MonthsPerYear
	growth := 1 + in.AnnualReturnRate
	inflation := 1 + in.AnnualInflationRate

	result := Result{
		Years:   make([]int, 0, horizon),
		Nominal: make([]float64, 0, horizon),
		Real:    make([]float64, 0, horizon),
		Horizon: horizon,
	}

	var capital float64
	for i := 0; i < horizon; i++ {
		var adjusted float64
		if i == 0 {
			capital = in.InitialCapital + annualContribution
			adjusted = capital
		} else {
			capital = (capital + annualContribution) * growth
			adjusted = capital / math.Pow(inflation, float64(i+1))
		}

		result.Years = append(result.Years, i+1)
		result.Nominal = append(result.Nominal, capital)
		result.Real = append(result.Real, adjusted)

		if adjusted >= in.TargetCapital {
			result.TargetReached = true
			result.PeriodsRequired = i + 1
			return result, nil
		}
	}

	result.PeriodsRequired = horizon
	return result, nil
}

// Len returns the number of simulated periods.
func (r Result) Len() int {
	return len(r.Years)
}

// TargetPoint returns the period label and real capital at PeriodsRequired,
// the point a chart annotates.
func (r Result) TargetPoint() (int, float64) {
	if r.Len() == 0 {
		return 0, 0
	}
	i := r.PeriodsRequired - 1
	return r.Years[i], r.Real[i]
}

// Final returns the last nominal and real capital values.
func (r Result) Final() (nominal, adjusted float64) {
	if r.Len() == 0 {
		return 0, 0
	}
	last := r.Len() - 1
	return r.Nominal[last], r.Real[last]
}
