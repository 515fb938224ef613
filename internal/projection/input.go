// Package projection implements the financial-independence projection
// engine: a bounded yearly recurrence of contributions and returns that stops
// as soon as the inflation-adjusted capital reaches the target.
package projection

import (
	"fmt"

	"github.com/iwvelando/freedom-forecast/pkg/constants"
	"github.com/iwvelando/freedom-forecast/pkg/mathutil"
	"go.uber.org/multierr"
)

// Input holds every parameter of a single simulation. Rates are fractions
// (0.07 for 7%). A zero MaxPeriods selects the default horizon.
type Input struct {
	InitialCapital      float64   `json:"initialCapital"`
	MonthlyContribution float64   `json:"monthlyContribution"`
	AnnualReturnRate    float64   `json:"annualReturnRate"`
	AnnualInflationRate float64   `json:"annualInflationRate"`
	TargetCapital       float64   `json:"targetCapital"`
	MaxPeriods          int       `json:"maxPeriods,omitempty"`
	Lifespan            *Lifespan `json:"lifespan,omitempty"`
}

// Lifespan carries the optional age information used to bound the horizon
// and to derive the remaining-life outlook.
type Lifespan struct {
	CurrentAge     int `json:"currentAge"`
	LifeExpectancy int `json:"lifeExpectancy"`
}

// Horizon returns the number of periods left in the expected lifetime,
// counting the current year, capped at MaxLifespanPeriods and never below 1.
func (l Lifespan) Horizon() int {
	return mathutil.MaxInt(1, mathutil.MinInt(constants.MaxLifespanPeriods, l.LifeExpectancy-l.CurrentAge+1))
}

// Horizon returns the number of periods Simulate will run at most. It never
// exceeds DefaultMaxPeriods.
func Horizon(in Input) int {
	bound := in.MaxPeriods
	if bound <= 0 || bound > constants.DefaultMaxPeriods {
		bound = constants.DefaultMaxPeriods
	}
	if in.Lifespan != nil {
		bound = mathutil.MinInt(bound, in.Lifespan.Horizon())
	}
	return bound
}

// Validate checks the input and returns every violation found, combined into
// one error. Each violation is a *ValidationError.
func Validate(in Input) error {
	var err error
	err = multierr.Append(err, checkAmount("initialCapital", in.InitialCapital))
	err = multierr.Append(err, checkAmount("monthlyContribution", in.MonthlyContribution))
	err = multierr.Append(err, checkAmount("targetCapital", in.TargetCapital))
	err = multierr.Append(err, checkRate("annualReturnRate", in.AnnualReturnRate))
	err = multierr.Append(err, checkRate("annualInflationRate", in.AnnualInflationRate))
	if in.MaxPeriods < 0 || in.MaxPeriods > constants.DefaultMaxPeriods {
		err = multierr.Append(err, invalid("maxPeriods",
			fmt.Sprintf("must be between 0 and %d, got %d", constants.DefaultMaxPeriods, in.MaxPeriods)))
	}
	if in.Lifespan != nil {
		err = multierr.Append(err, in.Lifespan.validate())
	}
	return err
}

func (l Lifespan) validate() error {
	var err error
	if l.CurrentAge < 0 || l.CurrentAge > constants.MaxAge {
		err = multierr.Append(err, invalid("currentAge",
			fmt.Sprintf("must be between 0 and %d, got %d", constants.MaxAge, l.CurrentAge)))
	}
	if l.LifeExpectancy <= 0 {
		err = multierr.Append(err, invalid("lifeExpectancy",
			fmt.Sprintf("must be positive, got %d", l.LifeExpectancy)))
	}
	return err
}

func checkAmount(field string, value float64) error {
	if !mathutil.IsFinite(value) {
		return invalid(field, "must be a finite number")
	}
	if value < 0 {
		return invalid(field, fmt.Sprintf("must not be negative, got %.2f", value))
	}
	return nil
}

func checkRate(field string, value float64) error {
	if !mathutil.IsFinite(value) {
		return invalid(field, "must be a finite number")
	}
	if value < 0 || value >= 1 {
		return invalid(field, fmt.Sprintf("must be in [0, 1), got %g", value))
	}
	return nil
}
