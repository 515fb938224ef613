// Package optimizer searches for the smallest monthly contribution that
// reaches a scenario's target within a given number of years.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/freedom-forecast/internal/config"
	"github.com/iwvelando/freedom-forecast/internal/projection"
	"github.com/iwvelando/freedom-forecast/pkg/constants"
	"github.com/iwvelando/freedom-forecast/pkg/format"
	"github.com/iwvelando/freedom-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// FieldMonthlyContribution is the only field the solver adjusts.
const FieldMonthlyContribution = "monthlyContribution"

// maxDoublings bounds the search for a feasible upper contribution.
const maxDoublings = 64

// Runner solves contributions for scenarios.
type Runner struct {
	logger *zap.Logger
	conf   config.SolverConfig
}

type evaluation struct {
	contribution    float64
	reached         bool
	periodsRequired int
}

// NewRunner constructs a Runner for the provided solver configuration.
func NewRunner(logger *zap.Logger, conf config.SolverConfig) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	conf.Normalize()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// SolveContribution bisects the monthly contribution of in until the target
// is reached within years periods (the input horizon when years is zero).
// A target that cannot be reached within the bounds yields a summary with
// Converged false and a note rather than an error.
func (r *Runner) SolveContribution(name string, in projection.Input, years int, currency string) (optimization.Summary, error) {
	if years <= 0 {
		years = r.conf.TargetYears
	}
	if years <= 0 {
		years = projection.Horizon(in)
	}
	in.MaxPeriods = years

	summary := optimization.Summary{
		Scope:           "scenario",
		TargetName:      name,
		Field:           FieldMonthlyContribution,
		Original:        in.MonthlyContribution,
		OriginalDisplay: format.Currency(in.MonthlyContribution, currency),
		TargetYears:     years,
	}

	lower, err := r.evaluate(in, 0)
	if err != nil {
		return summary, err
	}
	if lower.reached {
		summary.Value = 0
		summary.ValueDisplay = format.Currency(0, currency)
		summary.PeriodsRequired = lower.periodsRequired
		summary.Converged = true
		summary.Notes = []string{"target is reached without monthly contributions"}
		r.log(summary)
		return summary, nil
	}

	upper, err := r.upperBound(in)
	if err != nil {
		return summary, err
	}
	if !upper.reached {
		summary.Value = upper.contribution
		summary.ValueDisplay = format.Currency(upper.contribution, currency)
		summary.PeriodsRequired = upper.periodsRequired
		summary.Notes = []string{fmt.Sprintf("unable to reach target within %d years for contributions up to %s",
			years, format.Currency(upper.contribution, currency))}
		r.log(summary)
		return summary, nil
	}

	lo, hi := lower, upper
	iterations := 0
	for hi.contribution-lo.contribution > r.conf.Tolerance && iterations < r.conf.MaxIterations {
		iterations++
		mid, err := r.evaluate(in, (lo.contribution+hi.contribution)/2)
		if err != nil {
			return summary, err
		}
		if mid.reached {
			hi = mid
		} else {
			lo = mid
		}
	}

	// Rounding up to whole cents keeps the contribution feasible.
	value := math.Ceil(hi.contribution*constants.DecimalPrecision) / constants.DecimalPrecision
	final, err := r.evaluate(in, value)
	if err != nil {
		return summary, err
	}

	summary.Value = value
	summary.ValueDisplay = format.Currency(value, currency)
	summary.PeriodsRequired = final.periodsRequired
	summary.Iterations = iterations
	summary.Converged = final.reached && hi.contribution-lo.contribution <= r.conf.Tolerance
	if !summary.Converged {
		summary.Notes = append(summary.Notes, fmt.Sprintf("stopped after %d iterations", iterations))
	}
	r.log(summary)
	return summary, nil
}

func (r *Runner) upperBound(in projection.Input) (evaluation, error) {
	if r.conf.MaxContribution > 0 {
		return r.evaluate(in, r.conf.MaxContribution)
	}

	contribution := math.Max(in.MonthlyContribution, 1)
	var eval evaluation
	var err error
	for i := 0; i < maxDoublings; i++ {
		eval, err = r.evaluate(in, contribution)
		if err != nil || eval.reached {
			return eval, err
		}
		contribution *= 2
	}
	return eval, nil
}

func (r *Runner) evaluate(in projection.Input, contribution float64) (evaluation, error) {
	in.MonthlyContribution = contribution
	result, err := projection.Simulate(in)
	if err != nil {
		return evaluation{}, fmt.Errorf("solver evaluation at %.2f failed: %w", contribution, err)
	}
	return evaluation{
		contribution:    contribution,
		reached:         result.TargetReached,
		periodsRequired: result.PeriodsRequired,
	}, nil
}

func (r *Runner) log(summary optimization.Summary) {
	r.logger.Info("solver adjusted monthly contribution",
		zap.String("op", "optimizer.SolveContribution"),
		zap.String("scenario", summary.TargetName),
		zap.Float64("originalNumeric", summary.Original),
		zap.Float64("optimizedNumeric", summary.Value),
		zap.Int("targetYears", summary.TargetYears),
		zap.Int("periodsRequired", summary.PeriodsRequired),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)
}
