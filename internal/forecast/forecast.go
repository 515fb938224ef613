// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts of every configured scenario.
package forecast

import (
	"fmt"

	"github.com/iwvelando/freedom-forecast/internal/config"
	"github.com/iwvelando/freedom-forecast/internal/optimizer"
	"github.com/iwvelando/freedom-forecast/internal/projection"
	"github.com/iwvelando/freedom-forecast/pkg/optimization"
	"go.uber.org/zap"
)

// Forecast holds all information related to a specific forecast.
type Forecast struct {
	Name     string                `json:"name"`
	Currency string                `json:"currency"`
	Input    projection.Input      `json:"input"`
	Result   projection.Result     `json:"result"`
	Outlook  *projection.Outlook   `json:"outlook,omitempty"`
	Solver   *optimization.Summary `json:"solver,omitempty"`
}

// GetForecast processes the Forecasts for all active Scenarios.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var runner *optimizer.Runner
	if conf.Solver.Enabled {
		var err error
		runner, err = optimizer.NewRunner(logger, conf.Solver)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize solver: %w", err)
		}
	}

	var results []Forecast
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}

		input, err := scenario.ToInput(conf.Profile)
		if err != nil {
			return results, err
		}

		result, err := simulate(logger, scenario.Name, input, conf.Currency)
		if err != nil {
			return results, err
		}

		if runner != nil {
			summary, err := runner.SolveContribution(scenario.Name, input, 0, conf.Currency)
			if err != nil {
				return results, fmt.Errorf("scenario %s: %w", scenario.Name, err)
			}
			result.Solver = &summary
		}

		results = append(results, result)
	}

	return results, nil
}

// Compare runs the first active scenario once per variant, overriding its
// monthly contribution and return rate. Each run is independent.
func Compare(logger *zap.Logger, conf config.Configuration, variants []projection.Variant) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	active := conf.ActiveScenarios()
	if len(active) == 0 {
		return nil, fmt.Errorf("no active scenario to compare against")
	}
	base, err := active[0].ToInput(conf.Profile)
	if err != nil {
		return nil, err
	}

	runs, err := projection.Compare(base, variants)
	if err != nil {
		return nil, err
	}

	results := make([]Forecast, 0, len(runs))
	for _, run := range runs {
		forecast := newForecast(run.Name, run.Input, run.Result, conf.Currency)
		logRun(logger, "forecast.Compare", forecast)
		results = append(results, forecast)
	}
	return results, nil
}

// Simulate wraps a single engine run with logging and the remaining-life
// outlook.
func Simulate(logger *zap.Logger, name string, input projection.Input, currency string) (Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return simulate(logger, name, input, currency)
}

func simulate(logger *zap.Logger, name string, input projection.Input, currency string) (Forecast, error) {
	result, err := projection.Simulate(input)
	if err != nil {
		logger.Warn("rejected simulation input",
			zap.String("op", "forecast.Simulate"),
			zap.String("scenario", name),
			zap.Error(err),
		)
		return Forecast{}, fmt.Errorf("scenario %s: %w", name, err)
	}

	forecast := newForecast(name, input, result, currency)
	logRun(logger, "forecast.Simulate", forecast)
	return forecast, nil
}

func newForecast(name string, input projection.Input, result projection.Result, currency string) Forecast {
	forecast := Forecast{
		Name:     name,
		Currency: currency,
		Input:    input,
		Result:   result,
	}
	if input.Lifespan != nil {
		outlook := result.Outlook(*input.Lifespan)
		forecast.Outlook = &outlook
	}
	return forecast
}

func logRun(logger *zap.Logger, op string, f Forecast) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("scenario", f.Name),
		zap.Int("horizon", f.Result.Horizon),
		zap.Int("periodsRequired", f.Result.PeriodsRequired),
		zap.Bool("targetReached", f.Result.TargetReached),
	}
	if f.Outlook != nil {
		fields = append(fields,
			zap.Int("ageReached", f.Outlook.AgeReached),
			zap.Int("remainingLifeYears", f.Outlook.RemainingLifeYears),
			zap.Bool("feasible", f.Outlook.Feasible),
		)
	}
	logger.Debug("simulation complete", fields...)
}
