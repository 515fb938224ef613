// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
)

// ScenarioConfig is the subset of a scenario needed for plausibility checks.
// Rates are fractions.
type ScenarioConfig struct {
	Name                string
	Active              bool
	InitialCapital      float64
	MonthlyContribution float64
	AnnualReturnRate    float64
	AnnualInflationRate float64
	TargetCapital       float64
}

// ConfigValidator produces non-fatal warnings about a configuration. Hard
// errors are left to the projection engine.
type ConfigValidator struct {
	Scenarios []ScenarioConfig
}

// ValidateScenario returns warnings for inputs that are valid but unlikely
// to be what the user meant.
func ValidateScenario(s ScenarioConfig) []string {
	var warnings []string

	if s.AnnualReturnRate <= s.AnnualInflationRate && s.InitialCapital+s.MonthlyContribution > 0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' return rate does not exceed inflation - real capital will not grow",
			s.Name))
	}

	if s.MonthlyContribution == 0 && s.InitialCapital == 0 && s.TargetCapital > 0 {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' has no initial capital and no contributions - target cannot be reached",
			s.Name))
	}

	if s.TargetCapital > 0 && s.InitialCapital >= s.TargetCapital {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' initial capital already meets the target",
			s.Name))
	}

	return warnings
}

// ValidateAll validates every active scenario and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	activeCount := 0
	names := make(map[string]struct{})
	for _, scenario := range cv.Scenarios {
		if _, dup := names[scenario.Name]; dup {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
		}
		names[scenario.Name] = struct{}{}

		if !scenario.Active {
			continue
		}
		activeCount++
		warnings = append(warnings, ValidateScenario(scenario)...)
	}

	if activeCount == 0 {
		warnings = append(warnings, "No active scenarios - nothing will be simulated")
	}

	return warnings
}
