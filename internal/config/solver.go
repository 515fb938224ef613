package config

import (
	"fmt"

	"github.com/iwvelando/freedom-forecast/pkg/constants"
)

// SolverConfig enables the contribution solver, which searches for the
// smallest monthly contribution that reaches each scenario's target within
// TargetYears. A zero TargetYears uses the scenario horizon.
type SolverConfig struct {
	Enabled         bool    `yaml:"enabled,omitempty" mapstructure:"enabled" json:"enabled,omitempty"`
	TargetYears     int     `yaml:"targetYears,omitempty" mapstructure:"targetYears" json:"targetYears,omitempty"`
	MaxContribution float64 `yaml:"maxContribution,omitempty" mapstructure:"maxContribution" json:"maxContribution,omitempty"`
	Tolerance       float64 `yaml:"tolerance,omitempty" mapstructure:"tolerance" json:"tolerance,omitempty"`
	MaxIterations   int     `yaml:"maxIterations,omitempty" mapstructure:"maxIterations" json:"maxIterations,omitempty"`
}

// Normalize ensures defaults are applied before validation.
func (s *SolverConfig) Normalize() {
	if s == nil {
		return
	}
	if s.Tolerance <= 0 {
		s.Tolerance = constants.DefaultSolverTolerance
	}
	if s.MaxIterations <= 0 {
		s.MaxIterations = constants.DefaultSolverMaxIterations
	}
}

// Validate checks that the solver directive is coherent.
func (s *SolverConfig) Validate() error {
	if s == nil {
		return fmt.Errorf("solver configuration cannot be nil")
	}
	if s.TargetYears < 0 || s.TargetYears > constants.DefaultMaxPeriods {
		return fmt.Errorf("solver targetYears must be between 0 and %d, got %d", constants.DefaultMaxPeriods, s.TargetYears)
	}
	if s.MaxContribution < 0 {
		return fmt.Errorf("solver maxContribution must not be negative, got %.2f", s.MaxContribution)
	}
	if s.Tolerance <= 0 {
		return fmt.Errorf("solver tolerance must be positive, got %g", s.Tolerance)
	}
	if s.MaxIterations <= 0 {
		return fmt.Errorf("solver maxIterations must be positive, got %d", s.MaxIterations)
	}
	return nil
}
