// Package config defines the data structures related to configuration and
// includes functions for loading the config and turning scenarios into
// projection inputs.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/freedom-forecast/internal/projection"
	"github.com/iwvelando/freedom-forecast/pkg/format"
	"github.com/iwvelando/freedom-forecast/pkg/mathutil"
	"github.com/iwvelando/freedom-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for freedom-forecast.
type Configuration struct {
	Logging   LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging" json:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty" mapstructure:"output" json:"output,omitempty"`
	Currency  string        `yaml:"currency,omitempty" mapstructure:"currency" json:"currency,omitempty"`
	Profile   Profile       `yaml:"profile,omitempty" mapstructure:"profile" json:"profile,omitempty"`
	Solver    SolverConfig  `yaml:"solver,omitempty" mapstructure:"solver" json:"solver,omitempty"`
	Scenarios []Scenario    `yaml:"scenarios" mapstructure:"scenarios" json:"scenarios"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level" json:"level,omitempty"`                // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format" json:"format,omitempty"`             // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format" json:"format,omitempty"` // pretty, csv, json, markdown
}

// Scenario holds the savings plan and market assumptions of one projection.
// Rates are percentages, e.g. 7 for 7%.
type Scenario struct {
	Name                string  `yaml:"name" mapstructure:"name" json:"name"`
	Active              bool    `yaml:"active" mapstructure:"active" json:"active"`
	InitialCapital      float64 `yaml:"initialCapital" mapstructure:"initialCapital" json:"initialCapital"`
	MonthlyContribution float64 `yaml:"monthlyContribution" mapstructure:"monthlyContribution" json:"monthlyContribution"`
	AnnualReturnRate    float64 `yaml:"annualReturnRate" mapstructure:"annualReturnRate" json:"annualReturnRate"`
	AnnualInflationRate float64 `yaml:"annualInflationRate" mapstructure:"annualInflationRate" json:"annualInflationRate"`
	TargetCapital       float64 `yaml:"targetCapital" mapstructure:"targetCapital" json:"targetCapital"`
	MaxPeriods          int     `yaml:"maxPeriods,omitempty" mapstructure:"maxPeriods" json:"maxPeriods,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	configuration.Currency = format.NormalizeCurrency(configuration.Currency)
	configuration.Solver.Normalize()
	return &configuration, nil
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ToInput converts the scenario into an engine input, attaching the
// profile's lifespan when one is configured.
func (s Scenario) ToInput(profile Profile) (projection.Input, error) {
	lifespan, err := profile.Lifespan()
	if err != nil {
		return projection.Input{}, fmt.Errorf("scenario %s: %w", s.Name, err)
	}

	return projection.Input{
		InitialCapital:      s.InitialCapital,
		MonthlyContribution: s.MonthlyContribution,
		AnnualReturnRate:    mathutil.PercentToFraction(s.AnnualReturnRate),
		AnnualInflationRate: mathutil.PercentToFraction(s.AnnualInflationRate),
		TargetCapital:       s.TargetCapital,
		MaxPeriods:          s.MaxPeriods,
		Lifespan:            lifespan,
	}, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard input errors are reported by the projection engine.
func (c *Configuration) ValidateConfiguration() []string {
	scenarios := make([]validation.ScenarioConfig, 0, len(c.Scenarios))
	for _, scenario := range c.Scenarios {
		scenarios = append(scenarios, validation.ScenarioConfig{
			Name:                scenario.Name,
			Active:              scenario.Active,
			InitialCapital:      scenario.InitialCapital,
			MonthlyContribution: scenario.MonthlyContribution,
			AnnualReturnRate:    mathutil.PercentToFraction(scenario.AnnualReturnRate),
			AnnualInflationRate: mathutil.PercentToFraction(scenario.AnnualInflationRate),
			TargetCapital:       scenario.TargetCapital,
		})
	}

	validator := validation.ConfigValidator{Scenarios: scenarios}
	warnings := validator.ValidateAll()

	if c.Profile.CurrentAge == nil && (c.Profile.Sex != "" || c.Profile.LifeExpectancy > 0) {
		warnings = append(warnings, "Profile sets a life expectancy but no current age - remaining-life outlook disabled")
	}
	if c.Solver.Enabled && c.Solver.TargetYears == 0 && c.Profile.CurrentAge == nil {
		warnings = append(warnings, "Solver enabled without targetYears or a profile age - each scenario horizon is used")
	}

	return warnings
}
