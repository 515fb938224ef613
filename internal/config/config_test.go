package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfigYAML = `
logging:
  level: debug
  format: console
output:
  format: csv
currency: usd
profile:
  currentAge: 30
  sex: female
solver:
  enabled: true
  targetYears: 20
scenarios:
  - name: base
    active: true
    initialCapital: 1000
    monthlyContribution: 500
    annualReturnRate: 7
    annualInflationRate: 2
    targetCapital: 1000000
    maxPeriods: 60
  - name: dormant
    active: false
    monthlyContribution: 100
    annualReturnRate: 5
    annualInflationRate: 3
    targetCapital: 500000
`

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Example configuration",
			configPath: filepath.Join("..", "..", "config.yaml.example"),
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationExample(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join("..", "..", "config.yaml.example"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if len(conf.Scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(conf.Scenarios))
	}
	if len(conf.ActiveScenarios()) != 2 {
		t.Errorf("expected 2 active scenarios, got %d", len(conf.ActiveScenarios()))
	}
	if conf.Currency != "CLP" {
		t.Errorf("expected currency CLP, got %s", conf.Currency)
	}
	if conf.Profile.CurrentAge == nil || *conf.Profile.CurrentAge != 30 {
		t.Errorf("expected profile current age 30, got %v", conf.Profile.CurrentAge)
	}

	input, err := conf.Scenarios[0].ToInput(conf.Profile)
	if err != nil {
		t.Fatalf("ToInput() error = %v", err)
	}
	if input.Lifespan == nil || input.Lifespan.LifeExpectancy != 80 {
		t.Errorf("expected male life expectancy 80, got %+v", input.Lifespan)
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfigYAML), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	assertTestConfig(t, conf)
}

func TestLoadConfigurationFromReader(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(testConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	assertTestConfig(t, conf)
}

func TestLoadConfigurationFromReaderInvalidYAML(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("scenarios: [unterminated")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func assertTestConfig(t *testing.T, conf *Configuration) {
	t.Helper()

	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("unexpected logging config %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("expected output format csv, got %s", conf.Output.Format)
	}
	if conf.Currency != "USD" {
		t.Errorf("expected normalized currency USD, got %s", conf.Currency)
	}
	if !conf.Solver.Enabled || conf.Solver.TargetYears != 20 {
		t.Errorf("unexpected solver config %+v", conf.Solver)
	}
	if conf.Solver.Tolerance <= 0 || conf.Solver.MaxIterations <= 0 {
		t.Errorf("expected solver defaults to be applied, got %+v", conf.Solver)
	}
	if len(conf.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(conf.Scenarios))
	}

	base := conf.Scenarios[0]
	if base.Name != "base" || !base.Active {
		t.Errorf("unexpected first scenario %+v", base)
	}
	if base.InitialCapital != 1000 || base.MonthlyContribution != 500 || base.TargetCapital != 1000000 {
		t.Errorf("unexpected amounts in first scenario %+v", base)
	}
	if base.MaxPeriods != 60 {
		t.Errorf("expected maxPeriods 60, got %d", base.MaxPeriods)
	}
	if conf.Scenarios[1].Active {
		t.Errorf("expected second scenario to be inactive")
	}
}

func TestScenarioToInput(t *testing.T) {
	age := 40
	scenario := Scenario{
		Name:                "base",
		InitialCapital:      2500,
		MonthlyContribution: 300,
		AnnualReturnRate:    6.5,
		AnnualInflationRate: 3,
		TargetCapital:       750000,
		MaxPeriods:          30,
	}

	input, err := scenario.ToInput(Profile{CurrentAge: &age, LifeExpectancy: 90})
	if err != nil {
		t.Fatalf("ToInput() error = %v", err)
	}

	if math.Abs(input.AnnualReturnRate-0.065) > 1e-12 {
		t.Errorf("AnnualReturnRate = %v, expected 0.065", input.AnnualReturnRate)
	}
	if math.Abs(input.AnnualInflationRate-0.03) > 1e-12 {
		t.Errorf("AnnualInflationRate = %v, expected 0.03", input.AnnualInflationRate)
	}
	if input.InitialCapital != 2500 || input.MonthlyContribution != 300 || input.TargetCapital != 750000 {
		t.Errorf("amounts not carried over: %+v", input)
	}
	if input.MaxPeriods != 30 {
		t.Errorf("MaxPeriods = %d, expected 30", input.MaxPeriods)
	}
	if input.Lifespan == nil || input.Lifespan.CurrentAge != 40 || input.Lifespan.LifeExpectancy != 90 {
		t.Errorf("unexpected lifespan %+v", input.Lifespan)
	}
}

func TestScenarioToInputWithoutProfile(t *testing.T) {
	input, err := Scenario{Name: "plain", AnnualReturnRate: 7}.ToInput(Profile{})
	if err != nil {
		t.Fatalf("ToInput() error = %v", err)
	}
	if input.Lifespan != nil {
		t.Errorf("expected no lifespan without a current age, got %+v", input.Lifespan)
	}
}

func TestProfileLifespan(t *testing.T) {
	age := 30
	tests := []struct {
		name           string
		profile        Profile
		wantNil        bool
		wantExpectancy int
		wantError      bool
	}{
		{"No age", Profile{Sex: "male"}, true, 0, false},
		{"Male lookup", Profile{CurrentAge: &age, Sex: "male"}, false, 80, false},
		{"Female lookup", Profile{CurrentAge: &age, Sex: "female"}, false, 85, false},
		{"Override wins", Profile{CurrentAge: &age, Sex: "male", LifeExpectancy: 92}, false, 92, false},
		{"Missing sex and override", Profile{CurrentAge: &age}, false, 0, true},
		{"Unknown sex", Profile{CurrentAge: &age, Sex: "x"}, false, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lifespan, err := tt.profile.Lifespan()
			if tt.wantError {
				if err == nil {
					t.Errorf("Lifespan() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Lifespan() error = %v", err)
			}
			if tt.wantNil {
				if lifespan != nil {
					t.Errorf("Lifespan() = %+v, expected nil", lifespan)
				}
				return
			}
			if lifespan == nil {
				t.Fatal("Lifespan() returned nil")
			}
			if lifespan.LifeExpectancy != tt.wantExpectancy {
				t.Errorf("LifeExpectancy = %d, expected %d", lifespan.LifeExpectancy, tt.wantExpectancy)
			}
			if lifespan.CurrentAge != age {
				t.Errorf("CurrentAge = %d, expected %d", lifespan.CurrentAge, age)
			}
		})
	}
}

func TestValidateConfiguration(t *testing.T) {
	conf := &Configuration{
		Profile: Profile{Sex: "female"},
		Scenarios: []Scenario{
			{Name: "base", Active: true, MonthlyContribution: 500, AnnualReturnRate: 7, AnnualInflationRate: 2, TargetCapital: 1000000},
			{Name: "flat", Active: true, MonthlyContribution: 500, AnnualReturnRate: 2, AnnualInflationRate: 2, TargetCapital: 1000000},
		},
	}

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "flat") {
		t.Errorf("expected inflation warning for flat scenario, got %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "no current age") {
		t.Errorf("expected profile warning, got %q", warnings[1])
	}
}

func TestSolverConfigNormalizeAndValidate(t *testing.T) {
	solver := SolverConfig{Enabled: true}
	solver.Normalize()
	if err := solver.Validate(); err != nil {
		t.Fatalf("Validate() after Normalize() error = %v", err)
	}

	invalid := []SolverConfig{
		{TargetYears: -1, Tolerance: 1, MaxIterations: 1},
		{TargetYears: 201, Tolerance: 1, MaxIterations: 1},
		{MaxContribution: -5, Tolerance: 1, MaxIterations: 1},
		{Tolerance: 0, MaxIterations: 1},
		{Tolerance: 1, MaxIterations: 0},
	}
	for i, cfg := range invalid {
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: expected validation error for %+v", i, cfg)
		}
	}

	var nilSolver *SolverConfig
	nilSolver.Normalize()
	if err := nilSolver.Validate(); err == nil {
		t.Error("expected error for nil solver config")
	}
}
