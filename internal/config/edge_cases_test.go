package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/freedom-forecast/internal/projection"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "currency: CLP\nscenarios: []\n")
	t.Setenv("CURRENCY", "usd")

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if conf.Currency != "USD" {
		t.Errorf("expected environment currency USD, got %q", conf.Currency)
	}
}

func TestLoadConfigurationDefaults(t *testing.T) {
	conf, err := LoadConfiguration(writeConfig(t, "scenarios:\n  - name: bare\n    active: true\n"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Currency != "CLP" {
		t.Errorf("expected default currency CLP, got %q", conf.Currency)
	}
	if conf.Profile.CurrentAge != nil {
		t.Errorf("expected no current age, got %d", *conf.Profile.CurrentAge)
	}
	if conf.Solver.Tolerance <= 0 || conf.Solver.MaxIterations <= 0 {
		t.Errorf("expected solver defaults to be applied, got %+v", conf.Solver)
	}

	input, err := conf.Scenarios[0].ToInput(conf.Profile)
	if err != nil {
		t.Fatalf("ToInput() error = %v", err)
	}
	if input.Lifespan != nil || input.AnnualReturnRate != 0 || input.MaxPeriods != 0 {
		t.Errorf("expected zero-valued input, got %+v", input)
	}
}

func TestProfileAgeZeroIsAnAge(t *testing.T) {
	conf, err := LoadConfigurationFromReader(strings.NewReader(`
profile:
  currentAge: 0
  sex: female
scenarios: []
`))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	lifespan, err := conf.Profile.Lifespan()
	if err != nil {
		t.Fatalf("Lifespan() error = %v", err)
	}
	if lifespan == nil || lifespan.CurrentAge != 0 || lifespan.LifeExpectancy != 85 {
		t.Errorf("expected a newborn lifespan to 85, got %+v", lifespan)
	}
}

func TestProfileErrorsAreInvalidInput(t *testing.T) {
	age := 40
	tests := []Profile{
		{CurrentAge: &age},
		{CurrentAge: &age, Sex: "unknown"},
	}

	for _, profile := range tests {
		if _, err := profile.Lifespan(); !errors.Is(err, projection.ErrInvalidInput) {
			t.Errorf("Lifespan(%+v) error = %v, expected ErrInvalidInput", profile, err)
		}
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	tests := []struct {
		name string
		conf Configuration
		want string
	}{
		{
			name: "no scenarios",
			conf: Configuration{},
			want: "No active scenarios",
		},
		{
			name: "duplicate names",
			conf: Configuration{Scenarios: []Scenario{
				{Name: "a", Active: true, MonthlyContribution: 1, AnnualReturnRate: 7, TargetCapital: 10},
				{Name: "a", MonthlyContribution: 1, TargetCapital: 10},
			}},
			want: "used more than once",
		},
		{
			name: "return below inflation",
			conf: Configuration{Scenarios: []Scenario{
				{Name: "flat", Active: true, MonthlyContribution: 100, AnnualReturnRate: 2, AnnualInflationRate: 3, TargetCapital: 1000},
			}},
			want: "does not exceed inflation",
		},
		{
			name: "life expectancy without age",
			conf: Configuration{
				Profile:   Profile{Sex: "male"},
				Scenarios: []Scenario{{Name: "a", Active: true, MonthlyContribution: 1, AnnualReturnRate: 7, TargetCapital: 10}},
			},
			want: "no current age",
		},
		{
			name: "solver without horizon",
			conf: Configuration{
				Solver:    SolverConfig{Enabled: true},
				Scenarios: []Scenario{{Name: "a", Active: true, MonthlyContribution: 1, AnnualReturnRate: 7, TargetCapital: 10}},
			},
			want: "each scenario horizon is used",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := tt.conf.ValidateConfiguration()
			found := false
			for _, warning := range warnings {
				if strings.Contains(warning, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected a warning containing %q, got %v", tt.want, warnings)
			}
		})
	}
}
