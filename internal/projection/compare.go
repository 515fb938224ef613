package projection

import "fmt"

// Variant overrides the contribution and return rate of a base input.
type Variant struct {
	Name                string  `json:"name"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	AnnualReturnRate    float64 `json:"annualReturnRate"`
}

// ScenarioResult pairs a named input with its simulation.
type ScenarioResult struct {
	Name   string `json:"name"`
	Input  Input  `json:"input"`
	Result Result `json:"result"`
}

// Compare simulates each variant independently against base. Results keep
// the order of variants.
func Compare(base Input, variants []Variant) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, 0, len(variants))
	for i, v := range variants {
		in := base
		in.MonthlyContribution = v.MonthlyContribution
		in.AnnualReturnRate = v.AnnualReturnRate

		name := v.Name
		if name == "" {
			name = fmt.Sprintf("scenario %d", i+1)
		}

		res, err := Simulate(in)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", name, err)
		}
		results = append(results, ScenarioResult{Name: name, Input: in, Result: res})
	}
	return results, nil
}
