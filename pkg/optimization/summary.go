// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single contribution solve.
type Summary struct {
	Scope           string   `json:"scope"`
	TargetName      string   `json:"targetName"`
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	TargetYears     int      `json:"targetYears"`
	PeriodsRequired int      `json:"periodsRequired"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}

// Delta returns how much the solved value differs from the original.
func (s Summary) Delta() float64 {
	return s.Value - s.Original
}
