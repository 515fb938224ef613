package projection

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLifeExpectancyFor(t *testing.T) {
	tests := []struct {
		sex       string
		want      int
		expectErr bool
	}{
		{"male", 80, false},
		{"Female", 85, false},
		{" M ", 80, false},
		{"f", 85, false},
		{"", 0, true},
		{"other", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.sex, func(t *testing.T) {
			got, err := LifeExpectancyFor(tt.sex)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("LifeExpectancyFor(%q) expected error", tt.sex)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LifeExpectancyFor(%q) returned error: %v", tt.sex, err)
			}
			if got != tt.want {
				t.Errorf("LifeExpectancyFor(%q) = %d, want %d", tt.sex, got, tt.want)
			}
		})
	}
}

func TestOutlookRequiresReachedTarget(t *testing.T) {
	result := Result{PeriodsRequired: 10, TargetReached: false}
	outlook := result.Outlook(Lifespan{CurrentAge: 20, LifeExpectancy: 80})
	if outlook.TargetReached {
		t.Error("TargetReached = true, want false")
	}
	if outlook.AgeReached != 0 || outlook.RemainingLifeYears != 0 {
		t.Errorf("AgeReached = %d, RemainingLifeYears = %d, want both zero", outlook.AgeReached, outlook.RemainingLifeYears)
	}
	if outlook.Feasible {
		t.Error("expected unreached target to be infeasible")
	}

	data, err := json.Marshal(outlook)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if strings.Contains(string(data), "ageReached") {
		t.Errorf("expected ageReached to be omitted, got %s", data)
	}
}
