package projection

import (
	"fmt"
	"strings"

	"github.com/iwvelando/freedom-forecast/pkg/constants"
)

// Outlook relates a result to the expected lifetime. Feasible is a plain
// threshold: the target is reached with at least one year of expected life
// left. It is not a probability. AgeReached and RemainingLifeYears are zero
// when TargetReached is false, and ageReached is then left out of the JSON.
type Outlook struct {
	CurrentAge         int  `json:"currentAge"`
	LifeExpectancy     int  `json:"lifeExpectancy"`
	TargetReached      bool `json:"targetReached"`
	AgeReached         int  `json:"ageReached,omitempty"`
	RemainingLifeYears int  `json:"remainingLifeYears"`
	Feasible           bool `json:"feasible"`
}

// Outlook computes the age at which the target is reached (CurrentAge plus
// PeriodsRequired) and the expected years remaining after it. A zero or
// negative remainder, or an unreached target, is not feasible.
func (r Result) Outlook(l Lifespan) Outlook {
	o := Outlook{
		CurrentAge:     l.CurrentAge,
		LifeExpectancy: l.LifeExpectancy,
		TargetReached:  r.TargetReached,
	}
	if !r.TargetReached {
		return o
	}
	o.AgeReached = l.CurrentAge + r.PeriodsRequired
	o.RemainingLifeYears = l.LifeExpectancy - o.AgeReached
	o.Feasible = o.RemainingLifeYears > 0
	return o
}

// LifeExpectancyFor looks up the expected lifetime for a sex category.
func LifeExpectancyFor(sex string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(sex)) {
	case "male", "m":
		return constants.LifeExpectancyMale, nil
	case "female", "f":
		return constants.LifeExpectancyFemale, nil
	default:
		return 0, invalid("sex", fmt.Sprintf("must be male or female, got %q", sex))
	}
}
