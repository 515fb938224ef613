package config

import (
	"fmt"

	"github.com/iwvelando/freedom-forecast/internal/projection"
)

// Profile describes the person the projection is for. All fields are
// optional; without a current age no lifespan is applied.
type Profile struct {
	CurrentAge     *int   `yaml:"currentAge,omitempty" mapstructure:"currentAge" json:"currentAge,omitempty"`
	Sex            string `yaml:"sex,omitempty" mapstructure:"sex" json:"sex,omitempty"`
	LifeExpectancy int    `yaml:"lifeExpectancy,omitempty" mapstructure:"lifeExpectancy" json:"lifeExpectancy,omitempty"`
}

// Lifespan resolves the profile into an engine lifespan. An explicit
// lifeExpectancy wins over the sex lookup.
func (p Profile) Lifespan() (*projection.Lifespan, error) {
	if p.CurrentAge == nil {
		return nil, nil
	}

	expectancy := p.LifeExpectancy
	if expectancy <= 0 {
		if p.Sex == "" {
			return nil, &projection.ValidationError{Field: "sex", Reason: "is required when currentAge is set without lifeExpectancy"}
		}
		var err error
		expectancy, err = projection.LifeExpectancyFor(p.Sex)
		if err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
	}

	return &projection.Lifespan{
		CurrentAge:     *p.CurrentAge,
		LifeExpectancy: expectancy,
	}, nil
}
