package fuzz

import (
	"fmt"
	"math"
)

// Universe is the bounded, discretized range a variable is defined over.
// Sampling is step-based and inclusive of both endpoints, so a universe of
// [0,10] with step 1 yields 11 samples.
type Universe struct {
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
	Step float64 `yaml:"step" json:"step"`
}

func (u Universe) validate() error {
	if u.Min >= u.Max {
		return fmt.Errorf("min %v must be less than max %v", u.Min, u.Max)
	}
	if u.Step <= 0 {
		return fmt.Errorf("step %v must be positive", u.Step)
	}
	span := u.Max - u.Min
	n := math.Round(span / u.Step)
	if math.Abs(n*u.Step-span) > 1e-9 {
		return fmt.Errorf("step %v does not evenly divide [%v,%v]", u.Step, u.Min, u.Max)
	}
	return nil
}

// Samples materializes the sample grid, endpoints included.
func (u Universe) Samples() []float64 {
	n := int(math.Round((u.Max-u.Min)/u.Step)) + 1
	xs := make([]float64, n)
	for i := 0; i < n-1; i++ {
		xs[i] = u.Min + float64(i)*u.Step
	}
	xs[n-1] = u.Max
	return xs
}

// Midpoint is the center of the universe, used as the defuzzification
// fallback when an aggregated set is identically zero.
func (u Universe) Midpoint() float64 {
	return (u.Min + u.Max) / 2
}
