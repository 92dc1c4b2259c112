package fuzz

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SystemSpec is the declarative description consumed by NewSystem. Specs are
// plain data: they can be written in code, loaded from YAML, or serialized
// back out for API clients.
type SystemSpec struct {
	Variables []VariableSpec `yaml:"variables" json:"variables"`
	Rules     []RuleSpec     `yaml:"rules" json:"rules"`
}

type VariableSpec struct {
	Name  string     `yaml:"name" json:"name"`
	Role  Role       `yaml:"role" json:"role"`
	Min   float64    `yaml:"min" json:"min"`
	Max   float64    `yaml:"max" json:"max"`
	Step  float64    `yaml:"step" json:"step"`
	Terms []TermSpec `yaml:"terms" json:"terms"`
}

// TermSpec describes one membership function. Shape is "triangular" (three
// points) or "trapezoidal" (four points).
type TermSpec struct {
	Name   string    `yaml:"name" json:"name"`
	Shape  string    `yaml:"shape" json:"shape"`
	Points []float64 `yaml:"points" json:"points"`
}

// RuleSpec pairs a DSL antecedent with its consequents. A zero Weight means
// the default of 1.0.
type RuleSpec struct {
	If     string           `yaml:"if" json:"if"`
	Then   []ConsequentSpec `yaml:"then" json:"then"`
	Weight float64          `yaml:"weight,omitempty" json:"weight,omitempty"`
}

type ConsequentSpec struct {
	Variable string `yaml:"variable" json:"variable"`
	Term     string `yaml:"term" json:"term"`
}

// LoadSpec reads a SystemSpec from a YAML file.
func LoadSpec(path string) (SystemSpec, error) {
	var spec SystemSpec
	data, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("read system spec: %w", err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("parse system spec: %w", err)
	}
	return spec, nil
}

func (ts TermSpec) membership() (MembershipFunction, error) {
	switch ts.Shape {
	case "triangular", "tri":
		if len(ts.Points) != 3 {
			return nil, fmt.Errorf("triangular term needs 3 points, got %d", len(ts.Points))
		}
		mf := Triangular{A: ts.Points[0], B: ts.Points[1], C: ts.Points[2]}
		if err := mf.validate(); err != nil {
			return nil, err
		}
		return mf, nil
	case "trapezoidal", "trap":
		if len(ts.Points) != 4 {
			return nil, fmt.Errorf("trapezoidal term needs 4 points, got %d", len(ts.Points))
		}
		mf := Trapezoidal{A: ts.Points[0], B: ts.Points[1], C: ts.Points[2], D: ts.Points[3]}
		if err := mf.validate(); err != nil {
			return nil, err
		}
		return mf, nil
	default:
		return nil, fmt.Errorf("unknown membership shape %q", ts.Shape)
	}
}
