// Package fuzz implements a Mamdani fuzzy inference engine: linguistic
// variables with triangular and trapezoidal membership functions, a rule base
// combining them with fuzzy and/or/not, min-implication, max-aggregation, and
// five defuzzification methods over a discretized universe.
//
// A System is compiled once from a declarative SystemSpec and is immutable
// afterwards: every (variable, term) reference is resolved to an index at
// build time, so evaluation performs no string lookups and independent
// evaluations can run concurrently against the same System.
package fuzz

import "fmt"

// System is the compiled, read-only inference system.
type System struct {
	spec    SystemSpec
	inputs  []*Variable
	outputs []*Variable
	rules   []compiledRule

	// slot index per (input variable, term) pair into the per-call
	// fuzzified-degree slice
	slots     map[string]int
	slotCount int

	// output universe samples, one grid per output variable
	samples [][]float64
}

type compiledRule struct {
	antecedent  evalNode
	weight      float64
	consequents []compiledConsequent
}

type compiledConsequent struct {
	output int // index into System.outputs
	// consequent term membership pre-sampled over the output universe;
	// implication clips this pointwise at the firing degree
	termSamples []float64
}

func slotKey(variable, term string) string { return variable + "\x00" + term }

// NewSystem validates and compiles a declarative spec. All configuration
// errors — malformed breakpoints, bad universes, unparsable antecedents,
// references to undeclared variables or terms, out-of-range weights — are
// reported here as *ConfigError; a returned System cannot fail at evaluation
// time for configuration reasons.
func NewSystem(spec SystemSpec) (*System, error) {
	s := &System{
		spec:  spec,
		slots: make(map[string]int),
	}

	byName := make(map[string]*Variable, len(spec.Variables))
	for _, vs := range spec.Variables {
		if vs.Name == "" {
			return nil, configErrorf("variables", "variable with empty name")
		}
		if _, dup := byName[vs.Name]; dup {
			return nil, configErrorf(vs.Name, "duplicate variable name")
		}
		if vs.Role != RoleInput && vs.Role != RoleOutput {
			return nil, configErrorf(vs.Name, "role must be %q or %q, got %q", RoleInput, RoleOutput, vs.Role)
		}
		u := Universe{Min: vs.Min, Max: vs.Max, Step: vs.Step}
		if err := u.validate(); err != nil {
			return nil, configErrorf(vs.Name, "invalid universe: %v", err)
		}
		if len(vs.Terms) == 0 {
			return nil, configErrorf(vs.Name, "variable has no terms")
		}
		v := &Variable{Name: vs.Name, Role: vs.Role, Universe: u}
		seen := make(map[string]bool, len(vs.Terms))
		for _, ts := range vs.Terms {
			if ts.Name == "" {
				return nil, configErrorf(vs.Name, "term with empty name")
			}
			if seen[ts.Name] {
				return nil, configErrorf(vs.Name, "duplicate term %q", ts.Name)
			}
			seen[ts.Name] = true
			mf, err := ts.membership()
			if err != nil {
				return nil, configErrorf(vs.Name+"."+ts.Name, "%v", err)
			}
			v.Terms = append(v.Terms, Term{Name: ts.Name, MF: mf})
		}
		byName[vs.Name] = v
		switch vs.Role {
		case RoleInput:
			s.inputs = append(s.inputs, v)
			for _, t := range v.Terms {
				s.slots[slotKey(v.Name, t.Name)] = s.slotCount
				s.slotCount++
			}
		case RoleOutput:
			s.outputs = append(s.outputs, v)
		}
	}

	if len(s.inputs) == 0 {
		return nil, configErrorf("variables", "no input variables declared")
	}
	if len(s.outputs) == 0 {
		return nil, configErrorf("variables", "no output variables declared")
	}
	if len(spec.Rules) == 0 {
		return nil, configErrorf("rules", "no rules declared")
	}

	s.samples = make([][]float64, len(s.outputs))
	outputIndex := make(map[string]int, len(s.outputs))
	for i, v := range s.outputs {
		s.samples[i] = v.Universe.Samples()
		outputIndex[v.Name] = i
	}

	for i, rs := range spec.Rules {
		field := fmt.Sprintf("rules[%d]", i)

		weight := rs.Weight
		if weight == 0 {
			weight = 1.0
		}
		if weight <= 0 || weight > 1 {
			return nil, configErrorf(field, "weight %v outside (0,1]", rs.Weight)
		}

		expr, err := ParseExpr(rs.If)
		if err != nil {
			return nil, configErrorf(field, "%v", err)
		}
		node, err := s.compileExpr(expr, byName)
		if err != nil {
			return nil, configErrorf(field, "%v", err)
		}

		if len(rs.Then) == 0 {
			return nil, configErrorf(field, "rule has no consequents")
		}
		rule := compiledRule{antecedent: node, weight: weight}
		for _, cs := range rs.Then {
			out, ok := outputIndex[cs.Variable]
			if !ok {
				return nil, configErrorf(field, "consequent references unknown output variable %q", cs.Variable)
			}
			term, ok := s.outputs[out].Term(cs.Term)
			if !ok {
				return nil, configErrorf(field, "output variable %q has no term %q", cs.Variable, cs.Term)
			}
			xs := s.samples[out]
			sampled := make([]float64, len(xs))
			for j, x := range xs {
				sampled[j] = term.MF.Degree(x)
			}
			rule.consequents = append(rule.consequents, compiledConsequent{output: out, termSamples: sampled})
		}
		s.rules = append(s.rules, rule)
	}

	return s, nil
}

func (s *System) compileExpr(e Expr, byName map[string]*Variable) (evalNode, error) {
	switch e := e.(type) {
	case IsExpr:
		v, ok := byName[e.Variable]
		if !ok {
			return nil, fmt.Errorf("antecedent references unknown variable %q", e.Variable)
		}
		if v.Role != RoleInput {
			return nil, fmt.Errorf("antecedent references output variable %q", e.Variable)
		}
		if _, ok := v.Term(e.Term); !ok {
			return nil, fmt.Errorf("variable %q has no term %q", e.Variable, e.Term)
		}
		return leafNode{slot: s.slots[slotKey(e.Variable, e.Term)]}, nil
	case AndExpr:
		l, err := s.compileExpr(e.Left, byName)
		if err != nil {
			return nil, err
		}
		r, err := s.compileExpr(e.Right, byName)
		if err != nil {
			return nil, err
		}
		return andNode{left: l, right: r}, nil
	case OrExpr:
		l, err := s.compileExpr(e.Left, byName)
		if err != nil {
			return nil, err
		}
		r, err := s.compileExpr(e.Right, byName)
		if err != nil {
			return nil, err
		}
		return orNode{left: l, right: r}, nil
	case NotExpr:
		inner, err := s.compileExpr(e.Inner, byName)
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	default:
		return nil, fmt.Errorf("unknown expression type %T", e)
	}
}

// Spec returns the declarative description the system was built from.
func (s *System) Spec() SystemSpec { return s.spec }

// Inputs returns the declared input variable names in declaration order.
func (s *System) Inputs() []string {
	names := make([]string, len(s.inputs))
	for i, v := range s.inputs {
		names[i] = v.Name
	}
	return names
}

// Outputs returns the declared output variable names in declaration order.
func (s *System) Outputs() []string {
	names := make([]string, len(s.outputs))
	for i, v := range s.outputs {
		names[i] = v.Name
	}
	return names
}

// RuleCount reports the number of compiled rules.
func (s *System) RuleCount() int { return len(s.rules) }
