package fuzz

import "fmt"

// Evaluate runs one full Mamdani pass: fuzzify every input, fire every rule,
// max-aggregate the clipped consequents per output variable, and defuzzify
// each aggregate with the chosen method. The result maps output variable
// names to crisp values.
//
// Evaluate is a pure function of (system, inputs, method): it allocates a
// fresh evaluation context per call and writes nothing shared, so any number
// of calls may run concurrently against the same System.
func (s *System) Evaluate(inputs map[string]float64, method Method) (map[string]float64, error) {
	if !method.valid() {
		return nil, &InvalidMethodError{Name: string(method)}
	}

	// fuzzification: one degree slot per (input variable, term)
	degrees := make([]float64, s.slotCount)
	slot := 0
	for _, v := range s.inputs {
		x, ok := inputs[v.Name]
		if !ok {
			return nil, fmt.Errorf("%w for variable %q", ErrMissingInput, v.Name)
		}
		for _, t := range v.Terms {
			degrees[slot] = t.MF.Degree(x)
			slot++
		}
	}

	// rule firing, min implication, and incremental max aggregation
	aggregates := make([][]float64, len(s.outputs))
	for i := range aggregates {
		aggregates[i] = make([]float64, len(s.samples[i]))
	}
	for _, rule := range s.rules {
		firing := rule.weight * rule.antecedent.eval(degrees)
		if firing <= 0 {
			continue
		}
		for _, cons := range rule.consequents {
			agg := aggregates[cons.output]
			for i, ts := range cons.termSamples {
				clipped := ts
				if firing < clipped {
					clipped = firing
				}
				if clipped > agg[i] {
					agg[i] = clipped
				}
			}
		}
	}

	out := make(map[string]float64, len(s.outputs))
	for i, v := range s.outputs {
		out[v.Name] = defuzzify(method, v.Universe, s.samples[i], aggregates[i])
	}
	return out, nil
}
