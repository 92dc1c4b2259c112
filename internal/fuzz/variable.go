package fuzz

// Role distinguishes fuzzified inputs from aggregated/defuzzified outputs.
type Role string

const (
	RoleInput  Role = "input"
	RoleOutput Role = "output"
)

// Term is a named fuzzy set within one variable.
type Term struct {
	Name string
	MF   MembershipFunction
}

// Variable is a named linguistic dimension: a universe plus its terms.
// Variables are built once by NewSystem and never mutated.
type Variable struct {
	Name     string
	Role     Role
	Universe Universe
	Terms    []Term
}

// Term returns the named term, if present.
func (v *Variable) Term(name string) (Term, bool) {
	for _, t := range v.Terms {
		if t.Name == name {
			return t, true
		}
	}
	return Term{}, false
}

// Fuzzify evaluates every term's membership function at x. Values outside
// the universe are not clamped or rejected: membership functions are pure and
// simply yield 0 where their support does not reach. Range validation, if
// wanted, belongs to the caller.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	out := make(map[string]float64, len(v.Terms))
	for _, t := range v.Terms {
		out[t.Name] = t.MF.Degree(x)
	}
	return out
}
