package fuzz

import "fmt"

// MembershipFunction maps a crisp value to a degree of membership in [0,1].
// Implementations are pure functions: no state, no side effects, defined for
// every real input including values outside the nominal universe.
type MembershipFunction interface {
	Degree(x float64) float64
}

// Triangular is the three-point membership shape: zero outside [A,C], rising
// linearly A→B, falling linearly B→C. Degenerate edges (A=B or B=C) are legal
// and behave as vertical jumps.
type Triangular struct {
	A, B, C float64
}

func (t Triangular) Degree(x float64) float64 {
	switch {
	case x < t.A || x > t.C:
		return 0
	case x == t.B:
		return 1
	case x < t.B:
		// t.B > t.A here: x >= t.A and x < t.B
		return clamp01((x - t.A) / (t.B - t.A))
	default:
		// t.C > t.B here: x > t.B and x <= t.C
		return clamp01((t.C - x) / (t.C - t.B))
	}
}

func (t Triangular) validate() error {
	if !(t.A <= t.B && t.B <= t.C) {
		return fmt.Errorf("triangular breakpoints not ordered: [%v %v %v]", t.A, t.B, t.C)
	}
	return nil
}

// Trapezoidal is the four-point membership shape: zero outside [A,D], rising
// A→B, plateau at 1 over [B,C], falling C→D.
type Trapezoidal struct {
	A, B, C, D float64
}

func (z Trapezoidal) Degree(x float64) float64 {
	switch {
	case x < z.A || x > z.D:
		return 0
	case x >= z.B && x <= z.C:
		return 1
	case x < z.B:
		return clamp01((x - z.A) / (z.B - z.A))
	default:
		return clamp01((z.D - x) / (z.D - z.C))
	}
}

func (z Trapezoidal) validate() error {
	if !(z.A <= z.B && z.B <= z.C && z.C <= z.D) {
		return fmt.Errorf("trapezoidal breakpoints not ordered: [%v %v %v %v]", z.A, z.B, z.C, z.D)
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
