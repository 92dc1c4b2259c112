package fuzz

import (
	"errors"
	"math"
	"testing"
)

func sampledSet(u Universe, mf MembershipFunction) ([]float64, []float64) {
	xs := u.Samples()
	mu := make([]float64, len(xs))
	for i, x := range xs {
		mu[i] = mf.Degree(x)
	}
	return xs, mu
}

func TestDefuzzifySymmetricTriangle(t *testing.T) {
	u := Universe{Min: 0, Max: 10, Step: 1}
	xs, mu := sampledSet(u, Triangular{2, 5, 8})

	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			got := defuzzify(m, u, xs, mu)
			if math.Abs(got-5) > 1e-9 {
				t.Errorf("%s = %v, want 5 for a symmetric set", m, got)
			}
		})
	}
}

func TestDefuzzifyPlateau(t *testing.T) {
	u := Universe{Min: 0, Max: 10, Step: 1}
	xs, mu := sampledSet(u, Trapezoidal{0, 2, 6, 10})

	if got := defuzzify(SOM, u, xs, mu); got != 2 {
		t.Errorf("som = %v, want 2", got)
	}
	if got := defuzzify(LOM, u, xs, mu); got != 6 {
		t.Errorf("lom = %v, want 6", got)
	}
	if got := defuzzify(MOM, u, xs, mu); got != 4 {
		t.Errorf("mom = %v, want 4", got)
	}
}

func TestDefuzzifyCentroidSkewed(t *testing.T) {
	u := Universe{Min: 0, Max: 10, Step: 1}
	xs, mu := sampledSet(u, Triangular{0, 0, 10})

	// mass concentrated at the left: centroid lands left of the midpoint
	got := defuzzify(Centroid, u, xs, mu)
	if got >= 5 {
		t.Errorf("centroid = %v, want < 5 for a left-heavy set", got)
	}
}

func TestDefuzzifyBisector(t *testing.T) {
	u := Universe{Min: 0, Max: 4, Step: 1}
	xs := u.Samples()
	mu := []float64{1, 1, 0, 0, 0}

	// total mass 2; the first sample already reaches half
	if got := defuzzify(Bisector, u, xs, mu); got != 0 {
		t.Errorf("bisector = %v, want 0 (first sample at or past half mass)", got)
	}

	mu = []float64{0, 1, 1, 1, 1}
	// half of 4 is reached at the third sample
	if got := defuzzify(Bisector, u, xs, mu); got != 2 {
		t.Errorf("bisector = %v, want 2", got)
	}
}

func TestMaximumMethodOrdering(t *testing.T) {
	u := Universe{Min: 0, Max: 100, Step: 1}
	sets := []MembershipFunction{
		Triangular{0, 0, 40},
		Triangular{30, 50, 70},
		Triangular{60, 100, 100},
		Trapezoidal{10, 20, 80, 95},
	}
	for _, mf := range sets {
		xs, mu := sampledSet(u, mf)
		som := defuzzify(SOM, u, xs, mu)
		mom := defuzzify(MOM, u, xs, mu)
		lom := defuzzify(LOM, u, xs, mu)
		if !(som <= mom && mom <= lom) {
			t.Errorf("ordering violated: som=%v mom=%v lom=%v", som, mom, lom)
		}
		if som < u.Min || lom > u.Max {
			t.Errorf("results outside universe: som=%v lom=%v", som, lom)
		}
	}
}

// An identically-zero aggregate has no center of mass; every method falls
// back to the universe midpoint.
func TestDefuzzifyZeroAggregate(t *testing.T) {
	u := Universe{Min: 0, Max: 100, Step: 1}
	xs := u.Samples()
	mu := make([]float64, len(xs))

	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			if got := defuzzify(m, u, xs, mu); got != 50 {
				t.Errorf("%s = %v, want midpoint 50 for zero aggregate", m, got)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		if _, err := ParseMethod(string(m)); err != nil {
			t.Errorf("ParseMethod(%q) failed: %v", m, err)
		}
	}

	_, err := ParseMethod("median")
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
	var invalid *InvalidMethodError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidMethodError, got %T", err)
	}
	if invalid.Name != "median" {
		t.Errorf("error carries name %q, want %q", invalid.Name, "median")
	}
}
