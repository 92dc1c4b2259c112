package fuzz

// Method selects how an aggregated fuzzy set is reduced to a crisp value.
type Method string

const (
	Centroid Method = "centroid"
	Bisector Method = "bisector"
	MOM      Method = "mom" // mean of maximum
	SOM      Method = "som" // smallest of maximum
	LOM      Method = "lom" // largest of maximum
)

// maxTolerance is the floating tolerance for deciding which samples achieve
// the maximum degree in the mom/som/lom methods.
const maxTolerance = 1e-9

// Methods lists every supported defuzzification method.
func Methods() []Method {
	return []Method{Centroid, Bisector, MOM, SOM, LOM}
}

// ParseMethod validates a method name, failing with *InvalidMethodError on
// anything unrecognized.
func ParseMethod(name string) (Method, error) {
	switch Method(name) {
	case Centroid, Bisector, MOM, SOM, LOM:
		return Method(name), nil
	}
	return "", &InvalidMethodError{Name: name}
}

func (m Method) valid() bool {
	switch m {
	case Centroid, Bisector, MOM, SOM, LOM:
		return true
	}
	return false
}

// defuzzify reduces the aggregated set (xs[i], mu[i]) to one crisp value.
//
// When the set is identically zero (no rule fired for this output), every
// method returns the midpoint of the universe. This is the documented policy
// for the otherwise-undefined 0/0 centroid; the other methods adopt it too so
// that all five agree on the degenerate case.
func defuzzify(m Method, u Universe, xs, mu []float64) float64 {
	var total, peak float64
	for _, d := range mu {
		total += d
		if d > peak {
			peak = d
		}
	}
	if peak <= maxTolerance {
		return u.Midpoint()
	}

	switch m {
	case Centroid:
		var moment float64
		for i, d := range mu {
			moment += xs[i] * d
		}
		return moment / total

	case Bisector:
		half := total / 2
		var cum float64
		for i, d := range mu {
			cum += d
			if cum >= half {
				return xs[i]
			}
		}
		return xs[len(xs)-1]

	case MOM:
		var sum float64
		var n int
		for i, d := range mu {
			if d >= peak-maxTolerance {
				sum += xs[i]
				n++
			}
		}
		return sum / float64(n)

	case SOM:
		for i, d := range mu {
			if d >= peak-maxTolerance {
				return xs[i]
			}
		}

	case LOM:
		for i := len(mu) - 1; i >= 0; i-- {
			if mu[i] >= peak-maxTolerance {
				return xs[i]
			}
		}
	}

	// unreachable: Evaluate validates the method first
	return u.Midpoint()
}
