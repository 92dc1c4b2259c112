package fuzz

import (
	"errors"
	"math"
	"sync"
	"testing"
)

// scenarioSpec is a five-rule diagnosis system over four physiological
// inputs, small enough to reason about by hand.
func scenarioSpec() SystemSpec {
	return SystemSpec{
		Variables: []VariableSpec{
			{
				Name: "heart_rate", Role: RoleInput, Min: 60, Max: 120, Step: 1,
				Terms: []TermSpec{
					{Name: "normal", Shape: "trapezoidal", Points: []float64{60, 60, 70, 80}},
					{Name: "elevated", Shape: "triangular", Points: []float64{70, 85, 100}},
					{Name: "very_elevated", Shape: "trapezoidal", Points: []float64{90, 100, 120, 120}},
				},
			},
			{
				Name: "worry", Role: RoleInput, Min: 0, Max: 10, Step: 1,
				Terms: []TermSpec{
					{Name: "low", Shape: "triangular", Points: []float64{0, 0, 5}},
					{Name: "moderate", Shape: "triangular", Points: []float64{3, 5, 7}},
					{Name: "high", Shape: "triangular", Points: []float64{5, 10, 10}},
				},
			},
			{
				Name: "sleep_quality", Role: RoleInput, Min: 0, Max: 10, Step: 1,
				Terms: []TermSpec{
					{Name: "good", Shape: "triangular", Points: []float64{7, 10, 10}},
					{Name: "regular", Shape: "triangular", Points: []float64{3, 5, 7}},
					{Name: "poor", Shape: "triangular", Points: []float64{0, 0, 3}},
				},
			},
			{
				Name: "muscle_tension", Role: RoleInput, Min: 0, Max: 10, Step: 1,
				Terms: []TermSpec{
					{Name: "relaxed", Shape: "triangular", Points: []float64{0, 0, 4}},
					{Name: "moderate", Shape: "triangular", Points: []float64{3, 5, 7}},
					{Name: "tense", Shape: "triangular", Points: []float64{6, 10, 10}},
				},
			},
			{
				Name: "anxiety", Role: RoleOutput, Min: 0, Max: 100, Step: 1,
				Terms: []TermSpec{
					{Name: "low", Shape: "triangular", Points: []float64{0, 0, 40}},
					{Name: "moderate", Shape: "triangular", Points: []float64{30, 50, 70}},
					{Name: "high", Shape: "triangular", Points: []float64{60, 100, 100}},
				},
			},
		},
		Rules: []RuleSpec{
			{If: "heart_rate is normal and worry is low and sleep_quality is good and muscle_tension is relaxed",
				Then: []ConsequentSpec{{Variable: "anxiety", Term: "low"}}},
			{If: "heart_rate is elevated and worry is moderate and sleep_quality is regular and muscle_tension is moderate",
				Then: []ConsequentSpec{{Variable: "anxiety", Term: "moderate"}}},
			{If: "heart_rate is very_elevated and worry is high and sleep_quality is poor and muscle_tension is tense",
				Then: []ConsequentSpec{{Variable: "anxiety", Term: "high"}}},
			{If: "heart_rate is elevated or worry is high or sleep_quality is poor or muscle_tension is tense",
				Then: []ConsequentSpec{{Variable: "anxiety", Term: "moderate"}}},
			{If: "heart_rate is normal and worry is low and (sleep_quality is good or sleep_quality is regular) and muscle_tension is relaxed",
				Then: []ConsequentSpec{{Variable: "anxiety", Term: "low"}}},
		},
	}
}

func scenarioInputs(hr, worry, sleep, tension float64) map[string]float64 {
	return map[string]float64{
		"heart_rate":     hr,
		"worry":          worry,
		"sleep_quality":  sleep,
		"muscle_tension": tension,
	}
}

func TestEvaluateScenarioCentroid(t *testing.T) {
	sys, err := NewSystem(scenarioSpec())
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}

	tests := []struct {
		name               string
		hr, wo, sl, te     float64
		scoreMin, scoreMax float64
	}{
		// calm subject: only the low rules fire, weakly clipped
		{"calm", 65, 2, 8, 1, 0, 30},
		// mid-range subject: the moderate rules dominate, centroid near 50
		{"mid", 80, 5, 5, 5, 30, 60},
		// agitated subject: high and strongly fired moderate mass pull the
		// centroid past the high threshold
		{"agitated", 110, 9, 2, 9, 60, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := sys.Evaluate(scenarioInputs(tt.hr, tt.wo, tt.sl, tt.te), Centroid)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			score := out["anxiety"]
			if score < tt.scoreMin || score >= tt.scoreMax {
				t.Errorf("score = %v, want in [%v,%v)", score, tt.scoreMin, tt.scoreMax)
			}
		})
	}
}

func TestEvaluateScenarioMidCaseIsSymmetric(t *testing.T) {
	sys, err := NewSystem(scenarioSpec())
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	// only the moderate term is clipped, symmetric around 50
	out, err := sys.Evaluate(scenarioInputs(80, 5, 5, 5), Centroid)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if math.Abs(out["anxiety"]-50) > 0.5 {
		t.Errorf("score = %v, want ~50", out["anxiety"])
	}
}

func TestEvaluateMaximumMethods(t *testing.T) {
	sys, err := NewSystem(scenarioSpec())
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	inputs := scenarioInputs(110, 9, 2, 9)

	scores := map[Method]float64{}
	for _, m := range []Method{SOM, MOM, LOM} {
		out, err := sys.Evaluate(inputs, m)
		if err != nil {
			t.Fatalf("Evaluate(%s) failed: %v", m, err)
		}
		scores[m] = out["anxiety"]
	}
	if !(scores[SOM] <= scores[MOM] && scores[MOM] <= scores[LOM]) {
		t.Errorf("ordering violated: som=%v mom=%v lom=%v", scores[SOM], scores[MOM], scores[LOM])
	}
	for m, s := range scores {
		if s < 0 || s > 100 {
			t.Errorf("%s = %v outside the output universe", m, s)
		}
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	sys, err := NewSystem(scenarioSpec())
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	inputs := scenarioInputs(92.5, 6.3, 4.1, 7.7)

	first, err := sys.Evaluate(inputs, Centroid)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		out, err := sys.Evaluate(inputs, Centroid)
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		if out["anxiety"] != first["anxiety"] {
			t.Fatalf("run %d produced %v, first run produced %v", i, out["anxiety"], first["anxiety"])
		}
	}
}

func TestEvaluateConcurrent(t *testing.T) {
	sys, err := NewSystem(scenarioSpec())
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}

	baseline := make([]float64, 20)
	for i := range baseline {
		out, err := sys.Evaluate(scenarioInputs(60+float64(i*3), float64(i)/2, float64(i%10), float64(i%7)), Centroid)
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		baseline[i] = out["anxiety"]
	}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range baseline {
				out, err := sys.Evaluate(scenarioInputs(60+float64(i*3), float64(i)/2, float64(i%10), float64(i%7)), Centroid)
				if err != nil {
					t.Errorf("Evaluate failed: %v", err)
					return
				}
				if out["anxiety"] != baseline[i] {
					t.Errorf("concurrent run diverged at case %d: %v vs %v", i, out["anxiety"], baseline[i])
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestEvaluateOutsideUniverse(t *testing.T) {
	sys, err := NewSystem(scenarioSpec())
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	// inputs beyond the declared ranges are not rejected; memberships with
	// no support there contribute zero
	out, err := sys.Evaluate(scenarioInputs(150, -3, 14, 12), Centroid)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if out["anxiety"] < 0 || out["anxiety"] > 100 {
		t.Errorf("score = %v outside the output universe", out["anxiety"])
	}
}

func TestEvaluateErrors(t *testing.T) {
	sys, err := NewSystem(scenarioSpec())
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}

	t.Run("invalid method", func(t *testing.T) {
		_, err := sys.Evaluate(scenarioInputs(80, 5, 5, 5), Method("average"))
		var invalid *InvalidMethodError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected *InvalidMethodError, got %v", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		inputs := scenarioInputs(80, 5, 5, 5)
		delete(inputs, "worry")
		_, err := sys.Evaluate(inputs, Centroid)
		if !errors.Is(err, ErrMissingInput) {
			t.Fatalf("expected ErrMissingInput, got %v", err)
		}
	})
}

func TestEvaluateRuleWeight(t *testing.T) {
	spec := minimalSpec()
	// halving the weight halves the firing degree and shifts the centroid
	weighted := minimalSpec()
	weighted.Rules[0].Weight = 0.5

	full, err := NewSystem(spec)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	half, err := NewSystem(weighted)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}

	inputs := map[string]float64{"temp": 1}
	fullOut, err := full.Evaluate(inputs, SOM)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	halfOut, err := half.Evaluate(inputs, SOM)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	// rule 0 clips the rising "high" term; a lower clip widens the plateau
	// so its smallest maximum moves left
	if !(halfOut["power"] < fullOut["power"]) {
		t.Errorf("expected weighted system to score lower: %v vs %v", halfOut["power"], fullOut["power"])
	}
}
