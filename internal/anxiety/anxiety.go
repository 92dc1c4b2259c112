// Package anxiety is the domain instantiation of the fuzzy engine: the
// anxiety-diagnosis variable set, its rule base, and the score-to-level
// classification thresholds. The package holds data and thresholds only; all
// inference lives in internal/fuzz.
package anxiety

import "github.com/nullcipherr/fuzzdx/internal/fuzz"

// Variable names.
const (
	VarHeartRate     = "heart_rate"
	VarWorry         = "worry"
	VarSleepQuality  = "sleep_quality"
	VarMuscleTension = "muscle_tension"
	VarAnxiety       = "anxiety"
)

// Level is the categorical diagnosis derived from the crisp anxiety score.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Classification thresholds over the [0,100] anxiety universe.
const (
	moderateThreshold = 30.0
	highThreshold     = 60.0
)

// Classify maps a crisp anxiety score to its level: below 30 is low, 30 up
// to (but excluding) 60 is moderate, 60 and above is high.
func Classify(score float64) Level {
	switch {
	case score < moderateThreshold:
		return LevelLow
	case score < highThreshold:
		return LevelModerate
	default:
		return LevelHigh
	}
}

// Inputs is one crisp observation in the fixed batch-format field order.
type Inputs struct {
	HeartRate     float64 `json:"heart_rate"`
	Worry         float64 `json:"worry"`
	SleepQuality  float64 `json:"sleep_quality"`
	MuscleTension float64 `json:"muscle_tension"`
}

// Map converts the observation to the engine's input map.
func (in Inputs) Map() map[string]float64 {
	return map[string]float64{
		VarHeartRate:     in.HeartRate,
		VarWorry:         in.Worry,
		VarSleepQuality:  in.SleepQuality,
		VarMuscleTension: in.MuscleTension,
	}
}

// FieldNames is the comma-separated input order of the batch file format.
func FieldNames() []string {
	return []string{VarHeartRate, VarWorry, VarSleepQuality, VarMuscleTension}
}

func anxietyConsequent(term string) []fuzz.ConsequentSpec {
	return []fuzz.ConsequentSpec{{Variable: VarAnxiety, Term: term}}
}

// Spec returns the full anxiety diagnosis system: four inputs, one output,
// fourteen rules.
func Spec() fuzz.SystemSpec {
	return fuzz.SystemSpec{
		Variables: []fuzz.VariableSpec{
			{
				Name: VarHeartRate, Role: fuzz.RoleInput, Min: 60, Max: 120, Step: 1,
				Terms: []fuzz.TermSpec{
					{Name: "normal", Shape: "trapezoidal", Points: []float64{60, 60, 70, 80}},
					{Name: "elevated", Shape: "triangular", Points: []float64{70, 85, 100}},
					{Name: "very_elevated", Shape: "trapezoidal", Points: []float64{90, 100, 120, 120}},
				},
			},
			{
				Name: VarWorry, Role: fuzz.RoleInput, Min: 0, Max: 10, Step: 1,
				Terms: []fuzz.TermSpec{
					{Name: "low", Shape: "triangular", Points: []float64{0, 0, 5}},
					{Name: "moderate", Shape: "triangular", Points: []float64{3, 5, 7}},
					{Name: "high", Shape: "triangular", Points: []float64{5, 10, 10}},
				},
			},
			{
				Name: VarSleepQuality, Role: fuzz.RoleInput, Min: 0, Max: 10, Step: 1,
				Terms: []fuzz.TermSpec{
					{Name: "good", Shape: "triangular", Points: []float64{7, 10, 10}},
					{Name: "regular", Shape: "triangular", Points: []float64{3, 5, 7}},
					{Name: "poor", Shape: "triangular", Points: []float64{0, 0, 3}},
				},
			},
			{
				Name: VarMuscleTension, Role: fuzz.RoleInput, Min: 0, Max: 10, Step: 1,
				Terms: []fuzz.TermSpec{
					{Name: "relaxed", Shape: "triangular", Points: []float64{0, 0, 4}},
					{Name: "moderate", Shape: "triangular", Points: []float64{3, 5, 7}},
					{Name: "tense", Shape: "triangular", Points: []float64{6, 10, 10}},
				},
			},
			{
				Name: VarAnxiety, Role: fuzz.RoleOutput, Min: 0, Max: 100, Step: 1,
				Terms: []fuzz.TermSpec{
					{Name: "low", Shape: "triangular", Points: []float64{0, 0, 40}},
					{Name: "moderate", Shape: "triangular", Points: []float64{30, 50, 70}},
					{Name: "high", Shape: "triangular", Points: []float64{60, 100, 100}},
				},
			},
		},
		Rules: []fuzz.RuleSpec{
			{If: "heart_rate is normal and worry is low and sleep_quality is good and muscle_tension is relaxed", Then: anxietyConsequent("low")},
			{If: "heart_rate is elevated and worry is moderate and sleep_quality is regular and muscle_tension is moderate", Then: anxietyConsequent("moderate")},
			{If: "heart_rate is very_elevated and worry is high and sleep_quality is poor and muscle_tension is tense", Then: anxietyConsequent("high")},
			{If: "heart_rate is elevated or worry is high or sleep_quality is poor or muscle_tension is tense", Then: anxietyConsequent("moderate")},
			{If: "heart_rate is normal and worry is low and (sleep_quality is good or sleep_quality is regular) and muscle_tension is relaxed", Then: anxietyConsequent("low")},
			{If: "heart_rate is elevated and worry is low and sleep_quality is good and muscle_tension is relaxed", Then: anxietyConsequent("moderate")},
			{If: "heart_rate is very_elevated and worry is moderate and sleep_quality is poor and muscle_tension is tense", Then: anxietyConsequent("high")},
			{If: "heart_rate is normal and worry is moderate and sleep_quality is poor and muscle_tension is tense", Then: anxietyConsequent("moderate")},
			{If: "heart_rate is elevated and worry is high and sleep_quality is good and muscle_tension is relaxed", Then: anxietyConsequent("high")},
			{If: "heart_rate is very_elevated and worry is low and sleep_quality is good and muscle_tension is moderate", Then: anxietyConsequent("moderate")},
			{If: "heart_rate is normal and worry is high and sleep_quality is regular and muscle_tension is tense", Then: anxietyConsequent("high")},
			{If: "heart_rate is elevated and worry is moderate and sleep_quality is poor and muscle_tension is relaxed", Then: anxietyConsequent("high")},
			{If: "heart_rate is normal and worry is moderate and sleep_quality is good and muscle_tension is moderate", Then: anxietyConsequent("moderate")},
			{If: "heart_rate is very_elevated and worry is high and sleep_quality is poor and muscle_tension is relaxed", Then: anxietyConsequent("high")},
		},
	}
}

// NewSystem compiles the default anxiety system.
func NewSystem() (*fuzz.System, error) {
	return fuzz.NewSystem(Spec())
}
