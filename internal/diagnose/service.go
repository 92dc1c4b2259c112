// Package diagnose orchestrates one evaluation round trip: engine, score
// classification, history persistence, and event publication. The engine
// itself stays free of I/O; everything side-effecting lives here.
package diagnose

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nullcipherr/fuzzdx/internal/anxiety"
	"github.com/nullcipherr/fuzzdx/internal/events"
	"github.com/nullcipherr/fuzzdx/internal/fuzz"
	"github.com/nullcipherr/fuzzdx/internal/store"
)

// Result is one completed diagnosis.
type Result struct {
	ID     uuid.UUID     `json:"id"`
	Score  float64       `json:"score"`
	Level  anxiety.Level `json:"level"`
	Method fuzz.Method   `json:"method"`
}

// Service evaluates crisp inputs against a compiled system and records the
// outcome. The system must have exactly one output variable; its defuzzified
// value is classified into a level.
type Service struct {
	system        *fuzz.System
	output        string
	defaultMethod fuzz.Method
	store         store.Store
	events        events.Client
	logger        *slog.Logger
}

func NewService(system *fuzz.System, defaultMethod fuzz.Method, st store.Store, ev events.Client, logger *slog.Logger) (*Service, error) {
	outputs := system.Outputs()
	if len(outputs) != 1 {
		return nil, fmt.Errorf("diagnosis needs a single-output system, got %d outputs", len(outputs))
	}
	return &Service{
		system:        system,
		output:        outputs[0],
		defaultMethod: defaultMethod,
		store:         st,
		events:        ev,
		logger:        logger,
	}, nil
}

// System exposes the compiled system for description endpoints.
func (s *Service) System() *fuzz.System { return s.system }

// DefaultMethod is the method used when a caller names none.
func (s *Service) DefaultMethod() fuzz.Method { return s.defaultMethod }

// Diagnose evaluates one observation. An empty method selects the service
// default; an unrecognized one fails with *fuzz.InvalidMethodError, which
// callers treat as recoverable input error.
func (s *Service) Diagnose(ctx context.Context, inputs map[string]float64, methodName string, source store.Source) (*Result, error) {
	method := s.defaultMethod
	if methodName != "" {
		m, err := fuzz.ParseMethod(methodName)
		if err != nil {
			return nil, err
		}
		method = m
	}

	outputs, err := s.system.Evaluate(inputs, method)
	if err != nil {
		return nil, err
	}
	score := outputs[s.output]

	result := &Result{
		Score:  score,
		Level:  anxiety.Classify(score),
		Method: method,
	}

	d := &store.Diagnosis{
		Inputs: inputs,
		Method: string(method),
		Score:  score,
		Level:  string(result.Level),
		Source: source,
	}
	if err := s.store.SaveDiagnosis(ctx, d); err != nil {
		return nil, fmt.Errorf("save diagnosis: %w", err)
	}
	result.ID = d.ID

	if s.events != nil {
		ev := events.DiagnosisCompletedEvent{
			DiagnosisID: d.ID.String(),
			Inputs:      inputs,
			Method:      string(method),
			Score:       score,
			Level:       string(result.Level),
			Source:      string(source),
		}
		if err := s.events.Publish(events.SubjectDiagnosisCompleted(d.ID.String()), ev); err != nil {
			s.logger.Warn("failed to publish diagnosis event", "diagnosis_id", d.ID, "error", err)
		}
	}

	s.logger.Info("diagnosis completed",
		"diagnosis_id", d.ID,
		"method", method,
		"score", score,
		"level", result.Level,
		"source", source,
	)
	return result, nil
}
