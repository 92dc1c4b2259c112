package diagnose

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/nullcipherr/fuzzdx/internal/anxiety"
	"github.com/nullcipherr/fuzzdx/internal/fuzz"
	"github.com/nullcipherr/fuzzdx/internal/store"
)

type publishCall struct {
	subject string
	data    interface{}
}

type eventRecorder struct {
	mu    sync.Mutex
	calls []publishCall
	err   error
}

func (r *eventRecorder) Publish(subject string, data interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, publishCall{subject: subject, data: data})
	return r.err
}

func (r *eventRecorder) Close() {}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func calmInputs() map[string]float64 {
	return anxiety.Inputs{HeartRate: 65, Worry: 2, SleepQuality: 8, MuscleTension: 1}.Map()
}

func TestNewServiceRejectsMultiOutput(t *testing.T) {
	spec := anxiety.Spec()
	spec.Variables = append(spec.Variables, fuzz.VariableSpec{
		Name: "severity", Role: fuzz.RoleOutput, Min: 0, Max: 10, Step: 1,
		Terms: []fuzz.TermSpec{
			{Name: "mild", Shape: "triangular", Points: []float64{0, 0, 10}},
			{Name: "severe", Shape: "triangular", Points: []float64{0, 10, 10}},
		},
	})
	sys, err := fuzz.NewSystem(spec)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	if _, err := NewService(sys, fuzz.Centroid, store.NewMemoryStore(), nil, testLogger()); err == nil {
		t.Fatal("expected error for multi-output system")
	}
}

func TestDiagnoseSavesAndPublishes(t *testing.T) {
	sys, err := anxiety.NewSystem()
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	st := store.NewMemoryStore()
	rec := &eventRecorder{}
	svc, err := NewService(sys, fuzz.Centroid, st, rec, testLogger())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	result, err := svc.Diagnose(context.Background(), calmInputs(), "", store.SourceAPI)
	if err != nil {
		t.Fatalf("Diagnose failed: %v", err)
	}
	if result.ID == uuid.Nil {
		t.Error("result has no ID")
	}
	if result.Level != anxiety.LevelLow {
		t.Errorf("level = %s, want low", result.Level)
	}
	if result.Method != fuzz.Centroid {
		t.Errorf("method = %s, want centroid", result.Method)
	}

	saved, err := st.GetDiagnosis(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("GetDiagnosis failed: %v", err)
	}
	if saved == nil {
		t.Fatal("diagnosis not saved")
	}
	if saved.Score != result.Score || saved.Level != string(result.Level) || saved.Source != store.SourceAPI {
		t.Errorf("saved diagnosis = %+v", saved)
	}

	if len(rec.calls) != 1 {
		t.Fatalf("published %d events, want 1", len(rec.calls))
	}
	if rec.calls[0].subject == "" {
		t.Error("event published to empty subject")
	}
}

func TestDiagnoseMethodSelection(t *testing.T) {
	sys, err := anxiety.NewSystem()
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	svc, err := NewService(sys, fuzz.Centroid, store.NewMemoryStore(), nil, testLogger())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	t.Run("named method overrides default", func(t *testing.T) {
		result, err := svc.Diagnose(context.Background(), calmInputs(), "mom", store.SourceCLI)
		if err != nil {
			t.Fatalf("Diagnose failed: %v", err)
		}
		if result.Method != fuzz.MOM {
			t.Errorf("method = %s, want mom", result.Method)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := svc.Diagnose(context.Background(), calmInputs(), "average", store.SourceCLI)
		var invalid *fuzz.InvalidMethodError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected *fuzz.InvalidMethodError, got %v", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		inputs := calmInputs()
		delete(inputs, anxiety.VarWorry)
		_, err := svc.Diagnose(context.Background(), inputs, "", store.SourceCLI)
		if !errors.Is(err, fuzz.ErrMissingInput) {
			t.Fatalf("expected ErrMissingInput, got %v", err)
		}
	})
}

func TestDiagnoseSurvivesPublishFailure(t *testing.T) {
	sys, err := anxiety.NewSystem()
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}
	rec := &eventRecorder{err: errors.New("nats down")}
	svc, err := NewService(sys, fuzz.Centroid, store.NewMemoryStore(), rec, testLogger())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	result, err := svc.Diagnose(context.Background(), calmInputs(), "", store.SourceAPI)
	if err != nil {
		t.Fatalf("Diagnose failed despite publish error: %v", err)
	}
	if result.ID == uuid.Nil {
		t.Error("result has no ID")
	}
}
