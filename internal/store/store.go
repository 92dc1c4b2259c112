package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Source records which collaborator produced a diagnosis.
type Source string

const (
	SourceAPI   Source = "api"
	SourceBatch Source = "batch"
	SourceCLI   Source = "cli"
)

// Diagnosis is one evaluated case: the crisp inputs, the defuzzification
// method used, and the resulting score and level.
type Diagnosis struct {
	ID        uuid.UUID          `json:"id"`
	Inputs    map[string]float64 `json:"inputs"`
	Method    string             `json:"method"`
	Score     float64            `json:"score"`
	Level     string             `json:"level"`
	Source    Source             `json:"source"`
	CreatedAt time.Time          `json:"created_at"`
}

type DiagnosisFilter struct {
	Level  string
	Source Source
	Limit  int
	Offset int
}

type Stats struct {
	Total    int     `json:"total"`
	Low      int     `json:"low"`
	Moderate int     `json:"moderate"`
	High     int     `json:"high"`
	AvgScore float64 `json:"avg_score"`
}

type Store interface {
	SaveDiagnosis(ctx context.Context, d *Diagnosis) error
	GetDiagnosis(ctx context.Context, id uuid.UUID) (*Diagnosis, error)
	ListDiagnoses(ctx context.Context, filter DiagnosisFilter) ([]*Diagnosis, error)
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}
