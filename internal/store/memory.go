package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps diagnoses in process memory. Used when no database URL
// is configured, and by tests.
type MemoryStore struct {
	mu        sync.RWMutex
	diagnoses map[uuid.UUID]*Diagnosis
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{diagnoses: make(map[uuid.UUID]*Diagnosis)}
}

func (s *MemoryStore) SaveDiagnosis(_ context.Context, d *Diagnosis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	cp := *d
	s.diagnoses[d.ID] = &cp
	return nil
}

func (s *MemoryStore) GetDiagnosis(_ context.Context, id uuid.UUID) (*Diagnosis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.diagnoses[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (s *MemoryStore) ListDiagnoses(_ context.Context, filter DiagnosisFilter) ([]*Diagnosis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Diagnosis
	for _, d := range s.diagnoses {
		if filter.Level != "" && d.Level != filter.Level {
			continue
		}
		if filter.Source != "" && d.Source != filter.Source {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *MemoryStore) GetStats(_ context.Context) (*Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := &Stats{}
	var sum float64
	for _, d := range s.diagnoses {
		st.Total++
		sum += d.Score
		switch d.Level {
		case "low":
			st.Low++
		case "moderate":
			st.Moderate++
		case "high":
			st.High++
		}
	}
	if st.Total > 0 {
		st.AvgScore = sum / float64(st.Total)
	}
	return st, nil
}

func (s *MemoryStore) Close() error { return nil }
