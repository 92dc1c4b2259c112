package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const diagnosisColumns = `id, inputs, method, score, level, source, created_at`

func (s *PostgresStore) SaveDiagnosis(ctx context.Context, d *Diagnosis) error {
	inputsJSON, err := json.Marshal(d.Inputs)
	if err != nil {
		return fmt.Errorf("marshal inputs: %w", err)
	}
	return s.pool.QueryRow(ctx, `
		INSERT INTO fuzzdx_diagnoses (inputs, method, score, level, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		inputsJSON, d.Method, d.Score, d.Level, string(d.Source),
	).Scan(&d.ID, &d.CreatedAt)
}

func (s *PostgresStore) GetDiagnosis(ctx context.Context, id uuid.UUID) (*Diagnosis, error) {
	d := &Diagnosis{}
	var inputsJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT `+diagnosisColumns+`
		FROM fuzzdx_diagnoses WHERE id = $1`, id,
	).Scan(&d.ID, &inputsJSON, &d.Method, &d.Score, &d.Level, &d.Source, &d.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if inputsJSON != nil {
		_ = json.Unmarshal(inputsJSON, &d.Inputs)
	}
	return d, nil
}

func (s *PostgresStore) ListDiagnoses(ctx context.Context, filter DiagnosisFilter) ([]*Diagnosis, error) {
	query := `SELECT ` + diagnosisColumns + ` FROM fuzzdx_diagnoses WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Level != "" {
		n++
		query += fmt.Sprintf(" AND level = $%d", n)
		args = append(args, filter.Level)
	}
	if filter.Source != "" {
		n++
		query += fmt.Sprintf(" AND source = $%d", n)
		args = append(args, string(filter.Source))
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Diagnosis
	for rows.Next() {
		d := &Diagnosis{}
		var inputsJSON []byte
		if err := rows.Scan(&d.ID, &inputsJSON, &d.Method, &d.Score, &d.Level, &d.Source, &d.CreatedAt); err != nil {
			return nil, err
		}
		if inputsJSON != nil {
			_ = json.Unmarshal(inputsJSON, &d.Inputs)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	st := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE level = 'low'),
			COUNT(*) FILTER (WHERE level = 'moderate'),
			COUNT(*) FILTER (WHERE level = 'high'),
			COALESCE(AVG(score), 0)
		FROM fuzzdx_diagnoses`,
	).Scan(&st.Total, &st.Low, &st.Moderate, &st.High, &st.AvgScore)
	if err != nil {
		return nil, err
	}
	return st, nil
}
