package events

import "time"

type DiagnosisCompletedEvent struct {
	DiagnosisID string             `json:"diagnosis_id"`
	Inputs      map[string]float64 `json:"inputs"`
	Method      string             `json:"method"`
	Score       float64            `json:"score"`
	Level       string             `json:"level"`
	Source      string             `json:"source"`
}

type BatchCompletedEvent struct {
	Rows      int       `json:"rows"`
	Errors    int       `json:"errors"`
	Method    string    `json:"method"`
	Timestamp time.Time `json:"timestamp"`
}
