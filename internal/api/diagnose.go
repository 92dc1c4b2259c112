package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nullcipherr/fuzzdx/internal/anxiety"
	"github.com/nullcipherr/fuzzdx/internal/diagnose"
	"github.com/nullcipherr/fuzzdx/internal/fuzz"
	"github.com/nullcipherr/fuzzdx/internal/store"
)

type DiagnoseHandler struct {
	service *diagnose.Service
	store   store.Store
}

func NewDiagnoseHandler(svc *diagnose.Service, s store.Store) *DiagnoseHandler {
	return &DiagnoseHandler{service: svc, store: s}
}

// Fields are pointers so a missing field is distinguishable from zero.
type DiagnoseRequest struct {
	HeartRate     *float64 `json:"heart_rate"`
	Worry         *float64 `json:"worry"`
	SleepQuality  *float64 `json:"sleep_quality"`
	MuscleTension *float64 `json:"muscle_tension"`
	Method        string   `json:"method,omitempty"`
}

func (h *DiagnoseHandler) Create(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req DiagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		diagnoseErrors.WithLabelValues("bad_body").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	missing := ""
	switch {
	case req.HeartRate == nil:
		missing = anxiety.VarHeartRate
	case req.Worry == nil:
		missing = anxiety.VarWorry
	case req.SleepQuality == nil:
		missing = anxiety.VarSleepQuality
	case req.MuscleTension == nil:
		missing = anxiety.VarMuscleTension
	}
	if missing != "" {
		diagnoseErrors.WithLabelValues("missing_field").Inc()
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": missing + " required"})
		return
	}

	inputs := anxiety.Inputs{
		HeartRate:     *req.HeartRate,
		Worry:         *req.Worry,
		SleepQuality:  *req.SleepQuality,
		MuscleTension: *req.MuscleTension,
	}

	result, err := h.service.Diagnose(r.Context(), inputs.Map(), req.Method, store.SourceAPI)
	if err != nil {
		var invalidMethod *fuzz.InvalidMethodError
		if errors.As(err, &invalidMethod) {
			diagnoseErrors.WithLabelValues("invalid_method").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": invalidMethod.Error()})
			return
		}
		if errors.Is(err, fuzz.ErrMissingInput) {
			diagnoseErrors.WithLabelValues("missing_input").Inc()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "diagnosis failed"})
		return
	}

	diagnosesTotal.WithLabelValues(string(result.Method), string(result.Level)).Inc()
	diagnoseDuration.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusCreated, result)
}

func (h *DiagnoseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	d, err := h.store.GetDiagnosis(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
		return
	}
	if d == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "diagnosis not found"})
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DiagnoseHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.DiagnosisFilter{Limit: 50}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("level"); v != "" {
		filter.Level = v
	}
	list, err := h.store.ListDiagnoses(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "list failed"})
		return
	}
	if list == nil {
		list = []*store.Diagnosis{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"diagnoses": list, "count": len(list)})
}

func (h *DiagnoseHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats failed"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DiagnoseHandler) System(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.System().Spec())
}

func (h *DiagnoseHandler) Methods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"methods": fuzz.Methods(),
		"default": h.service.DefaultMethod(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
