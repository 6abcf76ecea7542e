package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yourorg/crossval/internal/crossval"
)

// Service wires config, the cross-validator, and metrics into HTTP
// handlers.
type Service struct {
	cfg       Config
	validator *crossval.Validator
	metrics   *Metrics
	logger    *slog.Logger
}

func NewService(cfg Config, validator *crossval.Validator, metrics *Metrics, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return Service{cfg: cfg, validator: validator, metrics: metrics, logger: logger}
}

// Router builds the chi router for the service.
func (s Service) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/manifests/validate", s.ValidateManifest)
	r.Get("/healthz", s.Healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// ValidateManifest matches POST /v1/manifests/validate.
func (s Service) ValidateManifest(w http.ResponseWriter, r *http.Request) {
	corrID := r.Header.Get("X-Correlation-Id")
	if corrID == "" {
		corrID = uuid.NewString()
	}
	logger := s.logger.With("corrId", corrID)

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, corrID, map[string]string{"code": "BAD_JSON", "message": err.Error()})
		return
	}
	if req.DocumentType == "" {
		writeJSON(w, http.StatusBadRequest, corrID, map[string]string{"code": "BAD_REQUEST", "message": "documentType is required"})
		return
	}

	start := time.Now()
	result := s.validator.CrossValidate(r.Context(), req.ToEvent())
	s.metrics.ValidationDuration.Observe(time.Since(start).Seconds())
	s.metrics.RecordOutcome(len(result.FailMessages) > 0, result.ReviewRequired)

	logger.Info("manifest validated",
		"documentType", req.DocumentType,
		"documentNumber", req.DocumentNumber,
		"attachments", len(req.Attachments),
		"failMessages", len(result.FailMessages),
		"reviewReasons", len(result.ReviewReasons))
	writeJSON(w, http.StatusOK, corrID, result)
}

// Healthz matches GET /healthz.
func (s Service) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, "", map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, corrID string, v any) {
	w.Header().Set("Content-Type", "application/json")
	if corrID != "" {
		w.Header().Set("X-Correlation-Id", corrID)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
