package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/freedom-forecast/internal/config"
	"github.com/iwvelando/freedom-forecast/internal/forecast"
	"github.com/iwvelando/freedom-forecast/internal/optimizer"
	"github.com/iwvelando/freedom-forecast/internal/projection"
	"github.com/iwvelando/freedom-forecast/pkg/constants"
	"github.com/iwvelando/freedom-forecast/pkg/format"
	"github.com/iwvelando/freedom-forecast/pkg/mathutil"
	"github.com/iwvelando/freedom-forecast/pkg/output"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed static/*
var staticFiles embed.FS

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
}

type loggerKey struct{}

// NewHandler constructs the HTTP handler that serves the web UI and the
// projection API. Cross-origin requests are allowed from allowedOrigins;
// with none, every origin is allowed.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, allowedOrigins ...string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Single projection from a JSON scenario
	mux.HandleFunc("/api/simulate", h.handleSimulate)

	// Variant sweep over one base scenario
	mux.HandleFunc("/api/compare", h.handleCompare)

	// Full configuration file upload
	mux.HandleFunc("/api/forecast", h.handleForecast)

	mux.HandleFunc("/api/life-expectancy", h.handleLifeExpectancy)
	mux.HandleFunc("/api/version", h.handleVersion)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return h.withRequestID(c.Handler(mux))
}

// withRequestID tags each request with an id, echoes it in the response, and
// hands the handlers a logger carrying it.
func (h *handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		logger := h.logger.With(zap.String("requestId", id))
		logger.Debug("request received",
			zap.String("op", "server.withRequestID"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)

		ctx := context.WithValue(r.Context(), loggerKey{}, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *handler) log(r *http.Request) *zap.Logger {
	if logger, ok := r.Context().Value(loggerKey{}).(*zap.Logger); ok {
		return logger
	}
	return h.logger
}

type scenarioResponse struct {
	forecast.Forecast
	Summary string       `json:"summary"`
	Chart   output.Chart `json:"chart"`
}

type forecastResponse struct {
	Scenarios  []scenarioResponse     `json:"scenarios"`
	CSV        string                 `json:"csv"`
	Warnings   []string               `json:"warnings,omitempty"`
	Duration   string                 `json:"duration"`
	Config     map[string]interface{} `json:"config,omitempty"`
	ConfigYAML string                 `json:"configYaml,omitempty"`
}

type simulateRequest struct {
	Name     string          `json:"name"`
	Currency string          `json:"currency"`
	Scenario config.Scenario `json:"scenario"`
	Profile  config.Profile  `json:"profile"`
	// Solve runs the contribution solver against TargetYears.
	Solve       bool `json:"solve"`
	TargetYears int  `json:"targetYears"`
}

type variantRequest struct {
	Name                string  `json:"name"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	AnnualReturnRate    float64 `json:"annualReturnRate"` // percent
}

type compareRequest struct {
	Currency string           `json:"currency"`
	Scenario config.Scenario  `json:"scenario"`
	Profile  config.Profile   `json:"profile"`
	Variants []variantRequest `json:"variants"`
}

func (h *handler) handleSimulate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSimulate"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req simulateRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, statusForDecode(err), err.Error(), op)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.TrimSpace(req.Scenario.Name)
	}
	if name == "" {
		name = "scenario"
	}
	currency := format.NormalizeCurrency(req.Currency)

	input, err := req.Scenario.ToInput(req.Profile)
	if err != nil {
		h.respondError(w, r, statusFor(err), err.Error(), op)
		return
	}

	result, err := forecast.Simulate(h.log(r), name, input, currency)
	if err != nil {
		h.respondError(w, r, statusFor(err), err.Error(), op)
		return
	}

	if req.Solve {
		runner, err := optimizer.NewRunner(h.log(r), config.SolverConfig{Enabled: true, TargetYears: req.TargetYears})
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to initialize solver: %v", err), op)
			return
		}
		summary, err := runner.SolveContribution(name, input, req.TargetYears, currency)
		if err != nil {
			h.respondError(w, r, statusFor(err), fmt.Sprintf("solver execution failed: %v", err), op)
			return
		}
		result.Solver = &summary
	}

	h.respondForecast(w, r, []forecast.Forecast{result}, nil, start, op)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	var req compareRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, statusForDecode(err), err.Error(), op)
		return
	}
	if len(req.Variants) == 0 {
		h.respondError(w, r, http.StatusBadRequest, "at least one variant is required", op)
		return
	}

	base := req.Scenario
	base.Active = true
	conf := config.Configuration{
		Currency:  format.NormalizeCurrency(req.Currency),
		Profile:   req.Profile,
		Scenarios: []config.Scenario{base},
	}

	variants := make([]projection.Variant, 0, len(req.Variants))
	for _, v := range req.Variants {
		variants = append(variants, projection.Variant{
			Name:                v.Name,
			MonthlyContribution: v.MonthlyContribution,
			AnnualReturnRate:    mathutil.PercentToFraction(v.AnnualReturnRate),
		})
	}

	results, err := forecast.Compare(h.log(r), conf, variants)
	if err != nil {
		h.respondError(w, r, statusFor(err), err.Error(), op)
		return
	}

	h.respondForecast(w, r, results, nil, start, op)
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleForecast"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err), op)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, "missing configuration file", op)
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			h.log(r).Warn("failed to close uploaded file",
				zap.String("op", op),
				zap.Error(closeErr),
			)
		}
	}()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to read configuration: %v", err), op)
		return
	}
	configBytes := buf.Bytes()

	configMap, err := decodeYAMLToMap(configBytes)
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("error reading config data, %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(configBytes))
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error(), op)
		return
	}
	if coerceBool(r.FormValue("optimize")) {
		cfg.Solver.Enabled = true
	}

	warnings := cfg.ValidateConfiguration()
	results, err := forecast.GetForecast(h.log(r), *cfg)
	if err != nil {
		h.respondError(w, r, statusFor(err), fmt.Sprintf("failed to compute forecast: %v", err), op)
		return
	}

	response := h.buildResponse(results, warnings, start)
	response.Config = configMap
	response.ConfigYAML = string(configBytes)
	h.logComputed(r, op, response, start)
	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *handler) handleLifeExpectancy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	sex := strings.TrimSpace(r.URL.Query().Get("sex"))
	if sex == "" {
		h.writeJSON(w, r, http.StatusOK, map[string]int{
			"male":   constants.LifeExpectancyMale,
			"female": constants.LifeExpectancyFemale,
		})
		return
	}

	years, err := projection.LifeExpectancyFor(sex)
	if err != nil {
		h.respondError(w, r, statusFor(err), err.Error(), "server.handleLifeExpectancy")
		return
	}
	h.writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"sex":            strings.ToLower(sex),
		"lifeExpectancy": years,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondForecast(w http.ResponseWriter, r *http.Request, results []forecast.Forecast, warnings []string, start time.Time, op string) {
	response := h.buildResponse(results, warnings, start)
	h.logComputed(r, op, response, start)
	h.writeJSON(w, r, http.StatusOK, response)
}

func (h *handler) buildResponse(results []forecast.Forecast, warnings []string, start time.Time) forecastResponse {
	scenarios := make([]scenarioResponse, 0, len(results))
	for _, result := range results {
		scenarios = append(scenarios, scenarioResponse{
			Forecast: result,
			Summary:  output.Summary(result),
			Chart:    output.ChartData(result),
		})
	}
	return forecastResponse{
		Scenarios: scenarios,
		CSV:       output.CsvString(results),
		Warnings:  warnings,
		Duration:  time.Since(start).String(),
	}
}

func (h *handler) logComputed(r *http.Request, op string, response forecastResponse, start time.Time) {
	h.log(r).Info("forecast computed",
		zap.String("op", op),
		zap.Int("scenarios", len(response.Scenarios)),
		zap.Duration("duration", time.Since(start)),
	)
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request: %w", err)
	}
	return nil
}

// statusFor maps engine validation failures to 400 and everything else to 500.
func statusFor(err error) int {
	if errors.Is(err, projection.ErrInvalidInput) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func statusForDecode(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func decodeYAMLToMap(data []byte) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return make(map[string]interface{}), nil
	}

	var result map[string]interface{}
	if err := yaml.Unmarshal(trimmed, &result); err != nil {
		return nil, err
	}
	if result == nil {
		result = make(map[string]interface{})
	}
	return result, nil
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string, op string) {
	h.log(r).Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, r, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log(r).Error("failed to write JSON response", zap.Error(err))
	}
}

func coerceBool(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return false
	}
	return parsed
}
