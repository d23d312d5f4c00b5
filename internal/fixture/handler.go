package fixture

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/ngmaloney/flood-terminal/internal/models"
)

const maxRequestBodySize = 1 << 20

type locationRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Handler serves both backend endpoints from a Generator
type Handler struct {
	gen      *Generator
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a fixture handler
func NewHandler(gen *Generator, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{gen: gen, validate: validator.New(), logger: logger}
}

// Routes returns the router with both endpoints mounted
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.logRequests)

	r.Post("/api/predict", h.HandlePredict)
	r.Post("/v1/realtime-analysis", h.HandleRealtimeAnalysis)
	return r
}

// HandlePredict handles POST /api/predict with a JSON {lat, lon} body
func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodySize))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "invalid JSON body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
		return
	}

	forecast := h.gen.Forecast(models.Coordinate{Latitude: req.Lat, Longitude: req.Lon})
	writeJSON(w, http.StatusOK, models.PredictResponse{Status: "success", Data: forecast})
}

// HandleRealtimeAnalysis handles POST /v1/realtime-analysis?lat=..&lon=..
func (h *Handler) HandleRealtimeAnalysis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "lat and lon query parameters are required"})
		return
	}

	req := locationRequest{Lat: lat, Lon: lon}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, h.gen.Forensic(models.Coordinate{Latitude: lat, Longitude: lon}))
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
