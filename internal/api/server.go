// Package api exposes the scene pipeline over HTTP. It serves composed
// scene artifacts; rendering stays client-side.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Farzan505/UrbanAI-App-sub000/pkg/buildinfo"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/errors"
	"github.com/Farzan505/UrbanAI-App-sub000/pkg/pipeline"
)

// Server wires the pipeline runner into an HTTP handler.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// NewServer creates an API server over the given runner.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/buildings/{id}/scene", s.handleScene)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

// sceneResponse wraps the composed scene with execution metadata.
type sceneResponse struct {
	BuildingID   string             `json:"building_id"`
	GMLIDs       []string           `json:"gml_ids"`
	GeometryHash string             `json:"geometry_hash"`
	Scene        json.RawMessage    `json:"scene"`
	Stats        pipeline.Stats     `json:"stats"`
	CacheInfo    pipeline.CacheInfo `json:"cache_info"`
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		BuildingID: chi.URLParam(r, "id"),
		Attribute:  r.URL.Query().Get("attribute"),
	}
	if v := r.URL.Query().Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid refresh value %q", v))
			return
		}
		opts.Refresh = refresh
	}
	if v := r.URL.Query().Get("detail_threshold"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil || threshold < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid detail_threshold value %q", v))
			return
		}
		opts.DetailThreshold = threshold
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sceneResponse{
		BuildingID:   opts.BuildingID,
		GMLIDs:       result.GMLIDs,
		GeometryHash: result.GeometryHash,
		Scene:        result.Artifact,
		Stats:        result.Stats,
		CacheInfo:    result.CacheInfo,
	})
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "error", err)
	} else {
		s.logger.Warn("request rejected", "code", code, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidGeometry:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeBuildingNotFound, errors.ErrCodeMissingCollection:
		return http.StatusNotFound
	case errors.ErrCodeUnauthorized, errors.ErrCodeSessionExpired, errors.ErrCodeLayerAuthFailed:
		return http.StatusUnauthorized
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
