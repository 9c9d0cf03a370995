// Package api is the thin HTTP layer over the engine. It ingests
// requests, calls the engine, and serializes results; it never performs
// pricing or scoring itself.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"mapiker/core/engine"
	"mapiker/core/types"
	"mapiker/internal/errors"
	"mapiker/internal/logging"
)

// Server is the API server.
type Server struct {
	engine  *engine.Engine
	mux     *http.ServeMux
	version string
	log     *zap.Logger
}

// NewServer creates an API server over an engine.
func NewServer(eng *engine.Engine, version string) *Server {
	s := &Server{
		engine:  eng,
		mux:     http.NewServeMux(),
		version: version,
		log:     logging.Logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /projects/{id}/quote", s.handleQuote)
	s.mux.HandleFunc("GET /projects/{id}/comparison", s.handleComparison)
	s.mux.HandleFunc("GET /projects/{id}/selection", s.handleSelection)

	s.mux.HandleFunc("GET /dimensions", s.handleDimensions)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	pricing, err := s.engine.PriceProject(r.Context(), projectID, req.CountryCount, req.SelectedFeatures)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, QuoteResponse{
		ProjectID: projectID,
		Pricing:   *pricing,
		Stage:     types.StageQuote,
	}, http.StatusOK)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	comparison, err := s.engine.CompareProject(r.Context(), projectID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, ComparisonResponse{
		ProjectID:  projectID,
		Comparison: *comparison,
	}, http.StatusOK)
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	resolved, err := s.engine.ResolveProject(r.Context(), projectID)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, SelectionResponse{
		ProjectID:         projectID,
		Products:          resolved.Products,
		Vendors:           resolved.Vendors(),
		MissingReferences: resolved.Missing,
	}, http.StatusOK)
}

func (s *Server) handleDimensions(w http.ResponseWriter, r *http.Request) {
	dims := s.engine.Dimensions()
	infos := make([]DimensionInfo, 0, len(dims))
	for _, d := range dims {
		infos = append(infos, DimensionInfo{ID: d.ID, Name: d.Name, Icon: d.Icon})
	}
	s.writeJSON(w, map[string]interface{}{
		"dimensions": infos,
		"count":      len(infos),
	}, http.StatusOK)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version": s.version,
		"engine":  "mapiker",
	}, http.StatusOK)
}

// writeDomainError maps the error taxonomy onto HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var domainErr *errors.Error
	if e, ok := err.(*errors.Error); ok {
		domainErr = e
	} else {
		domainErr = errors.Internal("unexpected error", err)
	}

	status := http.StatusInternalServerError
	switch domainErr.Type {
	case errors.TypeNotFound:
		status = http.StatusNotFound
	case errors.TypeInput, errors.TypeInputShape:
		status = http.StatusBadRequest
	case errors.TypeEmptyInput:
		status = http.StatusUnprocessableEntity
	case errors.TypeStorage:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	s.writeError(w, string(domainErr.Type), domainErr.Message, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	var body ErrorBody
	body.Error.Code = code
	body.Error.Message = message
	s.writeJSON(w, body, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
