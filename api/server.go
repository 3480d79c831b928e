// Package api - Thin HTTP layer over the scaling engine.
// Handlers only do input ingestion, catalog lookup, engine invocation
// and output serialization; all recipe math lives in core.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sodacraft/core/calc"
	"sodacraft/core/catalog"
	"sodacraft/core/safety"
	"sodacraft/core/types"
	"sodacraft/internal/errors"
	"sodacraft/internal/logging"
)

// Server is the API server
type Server struct {
	mux       *http.ServeMux
	store     *catalog.Store
	limits    *types.SafetyLimits
	calc      *calc.Calculator
	validator *safety.Validator
	version   string
}

// NewServer creates a new API server
func NewServer(version string, store *catalog.Store, limits *types.SafetyLimits) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		store:     store,
		limits:    limits,
		calc:      calc.New(),
		validator: safety.NewValidator(),
		version:   version,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /calculate", s.handleCalculate)
	s.mux.HandleFunc("POST /validate", s.handleValidate)

	// Supporting endpoints
	s.mux.HandleFunc("GET /recipes", s.handleRecipes)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleCalculate handles POST /calculate
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if req.BaseID == "" {
		s.writeError(w, "VALIDATION_ERROR", "base_id is required", http.StatusBadRequest)
		return
	}

	snapshot := s.store.Current()
	base, ok := snapshot.Base(req.BaseID)
	if !ok {
		s.writeError(w, "NOT_FOUND", "base recipe not found: "+req.BaseID, http.StatusNotFound)
		return
	}

	var flavor *types.FlavorRecipe
	if req.FlavorID != "" {
		flavor, ok = snapshot.Flavor(req.FlavorID)
		if !ok {
			s.writeError(w, "NOT_FOUND", "flavor recipe not found: "+req.FlavorID, http.StatusNotFound)
			return
		}
	}

	if err := snapshot.CheckCompatible(base, flavor); err != nil {
		s.writeError(w, "INCOMPATIBLE", err.Error(), http.StatusUnprocessableEntity)
		return
	}

	target := &types.CalculationTarget{
		Volume:           req.Target.Volume,
		TargetCaffeineMg: req.Target.TargetCaffeineMg,
		ServingSize:      req.Target.ServingSize,
	}

	recipe, err := s.calc.Calculate(base, flavor, target)
	if err != nil {
		if errors.IsType(err, errors.TypeInput) {
			s.writeError(w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
			return
		}
		s.writeError(w, "ENGINE_ERROR", err.Error(), http.StatusInternalServerError)
		return
	}

	result := s.validator.Validate(s.calc.CaffeineDoseMg(recipe), recipe.IngredientIDs(), s.limits)

	logging.Info("calculation served",
		zap.String("request_id", requestID),
		zap.String("base_id", req.BaseID),
		zap.String("flavor_id", req.FlavorID),
		zap.Bool("passed", result.Passed()))

	s.writeJSON(w, &CalculateResponse{
		Recipe: recipe,
		Safety: result,
		Passed: result.Passed(),
		Metadata: &ResponseMetadata{
			RequestID:     requestID,
			EngineVersion: s.version,
			DurationMs:    time.Since(start).Milliseconds(),
		},
	}, http.StatusOK)
}

// handleValidate handles POST /validate
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}
	if req.CaffeineMg.IsNegative() {
		s.writeError(w, "VALIDATION_ERROR", "caffeine_mg must not be negative", http.StatusBadRequest)
		return
	}

	result := s.validator.Validate(req.CaffeineMg, req.IngredientIDs, s.limits)
	s.writeJSON(w, &ValidateResponse{
		Safety: result,
		Passed: result.Passed(),
	}, http.StatusOK)
}

// handleRecipes handles GET /recipes
func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	snapshot := s.store.Current()

	resp := &RecipesResponse{
		Bases:   []RecipeSummary{},
		Flavors: []RecipeSummary{},
	}
	for _, base := range snapshot.Bases() {
		resp.Bases = append(resp.Bases, RecipeSummary{
			ID:   base.ID,
			Name: base.Name,
			Type: string(base.Type),
		})
	}
	for _, flavor := range snapshot.Flavors() {
		resp.Flavors = append(resp.Flavors, RecipeSummary{
			ID:              flavor.ID,
			Name:            flavor.Name,
			Profile:         flavor.Profile,
			CompatibleBases: flavor.CompatibleBases,
		})
	}

	s.writeJSON(w, resp, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":  "healthy",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.version,
		"engine":      "sodacraft",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	}, status)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
