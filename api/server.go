// Package api - Thin, deterministic API layer.
// The API is ONLY responsible for: input ingestion, engine orchestration,
// output serialization. The API NEVER performs pricing logic.
package api

import (
	"encoding/json"
	goerrors "errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dmc-quote/adapters/storage"
	"dmc-quote/core/quote"
	"dmc-quote/core/tarification"
	"dmc-quote/internal/errors"
	"dmc-quote/internal/logging"
)

// Server is the API server
type Server struct {
	engine  *quote.Engine
	store   storage.Store
	mux     *http.ServeMux
	version string
	logger  *zap.Logger
}

// NewServer creates a new API server (without persistence)
func NewServer(version string) *Server {
	return NewServerWithStore(version, nil)
}

// NewServerWithStore creates a new API server backed by a quotation store
func NewServerWithStore(version string, store storage.Store) *Server {
	s := &Server{
		engine:  quote.NewEngine(),
		store:   store,
		mux:     http.NewServeMux(),
		version: version,
		logger:  logging.Logger.Named("api"),
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /quote", s.handleQuote)
	s.mux.HandleFunc("POST /tarification", s.handleTarification)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Supporting endpoints
	s.mux.HandleFunc("GET /version", s.handleVersion)
	s.mux.HandleFunc("GET /quotations", s.handleListQuotations)
	s.mux.HandleFunc("GET /quotations/{id}", s.handleGetQuotation)
	s.mux.HandleFunc("DELETE /quotations/{id}", s.handleDeleteQuotation)
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	quotation, err := s.engine.Calculate(&req.Input)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	if req.Persist && s.store != nil {
		record := storage.NewRecord(quotation, req.Label)
		if err := s.store.Save(r.Context(), record); err != nil {
			s.logger.Error("failed to persist quotation",
				zap.String("quotation_id", quotation.ID),
				zap.Error(err))
			s.writeDomainError(w, err)
			return
		}
	}

	s.logger.Debug("quote computed",
		zap.String("quotation_id", quotation.ID),
		zap.String("tenant_id", quotation.TenantID),
		zap.Duration("elapsed", time.Since(start)))

	s.writeJSON(w, quotation, http.StatusOK)
}

// handleTarification handles POST /tarification
func (s *Server) handleTarification(w http.ResponseWriter, r *http.Request) {
	var req TarificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	totalCost := req.TotalCost
	if req.QuotationID != "" {
		if s.store == nil {
			s.writeError(w, string(errors.TypeConfig), "no quotation store configured", http.StatusServiceUnavailable)
			return
		}
		record, err := s.store.Get(r.Context(), req.QuotationID)
		if err != nil {
			s.writeDomainError(w, err)
			return
		}
		totalCost = record.Quotation.TotalCost
	}

	line, err := tarification.Analyze(req.Label, req.SellingPrice, totalCost, req.Settings)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, line, http.StatusOK)
}

// handleListQuotations handles GET /quotations
func (s *Server) handleListQuotations(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, string(errors.TypeConfig), "no quotation store configured", http.StatusServiceUnavailable)
		return
	}

	filter := &storage.ListFilter{
		TenantID: r.URL.Query().Get("tenant_id"),
	}

	records, err := s.store.List(r.Context(), filter)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := ListResponse{Quotations: make([]QuotationSummary, 0, len(records))}
	for _, rec := range records {
		resp.Quotations = append(resp.Quotations, QuotationSummary{
			ID:         rec.ID,
			TenantID:   rec.TenantID,
			Label:      rec.Label,
			Currency:   rec.Currency,
			GrandTotal: rec.GrandTotal,
			CreatedAt:  rec.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	resp.Count = len(resp.Quotations)

	s.writeJSON(w, resp, http.StatusOK)
}

// handleGetQuotation handles GET /quotations/{id}
func (s *Server) handleGetQuotation(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, string(errors.TypeConfig), "no quotation store configured", http.StatusServiceUnavailable)
		return
	}

	record, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, record, http.StatusOK)
}

// handleDeleteQuotation handles DELETE /quotations/{id}
func (s *Server) handleDeleteQuotation(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, string(errors.TypeConfig), "no quotation store configured", http.StatusServiceUnavailable)
		return
	}

	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
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
		"engine":      "dmc-quote",
		"api_version": "v1",
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Error: ErrorBody{
		Code:    code,
		Message: message,
	}}, status)
}

// writeDomainError maps typed engine errors to HTTP statuses
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	var domainErr *errors.Error
	if !goerrors.As(err, &domainErr) {
		s.writeError(w, string(errors.TypeInternal), err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, ErrorResponse{Error: ErrorBody{
		Code:    string(domainErr.Type),
		Message: domainErr.Message,
		Context: domainErr.Context,
	}}, statusFor(domainErr.Type))
}

func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInvalidManifest,
		errors.TypeInvalidDuration,
		errors.TypeNoRateForDate,
		errors.TypeInvalidMargin,
		errors.TypeMixedCurrency,
		errors.TypeInvalidInput:
		return http.StatusUnprocessableEntity
	case errors.TypeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}
