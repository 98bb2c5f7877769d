// Package server provides the HTTP server and routing for FraudGuard.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fraudguard/fraudguard/internal/domain"
	"github.com/fraudguard/fraudguard/internal/report"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "fraudguard",
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handlePredict scores a transaction and records the verdict.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := domain.Normalize(payload)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	verdict, err := s.scoring.Analyze(rec)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to analyze transaction")
		s.writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	s.writeJSON(w, http.StatusOK, verdict)
}

// handleHistory returns all recorded verdicts in insertion order.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.history.List()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to load transaction history")
		s.writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	s.writeJSON(w, http.StatusOK, entries)
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// handleChat answers an assistant query.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{Response: s.assistant.Respond(req.Query)})
}

// handleReport streams a single-transaction PDF report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := s.history.GetByID(id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Failed to load transaction for report")
		s.writeError(w, http.StatusInternalServerError, "failed to load transaction")
		return
	}
	if entry == nil {
		s.writeError(w, http.StatusNotFound, "transaction not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=fraud_report_%s.pdf", id))
	if err := report.Generate(*entry, w); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Failed to generate report")
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes a JSON error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
