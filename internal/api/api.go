// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package api exposes the route suggestion service over HTTP. The handlers
// are thin glue around the suggestion service and the provider registry;
// all routing logic lives below this package.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/margsathi/margsathi-router/internal/logger"
	"github.com/margsathi/margsathi-router/internal/route"
	"github.com/margsathi/margsathi-router/internal/suggest"
)

// Suggester produces route suggestions for free-text queries.
type Suggester interface {
	Suggest(ctx context.Context, query suggest.Query) (suggest.Suggestion, error)
}

// Server holds the HTTP handlers of the routing API.
type Server struct {
	suggester Suggester
	registry  *route.Registry
	logger    *logger.Logger
}

// SuggestRequest is the JSON request body for POST /api/routing/suggest.
type SuggestRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
	Event       string `json:"event"`
}

// ErrorResponse is the JSON shape of all error replies.
type ErrorResponse struct {
	Error       string            `json:"error"`
	Diagnostics []ProviderFailure `json:"diagnostics,omitempty"`
}

// ProviderFailure is one per-provider diagnostic entry of an exhausted
// fallback chain.
type ProviderFailure struct {
	Provider string `json:"provider"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
}

// StatusResponse is the JSON response for GET /api/routing/providers/status.
// API keys are never exposed here.
type StatusResponse struct {
	ConfiguredProviders []string                  `json:"configured_providers"`
	PreferredProvider   string                    `json:"preferred_provider"`
	FallbackChain       []string                  `json:"fallback_chain"`
	ProviderDetails     map[string]ProviderDetail `json:"provider_details"`
}

// ProviderDetail describes a single provider in the status response.
type ProviderDetail struct {
	Configured  bool   `json:"configured"`
	RequiresKey bool   `json:"requires_key"`
	BaseURL     string `json:"base_url"`
	Priority    int    `json:"priority"`
}

// New returns a new API server.
func New(suggester Suggester, registry *route.Registry, log *logger.Logger) *Server {
	return &Server{
		suggester: suggester,
		registry:  registry,
		logger:    log,
	}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	router.Get("/", s.handleRoot)
	router.Get("/health", s.handleHealth)
	router.Route("/api/routing", func(r chi.Router) {
		r.Post("/suggest", s.handleSuggest)
		r.Get("/providers/status", s.handleProviderStatus)
	})

	return router
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"service": "margsathi-router",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var request SuggestRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON request body"})
		return
	}
	if request.Source == "" || request.Destination == "" {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "source and destination are required"})
		return
	}
	mode, err := route.ParseMode(request.Mode)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	suggestion, err := s.suggester.Suggest(r.Context(), suggest.Query{
		Source:      request.Source,
		Destination: request.Destination,
		Mode:        mode,
		EventHint:   request.Event,
	})
	if err != nil {
		s.writeSuggestError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, suggestion)
}

func (s *Server) writeSuggestError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) {
		// The client went away; there is nobody left to answer.
		return
	}
	if exhausted, ok := route.IsExhausted(err); ok {
		failures := make([]ProviderFailure, 0, len(exhausted.Attempts))
		for _, attempt := range exhausted.Attempts {
			failures = append(failures, ProviderFailure{
				Provider: string(attempt.Provider),
				Kind:     attempt.Kind.String(),
				Message:  attempt.Message,
			})
		}
		s.logger.Error("all routing providers failed", logger.Err(err))
		s.writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error:       "all routing providers failed",
			Diagnostics: failures,
		})
		return
	}
	if errors.Is(err, suggest.ErrLocationUnresolved) {
		s.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}
	s.logger.Error("route suggestion failed", logger.Err(err))
	s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func (s *Server) handleProviderStatus(w http.ResponseWriter, _ *http.Request) {
	chain := s.registry.Descriptors()
	all := s.registry.All()

	response := StatusResponse{
		ConfiguredProviders: make([]string, 0, len(chain)),
		PreferredProvider:   string(s.registry.Preferred()),
		FallbackChain:       make([]string, 0, len(chain)),
		ProviderDetails:     make(map[string]ProviderDetail, len(all)),
	}
	for _, desc := range chain {
		response.FallbackChain = append(response.FallbackChain, string(desc.ID))
	}
	for _, desc := range all {
		if desc.CredentialsPresent {
			response.ConfiguredProviders = append(response.ConfiguredProviders, string(desc.ID))
		}
		response.ProviderDetails[string(desc.ID)] = ProviderDetail{
			Configured:  desc.CredentialsPresent,
			RequiresKey: desc.RequiresKey,
			BaseURL:     desc.BaseURL,
			Priority:    desc.Priority,
		}
	}
	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode JSON response", logger.Err(err))
	}
}
