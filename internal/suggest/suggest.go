// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package suggest implements the route suggestion service. It resolves the
// free-text endpoints of a query, asks the provider orchestrator for a
// route, and derives the user-facing metrics from the canonical leg.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/margsathi/margsathi-router/internal/geo"
	"github.com/margsathi/margsathi-router/internal/logger"
	"github.com/margsathi/margsathi-router/internal/resolve"
	"github.com/margsathi/margsathi-router/internal/route"
)

// ErrLocationUnresolved is reserved for a stricter resolution policy. The
// current resolver substitutes a fallback point for unknown input and never
// reports this error, but callers already branch on it so that tightening
// the policy later does not change the service contract.
var ErrLocationUnresolved = errors.New("location could not be resolved")

// Query is a route suggestion request.
type Query struct {
	Source      string
	Destination string
	Mode        route.Mode
	EventHint   string
}

// Suggestion is the result of a route suggestion. Distances and durations
// come unmodified from the winning provider; the kilometer and minute
// variants are exact derivations, the CO2 figure is a linear placeholder
// estimate rather than a measured quantity.
type Suggestion struct {
	RecommendedRoute string        `json:"recommended_route"`
	Reason           string        `json:"reason"`
	DistanceMeters   float64       `json:"distance_meters"`
	DistanceKm       float64       `json:"distance_km"`
	DurationSeconds  float64       `json:"duration_seconds"`
	DurationMinutes  float64       `json:"duration_minutes"`
	EstimatedCO2Kg   float64       `json:"estimated_co2_kg"`
	Waypoints        []string      `json:"waypoints"`
	Geometry         string        `json:"geometry"`
	Steps            []route.Step  `json:"steps"`
	StartPoint       resolve.Place `json:"start_point"`
	EndPoint         resolve.Place `json:"end_point"`
	ProviderUsed     route.ID      `json:"_provider_used"`
}

// Resolver resolves free-text place names.
type Resolver interface {
	Resolve(ctx context.Context, text string) resolve.Place
}

// Router produces a route between two resolved points.
type Router interface {
	Route(ctx context.Context, origin, destination geo.Point, mode route.Mode) (route.Leg, error)
}

// Service is the route suggestion service.
type Service struct {
	resolver Resolver
	router   Router
	logger   *logger.Logger
}

// New returns a new suggestion Service.
func New(resolver Resolver, router Router, log *logger.Logger) *Service {
	return &Service{
		resolver: resolver,
		router:   router,
		logger:   log,
	}
}

// Suggest resolves both endpoints of the query, routes between them and
// assembles the suggestion. Source and destination resolution carry no data
// dependency and run concurrently. Orchestration failures pass through
// unchanged so callers can inspect the per-provider diagnostics.
func (s *Service) Suggest(ctx context.Context, query Query) (Suggestion, error) {
	var source, destination resolve.Place
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		source = s.resolver.Resolve(ctx, query.Source)
	}()
	go func() {
		defer wg.Done()
		destination = s.resolver.Resolve(ctx, query.Destination)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Suggestion{}, err
	}

	leg, err := s.router.Route(ctx, source.Point, destination.Point, query.Mode)
	if err != nil {
		return Suggestion{}, err
	}

	names, reason := planWaypoints(source.Point.DisplayName, destination.Point.DisplayName, query.EventHint)

	s.logger.Info("route suggestion assembled",
		"source", source.Point.DisplayName,
		"destination", destination.Point.DisplayName,
		"provider", string(leg.Provider),
		"distance_m", leg.DistanceMeters)

	return Suggestion{
		RecommendedRoute: strings.Join(names, " → "),
		Reason:           reason,
		DistanceMeters:   leg.DistanceMeters,
		DistanceKm:       leg.DistanceMeters / 1000,
		DurationSeconds:  leg.DurationSeconds,
		DurationMinutes:  leg.DurationSeconds / 60,
		EstimatedCO2Kg:   estimateCO2Kg(leg.DistanceMeters, query.Mode),
		Waypoints:        names,
		Geometry:         leg.Geometry,
		Steps:            leg.Steps,
		StartPoint:       source,
		EndPoint:         destination,
		ProviderUsed:     leg.Provider,
	}, nil
}

// estimateCO2Kg derives an emission estimate from a fixed kg-per-kilometer
// factor for the travel mode, rounded to three decimals. Illustrative
// values, not measurements.
func estimateCO2Kg(distanceMeters float64, mode route.Mode) float64 {
	var factor float64
	switch mode {
	case route.ModeWalk, route.ModeBike:
		return 0
	case route.ModeTransit:
		factor = 0.08
	default:
		factor = 0.18
	}
	return math.Round(distanceMeters/1000*factor*1000) / 1000
}

// String implements fmt.Stringer for logging purposes.
func (q Query) String() string {
	return fmt.Sprintf("%s -> %s (%s)", q.Source, q.Destination, q.Mode)
}
