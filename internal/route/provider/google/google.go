// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package google implements the routing adapter for the Google Directions
// API. Google signals most failures through a status field in an otherwise
// successful response body, so the adapter classifies that field in addition
// to the HTTP status code.
package google

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/margsathi/margsathi-router/internal/geo"
	"github.com/margsathi/margsathi-router/internal/httpx"
	"github.com/margsathi/margsathi-router/internal/route"
)

const (
	// BaseURL is the Google Directions API endpoint.
	BaseURL = "https://maps.googleapis.com/maps/api/directions/json"
	// DefaultTimeout bounds a single route request.
	DefaultTimeout = time.Second * 10

	name = route.ProviderGoogle
)

// Google is the adapter for the Google Directions API.
type Google struct {
	http    *httpx.Client
	apiKey  string
	lang    language.Tag
	timeout time.Duration
}

// Response is the Google directions response envelope.
type Response struct {
	Status string  `json:"status"`
	Routes []Route `json:"routes"`
}

// Route is a single route alternative.
type Route struct {
	OverviewPolyline Polyline   `json:"overview_polyline"`
	Legs             []RouteLeg `json:"legs"`
}

// Polyline holds an encoded polyline string.
type Polyline struct {
	Points string `json:"points"`
}

// RouteLeg is one leg of a Google route.
type RouteLeg struct {
	Distance Value       `json:"distance"`
	Duration Value       `json:"duration"`
	Steps    []RouteStep `json:"steps"`
}

// Value is Google's value/text pair; only the numeric value is used.
type Value struct {
	Value float64 `json:"value"`
}

// RouteStep is a single Google maneuver. The instruction text carries HTML
// markup which is stripped during conversion.
type RouteStep struct {
	HTMLInstructions string   `json:"html_instructions"`
	Distance         Value    `json:"distance"`
	Duration         Value    `json:"duration"`
	StartLocation    Location `json:"start_location"`
}

// Location is a lat/lng coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// New returns a new Google adapter.
func New(client *httpx.Client, apiKey string, lang language.Tag, timeout time.Duration) *Google {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Google{
		http:    client,
		apiKey:  apiKey,
		lang:    lang,
		timeout: timeout,
	}
}

// Describe reports the adapter's configuration state.
func (g *Google) Describe() route.Descriptor {
	return route.Descriptor{
		ID:                 name,
		CredentialsPresent: g.apiKey != "",
		RequiresKey:        true,
		BaseURL:            BaseURL,
	}
}

// Route fetches a route from Google and converts it into the canonical leg.
func (g *Google) Route(ctx context.Context, origin, destination geo.Point, mode route.Mode) (route.Leg, error) {
	if g.apiKey == "" {
		return route.Leg{}, route.NewProviderError(route.KindNotConfigured, name, "no API key configured")
	}

	var response Response

	query := url.Values{}
	query.Set("origin", fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude))
	query.Set("destination", fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude))
	query.Set("mode", travelMode(mode))
	query.Set("key", g.apiKey)
	query.Set("language", g.lang.String())

	status, err := g.http.GetWithTimeout(ctx, BaseURL, &response, query, nil, g.timeout)
	if err != nil {
		if status >= 200 && status <= 299 {
			return route.Leg{}, route.WrapProviderError(route.KindMalformedResponse, name,
				"failed to decode route response", err)
		}
		return route.Leg{}, route.ClassifyTransport(name, err)
	}
	if provErr := route.ClassifyStatus(name, status); provErr != nil {
		return route.Leg{}, provErr
	}
	if provErr := classifyBodyStatus(response.Status); provErr != nil {
		return route.Leg{}, provErr
	}

	if len(response.Routes) == 0 || len(response.Routes[0].Legs) == 0 {
		return route.Leg{}, route.NewProviderError(route.KindMalformedResponse, name,
			"no routes in response")
	}

	return toLeg(response.Routes[0]), nil
}

// classifyBodyStatus maps the directions status field to a provider error.
// "OK" yields nil.
func classifyBodyStatus(status string) *route.ProviderError {
	switch status {
	case "OK":
		return nil
	case "REQUEST_DENIED":
		return route.NewProviderError(route.KindAuthFailure, name, "request denied")
	case "OVER_QUERY_LIMIT":
		return route.NewProviderError(route.KindRateLimited, name, "query limit exceeded")
	default:
		return route.NewProviderError(route.KindMalformedResponse, name,
			fmt.Sprintf("unexpected directions status %q", status))
	}
}

// travelMode maps a travel mode to the Google directions mode.
func travelMode(mode route.Mode) string {
	switch mode {
	case route.ModeBike:
		return "bicycling"
	case route.ModeWalk:
		return "walking"
	case route.ModeTransit:
		return "transit"
	default:
		return "driving"
	}
}

// toLeg converts a Google route into the canonical leg. Distances and
// durations are summed over all legs.
func toLeg(r Route) route.Leg {
	leg := route.Leg{Geometry: r.OverviewPolyline.Points}
	for _, googleLeg := range r.Legs {
		leg.DistanceMeters += googleLeg.Distance.Value
		leg.DurationSeconds += googleLeg.Duration.Value
		for _, step := range googleLeg.Steps {
			location := &geo.Point{
				Latitude:  step.StartLocation.Lat,
				Longitude: step.StartLocation.Lng,
			}
			leg.Steps = append(leg.Steps, route.Step{
				Instruction:     stripTags(step.HTMLInstructions),
				DistanceMeters:  step.Distance.Value,
				DurationSeconds: step.Duration.Value,
				Location:        location,
			})
		}
	}
	return leg
}

// stripTags removes HTML markup from an instruction string.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var builder strings.Builder
	builder.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			builder.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}
