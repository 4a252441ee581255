// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package mapbox implements the routing adapter for the Mapbox Directions
// API.
package mapbox

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/margsathi/margsathi-router/internal/geo"
	"github.com/margsathi/margsathi-router/internal/httpx"
	"github.com/margsathi/margsathi-router/internal/route"
)

const (
	// BaseURL is the Mapbox Directions API endpoint.
	BaseURL = "https://api.mapbox.com/directions/v5/mapbox"
	// DefaultTimeout bounds a single route request.
	DefaultTimeout = time.Second * 10

	name = route.ProviderMapbox
)

// Mapbox is the adapter for the Mapbox Directions API.
type Mapbox struct {
	http    *httpx.Client
	apiKey  string
	lang    language.Tag
	timeout time.Duration
}

// Response is the Mapbox directions response envelope.
type Response struct {
	Code   string  `json:"code"`
	Routes []Route `json:"routes"`
}

// Route is a single route alternative.
type Route struct {
	Geometry string     `json:"geometry"`
	Distance float64    `json:"distance"`
	Duration float64    `json:"duration"`
	Legs     []RouteLeg `json:"legs"`
}

// RouteLeg is one leg of a Mapbox route.
type RouteLeg struct {
	Steps []RouteStep `json:"steps"`
}

// RouteStep is a single Mapbox maneuver. Mapbox pre-renders the instruction
// text in the requested language.
type RouteStep struct {
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Maneuver Maneuver `json:"maneuver"`
}

// Maneuver holds the maneuver metadata of a step. Location is in lon/lat
// order.
type Maneuver struct {
	Instruction string     `json:"instruction"`
	Location    [2]float64 `json:"location"`
}

// New returns a new Mapbox adapter.
func New(client *httpx.Client, apiKey string, lang language.Tag, timeout time.Duration) *Mapbox {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Mapbox{
		http:    client,
		apiKey:  apiKey,
		lang:    lang,
		timeout: timeout,
	}
}

// Describe reports the adapter's configuration state.
func (m *Mapbox) Describe() route.Descriptor {
	return route.Descriptor{
		ID:                 name,
		CredentialsPresent: m.apiKey != "",
		RequiresKey:        true,
		BaseURL:            BaseURL,
	}
}

// Route fetches a route from Mapbox and converts it into the canonical leg.
func (m *Mapbox) Route(ctx context.Context, origin, destination geo.Point, mode route.Mode) (route.Leg, error) {
	if m.apiKey == "" {
		return route.Leg{}, route.NewProviderError(route.KindNotConfigured, name, "no API key configured")
	}

	var response Response

	coords := fmt.Sprintf("%f,%f;%f,%f", origin.Longitude, origin.Latitude,
		destination.Longitude, destination.Latitude)
	endpoint := fmt.Sprintf("%s/%s/%s", BaseURL, profile(mode), coords)

	query := url.Values{}
	query.Set("access_token", m.apiKey)
	query.Set("overview", "full")
	query.Set("geometries", "polyline6")
	query.Set("steps", "true")
	query.Set("language", m.lang.String())

	status, err := m.http.GetWithTimeout(ctx, endpoint, &response, query, nil, m.timeout)
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

	if response.Code != "Ok" || len(response.Routes) == 0 {
		return route.Leg{}, route.NewProviderError(route.KindMalformedResponse, name,
			fmt.Sprintf("no routes in response (code %q)", response.Code))
	}

	return toLeg(response.Routes[0]), nil
}

// profile maps a travel mode to the Mapbox routing profile.
func profile(mode route.Mode) string {
	switch mode {
	case route.ModeBike:
		return "cycling"
	case route.ModeWalk:
		return "walking"
	default:
		return "driving"
	}
}

// toLeg converts a Mapbox route into the canonical leg.
func toLeg(r Route) route.Leg {
	leg := route.Leg{
		Geometry:        r.Geometry,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
	}
	for _, mapboxLeg := range r.Legs {
		for _, step := range mapboxLeg.Steps {
			location := &geo.Point{
				Latitude:  step.Maneuver.Location[1],
				Longitude: step.Maneuver.Location[0],
			}
			leg.Steps = append(leg.Steps, route.Step{
				Instruction:     step.Maneuver.Instruction,
				DistanceMeters:  step.Distance,
				DurationSeconds: step.Duration,
				Location:        location,
			})
		}
	}
	return leg
}
