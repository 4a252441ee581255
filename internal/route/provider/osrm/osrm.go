// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package osrm implements the routing adapter for the Open Source Routing
// Machine HTTP API. OSRM requires no credentials and therefore serves as
// the engine's always-available fallback provider.
package osrm

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/margsathi/margsathi-router/internal/geo"
	"github.com/margsathi/margsathi-router/internal/httpx"
	"github.com/margsathi/margsathi-router/internal/route"
)

const (
	// DefaultBaseURL is the public OSRM demo server.
	DefaultBaseURL = "https://router.project-osrm.org"
	// DefaultTimeout bounds a single route request.
	DefaultTimeout = time.Second * 10

	name = route.ProviderOSRM
)

// OSRM is the adapter for the OSRM route service.
type OSRM struct {
	http    *httpx.Client
	baseURL string
	timeout time.Duration
}

// Response is the OSRM route response envelope.
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

// RouteLeg is one leg of an OSRM route.
type RouteLeg struct {
	Steps []RouteStep `json:"steps"`
}

// RouteStep is a single OSRM maneuver.
type RouteStep struct {
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Name     string   `json:"name"`
	Maneuver Maneuver `json:"maneuver"`
}

// Maneuver holds the maneuver metadata of a step. Location is in OSRM's
// lon/lat order.
type Maneuver struct {
	Location [2]float64 `json:"location"`
	Type     string     `json:"type"`
	Modifier string     `json:"modifier"`
}

// New returns a new OSRM adapter. An empty baseURL falls back to the public
// demo server, a non-positive timeout to DefaultTimeout.
func New(client *httpx.Client, baseURL string, timeout time.Duration) *OSRM {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OSRM{
		http:    client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: timeout,
	}
}

// Describe reports the adapter's configuration state. OSRM is keyless and
// always usable.
func (o *OSRM) Describe() route.Descriptor {
	return route.Descriptor{
		ID:                 name,
		CredentialsPresent: true,
		RequiresKey:        false,
		BaseURL:            o.baseURL,
	}
}

// Route fetches a route from OSRM and converts it into the canonical leg.
func (o *OSRM) Route(ctx context.Context, origin, destination geo.Point, mode route.Mode) (route.Leg, error) {
	var response Response

	// OSRM coordinate order is {lon},{lat};{lon},{lat}
	coords := fmt.Sprintf("%f,%f;%f,%f", origin.Longitude, origin.Latitude,
		destination.Longitude, destination.Latitude)
	endpoint := fmt.Sprintf("%s/route/v1/%s/%s", o.baseURL, profile(mode), coords)

	query := url.Values{}
	query.Set("overview", "full")
	query.Set("geometries", "polyline6")
	query.Set("steps", "true")

	status, err := o.http.GetWithTimeout(ctx, endpoint, &response, query, nil, o.timeout)
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

// profile maps a travel mode to the OSRM routing profile.
func profile(mode route.Mode) string {
	switch mode {
	case route.ModeBike:
		return "bicycle"
	case route.ModeWalk:
		return "foot"
	default:
		return "driving"
	}
}

// toLeg converts an OSRM route into the canonical leg.
func toLeg(r Route) route.Leg {
	leg := route.Leg{
		Geometry:        r.Geometry,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
	}
	for _, osrmLeg := range r.Legs {
		for _, step := range osrmLeg.Steps {
			location := &geo.Point{
				Latitude:  step.Maneuver.Location[1],
				Longitude: step.Maneuver.Location[0],
			}
			leg.Steps = append(leg.Steps, route.Step{
				Instruction:     instruction(step),
				DistanceMeters:  step.Distance,
				DurationSeconds: step.Duration,
				Location:        location,
			})
		}
	}
	return leg
}

// instruction composes a human-readable instruction from the maneuver
// metadata. OSRM carries no pre-rendered instruction text.
func instruction(step RouteStep) string {
	parts := []string{step.Maneuver.Type}
	if step.Maneuver.Modifier != "" {
		parts = append(parts, step.Maneuver.Modifier)
	}
	if step.Name != "" {
		parts = append(parts, "onto", step.Name)
	}
	return strings.Join(parts, " ")
}
