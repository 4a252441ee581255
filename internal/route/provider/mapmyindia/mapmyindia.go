// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package mapmyindia implements the routing adapter for the MapMyIndia
// (Mappls) Route API. The API speaks the OSRM response dialect and accepts
// either a REST key embedded in the URL path or an OAuth bearer token
// obtained through the client-credentials grant.
package mapmyindia

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/margsathi/margsathi-router/internal/geo"
	"github.com/margsathi/margsathi-router/internal/httpx"
	"github.com/margsathi/margsathi-router/internal/route"
	"github.com/margsathi/margsathi-router/internal/route/provider/osrm"
)

const (
	// BaseURL is the MapMyIndia advanced route API endpoint.
	BaseURL = "https://apis.mapmyindia.com/advancedmaps/v1"
	// TokenURL is the OAuth token endpoint for the client-credentials grant.
	TokenURL = "https://outpost.mapmyindia.com/api/security/oauth/token"
	// DefaultTimeout bounds a single route request.
	DefaultTimeout = time.Second * 10

	name = route.ProviderMapMyIndia
)

// MapMyIndia is the adapter for the MapMyIndia route service.
type MapMyIndia struct {
	http         *httpx.Client
	apiKey       string
	clientID     string
	clientSecret string
	timeout      time.Duration

	mutex       sync.Mutex
	token       string
	tokenExpiry time.Time
}

// TokenResponse is the OAuth client-credentials token response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// New returns a new MapMyIndia adapter. The REST key takes precedence over
// the OAuth client credentials when both are configured.
func New(client *httpx.Client, apiKey, clientID, clientSecret string, timeout time.Duration) *MapMyIndia {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &MapMyIndia{
		http:         client,
		apiKey:       apiKey,
		clientID:     clientID,
		clientSecret: clientSecret,
		timeout:      timeout,
	}
}

// Describe reports the adapter's configuration state.
func (m *MapMyIndia) Describe() route.Descriptor {
	return route.Descriptor{
		ID:                 name,
		CredentialsPresent: m.apiKey != "" || (m.clientID != "" && m.clientSecret != ""),
		RequiresKey:        true,
		BaseURL:            BaseURL,
	}
}

// Route fetches a route from MapMyIndia and converts it into the canonical
// leg.
func (m *MapMyIndia) Route(ctx context.Context, origin, destination geo.Point, mode route.Mode) (route.Leg, error) {
	if !m.Describe().CredentialsPresent {
		return route.Leg{}, route.NewProviderError(route.KindNotConfigured, name,
			"no API key or OAuth client credentials configured")
	}

	coords := fmt.Sprintf("%f,%f;%f,%f", origin.Longitude, origin.Latitude,
		destination.Longitude, destination.Latitude)

	var endpoint string
	headers := make(map[string]string)
	switch {
	case m.apiKey != "":
		endpoint = fmt.Sprintf("%s/%s/route_adv/%s/%s", BaseURL, m.apiKey, profile(mode), coords)
	default:
		token, err := m.bearerToken(ctx)
		if err != nil {
			return route.Leg{}, err
		}
		endpoint = fmt.Sprintf("%s/route_adv/%s/%s", BaseURL, profile(mode), coords)
		headers["Authorization"] = "Bearer " + token
	}

	query := url.Values{}
	query.Set("overview", "full")
	query.Set("geometries", "polyline6")
	query.Set("steps", "true")

	var response osrm.Response
	status, err := m.http.GetWithTimeout(ctx, endpoint, &response, query, headers, m.timeout)
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

	leg := toLeg(response.Routes[0])
	return leg, nil
}

// bearerToken returns a valid OAuth access token, fetching a fresh one when
// the cached token is missing or about to expire.
func (m *MapMyIndia) bearerToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.token != "" && time.Now().Before(m.tokenExpiry) {
		return m.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", m.clientID)
	form.Set("client_secret", m.clientSecret)

	var response TokenResponse
	status, err := m.http.PostForm(ctx, TokenURL, &response, form, m.timeout)
	if err != nil {
		if status >= 200 && status <= 299 {
			return "", route.WrapProviderError(route.KindMalformedResponse, name,
				"failed to decode token response", err)
		}
		return "", route.ClassifyTransport(name, err)
	}
	if status < 200 || status > 299 {
		// A rejected credentials grant is an auth failure regardless of the
		// exact status code.
		return "", route.NewProviderError(route.KindAuthFailure, name,
			fmt.Sprintf("token request rejected with status %d", status))
	}
	if response.AccessToken == "" {
		return "", route.NewProviderError(route.KindMalformedResponse, name,
			"token response carries no access token")
	}

	m.token = response.AccessToken
	expiresIn := time.Duration(response.ExpiresIn) * time.Second
	if expiresIn <= 0 {
		expiresIn = time.Hour
	}
	// Renew a minute early to avoid racing the expiry on the wire.
	m.tokenExpiry = time.Now().Add(expiresIn - time.Minute)

	return m.token, nil
}

// profile maps a travel mode to the MapMyIndia routing profile.
func profile(mode route.Mode) string {
	switch mode {
	case route.ModeBike:
		return "biking"
	case route.ModeWalk:
		return "walking"
	default:
		return "driving"
	}
}

// toLeg converts a MapMyIndia route into the canonical leg. The response
// shape matches OSRM's, including the lon/lat maneuver location order.
func toLeg(r osrm.Route) route.Leg {
	leg := route.Leg{
		Geometry:        r.Geometry,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
	}
	for _, apiLeg := range r.Legs {
		for _, step := range apiLeg.Steps {
			location := &geo.Point{
				Latitude:  step.Maneuver.Location[1],
				Longitude: step.Maneuver.Location[0],
			}
			instruction := step.Maneuver.Type
			if step.Maneuver.Modifier != "" {
				instruction += " " + step.Maneuver.Modifier
			}
			if step.Name != "" {
				instruction += " onto " + step.Name
			}
			leg.Steps = append(leg.Steps, route.Step{
				Instruction:     strings.TrimSpace(instruction),
				DistanceMeters:  step.Distance,
				DurationSeconds: step.Duration,
				Location:        location,
			})
		}
	}
	return leg
}
