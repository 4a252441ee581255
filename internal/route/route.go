// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package route defines the canonical route model, the provider adapter
// interface and the fallback orchestration across heterogeneous routing
// backends.
package route

import (
	"context"
	"fmt"
	"strings"

	"github.com/margsathi/margsathi-router/internal/geo"
)

// ID identifies a routing provider.
type ID string

const (
	ProviderOSRM       ID = "osrm"
	ProviderMapbox     ID = "mapbox"
	ProviderGoogle     ID = "google"
	ProviderMapMyIndia ID = "mapmyindia"
)

// Mode is the requested travel mode.
type Mode string

const (
	ModeCar     Mode = "car"
	ModeBike    Mode = "bike"
	ModeWalk    Mode = "walk"
	ModeTransit Mode = "transit"
)

// ParseMode parses a travel mode string. Empty input defaults to ModeCar.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ModeCar, nil
	case ModeCar:
		return ModeCar, nil
	case ModeBike:
		return ModeBike, nil
	case ModeWalk:
		return ModeWalk, nil
	case ModeTransit:
		return ModeTransit, nil
	}
	return "", fmt.Errorf("invalid travel mode: %q", s)
}

// Step is a single turn-by-turn instruction of a route leg.
type Step struct {
	Instruction     string     `json:"instruction"`
	DistanceMeters  float64    `json:"distance"`
	DurationSeconds float64    `json:"duration"`
	Location        *geo.Point `json:"location,omitempty"`
}

// Leg is the canonical route result every provider adapter's output is
// converted into.
type Leg struct {
	// Geometry is the provider's encoded polyline, copied verbatim.
	Geometry        string
	DistanceMeters  float64
	DurationSeconds float64
	Steps           []Step
	Provider        ID
}

// Descriptor describes a provider's configuration state. Built once at
// startup, immutable for the process lifetime.
type Descriptor struct {
	ID                 ID
	Priority           int
	CredentialsPresent bool
	RequiresKey        bool
	BaseURL            string
}

// Adapter translates between one provider's native request/response format
// and the canonical route model.
type Adapter interface {
	// Describe reports the adapter's configuration state. It must be cheap
	// and must not perform network I/O.
	Describe() Descriptor
	// Route computes a route between origin and destination. Failures are
	// reported as *ProviderError so the orchestrator can classify them.
	Route(ctx context.Context, origin, destination geo.Point, mode Mode) (Leg, error)
}
