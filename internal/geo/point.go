// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package geo provides the geographic value types shared by the routing
// engine.
package geo

import (
	"math"
)

const (
	// EarthRadius is the mean earth radius in meters.
	EarthRadius = 6371000.0
)

// Point represents a geocoded place. It is a value object and is never
// mutated after construction.
type Point struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
	DisplayName string  `json:"display"`
}

// Valid checks if the coordinate is valid according to the EPSG logic.
func (p Point) Valid() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// HaversineMeters calculates the great-circle distance in meters between
// two points on a sphere (in our case: Earth).
func HaversineMeters(a, b Point) float64 {
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}
