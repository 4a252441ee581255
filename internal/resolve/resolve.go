// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package resolve turns free-text place names into geocoded points.
package resolve

import (
	"context"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/margsathi/margsathi-router/internal/gazetteer"
	"github.com/margsathi/margsathi-router/internal/geo"
)

// Confidence indicates how trustworthy a resolved point is.
type Confidence string

const (
	// ConfidenceHigh is an exact gazetteer hit.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium is a partial gazetteer hit.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow means the input was unknown and the fixed fallback
	// point was substituted. Two unknown inputs yield identical
	// coordinates, so callers should treat low-confidence pairs with care.
	ConfidenceLow Confidence = "low"
)

// Place is a resolved location.
type Place struct {
	Point      geo.Point  `json:"point"`
	Confidence Confidence `json:"confidence"`
}

// Resolver resolves free-text place names against a gazetteer, substituting
// a fixed fallback point for unknown input. The whole fallback policy lives
// here so it can later be swapped for an external geocoding call without
// touching callers.
type Resolver struct {
	table    *gazetteer.Gazetteer
	fallback geo.Point
}

// New returns a Resolver over the given gazetteer with the given fallback
// point for unknown input.
func New(table *gazetteer.Gazetteer, fallback geo.Point) *Resolver {
	return &Resolver{
		table:    table,
		fallback: fallback,
	}
}

// Resolve maps free text onto a Place. It never fails: gazetteer misses
// resolve to the fallback point with the title-cased input as display name
// and ConfidenceLow set, so that callers can distinguish a genuine hit from
// the masked miss.
func (r *Resolver) Resolve(_ context.Context, text string) Place {
	point, match := r.table.Find(text)
	switch match {
	case gazetteer.MatchExact:
		return Place{Point: point, Confidence: ConfidenceHigh}
	case gazetteer.MatchPartial:
		return Place{Point: point, Confidence: ConfidenceMedium}
	}

	fallback := r.fallback
	// A cases.Caser carries transform state and is not safe for concurrent
	// use, so a fresh one is built per call.
	fallback.DisplayName = cases.Title(language.English).String(gazetteer.Normalize(text))
	return Place{Point: fallback, Confidence: ConfidenceLow}
}
