// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package gazetteer provides a static table of known place names and their
// coordinates.
package gazetteer

import (
	"fmt"
	"strings"

	"github.com/margsathi/margsathi-router/internal/geo"
)

// Match describes the quality of a gazetteer lookup.
type Match int

const (
	// MatchNone means the key is not in the table.
	MatchNone Match = iota
	// MatchExact means the normalized key matched a stored key exactly.
	MatchExact
	// MatchPartial means the normalized key matched by substring containment.
	MatchPartial
)

// Entry maps a normalized place-name key to its coordinate.
type Entry struct {
	Key   string
	Point geo.Point
}

// Gazetteer is an immutable, ordered place-name table. Partial matches
// resolve in table order, so the insertion order of the entries is part of
// the lookup contract.
type Gazetteer struct {
	entries []Entry
}

// New builds a Gazetteer from the given entries. Keys are normalized and
// must be unique within the table.
func New(entries []Entry) (*Gazetteer, error) {
	seen := make(map[string]struct{}, len(entries))
	normalized := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		key := Normalize(entry.Key)
		if key == "" {
			return nil, fmt.Errorf("empty gazetteer key for point %q", entry.Point.DisplayName)
		}
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("duplicate gazetteer key: %s", key)
		}
		if !entry.Point.Valid() {
			return nil, fmt.Errorf("invalid coordinate for gazetteer key %s", key)
		}
		seen[key] = struct{}{}
		normalized = append(normalized, Entry{Key: key, Point: entry.Point})
	}
	return &Gazetteer{entries: normalized}, nil
}

// Normalize lower-cases a place name, trims surrounding whitespace and
// collapses internal whitespace runs into single spaces.
func Normalize(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Find looks up a place name. It first tries an exact match on the
// normalized key. If that fails, it tries substring containment in both
// directions against every stored key and returns the first hit in table
// order. This is a deliberately weak heuristic; ties resolve by insertion
// order, not by best-match scoring.
func (g *Gazetteer) Find(name string) (geo.Point, Match) {
	key := Normalize(name)
	if key == "" {
		return geo.Point{}, MatchNone
	}
	for _, entry := range g.entries {
		if entry.Key == key {
			return entry.Point, MatchExact
		}
	}
	for _, entry := range g.entries {
		if strings.Contains(entry.Key, key) || strings.Contains(key, entry.Key) {
			return entry.Point, MatchPartial
		}
	}
	return geo.Point{}, MatchNone
}

// Len returns the number of entries in the table.
func (g *Gazetteer) Len() int {
	return len(g.entries)
}
