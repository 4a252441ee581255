// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

package suggest

import (
	"fmt"
	"strings"

	"github.com/margsathi/margsathi-router/internal/geo"
)

// junctions holds the well-known Bangalore interchange points referenced by
// the corridor rules below.
var junctions = map[string]geo.Point{
	"silk board":      {Latitude: 12.9176, Longitude: 77.6233, DisplayName: "Silk Board Junction"},
	"dairy circle":    {Latitude: 12.9385, Longitude: 77.6015, DisplayName: "Dairy Circle"},
	"richmond circle": {Latitude: 12.9600, Longitude: 77.5969, DisplayName: "Richmond Circle"},
	"sony world":      {Latitude: 12.9352, Longitude: 77.6245, DisplayName: "Sony World Junction"},
	"tin factory":     {Latitude: 12.9940, Longitude: 77.6800, DisplayName: "Tin Factory"},
}

// planWaypoints derives the named hops between source and destination and a
// human-readable reason. Known city corridors get curated hops, everything
// else a generic connection. A non-empty event hint rephrases the reason
// and, on the BTM to MG Road corridor, reroutes around Lalbagh.
func planWaypoints(source, destination, event string) ([]string, string) {
	sourceNorm := strings.ToLower(strings.TrimSpace(source))
	destNorm := strings.ToLower(strings.TrimSpace(destination))
	eventNorm := strings.ToLower(strings.TrimSpace(event))

	waypoints := []string{source}
	var reason string

	switch {
	case strings.Contains(sourceNorm, "btm") && strings.Contains(destNorm, "mg road"):
		if strings.Contains(eventNorm, "rally") || strings.Contains(eventNorm, "protest") ||
			strings.Contains(eventNorm, "lalbagh") {
			waypoints = append(waypoints, junctions["dairy circle"].DisplayName, "Richmond Road")
			reason = "Avoiding rally congestion near Lalbagh via Dairy Circle"
		} else {
			waypoints = append(waypoints, "Richmond Road")
			reason = "Optimal route via Richmond Circle"
		}
	case strings.Contains(sourceNorm, "btm") && strings.Contains(destNorm, "koramangala"):
		waypoints = append(waypoints, junctions["sony world"].DisplayName)
		reason = "Direct route via Sony World Junction"
	case strings.Contains(sourceNorm, "whitefield") && strings.Contains(destNorm, "mg road"):
		waypoints = append(waypoints, junctions["tin factory"].DisplayName, "Indiranagar")
		reason = "Standard route via Tin Factory and Old Madras Road"
	case strings.Contains(sourceNorm, "electronic city") && strings.Contains(destNorm, "mg road"):
		waypoints = append(waypoints, junctions["silk board"].DisplayName, junctions["dairy circle"].DisplayName)
		reason = "Route via Silk Board and Dairy Circle"
	default:
		if eventNorm != "" {
			waypoints = append(waypoints, "Alternate Connection")
			reason = fmt.Sprintf("Avoiding %s by taking alternate route", event)
		} else {
			waypoints = append(waypoints, "Direct Connection")
			reason = "Standard route recommendation"
		}
	}

	waypoints = append(waypoints, destination)

	if override := eventReason(event, eventNorm); override != "" {
		reason = override
	}
	return waypoints, reason
}

// eventReason rephrases the reason for well-known event categories. An
// empty return keeps the corridor reason.
func eventReason(event, eventNorm string) string {
	if eventNorm == "" {
		return ""
	}
	containsAny := func(subs ...string) bool {
		for _, sub := range subs {
			if strings.Contains(eventNorm, sub) {
				return true
			}
		}
		return false
	}
	switch {
	case containsAny("rally", "protest", "parade", "political"):
		return fmt.Sprintf("Avoiding %s congestion", strings.ToLower(event))
	case containsAny("closure", "accident", "construction"):
		return fmt.Sprintf("Detouring around %s", strings.ToLower(event))
	case containsAny("concert", "sports", "event"):
		return fmt.Sprintf("Avoiding %s traffic", strings.ToLower(event))
	}
	return ""
}
