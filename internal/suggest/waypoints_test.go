// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

package suggest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestPlanWaypoints(t *testing.T) {
	tests := []struct {
		name          string
		source        string
		destination   string
		event         string
		wantWaypoints []string
		wantReason    string
	}{
		{
			name:          "btm to mg road without event goes via richmond",
			source:        "BTM Layout",
			destination:   "MG Road",
			wantWaypoints: []string{"BTM Layout", "Richmond Road", "MG Road"},
			wantReason:    "Optimal route via Richmond Circle",
		},
		{
			name:          "btm to mg road during a rally detours via dairy circle",
			source:        "BTM Layout",
			destination:   "MG Road",
			event:         "Political Rally",
			wantWaypoints: []string{"BTM Layout", "Dairy Circle", "Richmond Road", "MG Road"},
			wantReason:    "Avoiding political rally congestion",
		},
		{
			name:          "btm to koramangala goes via sony world",
			source:        "BTM Layout",
			destination:   "Koramangala",
			wantWaypoints: []string{"BTM Layout", "Sony World Junction", "Koramangala"},
			wantReason:    "Direct route via Sony World Junction",
		},
		{
			name:          "whitefield to mg road goes via tin factory",
			source:        "Whitefield",
			destination:   "MG Road",
			wantWaypoints: []string{"Whitefield", "Tin Factory", "Indiranagar", "MG Road"},
			wantReason:    "Standard route via Tin Factory and Old Madras Road",
		},
		{
			name:          "electronic city to mg road goes via silk board",
			source:        "Electronic City",
			destination:   "MG Road",
			wantWaypoints: []string{"Electronic City", "Silk Board Junction", "Dairy Circle", "MG Road"},
			wantReason:    "Route via Silk Board and Dairy Circle",
		},
		{
			name:          "unknown corridor without event gets a direct connection",
			source:        "Hebbal",
			destination:   "Malleshwaram",
			wantWaypoints: []string{"Hebbal", "Direct Connection", "Malleshwaram"},
			wantReason:    "Standard route recommendation",
		},
		{
			name:          "unknown corridor with a closure detours",
			source:        "Hebbal",
			destination:   "Malleshwaram",
			event:         "Road Closure",
			wantWaypoints: []string{"Hebbal", "Alternate Connection", "Malleshwaram"},
			wantReason:    "Detouring around road closure",
		},
		{
			name:          "sports event rephrases the reason",
			source:        "Hebbal",
			destination:   "Malleshwaram",
			event:         "Sports Final",
			wantWaypoints: []string{"Hebbal", "Alternate Connection", "Malleshwaram"},
			wantReason:    "Avoiding sports final traffic",
		},
		{
			name:          "unrecognized event keeps the generic reason",
			source:        "Hebbal",
			destination:   "Malleshwaram",
			event:         "Fog",
			wantWaypoints: []string{"Hebbal", "Alternate Connection", "Malleshwaram"},
			wantReason:    "Avoiding Fog by taking alternate route",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			waypoints, reason := planWaypoints(tt.source, tt.destination, tt.event)
			if diff := cmp.Diff(tt.wantWaypoints, waypoints); diff != "" {
				t.Errorf("unexpected waypoints (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}
