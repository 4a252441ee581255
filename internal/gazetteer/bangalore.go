// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

package gazetteer

import (
	"github.com/margsathi/margsathi-router/internal/geo"
)

// Bangalore returns the built-in gazetteer of well-known Bangalore
// localities. The table order matters for partial matches, see Find.
func Bangalore() *Gazetteer {
	table, err := New([]Entry{
		{Key: "btm layout", Point: geo.Point{Latitude: 12.9166, Longitude: 77.6101, DisplayName: "BTM Layout"}},
		{Key: "mg road", Point: geo.Point{Latitude: 12.9716, Longitude: 77.5946, DisplayName: "MG Road"}},
		{Key: "jp nagar", Point: geo.Point{Latitude: 12.9067, Longitude: 77.5858, DisplayName: "JP Nagar"}},
		{Key: "richmond road", Point: geo.Point{Latitude: 12.9500, Longitude: 77.6000, DisplayName: "Richmond Road"}},
		{Key: "lalbagh", Point: geo.Point{Latitude: 12.9507, Longitude: 77.5848, DisplayName: "Lalbagh"}},
		{Key: "indiranagar", Point: geo.Point{Latitude: 12.9784, Longitude: 77.6408, DisplayName: "Indiranagar"}},
		{Key: "koramangala", Point: geo.Point{Latitude: 12.9352, Longitude: 77.6245, DisplayName: "Koramangala"}},
		{Key: "whitefield", Point: geo.Point{Latitude: 12.9698, Longitude: 77.7499, DisplayName: "Whitefield"}},
		{Key: "marathahalli", Point: geo.Point{Latitude: 12.9592, Longitude: 77.6974, DisplayName: "Marathahalli"}},
		{Key: "hebbal", Point: geo.Point{Latitude: 13.0358, Longitude: 77.5970, DisplayName: "Hebbal"}},
		{Key: "electronic city", Point: geo.Point{Latitude: 12.8456, Longitude: 77.6633, DisplayName: "Electronic City"}},
		{Key: "cubbon park", Point: geo.Point{Latitude: 12.9716, Longitude: 77.5946, DisplayName: "Cubbon Park"}},
		{Key: "ulsoor", Point: geo.Point{Latitude: 12.9784, Longitude: 77.6408, DisplayName: "Ulsoor"}},
		{Key: "malleshwaram", Point: geo.Point{Latitude: 13.0050, Longitude: 77.5610, DisplayName: "Malleshwaram"}},
		{Key: "rajajinagar", Point: geo.Point{Latitude: 12.9784, Longitude: 77.5510, DisplayName: "Rajajinagar"}},
	})
	if err != nil {
		// The built-in table is constant, a construction failure is a
		// programming error.
		panic(err)
	}
	return table
}
