// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

package osrm

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/margsathi/margsathi-router/internal/geo"
	"github.com/margsathi/margsathi-router/internal/httpx"
	"github.com/margsathi/margsathi-router/internal/logger"
	"github.com/margsathi/margsathi-router/internal/route"
	"github.com/margsathi/margsathi-router/internal/testhelper"
)

const (
	routeFile   = "../../../../testdata/osrm_route.json"
	noRouteFile = "../../../../testdata/osrm_noroute.json"
)

var (
	testOrigin      = geo.Point{Latitude: 12.9352, Longitude: 77.6245}
	testDestination = geo.Point{Latitude: 12.9698, Longitude: 77.7499}
)

func TestNew(t *testing.T) {
	t.Run("empty base URL falls back to the demo server", func(t *testing.T) {
		adapter := New(testClient(), "", 0)
		if adapter.baseURL != DefaultBaseURL {
			t.Errorf("expected base URL to be %q, got %q", DefaultBaseURL, adapter.baseURL)
		}
		if adapter.timeout != DefaultTimeout {
			t.Errorf("expected timeout to be %s, got %s", DefaultTimeout, adapter.timeout)
		}
	})
	t.Run("trailing slash is trimmed from the base URL", func(t *testing.T) {
		adapter := New(testClient(), "http://localhost:5000/", time.Second)
		if adapter.baseURL != "http://localhost:5000" {
			t.Errorf("expected base URL to be trimmed, got %q", adapter.baseURL)
		}
	})
}

func TestOSRM_Describe(t *testing.T) {
	adapter := New(testClient(), "", 0)
	desc := adapter.Describe()
	if desc.ID != route.ProviderOSRM {
		t.Errorf("expected provider ID to be %q, got %q", route.ProviderOSRM, desc.ID)
	}
	if !desc.CredentialsPresent {
		t.Error("expected adapter to always report present credentials")
	}
	if desc.RequiresKey {
		t.Error("expected adapter to not require an API key")
	}
}

func TestOSRM_Route(t *testing.T) {
	t.Run("routing succeeds", func(t *testing.T) {
		var requested *stdhttp.Request
		adapter := testAdapter(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			requested = req
			return fileResponse(t, routeFile), nil
		})

		leg, err := adapter.Route(context.Background(), testOrigin, testDestination, route.ModeCar)
		if err != nil {
			t.Fatal(err)
		}
		if leg.DistanceMeters != 15400.2 {
			t.Errorf("expected distance to be 15400.2, got %f", leg.DistanceMeters)
		}
		if leg.DurationSeconds != 2712.5 {
			t.Errorf("expected duration to be 2712.5, got %f", leg.DurationSeconds)
		}
		if leg.Geometry == "" {
			t.Error("expected a non-empty geometry")
		}
		if len(leg.Steps) != 3 {
			t.Fatalf("expected 3 steps, got %d", len(leg.Steps))
		}
		if leg.Steps[1].Instruction != "turn left onto Old Airport Road" {
			t.Errorf("unexpected step instruction: %q", leg.Steps[1].Instruction)
		}
		if leg.Steps[0].Location == nil || leg.Steps[0].Location.Latitude != 12.9352 {
			t.Error("expected step location in lat/lon order")
		}
		if !strings.Contains(requested.URL.Path, "/route/v1/driving/") {
			t.Errorf("expected driving profile in request path, got %q", requested.URL.Path)
		}
		if requested.URL.Query().Get("geometries") != "polyline6" {
			t.Error("expected polyline6 geometries to be requested")
		}
		if requested.URL.Query().Get("steps") != "true" {
			t.Error("expected steps to be requested")
		}
	})
	t.Run("no route found fails with a malformed response error", func(t *testing.T) {
		adapter := testAdapter(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return fileResponse(t, noRouteFile), nil
		})

		_, err := adapter.Route(context.Background(), testOrigin, testDestination, route.ModeCar)
		assertKind(t, err, route.KindMalformedResponse)
	})
	t.Run("rate limiting status is classified", func(t *testing.T) {
		adapter := testAdapter(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 429,
				Body:       stdhttp.NoBody,
				Header:     make(stdhttp.Header),
			}, nil
		})

		_, err := adapter.Route(context.Background(), testOrigin, testDestination, route.ModeCar)
		assertKind(t, err, route.KindRateLimited)
	})
	t.Run("transport failure is classified as a timeout", func(t *testing.T) {
		adapter := testAdapter(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		})

		_, err := adapter.Route(context.Background(), testOrigin, testDestination, route.ModeCar)
		assertKind(t, err, route.KindTimeout)
	})
	t.Run("broken response body fails", func(t *testing.T) {
		adapter := testAdapter(t, func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       stdhttp.NoBody,
				Header:     make(stdhttp.Header),
			}, nil
		})

		_, err := adapter.Route(context.Background(), testOrigin, testDestination, route.ModeCar)
		assertKind(t, err, route.KindMalformedResponse)
	})
}

func TestOSRM_profile(t *testing.T) {
	tests := []struct {
		mode route.Mode
		want string
	}{
		{route.ModeCar, "driving"},
		{route.ModeBike, "bicycle"},
		{route.ModeWalk, "foot"},
		{route.ModeTransit, "driving"},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if got := profile(tt.mode); got != tt.want {
				t.Errorf("expected profile %q for mode %q, got %q", tt.want, tt.mode, got)
			}
		})
	}
}

func testClient() *httpx.Client {
	return httpx.New(logger.NewLogger(slog.LevelDebug, os.Stderr))
}

func testAdapter(t *testing.T, fn func(req *stdhttp.Request) (*stdhttp.Response, error)) *OSRM {
	t.Helper()
	client := testClient()
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	return New(client, "", 0)
}

func fileResponse(t *testing.T, path string) *stdhttp.Response {
	t.Helper()
	data, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open JSON response file: %s", err)
	}
	return &stdhttp.Response{
		StatusCode: 200,
		Body:       data,
		Header:     make(stdhttp.Header),
	}
}

func assertKind(t *testing.T, err error, kind route.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected routing to fail")
	}
	var provErr *route.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected a provider error, got %T: %s", err, err)
	}
	if provErr.Kind != kind {
		t.Errorf("expected error kind %q, got %q", kind, provErr.Kind)
	}
}
