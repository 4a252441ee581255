// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

package route

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/margsathi/margsathi-router/internal/geo"
	"github.com/margsathi/margsathi-router/internal/logger"
)

var (
	testOrigin      = geo.Point{Latitude: 12.9352, Longitude: 77.6245, DisplayName: "Koramangala"}
	testDestination = geo.Point{Latitude: 12.9698, Longitude: 77.7499, DisplayName: "Whitefield"}
)

func testOrchestrator(t *testing.T, adapters ...Adapter) *Orchestrator {
	t.Helper()
	reg, err := NewRegistry(ProviderOSRM, adapters...)
	if err != nil {
		t.Fatalf("failed to build registry: %s", err)
	}
	return NewOrchestrator(reg, logger.New(slog.LevelError))
}

func TestOrchestrator_Route(t *testing.T) {
	t.Run("first successful provider wins", func(t *testing.T) {
		first := keyless(ProviderOSRM)
		first.leg = Leg{Geometry: "abc", DistanceMeters: 14000, DurationSeconds: 1800}

		orch := testOrchestrator(t, first)
		leg, err := orch.Route(context.Background(), testOrigin, testDestination, ModeCar)
		if err != nil {
			t.Fatalf("failed to route: %s", err)
		}
		if leg.Provider != ProviderOSRM {
			t.Errorf("expected provider %s, got %s", ProviderOSRM, leg.Provider)
		}
		if leg.DistanceMeters != 14000 {
			t.Errorf("expected distance 14000, got %f", leg.DistanceMeters)
		}
	})
	t.Run("n failures then success invokes exactly n+1 adapters", func(t *testing.T) {
		failing1 := configured(ProviderMapbox)
		failing1.err = NewProviderError(KindAuthFailure, ProviderMapbox, "key rejected")
		failing2 := configured(ProviderGoogle)
		failing2.err = NewProviderError(KindRateLimited, ProviderGoogle, "quota exceeded")
		winning := configured(ProviderMapMyIndia)
		winning.leg = Leg{Geometry: "xyz", DistanceMeters: 12500, DurationSeconds: 1500}
		untried := keyless(ProviderOSRM)
		untried.leg = Leg{Geometry: "never", DistanceMeters: 1, DurationSeconds: 1}

		orch := testOrchestrator(t, failing1, failing2, winning, untried)
		leg, err := orch.Route(context.Background(), testOrigin, testDestination, ModeCar)
		if err != nil {
			t.Fatalf("failed to route: %s", err)
		}
		if leg.Provider != ProviderMapMyIndia {
			t.Errorf("expected provider %s, got %s", ProviderMapMyIndia, leg.Provider)
		}
		if failing1.calls != 1 || failing2.calls != 1 || winning.calls != 1 {
			t.Errorf("expected each attempted adapter to be called once, got %d/%d/%d",
				failing1.calls, failing2.calls, winning.calls)
		}
		if untried.calls != 0 {
			t.Errorf("expected later providers to remain untried, got %d calls", untried.calls)
		}
	})
	t.Run("exhaustion carries one diagnostic per provider", func(t *testing.T) {
		kinds := []ErrorKind{KindAuthFailure, KindRateLimited, KindTimeout, KindMalformedResponse}
		ids := []ID{ProviderMapbox, ProviderGoogle, ProviderMapMyIndia, ProviderOSRM}
		adapters := make([]Adapter, 0, len(ids))
		for i, id := range ids {
			adapter := configured(id)
			if id == ProviderOSRM {
				adapter = keyless(id)
			}
			adapter.err = NewProviderError(kinds[i], id, "intentionally failing")
			adapters = append(adapters, adapter)
		}

		orch := testOrchestrator(t, adapters...)
		_, err := orch.Route(context.Background(), testOrigin, testDestination, ModeCar)
		if err == nil {
			t.Fatal("expected route to fail")
		}
		exhausted, ok := IsExhausted(err)
		if !ok {
			t.Fatalf("expected ExhaustedError, got %T", err)
		}
		if len(exhausted.Attempts) != len(ids) {
			t.Fatalf("expected %d diagnostics, got %d", len(ids), len(exhausted.Attempts))
		}
		for i, attempt := range exhausted.Attempts {
			if attempt.Kind != kinds[i] {
				t.Errorf("expected diagnostic %d to have kind %s, got %s", i, kinds[i], attempt.Kind)
			}
		}
	})
	t.Run("unclassified failures are treated as malformed responses", func(t *testing.T) {
		failing := keyless(ProviderOSRM)
		failing.err = errors.New("something unexpected")

		orch := testOrchestrator(t, failing)
		_, err := orch.Route(context.Background(), testOrigin, testDestination, ModeCar)
		exhausted, ok := IsExhausted(err)
		if !ok {
			t.Fatalf("expected ExhaustedError, got %T", err)
		}
		if exhausted.Attempts[0].Kind != KindMalformedResponse {
			t.Errorf("expected malformed response kind, got %s", exhausted.Attempts[0].Kind)
		}
	})
	t.Run("cancellation abandons the walk", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		first := configured(ProviderMapbox)
		first.routeFn = func(context.Context) (Leg, error) {
			cancel()
			return Leg{}, context.Canceled
		}
		second := keyless(ProviderOSRM)

		orch := testOrchestrator(t, first, second)
		_, err := orch.Route(ctx, testOrigin, testDestination, ModeCar)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if second.calls != 0 {
			t.Errorf("expected no further adapters after cancellation, got %d calls", second.calls)
		}
	})
	t.Run("fresh run retries a previously failed provider", func(t *testing.T) {
		flaky := keyless(ProviderOSRM)
		flaky.routeFn = func(context.Context) (Leg, error) {
			if flaky.calls == 1 {
				return Leg{}, NewProviderError(KindTimeout, ProviderOSRM, "request timed out")
			}
			return Leg{DistanceMeters: 100}, nil
		}

		orch := testOrchestrator(t, flaky)
		if _, err := orch.Route(context.Background(), testOrigin, testDestination, ModeCar); err == nil {
			t.Fatal("expected first run to fail")
		}
		if _, err := orch.Route(context.Background(), testOrigin, testDestination, ModeCar); err != nil {
			t.Fatalf("expected second run to succeed, got %s", err)
		}
		if flaky.calls != 2 {
			t.Errorf("expected two calls across two runs, got %d", flaky.calls)
		}
	})
}
