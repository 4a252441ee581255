// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

package route

import (
	"context"
	"errors"
	"log/slog"

	"github.com/margsathi/margsathi-router/internal/geo"
	"github.com/margsathi/margsathi-router/internal/logger"
)

// Orchestrator walks the registry's fallback chain, invoking one adapter at
// a time until one succeeds. Attempts are strictly sequential: parallel
// speculative calls to paid providers would multiply billed requests for no
// benefit once a priority order is already expressed. A provider that fails
// is skipped for the remainder of the run only; the next run starts fresh.
type Orchestrator struct {
	registry *Registry
	logger   *logger.Logger
}

// NewOrchestrator returns an Orchestrator over the given registry.
func NewOrchestrator(registry *Registry, logger *logger.Logger) *Orchestrator {
	return &Orchestrator{
		registry: registry,
		logger:   logger,
	}
}

// Route tries each provider in fallback order and returns the first
// successful canonical leg, annotated with the provider that served it.
// When every provider fails, it returns an ExhaustedError carrying one
// diagnostic entry per attempted provider. Cancellation of ctx abandons the
// walk immediately.
func (o *Orchestrator) Route(ctx context.Context, origin, destination geo.Point, mode Mode) (Leg, error) {
	attempts := make([]*ProviderError, 0, len(o.registry.Chain()))

	for _, adapter := range o.registry.Chain() {
		if err := ctx.Err(); err != nil {
			return Leg{}, err
		}

		id := adapter.Describe().ID
		o.logger.Info("attempting route with provider", slog.String("provider", string(id)))

		leg, err := adapter.Route(ctx, origin, destination, mode)
		if err == nil {
			leg.Provider = id
			o.logger.Info("route retrieved", slog.String("provider", string(id)),
				slog.Float64("distance_meters", leg.DistanceMeters))
			return leg, nil
		}

		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return Leg{}, err
		}

		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			// Adapters should only fail with ProviderError; anything else
			// counts as a malformed response from that provider.
			provErr = WrapProviderError(KindMalformedResponse, id, "unclassified adapter failure", err)
		}
		o.logger.Warn("provider failed, trying next", slog.String("provider", string(id)),
			slog.String("kind", provErr.Kind.String()), logger.Err(provErr))
		attempts = append(attempts, provErr)
	}

	o.logger.Error("all routing providers failed", slog.Int("attempted", len(attempts)))
	return Leg{}, &ExhaustedError{Attempts: attempts}
}
