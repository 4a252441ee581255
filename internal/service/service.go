// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package service assembles the routing engine: provider adapters, registry,
// orchestrator, resolver, the suggestion service and the HTTP API, plus the
// scheduled provider status log.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/margsathi/margsathi-router/internal/api"
	"github.com/margsathi/margsathi-router/internal/config"
	"github.com/margsathi/margsathi-router/internal/gazetteer"
	"github.com/margsathi/margsathi-router/internal/geo"
	"github.com/margsathi/margsathi-router/internal/httpx"
	"github.com/margsathi/margsathi-router/internal/logger"
	"github.com/margsathi/margsathi-router/internal/resolve"
	"github.com/margsathi/margsathi-router/internal/route"
	"github.com/margsathi/margsathi-router/internal/route/provider/google"
	"github.com/margsathi/margsathi-router/internal/route/provider/mapbox"
	"github.com/margsathi/margsathi-router/internal/route/provider/mapmyindia"
	"github.com/margsathi/margsathi-router/internal/route/provider/osrm"
	"github.com/margsathi/margsathi-router/internal/suggest"
)

const ShutdownTimeout = time.Second * 10

// fallbackPoint is the city-center coordinate substituted for locations the
// gazetteer cannot resolve.
var fallbackPoint = geo.Point{Latitude: 12.9716, Longitude: 77.5946}

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	registry  *route.Registry
	scheduler gocron.Scheduler
	server    *http.Server
}

// New assembles the routing service from the given configuration.
func New(conf *config.Config, log *logger.Logger) (*Service, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	httpClient := httpx.New(log)
	lang := conf.LanguageTag()
	timeout := conf.Providers.Timeout

	// Registration order fixes the fallback ordering among equally
	// credentialed providers; OSRM is pinned last by the registry.
	registry, err := route.NewRegistry(route.ID(conf.Providers.Preferred),
		mapbox.New(httpClient, conf.Providers.MapboxAPIKey, lang, timeout),
		google.New(httpClient, conf.Providers.GoogleAPIKey, lang, timeout),
		mapmyindia.New(httpClient, conf.Providers.MapMyIndiaAPIKey,
			conf.Providers.MapMyIndiaClientID, conf.Providers.MapMyIndiaClientSecret, timeout),
		osrm.New(httpClient, conf.Providers.OSRMBaseURL, timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider registry: %w", err)
	}

	orchestrator := route.NewOrchestrator(registry, log)
	resolver := resolve.New(gazetteer.Bangalore(), fallbackPoint)
	suggester := suggest.New(resolver, orchestrator, log)
	apiServer := api.New(suggester, registry, log)

	return &Service{
		config:    conf,
		logger:    log,
		registry:  registry,
		scheduler: scheduler,
		server: &http.Server{
			Addr:              conf.Listen,
			Handler:           apiServer.Handler(),
			ReadHeaderTimeout: time.Second * 5,
		},
	}, nil
}

// Run starts the scheduled jobs and the HTTP server and blocks until the
// context is cancelled, then shuts both down gracefully.
func (s *Service) Run(ctx context.Context) error {
	if err := s.createScheduledJob(ctx, s.config.Intervals.StatusLog, s.logProviderStatus,
		"provider_status_job"); err != nil {
		return err
	}
	s.scheduler.Start()
	s.logProviderStatus(ctx)

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "listen", s.config.Listen)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		_ = s.scheduler.Shutdown()
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("failed to shut down HTTP server", logger.Err(err))
	}
	return s.scheduler.Shutdown()
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// logProviderStatus writes the current fallback chain to the log. API keys
// never appear here.
func (s *Service) logProviderStatus(context.Context) {
	descriptors := s.registry.Descriptors()
	chain := make([]string, 0, len(descriptors))
	for _, desc := range descriptors {
		chain = append(chain, string(desc.ID))
	}
	s.logger.Info("routing provider status",
		"preferred", string(s.registry.Preferred()),
		"chain", strings.Join(chain, " -> "),
		"providers", len(descriptors))
}
