// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

// Package main implements the margsathi-router service.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/margsathi/margsathi-router/internal/config"
	"github.com/margsathi/margsathi-router/internal/logger"
	"github.com/margsathi/margsathi-router/internal/service"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT,
		os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	// Local development overrides
	_ = godotenv.Load()

	// Read config
	confPath := flag.String("config", "", "path to the config file")
	flag.Parse()
	conf, err := config.New()
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	if *confPath != "" {
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
	}
	log = logger.New(conf.LogLevel)

	// Initialize the service
	serv, err := service.New(conf, log)
	if err != nil {
		log.Error("failed to initialize margsathi-router service", logger.Err(err))
		os.Exit(1)
	}

	// Start the service loop
	log.Info("starting margsathi-router service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error("failed to run margsathi-router service", logger.Err(err))
		os.Exit(1)
	}
	log.Info("shutting down margsathi-router service")
}
