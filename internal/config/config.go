// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Xuanwo/go-locale"
	"github.com/kkyr/fig"
	"golang.org/x/text/language"
)

const (
	configEnv = "MARGSATHI"

	// DefaultOSRMBaseURL is the public OSRM demo server. OSRM requires no
	// credentials, so it always serves as the last-resort provider.
	DefaultOSRMBaseURL = "https://router.project-osrm.org"
)

// Config represents the application's configuration structure.
type Config struct {
	Listen   string     `fig:"listen" default:":8080"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	Providers struct {
		// Allowed values: osrm, mapbox, google, mapmyindia
		Preferred string        `fig:"preferred" default:"osrm"`
		Timeout   time.Duration `fig:"timeout" default:"10s"`

		OSRMBaseURL string `fig:"osrm_base_url"`

		MapboxAPIKey string `fig:"mapbox_api_key"`
		GoogleAPIKey string `fig:"google_api_key"`

		MapMyIndiaAPIKey       string `fig:"mapmyindia_api_key"`
		MapMyIndiaClientID     string `fig:"mapmyindia_client_id"`
		MapMyIndiaClientSecret string `fig:"mapmyindia_client_secret"`
	} `fig:"providers"`

	Intervals struct {
		StatusLog time.Duration `fig:"status_log" default:"15m"`
	} `fig:"intervals"`
}

// NewFromFile loads the configuration from the given file, applying
// environment overrides.
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// New loads the configuration from the environment only.
func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate normalizes and validates the configuration.
func (c *Config) Validate() error {
	c.Providers.Preferred = strings.ToLower(strings.TrimSpace(c.Providers.Preferred))
	switch c.Providers.Preferred {
	case "osrm", "mapbox", "google", "mapmyindia":
	case "":
		c.Providers.Preferred = "osrm"
	default:
		return fmt.Errorf("invalid preferred provider: %s", c.Providers.Preferred)
	}
	if c.Providers.OSRMBaseURL == "" {
		c.Providers.OSRMBaseURL = DefaultOSRMBaseURL
	}
	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("invalid provider timeout: %s", c.Providers.Timeout)
	}
	if c.Intervals.StatusLog <= 0 {
		return fmt.Errorf("invalid status log interval: %s", c.Intervals.StatusLog)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}

	return nil
}

// LanguageTag returns the configured locale as a language.Tag. An
// unparseable or empty locale falls back to English.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

func getLocale() string {
	tag, err := locale.Detect()
	if err != nil {
		return language.English.String()
	}
	return tag.String()
}
