// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

// Package config loads Discograph configuration using Koanf v2 with
// layered sources (highest priority wins):
//
//  1. Environment variables (DISCOGRAPH_SERVER_PORT, DISCOGRAPH_MONGO_URI, ...)
//  2. Optional YAML config file (config.yaml)
//  3. Built-in defaults
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/discograph/config.yaml",
	"/etc/discograph/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "DISCOGRAPH_CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping them to
// koanf paths: DISCOGRAPH_SERVER_PORT -> server.port.
const envPrefix = "DISCOGRAPH_"

// Config is the root configuration for the Discograph server.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Mongo     MongoConfig     `koanf:"mongo"`
	Logging   LoggingConfig   `koanf:"logging"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Recommend RecommendConfig `koanf:"recommend"`
	Collab    CollabConfig    `koanf:"collab"`
	Analytics AnalyticsConfig `koanf:"analytics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// MongoConfig holds catalog store connection settings.
type MongoConfig struct {
	URI            string        `koanf:"uri" validate:"required"`
	Database       string        `koanf:"database" validate:"required"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// RateLimitConfig holds per-IP request rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `koanf:"enabled"`
	RequestsPerMinute int  `koanf:"requests_per_minute" validate:"min=1"`
}

// RecommendConfig tunes the recommendation engine. The defaults reproduce
// the dashboard behavior: six candidate sections with fixed caps and a
// 24 hour result cache on the user record.
type RecommendConfig struct {
	// CacheTTL is the freshness window for the persisted per-user cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// Section caps.
	SimilarArtistLimit int `koanf:"similar_artist_limit" validate:"min=1,max=100"`
	LabelAlbumLimit    int `koanf:"label_album_limit" validate:"min=1,max=100"`
	RecentAlbumLimit   int `koanf:"recent_album_limit" validate:"min=1,max=100"`
	GenreTrackLimit    int `koanf:"genre_track_limit" validate:"min=1,max=100"`
	TrendingTrackLimit int `koanf:"trending_track_limit" validate:"min=1,max=100"`
	PopularArtistLimit int `koanf:"popular_artist_limit" validate:"min=1,max=100"`

	// TopLabelCount is how many of the user's most-liked labels feed the
	// label-albums section.
	TopLabelCount int `koanf:"top_label_count" validate:"min=1"`

	// RecentWindow bounds the recent-releases section.
	RecentWindow time.Duration `koanf:"recent_window"`

	// TrendingMinPopularity gates the global trending-tracks section.
	TrendingMinPopularity int `koanf:"trending_min_popularity" validate:"min=0,max=100"`

	// FallbackMinPopularity gates the genre-agnostic recent-releases
	// fallback used when the user has no genre preferences.
	FallbackMinPopularity int `koanf:"fallback_min_popularity" validate:"min=0,max=100"`

	// GenreArtistScanLimit bounds the artist resolution step feeding the
	// popular-tracks-in-favorite-genres section.
	GenreArtistScanLimit int `koanf:"genre_artist_scan_limit" validate:"min=1"`

	// MinSections triggers the popular-artists fallback when fewer
	// preference-driven sections were produced.
	MinSections int `koanf:"min_sections" validate:"min=0"`
}

// CollabConfig tunes the collaboration graph builder. TargetGenres
// restricts the candidate artist population to a named scene; it is a
// configuration input rather than a hard-coded list.
type CollabConfig struct {
	TargetGenres   []string `koanf:"target_genres" validate:"min=1"`
	CandidateLimit int      `koanf:"candidate_limit" validate:"min=1"`
	MaxMinCount    int      `koanf:"max_min_count" validate:"min=1"`
}

// AnalyticsConfig tunes the supplemental catalog analytics endpoints.
type AnalyticsConfig struct {
	DefaultLabelLimit int `koanf:"default_label_limit" validate:"min=1"`
	MaxLabelLimit     int `koanf:"max_label_limit" validate:"min=1"`
}

// defaultConfig returns a Config with all defaults applied. Defaults are
// loaded first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8337,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Mongo: MongoConfig{
			URI:            "mongodb://127.0.0.1:27017",
			Database:       "discograph",
			ConnectTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 300,
		},
		Recommend: RecommendConfig{
			CacheTTL:              24 * time.Hour,
			SimilarArtistLimit:    8,
			LabelAlbumLimit:       8,
			RecentAlbumLimit:      8,
			GenreTrackLimit:       10,
			TrendingTrackLimit:    10,
			PopularArtistLimit:    8,
			TopLabelCount:         3,
			RecentWindow:          2 * 365 * 24 * time.Hour,
			TrendingMinPopularity: 70,
			FallbackMinPopularity: 50,
			GenreArtistScanLimit:  100,
			MinSections:           3,
		},
		Collab: CollabConfig{
			TargetGenres:   []string{"rap", "hip hop", "trap", "r&b", "drill"},
			CandidateLimit: 300,
			MaxMinCount:    1000,
		},
		Analytics: AnalyticsConfig{
			DefaultLabelLimit: 20,
			MaxLabelLimit:     100,
		},
	}
}

// Load loads configuration with layered sources: defaults, then an
// optional YAML file, then environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// DISCOGRAPH_MONGO_URI -> mongo.uri, DISCOGRAPH_SERVER_PORT -> server.port
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransform maps DISCOGRAPH_SECTION_KEY_NAME to section.key_name.
// Only the first underscore separates the section from the key; the rest
// of the name is kept as-is so multi-word keys resolve correctly.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// findConfigFile returns the first existing config file path, honoring
// the DISCOGRAPH_CONFIG_PATH override, or empty string when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
