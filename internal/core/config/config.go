// Package config provides configuration management for the OTDS ingestion tools.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds the settings shared by every otds subcommand.
type Config struct {
	Ledger  LedgerConfig
	Log     LogConfig
	Ingest  IngestConfig
	Metrics MetricsConfig
	Watch   WatchConfig
}

// LedgerConfig locates the ingestion ledger database.
type LedgerConfig struct {
	DBURL string
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// IngestConfig governs how documents are read.
type IngestConfig struct {
	// SchemaGate is "root" to check the document element and namespace
	// before parsing, or "none" to skip the gate.
	SchemaGate  string
	MaxFileSize int64
}

// MetricsConfig names the Prometheus textfile written after each run.
// Empty disables the export.
type MetricsConfig struct {
	Textfile string
}

// WatchConfig tunes the directory watcher.
type WatchConfig struct {
	Debounce   time.Duration
	Extensions []string
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		Ledger:  LedgerConfig{DBURL: "sqlite://otds-ledger.db"},
		Log:     LogConfig{Level: "info", Format: "json"},
		Ingest:  IngestConfig{SchemaGate: "root", MaxFileSize: 256 << 20},
		Metrics: MetricsConfig{},
		Watch:   WatchConfig{Debounce: 500 * time.Millisecond, Extensions: []string{".xml"}},
	}
}

// HasExtension reports whether path ends in one of the watched extensions.
// Matching is case-insensitive.
func (w WatchConfig) HasExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range w.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// validateConfig checks enumerated settings and positive limits.
func validateConfig(cfg *Config) error {
	if cfg.Ledger.DBURL == "" {
		return fmt.Errorf("ledger.db_url must not be empty")
	}
	u, err := url.Parse(cfg.Ledger.DBURL)
	if err != nil {
		return fmt.Errorf("ledger.db_url: %w", err)
	}
	if u.Scheme != "sqlite" && u.Scheme != "postgres" {
		return fmt.Errorf("ledger.db_url scheme must be sqlite or postgres, got %q", u.Scheme)
	}
	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("log.format must be json or text, got %q", cfg.Log.Format)
	}
	if cfg.Ingest.SchemaGate != "root" && cfg.Ingest.SchemaGate != "none" {
		return fmt.Errorf("ingest.schema_gate must be root or none, got %q", cfg.Ingest.SchemaGate)
	}
	if cfg.Ingest.MaxFileSize <= 0 {
		return fmt.Errorf("ingest.max_file_size must be positive, got %d", cfg.Ingest.MaxFileSize)
	}
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) == 0 {
		return fmt.Errorf("watch.extensions must list at least one extension")
	}
	return nil
}
