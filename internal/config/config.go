// Package config provides configuration management for stocktrack.
// Configurations are loaded from TOML files with XDG-compliant paths and
// may be overridden from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Filter   FilterConfig   `toml:"filter"`
	Dispatch DispatchConfig `toml:"dispatch"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Backend  BackendConfig  `toml:"backend"`
	Export   ExportConfig   `toml:"export"`
}

// ServerConfig locates the inventory API the client talks to.
type ServerConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Timeout returns the request timeout. Zero means the transport default.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// RequestContext derives a context bounded by the request timeout.
func (s ServerConfig) RequestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.TimeoutSeconds == 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.Timeout())
}

// FilterConfig controls the inventory filter pipeline.
type FilterConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// Debounce returns the text-input debounce interval.
func (f FilterConfig) Debounce() time.Duration {
	return time.Duration(f.DebounceMS) * time.Millisecond
}

// DispatchConfig controls cross-page action dispatch.
type DispatchConfig struct {
	ReadyTimeoutMS int `toml:"ready_timeout_ms"`
}

// ReadyTimeout bounds how long dispatch waits for a page to become ready.
func (d DispatchConfig) ReadyTimeout() time.Duration {
	return time.Duration(d.ReadyTimeoutMS) * time.Millisecond
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	DateFormat  string      `toml:"date_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGreenPhosphor ColorScheme = "green_phosphor"
	ColorSchemeAmber         ColorScheme = "amber"
	ColorSchemeWhite         ColorScheme = "white"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// BackendConfig controls the development backend (stockd).
type BackendConfig struct {
	Addr         string `toml:"addr"`
	DatabasePath string `toml:"database_path"`
	Seed         bool   `toml:"seed"`
}

// ExportConfig controls snapshot and template output.
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	if c.Filter.DebounceMS < 0 {
		errs = append(errs, errors.New("filter: debounce_ms must be non-negative"))
	}

	if c.Dispatch.ReadyTimeoutMS < 0 {
		errs = append(errs, errors.New("dispatch: ready_timeout_ms must be non-negative"))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Backend.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("backend: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	var errs []error

	if s.BaseURL == "" {
		errs = append(errs, errors.New("base_url is required"))
	} else if u, err := url.Parse(s.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("invalid base_url: %w", err))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Errorf("base_url must be http or https, got %q", u.Scheme))
	}

	if s.TimeoutSeconds < 0 {
		errs = append(errs, errors.New("timeout_seconds must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	validSchemes := map[ColorScheme]bool{
		ColorSchemeGreenPhosphor: true,
		ColorSchemeAmber:         true,
		ColorSchemeWhite:         true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		return fmt.Errorf("invalid color_scheme: %s", d.ColorScheme)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Validate checks that the backend configuration is valid.
func (b *BackendConfig) Validate() error {
	var errs []error

	if b.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}

	if b.DatabasePath == "" {
		errs = append(errs, errors.New("database_path is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        "http://127.0.0.1:5000",
			TimeoutSeconds: 10,
		},
		Filter: FilterConfig{
			DebounceMS: 300,
		},
		Dispatch: DispatchConfig{
			ReadyTimeoutMS: 2000,
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeGreenPhosphor,
			DateFormat:  "2006-01-02",
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/stocktrack.log",
		},
		Backend: BackendConfig{
			Addr:         "127.0.0.1:5000",
			DatabasePath: "stocktrack.db",
			Seed:         true,
		},
		Export: ExportConfig{
			Dir: ".",
		},
	}
}
