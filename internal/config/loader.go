package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	// DefaultConfigFileName is the standard configuration file name.
	DefaultConfigFileName = "stocktrack.toml"

	// XDGConfigSubdir is the subdirectory under XDG_CONFIG_HOME for stocktrack.
	XDGConfigSubdir = "stocktrack"
)

// Environment variables that override file configuration.
const (
	EnvBaseURL  = "STOCKTRACK_BASE_URL"
	EnvLogLevel = "STOCKTRACK_LOG_LEVEL"
	EnvAddr     = "STOCKD_ADDR"
	EnvDBPath   = "STOCKD_DB_PATH"
)

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load attempts to load configuration from multiple sources in order of precedence:
// 1. Explicit path (if provided)
// 2. XDG config path (~/.config/stocktrack/stocktrack.toml)
// 3. Current working directory (./stocktrack.toml)
// 4. Default configuration (if createDefault is true)
//
// A .env file in the working directory is loaded first, and environment
// overrides are applied to whichever configuration is returned.
// Returns the loaded configuration and the path it was loaded from.
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	_ = godotenv.Load()

	cfg, path, err := load(explicitPath, createDefault)
	if err != nil {
		return nil, "", err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, "", &LoadError{Path: path, Err: err}
	}

	return cfg, path, nil
}

func load(explicitPath string, createDefault bool) (*Config, string, error) {
	if explicitPath != "" {
		cfg, err := loadFromFile(explicitPath)
		if err != nil {
			return nil, "", &LoadError{Path: explicitPath, Err: err}
		}
		return cfg, explicitPath, nil
	}

	paths := searchPaths()
	for _, path := range paths {
		if !fileExists(path) {
			continue
		}
		cfg, err := loadFromFile(path)
		if err != nil {
			return nil, "", &LoadError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	if !createDefault {
		return nil, "", fmt.Errorf("no configuration file found; searched: %s", strings.Join(paths, ", "))
	}

	// Write the defaults to the first location that accepts them. An
	// unwritable system still runs on the in-memory defaults.
	cfg := Default()
	for _, path := range paths {
		if err := Save(cfg, path); err == nil {
			return cfg, path, nil
		}
	}
	return cfg, "", nil
}

// searchPaths lists the configuration files Load tries, in order.
func searchPaths() []string {
	var paths []string
	if xdg := xdgConfigPath(); xdg != "" {
		paths = append(paths, xdg)
	}
	return append(paths, filepath.Join(".", DefaultConfigFileName))
}

// loadFromFile reads and parses a TOML configuration file.
func loadFromFile(path string) (*Config, error) {
	// Missing keys keep their defaults.
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		slog.Warn("ignoring unknown configuration keys", "path", path, "keys", fmt.Sprint(undecoded))
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Save writes a configuration to a TOML file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	header := `# stocktrack configuration
#
# This file was auto-generated. Edit as needed.
# STOCKTRACK_BASE_URL, STOCKTRACK_LOG_LEVEL, STOCKD_ADDR and STOCKD_DB_PATH
# override the values below.

`
	if _, err := f.WriteString(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	return nil
}

// xdgConfigPath returns the XDG-compliant config file path.
// Returns empty string if XDG_CONFIG_HOME is not set and HOME is not available.
func xdgConfigPath() string {
	// Check XDG_CONFIG_HOME first
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig != "" {
		return filepath.Join(xdgConfig, XDGConfigSubdir, DefaultConfigFileName)
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", XDGConfigSubdir, DefaultConfigFileName)
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ApplyEnv overrides configuration values from the environment and
// re-validates the result.
func ApplyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.Server.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = LogLevel(strings.ToLower(v))
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Backend.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		cfg.Backend.DatabasePath = v
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating environment overrides: %w", err)
	}
	return nil
}

// EnsureDataDir creates the data directory for the backend database if
// needed. Returns the path to the database file.
func EnsureDataDir(cfg *Config) (string, error) {
	dbPath := cfg.Backend.DatabasePath

	if dbPath == ":memory:" {
		return dbPath, nil
	}

	// If absolute path, use as-is
	if filepath.IsAbs(dbPath) {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("creating database directory: %w", err)
		}
		return dbPath, nil
	}

	// For relative paths, check if we should use XDG data directory
	xdgData := os.Getenv("XDG_DATA_HOME")
	if xdgData == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			xdgData = filepath.Join(home, ".local", "share")
		}
	}

	if xdgData != "" {
		dataDir := filepath.Join(xdgData, XDGConfigSubdir)
		if err := os.MkdirAll(dataDir, 0750); err != nil {
			// Fall back to current directory
			return dbPath, nil
		}
		return filepath.Join(dataDir, dbPath), nil
	}

	return dbPath, nil
}

// EnsureLogDir creates the log directory if needed.
// Returns the absolute path to the log file.
func EnsureLogDir(cfg *Config) (string, error) {
	logPath := cfg.Logging.File

	// If empty, disable file logging
	if logPath == "" {
		return "", nil
	}

	// If absolute path, use as-is
	if filepath.IsAbs(logPath) {
		dir := filepath.Dir(logPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("creating log directory: %w", err)
		}
		return logPath, nil
	}

	// Ensure relative log directory exists
	dir := filepath.Dir(logPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return "", fmt.Errorf("creating log directory: %w", err)
		}
	}

	return logPath, nil
}

// ExportPath resolves a file name against the configured export directory.
// Absolute names are returned unchanged.
func ExportPath(cfg *Config, name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}

	dir := cfg.Export.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	return filepath.Join(dir, name), nil
}
