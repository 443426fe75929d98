// Package config provides application configuration management with support for command-line flags,
// environment variables, .env files, and an optional YAML config file.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig       `koanf:"app"`
	Logger    LoggerConfig    `koanf:"logger"`
	Data      DataConfig      `koanf:"data"`
	Server    ServerConfig    `koanf:"server"`
	Autotag   AutotagConfig   `koanf:"autotag"`
	Recommend RecommendConfig `koanf:"recommend"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `koanf:"environment"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `koanf:"level"`
}

// DataConfig holds storage configuration. The SQLite database and search index live under Path.
type DataConfig struct {
	Path string `koanf:"path"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port            string        `koanf:"port"`             // Server port (default: 8080)
	ReadTimeout     time.Duration `koanf:"read_timeout"`     // HTTP read timeout (default: 15s)
	WriteTimeout    time.Duration `koanf:"write_timeout"`    // HTTP write timeout (default: 15s)
	IdleTimeout     time.Duration `koanf:"idle_timeout"`     // HTTP idle timeout (default: 60s)
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"` // Graceful shutdown limit (default: 30s)
	CORSOrigins     []string      `koanf:"cors_origins"`     // Empty disables CORS
}

// AutotagConfig holds auto-tagger configuration.
type AutotagConfig struct {
	// TablesPath points at a YAML file overriding the built-in keyword tables. Optional.
	TablesPath string `koanf:"tables_path"`
}

// RecommendConfig holds recommendation defaults.
type RecommendConfig struct {
	DefaultMax int `koanf:"default_max"`
}

// RateLimitConfig holds per-client API rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

func defaultConfig() *Config {
	return &Config{
		App:    AppConfig{Environment: "development"},
		Logger: LoggerConfig{Level: "info"},
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Recommend: RecommendConfig{DefaultMax: 10},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     20,
			Burst:   40,
		},
	}
}

// envKeys maps environment variables to config keys.
var envKeys = map[string]string{
	"ENV":                     "app.environment",
	"LOG_LEVEL":               "logger.level",
	"DATA_PATH":               "data.path",
	"SERVER_PORT":             "server.port",
	"SERVER_READ_TIMEOUT":     "server.read_timeout",
	"SERVER_WRITE_TIMEOUT":    "server.write_timeout",
	"SERVER_IDLE_TIMEOUT":     "server.idle_timeout",
	"SERVER_SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
	"CORS_ORIGINS":            "server.cors_origins",
	"AUTOTAG_TABLES":          "autotag.tables_path",
	"RECOMMEND_DEFAULT_MAX":   "recommend.default_max",
	"RATE_LIMIT_ENABLED":      "rate_limit.enabled",
	"RATE_LIMIT_RPS":          "rate_limit.rps",
	"RATE_LIMIT_BURST":        "rate_limit.burst",
}

type flagBinding struct {
	name  string
	key   string
	usage string
}

var flagBindings = []flagBinding{
	{"env", "app.environment", "Environment (development, staging, production)"},
	{"log-level", "logger.level", "Log level (debug, info, warn, error)"},
	{"data-path", "data.path", "Directory for the database and search index"},
	{"port", "server.port", "Server port (default: 8080)"},
	{"read-timeout", "server.read_timeout", "HTTP read timeout (default: 15s)"},
	{"write-timeout", "server.write_timeout", "HTTP write timeout (default: 15s)"},
	{"idle-timeout", "server.idle_timeout", "HTTP idle timeout (default: 60s)"},
	{"shutdown-timeout", "server.shutdown_timeout", "Graceful shutdown timeout (default: 30s)"},
	{"cors-origins", "server.cors_origins", "Comma-separated allowed CORS origins"},
	{"autotag-tables", "autotag.tables_path", "YAML file overriding the auto-tag keyword tables"},
	{"recommend-max", "recommend.default_max", "Default number of recommendations (default: 10)"},
	{"rate-limit", "rate_limit.enabled", "Enable per-client rate limiting (default: true)"},
	{"rate-limit-rps", "rate_limit.rps", "Requests per second per client (default: 20)"},
	{"rate-limit-burst", "rate_limit.burst", "Burst size per client (default: 40)"},
}

// sliceKeys are parsed from comma-separated strings when they come from flags or env.
var sliceKeys = []string{"server.cors_origins"}

// LoadConfig loads configuration from the process arguments. See Load.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. YAML config file (-config or CONFIG_FILE).
// 5. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("bookshelf", flag.ContinueOnError)
	flagValues := make(map[string]*string, len(flagBindings))
	for _, b := range flagBindings {
		flagValues[b.key] = fs.String(b.name, "", b.usage)
	}
	envFile := fs.String("env-file", ".env", "Path to .env file")
	configFile := fs.String("config", "", "Path to YAML config file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	path := *configFile
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Empty variables count as unset, matching the .env loader.
	if err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, any) {
		if value == "" {
			return "", nil
		}
		return envKeys[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	for key, v := range flagValues {
		if *v == "" {
			continue
		}
		if err := k.Set(key, *v); err != nil {
			return nil, fmt.Errorf("apply flag %s: %w", key, err)
		}
	}

	if err := splitSliceKeys(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if cfg.Autotag.TablesPath != "" {
		expanded, err := expandPath(cfg.Autotag.TablesPath, "")
		if err != nil {
			return nil, fmt.Errorf("invalid autotag tables path: %w", err)
		}
		cfg.Autotag.TablesPath = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.Path == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port: %q", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.IdleTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}

	if c.Recommend.DefaultMax < 1 || c.Recommend.DefaultMax > 100 {
		return fmt.Errorf("invalid recommend default max: %d (must be 1-100)", c.Recommend.DefaultMax)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("invalid rate limit: rps=%v burst=%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}

	return nil
}

// splitSliceKeys turns comma-separated string values into slices.
// YAML lists are already slices and are left alone.
func splitSliceKeys(k *koanf.Koanf) error {
	for _, key := range sliceKeys {
		s, ok := k.Get(key).(string)
		if !ok {
			continue
		}

		var parts []string
		for p := range strings.SplitSeq(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(key, parts); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute. Defaults to ~/Bookshelf/data.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Bookshelf", "data")

	expanded, err := expandPath(c.Data.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Data.Path = expanded
	return nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
