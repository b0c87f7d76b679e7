// Package config provides application-wide configuration loaded from env vars.
// All fields have safe defaults so the binary runs locally without any env setup.
// An optional YAML file (SALESBRIDGE_CONFIG) can override defaults; env vars
// win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for salesbridge.
type Config struct {
	// HTTP server
	Host string // SALESBRIDGE_HOST — default: "0.0.0.0"
	Port int    // SALESBRIDGE_PORT — default: 9000

	// Salesforce REST API
	APIVersion  string        // SALESBRIDGE_SF_API_VERSION — default: "v59.0"
	HTTPTimeout time.Duration // SALESBRIDGE_SF_HTTP_TIMEOUT — default: 30s
}

const (
	envKeyConfigFile  = "SALESBRIDGE_CONFIG"
	envKeyHost        = "SALESBRIDGE_HOST"
	envKeyPort        = "SALESBRIDGE_PORT"
	envKeyAPIVersion  = "SALESBRIDGE_SF_API_VERSION"
	envKeyHTTPTimeout = "SALESBRIDGE_SF_HTTP_TIMEOUT"
)

// fileConfig mirrors Config for YAML parsing; all fields optional.
type fileConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	APIVersion  string `yaml:"api_version"`
	HTTPTimeout string `yaml:"http_timeout"`
}

// Default returns the built-in configuration: the fixed external surface
// (port 9000) with no overrides applied.
func Default() Config {
	return Config{
		Host:        "0.0.0.0",
		Port:        9000,
		APIVersion:  "v59.0",
		HTTPTimeout: 30 * time.Second,
	}
}

// Load reads configuration, lowest precedence first: built-in defaults,
// then the optional YAML file named by SALESBRIDGE_CONFIG, then env vars.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(envKeyConfigFile); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.APIVersion != "" {
		cfg.APIVersion = fc.APIVersion
	}
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("parse http_timeout in %s: %w", path, err)
		}
		cfg.HTTPTimeout = d
	}

	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Host = envOr(envKeyHost, cfg.Host)
	cfg.APIVersion = envOr(envKeyAPIVersion, cfg.APIVersion)

	if v := os.Getenv(envKeyPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envKeyPort, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv(envKeyHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envKeyHTTPTimeout, err)
		}
		cfg.HTTPTimeout = d
	}

	return nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
