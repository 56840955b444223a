// Package config loads engine configuration from environment variables with
// an optional YAML overlay file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultRPCURL is the public IOTA testnet endpoint used when no node is
// configured.
const DefaultRPCURL = "https://api.testnet.iota.cafe"

// Config holds engine configuration.
type Config struct {
	LogLevel         string          `yaml:"log_level"`
	MaxAncestryDepth int             `yaml:"max_ancestry_depth"`
	Anchoring        AnchoringConfig `yaml:"anchoring"`
	Telemetry        TelemetryConfig `yaml:"telemetry"`
}

// AnchoringConfig selects and configures the anchoring network adapter.
type AnchoringConfig struct {
	Network    string `yaml:"network"` // "mock" | "testnet"
	RPCURL     string `yaml:"rpc_url"`
	PrivateKey string `yaml:"private_key"`
	PackageID  string `yaml:"package_id"`
}

// TelemetryConfig configures OTLP trace export.
type TelemetryConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Endpoint   string  `yaml:"endpoint"`
	Insecure   bool    `yaml:"insecure"`
	SampleRate float64 `yaml:"sample_rate"`
}

// Load loads configuration from environment variables.
func Load() *Config {
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	maxDepth := 0
	if raw := os.Getenv("NOTIA_MAX_DEPTH"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			maxDepth = n
		}
	}

	network := os.Getenv("NOTIA_ANCHOR_NETWORK")
	if network == "" {
		network = "mock"
	}

	rpcURL := os.Getenv("IOTA_RPC_URL")
	if rpcURL == "" {
		rpcURL = DefaultRPCURL
	}

	sampleRate := 1.0
	if raw := os.Getenv("OTEL_SAMPLE_RATE"); raw != "" {
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			sampleRate = f
		}
	}

	return &Config{
		LogLevel:         logLevel,
		MaxAncestryDepth: maxDepth,
		Anchoring: AnchoringConfig{
			Network:    network,
			RPCURL:     rpcURL,
			PrivateKey: os.Getenv("IOTA_PRIVATE_KEY"),
			PackageID:  os.Getenv("IOTA_NOTARIZATION_PKG_ID"),
		},
		Telemetry: TelemetryConfig{
			Enabled:    os.Getenv("OTEL_ENABLED") == "true",
			Endpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:   os.Getenv("OTEL_EXPORTER_OTLP_INSECURE") == "true",
			SampleRate: sampleRate,
		},
	}
}

// LoadWithFile loads configuration from the environment and overlays the
// given YAML file on top. Values present in the file win over env values.
func LoadWithFile(path string) (*Config, error) {
	cfg := Load()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}
