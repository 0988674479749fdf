// Package config resolves runtime configuration for both processes:
// built-in defaults, then an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config carries settings for the simulator and aggregator processes.
type Config struct {
	// Aggregator side.
	SimulatorBaseURL    string   `yaml:"simulator_base_url"`
	PollIntervalSeconds float64  `yaml:"poll_interval_seconds"`
	GridSize            int      `yaml:"grid_size"`
	FrontendOrigins     []string `yaml:"frontend_origins"`
	AggregatorAddr      string   `yaml:"aggregator_addr"`
	GeminiAPIKey        string   `yaml:"gemini_api_key"`
	DecisionLogPath     string   `yaml:"decision_log_path"`

	// Simulator side.
	SimulatorAddr    string   `yaml:"simulator_addr"`
	SimulatorOrigins []string `yaml:"simulator_origins"`
	Seed             int64    `yaml:"seed"`
}

func localhostOrigins() []string {
	return []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:8000",
		"http://127.0.0.1:8000",
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SimulatorBaseURL:    "http://127.0.0.1:8001",
		PollIntervalSeconds: 1.0,
		GridSize:            50,
		FrontendOrigins:     localhostOrigins(),
		AggregatorAddr:      ":8000",
		DecisionLogPath:     "logs/ai_decisions.jsonl",
		SimulatorAddr:       ":8001",
		SimulatorOrigins:    localhostOrigins(),
		Seed:                42,
	}
}

// Load resolves configuration: defaults, overridden by the YAML file at path
// (when non-empty), overridden by environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SIMULATOR_BASE_URL"); v != "" {
		c.SimulatorBaseURL = v
	}
	if v := os.Getenv("SIM_POLL_INTERVAL_SECONDS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: SIM_POLL_INTERVAL_SECONDS: %w", err)
		}
		c.PollIntervalSeconds = f
	}
	if v := os.Getenv("SIM_GRID_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: SIM_GRID_SIZE: %w", err)
		}
		c.GridSize = n
	}
	if v := os.Getenv("FRONTEND_ORIGINS"); v != "" {
		c.FrontendOrigins = splitOrigins(v)
	}
	if v := os.Getenv("SIMULATOR_ALLOWED_ORIGINS"); v != "" {
		c.SimulatorOrigins = splitOrigins(v)
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	return nil
}

func splitOrigins(v string) []string {
	var origins []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
