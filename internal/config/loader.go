package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads YAML file and parses it into Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(config.Chain.Endpoints) == 0 {
		return nil, fmt.Errorf("no chain endpoints configured")
	}
	if len(config.Sidechain.Endpoints) == 0 {
		return nil, fmt.Errorf("no sidechain endpoints configured")
	}

	// Defaults
	if config.Port == 0 {
		config.Port = 8080
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.AttemptTimeout == 0 {
		config.AttemptTimeout = 5
	}
	if config.FailureWindow == 0 {
		config.FailureWindow = 60
	}

	return &config, nil
}
