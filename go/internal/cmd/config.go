package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mcdev12/courtday/go/internal/session"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration file. Only the session constants live
// here; connection settings come from the environment.
type Config struct {
	Session session.Config `yaml:"session"`
}

func loadConfig(path string) (*Config, error) {
	config := &Config{Session: session.DefaultConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No file means defaults.
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
