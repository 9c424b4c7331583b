package controller

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xinwenxu/eyemech"
)

// Config contains serial connection settings.
type Config struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// DefaultConfig returns a configuration with the standard baud rate and the
// port left to be filled in from the environment or flags.
func DefaultConfig() Config {
	return Config{BaudRate: eyemech.DefaultBaudRate}
}

// LoadConfig reads a YAML configuration file. Missing fields keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.BaudRate == 0 {
		cfg.BaudRate = eyemech.DefaultBaudRate
	}

	return cfg, nil
}
