package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the process configuration, loaded from a yaml file.
type Config struct {
	Addr             string        `yaml:"addr"`
	LogLevel         string        `yaml:"log_level"`
	Pretty           bool          `yaml:"pretty"`
	PlansDir         string        `yaml:"plans_dir"`
	ExecutionTimeout time.Duration `yaml:"execution_timeout"`
	DefaultStrategy  string        `yaml:"default_strategy"`
}

func Default() Config {
	return Config{
		Addr:             ":8080",
		LogLevel:         "info",
		Pretty:           true,
		PlansDir:         "plans",
		ExecutionTimeout: 5 * time.Minute,
	}
}

// Load reads a config file over the defaults. A missing path is not an error;
// the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
