package engine

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine-wide tunables that §4.6/§4.9 leave to the host:
// the default ECMP cap and whether to attempt MILP solving. LoadConfig
// applies yaml.v3 over DefaultConfig so a partial file only overrides the
// fields it sets.
type Config struct {
	DefaultK   int    `yaml:"default_k"`
	EnableMILP bool   `yaml:"enable_milp"`
	LogLevel   string `yaml:"log_level"`
}

// DefaultConfig mirrors the AS-level defaults of model.newAS (K=4, ECMP on
// by default), with MILP off since no solver ships in this module.
func DefaultConfig() Config {
	return Config{
		DefaultK:   4,
		EnableMILP: false,
		LogLevel:   "info",
	}
}

// LoadConfig reads a YAML file at path over DefaultConfig's values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
