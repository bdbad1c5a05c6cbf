package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tenseg/internal/physics"
)

const (
	DefaultCode     = "(L, 3)"
	DefaultMaxTicks = 4000
)

type Config struct {
	// Code is the tenscript program to grow.
	Code string `yaml:"code"`
	// MaxTicks bounds a run; a stuck structure stops here.
	MaxTicks int `yaml:"max_ticks"`
	// Pretense drives the run through slack and pretensing to pretenst
	// once shaping has settled.
	Pretense bool          `yaml:"pretense"`
	World    physics.World `yaml:"world"`
}

func DefaultConfig() *Config {
	return &Config{
		Code:     DefaultCode,
		MaxTicks: DefaultMaxTicks,
		Pretense: true,
		World:    physics.DefaultWorld(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
