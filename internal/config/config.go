package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults match the reference scenario: a 800x600 box of 3000 discs of
// radius 5 with speeds drawn from [1, 10].
const (
	DefaultWidth     = 800.0
	DefaultHeight    = 600.0
	DefaultRadius    = 5.0
	DefaultDt        = 1.0
	DefaultParticles = 3000
	DefaultMinSpeed  = 1.0
	DefaultMaxSpeed  = 10.0
	DefaultSteps     = 1000
)

type Config struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Radius    float64 `yaml:"radius"`
	Dt        float64 `yaml:"dt"`
	Particles int     `yaml:"particles"`
	MinSpeed  float64 `yaml:"min_speed"`
	MaxSpeed  float64 `yaml:"max_speed"`
	Steps     int     `yaml:"steps"`
	Seed      int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Radius:    DefaultRadius,
		Dt:        DefaultDt,
		Particles: DefaultParticles,
		MinSpeed:  DefaultMinSpeed,
		MaxSpeed:  DefaultMaxSpeed,
		Steps:     DefaultSteps,
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
