package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	NumLifts          = 8
	LiftCapacity      = 10
	CapacityThreshold = 0.8
	MaxIterations     = 3600
	MaxVelocity       = 5.0
	Acceleration      = 1.0
	DoorTime          = 0.0
	FloorHeight       = 4.0

	// StarvationLimit is how many ticks a boarded passenger may wait before
	// the lift departs regardless of load.
	StarvationLimit = 10

	// QueueAlertLength is the lift queue length above which a warning is logged.
	QueueAlertLength = 10

	// Assignment throttle: per tick, between MinAssignBatch (inclusive) and
	// MaxAssignBatch (exclusive) waiting passengers are routed to a lift.
	MinAssignBatch = 2
	MaxAssignBatch = 5
)

// Config holds one simulation run's parameters.
type Config struct {
	Strategy          string  `yaml:"Strategy"`
	Lifts             int     `yaml:"Lifts"`
	Capacity          int     `yaml:"Capacity"`
	CapacityThreshold float64 `yaml:"CapacityThreshold"`
	Iterations        int     `yaml:"Iterations"`
	MaxVelocity       float64 `yaml:"MaxVelocity"`
	Acceleration      float64 `yaml:"Acceleration"`
	DoorTime          float64 `yaml:"DoorTime"`
	FloorHeight       float64 `yaml:"FloorHeight"`
	Seed              int64   `yaml:"Seed"`
}

// Default returns the stock lift bank configuration.
func Default() Config {
	return Config{
		Strategy:          "greedy",
		Lifts:             NumLifts,
		Capacity:          LiftCapacity,
		CapacityThreshold: CapacityThreshold,
		Iterations:        MaxIterations,
		MaxVelocity:       MaxVelocity,
		Acceleration:      Acceleration,
		DoorTime:          DoorTime,
		FloorHeight:       FloorHeight,
		Seed:              1,
	}
}

// Load reads a yaml config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks the numeric ranges. Strategy names are validated by the
// dispatch package when the strategy is constructed.
func (c Config) Validate() error {
	if c.Lifts < 1 {
		return fmt.Errorf("config: lift count must be at least 1, got %d", c.Lifts)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("config: lift capacity must be at least 1, got %d", c.Capacity)
	}
	if c.CapacityThreshold < 0 || c.CapacityThreshold > 1 {
		return fmt.Errorf("config: capacity threshold must be between 0 and 1 inclusive, got %v", c.CapacityThreshold)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("config: iteration cap must be at least 1, got %d", c.Iterations)
	}
	if c.MaxVelocity <= 0 || c.Acceleration <= 0 {
		return fmt.Errorf("config: max velocity and acceleration must be positive")
	}
	if c.DoorTime < 0 || c.FloorHeight <= 0 {
		return fmt.Errorf("config: door time must be non-negative and floor height positive")
	}
	return nil
}
