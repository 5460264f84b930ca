package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/sparse-gol/engine"
)

// Config holds the configuration for a simulation run
type Config struct {
	Engine              string        `json:"engine"`
	Generations         int           `json:"generations"`
	Input               string        `json:"input"`
	Output              string        `json:"output"`
	Sorted              bool          `json:"sorted"`
	Workers             int           `json:"workers"`
	Stats               bool          `json:"stats"`
	Watch               bool          `json:"watch"`
	FrameRate           time.Duration `json:"frame_rate"`
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	RandomDensity       float64       `json:"random_density"`
	Seed                uint64        `json:"seed"`
	LogLevel            string        `json:"log_level"`
	LogFormat           string        `json:"log_format"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Engine:              engine.Counting.String(),
		Generations:         10,
		Workers:             1,
		FrameRate:           150 * time.Millisecond,
		Width:               60,
		Height:              30,
		StagnationThreshold: 5,
		RandomDensity:       0.15,
		Seed:                1,
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate checks the settings that would otherwise fail mid-run
func (c Config) Validate() error {
	if _, err := engine.ParseKind(c.Engine); err != nil {
		return errors.Wrap(err, "[Validate] engine")
	}
	if c.Generations < 0 {
		return errors.Errorf("[Validate] generations must be non-negative, got %d", c.Generations)
	}
	if c.Workers < 1 {
		return errors.Errorf("[Validate] workers must be at least 1, got %d", c.Workers)
	}
	if c.Watch && (c.Width <= 0 || c.Height <= 0) {
		return errors.Errorf("[Validate] watch viewport must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "[Validate] log_level")
	}
	return nil
}
