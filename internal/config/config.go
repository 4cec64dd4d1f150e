// SPDX-License-Identifier: EPL-2.0

// Package config holds the runtime settings of the eqplay command. Values
// start from Default, may be overridden by a YAML file and then by command
// line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Built-in playback backends.
const (
	BackendBeep = "beep"
	BackendOto  = "oto"
)

type Config struct {
	// SampleRate is the only WAV rate accepted, and the device rate.
	SampleRate int `yaml:"sample_rate"`
	// Bands is the number of gain table entries.
	Bands int `yaml:"bands"`
	// Backend selects the output library, BackendBeep or BackendOto.
	Backend string `yaml:"backend"`
	// Buffer is the output latency requested from the backend.
	Buffer time.Duration `yaml:"buffer"`
	// LogLevel is a zap level name.
	LogLevel string `yaml:"log_level"`
}

func Default() *Config {
	return &Config{
		SampleRate: 44100,
		Bands:      5,
		Backend:    BackendBeep,
		Buffer:     100 * time.Millisecond,
		LogLevel:   "info",
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks every field and reports the first bad one.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample_rate must be positive, got %d", ErrInvalidConfig, c.SampleRate)
	}
	if c.Bands < 1 {
		return fmt.Errorf("%w: bands must be at least 1, got %d", ErrInvalidConfig, c.Bands)
	}
	switch c.Backend {
	case BackendBeep, BackendOto:
	default:
		return fmt.Errorf("%w: %w %q", ErrInvalidConfig, ErrUnknownBackend, c.Backend)
	}
	if c.Buffer <= 0 {
		return fmt.Errorf("%w: buffer must be positive, got %s", ErrInvalidConfig, c.Buffer)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}

	return nil
}
