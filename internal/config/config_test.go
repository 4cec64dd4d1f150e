// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "eqplay.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.SampleRate != 44100 || cfg.Bands != 5 || cfg.Backend != BackendBeep {
		t.Errorf("Default() = %+v", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
sample_rate: 48000
bands: 8
backend: oto
buffer: 250ms
log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.SampleRate = 48000
	want.Bands = 8
	want.Backend = BackendOto
	want.Buffer = 250 * time.Millisecond
	want.LogLevel = "debug"

	if *cfg != *want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"unknown key", "volume: 11\n"},
		{"bad yaml", "bands: [1, 2\n"},
		{"zero bands", "bands: 0\n"},
		{"negative rate", "sample_rate: -1\n"},
		{"unknown backend", "backend: alsa\n"},
		{"bad level", "log_level: loud\n"},
		{"zero buffer", "buffer: 0s\n"},
		{"waveform path", "waveform: chart.png\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Backend = "jack"

	if err := cfg.Validate(); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Validate() error = %v, want ErrUnknownBackend", err)
	}
}
