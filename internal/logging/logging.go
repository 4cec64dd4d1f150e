// SPDX-License-Identifier: EPL-2.0

// Package logging builds the zap loggers used by the eqplay command.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a console logger at level ("debug", "info", "warn", ...).
// Stack traces are left to errors; timestamps are kept.
func New(level string) (*zap.Logger, error) {
	at, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = at
	cfg.DisableStacktrace = true
	cfg.DisableCaller = level != "debug"

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	return logger, nil
}
