// SPDX-License-Identifier: EPL-2.0

// Package ui is the interactive control surface: gain sliders, a file picker
// and a play action. Controller holds the state and is toolkit free; Window
// binds it to fyne widgets.
package ui

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ik5/eqplay/equalizer"
)

var (
	// ErrNoFile is returned by Play before a file was chosen.
	ErrNoFile = errors.New("no file selected")
	// ErrPlaybackPanic wraps a panic raised while playing.
	ErrPlaybackPanic = errors.New("playback panicked")
)

// Player decodes path, applies table and plays the result, blocking until
// done. *eqplay.Pipeline implements it.
type Player interface {
	PlayEqualized(path string, table *equalizer.GainTable) error
}

// Controller owns the gain table for the lifetime of the window.
type Controller struct {
	player Player
	table  *equalizer.GainTable
	logger *zap.Logger

	mu   sync.Mutex
	path string
}

func NewController(player Player, bands int, logger *zap.Logger) (*Controller, error) {
	table, err := equalizer.New(bands)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Controller{
		player: player,
		table:  table,
		logger: logger,
	}, nil
}

func (c *Controller) Bands() int { return c.table.Bands() }

// Gains returns a snapshot of the current table.
func (c *Controller) Gains() []float64 { return c.table.Gains() }

// Gain is the table's current value for band.
func (c *Controller) Gain(band int) (float64, error) {
	return c.table.Gain(band)
}

// SetGain is bound to slider band.
func (c *Controller) SetGain(band int, value float64) error {
	if err := c.table.SetGain(band, value); err != nil {
		return err
	}
	c.logger.Debug("gain changed", zap.Int("band", band), zap.Float64("gain", value))
	return nil
}

// Reset puts every band back to unity.
func (c *Controller) Reset() {
	c.table.Reset()
	c.logger.Debug("gains reset")
}

func (c *Controller) SetPath(path string) {
	c.mu.Lock()
	c.path = path
	c.mu.Unlock()
	c.logger.Info("file selected", zap.String("path", path))
}

func (c *Controller) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// Play decodes the selected file, applies the gains and blocks until the
// output drained. A panic in the player is returned as ErrPlaybackPanic.
func (c *Controller) Play() (err error) {
	path := c.Path()
	if path == "" {
		return ErrNoFile
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPlaybackPanic, r)
		}
		if err != nil {
			c.logger.Error("playback failed", zap.String("path", path), zap.Error(err))
		}
	}()

	return c.player.PlayEqualized(path, c.table)
}
