// SPDX-License-Identifier: EPL-2.0

package equalizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ik5/eqplay/audio"
	"github.com/ik5/eqplay/utils"
)

const (
	// DefaultBands is the band count of the stock control surface.
	DefaultBands = 5

	MinGain   = 0.0
	MaxGain   = 2.0
	UnityGain = 1.0
)

var ErrInvalidBandCount = errors.New("band count must be at least 1")

// GainTable is a fixed-size set of per-band gain multipliers.
type GainTable struct {
	mu    sync.RWMutex
	gains []float64
}

// New returns a table of bandCount bands, all at unity gain.
func New(bandCount int) (*GainTable, error) {
	if bandCount < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBandCount, bandCount)
	}

	t := &GainTable{gains: make([]float64, bandCount)}
	t.Reset()

	return t, nil
}

// ParseGains builds a table from a comma separated list such as "1,0.5,2".
// The number of entries sets the band count.
func ParseGains(list string) (*GainTable, error) {
	fields := strings.Split(list, ",")

	t, err := New(len(fields))
	if err != nil {
		return nil, err
	}

	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("gain %d: %w", i, err)
		}
		t.gains[i] = v
	}

	return t, nil
}

// Bands never changes after New.
func (t *GainTable) Bands() int {
	return len(t.gains)
}

// SetGain replaces the multiplier of one band. value is not clamped; the
// nominal range is [MinGain, MaxGain] but anything is accepted.
func (t *GainTable) SetGain(band int, value float64) error {
	if err := t.checkBand(band); err != nil {
		return err
	}

	t.mu.Lock()
	t.gains[band] = value
	t.mu.Unlock()

	return nil
}

func (t *GainTable) Gain(band int) (float64, error) {
	if err := t.checkBand(band); err != nil {
		return 0, err
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.gains[band], nil
}

// Gains returns a copy of every multiplier, in band order.
func (t *GainTable) Gains() []float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]float64, len(t.gains))
	copy(out, t.gains)

	return out
}

// Reset puts every band back to unity gain.
func (t *GainTable) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.gains {
		t.gains[i] = UnityGain
	}
}

// Apply scales samples in place with a snapshot of the current gains.
func (t *GainTable) Apply(samples []int16) {
	ApplyGains(t.Gains(), samples)
}

func (t *GainTable) checkBand(band int) error {
	if band < 0 || band >= len(t.gains) {
		return fmt.Errorf("%w: %d not in [0, %d)", audio.ErrInvalidBandIndex, band, len(t.gains))
	}
	return nil
}

// ApplyGains multiplies samples[i] by gains[i mod len(gains)], truncating
// toward zero and saturating to int16. An empty gains slice leaves samples
// untouched.
func ApplyGains(gains []float64, samples []int16) {
	bands := len(gains)
	if bands == 0 {
		return
	}

	for i, s := range samples {
		samples[i] = utils.SaturateInt16(float64(s) * gains[i%bands])
	}
}
