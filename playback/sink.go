// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/eqplay/audio"
)

// DefaultSampleRate is used when a Sink is built with a non-positive rate.
const DefaultSampleRate = 44100

// Backend opens the output device for a single playback operation.
type Backend interface {
	Open(sampleRate int) (Device, error)
}

// Device is an opened output.
type Device interface {
	// Play writes src to the output and blocks until every sample was
	// consumed or src failed. io.EOF is not an error.
	Play(src audio.Source) error
	// Close releases the output.
	Close() error
}

// Sink plays sources through a Backend at a fixed device rate.
type Sink struct {
	backend Backend
	rate    int
	logger  *zap.Logger
}

func NewSink(backend Backend, sampleRate int, logger *zap.Logger) *Sink {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Sink{
		backend: backend,
		rate:    sampleRate,
		logger:  logger,
	}
}

func (s *Sink) SampleRate() int { return s.rate }

// Play blocks until src is drained. The caller keeps ownership of src.
// Errors raised by src mid-stream are returned unchanged after the device
// has been released.
func (s *Sink) Play(src audio.Source) (err error) {
	dev, err := s.backend.Open(s.rate)
	if err != nil {
		return fmt.Errorf("%w: %w", audio.ErrDeviceUnavailable, err)
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w", cerr)
		}
	}()

	if src.Channels() != 1 {
		s.logger.Debug("mixing down to mono", zap.Int("channels", src.Channels()))
		src = audio.NewMonoMixer(src)
	}
	if src.SampleRate() != s.rate {
		s.logger.Debug("resampling",
			zap.Int("from", src.SampleRate()),
			zap.Int("to", s.rate),
		)
		src = audio.NewResampler(src, s.rate)
	}

	s.logger.Debug("playback started", zap.Int("rate", s.rate))
	if err := dev.Play(src); err != nil {
		s.logger.Debug("playback aborted", zap.Error(err))
		return err
	}
	s.logger.Debug("playback finished")

	return nil
}

// PlayBuffer plays an in-memory buffer as a mono stream. When playback stops
// early the number of samples that never reached the device is logged.
func (s *Sink) PlayBuffer(buf *audio.Buffer) error {
	src := audio.NewBufferSource(buf)
	s.logger.Debug("playing buffer", zap.Int("samples", src.Remaining()))

	if err := s.Play(src); err != nil {
		s.logger.Warn("buffer playback stopped",
			zap.Int("unplayed", src.Remaining()),
			zap.Error(err),
		)
		return err
	}

	return nil
}
