// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ik5/eqplay/audio"
)

// DefaultBufferDuration is the speaker buffer used when none is configured.
const DefaultBufferDuration = 100 * time.Millisecond

// resampleQuality is passed to beep.Resample when the speaker already runs
// at another rate.
const resampleQuality = 4

// The speaker can be initialized once per process.
var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// BeepBackend plays through the gopxl/beep speaker.
type BeepBackend struct {
	// BufferSize is the speaker latency; zero means DefaultBufferDuration.
	BufferSize time.Duration
}

func (b *BeepBackend) Open(sampleRate int) (Device, error) {
	speakerOnce.Do(func() {
		d := b.BufferSize
		if d <= 0 {
			d = DefaultBufferDuration
		}
		speakerRate = beep.SampleRate(sampleRate)
		speakerErr = speaker.Init(speakerRate, speakerRate.N(d))
	})
	if speakerErr != nil {
		return nil, speakerErr
	}

	return &beepDevice{rate: beep.SampleRate(sampleRate)}, nil
}

type beepDevice struct {
	rate beep.SampleRate
}

func (d *beepDevice) Play(src audio.Source) error {
	st := newSourceStreamer(src)

	var s beep.Streamer = st
	if d.rate != speakerRate {
		s = beep.Resample(resampleQuality, d.rate, speakerRate, st)
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(s, beep.Callback(func() {
		close(done)
	})))
	<-done

	return st.Err()
}

func (d *beepDevice) Close() error {
	speaker.Clear()
	return nil
}

// sourceStreamer adapts a mono audio.Source to beep.Streamer, copying each
// sample to both speaker channels.
type sourceStreamer struct {
	src     audio.Source
	scratch []float32
	err     error
	done    bool
}

func newSourceStreamer(src audio.Source) *sourceStreamer {
	return &sourceStreamer{src: src}
}

func (s *sourceStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.done {
		return 0, false
	}
	if cap(s.scratch) < len(samples) {
		s.scratch = make([]float32, len(samples))
	}

	filled := 0
	for filled < len(samples) {
		n, err := s.src.ReadSamples(s.scratch[:len(samples)-filled])
		for i := range n {
			v := float64(s.scratch[i])
			samples[filled+i] = [2]float64{v, v}
		}
		filled += n

		if err != nil {
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
			break
		}
	}

	return filled, filled > 0
}

func (s *sourceStreamer) Err() error { return s.err }
