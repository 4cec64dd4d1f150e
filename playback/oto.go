// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"github.com/ik5/eqplay/audio"
	"github.com/ik5/eqplay/utils"
)

const (
	otoChannels  = 1
	pollInterval = 10 * time.Millisecond
)

// oto allows a single context per process.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoRate int
	otoErr  error
)

// OtoBackend plays signed 16-bit little-endian PCM through hajimehoshi/oto.
type OtoBackend struct{}

func (OtoBackend) Open(sampleRate int) (Device, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(sampleRate, otoChannels, oto.FormatSignedInt16LE)
		if err != nil {
			otoErr = err
			return
		}
		<-ready
		otoCtx = ctx
		otoRate = sampleRate
	})
	if otoErr != nil {
		return nil, otoErr
	}

	return &otoDevice{}, nil
}

type otoDevice struct {
	player oto.Player
}

func (d *otoDevice) Play(src audio.Source) error {
	if src.SampleRate() != otoRate {
		src = audio.NewResampler(src, otoRate)
	}

	r := newPCMReader(src)
	d.player = otoCtx.NewPlayer(r)
	d.player.Play()
	for d.player.IsPlaying() {
		time.Sleep(pollInterval)
	}

	if r.err != nil {
		return r.err
	}
	return d.player.Err()
}

func (d *otoDevice) Close() error {
	if d.player == nil {
		return nil
	}
	err := d.player.Close()
	d.player = nil
	return err
}

// pcmReader serializes a mono audio.Source as 16-bit little-endian PCM.
type pcmReader struct {
	src     audio.Source
	scratch []float32
	err     error
	eof     bool
}

func newPCMReader(src audio.Source) *pcmReader {
	return &pcmReader{src: src}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.eof {
		return 0, io.EOF
	}

	want := len(p) / 2
	if want == 0 {
		return 0, nil
	}
	if cap(r.scratch) < want {
		r.scratch = make([]float32, want)
	}

	n, err := r.src.ReadSamples(r.scratch[:want])
	for i, v := range r.scratch[:n] {
		binary.LittleEndian.PutUint16(p[2*i:], uint16(utils.Float32ToInt16(v)))
	}

	if err != nil {
		r.eof = true
		if !errors.Is(err, io.EOF) {
			r.err = err
			return 2 * n, err
		}
		if n == 0 {
			return 0, io.EOF
		}
	}

	return 2 * n, nil
}
