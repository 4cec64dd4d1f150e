// SPDX-License-Identifier: EPL-2.0

package eqplay

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/eqplay/audio"
	"github.com/ik5/eqplay/equalizer"
	"github.com/ik5/eqplay/formats/wav"
	"github.com/ik5/eqplay/internal/audiotest"
	"github.com/ik5/eqplay/playback"
	"github.com/ik5/eqplay/utils"
)

type recordingBackend struct {
	openErr error
	device  *recordingDevice
}

func (b *recordingBackend) Open(int) (playback.Device, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	b.device = &recordingDevice{}
	return b.device, nil
}

type recordingDevice struct {
	played []int16
	closed bool
}

func (d *recordingDevice) Play(src audio.Source) error {
	buf := make([]float32, 1024)
	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			d.played = append(d.played, utils.Float32ToInt16(v))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (d *recordingDevice) Close() error {
	d.closed = true
	return nil
}

func newTestPipeline(t *testing.T) (*Pipeline, *recordingBackend) {
	t.Helper()

	backend := &recordingBackend{}
	p := NewPipeline(44100, playback.NewSink(backend, 44100, nil), nil)
	p.WaveformPath = filepath.Join(t.TempDir(), "waveform.png")
	return p, backend
}

func TestPipeline_RunThreeSecondFile(t *testing.T) {
	t.Parallel()

	samples := audiotest.Sine(44100, 3, 440, 12000)
	path := audiotest.WriteWAV(t, audiotest.WAVSpec{Samples: samples})
	p, backend := newTestPipeline(t)

	if err := p.Run(path); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	info, err := os.Stat(p.WaveformPath)
	if err != nil {
		t.Fatalf("waveform not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("waveform file is empty")
	}

	dev := backend.device
	if len(dev.played) != 3*44100 {
		t.Fatalf("played %d samples, want %d", len(dev.played), 3*44100)
	}
	for i := range samples {
		if dev.played[i] != samples[i] {
			t.Fatalf("played[%d] = %d, want %d", i, dev.played[i], samples[i])
		}
	}
	if !dev.closed {
		t.Error("device was not released")
	}
}

func TestPipeline_Visualize(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteWAV(t, audiotest.WAVSpec{
		Samples: audiotest.Sine(44100, 3, 220, 8000),
	})
	p, _ := newTestPipeline(t)

	n, err := p.Visualize(path)
	if err != nil {
		t.Fatalf("Visualize() error = %v", err)
	}
	if n != 3*44100 {
		t.Errorf("Visualize() = %d samples, want %d", n, 3*44100)
	}
}

func TestPipeline_NotFound(t *testing.T) {
	t.Parallel()

	p, backend := newTestPipeline(t)
	missing := filepath.Join(t.TempDir(), "missing.wav")

	if err := p.CheckPath(missing); !errors.Is(err, audio.ErrNotFound) {
		t.Errorf("CheckPath() error = %v, want audio.ErrNotFound", err)
	}
	if err := p.Run(missing); !errors.Is(err, audio.ErrNotFound) {
		t.Errorf("Run() error = %v, want audio.ErrNotFound", err)
	}
	if backend.device != nil {
		t.Error("device opened for a missing file")
	}
	if _, err := os.Stat(p.WaveformPath); !os.IsNotExist(err) {
		t.Error("waveform written for a missing file")
	}
}

func TestPipeline_CorruptTail(t *testing.T) {
	t.Parallel()

	samples := []int16{100, 200, 300, 400}
	path := audiotest.WriteWAV(t, audiotest.WAVSpec{
		Samples:       samples,
		TrailingBytes: []byte{0x01},
	})
	p, backend := newTestPipeline(t)

	n, err := p.Visualize(path)
	if err != nil {
		t.Fatalf("Visualize() error = %v, want lenient decode", err)
	}
	if n != len(samples) {
		t.Errorf("Visualize() = %d samples, want %d", n, len(samples))
	}

	err = p.PlayFile(path)
	if !errors.Is(err, wav.ErrCorruptSample) {
		t.Fatalf("PlayFile() error = %v, want wav.ErrCorruptSample", err)
	}
	if !errors.Is(err, audio.ErrDecode) {
		t.Errorf("PlayFile() error = %v, want it to wrap audio.ErrDecode", err)
	}
	if !backend.device.closed {
		t.Error("device was not released after a decode error")
	}

	if err := p.Run(path); !errors.Is(err, wav.ErrCorruptSample) {
		t.Errorf("Run() error = %v, want wav.ErrCorruptSample", err)
	}
}

func TestPipeline_PlayEqualized(t *testing.T) {
	t.Parallel()

	samples := []int16{1000, 1000, 1000, 1000, 1000, 1000, -20000}
	path := audiotest.WriteWAV(t, audiotest.WAVSpec{Samples: samples})
	p, backend := newTestPipeline(t)

	table, err := equalizer.New(3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	table.SetGain(0, 2)
	table.SetGain(1, 0)

	if err := p.PlayEqualized(path, table); err != nil {
		t.Fatalf("PlayEqualized() error = %v", err)
	}

	want := []int16{2000, 0, 1000, 2000, 0, 1000, -32768}
	got := backend.device.played
	if len(got) != len(want) {
		t.Fatalf("played %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("played[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestPipeline_EqualizeStrict(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteWAV(t, audiotest.WAVSpec{
		Samples:       []int16{1, 2},
		TrailingBytes: []byte{0x01},
	})
	p, _ := newTestPipeline(t)
	table, _ := equalizer.New(equalizer.DefaultBands)

	if _, err := p.Equalize(path, table); !errors.Is(err, wav.ErrCorruptSample) {
		t.Errorf("Equalize() error = %v, want wav.ErrCorruptSample", err)
	}
}

func TestPipeline_DeviceUnavailable(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteWAV(t, audiotest.WAVSpec{Samples: []int16{1, 2, 3}})
	p := NewPipeline(44100,
		playback.NewSink(&recordingBackend{openErr: errors.New("no card")}, 44100, nil),
		nil,
	)
	p.WaveformPath = filepath.Join(t.TempDir(), "waveform.png")

	if err := p.PlayFile(path); !errors.Is(err, audio.ErrDeviceUnavailable) {
		t.Errorf("PlayFile() error = %v, want audio.ErrDeviceUnavailable", err)
	}
}

func TestPipeline_UnsupportedRate(t *testing.T) {
	t.Parallel()

	path := audiotest.WriteWAV(t, audiotest.WAVSpec{
		SampleRate: 22050,
		Samples:    []int16{1, 2, 3},
	})
	p, _ := newTestPipeline(t)

	if err := p.Run(path); !errors.Is(err, wav.ErrUnsupportedSampleRate) {
		t.Errorf("Run() error = %v, want wav.ErrUnsupportedSampleRate", err)
	}
}
