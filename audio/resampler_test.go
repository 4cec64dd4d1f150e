// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/eqplay/internal/audiotest"
)

// drain reads src to the end in chunks of size.
func drain(t testing.TB, src Source, size int) []float32 {
	t.Helper()

	buf := make([]float32, size)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
	if r.BufSize() != 4096 {
		t.Errorf("BufSize() = %d, want the source's 4096", r.BufSize())
	}
}

func TestResampler_SameRateKeepsValues(t *testing.T) {
	t.Parallel()

	out := drain(t, NewResampler(audiotest.NewConstantSource(8000, 1, 100, 0.5), 8000), 64)

	if len(out) != 100 {
		t.Fatalf("got %d samples, want 100", len(out))
	}
	for i, v := range out {
		if v != 0.5 {
			t.Errorf("out[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		from, to  int
		tolerance int
	}{
		{"44.1k to 8k", 44100, 8000, 100},
		{"8k to 44.1k", 8000, 44100, 500},
		{"22.05k to 44.1k", 22050, 44100, 100},
		{"48k to 44.1k", 48000, 44100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// one second in, one second out
			out := drain(t, NewResampler(audiotest.NewSineSource(tt.from, 1, tt.from, 440), tt.to), 1024)

			if len(out) < tt.to-tt.tolerance || len(out) > tt.to+tt.tolerance {
				t.Errorf("got %d samples, want %d (±%d)", len(out), tt.to, tt.tolerance)
			}
			for i, v := range out {
				if v < -1.5 || v > 1.5 {
					t.Fatalf("out[%d] = %v, outside [-1.5, 1.5]", i, v)
				}
			}
		})
	}
}

func TestResampler_StereoChannelsStayApart(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 1000, func(_ int, ch int) float32 {
		if ch == 0 {
			return 0.3
		}
		return 0.7
	})

	out := drain(t, NewResampler(src, 22050), 256)
	if len(out)%2 != 0 {
		t.Fatalf("got %d values, want whole stereo frames", len(out))
	}

	for f := 0; f < len(out); f += 2 {
		if math.Abs(float64(out[f]-0.3)) > 1e-5 || math.Abs(float64(out[f+1]-0.7)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want (0.3, 0.7)", f/2, out[f], out[f+1])
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 8000)

	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_ShortSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		frames   int
		from, to int
		want     int
	}{
		{"empty", 0, 44100, 8000, 0},
		{"one frame down", 1, 44100, 22050, 1},
		{"one frame up", 1, 22050, 44100, 2},
		{"one frame far down", 1, 44100, 8000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := NewResampler(audiotest.NewConstantSource(tt.from, 1, tt.frames, 0.1), tt.to)

			buf := make([]float32, 16)
			n, err := r.ReadSamples(buf)
			if n != tt.want || err != io.EOF {
				t.Fatalf("ReadSamples() = (%d, %v), want (%d, EOF)", n, err, tt.want)
			}
			for i, v := range buf[:n] {
				if math.Abs(float64(v-0.1)) > 1e-6 {
					t.Errorf("out[%d] = %v, want 0.1", i, v)
				}
			}
		})
	}
}

func TestResampler_KeepsLastFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		frames   int
		from, to int
		want     int
	}{
		{"same rate", 100, 8000, 8000, 100},
		{"half rate", 44100, 44100, 22050, 22050},
		{"double rate", 22050, 22050, 44100, 44100},
		{"odd count at half rate", 101, 44100, 22050, 51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := drain(t, NewResampler(audiotest.NewSineSource(tt.from, 1, tt.frames, 440), tt.to), 512)
			if len(out) != tt.want {
				t.Errorf("got %d samples, want %d", len(out), tt.want)
			}
		})
	}
}

func TestResampler_PropagatesSourceError(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewFailingSource(22050, 10000, 500), 44100)

	buf := make([]float32, 256)
	for range 100 {
		_, err := r.ReadSamples(buf)
		if err == nil {
			continue
		}
		if !errors.Is(err, audiotest.ErrInjected) {
			t.Fatalf("ReadSamples() error = %v, want audiotest.ErrInjected", err)
		}
		return
	}
	t.Fatal("source error never surfaced")
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 1, 10)
	if err := NewResampler(src, 8000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func TestResampler_ConsecutiveReadsMatchOneRead(t *testing.T) {
	t.Parallel()

	small := drain(t, NewResampler(audiotest.NewSineSource(44100, 1, 4410, 440), 16000), 7)
	large := drain(t, NewResampler(audiotest.NewSineSource(44100, 1, 4410, 440), 16000), 4096)

	if len(small) != len(large) {
		t.Fatalf("chunked read gave %d samples, single read %d", len(small), len(large))
	}
	for i := range small {
		if small[i] != large[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, small[i], large[i])
		}
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)
	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(44100, 1, 44100, 440), 8000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}

func BenchmarkResampler_Upsample(b *testing.B) {
	buf := make([]float32, 4096)
	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(22050, 1, 22050, 440), 44100)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
