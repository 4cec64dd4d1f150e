// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// WAVSpec describes a hand-built RIFF/WAVE fixture. Zero values fall back to
// mono 16-bit PCM.
type WAVSpec struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
	AudioFormat   int
	Samples       []int16

	// DeclaredDataSize overrides the data chunk size when non-zero.
	DeclaredDataSize uint32
	// TrailingBytes are appended after the samples, inside the data chunk.
	TrailingBytes []byte
	// LeadingChunk inserts an unknown chunk before "fmt ".
	LeadingChunk bool
	// NoDataChunk omits the data chunk entirely.
	NoDataChunk bool
	// Extensible writes a WAVE_FORMAT_EXTENSIBLE fmt chunk whose sub-format
	// GUID carries AudioFormat.
	Extensible bool
}

var subFormatGUIDTail = []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

// WAV encodes spec into the bytes of a WAV container.
func WAV(spec WAVSpec) []byte {
	channels := orDefault(spec.Channels, 1)
	bits := orDefault(spec.BitsPerSample, 16)
	format := orDefault(spec.AudioFormat, 1)
	rate := orDefault(spec.SampleRate, 44100)

	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	if spec.LeadingChunk {
		body.WriteString("JUNK")
		binary.Write(body, binary.LittleEndian, uint32(4))
		body.Write([]byte{1, 2, 3, 4})
	}

	blockAlign := channels * bits / 8
	fmtSize, tag := uint32(16), uint16(format)
	if spec.Extensible {
		fmtSize, tag = 40, 0xFFFE
	}
	body.WriteString("fmt ")
	binary.Write(body, binary.LittleEndian, fmtSize)
	binary.Write(body, binary.LittleEndian, tag)
	binary.Write(body, binary.LittleEndian, uint16(channels))
	binary.Write(body, binary.LittleEndian, uint32(rate))
	binary.Write(body, binary.LittleEndian, uint32(rate*blockAlign))
	binary.Write(body, binary.LittleEndian, uint16(blockAlign))
	binary.Write(body, binary.LittleEndian, uint16(bits))
	if spec.Extensible {
		binary.Write(body, binary.LittleEndian, uint16(22)) // cbSize
		binary.Write(body, binary.LittleEndian, uint16(bits))
		binary.Write(body, binary.LittleEndian, uint32(4)) // front center
		binary.Write(body, binary.LittleEndian, uint16(format))
		body.Write(subFormatGUIDTail)
	}

	if !spec.NoDataChunk {
		data := new(bytes.Buffer)
		binary.Write(data, binary.LittleEndian, spec.Samples)
		data.Write(spec.TrailingBytes)

		size := uint32(data.Len())
		if spec.DeclaredDataSize != 0 {
			size = spec.DeclaredDataSize
		}

		body.WriteString("data")
		binary.Write(body, binary.LittleEndian, size)
		body.Write(data.Bytes())
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

// WriteWAV stores a fixture in a fresh temp dir and returns its path.
func WriteWAV(t testing.TB, spec WAVSpec) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "input.wav")
	if err := os.WriteFile(path, WAV(spec), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	return path
}

// Sine returns seconds of a sine tone at freq Hz with the given peak amplitude.
func Sine(sampleRate int, seconds float64, freq float64, amplitude int16) []int16 {
	out := make([]int16, int(float64(sampleRate)*seconds))
	for i := range out {
		v := float64(amplitude) * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		out[i] = int16(v)
	}
	return out
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
