// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1 for everything this module decodes).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Buffer is a decoded, in-memory run of 16-bit PCM samples in playback order.
// Its length is fixed once decoding finishes; processing rewrites values in place.
type Buffer struct {
	SampleRate int
	Samples    []int16
}

// NewBuffer wraps samples recorded at sampleRate.
func NewBuffer(sampleRate int, samples []int16) *Buffer {
	return &Buffer{
		SampleRate: sampleRate,
		Samples:    samples,
	}
}

func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Samples)
}
