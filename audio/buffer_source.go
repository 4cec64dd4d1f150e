// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	"github.com/ik5/eqplay/utils"
)

// BufferSource streams a Buffer as a mono Source at the buffer's sample rate.
type BufferSource struct {
	buf *Buffer
	pos int
}

func NewBufferSource(buf *Buffer) *BufferSource {
	return &BufferSource{buf: buf}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return 1 }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }

// Remaining reports how many samples have not been read yet.
func (s *BufferSource) Remaining() int { return s.buf.Len() - s.pos }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n := copyNormalized(dst, s.buf.Samples[s.pos:])
	s.pos += n

	if s.pos >= s.buf.Len() {
		return n, io.EOF
	}

	return n, nil
}

func copyNormalized(dst []float32, src []int16) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = utils.Int16ToFloat32(src[i])
	}
	return n
}
