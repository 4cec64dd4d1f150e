// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/eqplay/utils"
)

// ReadAll drains src into a Buffer of 16-bit PCM samples at the source rate.
// Multi-channel sources are averaged down to mono first.
//
// Any error other than io.EOF aborts the read and no partial buffer is
// returned: a source that fails mid-stream produces no Buffer at all.
func ReadAll(src Source, bufferSize int) (*Buffer, error) {
	if src.Channels() != 1 {
		src = NewMonoMixer(src)
	}
	if bufferSize <= 0 {
		bufferSize = src.BufSize()
	}
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	pcm16 := make([]int16, 0, src.SampleRate())
	buf := make([]float32, bufferSize)

	for {
		n, err := src.ReadSamples(buf)
		for i := range n {
			pcm16 = append(pcm16, utils.Float32ToInt16(buf[i]))
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return NewBuffer(src.SampleRate(), pcm16), nil
}
