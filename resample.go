// SPDX-License-Identifier: EPL-2.0

package eqplay

import (
	"fmt"
	"slices"

	"github.com/ik5/eqplay/audio"
)

const resampleBufferSize = 4096

// ResampleBuffer returns a copy of buf at targetRate. Rate conversion uses
// the cubic audio.Resampler, with a low-pass stage when downsampling; a
// buffer already at targetRate is copied unchanged.
func ResampleBuffer(buf *audio.Buffer, targetRate int) (*audio.Buffer, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, targetRate)
	}
	if buf.SampleRate == targetRate {
		return audio.NewBuffer(targetRate, slices.Clone(buf.Samples)), nil
	}

	res := audio.NewResampler(audio.NewBufferSource(buf), targetRate)
	return audio.ReadAll(res, resampleBufferSize)
}
