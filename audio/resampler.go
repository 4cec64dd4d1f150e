// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/eqplay/utils"
)

// lowPassAlpha is the one-pole smoothing factor applied while downsampling.
const lowPassAlpha = 0.5

// Resampler streams src at a different sample rate using Catmull-Rom
// interpolation over a four frame window. Interleaved channels are kept.
//
// The playback sink puts one in front of the device whenever a source does
// not match the rate the output was opened at.
type Resampler struct {
	src      Source
	channels int
	dstRate  int
	// source frames consumed per output frame
	step float64

	// window holds frames t-1, t0, t+1, t+2; output lies between t0 and t+1.
	window [4][]float32
	real   [4]bool
	pos    float64
	primed bool

	in      []float32
	srcDone bool

	lowPass   bool
	lpState   []float32
	lpStarted bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		channels: channels,
		dstRate:  dstRate,
		step:     step,
		in:       make([]float32, channels),
		lowPass:  step > 1,
		lpState:  make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with frames at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		// The last source frame is still emitted; past it the curve holds
		// that frame's value.
		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		off := written * r.channels
		r.interpolate(dst[off : off+r.channels])
		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}

// prime loads the first frame into both t-1 and t0 so the curve has a left
// edge, then reads ahead two frames.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull(r.window[1])
	if err != nil || !ok {
		return err
	}
	copy(r.window[0], r.window[1])
	r.real[0], r.real[1] = true, true

	for i := 2; i < len(r.window); i++ {
		if r.real[i], err = r.pull(r.window[i]); err != nil {
			return err
		}
	}

	return nil
}

// advance slides the window one frame forward, reusing the oldest slot.
func (r *Resampler) advance() error {
	oldest := r.window[0]
	copy(r.window[:3], r.window[1:])
	r.window[3] = oldest
	copy(r.real[:3], r.real[1:])

	var err error
	r.real[3], err = r.pull(r.window[3])
	return err
}

// pull reads one frame from the source into frame. It reports false once the
// source is exhausted.
func (r *Resampler) pull(frame []float32) (bool, error) {
	for !r.srcDone {
		n, err := r.src.ReadSamples(r.in)
		if err == io.EOF {
			r.srcDone = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}

		if n == r.channels {
			copy(frame, r.in)
			r.smooth(frame)
			return true, nil
		}
	}

	return false, nil
}

func (r *Resampler) smooth(frame []float32) {
	if !r.lowPass {
		return
	}
	if !r.lpStarted {
		copy(r.lpState, frame)
		r.lpStarted = true
	}

	for c := range frame {
		frame[c] = lowPassAlpha*frame[c] + (1-lowPassAlpha)*r.lpState[c]
		r.lpState[c] = frame[c]
	}
}

func (r *Resampler) interpolate(out []float32) {
	x := float32(r.pos)

	for c := range out {
		y2 := r.window[1][c]
		if r.real[2] {
			y2 = r.window[2][c]
		}
		y3 := y2
		if r.real[3] {
			y3 = r.window[3][c]
		}
		out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], y2, y3, x)
	}
}
