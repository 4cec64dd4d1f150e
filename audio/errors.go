// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrNotFound is returned when the input path does not exist.
	ErrNotFound = errors.New("audio file not found")
	// ErrDecode covers malformed or unsupported containers and corrupt samples.
	ErrDecode = errors.New("audio decode error")
	// ErrDeviceUnavailable is returned when no output device can be opened.
	ErrDeviceUnavailable = errors.New("audio output device unavailable")
	// ErrEmptySignal is returned when a zero-length signal is rendered.
	ErrEmptySignal = errors.New("empty signal")
	// ErrInvalidBandIndex is returned for a gain band outside [0, bandCount).
	ErrInvalidBandIndex = errors.New("invalid band index")
)
