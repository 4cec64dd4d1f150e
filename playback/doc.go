// SPDX-License-Identifier: EPL-2.0

// Package playback streams audio.Source values to the system output device.
//
// A Sink owns the policy: it opens a Device from a Backend for exactly one
// operation, adapts the source to a mono stream at the device rate with
// audio.MonoMixer and audio.Resampler, blocks until the stream is drained and
// releases the device on every path.
//
// Two backends are provided. BeepBackend drives the gopxl/beep speaker and is
// the default; OtoBackend writes signed 16-bit PCM through hajimehoshi/oto.
// Both keep one process-wide output context, created on first use.
//
//	sink := playback.NewSink(&playback.BeepBackend{}, 44100, logger)
//	if err := sink.PlayBuffer(buf); err != nil {
//		// errors.Is(err, audio.ErrDeviceUnavailable) when no output exists
//	}
package playback
