// SPDX-License-Identifier: EPL-2.0

// Package eqplay plays mono 16-bit PCM WAV files through the system audio
// output, optionally reshaping them with a positional gain table, and draws a
// waveform chart of what it decoded.
//
// # Pipeline
//
// Pipeline wires the subpackages together:
//
//	sink := playback.NewSink(&playback.BeepBackend{}, 44100, logger)
//	p := eqplay.NewPipeline(44100, sink, logger)
//
//	// waveform.png, then blocking playback
//	if err := p.Run("voice.wav"); err != nil {
//		// audio.ErrNotFound, audio.ErrDecode, audio.ErrDeviceUnavailable...
//	}
//
// Visualize decodes leniently, so a file with a damaged tail still gets a
// chart. PlayFile and PlayEqualized decode strictly and stop on the first
// corrupt sample.
//
// # Equalizer
//
// The gain table is positional, not frequency based: sample i is multiplied
// by the gain of band i mod bandCount and saturated to the int16 range.
//
//	table, _ := equalizer.New(equalizer.DefaultBands)
//	table.SetGain(0, 0.5)
//	err := p.PlayEqualized("voice.wav", table)
//
// # Subpackages
//
//   - formats/wav: validating decoder and 16-bit PCM writer
//   - audio: Source streams, Buffer, resampler and mono mixer
//   - equalizer: the gain table
//   - waveform: PNG chart rendering
//   - playback: output sink with beep and oto backends
//
// The cmd/eqplay command exposes play, gui and apply subcommands.
package eqplay
