// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes single-channel 16-bit PCM WAV files.
//
// Container parsing (RIFF header, fmt chunk, chunk skipping) is delegated to
// github.com/go-audio/wav; this package enforces the one supported layout and
// reads the samples of the data chunk itself so it can decide what a corrupt
// sample means.
//
// # Decoding
//
//	dec := wav.Decoder{SampleRate: 44100, Policy: wav.Strict}
//	buf, err := dec.DecodeFile("input.wav")
//	if errors.Is(err, audio.ErrNotFound) {
//	    // no such file
//	}
//
// WAVE_FORMAT_EXTENSIBLE files are accepted when their sub-format GUID is
// PCM. A data chunk size of 0xFFFFFFFF, as written by streaming encoders,
// means the samples run to the end of the file.
//
// Open returns a *Stream for incremental reads, either as raw samples with
// ReadPCM or as normalized float32 through the audio.Source interface.
//
// # Policies
//
// Strict (the zero value) fails with ErrCorruptSample when the data chunk
// ends inside a sample or before the size its header announces. Lenient
// drops such samples and returns everything that could be read, which is
// what the waveform view wants.
//
// # Errors
//
// Every decode failure wraps audio.ErrDecode:
//   - ErrNotWavFile: not a RIFF/WAVE container
//   - ErrOnlyPCM16bitSupported: compressed, float, or non 16-bit data
//   - ErrOnlyMonoSupported: more than one channel
//   - ErrUnsupportedSampleRate: rate differs from Decoder.SampleRate
//   - ErrUnsupportedWavChunks: no data chunk
//   - ErrCorruptSample: truncated sample data (Strict only)
//
// # Writing
//
// WriteWAV16 and WriteWAV16File write mono 16-bit PCM through go-audio's
// encoder.
package wav
