// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample types and stream primitives shared by the
// decoder, the equalizer and the playback sink.
//
// # Buffers and streams
//
// A Buffer is a decoded run of 16-bit PCM samples in playback order. Its
// length is fixed once decoding finishes; processing rewrites values in
// place.
//
// A Source is the streaming view:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are float32 in [-1, 1]; conversion to and from int16 uses a
// 32768 scale and saturates (see package utils). NewBufferSource turns a
// Buffer back into a mono Source and ReadAll drains any Source into a
// Buffer.
//
// # Adapters
//
// MonoMixer averages interleaved channels into one. Resampler converts the
// rate with Catmull-Rom interpolation over a four frame window and smooths
// the input with a one-pole low-pass when downsampling:
//
//	src := audio.NewResampler(audio.NewMonoMixer(stream), 44100)
//
// # Errors
//
// ReadSamples returns io.EOF at the end of a stream, possibly together with
// the final samples:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    use(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// The error kinds of the module live here (ErrNotFound, ErrDecode,
// ErrDeviceUnavailable, ErrEmptySignal, ErrInvalidBandIndex) and are matched
// with errors.Is.
package audio
