// SPDX-License-Identifier: EPL-2.0

package eqplay

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/ik5/eqplay/audio"
	"github.com/ik5/eqplay/equalizer"
	"github.com/ik5/eqplay/formats/wav"
	"github.com/ik5/eqplay/playback"
	"github.com/ik5/eqplay/waveform"
)

// Pipeline ties decoding, the waveform artifact, the gain table and playback
// together. The zero value is not usable; build one with NewPipeline.
type Pipeline struct {
	// Decoder carries the accepted sample rate. Its Policy is ignored: each
	// step picks the policy it needs.
	Decoder wav.Decoder
	Sink    *playback.Sink
	Logger  *zap.Logger
	// WaveformPath is where Visualize writes the chart.
	WaveformPath string
}

// NewPipeline builds a Pipeline that accepts WAV files at sampleRate and plays
// them through sink. A nil logger disables logging.
func NewPipeline(sampleRate int, sink *playback.Sink, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		Decoder:      wav.Decoder{SampleRate: sampleRate},
		Sink:         sink,
		Logger:       logger,
		WaveformPath: waveform.DefaultPath,
	}
}

func (p *Pipeline) decoder(policy wav.Policy) wav.Decoder {
	d := p.Decoder
	d.Policy = policy
	return d
}

// CheckPath reports audio.ErrNotFound when path does not exist.
func (p *Pipeline) CheckPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", audio.ErrNotFound, path)
		}
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Visualize decodes path leniently and writes the waveform chart. It returns
// the number of samples drawn.
func (p *Pipeline) Visualize(path string) (int, error) {
	buf, err := p.decoder(wav.Lenient).DecodeFile(path)
	if err != nil {
		return 0, err
	}

	if err := waveform.Save(p.WaveformPath, buf.Samples); err != nil {
		return 0, err
	}

	p.Logger.Info("waveform written",
		zap.String("path", p.WaveformPath),
		zap.Int("samples", buf.Len()),
	)

	return buf.Len(), nil
}

// PlayFile streams path to the output without buffering the whole file. A
// corrupt sample stops playback with wav.ErrCorruptSample.
func (p *Pipeline) PlayFile(path string) (err error) {
	stream, err := p.decoder(wav.Strict).Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w", cerr)
		}
	}()

	p.Logger.Info("playing", zap.String("path", path), zap.Int("samples", stream.Len()))

	return p.Sink.Play(stream)
}

// Equalize decodes path strictly and applies table to the samples.
func (p *Pipeline) Equalize(path string, table *equalizer.GainTable) (*audio.Buffer, error) {
	buf, err := p.decoder(wav.Strict).DecodeFile(path)
	if err != nil {
		return nil, err
	}

	table.Apply(buf.Samples)
	p.Logger.Debug("gains applied",
		zap.Float64s("gains", table.Gains()),
		zap.Int("samples", buf.Len()),
	)

	return buf, nil
}

// PlayEqualized decodes path, applies table and plays the result.
func (p *Pipeline) PlayEqualized(path string, table *equalizer.GainTable) error {
	buf, err := p.Equalize(path, table)
	if err != nil {
		return err
	}

	p.Logger.Info("playing equalized", zap.String("path", path), zap.Int("samples", buf.Len()))

	return p.Sink.PlayBuffer(buf)
}

// Run checks path, writes the waveform and then plays the file. It stops at
// the first failure.
func (p *Pipeline) Run(path string) error {
	if err := p.CheckPath(path); err != nil {
		return err
	}
	if _, err := p.Visualize(path); err != nil {
		return err
	}
	return p.PlayFile(path)
}
