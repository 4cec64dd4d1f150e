// SPDX-License-Identifier: EPL-2.0

// Package waveform draws an amplitude-over-time chart of a PCM signal.
package waveform

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/ik5/eqplay/audio"
)

const (
	// Width and Height are the artifact size in pixels.
	Width  = 800
	Height = 400
	// DefaultPath is where the chart is written, replacing any earlier one.
	DefaultPath = "waveform.png"

	dpi = 96
)

var lineColor = color.RGBA{R: 255, A: 255}

// Render draws samples as a single polyline and encodes the chart as PNG.
// The y axis always spans the full int16 range so charts of different
// recordings share one absolute scale.
func Render(w io.Writer, samples []int16) error {
	if len(samples) == 0 {
		return audio.ErrEmptySignal
	}

	p, err := chart(samples)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(pixels(Width), pixels(Height)),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// Save renders samples to path, truncating an existing file.
func Save(path string, samples []int16) (err error) {
	if len(samples) == 0 {
		return audio.ErrEmptySignal
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w", cerr)
		}
	}()

	return Render(f, samples)
}

func chart(samples []int16) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Waveform"
	p.X.Label.Text = "Sample Index"
	p.Y.Label.Text = "Amplitude"

	p.X.Min = 0
	p.X.Max = float64(len(samples))
	p.Y.Min = math.MinInt16
	p.Y.Max = math.MaxInt16

	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		pts[i].X = float64(i)
		pts[i].Y = float64(s)
	}

	// A lone sample has no segment to stroke.
	if len(pts) == 1 {
		dot, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		dot.GlyphStyle.Color = lineColor
		dot.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(dot)
		return p, nil
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)

	return p, nil
}

func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / dpi
}
