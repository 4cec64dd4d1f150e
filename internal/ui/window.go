// SPDX-License-Identifier: EPL-2.0

package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ik5/eqplay/equalizer"
)

const (
	windowTitle = "eqplay"
	sliderStep  = 0.05
)

// Window is the fyne front end of a Controller.
type Window struct {
	ctrl    *Controller
	win     fyne.Window
	sliders []*widget.Slider
	labels  []*widget.Label
	file    *widget.Label
}

// NewWindow creates the application window. Nothing is shown until Run.
func NewWindow(ctrl *Controller) *Window {
	a := app.New()
	w := &Window{
		ctrl: ctrl,
		win:  a.NewWindow(windowTitle),
		file: widget.NewLabel("No file selected"),
	}

	w.win.SetContent(w.build())
	w.win.Resize(fyne.NewSize(480, 0))

	return w
}

func (w *Window) build() fyne.CanvasObject {
	bands := container.NewVBox()
	for band := range w.ctrl.Bands() {
		label := widget.NewLabel(bandText(band, equalizer.UnityGain))

		s := widget.NewSlider(equalizer.MinGain, equalizer.MaxGain)
		s.Step = sliderStep
		s.Value = equalizer.UnityGain
		s.OnChanged = func(v float64) {
			if err := w.ctrl.SetGain(band, v); err != nil {
				dialog.ShowError(err, w.win)
				return
			}
			w.showGain(band)
		}

		w.sliders = append(w.sliders, s)
		w.labels = append(w.labels, label)
		bands.Add(container.NewBorder(nil, nil, label, nil, s))
	}

	open := widget.NewButton("Open…", w.openFile)
	play := widget.NewButton("Play", w.play)
	reset := widget.NewButton("Reset", w.reset)

	return container.NewVBox(
		container.NewBorder(nil, nil, open, nil, w.file),
		widget.NewSeparator(),
		bands,
		widget.NewSeparator(),
		container.NewHBox(play, reset),
	)
}

func (w *Window) openFile() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()

		path := rc.URI().Path()
		w.ctrl.SetPath(path)
		w.file.SetText(path)
	}, w.win)
}

// play runs on the UI goroutine and blocks it until the output drained.
func (w *Window) play() {
	if err := w.ctrl.Play(); err != nil {
		dialog.ShowError(err, w.win)
	}
}

func (w *Window) reset() {
	w.ctrl.Reset()
	for band, s := range w.sliders {
		s.SetValue(equalizer.UnityGain)
		w.showGain(band)
	}
}

// showGain labels band with the value the table holds, not the slider's.
func (w *Window) showGain(band int) {
	g, err := w.ctrl.Gain(band)
	if err != nil {
		dialog.ShowError(err, w.win)
		return
	}
	w.labels[band].SetText(bandText(band, g))
}

// Run shows the window and returns once it is closed.
func (w *Window) Run() {
	w.win.ShowAndRun()
}

func bandText(band int, gain float64) string {
	return fmt.Sprintf("Band %d: %.2f", band+1, gain)
}
