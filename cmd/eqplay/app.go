// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/ik5/eqplay"
	"github.com/ik5/eqplay/equalizer"
	"github.com/ik5/eqplay/formats/wav"
	"github.com/ik5/eqplay/internal/config"
	"github.com/ik5/eqplay/internal/logging"
	"github.com/ik5/eqplay/internal/ui"
	"github.com/ik5/eqplay/playback"
)

const (
	ConfigFlag     = "config"
	SampleRateFlag = "sample-rate"
	BandsFlag      = "bands"
	BackendFlag    = "backend"
	BufferFlag     = "buffer"
	LogLevelFlag   = "log-level"

	GainsFlag = "gains"
	OutFlag   = "out"
	RateFlag  = "rate"
)

var errNoPath = errors.New("no input file given")

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
)

func newApp() *cli.App {
	defaults := config.Default()

	return &cli.App{
		Name:  "eqplay",
		Usage: "visualize and play mono 16-bit PCM WAV files",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    ConfigFlag,
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"EQPLAY_CONFIG"},
			},
			&cli.IntFlag{
				Name:    SampleRateFlag,
				Usage:   "accepted WAV sample rate and output rate",
				Value:   defaults.SampleRate,
				EnvVars: []string{"EQPLAY_SAMPLE_RATE"},
			},
			&cli.IntFlag{
				Name:    BandsFlag,
				Usage:   "number of gain bands in the interactive equalizer",
				Value:   defaults.Bands,
				EnvVars: []string{"EQPLAY_BANDS"},
			},
			&cli.StringFlag{
				Name:    BackendFlag,
				Usage:   "audio output library: beep or oto",
				Value:   defaults.Backend,
				EnvVars: []string{"EQPLAY_BACKEND"},
			},
			&cli.DurationFlag{
				Name:    BufferFlag,
				Usage:   "output buffer length",
				Value:   defaults.Buffer,
				EnvVars: []string{"EQPLAY_BUFFER"},
			},
			&cli.StringFlag{
				Name:    LogLevelFlag,
				Usage:   "debug, info, warn or error",
				Value:   defaults.LogLevel,
				EnvVars: []string{"EQPLAY_LOG_LEVEL"},
			},
		},
		Action: playAction,
		Commands: []*cli.Command{
			{
				Name:      "play",
				Aliases:   []string{"p"},
				Usage:     "draw the waveform, then play the file as is",
				ArgsUsage: "[file.wav]",
				Action:    playAction,
			},
			{
				Name:   "gui",
				Usage:  "open the equalizer window",
				Action: guiAction,
			},
			{
				Name:      "apply",
				Usage:     "write an equalized copy of a file",
				ArgsUsage: "<file.wav>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     GainsFlag,
						Aliases:  []string{"g"},
						Usage:    "comma separated gains, one per band, e.g. 1,0.5,2",
						Required: true,
					},
					&cli.PathFlag{
						Name:     OutFlag,
						Aliases:  []string{"o"},
						Usage:    "output WAV file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  RateFlag,
						Usage: "resample the output to this rate (0 keeps the input rate)",
					},
				},
				Action: applyAction,
			},
		},
	}
}

// loadConfig layers the config file, then explicitly set flags, over the
// defaults.
func loadConfig(cCtx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := cCtx.Path(ConfigFlag); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if cCtx.IsSet(SampleRateFlag) {
		cfg.SampleRate = cCtx.Int(SampleRateFlag)
	}
	if cCtx.IsSet(BandsFlag) {
		cfg.Bands = cCtx.Int(BandsFlag)
	}
	if cCtx.IsSet(BackendFlag) {
		cfg.Backend = cCtx.String(BackendFlag)
	}
	if cCtx.IsSet(BufferFlag) {
		cfg.Buffer = cCtx.Duration(BufferFlag)
	}
	if cCtx.IsSet(LogLevelFlag) {
		cfg.LogLevel = cCtx.String(LogLevelFlag)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newBackend(cfg *config.Config) playback.Backend {
	if cfg.Backend == config.BackendOto {
		return playback.OtoBackend{}
	}
	return &playback.BeepBackend{BufferSize: cfg.Buffer}
}

// setup builds the pipeline described by the command line.
func setup(cCtx *cli.Context) (*eqplay.Pipeline, *config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	sink := playback.NewSink(newBackend(cfg), cfg.SampleRate, logger)
	p := eqplay.NewPipeline(cfg.SampleRate, sink, logger)

	logger.Debug("configured",
		zap.Int("sample_rate", cfg.SampleRate),
		zap.Int("bands", cfg.Bands),
		zap.String("backend", cfg.Backend),
		zap.Duration("buffer", cfg.Buffer),
	)

	return p, cfg, logger, nil
}

func playAction(cCtx *cli.Context) error {
	p, _, logger, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	path := cCtx.Args().First()
	if path == "" {
		if path, err = promptPath(cCtx.App.Reader, cCtx.App.Writer); err != nil {
			return err
		}
	}

	if err := p.CheckPath(path); err != nil {
		return err
	}

	n, err := p.Visualize(path)
	if err != nil {
		return err
	}
	green.Fprintf(cCtx.App.Writer, "waveform of %d samples written to %s\n", n, p.WaveformPath)

	yellow.Fprintf(cCtx.App.Writer, "playing %s\n", path)
	if err := p.PlayFile(path); err != nil {
		return err
	}
	green.Fprintln(cCtx.App.Writer, "done")

	return nil
}

func guiAction(cCtx *cli.Context) error {
	p, cfg, logger, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctrl, err := ui.NewController(p, cfg.Bands, logger)
	if err != nil {
		return err
	}
	ui.NewWindow(ctrl).Run()

	return nil
}

func applyAction(cCtx *cli.Context) error {
	p, _, logger, err := setup(cCtx)
	if err != nil {
		return err
	}
	defer logger.Sync()

	in := cCtx.Args().First()
	if in == "" {
		return errNoPath
	}
	if err := p.CheckPath(in); err != nil {
		return err
	}

	table, err := equalizer.ParseGains(cCtx.String(GainsFlag))
	if err != nil {
		return err
	}

	buf, err := p.Equalize(in, table)
	if err != nil {
		return err
	}
	if rate := cCtx.Int(RateFlag); rate != 0 {
		if buf, err = eqplay.ResampleBuffer(buf, rate); err != nil {
			return err
		}
	}

	out := cCtx.Path(OutFlag)
	if err := wav.WriteWAV16File(out, buf.SampleRate, buf.Samples); err != nil {
		return err
	}
	green.Fprintf(cCtx.App.Writer, "wrote %d samples at %d Hz to %s\n", buf.Len(), buf.SampleRate, out)

	return nil
}

// promptPath asks for a file path on r and returns the first non-empty line.
func promptPath(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "Enter the path to a WAV file: ")

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			return line, nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("%w", err)
	}

	return "", errNoPath
}
