// Package app holds the wiring shared by the window and terminal hosts.
package app

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"laserduel/audio"
	"laserduel/config"
	"laserduel/game"
	"laserduel/logging"
)

// ErrHelp is returned by Setup when usage was printed
var ErrHelp = pflag.ErrHelp

// App is a configured host process
type App struct {
	Settings config.Settings
	Logger   zerolog.Logger
	Seed     int64

	rng     *rand.Rand
	metrics *game.Metrics
	cue     *audio.Cue
	closers []func() error
}

// Setup parses flags, loads settings and opens the log and audio outputs
func Setup(name string, args []string) (*App, error) {
	flags := config.Flags(name)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	path, _ := flags.GetString("config")

	settings, err := config.Load(path, flags)
	if err != nil {
		return nil, err
	}

	w, closeLog, err := logging.Open(settings.Log.File)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(w, settings.Log.Level, settings.Log.Format)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	metrics, err := game.NewMetrics(nil)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	a := &App{
		Settings: settings,
		Logger:   logger.With().Str("host", name).Logger(),
		Seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
		metrics:  metrics,
		closers:  []func() error{closeLog},
	}

	if settings.ProfileDir != "" {
		prof := NewProfiler(settings.ProfileDir, a.Logger)
		if err := prof.Start(name); err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append([]func() error{prof.Stop}, a.closers...)
	}

	if settings.Audio.Enabled {
		spk, err := audio.OpenSpeaker()
		if err != nil {
			a.Logger.Warn().Err(err).Msg("audio unavailable, continuing without cue")
		} else {
			a.cue = audio.NewCue(spk, settings.Audio.Volume, settings.Audio.Duration)
			a.closers = append([]func() error{func() error { spk.Close(); return nil }}, a.closers...)
		}
	}

	a.Logger.Info().
		Int64("seed", seed).
		Dur("tick", settings.Game.TickDuration).
		Int("rounds", settings.Rounds).
		Bool("audio", a.cue != nil).
		Msg("starting")
	return a, nil
}

// Indicators returns the audio cue, if any, to combine with a host's own lamps
func (a *App) Indicators() []game.Indicator {
	if a.cue == nil {
		return nil
	}
	return []game.Indicator{a.cue}
}

// NewRound starts a round with the shared random source, logger and counters
func (a *App) NewRound(renderer game.Renderer, indicator game.Indicator) (*game.Round, error) {
	r, err := game.NewRound(a.Settings.Game,
		game.WithRenderer(renderer),
		game.WithIndicator(indicator),
		game.WithRand(a.rng),
		game.WithLogger(a.Logger),
		game.WithMetrics(a.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("new round: %w", err)
	}
	return r, nil
}

// Close releases the audio device and the log file
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Fatal logs err and exits. Usage requests exit cleanly.
func Fatal(logger zerolog.Logger, err error) {
	if errors.Is(err, ErrHelp) {
		os.Exit(0)
	}
	logger.Fatal().Err(err).Msg("laserduel stopped")
}
