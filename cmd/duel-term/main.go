// Command duel-term plays laser duels in a terminal.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"laserduel/app"
	"laserduel/display"
	"laserduel/game"
)

func main() {
	a, err := app.Setup("duel-term", os.Args[1:])
	if err != nil {
		app.Fatal(zerolog.New(os.Stderr), err)
	}
	if err := run(a); err != nil {
		a.Close()
		app.Fatal(a.Logger, err)
	}
	a.Close()
}

func run(a *app.App) error {
	if a.Settings.Log.File == "" {
		// the screen owns the terminal, so stderr logs would corrupt it
		a.Logger = a.Logger.Level(zerolog.Disabled)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	term := display.NewTerminal(screen, display.TerminalOptions{
		HoldWindow: a.Settings.Terminal.HoldWindow,
		Buttons:    a.Settings.Buttons,
		Logger:     a.Logger,
	})
	term.Start()
	defer term.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fb := display.NewFramebuffer(a.Settings.Game.Bounds, term)
	indicator := append(game.Indicators{term}, a.Indicators()...)

	for played := 0; a.Settings.Rounds == 0 || played < a.Settings.Rounds; played++ {
		if a.Settings.Loading.Enabled {
			err := game.NewLoading(a.Settings.Game.Bounds, fb).Run(ctx, a.Settings.Loading.Frame)
			switch {
			case errors.Is(err, context.Canceled):
				return nil
			case err != nil:
				return err
			}
		}

		round, err := a.NewRound(fb, indicator)
		if err != nil {
			return err
		}
		err = round.Run(ctx, term)
		switch {
		case errors.Is(err, display.ErrQuit), errors.Is(err, context.Canceled):
			return nil
		case err != nil:
			return err
		}

		winner, _ := round.Winner()
		a.Logger.Info().Stringer("winner", winner).Int("played", played+1).Msg("round over")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(a.Settings.Window.ResultPause):
		}
	}
	return nil
}
