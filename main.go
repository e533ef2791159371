package main

import (
	"errors"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"laserduel/app"
	"laserduel/display/window"
)

func main() {
	a, err := app.Setup("laserduel", os.Args[1:])
	if err != nil {
		app.Fatal(zerolog.New(os.Stderr), err)
	}
	defer a.Close()

	s := a.Settings
	opts := window.Options{
		Scale:       s.Window.Scale,
		ResultPause: s.Window.ResultPause,
		Rounds:      s.Rounds,
		Buttons:     s.Buttons,
	}
	if s.Loading.Enabled {
		opts.LoadingFrame = s.Loading.Frame
	}
	w := window.New(s.Game.Bounds, s.Game.TickDuration, opts, a.NewRound, a.Logger, a.Indicators()...)

	width, height := w.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(s.Window.Title)
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(int(time.Second / s.Game.TickDuration))

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		a.Close()
		app.Fatal(a.Logger, err)
	}
}
