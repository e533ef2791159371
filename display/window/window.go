package window

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"laserduel/display"
	"laserduel/game"
)

var (
	colorBackground = color.RGBA{8, 8, 16, 255}
	colorPixel      = color.RGBA{160, 230, 255, 255}
	colorLampOff    = color.RGBA{40, 40, 48, 255}
)

// Options configures a Window
type Options struct {
	Scale int
	// ResultPause is the gap between two rounds
	ResultPause time.Duration
	// Rounds is the number of rounds to play; zero plays until Escape
	Rounds int
	// Buttons maps each button index onto a key
	Buttons [game.ButtonCount]game.Key
	// LoadingFrame is how long each percent of the loading ring shows; zero skips the ring
	LoadingFrame time.Duration
}

// RoundFactory starts a new round drawing into the window's framebuffer and lamps
type RoundFactory func(renderer game.Renderer, indicator game.Indicator) (*game.Round, error)

// Window runs rounds inside an ebiten game loop. Ebiten calls Update once per tick,
// so TPS must be set to one second over the tick duration.
type Window struct {
	opts     Options
	newRound RoundFactory
	logger   zerolog.Logger

	bounds    game.Bounds
	fb        *display.Framebuffer
	indicator game.Indicator
	lamps     [2]bool

	loading *game.Loading
	// loadingTicks is the number of ticks per loading frame, loadingWait the ticks left
	loadingTicks int
	loadingWait  int

	round  *game.Round
	tick   uint64
	played int
	// pause counts the ticks left before the next round starts
	pause      int
	pauseTicks int

	keys        []ebiten.Key
	justPressed []ebiten.Key
	frame       *image.Gray
	img         *ebiten.Image
	rgba        []byte
	debug       *DebugState
}

// New creates a window. extra indicators, such as an audio cue, follow the on-screen lamps.
func New(bounds game.Bounds, tick time.Duration, opts Options, newRound RoundFactory, logger zerolog.Logger, extra ...game.Indicator) *Window {
	w := &Window{
		opts:     opts,
		newRound: newRound,
		logger:   logger,
		bounds:   bounds,
		fb:       display.NewFramebuffer(bounds, nil),
		keys:     make([]ebiten.Key, 0, 16),
		img:      ebiten.NewImage(bounds.Width, bounds.Height),
		rgba:     make([]byte, 4*bounds.Width*bounds.Height),
		debug:    GetDebugState(),
	}
	w.indicator = append(game.Indicators{lampSetter{w}}, extra...)
	if tick > 0 {
		w.pauseTicks = int(opts.ResultPause / tick)
		if opts.LoadingFrame > 0 {
			w.loadingTicks = int((opts.LoadingFrame + tick - 1) / tick)
		}
	}
	return w
}

// lampSetter records lamp state for drawing
type lampSetter struct{ w *Window }

func (l lampSetter) Set(team game.Team, on bool) error {
	l.w.lamps[team] = on
	return nil
}

// Update advances the current round by one tick
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.debug.ShowOverlay = !w.debug.ShowOverlay
	}

	w.justPressed = inpututil.AppendJustPressedKeys(w.justPressed[:0])
	w.logKeys(w.justPressed)
	w.keys = inpututil.AppendPressedKeys(w.keys[:0])
	return w.step(keysFromEbiten(w.keys))
}

// logKeys traces newly pressed keys
func (w *Window) logKeys(pressed []ebiten.Key) {
	for _, k := range pressed {
		w.logger.Debug().Stringer("key", k).Uint64("tick", w.tick).Msg("key event")
	}
}

// step runs one tick of the round loop with the given keys held
func (w *Window) step(held []game.Key) error {
	if w.round == nil {
		if w.pause > 0 {
			w.pause--
			return nil
		}
		if w.opts.Rounds > 0 && w.played >= w.opts.Rounds {
			return ebiten.Termination
		}
		if loading, err := w.stepLoading(); loading || err != nil {
			return err
		}
		round, err := w.newRound(w.fb, w.indicator)
		if err != nil {
			return fmt.Errorf("start round: %w", err)
		}
		w.round = round
		w.tick = 0
	}

	w.tick++
	phase, err := w.round.Step(snapshot(w.tick, held, w.opts.Buttons))
	if err != nil {
		return fmt.Errorf("round %s: %w", w.round.ID(), err)
	}
	if phase == game.PhaseTerminated {
		winner, _ := w.round.Winner()
		w.played++
		w.logger.Info().Int("played", w.played).Stringer("winner", winner).Msg("round over")
		w.round = nil
		w.pause = w.pauseTicks
	}
	return nil
}

// stepLoading advances the loading ring shown before a round. It reports true while the
// ring still owns the display.
func (w *Window) stepLoading() (bool, error) {
	if w.loadingTicks == 0 {
		return false, nil
	}
	if w.loading == nil {
		w.loading = game.NewLoading(w.bounds, w.fb)
		w.loadingWait = 0
	}
	if w.loading.Done() {
		w.loading = nil
		return false, nil
	}
	if w.loadingWait > 0 {
		w.loadingWait--
		return true, nil
	}
	if _, err := w.loading.Step(); err != nil {
		return true, err
	}
	w.loadingWait = w.loadingTicks - 1
	return true, nil
}

// Draw shows the last flushed frame scaled up, with the two lamps beneath it
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	w.frame = w.fb.Snapshot(w.frame)
	grayToRGBA(w.frame, w.rgba, colorPixel)
	w.img.WritePixels(w.rgba)

	scale := float64(w.opts.Scale)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(w.img, op)

	width, height := w.fb.Size()
	y := float32(height*w.opts.Scale) + float32(lampBand*w.opts.Scale)/2
	radius := float32(w.opts.Scale) * 2
	for _, team := range game.Teams {
		clr := colorLampOff
		if w.lamps[team] {
			clr = game.GetTeamConfig(team).Color
		}
		x := float32(4 * w.opts.Scale)
		if team == game.TeamB {
			x = float32((width - 4) * w.opts.Scale)
		}
		vector.DrawFilledCircle(screen, x, y, radius, clr, true)
	}

	if w.debug.ShowOverlay && w.round != nil {
		ebitenutil.DebugPrintAt(screen, debugText(w.round, ebiten.ActualTPS()), 4, 4)
	}
}

// lampBand is the height in display pixels of the lamp strip under the playfield
const lampBand = 8

// Layout returns the scaled display plus the lamp strip
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	width, height := w.fb.Size()
	return width * w.opts.Scale, (height + lampBand) * w.opts.Scale
}

// snapshot builds the input for one tick
func snapshot(tick uint64, held []game.Key, buttons [game.ButtonCount]game.Key) game.InputSnapshot {
	in := game.InputSnapshot{Tick: tick, Keys: game.NewKeySet(held...)}
	for i, k := range buttons {
		if in.Keys.Has(k) {
			in.Buttons[i] = game.Asserted
		}
	}
	return in
}

// keysFromEbiten maps letter and digit keys onto logical keys and drops the rest
func keysFromEbiten(keys []ebiten.Key) []game.Key {
	out := make([]game.Key, 0, len(keys))
	for _, k := range keys {
		name := k.String()
		switch {
		case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
			out = append(out, game.Key(name[0]-'A'+'a'))
		case len(name) == 6 && strings.HasPrefix(name, "Digit"):
			out = append(out, game.Key(name[5]))
		case k == ebiten.KeySpace:
			out = append(out, ' ')
		}
	}
	return out
}

// grayToRGBA expands lit pixels into on and dark ones into transparent black
func grayToRGBA(src *image.Gray, dst []byte, on color.RGBA) {
	for i, v := range src.Pix {
		p := dst[i*4 : i*4+4]
		if v >= 0x80 {
			p[0], p[1], p[2], p[3] = on.R, on.G, on.B, on.A
		} else {
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
		}
	}
}
