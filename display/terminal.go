package display

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"laserduel/game"
)

// ErrQuit is returned by Terminal.Snapshot once the player asked to leave
var ErrQuit = errors.New("quit requested")

// TerminalOptions configures a Terminal
type TerminalOptions struct {
	// HoldWindow is how long a key counts as held after its last press event
	HoldWindow time.Duration
	// Buttons maps each button index onto a key
	Buttons [game.ButtonCount]game.Key
	// Logger receives a Debug event per key press; the zero value logs nothing
	Logger zerolog.Logger
}

// Terminal shows frames in a terminal with half-block cells, two pixels per cell,
// and reads keys as game input. Terminals report presses but never releases, so a key
// stays held for HoldWindow after its last event.
type Terminal struct {
	screen tcell.Screen
	opts   TerminalOptions
	now    func() time.Time

	mu      sync.Mutex
	pressed map[game.Key]time.Time
	lamps   [2]bool
	quit    bool

	done chan struct{}
}

var (
	_ Presenter        = (*Terminal)(nil)
	_ game.Indicator   = (*Terminal)(nil)
	_ game.InputSource = (*Terminal)(nil)
)

// NewTerminal wraps an initialised screen
func NewTerminal(screen tcell.Screen, opts TerminalOptions) *Terminal {
	return &Terminal{
		screen:  screen,
		opts:    opts,
		now:     time.Now,
		pressed: make(map[game.Key]time.Time),
		done:    make(chan struct{}),
	}
}

// Start reads screen events until the screen is finalised
func (t *Terminal) Start() {
	go func() {
		defer close(t.done)
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			t.handle(ev)
		}
	}()
}

// Close finalises the screen and waits for the event reader
func (t *Terminal) Close() {
	t.screen.Fini()
	<-t.done
}

func (t *Terminal) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		t.mu.Lock()
		defer t.mu.Unlock()
		t.opts.Logger.Debug().Str("key", ev.Name()).Time("at", ev.When()).Msg("key event")
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.quit = true
		case tcell.KeyRune:
			keys := game.ParseKeys(string(ev.Rune()))
			if len(keys) == 1 {
				t.pressed[keys[0]] = t.now()
			}
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
}

// Snapshot returns the keys pressed within the hold window
func (t *Terminal) Snapshot(tick uint64) (game.InputSnapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	in := game.InputSnapshot{Tick: tick}
	if t.quit {
		return in, ErrQuit
	}

	now := t.now()
	held := make([]game.Key, 0, len(t.pressed))
	for k, at := range t.pressed {
		if now.Sub(at) > t.opts.HoldWindow {
			delete(t.pressed, k)
			continue
		}
		held = append(held, k)
	}
	in.Keys = game.NewKeySet(held...)
	for i, k := range t.opts.Buttons {
		if in.Keys.Has(k) {
			in.Buttons[i] = game.Asserted
		}
	}
	return in, nil
}

// Present draws the frame, then the lamp row beneath it
func (t *Terminal) Present(frame *image.Gray) error {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	w, h := frame.Rect.Dx(), frame.Rect.Dy()
	for cy := 0; cy*2 < h; cy++ {
		for x := 0; x < w; x++ {
			top := grayLit(frame, x, cy*2)
			bottom := grayLit(frame, x, cy*2+1)
			t.screen.SetContent(x, cy, halfBlock(top, bottom), nil, style)
		}
	}

	t.mu.Lock()
	lamps := t.lamps
	t.mu.Unlock()
	t.drawLamps((h+1)/2, w, lamps)

	t.screen.Show()
	return nil
}

// Set switches a team's lamp
func (t *Terminal) Set(team game.Team, on bool) error {
	t.mu.Lock()
	t.lamps[team] = on
	t.mu.Unlock()
	return nil
}

// drawLamps places team A's lamp on the left and team B's on the right of row y
func (t *Terminal) drawLamps(y, width int, lamps [2]bool) {
	for _, team := range game.Teams {
		c := game.GetTeamConfig(team).Color
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		r := '○'
		if lamps[team] {
			r = '●'
		}
		x := 1
		if team == game.TeamB {
			x = width - 2
		}
		t.screen.SetContent(x, y, r, nil, style)
	}
}

func grayLit(frame *image.Gray, x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(frame.Rect)) {
		return false
	}
	return frame.GrayAt(x, y).Y >= 0x80
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
