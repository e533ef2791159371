package game

import "errors"

//go:generate go tool mockgen -destination=./mocks/renderer_mock.go -package=mocks . Renderer,Indicator

// Alignment anchors text horizontally on its anchor point
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Renderer draws one frame of the world. Every call may fail, and a failure aborts the round.
type Renderer interface {
	Clear() error
	DrawRect(topLeft Position, width, height int) error
	DrawTriangle(a, b, c Position) error
	DrawLine(a, b Position) error
	// DrawArc fills a ring band of the given width inside radius, swept by sweep degrees
	// clockwise from start (0 points along +x)
	DrawArc(center Position, radius, width int, start, sweep float64) error
	DrawText(text string, anchor Position, align Alignment) error
	Flush() error
}

// Indicator drives one binary output per team (the laser-armed lamp)
type Indicator interface {
	Set(team Team, on bool) error
}

// NopRenderer discards every draw call
type NopRenderer struct{}

func (NopRenderer) Clear() error { return nil }
func (NopRenderer) DrawRect(Position, int, int) error { return nil }
func (NopRenderer) DrawTriangle(_, _, _ Position) error { return nil }
func (NopRenderer) DrawLine(_, _ Position) error { return nil }
func (NopRenderer) DrawArc(Position, int, int, float64, float64) error { return nil }
func (NopRenderer) DrawText(string, Position, Alignment) error { return nil }
func (NopRenderer) Flush() error { return nil }

// NopIndicator ignores every state change
type NopIndicator struct{}

func (NopIndicator) Set(Team, bool) error { return nil }

// Indicators fans a state change out to several indicators. Every indicator is set
// even when an earlier one fails.
type Indicators []Indicator

func (is Indicators) Set(team Team, on bool) error {
	var errs []error
	for _, i := range is {
		if err := i.Set(team, on); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
