package game

import (
	"context"
	"fmt"
	"time"
)

// LoadingFrames is the number of frames of the loading ring, one per percent from 0 to 100
const LoadingFrames = 101

const (
	ringWidth = 5
	// ringStart points the ring's first segment straight down
	ringStart = 90.0
	// labelRise lifts the label's top edge so the text sits on the display centre
	labelRise = 6
)

// Loading is the progress ring shown before each duel. Every Step draws and flushes the next
// percentage until 100% was shown.
type Loading struct {
	renderer Renderer
	bounds   Bounds
	progress int
}

// NewLoading creates a loading ring at 0%
func NewLoading(bounds Bounds, renderer Renderer) *Loading {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	return &Loading{renderer: renderer, bounds: bounds}
}

// Progress returns the percentage the next Step draws
func (l *Loading) Progress() int { return l.progress }

// Done reports whether the 100% frame was shown
func (l *Loading) Done() bool { return l.progress >= LoadingFrames }

// Step draws one frame and reports whether the ring is complete
func (l *Loading) Step() (bool, error) {
	if l.Done() {
		return true, nil
	}
	if err := l.draw(l.progress); err != nil {
		return false, fmt.Errorf("loading %d%%: %w", l.progress, err)
	}
	l.progress++
	return l.Done(), nil
}

// Run draws one frame per interval until the ring completes or ctx ends
func (l *Loading) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		done, err := l.Step()
		if err != nil || done {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *Loading) draw(percent int) error {
	if err := l.renderer.Clear(); err != nil {
		return err
	}
	center := Position{X: l.bounds.Width / 2, Y: l.bounds.Height / 2}
	radius := min(l.bounds.Width, l.bounds.Height)/2 - 2
	sweep := float64(percent) * 360 / 100
	if err := l.renderer.DrawArc(center, radius, ringWidth, ringStart, sweep); err != nil {
		return err
	}
	label := Position{X: center.X, Y: center.Y - labelRise}
	if err := l.renderer.DrawText(fmt.Sprintf("%d%%", percent), label, AlignCenter); err != nil {
		return err
	}
	return l.renderer.Flush()
}
