package display

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laserduel/game"
)

func newTestFramebuffer(p Presenter) *Framebuffer {
	return NewFramebuffer(game.Bounds{Width: 128, Height: 64}, p)
}

func lit(fb *Framebuffer) int {
	n := 0
	w, h := fb.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fb.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func TestFramebufferOnlyFlushShows(t *testing.T) {
	fb := newTestFramebuffer(nil)
	require.NoError(t, fb.DrawRect(game.Position{X: 10, Y: 10}, 7, 7))

	assert.False(t, fb.Pixel(12, 12), "drawing goes to the back buffer")
	require.NoError(t, fb.Flush())
	assert.True(t, fb.Pixel(12, 12))
	assert.Equal(t, 49, lit(fb))
	assert.Equal(t, uint64(1), fb.Frames())

	require.NoError(t, fb.Clear())
	assert.True(t, fb.Pixel(12, 12), "clear leaves the visible frame alone")
	require.NoError(t, fb.Flush())
	assert.Zero(t, lit(fb))
}

func TestFramebufferClipsRect(t *testing.T) {
	fb := newTestFramebuffer(nil)
	require.NoError(t, fb.DrawRect(game.Position{X: 125, Y: -3}, 7, 7))
	require.NoError(t, fb.Flush())

	assert.Equal(t, 3*4, lit(fb))
	assert.True(t, fb.Pixel(127, 0))
	assert.False(t, fb.Pixel(128, 0))
	assert.False(t, fb.Pixel(-1, 0))
}

func TestFramebufferHealthLines(t *testing.T) {
	fb := newTestFramebuffer(nil)
	require.NoError(t, fb.DrawLine(game.Position{X: 0, Y: 0}, game.Position{X: 40, Y: 0}))
	require.NoError(t, fb.DrawLine(game.Position{X: 108, Y: 0}, game.Position{X: 128, Y: 0}))
	require.NoError(t, fb.Flush())

	for x := 0; x <= 40; x++ {
		assert.True(t, fb.Pixel(x, 0), "x=%d", x)
	}
	assert.False(t, fb.Pixel(41, 0))
	assert.False(t, fb.Pixel(107, 0))
	for x := 108; x < 128; x++ {
		assert.True(t, fb.Pixel(x, 0), "x=%d", x)
	}
	assert.Equal(t, 41+20, lit(fb), "lines are one pixel thick")
}

func TestFramebufferVerticalAndPointLines(t *testing.T) {
	fb := newTestFramebuffer(nil)
	require.NoError(t, fb.DrawLine(game.Position{X: 5, Y: 10}, game.Position{X: 5, Y: 14}))
	require.NoError(t, fb.DrawLine(game.Position{X: 50, Y: 50}, game.Position{X: 50, Y: 50}))
	require.NoError(t, fb.Flush())

	for y := 10; y <= 14; y++ {
		assert.True(t, fb.Pixel(5, y))
	}
	assert.True(t, fb.Pixel(50, 50))
	assert.Equal(t, 6, lit(fb))
}

func TestFramebufferTriangle(t *testing.T) {
	fb := newTestFramebuffer(nil)
	// right-pointing bullet at (20,10)
	require.NoError(t, fb.DrawTriangle(game.Position{X: 22, Y: 10}, game.Position{X: 18, Y: 11}, game.Position{X: 18, Y: 9}))
	require.NoError(t, fb.Flush())

	assert.True(t, fb.Pixel(20, 10))
	assert.True(t, fb.Pixel(19, 10))
	assert.False(t, fb.Pixel(20, 12))
	assert.False(t, fb.Pixel(24, 10))
	n := lit(fb)
	assert.GreaterOrEqual(t, n, 2)
	assert.Less(t, n, 15)
}

func TestFramebufferTriangleOffscreen(t *testing.T) {
	fb := newTestFramebuffer(nil)
	// laser bullet spawned left of the display
	require.NoError(t, fb.DrawTriangle(game.Position{X: -4, Y: 10}, game.Position{X: -8, Y: 11}, game.Position{X: -8, Y: 9}))
	require.NoError(t, fb.Flush())
	assert.Zero(t, lit(fb))
}

func TestFramebufferArc(t *testing.T) {
	center := game.Position{X: 64, Y: 32}

	fb := newTestFramebuffer(nil)
	require.NoError(t, fb.DrawArc(center, 30, 5, 90, 360))
	require.NoError(t, fb.Flush())
	assert.True(t, fb.Pixel(92, 32), "right side of the ring")
	assert.True(t, fb.Pixel(64, 4), "top of the ring")
	assert.True(t, fb.Pixel(36, 32), "left side of the ring")
	assert.False(t, fb.Pixel(64, 32), "the ring is hollow")
	assert.False(t, fb.Pixel(80, 32), "inside the band")
	assert.False(t, fb.Pixel(0, 0), "outside the ring")

	// a quarter from the bottom turning clockwise covers the lower left
	require.NoError(t, fb.Clear())
	require.NoError(t, fb.DrawArc(center, 30, 5, 90, 90))
	require.NoError(t, fb.Flush())
	assert.True(t, fb.Pixel(44, 51))
	assert.False(t, fb.Pixel(92, 32))
	assert.False(t, fb.Pixel(64, 4))
	assert.False(t, fb.Pixel(84, 51), "lower right is the other way round")
}

func TestFramebufferArcEmptySweep(t *testing.T) {
	fb := newTestFramebuffer(nil)
	require.NoError(t, fb.DrawArc(game.Position{X: 64, Y: 32}, 30, 5, 90, 0))
	require.NoError(t, fb.Flush())
	assert.Zero(t, lit(fb))
}

func TestFramebufferTextAlignment(t *testing.T) {
	fb := newTestFramebuffer(nil)
	require.NoError(t, fb.DrawText("Win", game.Position{X: 0, Y: 0}, game.AlignLeft))
	require.NoError(t, fb.Flush())
	left := columns(fb)
	require.NotEmpty(t, left)
	assert.Less(t, left[0], 7)
	assert.Less(t, left[len(left)-1], 21)

	require.NoError(t, fb.Clear())
	require.NoError(t, fb.DrawText("Lose", game.Position{X: 128, Y: 0}, game.AlignRight))
	require.NoError(t, fb.Flush())
	right := columns(fb)
	require.NotEmpty(t, right)
	assert.GreaterOrEqual(t, right[0], 128-28)
	assert.Greater(t, right[len(right)-1], 120)

	require.NoError(t, fb.Clear())
	require.NoError(t, fb.DrawText("A", game.Position{X: 64, Y: 20}, game.AlignCenter))
	require.NoError(t, fb.Flush())
	mid := columns(fb)
	require.NotEmpty(t, mid)
	assert.GreaterOrEqual(t, mid[0], 60)
	assert.LessOrEqual(t, mid[len(mid)-1], 67)
}

// columns lists the x coordinates holding at least one lit pixel
func columns(fb *Framebuffer) []int {
	var xs []int
	w, h := fb.Size()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if fb.Pixel(x, y) {
				xs = append(xs, x)
				break
			}
		}
	}
	return xs
}

func TestFramebufferPresenter(t *testing.T) {
	var seen []int
	fb := newTestFramebuffer(PresenterFunc(func(frame *image.Gray) error {
		seen = append(seen, int(frame.GrayAt(1, 1).Y))
		return nil
	}))

	require.NoError(t, fb.Flush())
	require.NoError(t, fb.DrawRect(game.Position{X: 0, Y: 0}, 2, 2))
	require.NoError(t, fb.Flush())
	assert.Equal(t, []int{0, 0xff}, seen)

	broken := errors.New("spi write failed")
	fb = newTestFramebuffer(PresenterFunc(func(*image.Gray) error { return broken }))
	assert.ErrorIs(t, fb.Flush(), broken)
}

func TestFramebufferSnapshot(t *testing.T) {
	fb := newTestFramebuffer(nil)
	require.NoError(t, fb.DrawRect(game.Position{X: 3, Y: 4}, 1, 1))
	require.NoError(t, fb.Flush())

	snap := fb.Snapshot(nil)
	assert.Equal(t, uint8(0xff), snap.GrayAt(3, 4).Y)
	again := fb.Snapshot(snap)
	assert.Same(t, snap, again)
}
