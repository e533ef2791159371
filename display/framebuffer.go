package display

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"laserduel/game"
)

// arcStep is the widest angle in degrees one arc segment spans
const arcStep = 3.0

// rasterPad extends the rasterizer beyond the display so shapes straddling an edge
// keep their shape
const rasterPad = 32

// Presenter receives every completed frame. The frame must not be retained.
type Presenter interface {
	Present(frame *image.Gray) error
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(frame *image.Gray) error

// Present calls f
func (f PresenterFunc) Present(frame *image.Gray) error { return f(frame) }

// Framebuffer is a double-buffered monochrome display implementing game.Renderer.
// Shapes are drawn into the back buffer; Flush makes it visible.
type Framebuffer struct {
	back   *image.Gray
	front  *image.Gray
	mask   *image.Alpha
	raster *vector.Rasterizer
	face   font.Face

	presenter Presenter
	frames    uint64

	mu sync.RWMutex // guards front and frames
}

var _ game.Renderer = (*Framebuffer)(nil)

// NewFramebuffer creates a blank framebuffer of the display size
func NewFramebuffer(bounds game.Bounds, presenter Presenter) *Framebuffer {
	r := image.Rect(0, 0, bounds.Width, bounds.Height)
	pw, ph := bounds.Width+2*rasterPad, bounds.Height+2*rasterPad
	return &Framebuffer{
		back:      image.NewGray(r),
		front:     image.NewGray(r),
		mask:      image.NewAlpha(image.Rect(0, 0, pw, ph)),
		raster:    vector.NewRasterizer(pw, ph),
		face:      basicfont.Face7x13,
		presenter: presenter,
	}
}

// Clear blanks the back buffer
func (f *Framebuffer) Clear() error {
	clear(f.back.Pix)
	return nil
}

// DrawRect fills width x height pixels from topLeft, clipped to the display
func (f *Framebuffer) DrawRect(topLeft game.Position, width, height int) error {
	r := image.Rect(topLeft.X, topLeft.Y, topLeft.X+width, topLeft.Y+height).Intersect(f.back.Rect)
	draw.Draw(f.back, r, image.White, image.Point{}, draw.Src)
	return nil
}

// DrawTriangle fills the triangle spanned by the three pixel centres
func (f *Framebuffer) DrawTriangle(a, b, c game.Position) error {
	f.beginPath()
	f.raster.MoveTo(f.center(a))
	f.raster.LineTo(f.center(b))
	f.raster.LineTo(f.center(c))
	f.raster.ClosePath()
	f.fillPath()
	return nil
}

// DrawLine draws a one pixel wide line including both end points
func (f *Framebuffer) DrawLine(a, b game.Position) error {
	if a == b {
		f.set(a.X, a.Y)
		return nil
	}
	ax, ay := f.center(a)
	bx, by := f.center(b)
	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	// half-pixel along and across the segment
	ux, uy := dx/l/2, dy/l/2
	nx, ny := -uy, ux

	f.beginPath()
	f.raster.MoveTo(ax-ux+nx, ay-uy+ny)
	f.raster.LineTo(bx+ux+nx, by+uy+ny)
	f.raster.LineTo(bx+ux-nx, by+uy-ny)
	f.raster.LineTo(ax-ux-nx, ay-uy-ny)
	f.raster.ClosePath()
	f.fillPath()
	return nil
}

// DrawArc fills the band between radius-width and radius around center, swept by sweep
// degrees from start. Angles grow from +x towards +y, so positive sweeps turn clockwise.
func (f *Framebuffer) DrawArc(center game.Position, radius, width int, start, sweep float64) error {
	sweep = max(-360, min(sweep, 360))
	if sweep == 0 || radius <= 0 || width <= 0 {
		return nil
	}
	outer, inner := float64(radius), float64(max(radius-width, 0))
	cx, cy := f.center(center)
	maxX, maxY := float32(f.mask.Rect.Dx()), float32(f.mask.Rect.Dy())
	steps := int(math.Ceil(math.Abs(sweep) / arcStep))
	point := func(r float64, i int) (float32, float32) {
		a := (start + sweep*float64(i)/float64(steps)) * math.Pi / 180
		return clampf(cx+float32(r*math.Cos(a)), maxX), clampf(cy+float32(r*math.Sin(a)), maxY)
	}

	f.beginPath()
	f.raster.MoveTo(point(outer, 0))
	for i := 1; i <= steps; i++ {
		f.raster.LineTo(point(outer, i))
	}
	for i := steps; i >= 0; i-- {
		f.raster.LineTo(point(inner, i))
	}
	f.raster.ClosePath()
	f.fillPath()
	return nil
}

// DrawText draws text with its top edge at anchor.Y, aligned horizontally on anchor.X
func (f *Framebuffer) DrawText(text string, anchor game.Position, align game.Alignment) error {
	width := font.MeasureString(f.face, text).Round()
	x := anchor.X
	switch align {
	case game.AlignCenter:
		x -= width / 2
	case game.AlignRight:
		x -= width
	}
	d := font.Drawer{
		Dst:  f.back,
		Src:  image.White,
		Face: f.face,
		Dot:  fixed.P(x, anchor.Y+f.face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return nil
}

// Flush publishes the back buffer and hands the frame to the presenter
func (f *Framebuffer) Flush() error {
	f.mu.Lock()
	copy(f.front.Pix, f.back.Pix)
	f.frames++
	f.mu.Unlock()

	if f.presenter == nil {
		return nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.presenter.Present(f.front)
}

// Pixel reports whether a visible pixel is lit. Out of range pixels are dark.
func (f *Framebuffer) Pixel(x, y int) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !(image.Point{X: x, Y: y}.In(f.front.Rect)) {
		return false
	}
	return f.front.GrayAt(x, y).Y >= 0x80
}

// Snapshot copies the visible frame into dst, allocating it when nil
func (f *Framebuffer) Snapshot(dst *image.Gray) *image.Gray {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if dst == nil || dst.Rect != f.front.Rect {
		dst = image.NewGray(f.front.Rect)
	}
	copy(dst.Pix, f.front.Pix)
	return dst
}

// Frames returns how many frames were flushed
func (f *Framebuffer) Frames() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.frames
}

// Size returns the display size in pixels
func (f *Framebuffer) Size() (int, int) {
	return f.front.Rect.Dx(), f.front.Rect.Dy()
}

func (f *Framebuffer) set(x, y int) {
	if (image.Point{X: x, Y: y}).In(f.back.Rect) {
		f.back.SetGray(x, y, color.Gray{Y: 0xff})
	}
}

func (f *Framebuffer) beginPath() {
	f.raster.Reset(f.mask.Rect.Dx(), f.mask.Rect.Dy())
	clear(f.mask.Pix)
}

// fillPath lights every visible pixel at least half covered by the current path
func (f *Framebuffer) fillPath() {
	f.raster.Draw(f.mask, f.mask.Rect, image.Opaque, image.Point{})
	w, h := f.back.Rect.Dx(), f.back.Rect.Dy()
	for y := 0; y < h; y++ {
		row := f.mask.Pix[(y+rasterPad)*f.mask.Stride+rasterPad:]
		for x := 0; x < w; x++ {
			if row[x] >= 0x80 {
				f.back.Pix[y*f.back.Stride+x] = 0xff
			}
		}
	}
}

// center maps a pixel onto its centre in rasterizer space, clamped to the padded area
func (f *Framebuffer) center(p game.Position) (float32, float32) {
	maxX, maxY := float32(f.mask.Rect.Dx()), float32(f.mask.Rect.Dy())
	return clampf(float32(p.X+rasterPad)+0.5, maxX), clampf(float32(p.Y+rasterPad)+0.5, maxY)
}

func clampf(v, hi float32) float32 {
	return max(0, min(v, hi))
}
