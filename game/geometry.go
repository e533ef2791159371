package game

// Position is an integer point on the display. Bounds are enforced by movers.
type Position struct {
	X, Y int
}

// Add returns p translated by (dx, dy)
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns |dx| + |dy| between two positions
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Direction is the absolute facing of an actor. It never changes after creation.
type Direction int

const (
	// XPlus faces right
	XPlus Direction = iota
	// XMinus faces left
	XMinus
	// YPlus faces down
	YPlus
	// YMinus faces up
	YMinus
)

func (d Direction) String() string {
	switch d {
	case XPlus:
		return "x+"
	case XMinus:
		return "x-"
	case YPlus:
		return "y+"
	case YMinus:
		return "y-"
	default:
		return "unknown"
	}
}

// Horizontal reports whether the direction lies on the x axis
func (d Direction) Horizontal() bool {
	return d == XPlus || d == XMinus
}

// Step returns the unit vector along the direction
func (d Direction) Step() (int, int) {
	switch d {
	case XPlus:
		return 1, 0
	case XMinus:
		return -1, 0
	case YPlus:
		return 0, 1
	case YMinus:
		return 0, -1
	default:
		return 0, 0
	}
}

// Relative maps (forward, left) movement onto world (dx, dy).
// Screen y grows downwards, so "left" of a right-facing actor is -y.
func (d Direction) Relative(forward, left int) (int, int) {
	switch d {
	case XPlus:
		return forward, -left
	case XMinus:
		return -forward, left
	case YPlus:
		return left, forward
	case YMinus:
		return -left, -forward
	default:
		return 0, 0
	}
}

// Primary returns the coordinate along the direction's axis
func (d Direction) Primary(p Position) int {
	if d.Horizontal() {
		return p.X
	}
	return p.Y
}

// Lateral returns the coordinate perpendicular to the direction's axis
func (d Direction) Lateral(p Position) int {
	if d.Horizontal() {
		return p.Y
	}
	return p.X
}

// compose builds a position from primary and lateral coordinates
func (d Direction) compose(primary, lateral int) Position {
	if d.Horizontal() {
		return Position{X: primary, Y: lateral}
	}
	return Position{X: lateral, Y: primary}
}

// Bounds is the visible display region. Both edges are inclusive for movement.
type Bounds struct {
	Width, Height int
}

// Contains reports whether p lies within [0, Width] x [0, Height]
func (b Bounds) Contains(p Position) bool {
	return 0 <= p.X && p.X <= b.Width && 0 <= p.Y && p.Y <= b.Height
}

// WithinMargin reports whether p lies strictly inside the display extended by margin on all sides
func (b Bounds) WithinMargin(p Position, margin int) bool {
	return -margin < p.X && p.X < b.Width+margin &&
		-margin < p.Y && p.Y < b.Height+margin
}

// Extent returns the display size along the direction's axis
func (b Bounds) Extent(d Direction) int {
	if d.Horizontal() {
		return b.Width
	}
	return b.Height
}

// LateralExtent returns the display size perpendicular to the direction's axis
func (b Bounds) LateralExtent(d Direction) int {
	if d.Horizontal() {
		return b.Height
	}
	return b.Width
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
