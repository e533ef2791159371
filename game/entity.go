package game

// ActorKind identifies the variant held by an Actor
type ActorKind int

const (
	KindPlayer ActorKind = iota
	KindBullet
)

func (k ActorKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	default:
		return "unknown"
	}
}

// Actor is a closed sum of the two game object kinds. Exactly one of Player and
// Bullet is set, matching Kind.
type Actor struct {
	Kind   ActorKind
	Player *Player
	Bullet *Bullet
}

// PlayerActor wraps a player
func PlayerActor(p *Player) Actor {
	return Actor{Kind: KindPlayer, Player: p}
}

// BulletActor wraps a bullet
func BulletActor(b *Bullet) Actor {
	return Actor{Kind: KindBullet, Bullet: b}
}

// Team returns the owning team
func (a Actor) Team() Team {
	switch a.Kind {
	case KindPlayer:
		return a.Player.team
	default:
		return a.Bullet.team
	}
}

// Position returns the hit-test position
func (a Actor) Position() Position {
	switch a.Kind {
	case KindPlayer:
		return a.Player.pos
	default:
		return a.Bullet.pos
	}
}

// Hittable reports whether the actor takes part in collision tests
func (a Actor) Hittable() bool {
	switch a.Kind {
	case KindPlayer:
		return true
	default:
		return a.Bullet.Active
	}
}

// Tick advances the actor by one tick and returns any bullets it fired
func (a Actor) Tick(in InputSnapshot) []*Bullet {
	switch a.Kind {
	case KindPlayer:
		return a.Player.Tick(in)
	default:
		a.Bullet.Tick()
		return nil
	}
}

// Draw renders the actor
func (a Actor) Draw(r Renderer) error {
	switch a.Kind {
	case KindPlayer:
		return a.Player.Draw(r)
	default:
		return a.Bullet.Draw(r)
	}
}

// MoveTo relocates the actor without any bounds check
func (a Actor) MoveTo(p Position) {
	switch a.Kind {
	case KindPlayer:
		a.Player.MoveTo(p)
	default:
		a.Bullet.MoveTo(p)
	}
}

// relativeDirections are the movement intents read from the key set
type relativeDirections struct {
	forward, backward, left, right bool
}

// Player is a combatant. Its health lives in the round's TeamHealth.
type Player struct {
	pos       Position
	direction Direction
	team      Team
	bindings  Bindings
	speed     int
	frontLine int
	bounds    Bounds

	// fireInterval is the direct-fire cooldown, countdown the ticks left until the next shot
	fireInterval int
	countdown    int
}

// NewPlayer creates a player for a team from its configuration
func NewPlayer(team Team, cfg PlayerConfig, bounds Bounds, fireInterval int) *Player {
	return &Player{
		pos:          cfg.Start,
		direction:    cfg.Direction,
		team:         team,
		bindings:     cfg.Bindings,
		speed:        1,
		frontLine:    cfg.FrontLine,
		bounds:       bounds,
		fireInterval: fireInterval,
	}
}

// Team returns the player's team
func (p *Player) Team() Team { return p.team }

// Direction returns the player's facing
func (p *Player) Direction() Direction { return p.direction }

// Position returns the player's position
func (p *Player) Position() Position { return p.pos }

// MoveTo relocates the player
func (p *Player) MoveTo(pos Position) { p.pos = pos }

// Tick applies movement from the key set and fires on the player's button
func (p *Player) Tick(in InputSnapshot) []*Bullet {
	var dirs relativeDirections
	dirs.forward = in.Keys.Any(p.bindings.Forward)
	dirs.backward = in.Keys.Any(p.bindings.Backward)
	dirs.left = in.Keys.Any(p.bindings.Left)
	dirs.right = in.Keys.Any(p.bindings.Right)

	forward := axisIntent(dirs.forward, dirs.backward, p.speed)
	left := axisIntent(dirs.left, dirs.right, p.speed)
	p.moveRelative(forward, left)

	if p.countdown > 0 {
		p.countdown--
	}
	if p.fireInterval == 0 || p.countdown > 0 || in.Button(p.bindings.Button) != Asserted {
		return nil
	}
	p.countdown = p.fireInterval
	return []*Bullet{NewBullet(p.pos, p.direction, p.team)}
}

func axisIntent(positive, negative bool, speed int) int {
	switch {
	case positive && !negative:
		return speed
	case negative && !positive:
		return -speed
	default:
		return 0
	}
}

// moveRelative maps (forward, left) onto the world. The primary axis moves twice as fast.
func (p *Player) moveRelative(forward, left int) {
	dx, dy := p.direction.Relative(forward, left)
	if p.direction.Horizontal() {
		dx *= 2
		if p.crossesFrontLine(p.pos.X + dx) {
			dx = 0
		}
	} else {
		dy *= 2
		if p.crossesFrontLine(p.pos.Y + dy) {
			dy = 0
		}
	}
	p.moveBy(dx, dy)
}

// crossesFrontLine reports whether a forward step to primary goes past the front line.
// A zero front line disables the check.
func (p *Player) crossesFrontLine(primary int) bool {
	if p.frontLine == 0 {
		return false
	}
	current := p.direction.Primary(p.pos)
	switch p.direction {
	case XPlus, YPlus:
		return primary > current && primary > p.frontLine
	default:
		return primary < current && primary < p.frontLine
	}
}

// moveBy zeroes each component that would leave the display instead of clamping it
func (p *Player) moveBy(dx, dy int) {
	next := p.pos.Add(dx, dy)
	if next.X < 0 || next.X > p.bounds.Width {
		dx = 0
	}
	if next.Y < 0 || next.Y > p.bounds.Height {
		dy = 0
	}
	p.pos = p.pos.Add(dx, dy)
}

// Draw renders a filled 7x7 square centred on the player
func (p *Player) Draw(r Renderer) error {
	return r.DrawRect(p.pos.Add(-3, -3), 7, 7)
}

// Bullet is a straight-line projectile
type Bullet struct {
	pos       Position
	direction Direction
	team      Team
	speed     int

	// Active is cleared on collision. Inactive bullets neither move, draw nor collide.
	Active bool
}

// NewBullet creates an active bullet
func NewBullet(pos Position, direction Direction, team Team) *Bullet {
	return &Bullet{
		pos:       pos,
		direction: direction,
		team:      team,
		speed:     1,
		Active:    true,
	}
}

// Team returns the owning team
func (b *Bullet) Team() Team { return b.team }

// Direction returns the travel direction
func (b *Bullet) Direction() Direction { return b.direction }

// Position returns the bullet's position
func (b *Bullet) Position() Position { return b.pos }

// MoveTo relocates the bullet
func (b *Bullet) MoveTo(pos Position) { b.pos = pos }

// Disable takes the bullet out of play
func (b *Bullet) Disable() { b.Active = false }

// Tick advances an active bullet along its direction
func (b *Bullet) Tick() {
	if !b.Active {
		return
	}
	sx, sy := b.direction.Step()
	b.pos = b.pos.Add(sx*b.speed, sy*b.speed)
}

// Draw renders a small triangle pointing along the direction
func (b *Bullet) Draw(r Renderer) error {
	sx, sy := b.direction.Step()
	// perpendicular
	px, py := -sy, sx
	tip := b.pos.Add(2*sx, 2*sy)
	back := b.pos.Add(-2*sx, -2*sy)
	return r.DrawTriangle(tip, back.Add(px, py), back.Add(-px, -py))
}
