package game

import "fmt"

// WeaponType identifies what fired a bullet
type WeaponType int

const (
	WeaponDirect WeaponType = iota
	WeaponGun
	WeaponLaser
)

func (w WeaponType) String() string {
	switch w {
	case WeaponDirect:
		return "direct"
	case WeaponGun:
		return "gun"
	case WeaponLaser:
		return "laser"
	default:
		return "unknown"
	}
}

// Gun fires automatically at a cadence that speeds up as the round goes on
type Gun struct {
	team      Team
	direction Direction
	bounds    Bounds
	rng       Rand

	baseInterval uint64
	tickOffset   uint64
	countdown    uint64
}

// NewGun creates a gun for a team facing direction
func NewGun(team Team, direction Direction, cfg Config, rng Rand) *Gun {
	return &Gun{
		team:         team,
		direction:    direction,
		bounds:       cfg.Bounds,
		rng:          rng,
		baseInterval: cfg.GunBaseInterval,
		tickOffset:   cfg.GunTickOffset,
	}
}

// Interval returns the cadence after a shot at tick
func (g *Gun) Interval(tick uint64) uint64 {
	divisor := tick/2 + g.tickOffset
	if divisor < 1 {
		divisor = 1
	}
	return g.baseInterval / divisor
}

// Countdown returns the ticks left until the next shot
func (g *Gun) Countdown() uint64 { return g.countdown }

// Tick fires when the countdown is zero. The bullet starts at the owner's primary
// coordinate with a random lateral coordinate across the display.
func (g *Gun) Tick(tick uint64, owner Position) *Bullet {
	if g.countdown > 0 {
		g.countdown--
		return nil
	}
	g.countdown = g.Interval(tick)
	lateral := g.rng.Intn(g.bounds.LateralExtent(g.direction) + 1)
	pos := g.direction.compose(g.direction.Primary(owner), lateral)
	return NewBullet(pos, g.direction, g.team)
}

// LaserState is the phase of a laser's charge cycle
type LaserState int

const (
	LaserIdle LaserState = iota
	LaserArmed
	LaserFiring
)

func (s LaserState) String() string {
	switch s {
	case LaserIdle:
		return "idle"
	case LaserArmed:
		return "armed"
	case LaserFiring:
		return "firing"
	default:
		return "unknown"
	}
}

// Laser arms at random, waits for its team's button, then fires a burst aimed at
// the opponent. The indicator belongs to the laser and only changes on Idle->Armed,
// Armed->Firing, Firing->Idle and Reset.
type Laser struct {
	team      Team
	direction Direction
	bounds    Bounds
	rng       Rand
	indicator Indicator

	emitTicks      int
	spawnOffset    int
	armProbability int

	state     LaserState
	remaining int
}

// NewLaser creates an idle laser
func NewLaser(team Team, direction Direction, cfg Config, rng Rand, indicator Indicator) *Laser {
	return &Laser{
		team:           team,
		direction:      direction,
		bounds:         cfg.Bounds,
		rng:            rng,
		indicator:      indicator,
		emitTicks:      cfg.LaserEmitTicks,
		spawnOffset:    cfg.LaserSpawnOffset,
		armProbability: cfg.LaserArmProbability,
	}
}

// State returns the current phase
func (l *Laser) State() LaserState { return l.state }

// Remaining returns the firing ticks left
func (l *Laser) Remaining() int { return l.remaining }

// Tick advances the state machine. opponentLateral is the opponent's current lateral
// coordinate, re-sampled by the caller every tick.
func (l *Laser) Tick(button ButtonLevel, opponentLateral int) (*Bullet, error) {
	switch l.state {
	case LaserIdle:
		if l.rng.Intn(l.armProbability) == 0 {
			if err := l.indicator.Set(l.team, true); err != nil {
				return nil, fmt.Errorf("arm laser %s: %w", l.team, err)
			}
			l.state = LaserArmed
		}
		return nil, nil
	case LaserArmed:
		if button != Asserted {
			return nil, nil
		}
		if err := l.indicator.Set(l.team, false); err != nil {
			return nil, fmt.Errorf("fire laser %s: %w", l.team, err)
		}
		l.remaining = l.emitTicks
		l.state = LaserFiring
		b := l.emit(opponentLateral)
		if l.remaining == 0 {
			if err := l.Reset(); err != nil {
				return nil, fmt.Errorf("finish laser %s: %w", l.team, err)
			}
		}
		return b, nil
	case LaserFiring:
		b := l.emit(opponentLateral)
		l.remaining--
		if l.remaining <= 0 {
			if err := l.Reset(); err != nil {
				return nil, fmt.Errorf("finish laser %s: %w", l.team, err)
			}
		}
		return b, nil
	default:
		return nil, nil
	}
}

// Reset returns the laser to idle and switches its indicator off
func (l *Laser) Reset() error {
	l.state = LaserIdle
	l.remaining = 0
	return l.indicator.Set(l.team, false)
}

// emit spawns a bullet just beyond the display edge on the firer's side
func (l *Laser) emit(lateral int) *Bullet {
	var primary int
	switch l.direction {
	case XPlus, YPlus:
		primary = -l.spawnOffset
	default:
		primary = l.bounds.Extent(l.direction) + l.spawnOffset
	}
	return NewBullet(l.direction.compose(primary, lateral), l.direction, l.team)
}
