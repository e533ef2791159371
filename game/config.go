package game

import (
	"errors"
	"fmt"
	"time"
)

// Bindings holds the logical keys and fire button of one player
type Bindings struct {
	Forward  []Key
	Backward []Key
	Left     []Key
	Right    []Key

	// Button is the index of the discrete button that fires this team's weapons
	Button int
}

// PlayerConfig describes where a player starts and how it is controlled
type PlayerConfig struct {
	Start     Position
	Direction Direction
	Bindings  Bindings

	// FrontLine is the primary-axis coordinate the player may not cross moving forward
	FrontLine int
}

// Config holds simulation constants
type Config struct {
	// TickDuration is the wall-clock length of one tick
	TickDuration time.Duration

	// Bounds is the visible display size
	Bounds Bounds

	// Hitpoints is the starting health of each team
	Hitpoints int

	// Damage is the health lost per confirmed hit
	Damage int

	// HitDistance is the Manhattan distance at or under which two entities collide
	HitDistance int

	// Margin extends the display on every side before bullets are dropped
	Margin int

	// ResultTicks is how long the result stays on screen
	ResultTicks int

	// CleanupInterval is how many ticks pass between bullet cleanups (1 = every tick)
	CleanupInterval int

	// GunBaseInterval and GunTickOffset shape the auto-fire cadence:
	// interval = GunBaseInterval / (tick/2 + GunTickOffset)
	GunBaseInterval uint64
	GunTickOffset   uint64

	// LaserEmitTicks is how many ticks a laser keeps firing
	LaserEmitTicks int

	// LaserSpawnOffset is how far beyond the display edge laser bullets appear.
	// It must stay under Margin or cleanup drops the bullet on the tick it spawns.
	LaserSpawnOffset int

	// LaserArmProbability is the denominator of the per-tick arming chance
	LaserArmProbability int

	// PlayerFireInterval is the cooldown between direct shots (0 disables direct fire)
	PlayerFireInterval int

	// Players are indexed by Team
	Players [2]PlayerConfig
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		TickDuration:        4 * time.Millisecond,
		Bounds:              Bounds{Width: 128, Height: 64},
		Hitpoints:           64,
		Damage:              4,
		HitDistance:         1,
		Margin:              8,
		ResultTicks:         100,
		CleanupInterval:     1,
		GunBaseInterval:     1000,
		GunTickOffset:       100,
		LaserEmitTicks:      20,
		LaserSpawnOffset:    6,
		LaserArmProbability: 280,
		PlayerFireInterval:  24,
		Players: [2]PlayerConfig{
			TeamA: {
				Start:     Position{X: 10, Y: 32},
				Direction: XPlus,
				FrontLine: 50,
				Bindings: Bindings{
					Forward:  ParseKeys("f"),
					Backward: ParseKeys("d"),
					Left:     ParseKeys("r"),
					Right:    ParseKeys("c"),
					Button:   0,
				},
			},
			TeamB: {
				Start:     Position{X: 128 - 10, Y: 32},
				Direction: XMinus,
				FrontLine: 78,
				Bindings: Bindings{
					Forward:  ParseKeys("j"),
					Backward: ParseKeys("k"),
					Left:     ParseKeys("m"),
					Right:    ParseKeys("i"),
					Button:   1,
				},
			},
		},
	}
}

// Validate checks that the configuration can drive a round
func (c Config) Validate() error {
	var errs []error
	if c.TickDuration <= 0 {
		errs = append(errs, fmt.Errorf("tick duration must be positive, got %v", c.TickDuration))
	}
	if c.Bounds.Width <= 0 || c.Bounds.Height <= 0 {
		errs = append(errs, fmt.Errorf("display bounds must be positive, got %dx%d", c.Bounds.Width, c.Bounds.Height))
	}
	if c.Hitpoints <= 0 {
		errs = append(errs, fmt.Errorf("hitpoints must be positive, got %d", c.Hitpoints))
	}
	if c.Damage <= 0 {
		errs = append(errs, fmt.Errorf("damage must be positive, got %d", c.Damage))
	}
	if c.HitDistance < 0 {
		errs = append(errs, fmt.Errorf("hit distance must not be negative, got %d", c.HitDistance))
	}
	if c.Margin < 0 {
		errs = append(errs, fmt.Errorf("margin must not be negative, got %d", c.Margin))
	}
	if c.ResultTicks < 0 {
		errs = append(errs, fmt.Errorf("result ticks must not be negative, got %d", c.ResultTicks))
	}
	if c.CleanupInterval < 1 {
		errs = append(errs, fmt.Errorf("cleanup interval must be at least 1, got %d", c.CleanupInterval))
	}
	if c.LaserEmitTicks < 0 {
		errs = append(errs, fmt.Errorf("laser emit ticks must not be negative, got %d", c.LaserEmitTicks))
	}
	if c.LaserSpawnOffset < 0 || c.LaserSpawnOffset >= c.Margin {
		errs = append(errs, fmt.Errorf("laser spawn offset must be in [0, margin), got %d", c.LaserSpawnOffset))
	}
	if c.LaserArmProbability < 1 {
		errs = append(errs, fmt.Errorf("laser arm probability must be at least 1, got %d", c.LaserArmProbability))
	}
	if c.PlayerFireInterval < 0 {
		errs = append(errs, fmt.Errorf("player fire interval must not be negative, got %d", c.PlayerFireInterval))
	}
	for _, team := range Teams {
		p := c.Players[team]
		if !c.Bounds.Contains(p.Start) {
			errs = append(errs, fmt.Errorf("team %s starts outside the display at %v", team, p.Start))
		}
		if p.Bindings.Button < 0 || p.Bindings.Button >= ButtonCount {
			errs = append(errs, fmt.Errorf("team %s button index %d out of range", team, p.Bindings.Button))
		}
	}
	return errors.Join(errs...)
}
