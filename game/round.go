package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Phase is the round lifecycle state
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseResultShown
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseResultShown:
		return "result"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// ErrRoundOver is returned by Step once the round has terminated
var ErrRoundOver = errors.New("round is over")

// Round owns every actor, weapon and health value of one duel and advances them tick by tick.
// It is not safe for concurrent use.
type Round struct {
	id     uuid.UUID
	config Config

	renderer  Renderer
	indicator Indicator
	rng       Rand
	logger    zerolog.Logger
	metrics   *Metrics

	// seed is set when the round picked its own random source
	seed *int64

	collisionSystem *CollisionSystem

	players [2]*Player
	guns    [2]*Gun
	lasers  [2]*Laser
	bullets [2][]*Bullet
	health  TeamHealth

	phase         Phase
	winner        *Team
	exitCountdown *int

	tick          uint64
	cleanupTimer  int
	lastCollision CollisionReport
}

// Option configures a Round
type Option func(*Round)

// WithRenderer sets the frame sink
func WithRenderer(r Renderer) Option {
	return func(rd *Round) { rd.renderer = r }
}

// WithIndicator sets the laser lamp sink
func WithIndicator(i Indicator) Option {
	return func(rd *Round) { rd.indicator = i }
}

// WithRand sets the random source shared by guns and lasers
func WithRand(rng Rand) Option {
	return func(rd *Round) { rd.rng = rng }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(rd *Round) { rd.logger = l }
}

// WithMetrics sets the counters
func WithMetrics(m *Metrics) Option {
	return func(rd *Round) { rd.metrics = m }
}

// WithID overrides the generated round id
func WithID(id uuid.UUID) Option {
	return func(rd *Round) { rd.id = id }
}

// NewRound creates a round in the Playing phase
func NewRound(config Config, opts ...Option) (*Round, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Round{
		id:           uuid.New(),
		config:       config,
		renderer:     NopRenderer{},
		indicator:    NopIndicator{},
		logger:       zerolog.Nop(),
		cleanupTimer: config.CleanupInterval,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		seed := time.Now().UnixNano()
		r.rng = rand.New(rand.NewSource(seed))
		r.seed = &seed
	}
	if r.metrics == nil {
		m, err := NewMetrics(nil)
		if err != nil {
			return nil, err
		}
		r.metrics = m
	}
	r.logger = r.logger.With().Str("round", r.id.String()).Logger()

	r.collisionSystem = NewCollisionSystem(config)
	for _, team := range Teams {
		pc := config.Players[team]
		r.players[team] = NewPlayer(team, pc, config.Bounds, config.PlayerFireInterval)
		r.guns[team] = NewGun(team, pc.Direction, config, r.rng)
		r.lasers[team] = NewLaser(team, pc.Direction, config, r.rng, r.indicator)
		r.health[team] = config.Hitpoints
	}

	ev := r.logger.Info().Int("hitpoints", config.Hitpoints)
	if r.seed != nil {
		ev = ev.Int64("seed", *r.seed)
	}
	ev.Msg("round started")
	return r, nil
}

// ID returns the round id
func (r *Round) ID() uuid.UUID { return r.id }

// Seed returns the seed of the round's own random source. It reports false when the
// source was injected with WithRand.
func (r *Round) Seed() (int64, bool) {
	if r.seed == nil {
		return 0, false
	}
	return *r.seed, true
}

// Phase returns the lifecycle state
func (r *Round) Phase() Phase { return r.phase }

// Tick returns the tick counter of the last step
func (r *Round) Tick() uint64 { return r.tick }

// Winner returns the winning team once decided
func (r *Round) Winner() (Team, bool) {
	if r.winner == nil {
		return 0, false
	}
	return *r.winner, true
}

// ExitCountdown returns the ticks left before termination while the result is shown
func (r *Round) ExitCountdown() (int, bool) {
	if r.exitCountdown == nil {
		return 0, false
	}
	return *r.exitCountdown, true
}

// Health returns a team's health
func (r *Round) Health(team Team) int { return r.health.Get(team) }

// Player returns a team's player
func (r *Round) Player(team Team) *Player { return r.players[team] }

// Gun returns a team's gun
func (r *Round) Gun(team Team) *Gun { return r.guns[team] }

// Laser returns a team's laser
func (r *Round) Laser(team Team) *Laser { return r.lasers[team] }

// Bullets returns a team's stored bullets, including inactive ones awaiting cleanup
func (r *Round) Bullets(team Team) []*Bullet { return r.bullets[team] }

// LastCollision returns what the most recent resolution pass did
func (r *Round) LastCollision() CollisionReport { return r.lastCollision }

// Actors returns every drawable actor: both players then all active bullets
func (r *Round) Actors() []Actor {
	actors := make([]Actor, 0, 2+len(r.bullets[TeamA])+len(r.bullets[TeamB]))
	for _, team := range Teams {
		actors = append(actors, PlayerActor(r.players[team]))
	}
	for _, team := range Teams {
		for _, b := range r.bullets[team] {
			if b.Active {
				actors = append(actors, BulletActor(b))
			}
		}
	}
	return actors
}

// Step runs one tick of the pipeline: movement and fire, weapons, collisions, cleanup,
// result evaluation and rendering. Collaborator failures abort the round.
func (r *Round) Step(in InputSnapshot) (Phase, error) {
	if r.phase == PhaseTerminated {
		return r.phase, ErrRoundOver
	}
	r.tick = in.Tick
	showingResult := r.phase == PhaseResultShown

	// Players move and fire directly, existing bullets advance
	for _, team := range Teams {
		r.addBullets(team, WeaponDirect, PlayerActor(r.players[team]).Tick(in)...)
	}
	for _, team := range Teams {
		for _, b := range r.bullets[team] {
			BulletActor(b).Tick(in)
		}
	}

	// Auto fire
	for _, team := range Teams {
		if b := r.guns[team].Tick(in.Tick, r.players[team].pos); b != nil {
			r.addBullets(team, WeaponGun, b)
		}
	}

	if r.phase == PhasePlaying {
		if err := r.tickLasers(in); err != nil {
			return r.abort(err)
		}

		r.lastCollision = r.collisionSystem.Resolve(
			Hittables(r.players[TeamA], r.bullets[TeamA]),
			Hittables(r.players[TeamB], r.bullets[TeamB]),
			&r.health,
		)
		r.recordCollision(r.lastCollision)
	} else {
		r.lastCollision = CollisionReport{}
	}

	r.cleanupTimer--
	if r.cleanupTimer <= 0 {
		r.cleanupTimer = r.config.CleanupInterval
		for _, team := range Teams {
			r.bullets[team] = Cleanup(r.bullets[team], r.config.Bounds, r.config.Margin)
		}
	}

	if r.phase == PhasePlaying {
		r.decide()
	}

	if err := r.draw(); err != nil {
		return r.abort(fmt.Errorf("render: %w", err))
	}

	switch {
	case showingResult:
		*r.exitCountdown--
		if *r.exitCountdown <= 0 {
			*r.exitCountdown = 0
			return r.terminate()
		}
	case r.phase == PhaseResultShown && *r.exitCountdown <= 0:
		return r.terminate()
	}
	return r.phase, nil
}

// Run steps the round once per TickDuration until it terminates, a collaborator fails or
// ctx is cancelled. The tick counter starts at 1.
func (r *Round) Run(ctx context.Context, src InputSource) error {
	ticker := time.NewTicker(r.config.TickDuration)
	defer ticker.Stop()

	var tick uint64
	for {
		tick++
		in, err := src.Snapshot(tick)
		if err != nil {
			_, err = r.abort(fmt.Errorf("read input: %w", err))
			return err
		}
		in.Tick = tick

		phase, err := r.Step(in)
		if err != nil {
			return err
		}
		if phase == PhaseTerminated {
			return nil
		}
		if err := ctx.Err(); err != nil {
			_, err = r.abort(err)
			return err
		}

		select {
		case <-ctx.Done():
			_, err = r.abort(ctx.Err())
			return err
		case <-ticker.C:
		}
	}
}

func (r *Round) addBullets(team Team, weapon WeaponType, bullets ...*Bullet) {
	for _, b := range bullets {
		r.bullets[team] = append(r.bullets[team], b)
		r.metrics.bulletFired(team, weapon)
	}
}

func (r *Round) tickLasers(in InputSnapshot) error {
	for _, team := range Teams {
		laser := r.lasers[team]
		before := laser.State()
		opponent := r.players[team.Opponent()]
		button := in.Button(r.players[team].bindings.Button)

		b, err := laser.Tick(button, laser.direction.Lateral(opponent.pos))
		if err != nil {
			return err
		}
		if b != nil {
			r.addBullets(team, WeaponLaser, b)
		}
		if after := laser.State(); after != before {
			r.logger.Debug().
				Stringer("team", team).
				Stringer("from", before).
				Stringer("to", after).
				Uint64("tick", in.Tick).
				Msg("laser state changed")
		}
	}
	return nil
}

func (r *Round) recordCollision(report CollisionReport) {
	if !report.Any() {
		return
	}
	for _, team := range Teams {
		if n := report.Hits[team]; n > 0 {
			r.metrics.hitTaken(team, n)
		}
	}
	r.logger.Debug().
		Uint64("tick", r.tick).
		Int("hitsA", report.Hits[TeamA]).
		Int("hitsB", report.Hits[TeamB]).
		Int("intercepts", report.Intercepts).
		Int("healthA", r.health[TeamA]).
		Int("healthB", r.health[TeamB]).
		Msg("collisions resolved")
}

// decide moves to the result once a team is out of health. When both run out on the
// same tick the round goes to sudden death: both are reset to one hit.
func (r *Round) decide() {
	a, b := r.health[TeamA], r.health[TeamB]
	if a > 0 && b > 0 {
		return
	}
	if a == b {
		r.health[TeamA] = r.config.Damage
		r.health[TeamB] = r.config.Damage
		r.logger.Info().Uint64("tick", r.tick).Int("health", r.config.Damage).Msg("sudden death")
		return
	}

	winner := TeamA
	if b > a {
		winner = TeamB
	}
	countdown := r.config.ResultTicks
	r.winner = &winner
	r.exitCountdown = &countdown
	r.phase = PhaseResultShown

	r.metrics.roundFinished(winner)
	r.logger.Info().
		Uint64("tick", r.tick).
		Stringer("winner", winner).
		Int("healthA", a).
		Int("healthB", b).
		Msg("round decided")
}

func (r *Round) draw() error {
	if err := r.renderer.Clear(); err != nil {
		return err
	}
	for _, a := range r.Actors() {
		if err := a.Draw(r.renderer); err != nil {
			return err
		}
	}

	width := r.config.Bounds.Width
	if err := r.renderer.DrawLine(Position{0, 0}, Position{r.health[TeamA], 0}); err != nil {
		return err
	}
	if err := r.renderer.DrawLine(Position{width - r.health[TeamB], 0}, Position{width, 0}); err != nil {
		return err
	}

	if r.winner != nil {
		labelA, labelB := "Win", "Lose"
		if *r.winner == TeamB {
			labelA, labelB = "Lose", "Win"
		}
		if err := r.renderer.DrawText(labelA, Position{0, 0}, AlignLeft); err != nil {
			return err
		}
		if err := r.renderer.DrawText(labelB, Position{width, 0}, AlignRight); err != nil {
			return err
		}
	}
	return r.renderer.Flush()
}

// teardown forces both lamps off
func (r *Round) teardown() error {
	var errs []error
	for _, team := range Teams {
		if err := r.lasers[team].Reset(); err != nil {
			errs = append(errs, fmt.Errorf("clear indicator %s: %w", team, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Round) terminate() (Phase, error) {
	r.phase = PhaseTerminated
	if err := r.teardown(); err != nil {
		r.logger.Error().Err(err).Msg("teardown failed")
		return r.phase, err
	}
	r.logger.Info().Uint64("tick", r.tick).Msg("round terminated")
	return r.phase, nil
}

// abort ends the round after a collaborator failure, keeping the original error first
func (r *Round) abort(cause error) (Phase, error) {
	r.phase = PhaseTerminated
	err := errors.Join(cause, r.teardown())
	r.logger.Error().Err(err).Uint64("tick", r.tick).Msg("round aborted")
	return r.phase, err
}
