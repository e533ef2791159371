package game

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuietRound(t *testing.T, cfg Config, opts ...Option) (*Round, *recordingRenderer, *lampLog) {
	t.Helper()
	rr := &recordingRenderer{}
	lamp := &lampLog{}
	opts = append([]Option{
		WithRenderer(rr),
		WithIndicator(lamp),
		WithRand(&scriptedRand{fallback: 1}),
	}, opts...)
	r, err := NewRound(cfg, opts...)
	require.NoError(t, err)
	return r, rr, lamp
}

// shootAt places a bullet one step away from target so it lands on it during the next step
func shootAt(r *Round, from Team, target Position) *Bullet {
	dir := r.players[from].direction
	sx, sy := dir.Step()
	b := NewBullet(target.Add(-sx, -sy), dir, from)
	r.bullets[from] = append(r.bullets[from], b)
	return b
}

func TestNewRoundRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hitpoints = 0
	cfg.LaserSpawnOffset = 8

	_, err := NewRound(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hitpoints")
	assert.Contains(t, err.Error(), "spawn offset")
}

func TestRoundStartsPlaying(t *testing.T) {
	r, _, _ := newQuietRound(t, quietConfig())

	assert.Equal(t, PhasePlaying, r.Phase())
	assert.Equal(t, 64, r.Health(TeamA))
	assert.Equal(t, 64, r.Health(TeamB))
	_, decided := r.Winner()
	assert.False(t, decided)
	_, counting := r.ExitCountdown()
	assert.False(t, counting)
	assert.NotEqual(t, [16]byte{}, [16]byte(r.ID()))
}

func TestRoundLogsSeedOfOwnRandomSource(t *testing.T) {
	var out bytes.Buffer
	r, err := NewRound(quietConfig(), WithLogger(zerolog.New(&out)))
	require.NoError(t, err)

	seed, own := r.Seed()
	require.True(t, own)
	var started struct {
		Message string `json:"message"`
		Seed    int64  `json:"seed"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &started))
	assert.Equal(t, "round started", started.Message)
	assert.Equal(t, seed, started.Seed)

	out.Reset()
	injected, err := NewRound(quietConfig(), WithLogger(zerolog.New(&out)), WithRand(&scriptedRand{}))
	require.NoError(t, err)
	_, own = injected.Seed()
	assert.False(t, own)
	assert.NotContains(t, out.String(), `"seed"`)
}

func TestRoundDecidedAfterSixteenHits(t *testing.T) {
	r, rr, _ := newQuietRound(t, quietConfig())

	var tick uint64
	for i := 0; i < 16; i++ {
		tick++
		require.Equal(t, PhasePlaying, r.Phase(), "hit %d", i)
		shootAt(r, TeamB, r.Player(TeamA).Position())
		_, err := r.Step(InputSnapshot{Tick: tick})
		require.NoError(t, err)
		assert.Equal(t, 64-4*(i+1), r.Health(TeamA))
		assert.Equal(t, 1, r.LastCollision().Hits[TeamA])
	}

	assert.Equal(t, PhaseResultShown, r.Phase())
	winner, ok := r.Winner()
	require.True(t, ok)
	assert.Equal(t, TeamB, winner)
	assert.Equal(t, 64, r.Health(TeamB))
	left, _ := r.ExitCountdown()
	assert.Equal(t, 100, left)
	assert.Contains(t, rr.ops, "text Lose 0,0 0")
	assert.Contains(t, rr.ops, "text Win 128,0 2")

	for i := 0; i < 99; i++ {
		tick++
		phase, err := r.Step(InputSnapshot{Tick: tick})
		require.NoError(t, err)
		require.Equal(t, PhaseResultShown, phase, "tick %d after decision", i+1)
	}
	tick++
	phase, err := r.Step(InputSnapshot{Tick: tick})
	require.NoError(t, err)
	assert.Equal(t, PhaseTerminated, phase)

	_, err = r.Step(InputSnapshot{Tick: tick + 1})
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestRoundNoDamageWhileResultShown(t *testing.T) {
	r, _, _ := newQuietRound(t, quietConfig())
	r.health = TeamHealth{4, 64}
	shootAt(r, TeamB, r.Player(TeamA).Position())
	_, err := r.Step(InputSnapshot{Tick: 1})
	require.NoError(t, err)
	require.Equal(t, PhaseResultShown, r.Phase())

	stray := shootAt(r, TeamA, r.Player(TeamB).Position())
	_, err = r.Step(InputSnapshot{Tick: 2})
	require.NoError(t, err)

	assert.Equal(t, 64, r.Health(TeamB))
	assert.True(t, stray.Active, "collisions stop once decided")
	assert.False(t, r.LastCollision().Any())
}

func TestRoundSimultaneousKnockoutGoesToSuddenDeath(t *testing.T) {
	r, _, _ := newQuietRound(t, quietConfig())
	r.health = TeamHealth{4, 4}
	shootAt(r, TeamB, r.Player(TeamA).Position())
	shootAt(r, TeamA, r.Player(TeamB).Position())

	phase, err := r.Step(InputSnapshot{Tick: 1})
	require.NoError(t, err)

	assert.Equal(t, PhasePlaying, phase)
	assert.Equal(t, [2]int{1, 1}, r.LastCollision().Hits)
	assert.Equal(t, 4, r.Health(TeamA))
	assert.Equal(t, 4, r.Health(TeamB))
	_, decided := r.Winner()
	assert.False(t, decided)
}

func TestRoundZeroResultTicksTerminatesOnDecision(t *testing.T) {
	cfg := quietConfig()
	cfg.ResultTicks = 0
	r, _, lamp := newQuietRound(t, cfg)
	r.health = TeamHealth{64, 4}
	shootAt(r, TeamA, r.Player(TeamB).Position())

	phase, err := r.Step(InputSnapshot{Tick: 1})
	require.NoError(t, err)
	assert.Equal(t, PhaseTerminated, phase)
	winner, _ := r.Winner()
	assert.Equal(t, TeamA, winner)
	assert.Equal(t, []bool{false}, lamp.changes[TeamA])
	assert.Equal(t, []bool{false}, lamp.changes[TeamB])
}

func TestRoundDrawsFrame(t *testing.T) {
	r, rr, _ := newQuietRound(t, quietConfig())
	r.health = TeamHealth{40, 20}

	_, err := r.Step(InputSnapshot{Tick: 1})
	require.NoError(t, err)

	require.NotEmpty(t, rr.ops)
	assert.Equal(t, "clear", rr.ops[0])
	assert.Equal(t, "flush", rr.ops[len(rr.ops)-1])
	assert.Contains(t, rr.ops, "rect 7,29 7x7")
	assert.Contains(t, rr.ops, "rect 115,29 7x7")
	assert.Contains(t, rr.ops, "line 0,0 40,0")
	assert.Contains(t, rr.ops, "line 108,0 128,0")
	for _, op := range rr.ops {
		assert.NotContains(t, op, "text", "no result text while playing")
	}
	assert.Equal(t, 1, rr.flushes)
}

func TestRoundRenderFailureAborts(t *testing.T) {
	r, rr, lamp := newQuietRound(t, quietConfig())
	rr.failOn = "flush"

	phase, err := r.Step(InputSnapshot{Tick: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render")
	assert.Equal(t, PhaseTerminated, phase)
	assert.Equal(t, []bool{false}, lamp.changes[TeamA])
	assert.Equal(t, []bool{false}, lamp.changes[TeamB])

	_, err = r.Step(InputSnapshot{Tick: 2})
	assert.ErrorIs(t, err, ErrRoundOver)
}

func TestRoundLaserRoundTrip(t *testing.T) {
	cfg := quietConfig()
	cfg.LaserArmProbability = 1
	cfg.LaserEmitTicks = 2
	r, _, lamp := newQuietRound(t, cfg)

	_, err := r.Step(InputSnapshot{Tick: 1})
	require.NoError(t, err)
	assert.Equal(t, LaserArmed, r.Laser(TeamA).State())
	assert.Equal(t, LaserArmed, r.Laser(TeamB).State())
	assert.Equal(t, []bool{true}, lamp.changes[TeamA])

	in := InputSnapshot{Tick: 2}
	in.Buttons[cfg.Players[TeamA].Bindings.Button] = Asserted
	_, err = r.Step(in)
	require.NoError(t, err)
	assert.Equal(t, LaserFiring, r.Laser(TeamA).State())
	assert.Equal(t, LaserArmed, r.Laser(TeamB).State(), "B's button was not pressed")
	assert.Equal(t, []bool{true, false}, lamp.changes[TeamA])

	var lasers []*Bullet
	for _, b := range r.Bullets(TeamA) {
		if b.Position().X == -cfg.LaserSpawnOffset {
			lasers = append(lasers, b)
		}
	}
	require.Len(t, lasers, 1)
	assert.Equal(t, r.Player(TeamB).Position().Y, lasers[0].Position().Y)
}

func TestRoundCleanupInterval(t *testing.T) {
	cfg := quietConfig()
	cfg.CleanupInterval = 3
	r, _, _ := newQuietRound(t, cfg)
	spent := NewBullet(Position{64, 40}, XPlus, TeamA)
	spent.Disable()
	r.bullets[TeamA] = append(r.bullets[TeamA], spent)

	for tick := uint64(1); tick <= 2; tick++ {
		_, err := r.Step(InputSnapshot{Tick: tick})
		require.NoError(t, err)
		assert.Contains(t, r.Bullets(TeamA), spent)
	}
	_, err := r.Step(InputSnapshot{Tick: 3})
	require.NoError(t, err)
	assert.NotContains(t, r.Bullets(TeamA), spent)
}

func TestRoundInvariantsUnderRandomPlay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LaserArmProbability = 40
	rng := rand.New(rand.NewSource(7))
	r, _, _ := newQuietRound(t, cfg, WithRand(rand.New(rand.NewSource(11))))
	all := []Key{'f', 'd', 'r', 'c', 'j', 'k', 'm', 'i'}

	prev := r.health
	for tick := uint64(1); tick <= 20_000 && r.Phase() != PhaseTerminated; tick++ {
		in := InputSnapshot{Tick: tick}
		var pressed []Key
		for _, k := range all {
			if rng.Intn(2) == 0 {
				pressed = append(pressed, k)
			}
		}
		in.Keys = NewKeySet(pressed...)
		for i := range in.Buttons {
			if rng.Intn(3) == 0 {
				in.Buttons[i] = Asserted
			}
		}

		_, err := r.Step(in)
		require.NoError(t, err)

		for _, team := range Teams {
			h := r.Health(team)
			assert.GreaterOrEqual(t, h, 0)
			if h > prev[team] {
				assert.Equal(t, [2]int{cfg.Damage, cfg.Damage}, [2]int(r.health), "health only rises on sudden death")
			}
			assert.True(t, cfg.Bounds.Contains(r.Player(team).Position()), "tick %d", tick)
			for _, b := range r.Bullets(team) {
				require.NotNil(t, b)
				assert.True(t, b.Active)
				assert.True(t, cfg.Bounds.WithinMargin(b.Position(), cfg.Margin))
			}
		}
		prev = r.health
	}
}
