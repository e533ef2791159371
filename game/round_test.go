package game_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/mock/gomock"

	"laserduel/game"
	"laserduel/game/mocks"
)

type neverArm struct{}

func (neverArm) Intn(n int) int { return n - 1 }

func fastConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.TickDuration = time.Millisecond
	cfg.PlayerFireInterval = 0
	return cfg
}

func expectFrames(r *mocks.MockRenderer) {
	r.EXPECT().Clear().Return(nil).AnyTimes()
	r.EXPECT().DrawRect(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	r.EXPECT().DrawTriangle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	r.EXPECT().DrawLine(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	r.EXPECT().DrawText(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestRoundRunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	indicator := mocks.NewMockIndicator(ctrl)
	expectFrames(renderer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var flushes int
	renderer.EXPECT().Flush().DoAndReturn(func() error {
		flushes++
		if flushes == 3 {
			cancel()
		}
		return nil
	}).MinTimes(3)
	indicator.EXPECT().Set(game.TeamA, false).Return(nil)
	indicator.EXPECT().Set(game.TeamB, false).Return(nil)

	round, err := game.NewRound(fastConfig(),
		game.WithRenderer(renderer),
		game.WithIndicator(indicator),
		game.WithRand(neverArm{}),
		game.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)

	var ticks []uint64
	src := game.InputSourceFunc(func(tick uint64) (game.InputSnapshot, error) {
		ticks = append(ticks, tick)
		return game.InputSnapshot{}, nil
	})

	err = round.Run(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, game.PhaseTerminated, round.Phase())
	assert.Equal(t, []uint64{1, 2, 3}, ticks)
	assert.Equal(t, uint64(3), round.Tick())
}

func TestRoundRunInputFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	indicator := mocks.NewMockIndicator(ctrl)
	indicator.EXPECT().Set(gomock.Any(), false).Return(nil).Times(2)

	round, err := game.NewRound(fastConfig(),
		game.WithRenderer(renderer),
		game.WithIndicator(indicator),
		game.WithRand(neverArm{}),
	)
	require.NoError(t, err)

	unplugged := errors.New("keyboard unplugged")
	err = round.Run(context.Background(), game.InputSourceFunc(func(uint64) (game.InputSnapshot, error) {
		return game.InputSnapshot{}, unplugged
	}))

	assert.ErrorIs(t, err, unplugged)
	assert.Contains(t, err.Error(), "read input")
	assert.Equal(t, game.PhaseTerminated, round.Phase())
}

func TestRoundRendererFailureKeepsBothErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	indicator := mocks.NewMockIndicator(ctrl)

	spiBusy := errors.New("spi busy")
	lampStuck := errors.New("lamp stuck")
	renderer.EXPECT().Clear().Return(spiBusy)
	indicator.EXPECT().Set(game.TeamA, false).Return(lampStuck)
	indicator.EXPECT().Set(game.TeamB, false).Return(nil)

	round, err := game.NewRound(fastConfig(),
		game.WithRenderer(renderer),
		game.WithIndicator(indicator),
		game.WithRand(neverArm{}),
	)
	require.NoError(t, err)

	phase, err := round.Step(game.InputSnapshot{Tick: 1})
	assert.Equal(t, game.PhaseTerminated, phase)
	assert.ErrorIs(t, err, spiBusy)
	assert.ErrorIs(t, err, lampStuck)
}

func TestRoundArmsIndicatorThroughMock(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	indicator := mocks.NewMockIndicator(ctrl)
	expectFrames(renderer)
	renderer.EXPECT().Flush().Return(nil).AnyTimes()

	cfg := fastConfig()
	cfg.LaserArmProbability = 1
	gomock.InOrder(
		indicator.EXPECT().Set(game.TeamA, true).Return(nil),
		indicator.EXPECT().Set(game.TeamA, false).Return(nil),
	)
	indicator.EXPECT().Set(game.TeamB, true).Return(nil)

	round, err := game.NewRound(cfg,
		game.WithRenderer(renderer),
		game.WithIndicator(indicator),
		game.WithRand(neverArm{}),
	)
	require.NoError(t, err)

	_, err = round.Step(game.InputSnapshot{Tick: 1})
	require.NoError(t, err)

	in := game.InputSnapshot{Tick: 2}
	in.Buttons[0] = game.Asserted
	_, err = round.Step(in)
	require.NoError(t, err)
	assert.Equal(t, game.LaserFiring, round.Laser(game.TeamA).State())
}

func TestRoundUsesGivenIDAndMeter(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	metrics, err := game.NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	round, err := game.NewRound(fastConfig(), game.WithID(id), game.WithMetrics(metrics))
	require.NoError(t, err)
	assert.Equal(t, id, round.ID())
}
