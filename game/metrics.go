package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "laserduel/game"

// Metrics records round counters. It is a no-op unless an OTel provider is installed.
type Metrics struct {
	fired    metric.Int64Counter
	hits     metric.Int64Counter
	finished metric.Int64Counter
}

// NewMetrics creates the round counters on meter. A nil meter uses the global provider.
func NewMetrics(m metric.Meter) (*Metrics, error) {
	if m == nil {
		m = otel.Meter(instrumentationName)
	}

	var (
		metrics Metrics
		err     error
	)
	metrics.fired, err = m.Int64Counter(
		"duel.bullets.fired",
		metric.WithDescription("Bullets fired, by team and weapon"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fired counter: %w", err)
	}

	metrics.hits, err = m.Int64Counter(
		"duel.hits",
		metric.WithDescription("Confirmed hits taken, by team"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating hits counter: %w", err)
	}

	metrics.finished, err = m.Int64Counter(
		"duel.rounds.finished",
		metric.WithDescription("Rounds that reached a result, by winner"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating finished counter: %w", err)
	}

	return &metrics, nil
}

func (m *Metrics) bulletFired(team Team, weapon WeaponType) {
	m.fired.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("team", team.String()),
		attribute.String("weapon", weapon.String()),
	))
}

func (m *Metrics) hitTaken(team Team, n int) {
	m.hits.Add(context.Background(), int64(n), metric.WithAttributes(attribute.String("team", team.String())))
}

func (m *Metrics) roundFinished(winner Team) {
	m.finished.Add(context.Background(), 1, metric.WithAttributes(attribute.String("winner", winner.String())))
}
