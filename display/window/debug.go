package window

import (
	"fmt"
	"strings"

	"laserduel/game"
)

// DebugState holds debug flags that persist across rounds
type DebugState struct {
	ShowOverlay bool // tick, phase, health, bullets and laser states
}

// Global debug state instance (persists across rounds)
var globalDebugState = &DebugState{}

// GetDebugState returns the global debug state
func GetDebugState() *DebugState {
	return globalDebugState
}

// debugText summarises a round for the overlay
func debugText(r *game.Round, tps float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tick %d  %s  tps %.0f\n", r.Tick(), r.Phase(), tps)
	for _, team := range game.Teams {
		fmt.Fprintf(&sb, "%s hp %d bullets %d laser %s\n",
			team, r.Health(team), len(r.Bullets(team)), r.Laser(team).State())
	}
	if winner, ok := r.Winner(); ok {
		left, _ := r.ExitCountdown()
		fmt.Fprintf(&sb, "winner %s, %d ticks left\n", winner, left)
	}
	return sb.String()
}
