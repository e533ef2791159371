package game

import "image/color"

// Team represents which side an entity belongs to
type Team int

const (
	TeamA Team = iota
	TeamB
)

// Teams lists both teams in index order
var Teams = [2]Team{TeamA, TeamB}

func (t Team) String() string {
	switch t {
	case TeamA:
		return "A"
	case TeamB:
		return "B"
	default:
		return "?"
	}
}

// Opponent returns the opposite team
func (t Team) Opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// TeamConfig holds presentation settings for each team
type TeamConfig struct {
	Team Team
	// Color is used by colour hosts for the team's indicator
	Color color.RGBA
	// Tone is the pitch in Hz of the team's audible cue
	Tone float64
}

var (
	// TeamConfigs holds configuration for each team
	TeamConfigs = map[Team]TeamConfig{
		TeamA: {
			Team:  TeamA,
			Color: color.RGBA{0, 200, 255, 255},
			Tone:  660,
		},
		TeamB: {
			Team:  TeamB,
			Color: color.RGBA{255, 80, 0, 255},
			Tone:  440,
		},
	}
)

// GetTeamConfig returns configuration for a team
func GetTeamConfig(team Team) TeamConfig {
	if cfg, ok := TeamConfigs[team]; ok {
		return cfg
	}
	return TeamConfig{
		Team:  team,
		Color: color.RGBA{255, 255, 255, 255},
		Tone:  550,
	}
}

// TeamHealth is the single owned health pool of both teams, indexed by Team
type TeamHealth [2]int

// Damage lowers a team's health by amount, clamping at zero
func (h *TeamHealth) Damage(team Team, amount int) {
	h[team] -= amount
	if h[team] < 0 {
		h[team] = 0
	}
}

// Get returns the health of a team
func (h TeamHealth) Get(team Team) int {
	return h[team]
}
