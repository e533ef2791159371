package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"laserduel/game"
)

const sampleRate = beep.SampleRate(44100)

// Output plays a finite streamer without blocking
type Output interface {
	Play(s beep.Streamer)
}

// Cue beeps when a team's laser arms. It implements game.Indicator and only sounds on
// an off to on edge, so repeated Set calls stay quiet.
type Cue struct {
	out      Output
	volume   float64
	duration time.Duration

	mu    sync.Mutex
	state [2]bool
}

var _ game.Indicator = (*Cue)(nil)

// NewCue creates a cue. volume is linear in [0, 1].
func NewCue(out Output, volume float64, duration time.Duration) *Cue {
	return &Cue{
		out:      out,
		volume:   volume,
		duration: duration,
	}
}

// Set records the lamp state and plays the team's tone when it switches on
func (c *Cue) Set(team game.Team, on bool) error {
	c.mu.Lock()
	prev := c.state[team]
	c.state[team] = on
	c.mu.Unlock()

	if !on || prev {
		return nil
	}
	s, err := c.tone(team)
	if err != nil {
		return fmt.Errorf("tone for team %s: %w", team, err)
	}
	c.out.Play(s)
	return nil
}

func (c *Cue) tone(team game.Team) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, game.GetTeamConfig(team).Tone)
	if err != nil {
		return nil, err
	}
	return newVolume(beep.Take(sampleRate.N(c.duration), sine), c.volume), nil
}

// newVolume scales a stream linearly; zero is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Speaker mixes cues onto the system audio device
type Speaker struct {
	mixer *beep.Mixer
}

var _ Output = (*Speaker)(nil)

// OpenSpeaker initialises the audio device. It fails on machines without one;
// callers should carry on silently.
func OpenSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play adds s to the running mix
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback and releases the device
func (s *Speaker) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
