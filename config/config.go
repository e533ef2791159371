package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"laserduel/game"
)

// EnvPrefix is prepended to every environment override, e.g. LASERDUEL_GAME_HITPOINTS
const EnvPrefix = "LASERDUEL"

// LogSettings configures the zerolog output
type LogSettings struct {
	Level  string
	Format string
	// File is the log destination; empty logs to stderr
	File string
}

// WindowSettings configures the desktop host
type WindowSettings struct {
	Scale int
	Title string
	// ResultPause is how long the host waits between rounds
	ResultPause time.Duration
}

// TerminalSettings configures the terminal host
type TerminalSettings struct {
	// HoldWindow is how long a key counts as held after its last press event
	HoldWindow time.Duration
}

// LoadingSettings configures the progress ring shown before each round
type LoadingSettings struct {
	Enabled bool
	// Frame is how long each percent stays on screen
	Frame time.Duration
}

// AudioSettings configures the laser cue
type AudioSettings struct {
	Enabled  bool
	Volume   float64
	Duration time.Duration
}

// Settings is everything a host needs to run duels
type Settings struct {
	Game game.Config
	// Seed drives every random draw; zero picks a time-based seed
	Seed int64
	// Rounds is the number of rounds to play; zero plays until quit
	Rounds int
	// Buttons maps each button index onto a keyboard key
	Buttons [game.ButtonCount]game.Key
	// ProfileDir enables profiling when set
	ProfileDir string

	Log      LogSettings
	Window   WindowSettings
	Terminal TerminalSettings
	Audio    AudioSettings
	Loading  LoadingSettings
}

// flagKeys maps command line flags onto config keys
var flagKeys = map[string]string{
	"tick":        "tick",
	"seed":        "seed",
	"rounds":      "rounds",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"log-file":    "log.file",
	"scale":       "window.scale",
	"audio":       "audio.enabled",
	"loading":     "loading.enabled",
	"hitpoints":   "game.hitpoints",
	"profile-dir": "profile.dir",
}

// Flags returns the command line flags understood by Load
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (toml, yaml or json)")
	fs.Duration("tick", 0, "tick duration")
	fs.Int64("seed", 0, "random seed, 0 for time based")
	fs.Int("rounds", 0, "rounds to play, 0 for endless")
	fs.String("log-level", "", "log level: trace, debug, info, warn, error")
	fs.String("log-format", "", "log format: console or json")
	fs.String("log-file", "", "write logs to this file")
	fs.Int("scale", 0, "window scale factor")
	fs.Bool("audio", true, "play the laser cue")
	fs.Bool("loading", true, "show the loading ring before each round")
	fs.Int("hitpoints", 0, "starting health per team")
	fs.String("profile-dir", "", "record a CPU profile and trace into this directory")
	return fs
}

func setDefaults(v *viper.Viper) {
	def := game.DefaultConfig()
	a, b := def.Players[game.TeamA], def.Players[game.TeamB]

	v.SetDefault("tick", def.TickDuration)
	v.SetDefault("seed", 0)
	v.SetDefault("rounds", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")

	v.SetDefault("game.width", def.Bounds.Width)
	v.SetDefault("game.height", def.Bounds.Height)
	v.SetDefault("game.hitpoints", def.Hitpoints)
	v.SetDefault("game.damage", def.Damage)
	v.SetDefault("game.hitDistance", def.HitDistance)
	v.SetDefault("game.margin", def.Margin)
	v.SetDefault("game.resultTicks", def.ResultTicks)
	v.SetDefault("game.cleanupInterval", def.CleanupInterval)
	v.SetDefault("game.gun.baseInterval", def.GunBaseInterval)
	v.SetDefault("game.gun.tickOffset", def.GunTickOffset)
	v.SetDefault("game.laser.emitTicks", def.LaserEmitTicks)
	v.SetDefault("game.laser.spawnOffset", def.LaserSpawnOffset)
	v.SetDefault("game.laser.armProbability", def.LaserArmProbability)
	v.SetDefault("game.player.fireInterval", def.PlayerFireInterval)
	v.SetDefault("game.frontLine.a", a.FrontLine)
	v.SetDefault("game.frontLine.b", b.FrontLine)

	v.SetDefault("keys.a.forward", joinKeys(a.Bindings.Forward))
	v.SetDefault("keys.a.backward", joinKeys(a.Bindings.Backward))
	v.SetDefault("keys.a.left", joinKeys(a.Bindings.Left))
	v.SetDefault("keys.a.right", joinKeys(a.Bindings.Right))
	v.SetDefault("keys.a.button", a.Bindings.Button)
	v.SetDefault("keys.b.forward", joinKeys(b.Bindings.Forward))
	v.SetDefault("keys.b.backward", joinKeys(b.Bindings.Backward))
	v.SetDefault("keys.b.left", joinKeys(b.Bindings.Left))
	v.SetDefault("keys.b.right", joinKeys(b.Bindings.Right))
	v.SetDefault("keys.b.button", b.Bindings.Button)
	v.SetDefault("keys.buttons", "gh")

	v.SetDefault("window.scale", 6)
	v.SetDefault("window.title", "Laser Duel")
	v.SetDefault("window.resultPause", time.Second)

	v.SetDefault("terminal.holdWindow", 120*time.Millisecond)

	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)
	v.SetDefault("audio.duration", 120*time.Millisecond)

	v.SetDefault("loading.enabled", true)
	v.SetDefault("loading.frame", 10*time.Millisecond)

	v.SetDefault("profile.dir", "")
}

// Load reads settings from defaults, the optional config file at path, the environment
// and flags, in increasing priority.
func Load(path string, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return Settings{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	s := decode(v)
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

func decode(v *viper.Viper) Settings {
	cfg := game.DefaultConfig()
	cfg.TickDuration = v.GetDuration("tick")
	cfg.Bounds = game.Bounds{Width: v.GetInt("game.width"), Height: v.GetInt("game.height")}
	cfg.Hitpoints = v.GetInt("game.hitpoints")
	cfg.Damage = v.GetInt("game.damage")
	cfg.HitDistance = v.GetInt("game.hitDistance")
	cfg.Margin = v.GetInt("game.margin")
	cfg.ResultTicks = v.GetInt("game.resultTicks")
	cfg.CleanupInterval = v.GetInt("game.cleanupInterval")
	cfg.GunBaseInterval = v.GetUint64("game.gun.baseInterval")
	cfg.GunTickOffset = v.GetUint64("game.gun.tickOffset")
	cfg.LaserEmitTicks = v.GetInt("game.laser.emitTicks")
	cfg.LaserSpawnOffset = v.GetInt("game.laser.spawnOffset")
	cfg.LaserArmProbability = v.GetInt("game.laser.armProbability")
	cfg.PlayerFireInterval = v.GetInt("game.player.fireInterval")

	for _, team := range game.Teams {
		prefix := "keys." + strings.ToLower(team.String())
		p := &cfg.Players[team]
		p.FrontLine = v.GetInt("game.frontLine." + strings.ToLower(team.String()))
		p.Bindings = game.Bindings{
			Forward:  game.ParseKeys(v.GetString(prefix + ".forward")),
			Backward: game.ParseKeys(v.GetString(prefix + ".backward")),
			Left:     game.ParseKeys(v.GetString(prefix + ".left")),
			Right:    game.ParseKeys(v.GetString(prefix + ".right")),
			Button:   v.GetInt(prefix + ".button"),
		}
	}

	s := Settings{
		Game:       cfg,
		Seed:       v.GetInt64("seed"),
		Rounds:     v.GetInt("rounds"),
		ProfileDir: v.GetString("profile.dir"),
		Log: LogSettings{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		Window: WindowSettings{
			Scale:       v.GetInt("window.scale"),
			Title:       v.GetString("window.title"),
			ResultPause: v.GetDuration("window.resultPause"),
		},
		Terminal: TerminalSettings{
			HoldWindow: v.GetDuration("terminal.holdWindow"),
		},
		Audio: AudioSettings{
			Enabled:  v.GetBool("audio.enabled"),
			Volume:   v.GetFloat64("audio.volume"),
			Duration: v.GetDuration("audio.duration"),
		},
		Loading: LoadingSettings{
			Enabled: v.GetBool("loading.enabled"),
			Frame:   v.GetDuration("loading.frame"),
		},
	}
	buttons := game.ParseKeys(v.GetString("keys.buttons"))
	copy(s.Buttons[:], buttons)
	if len(buttons) != game.ButtonCount {
		// flagged by Validate
		s.Buttons = [game.ButtonCount]game.Key{}
	}
	return s
}

// Validate checks the game config and every host setting
func (s Settings) Validate() error {
	errs := []error{s.Game.Validate()}
	if s.Rounds < 0 {
		errs = append(errs, fmt.Errorf("rounds must not be negative, got %d", s.Rounds))
	}
	for i, k := range s.Buttons {
		if k == 0 {
			errs = append(errs, fmt.Errorf("keys.buttons must name exactly %d keys, button %d is unbound", game.ButtonCount, i))
			break
		}
	}
	if s.Window.Scale < 1 {
		errs = append(errs, fmt.Errorf("window scale must be at least 1, got %d", s.Window.Scale))
	}
	if s.Window.ResultPause < 0 {
		errs = append(errs, fmt.Errorf("result pause must not be negative, got %v", s.Window.ResultPause))
	}
	if s.Terminal.HoldWindow <= 0 {
		errs = append(errs, fmt.Errorf("terminal hold window must be positive, got %v", s.Terminal.HoldWindow))
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio volume must be in [0, 1], got %v", s.Audio.Volume))
	}
	if s.Loading.Enabled && s.Loading.Frame <= 0 {
		errs = append(errs, fmt.Errorf("loading frame must be positive, got %v", s.Loading.Frame))
	}
	return errors.Join(errs...)
}

func joinKeys(keys []game.Key) string {
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteRune(rune(k))
	}
	return sb.String()
}
