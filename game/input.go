package game

import "strings"

// Key is a logical key. Hosts map their physical key codes onto lowercase runes.
type Key rune

func (k Key) String() string {
	return string(rune(k))
}

// ParseKeys turns a binding string such as "f" or "fj" into keys
func ParseKeys(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range strings.ToLower(s) {
		keys = append(keys, Key(r))
	}
	return keys
}

// KeySet is the set of currently asserted logical keys
type KeySet map[Key]struct{}

// NewKeySet creates a key set holding the given keys
func NewKeySet(keys ...Key) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Has reports whether k is asserted
func (s KeySet) Has(k Key) bool {
	_, ok := s[k]
	return ok
}

// Any reports whether any of keys is asserted
func (s KeySet) Any(keys []Key) bool {
	for _, k := range keys {
		if s.Has(k) {
			return true
		}
	}
	return false
}

// ButtonLevel is the logical level of a discrete button
type ButtonLevel int

const (
	Released ButtonLevel = iota
	Asserted
)

// ButtonCount is the number of discrete buttons, one per team
const ButtonCount = 2

// InputSnapshot is the read-only input state for one tick
type InputSnapshot struct {
	Keys    KeySet
	Buttons [ButtonCount]ButtonLevel
	Tick    uint64
}

// Button returns the level of button i, Released when out of range
func (in InputSnapshot) Button(i int) ButtonLevel {
	if i < 0 || i >= ButtonCount {
		return Released
	}
	return in.Buttons[i]
}

// InputSource supplies the most recent input state without blocking
type InputSource interface {
	Snapshot(tick uint64) (InputSnapshot, error)
}

// InputSourceFunc adapts a function to InputSource
type InputSourceFunc func(tick uint64) (InputSnapshot, error)

// Snapshot calls f(tick)
func (f InputSourceFunc) Snapshot(tick uint64) (InputSnapshot, error) {
	return f(tick)
}
