package game

import "fmt"

// scriptedRand returns values in order, then fallback forever. Results are reduced mod n.
type scriptedRand struct {
	values   []int
	fallback int
	calls    []int
}

func (s *scriptedRand) Intn(n int) int {
	s.calls = append(s.calls, n)
	v := s.fallback
	if len(s.values) > 0 {
		v, s.values = s.values[0], s.values[1:]
	}
	return v % n
}

// recordingRenderer keeps every draw call as text. frames holds the ops of every flushed frame.
type recordingRenderer struct {
	ops     []string
	frames  [][]string
	failOn  string
	flushes int
}

func (r *recordingRenderer) record(op string) error {
	r.ops = append(r.ops, op)
	if r.failOn != "" && len(op) >= len(r.failOn) && op[:len(r.failOn)] == r.failOn {
		return fmt.Errorf("%s failed", r.failOn)
	}
	return nil
}

func (r *recordingRenderer) Clear() error {
	r.ops = r.ops[:0]
	return r.record("clear")
}

func (r *recordingRenderer) DrawRect(p Position, w, h int) error {
	return r.record(fmt.Sprintf("rect %d,%d %dx%d", p.X, p.Y, w, h))
}

func (r *recordingRenderer) DrawTriangle(a, b, c Position) error {
	return r.record(fmt.Sprintf("tri %d,%d %d,%d %d,%d", a.X, a.Y, b.X, b.Y, c.X, c.Y))
}

func (r *recordingRenderer) DrawLine(a, b Position) error {
	return r.record(fmt.Sprintf("line %d,%d %d,%d", a.X, a.Y, b.X, b.Y))
}

func (r *recordingRenderer) DrawArc(c Position, radius, width int, start, sweep float64) error {
	return r.record(fmt.Sprintf("arc %d,%d r%d w%d %g+%g", c.X, c.Y, radius, width, start, sweep))
}

func (r *recordingRenderer) DrawText(s string, p Position, align Alignment) error {
	return r.record(fmt.Sprintf("text %s %d,%d %d", s, p.X, p.Y, align))
}

func (r *recordingRenderer) Flush() error {
	r.flushes++
	err := r.record("flush")
	r.frames = append(r.frames, append([]string(nil), r.ops...))
	return err
}

// lampLog records indicator changes per team
type lampLog struct {
	changes [2][]bool
	err     error
}

func (l *lampLog) Set(team Team, on bool) error {
	l.changes[team] = append(l.changes[team], on)
	return l.err
}

// quietConfig never arms lasers by chance and disables direct fire
func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.PlayerFireInterval = 0
	return cfg
}

func keys(s string) InputSnapshot {
	return InputSnapshot{Keys: NewKeySet(ParseKeys(s)...)}
}
