package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Profiler records a CPU profile and an execution trace for a whole session
type Profiler struct {
	mu          sync.Mutex
	isProfiling bool
	profilesDir string
	baseName    string
	logger      zerolog.Logger

	cpuFile   *os.File
	traceFile *os.File
}

// NewProfiler creates a profiler writing into profilesDir
func NewProfiler(profilesDir string, logger zerolog.Logger) *Profiler {
	return &Profiler{profilesDir: profilesDir, logger: logger}
}

// Start begins capturing. Files are named after the start time and reason.
func (p *Profiler) Start(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("create profiles dir: %w", err)
	}
	p.baseName = fmt.Sprintf("%s-%s", reason, time.Now().Format("20060102-150405"))

	cpu, err := os.Create(p.CPUProfilePath())
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(cpu); err != nil {
		cpu.Close()
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}

	tr, err := os.Create(p.TracePath())
	if err != nil {
		pprof.StopCPUProfile()
		cpu.Close()
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	if err := trace.Start(tr); err != nil {
		pprof.StopCPUProfile()
		cpu.Close()
		tr.Close()
		return fmt.Errorf("failed to start trace: %w", err)
	}

	p.cpuFile, p.traceFile = cpu, tr
	p.isProfiling = true
	p.logger.Info().Str("cpu", p.CPUProfilePath()).Str("trace", p.TracePath()).Msg("profiling started")
	return nil
}

// Stop ends the capture and logs a memory summary. It is a no-op when not profiling.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.isProfiling {
		return nil
	}
	pprof.StopCPUProfile()
	trace.Stop()
	err := errors.Join(p.cpuFile.Close(), p.traceFile.Close())
	p.isProfiling = false

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info().
		Str("cpu", p.CPUProfilePath()).
		Uint64("allocKB", m.Alloc/1024).
		Uint64("totalAllocKB", m.TotalAlloc/1024).
		Uint32("numGC", m.NumGC).
		Msg("profile saved, view with: go tool pprof -http=:8080 <file>")
	return err
}

// IsProfiling returns whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// CPUProfilePath returns the CPU profile file of the current or last capture
func (p *Profiler) CPUProfilePath() string {
	return filepath.Join(p.profilesDir, p.baseName+".cpu.prof")
}

// TracePath returns the trace file of the current or last capture
func (p *Profiler) TracePath() string {
	return filepath.Join(p.profilesDir, p.baseName+".trace")
}
