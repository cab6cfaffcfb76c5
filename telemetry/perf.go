package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase is one part of a driver frame.
type Phase uint8

const (
	PhaseInput Phase = iota
	PhaseStep
	PhaseDraw
	numPhases
	noPhase = numPhases
)

// Phases lists the frame phases in execution order.
var Phases = [numPhases]Phase{PhaseInput, PhaseStep, PhaseDraw}

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhaseStep:
		return "step"
	case PhaseDraw:
		return "draw"
	}
	return "unknown"
}

// frameSample is the timing of one frame.
type frameSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times the phases of window frames and keeps the most recent
// windowSize frames in a ring.
type PerfCollector struct {
	ring   []frameSample
	next   int
	filled int
	frames int

	cur        frameSample
	frameStart time.Time
	phaseStart time.Time
	phase      Phase

	lastPresent time.Time
	presentGap  time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
// A non-positive size falls back to 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		ring:  make([]frameSample, windowSize),
		phase: noPhase,
	}
}

// StartTick begins timing a frame.
func (p *PerfCollector) StartTick() {
	p.frameStart = time.Now()
	p.cur = frameSample{}
	p.phase = noPhase
}

// StartPhase closes the running phase, if any, and opens ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = ph
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase < numPhases {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the frame and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = noPhase
	p.cur.total = now.Sub(p.frameStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
	p.frames++
}

// WindowFull reports whether the last frame completed a window, so callers
// flush stats once per window.
func (p *PerfCollector) WindowFull() bool {
	return p.frames > 0 && p.frames%len(p.ring) == 0
}

// Frames returns the number of frames recorded.
func (p *PerfCollector) Frames() int {
	return p.frames
}

// RecordFrame marks a presented frame; the gap between two marks gives FPS.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentGap = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats summarizes the frames in the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Per phase, indexed by Phase
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64 // share of the average frame, 0..100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats computes the window summary.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.presentGap}
	if p.presentGap > 0 {
		s.FPS = float64(time.Second) / float64(p.presentGap)
	}
	if p.filled == 0 {
		return s
	}

	totals := make([]float64, p.filled)
	var phaseSum [numPhases]time.Duration
	for i, f := range p.ring[:p.filled] {
		totals[i] = float64(f.total)
		for ph, d := range f.phases {
			phaseSum[ph] += d
		}
	}

	avg := stat.Mean(totals, nil)
	s.AvgTickDuration = time.Duration(avg)
	s.MinTickDuration = time.Duration(floats.Min(totals))
	s.MaxTickDuration = time.Duration(floats.Max(totals))
	if avg > 0 {
		s.TicksPerSecond = float64(time.Second) / avg
	}
	for ph, sum := range phaseSum {
		s.PhaseAvg[ph] = sum / time.Duration(p.filled)
		if avg > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / avg * 100
		}
	}
	return s
}

// LogStats logs the summary at debug level.
func (s PerfStats) LogStats() {
	slog.Debug("perf", "stats", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	Frame       int     `csv:"frame"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	FPS         float64 `csv:"fps"`
	InputPct    float64 `csv:"input_pct"`
	StepPct     float64 `csv:"step_pct"`
	DrawPct     float64 `csv:"draw_pct"`
}

// ToCSV flattens the summary for the frame count at which it was taken.
func (s PerfStats) ToCSV(frame int) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:       frame,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		MinTickUS:   s.MinTickDuration.Microseconds(),
		MaxTickUS:   s.MaxTickDuration.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
		FPS:         s.FPS,
		InputPct:    s.PhasePct[PhaseInput],
		StepPct:     s.PhasePct[PhaseStep],
		DrawPct:     s.PhasePct[PhaseDraw],
	}
}
