package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one generation.
const (
	PhaseRabbits       = "rabbits"
	PhaseRabbitResolve = "rabbit_resolve"
	PhaseFoxes         = "foxes"
	PhaseFoxResolve    = "fox_resolve"
	PhaseTelemetry     = "telemetry"
)

var phaseOrder = []string{
	PhaseRabbits, PhaseRabbitResolve, PhaseFoxes, PhaseFoxResolve, PhaseTelemetry,
}

// PerfSample holds timing data for a single generation.
type PerfSample struct {
	GenDuration time.Duration
	Phases      map[string]time.Duration
}

// PerfCollector tracks performance metrics over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	genStart      time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of generations to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartGeneration begins timing a new generation.
func (p *PerfCollector) StartGeneration() {
	p.genStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	// End previous phase if any
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndGeneration finishes timing the current generation and records the sample.
func (p *PerfCollector) EndGeneration() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		GenDuration: now.Sub(p.genStart),
		Phases:      p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgGenDuration time.Duration
	MinGenDuration time.Duration
	MaxGenDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total generation time
	PhasePct map[string]float64

	GensPerSecond float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total time.Duration
	var minGen, maxGen time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.GenDuration

		if i == 0 || s.GenDuration < minGen {
			minGen = s.GenDuration
		}
		if s.GenDuration > maxGen {
			maxGen = s.GenDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var gensPerSec float64
	if avg > 0 {
		gensPerSec = float64(time.Second) / float64(avg)
	}

	return PerfStats{
		AvgGenDuration: avg,
		MinGenDuration: minGen,
		MaxGenDuration: maxGen,
		PhaseAvg:       phaseAvg,
		PhasePct:       phasePct,
		GensPerSecond:  gensPerSec,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_gen_us", s.AvgGenDuration.Microseconds(),
		"min_gen_us", s.MinGenDuration.Microseconds(),
		"max_gen_us", s.MaxGenDuration.Microseconds(),
		"gens_per_sec", int(s.GensPerSecond),
	}

	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_gen_us", s.AvgGenDuration.Microseconds()),
		slog.Int64("min_gen_us", s.MinGenDuration.Microseconds()),
		slog.Int64("max_gen_us", s.MaxGenDuration.Microseconds()),
		slog.Float64("gens_per_sec", s.GensPerSecond),
	}

	for phase, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(phase+"_pct", pct))
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd        int     `csv:"generation"`
	AvgGenUS         int64   `csv:"avg_gen_us"`
	MinGenUS         int64   `csv:"min_gen_us"`
	MaxGenUS         int64   `csv:"max_gen_us"`
	GensPerSec       float64 `csv:"gens_per_sec"`
	RabbitsPct       float64 `csv:"rabbits_pct"`
	RabbitResolvePct float64 `csv:"rabbit_resolve_pct"`
	FoxesPct         float64 `csv:"foxes_pct"`
	FoxResolvePct    float64 `csv:"fox_resolve_pct"`
	TelemetryPct     float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:        windowEnd,
		AvgGenUS:         s.AvgGenDuration.Microseconds(),
		MinGenUS:         s.MinGenDuration.Microseconds(),
		MaxGenUS:         s.MaxGenDuration.Microseconds(),
		GensPerSec:       s.GensPerSecond,
		RabbitsPct:       s.PhasePct[PhaseRabbits],
		RabbitResolvePct: s.PhasePct[PhaseRabbitResolve],
		FoxesPct:         s.PhasePct[PhaseFoxes],
		FoxResolvePct:    s.PhasePct[PhaseFoxResolve],
		TelemetryPct:     s.PhasePct[PhaseTelemetry],
	}
}
