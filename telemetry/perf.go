package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one stage of a simulation tick.
type Phase uint8

// Phases in the order a tick runs them.
const (
	PhaseBoss Phase = iota
	PhaseIntents
	PhaseMovement
	PhaseCollisions
	PhaseCleanup
	PhaseUpkeep
	PhaseTelemetry
	phaseCount
)

var phaseNames = [phaseCount]string{
	"boss", "intents", "movement", "collisions", "cleanup", "upkeep", "telemetry",
}

func (p Phase) String() string {
	if p >= phaseCount {
		return "unknown"
	}
	return phaseNames[p]
}

// tickSample is the timing of one tick and how many agents it simulated.
type tickSample struct {
	total  time.Duration
	phases [phaseCount]time.Duration
	agents int
}

// PerfCollector times tick phases over a rolling window of ticks.
type PerfCollector struct {
	window []tickSample
	next   int
	filled int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 150
	}
	return &PerfCollector{
		window: make([]tickSample, windowSize),
		now:    time.Now,
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.cur = tickSample{}
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase, p.phaseStart, p.inPhase = phase, now, true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the tick; agents is the number of agents it simulated.
func (p *PerfCollector) EndTick(agents int) {
	now := p.now()
	p.closePhase(now)
	p.inPhase = false
	p.cur.total = now.Sub(p.tickStart)
	p.cur.agents = agents

	p.window[p.next] = p.cur
	p.next = (p.next + 1) % len(p.window)
	p.filled = min(p.filled+1, len(p.window))
}

// PerfStats summarises the window.
type PerfStats struct {
	AvgTick        time.Duration
	MinTick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64

	PhaseAvg [phaseCount]time.Duration
	PhasePct [phaseCount]float64

	// AvgAgents is the mean number of agents per tick. PerAgent is the
	// average movement plus collision time divided by it, the part of a
	// tick that grows with the population.
	AvgAgents float64
	PerAgent  time.Duration
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.filled == 0 {
		return s
	}

	var total time.Duration
	var phaseSum [phaseCount]time.Duration
	agents := 0
	for i, t := range p.window[:p.filled] {
		total += t.total
		if i == 0 || t.total < s.MinTick {
			s.MinTick = t.total
		}
		s.MaxTick = max(s.MaxTick, t.total)
		for ph, d := range t.phases {
			phaseSum[ph] += d
		}
		agents += t.agents
	}

	n := time.Duration(p.filled)
	s.AvgTick = total / n
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTick > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	s.AvgAgents = float64(agents) / float64(p.filled)
	if s.AvgAgents > 0 {
		scaling := s.PhaseAvg[PhaseMovement] + s.PhaseAvg[PhaseCollisions]
		s.PerAgent = time.Duration(float64(scaling) / s.AvgAgents)
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
		slog.Float64("avg_agents", s.AvgAgents),
		slog.Int64("per_agent_ns", s.PerAgent.Nanoseconds()),
	}
	for ph := range phaseCount {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	RunID         string  `csv:"run_id"`
	WindowEnd     int32   `csv:"window_end"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	AvgAgents     float64 `csv:"avg_agents"`
	PerAgentNS    int64   `csv:"per_agent_ns"`
	BossPct       float64 `csv:"boss_pct"`
	IntentsPct    float64 `csv:"intents_pct"`
	MovementPct   float64 `csv:"movement_pct"`
	CollisionsPct float64 `csv:"collisions_pct"`
	CleanupPct    float64 `csv:"cleanup_pct"`
	UpkeepPct     float64 `csv:"upkeep_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgTickUS:     s.AvgTick.Microseconds(),
		MinTickUS:     s.MinTick.Microseconds(),
		MaxTickUS:     s.MaxTick.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		AvgAgents:     s.AvgAgents,
		PerAgentNS:    s.PerAgent.Nanoseconds(),
		BossPct:       s.PhasePct[PhaseBoss],
		IntentsPct:    s.PhasePct[PhaseIntents],
		MovementPct:   s.PhasePct[PhaseMovement],
		CollisionsPct: s.PhasePct[PhaseCollisions],
		CleanupPct:    s.PhasePct[PhaseCleanup],
		UpkeepPct:     s.PhasePct[PhaseUpkeep],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
