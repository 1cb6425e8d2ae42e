package telemetry

import "log/slog"

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	Name      string
	BirthTick int32
	Ticks     int32

	Kills      int
	FoodEaten  int
	Specials   int
	PeakLength int
	PeakLevel  int
	Saves      int
}

// LogValue implements slog.LogValuer for structured logging.
func (s *LifetimeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", s.Name),
		slog.Int("ticks", int(s.Ticks)),
		slog.Int("kills", s.Kills),
		slog.Int("food", s.FoodEaten),
		slog.Int("specials", s.Specials),
		slog.Int("peak_length", s.PeakLength),
		slog.Int("peak_level", s.PeakLevel),
		slog.Int("saves", s.Saves),
	)
}

// LifetimeTracker manages per-agent lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register starts tracking an agent.
func (lt *LifetimeTracker) Register(id uint32, name string, birthTick int32, length int) {
	lt.stats[id] = &LifetimeStats{
		Name:       name,
		BirthTick:  birthTick,
		PeakLength: length,
		PeakLevel:  1,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove stops tracking an agent and returns its final stats.
func (lt *LifetimeTracker) Remove(id uint32, currentTick int32) *LifetimeStats {
	s := lt.stats[id]
	if s != nil {
		s.Ticks = currentTick - s.BirthTick
	}
	delete(lt.stats, id)
	return s
}

// Observe folds an event into the stats of the agent it concerns.
func (lt *LifetimeTracker) Observe(e Event) {
	s := lt.stats[e.EntityID]
	if s == nil {
		return
	}
	switch e.Type {
	case EventKill:
		s.Kills++
	case EventFood:
		if e.Detail == FoodPlain || e.Detail == FoodBonus {
			s.FoodEaten++
		} else {
			s.Specials++
		}
	case EventLevelUp:
		s.PeakLevel = max(s.PeakLevel, int(e.Amount))
	case EventImmunitySave:
		s.Saves++
	}
}

// UpdateLength tracks peak body length.
func (lt *LifetimeTracker) UpdateLength(id uint32, length int) {
	if s := lt.stats[id]; s != nil && length > s.PeakLength {
		s.PeakLength = length
	}
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
