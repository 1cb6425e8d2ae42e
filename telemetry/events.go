// Package telemetry provides run statistics, event logs, CSV output and the leaderboard.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/serpent/components"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventDeath
	EventKill
	EventFood
	EventLevelUp
	EventEvolve
	EventImmunitySave
	EventBossPhase
	EventBossHit
	EventVictory
	EventDefeat
)

var eventNames = [...]string{
	EventSpawn:        "spawn",
	EventDeath:        "death",
	EventKill:         "kill",
	EventFood:         "food",
	EventLevelUp:      "level_up",
	EventEvolve:       "evolve",
	EventImmunitySave: "immunity_save",
	EventBossPhase:    "boss_phase",
	EventBossHit:      "boss_hit",
	EventVictory:      "victory",
	EventDefeat:       "defeat",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// MarshalCSV writes the event name rather than its number.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType       `csv:"type"`
	Tick     int32           `csv:"tick"`
	EntityID uint32          `csv:"entity"`
	Kind     components.Kind `csv:"-"`

	// Optional fields depending on event type
	TargetID uint32  `csv:"target"` // killer for deaths, victim for kills
	Amount   float64 `csv:"amount"` // level, phase, damage or score
	Detail   string  `csv:"detail"`
}

// NewSpawnEvent records an agent entering the arena.
func NewSpawnEvent(tick int32, id uint32, kind components.Kind, name string) Event {
	return Event{Type: EventSpawn, Tick: tick, EntityID: id, Kind: kind, Detail: name}
}

// NewDeathEvent records an agent dying. cause names what killed it.
func NewDeathEvent(tick int32, id uint32, kind components.Kind, killerID uint32, cause string) Event {
	return Event{Type: EventDeath, Tick: tick, EntityID: id, Kind: kind, TargetID: killerID, Detail: cause}
}

// NewKillEvent records the player collecting a bounty.
func NewKillEvent(tick int32, killerID, victimID uint32, score int) Event {
	return Event{Type: EventKill, Tick: tick, EntityID: killerID, Kind: components.KindPlayer, TargetID: victimID, Amount: float64(score)}
}

// Food details for plain and bonus food; special items use the effect name.
const (
	FoodPlain = "plain"
	FoodBonus = "bonus"
)

// NewFoodEvent records an agent eating. detail is plain, bonus or the effect name.
func NewFoodEvent(tick int32, id uint32, kind components.Kind, detail string) Event {
	return Event{Type: EventFood, Tick: tick, EntityID: id, Kind: kind, Detail: detail}
}

// NewLevelUpEvent records an agent reaching a new level.
func NewLevelUpEvent(tick int32, id uint32, kind components.Kind, level int) Event {
	return Event{Type: EventLevelUp, Tick: tick, EntityID: id, Kind: kind, Amount: float64(level)}
}

// NewEvolveEvent records an evolution.
func NewEvolveEvent(tick int32, id uint32, kind components.Kind, form components.Form) Event {
	return Event{Type: EventEvolve, Tick: tick, EntityID: id, Kind: kind, Detail: form.String()}
}

// NewImmunitySaveEvent records tank immunity absorbing a lethal hit.
func NewImmunitySaveEvent(tick int32, id uint32, kind components.Kind, otherID uint32) Event {
	return Event{Type: EventImmunitySave, Tick: tick, EntityID: id, Kind: kind, TargetID: otherID}
}

// NewBossPhaseEvent records the boss entering a phase.
func NewBossPhaseEvent(tick int32, bossID uint32, phase int) Event {
	return Event{Type: EventBossPhase, Tick: tick, EntityID: bossID, Kind: components.KindBoss, Amount: float64(phase)}
}

// NewBossHitEvent records a charge landing on the boss.
func NewBossHitEvent(tick int32, playerID, bossID uint32, damage float64) Event {
	return Event{Type: EventBossHit, Tick: tick, EntityID: playerID, Kind: components.KindPlayer, TargetID: bossID, Amount: damage}
}

// NewOutcomeEvent records the end of a run.
func NewOutcomeEvent(tick int32, playerID uint32, victory bool, score int) Event {
	t := EventDefeat
	if victory {
		t = EventVictory
	}
	return Event{Type: t, Tick: tick, EntityID: playerID, Kind: components.KindPlayer, Amount: float64(score)}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.Int("tick", int(e.Tick)),
		slog.Any("entity", e.EntityID),
		slog.String("kind", e.Kind.String()),
	}
	if e.TargetID != 0 {
		attrs = append(attrs, slog.Any("target", e.TargetID))
	}
	if e.Amount != 0 {
		attrs = append(attrs, slog.Float64("amount", e.Amount))
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	return slog.GroupValue(attrs...)
}

// Death causes carried in Event.Detail.
const (
	CauseSelf       = "self"
	CauseHeadOn     = "head_on"
	CauseBody       = "body"
	CauseStarved    = "starved"
	CauseProjectile = "projectile"
	CauseGlobal     = "global_attack"
	CauseBoss       = "boss_contact"
)
