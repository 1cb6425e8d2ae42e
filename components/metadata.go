package components

import "strings"

// FieldDescriptor describes an agent field for HUD display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.0f")
	Max    float64 // Maximum value (for bars); zero means "use the agent's own max"
	IsBar  bool    // True to render as progress bar
	Group  string  // Logical grouping
}

// AgentFieldDescriptors returns metadata for the player status panel.
func AgentFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "energy", Label: "Energy", Format: "%.0f/%.0f", IsBar: true, Group: "stats"},
		{ID: "level", Label: "Level", Format: "%d", Group: "stats"},
		{ID: "exp", Label: "Exp", Format: "%d/%d", IsBar: true, Group: "stats"},
		{ID: "score", Label: "Score", Format: "%d", Group: "stats"},
		{ID: "form", Label: "Form", Format: "%s", Group: "evolution"},
		{ID: "speed", Label: "Speed", Format: "%d", Group: "evolution"},
		{ID: "energy_stat", Label: "Energy Lv", Format: "%d", Group: "evolution"},
		{ID: "stat_points", Label: "Stat Pts", Format: "%d", Group: "evolution"},
	}
}

var (
	directionNames = [...]string{"RIGHT", "UP", "DOWN", "LEFT"}
	kindNames      = [...]string{"PLAYER", "AI", "BOSS"}
	effectNames    = [...]string{"NONE", "SHIELD", "SPEED_BOOST", "GHOST"}
	statNames      = [...]string{"SPEED", "ENERGY"}
	formNames      = [...]string{"NORMAL", "SPEEDER", "TANK", "HUNTER", "ULTIMATE"}
	patternNames   = [...]string{"NORMAL", "EVOLVED1", "EVOLVED2"}
)

func name(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return "UNKNOWN"
}

func parse(names []string, s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}

func (d Direction) String() string { return name(directionNames[:], int(d)) }
func (k Kind) String() string      { return name(kindNames[:], int(k)) }
func (e Effect) String() string    { return name(effectNames[:], int(e)) }
func (s Stat) String() string      { return name(statNames[:], int(s)) }
func (f Form) String() string      { return name(formNames[:], int(f)) }
func (p Pattern) String() string   { return name(patternNames[:], int(p)) }

// ParseStat parses a stat name such as "speed".
func ParseStat(s string) (Stat, bool) {
	i, ok := parse(statNames[:], s)
	return Stat(i), ok
}

// ParseForm parses an evolution form name such as "tank".
func ParseForm(s string) (Form, bool) {
	i, ok := parse(formNames[:], s)
	return Form(i), ok
}

// TierForms lists the forms reachable from NORMAL.
var TierForms = [3]Form{FormSpeeder, FormTank, FormHunter}
