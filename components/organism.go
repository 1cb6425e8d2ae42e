package components

// Kind identifies who controls an agent.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindAI
	KindBoss
)

// Agent bundles identity, control and liveness for any snake-like entity.
type Agent struct {
	ID        uint32
	Name      string
	Kind      Kind
	Alive     bool
	Direction Direction
	Score     int
	Autopilot bool // player steered by the AI policy (headless runs)
}

// Steered reports whether the AI decision module sets this agent's direction.
func (a *Agent) Steered() bool {
	return a.Kind == KindAI || a.Autopilot
}

// Energy tracks an agent's energy. Bounds come from Progress stats.
type Energy struct {
	Value float64
}

// Stat is an upgradeable agent attribute.
type Stat uint8

const (
	StatSpeed Stat = iota
	StatEnergy
	StatCount
)

// Form is an evolution tier.
type Form uint8

const (
	FormNormal Form = iota
	FormSpeeder
	FormTank
	FormHunter
	FormUltimate
)

// Progress holds experience, level, stat and evolution state.
type Progress struct {
	Level           int
	Exp             int
	ExpToLevel      int
	StatPoints      int
	EvolutionPoints int
	Stats           [StatCount]int
	Form            Form
	AbsorbFactor    float64 // food absorption radius in cells
}

// NewProgress returns level-1 progress with all stats at 1.
func NewProgress(expToLevel int) Progress {
	p := Progress{Level: 1, ExpToLevel: expToLevel, AbsorbFactor: 1}
	for i := range p.Stats {
		p.Stats[i] = 1
	}
	return p
}

// Message is a notification shown for a number of ticks.
type Message struct {
	Text     string
	Duration int
}

// Set replaces the message and restarts its countdown.
func (m *Message) Set(text string, duration int) {
	m.Text = text
	m.Duration = duration
}

// Chase holds AI pursuit memory. Only AI-steered agents carry it.
type Chase struct {
	Active   bool
	Timer    int
	TargetID uint32 // weak reference by agent ID
	LastSeen Position
}
