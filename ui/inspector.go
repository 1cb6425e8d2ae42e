package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/game"
)

// Inspector renders the panel of the selected agent.
type Inspector struct {
	renderer *Renderer
	fields   []components.FieldDescriptor
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		fields:   components.AgentFieldDescriptors(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for a and returns the bottom Y.
func (ins *Inspector) Draw(a game.AgentView, progression bool) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2

	lines := int32(len(ins.fields) + 5)
	r.DrawPanel(ins.x, ins.y, ins.width, lines*r.Theme.LineHeight+padding*2)

	x := ins.x + padding
	y := ins.y + padding
	rl.DrawText(fmt.Sprintf("%s #%d", a.Name, a.ID), x, y, 16, rl.White)
	y += r.Theme.LineHeight + 4
	y = r.DrawLabelValue(x, y, "Kind", a.Kind.String())
	y = r.DrawLabelValue(x, y, "Length", fmt.Sprint(len(a.Segments)))

	group := ""
	for _, fd := range ins.fields {
		if fd.Group == "evolution" && !progression {
			continue
		}
		if fd.Group != group {
			group = fd.Group
			y = r.DrawSectionHeader(x, y, groupLabel(group))
		}
		y = r.DrawField(x, y, fd, a, contentWidth)
	}
	return y
}

func groupLabel(g string) string {
	switch g {
	case "stats":
		return "Stats"
	case "evolution":
		return "Evolution"
	default:
		return g
	}
}

// PickAgent returns the ID of the agent with a segment nearest to (wx, wy)
// within radius, head segments first.
func PickAgent(agents []game.AgentView, wx, wy, radius float64) (uint32, bool) {
	best := math.Inf(1)
	var id uint32
	for _, a := range agents {
		for i, seg := range a.Segments {
			d := math.Hypot(seg.X-wx, seg.Y-wy)
			if i == 0 {
				d -= radius / 2 // heads win ties with bodies
			}
			if d < best && d <= radius {
				best, id = d, a.ID
			}
		}
	}
	return id, !math.IsInf(best, 1)
}

// FindAgent returns the view with the given ID.
func FindAgent(agents []game.AgentView, id uint32) (game.AgentView, bool) {
	for _, a := range agents {
		if a.ID == id {
			return a, true
		}
	}
	return game.AgentView{}, false
}
