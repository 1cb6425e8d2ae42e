package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/game"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a labelled [0, 1] bar with value text on the right.
func (r *Renderer) DrawBar(x, y int32, label string, ratio float32, text string, width int32, fill rl.Color) int32 {
	ratio = max(0, min(ratio, 1))

	barX := x + r.Theme.LabelWidth
	barWidth := width - r.Theme.LabelWidth - 70

	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, barWidth, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barWidth)*ratio), r.Theme.BarHeight, fill)
	rl.DrawText(text, barX+barWidth+5, y, r.Theme.FontSize, r.Theme.ValueColor)

	return y + r.Theme.LineHeight + 2
}

// DrawEnergyBar draws an energy bar with color thresholds.
func (r *Renderer) DrawEnergyBar(x, y int32, label string, current, maxVal float32, width int32) int32 {
	ratio := float32(0)
	if maxVal > 0 {
		ratio = current / maxVal
	}
	return r.DrawBar(x, y, label, ratio, fmt.Sprintf("%.0f/%.0f", current, maxVal), width, r.energyColor(ratio))
}

func (r *Renderer) energyColor(ratio float32) rl.Color {
	switch {
	case ratio < 0.3:
		return r.Theme.BarFillLow
	case ratio < 0.6:
		return r.Theme.BarFillMedium
	default:
		return r.Theme.BarFillHigh
	}
}

// DrawSpacer adds vertical space and returns new Y.
func (r *Renderer) DrawSpacer(y int32, amount int32) int32 {
	return y + amount
}

// DrawField renders one agent field from its descriptor.
func (r *Renderer) DrawField(x, y int32, fd components.FieldDescriptor, a game.AgentView, width int32) int32 {
	switch fd.ID {
	case "energy":
		return r.DrawEnergyBar(x, y, fd.Label, float32(a.Energy), float32(a.MaxEnergy), width)
	case "exp":
		ratio := float32(0)
		if a.ExpToLevel > 0 {
			ratio = float32(a.Exp) / float32(a.ExpToLevel)
		}
		return r.DrawBar(x, y, fd.Label, ratio, fmt.Sprintf(fd.Format, a.Exp, a.ExpToLevel), width, r.Theme.BarFill)
	}

	text, ok := FieldText(fd, a)
	if !ok {
		return y
	}
	return r.DrawLabelValue(x, y, fd.Label, text)
}

// FieldText formats a non-bar agent field. It reports false for unknown IDs.
func FieldText(fd components.FieldDescriptor, a game.AgentView) (string, bool) {
	var v any
	switch fd.ID {
	case "energy":
		return fmt.Sprintf(fd.Format, a.Energy, a.MaxEnergy), true
	case "exp":
		return fmt.Sprintf(fd.Format, a.Exp, a.ExpToLevel), true
	case "level":
		v = a.Level
	case "score":
		v = a.Score
	case "form":
		v = a.Form.String()
	case "speed":
		v = a.Stats[components.StatSpeed]
	case "energy_stat":
		v = a.Stats[components.StatEnergy]
	case "stat_points":
		v = a.StatPoints
	default:
		return "", false
	}
	return fmt.Sprintf(fd.Format, v), true
}
