package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/config"
	"github.com/pthm-cable/serpent/game"
)

// EvolutionPanel lets the player spend stat points and pick an evolution.
// The app pauses the simulation while it is open.
type EvolutionPanel struct {
	renderer *Renderer
	evo      config.EvolutionConfig
	open     bool
}

// NewEvolutionPanel creates a closed panel for the given evolution rules.
func NewEvolutionPanel(evo config.EvolutionConfig) *EvolutionPanel {
	return &EvolutionPanel{renderer: NewRenderer(), evo: evo}
}

// IsOpen reports whether the panel is shown.
func (p *EvolutionPanel) IsOpen() bool { return p.open }

// SetOpen shows or hides the panel.
func (p *EvolutionPanel) SetOpen(open bool) { p.open = open }

// Available reports whether the player has anything to spend.
func Available(a game.AgentView, evo config.EvolutionConfig) bool {
	return a.StatPoints > 0 || len(EvolveOptions(a, evo)) > 0
}

// EvolveOptions lists the forms the agent may evolve into now.
func EvolveOptions(a game.AgentView, evo config.EvolutionConfig) []components.Form {
	if !a.CanEvolve {
		return nil
	}
	var forms []components.Form
	if a.Form == components.FormNormal && a.Level >= evo.TierLevel {
		forms = append(forms, components.TierForms[:]...)
	}
	if a.Form != components.FormUltimate && a.Level >= evo.UltimateLevel {
		forms = append(forms, components.FormUltimate)
	}
	return forms
}

var formBlurbs = map[components.Form]string{
	components.FormSpeeder:  "cheaper dash, longer invincibility",
	components.FormTank:     "+50 energy, one-shot immunity",
	components.FormHunter:   "absorbs food from 3 cells away",
	components.FormUltimate: "immune to collisions, long dash shield",
}

// Draw renders the panel centered on screen and returns the commands
// chosen this frame.
func (p *EvolutionPanel) Draw(a game.AgentView, screenW, screenH int32) []game.Command {
	if !p.open {
		return nil
	}
	r := p.renderer
	forms := EvolveOptions(a, p.evo)

	width := int32(420)
	height := int32(190 + 40*len(forms))
	x, y := Anchor(AnchorCenter, width, height, screenW, screenH, 0)
	r.DrawPanel(x, y, width, height)

	pad := r.Theme.Padding
	cx := x + pad
	cy := y + pad
	rl.DrawText(fmt.Sprintf("Level %d  %s", a.Level, a.Form), cx, cy, 20, rl.White)
	cy += 28
	rl.DrawText(fmt.Sprintf("Stat points: %d", a.StatPoints), cx, cy, 14, r.Theme.SectionHeader)
	cy += 24

	var cmds []game.Command
	for _, stat := range []components.Stat{components.StatSpeed, components.StatEnergy} {
		lvl := a.Stats[stat]
		rl.DrawText(fmt.Sprintf("%-7s %d/%d", stat, lvl, p.evo.MaxStatLevel), cx, cy+8, 14, r.Theme.LabelColor)
		bounds := rl.Rectangle{X: float32(cx + 170), Y: float32(cy), Width: 120, Height: 30}
		if gui.Button(bounds, "Upgrade") && a.StatPoints > 0 && lvl < p.evo.MaxStatLevel {
			cmds = append(cmds, game.CmdUpgradeStat(stat))
		}
		cy += 38
	}

	if len(forms) > 0 {
		cy += 4
		rl.DrawText("Evolve", cx, cy, 14, r.Theme.SectionHeader)
		cy += 20
		for _, f := range forms {
			bounds := rl.Rectangle{X: float32(cx), Y: float32(cy), Width: 120, Height: 30}
			if gui.Button(bounds, f.String()) {
				cmds = append(cmds, game.CmdEvolve(f))
			}
			rl.DrawText(formBlurbs[f], cx+130, cy+8, 12, r.Theme.LabelColor)
			cy += 40
		}
	}

	resume := rl.Rectangle{X: float32(x + width - 110), Y: float32(y + height - 40), Width: 100, Height: 30}
	if gui.Button(resume, "Resume") {
		p.open = false
	}
	return cmds
}
