package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/game"
)

// keyBinding maps a key to a player command.
type keyBinding struct {
	Key   int32
	Label string
	Cmd   game.Command
}

// PlayerBindings are the gameplay keys. Arrows and WASD both steer.
var PlayerBindings = []keyBinding{
	{rl.KeyUp, "Up", game.CmdTurn(components.DirUp)},
	{rl.KeyDown, "Down", game.CmdTurn(components.DirDown)},
	{rl.KeyLeft, "Left", game.CmdTurn(components.DirLeft)},
	{rl.KeyRight, "Right", game.CmdTurn(components.DirRight)},
	{rl.KeyW, "W", game.CmdTurn(components.DirUp)},
	{rl.KeyS, "S", game.CmdTurn(components.DirDown)},
	{rl.KeyA, "A", game.CmdTurn(components.DirLeft)},
	{rl.KeyD, "D", game.CmdTurn(components.DirRight)},
	{rl.KeySpace, "Space", game.CmdDash()},
	{rl.KeyE, "E", game.CmdSpecial()},
	{rl.KeyC, "C", game.CmdCharge()},
	{rl.KeyOne, "1", game.CmdUpgradeStat(components.StatSpeed)},
	{rl.KeyTwo, "2", game.CmdUpgradeStat(components.StatEnergy)},
}

// CommandsForKeys returns the commands bound to the pressed keys, in
// binding order.
func CommandsForKeys(pressed func(key int32) bool) []game.Command {
	var cmds []game.Command
	for _, b := range PlayerBindings {
		if pressed(b.Key) {
			cmds = append(cmds, b.Cmd)
		}
	}
	return cmds
}

// ControlsLegend is the one-line key help shown at the bottom of the screen.
const ControlsLegend = "Arrows/WASD: steer | Space: dash | E: immunity | C: charge | 1/2: stats | Tab: evolve | P: pause | ,/.: speed | F1: panel | Wheel: zoom"
