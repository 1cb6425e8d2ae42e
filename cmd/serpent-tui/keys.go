package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/game"
)

// action is what a key press asks the terminal loop to do.
type action int

const (
	actionNone action = iota
	actionCommand
	actionPause
	actionRestart
	actionQuit
)

var runeCommands = map[rune]game.Command{
	'w': game.CmdTurn(components.DirUp),
	's': game.CmdTurn(components.DirDown),
	'a': game.CmdTurn(components.DirLeft),
	'd': game.CmdTurn(components.DirRight),
	' ': game.CmdDash(),
	'e': game.CmdSpecial(),
	'c': game.CmdCharge(),
	'1': game.CmdUpgradeStat(components.StatSpeed),
	'2': game.CmdUpgradeStat(components.StatEnergy),
	'z': game.CmdEvolve(components.FormSpeeder),
	'x': game.CmdEvolve(components.FormTank),
	'v': game.CmdEvolve(components.FormHunter),
	'u': game.CmdEvolve(components.FormUltimate),
}

var keyCommands = map[tcell.Key]game.Command{
	tcell.KeyUp:    game.CmdTurn(components.DirUp),
	tcell.KeyDown:  game.CmdTurn(components.DirDown),
	tcell.KeyLeft:  game.CmdTurn(components.DirLeft),
	tcell.KeyRight: game.CmdTurn(components.DirRight),
}

// translateKey maps a key event to a loop action and, for actionCommand,
// the player command to submit.
func translateKey(ev *tcell.EventKey) (action, game.Command) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit, game.Command{}
	case tcell.KeyEnter:
		return actionRestart, game.Command{}
	case tcell.KeyRune:
		r := ev.Rune()
		switch r {
		case 'q':
			return actionQuit, game.Command{}
		case 'p':
			return actionPause, game.Command{}
		}
		if cmd, ok := runeCommands[r]; ok {
			return actionCommand, cmd
		}
		return actionNone, game.Command{}
	}
	if cmd, ok := keyCommands[ev.Key()]; ok {
		return actionCommand, cmd
	}
	return actionNone, game.Command{}
}

const legend = "arrows/wasd steer  space dash  e immunity  c charge  1/2 stats  z/x/v/u evolve  p pause  q quit"
