package game

import (
	"github.com/pthm-cable/serpent/components"
	"github.com/pthm-cable/serpent/systems"
	"github.com/pthm-cable/serpent/telemetry"
)

// CommandKind identifies a player command.
type CommandKind uint8

const (
	CommandTurn CommandKind = iota
	CommandDash
	CommandSpecial
	CommandCharge
	CommandUpgradeStat
	CommandEvolve
)

// Command is one player input, applied at the start of the next tick.
type Command struct {
	Kind CommandKind
	Dir  components.Direction
	Stat components.Stat
	Form components.Form
}

// CmdTurn steers the player. Reversing onto the body is allowed.
func CmdTurn(dir components.Direction) Command { return Command{Kind: CommandTurn, Dir: dir} }

// CmdDash starts or stops a dash.
func CmdDash() Command { return Command{Kind: CommandDash} }

// CmdSpecial activates the TANK one-shot immunity.
func CmdSpecial() Command { return Command{Kind: CommandSpecial} }

// CmdCharge starts the boss-fight charge attack.
func CmdCharge() Command { return Command{Kind: CommandCharge} }

// CmdUpgradeStat spends a stat point.
func CmdUpgradeStat(stat components.Stat) Command {
	return Command{Kind: CommandUpgradeStat, Stat: stat}
}

// CmdEvolve spends an evolution point on form.
func CmdEvolve(form components.Form) Command { return Command{Kind: CommandEvolve, Form: form} }

// Submit queues a command for the next tick.
func (g *Game) Submit(c Command) {
	g.commands = append(g.commands, c)
}

// applyCommands applies queued commands to the player in submission order.
// Commands the player cannot perform are dropped.
func (g *Game) applyCommands() {
	cmds := g.commands
	g.commands = g.commands[:0]

	p, ok := g.playerRef()
	if !ok || !p.Agent.Alive {
		return
	}
	for _, c := range cmds {
		if !g.apply(p, c) {
			g.log.Debug("command rejected", "tick", g.tick, "kind", c.Kind)
		}
	}
}

func (g *Game) apply(p systems.AgentRef, c Command) bool {
	cfg := g.cfg
	switch c.Kind {
	case CommandTurn:
		if int(c.Dir) >= len(components.Directions) {
			return false
		}
		p.Agent.Direction = c.Dir
		return true
	case CommandDash:
		systems.ToggleDash(cfg, p)
		return true
	case CommandSpecial:
		return g.mode.Progression() && systems.ActivateTankImmunity(cfg, p)
	case CommandCharge:
		return g.mode == ModeBoss && systems.StartCharge(cfg, p)
	case CommandUpgradeStat:
		return g.mode.Progression() && systems.UpgradeStat(cfg, p.Progress, c.Stat)
	case CommandEvolve:
		if !g.mode.Progression() || !systems.Evolve(cfg, p, c.Form) {
			return false
		}
		g.emit(telemetry.NewEvolveEvent(g.tick, p.Agent.ID, p.Agent.Kind, c.Form))
		return true
	}
	return false
}
