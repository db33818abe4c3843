package sim

import (
	"time"

	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/condition"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/level"
	"github.com/philyawj/angband/internal/events"
	"github.com/philyawj/angband/internal/platform/logger"
	"github.com/philyawj/angband/internal/platform/metrics"
)

// Collaborators bundles the external services the engine drives but
// does not own.
type Collaborators struct {
	Monsters MonsterService
	Commands CommandQueue
	Effects  Effects
	Levels   LevelBuilder
}

// Engine is the single-threaded game core. It owns the world clock and
// the round loop; everything else is a collaborator. There is exactly
// one logical thread of control: callers push commands and then give
// the engine the thread by calling Run.
type Engine struct {
	world  *World
	player *actor.Player
	cave   *level.Level

	monsters MonsterService
	commands CommandQueue
	effects  Effects
	levels   LevelBuilder

	eventLog *events.EventLog
	logger   *logger.Logger

	sched      PlayerScheduler
	deathNoted bool
}

// NewEngine wires the simulation core. The starting level may be nil;
// the first round then begins with a level build.
func NewEngine(w *World, p *actor.Player, start *level.Level, c Collaborators,
	eventLog *events.EventLog, log *logger.Logger) *Engine {
	e := &Engine{
		world:    w,
		player:   p,
		cave:     start,
		monsters: c.Monsters,
		commands: c.Commands,
		effects:  c.Effects,
		levels:   c.Levels,
		eventLog: eventLog,
		logger:   log,
	}
	if start == nil {
		p.Upkeep.GenerateLevel = true
		p.Upkeep.NextDepth = p.Depth
	}
	return e
}

// World exposes the world clock and registry to read-only callers.
func (e *Engine) World() *World { return e.world }

// Player returns the player character.
func (e *Engine) Player() *actor.Player { return e.player }

// Level returns the active level, nil before the first build.
func (e *Engine) Level() *level.Level { return e.cave }

// Scheduler returns the player scheduler state for inspection.
func (e *Engine) Scheduler() PlayerScheduler { return e.sched }

// EventLog returns the event stream the engine appends to.
func (e *Engine) EventLog() *events.EventLog { return e.eventLog }

// Run drives rounds until the command queue runs dry, the player dies,
// or the stop signal fires. It is re-entrant: all in-progress state
// lives on the world and the player, never on this call stack, so the
// caller waits for input and calls Run again.
func (e *Engine) Run() {
	start := time.Now()
	defer func() {
		metrics.Get().RecordRound(time.Since(start))
	}()

	w := e.world
	p := e.player

	// A brand new game has no level yet; build before anyone acts.
	if p.Upkeep.GenerateLevel && e.cave == nil {
		e.changeLevel()
		if !p.Upkeep.Playing {
			return
		}
	}

	if !e.playerTurns() {
		e.finishRound()
		return
	}

	// Spend carried-over energy before the world moves on. Monsters
	// holding more energy than the player act first.
	for p.Energy >= w.Config.MoveEnergy {
		e.monsters.Process(p.Energy + 1)
		if p.IsDead || !p.Upkeep.Playing || p.Upkeep.GenerateLevel {
			break
		}
		if !e.playerTurns() {
			e.finishRound()
			return
		}
	}

	for {
		if p.IsDead || !p.Upkeep.Playing {
			e.finishRound()
			return
		}

		if !p.Upkeep.GenerateLevel {
			// Every remaining monster acts once, then the acted flags
			// re-arm for the next energy grant.
			e.monsters.Process(0)
			e.monsters.ResetReady(e.cave)
			if p.IsDead || !p.Upkeep.Playing {
				e.finishRound()
				return
			}

			if w.Turn%10 == 0 && !p.Upkeep.GenerateLevel {
				if e.ProcessWorld(e.cave) == ActorDied {
					e.finishRound()
					return
				}
				if !p.Upkeep.Playing {
					e.finishRound()
					return
				}
			}

			p.Energy += TurnEnergy(p.Speed, w.Config.MoveEnergy)
			w.Turn++
		}

		if p.Upkeep.GenerateLevel {
			e.changeLevel()
			if !p.Upkeep.Playing {
				e.finishRound()
				return
			}
		}

		for p.Energy >= w.Config.MoveEnergy {
			e.monsters.Process(p.Energy + 1)
			if p.IsDead || !p.Upkeep.Playing || p.Upkeep.GenerateLevel {
				break
			}
			if !e.playerTurns() {
				e.finishRound()
				return
			}
		}
	}
}

// playerTurns lets the player act until a turn is spent. It reports
// false when control must return to the caller for more input; a dead
// or stopped player reports true and lets the round checks handle it.
func (e *Engine) playerTurns() bool {
	if !e.player.Upkeep.Playing {
		return true
	}
	e.processPlayer()
	if e.sched.State == StateDone {
		return true
	}
	switch e.sched.Reason {
	case InterruptNoCommand:
		return false
	default:
		return true
	}
}

// finishRound settles end-of-control bookkeeping before handing the
// thread back to the caller.
func (e *Engine) finishRound() {
	p := e.player
	if p.IsDead && !e.deathNoted {
		e.deathNoted = true
		e.logger.Event(string(events.EventTypeActorDied), p.ID, p.DeathCause)
		e.emit(events.EventTypeActorDied, map[string]any{
			"cause": p.DeathCause,
			"turn":  e.world.Turn,
		})
	}
}

// scheduleLevelChange queues a rebuild at the target depth; the round
// loop performs the handoff at its next safe point.
func (e *Engine) scheduleLevelChange(depth int, reason string) {
	p := e.player
	from := p.Depth
	p.Upkeep.GenerateLevel = true
	p.Upkeep.NextDepth = depth
	e.emit(events.EventTypeLevelChange, events.LevelChangePayload{
		FromDepth: from,
		ToDepth:   depth,
		Reason:    reason,
	})
}

// changeLevel tears down the active level and installs the next one.
func (e *Engine) changeLevel() {
	p := e.player

	if e.cave != nil {
		e.onLeaveLevel()
		e.levels.Teardown(e.cave)
	}

	next, err := e.levels.BuildNext(p, p.Upkeep.NextDepth)
	if err != nil {
		e.logger.Error("level build at depth %d failed: %v", p.Upkeep.NextDepth, err)
		p.Upkeep.Playing = false
		return
	}
	if e.world.Registry.ByName(next.Name) == nil {
		if err := e.world.Registry.Register(next); err != nil {
			e.logger.Error("level registration failed: %v", err)
			p.Upkeep.Playing = false
			return
		}
	}

	e.cave = next
	p.Depth = next.Depth
	p.Upkeep.GenerateLevel = false
	e.onNewLevel()
}

// onLeaveLevel drops state that must not follow the player downstairs.
func (e *Engine) onLeaveLevel() {
	p := e.player
	if mon, ok := e.monsters.Commanded(); ok {
		mon.ClearTimed()
	}
	p.SetTimed(condition.Command, 0)
}

// onNewLevel settles the player onto a freshly built level.
func (e *Engine) onNewLevel() {
	p := e.player

	if p.Depth > p.MaxDepth {
		p.MaxDepth = p.Depth
		// A deeper floor becomes the new recall point.
		p.RecallDepth = p.Depth
	}
	// Arriving exhausted would hand the whole first round to the
	// monsters; everyone gets at least one move on arrival.
	if p.Energy < e.world.Config.MoveEnergy {
		p.Energy = e.world.Config.MoveEnergy
	}

	e.playAmbientSound()
	e.disturb()
	e.logger.Info("entered %s (depth %d) on turn %d", e.cave.Name, e.cave.Depth, e.world.Turn)
}

// emit appends a typed event to the log. The core never blocks on the
// presentation side.
func (e *Engine) emit(t events.EventType, payload any) {
	e.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      t,
		ActorID:   e.player.ID,
		Turn:      e.world.Turn,
		Payload:   payload,
	})
}

// msg sends player-visible text.
func (e *Engine) msg(text string) {
	e.emit(events.EventTypeMessage, events.MessagePayload{Text: text})
}

// sound fires a sound cue.
func (e *Engine) sound(cue string) {
	e.emit(events.EventTypeSound, events.SoundPayload{Cue: cue})
}

// disturb breaks rest and any repeated command.
func (e *Engine) disturb() {
	e.player.Upkeep.Resting = false
	e.emit(events.EventTypeDisturb, nil)
}

// redraw hints that one map cell needs re-rendering.
func (e *Engine) redraw(loc grid.Loc) {
	e.emit(events.EventTypeRedraw, events.RedrawPayload{X: loc.X, Y: loc.Y})
}
