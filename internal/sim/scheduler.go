package sim

import "github.com/philyawj/angband/internal/domain/condition"

// SchedulerState tracks where the player turn scheduler stands. The
// state machine exists so the re-entrant loop can report WHY it handed
// control back instead of leaving callers to infer it from flags.
type SchedulerState int

const (
	StateAwaitingInput SchedulerState = iota
	StateActing
	StateInterrupted
	StateDone
)

func (s SchedulerState) String() string {
	switch s {
	case StateAwaitingInput:
		return "awaiting_input"
	case StateActing:
		return "acting"
	case StateInterrupted:
		return "interrupted"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// InterruptReason says why the scheduler was interrupted.
type InterruptReason int

const (
	InterruptNone InterruptReason = iota
	// InterruptNoCommand means the queue ran dry; the caller must wait
	// for player input and re-enter the loop.
	InterruptNoCommand
	// InterruptDeath means the player died mid-round.
	InterruptDeath
	// InterruptLevelChange means a level rebuild is pending.
	InterruptLevelChange
	// InterruptStopped means the session stop signal fired.
	InterruptStopped
)

// PlayerScheduler is the player half of the round loop.
type PlayerScheduler struct {
	State  SchedulerState
	Reason InterruptReason
}

func (s *PlayerScheduler) interrupt(reason InterruptReason) {
	s.State = StateInterrupted
	s.Reason = reason
}

// processPlayer runs queued commands until one costs energy or the
// round must be interrupted. Free actions loop straight back to the
// queue without giving monsters a turn.
func (e *Engine) processPlayer() {
	p := e.player
	s := &e.sched
	s.State = StateAwaitingInput
	s.Reason = InterruptNone

	for {
		p.Upkeep.EnergyUse = 0

		// A helpless player sleeps through the turn.
		if p.TimedValue(condition.Paralyzed) > 0 ||
			p.TimedValue(condition.Stun) >= condition.StunKnockoutMin {
			e.commands.Push(SleepCommand{})
		}

		if !p.Upkeep.Playing {
			s.interrupt(InterruptStopped)
			return
		}
		cmd, ok := e.commands.Pop()
		if !ok {
			s.interrupt(InterruptNoCommand)
			return
		}

		s.State = StateActing
		p.Upkeep.EnergyUse = cmd.Execute(e)
		e.processPlayerCleanup()

		// A spent turn always completes, even when the command also
		// killed the player or queued a level rebuild; the round loop
		// notices those right after.
		switch {
		case p.Upkeep.EnergyUse != 0:
			s.State = StateDone
			return
		case p.IsDead:
			s.interrupt(InterruptDeath)
			return
		case p.Upkeep.GenerateLevel:
			s.interrupt(InterruptLevelChange)
			return
		case !p.Upkeep.Playing:
			s.interrupt(InterruptStopped)
			return
		}

		s.State = StateAwaitingInput
	}
}

// processPlayerCleanup settles the consequences of the last command:
// energy is deducted, hostile terrain bites, and one-command monster
// visibility flags are dropped. Runs exactly once per executed command;
// the scheduler reads EnergyUse afterwards to classify the exit, and
// the next pass through the loop resets it before popping again.
func (e *Engine) processPlayerCleanup() {
	p := e.player

	if p.Upkeep.EnergyUse <= 0 {
		return
	}

	p.Energy -= p.Upkeep.EnergyUse
	p.TotalEnergy += int64(p.Upkeep.EnergyUse)

	e.effects.TerrainDamage(p, p.Grid)
	if e.cave != nil {
		e.monsters.ClearTransient(e.cave)
	}
}
