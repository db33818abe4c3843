package sim

import (
	"github.com/philyawj/angband/internal/domain/condition"
	"github.com/philyawj/angband/internal/domain/grid"
)

// MoveCommand steps the player one cell. Bumping a wall is a free
// action; the player keeps their turn.
type MoveCommand struct {
	Dir grid.Loc
}

func (c MoveCommand) Execute(e *Engine) int {
	p := e.player
	next := p.Grid.Sum(c.Dir)

	if e.cave == nil || !e.cave.InBounds(next) || e.cave.IsWall(next) {
		e.msg("There is a wall in the way!")
		return 0
	}

	p.Grid = next
	p.Upkeep.Resting = false
	return e.world.Config.MoveEnergy
}

// RestCommand spends one quiet turn. While resting, the world tick
// skips noise and scent updates, so rest is invisible to trackers.
type RestCommand struct{}

func (RestCommand) Execute(e *Engine) int {
	e.player.Upkeep.Resting = true
	return e.world.Config.MoveEnergy
}

// StairsCommand climbs or descends, queuing a level rebuild.
type StairsCommand struct {
	Down bool
}

func (c StairsCommand) Execute(e *Engine) int {
	p := e.player
	cfg := e.world.Config

	depth := p.Depth
	if c.Down {
		depth += cfg.StairSkip
		if depth > cfg.MaxDepth {
			depth = cfg.MaxDepth
		}
		e.msg("You enter a maze of down staircases.")
	} else {
		depth -= cfg.StairSkip
		if depth < 0 {
			depth = 0
		}
		e.msg("You enter a maze of up staircases.")
	}

	e.scheduleLevelChange(depth, "stairs")
	return cfg.MoveEnergy
}

// EatCommand feeds the player, capping the food clock at its maximum.
type EatCommand struct {
	Value int
}

func (c EatCommand) Execute(e *Engine) int {
	p := e.player
	food := p.TimedValue(condition.Food) + c.Value
	if food > condition.FoodMax {
		food = condition.FoodMax
	}
	p.SetTimed(condition.Food, food)
	e.msg("That tastes good.")
	return e.world.Config.MoveEnergy
}

// RecallCommand toggles word of recall. Reading it twice cancels the
// pending journey.
type RecallCommand struct{}

func (RecallCommand) Execute(e *Engine) int {
	p := e.player

	if p.WordRecall > 0 {
		p.WordRecall = 0
		e.msg("A tension leaves the air around you...")
	} else {
		p.WordRecall = 15 + e.world.RandInt(20)
		e.msg("The air about you becomes charged...")
	}
	return e.world.Config.MoveEnergy
}

// DeepDescentCommand primes the delayed plunge several levels down.
type DeepDescentCommand struct{}

func (DeepDescentCommand) Execute(e *Engine) int {
	p := e.player
	p.DeepDescent = 3 + e.world.RandInt(4)
	e.msg("The floor starts to shake...")
	return e.world.Config.MoveEnergy
}
