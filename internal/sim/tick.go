package sim

import (
	"time"

	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/condition"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/item"
	"github.com/philyawj/angband/internal/domain/level"
	"github.com/philyawj/angband/internal/events"
	"github.com/philyawj/angband/internal/platform/metrics"
)

// compactMargin is the slack kept between the live monster count and
// the population ceiling before eviction starts.
const compactMargin = 32

// ProcessWorld runs the once-every-ten-turns world tick on the active
// level. Steps run in a fixed order; any hazard that kills the player
// aborts the remaining steps and reports ActorDied to the round loop.
func (e *Engine) ProcessWorld(c *level.Level) Outcome {
	start := time.Now()
	defer func() {
		metrics.Get().RecordWorldTick(time.Since(start))
	}()

	w := e.world
	p := e.player

	e.emit(events.EventTypeTimeTick, events.TimeTickPayload{
		Turn:     w.Turn,
		DayCount: w.DayCount,
		Daytime:  w.IsDaytime(),
	})

	e.maintainPopulation(c)
	e.processCalendar(c)

	// Occasional wandering monster.
	if w.OneIn(w.Config.AllocMonsterChance) {
		e.monsters.SpawnNearby(c, p.Grid, w.Config.MaxSight+5)
	}

	if e.applyHazards() == ActorDied {
		return ActorDied
	}
	if e.digest() == ActorDied {
		return ActorDied
	}

	e.decreaseTimeouts()

	if p.HP < p.MaxHP {
		e.effects.RegenHP(p)
	}
	if p.Mana < p.MaxMana {
		e.effects.RegenMana(p)
	}

	e.effects.UpdateLight(p)

	// Resting leaves the stealth fields untouched; rest must be a true
	// no-op for detectability.
	if !p.Upkeep.Resting {
		step := 1
		if p.TimedValue(condition.CoverTracks) > 0 {
			step = w.Config.CoverTracksStep
		}
		MakeNoise(c, p, step)
		UpdateScent(c, p, p.TimedValue(condition.CoverTracks) == 0)
	}

	e.passiveItemEffects()
	e.rechargeObjects(c)
	e.decayTraps(c)
	e.scriptedTravel()

	return Continued
}

// maintainPopulation keeps the monster list inside its ceiling and
// squeezes out fragmentation from deleted slots.
func (e *Engine) maintainPopulation(c *level.Level) {
	max := e.world.Config.LevelMonsterMax
	if e.monsters.Count(c)+compactMargin > max {
		e.monsters.Compact(c, compactMargin)
	}
	if e.monsters.Count(c)+compactMargin < e.monsters.Capacity(c) {
		e.monsters.Compact(c, 0)
	}
}

// processCalendar handles ambient sound, day/night transitions on the
// surface, and the day counter underground.
func (e *Engine) processCalendar(c *level.Level) {
	w := e.world
	p := e.player
	dayTurns := w.DayTurns()

	if w.Turn%(dayTurns/4) == 0 {
		e.playAmbientSound()
	}

	if p.OnSurface() {
		if w.Turn%(dayTurns/2) == 0 {
			dawn := w.Turn%dayTurns == 0
			if dawn {
				e.msg("The sun has risen.")
			} else {
				e.msg("The sun has fallen.")
			}
			e.levels.Illuminate(c, dawn)
			e.emit(events.EventTypeDayNight, events.DayNightPayload{Dawn: dawn})
		}
	} else if w.Turn%(10*int64(w.Config.StoreTurns)) == 0 {
		w.DayCount++
	}

	// Unlit characters care about the light level itself.
	if p.HasTrait(actor.TraitUnlight) {
		e.effects.RefreshBonus(p)
	}
}

// playAmbientSound fires the background sound cue for the current
// location and time of day.
func (e *Engine) playAmbientSound() {
	p := e.player
	var cue string
	switch {
	case p.Depth == 0 && e.world.IsDaytime():
		cue = "ambient_day"
	case p.Depth == 0:
		cue = "ambient_night"
	case p.Depth <= 20:
		cue = "ambient_dungeon1"
	case p.Depth <= 40:
		cue = "ambient_dungeon2"
	case p.Depth <= 60:
		cue = "ambient_dungeon3"
	case p.Depth <= 80:
		cue = "ambient_dungeon4"
	default:
		cue = "ambient_dungeon5"
	}
	e.sound(cue)
}

// applyHazards runs the damage-over-time conditions. Each can kill, and
// a death stops the tick on the spot.
func (e *Engine) applyHazards() Outcome {
	w := e.world
	p := e.player

	if p.TimedValue(condition.Poisoned) > 0 {
		e.effects.TakeHit(p, 1, "poison")
		if p.IsDead {
			return ActorDied
		}
	}

	if p.TimedValue(condition.Cut) > 0 {
		var dmg int
		switch {
		case p.HasTrait(actor.TraitRock):
			dmg = 0
		case p.CutGrade() >= condition.CutDeepGash:
			dmg = 3
		case p.CutGrade() == condition.CutSevereCut:
			dmg = 2
		default:
			dmg = 1
		}
		if dmg > 0 {
			e.effects.TakeHit(p, dmg, "a fatal wound")
			if p.IsDead {
				return ActorDied
			}
		}
	}

	if bl := p.TimedValue(condition.Bloodlust); bl > 0 {
		chance := 10 - bl
		if chance < 0 {
			chance = 0
		}
		e.effects.OverExert(p, chance, p.HP/10)
		if p.IsDead {
			return ActorDied
		}
	}

	if p.TimedValue(condition.Heal) > 0 {
		e.effects.HealHP(p, 30)
	}

	if p.TimedValue(condition.BlackBreath) > 0 {
		if w.OneIn(2) {
			e.msg("The Black Breath sickens you.")
			e.effects.DrainStat(p, "CON")
		}
		if w.OneIn(2) {
			e.msg("The Black Breath saps your strength.")
			e.effects.DrainStat(p, "STR")
		}
		if w.OneIn(2) {
			drain := 100 + (p.Exp/100)*w.Config.LifeDrainPercent
			e.msg("The Black Breath dims your life force.")
			e.effects.LoseExp(p, drain)
		}
	}

	if p.FoodGrade() == condition.FoodStarving {
		dmg := (condition.FoodStarveMax - p.TimedValue(condition.Food)) / 10
		e.effects.TakeHit(p, dmg, "starvation")
		if p.IsDead {
			return ActorDied
		}
	}

	return Continued
}

// digest advances the hunger clock. The normal rate derives from the
// round energy scaled against the food value; gorged characters burn a
// fast fixed amount every tick until they drop back under the limit.
func (e *Engine) digest() Outcome {
	w := e.world
	p := e.player

	if p.FoodGrade() == condition.FoodFull {
		p.DecTimed(condition.Food, 5000/w.Config.FoodValue)
	} else if w.Turn%100 == 0 {
		amount := TurnEnergy(p.Speed, w.Config.MoveEnergy) * 100 / w.Config.FoodValue
		if p.HasTrait(actor.TraitRegeneration) {
			amount *= 2
		}
		if p.HasTrait(actor.TraitSlowDigestion) {
			amount /= 2
		}
		if amount < 1 {
			amount = 1
		}
		p.DecTimed(condition.Food, amount)
	}

	// A running healing spell burns food fast, and starves itself out
	// once the stomach runs low.
	if p.TimedValue(condition.Heal) > 0 {
		p.DecTimed(condition.Food, 8*w.Config.FoodValue)
		if p.TimedValue(condition.Food) < condition.FoodHungryMax {
			p.SetTimed(condition.Heal, 0)
		}
	}

	// Fainting spells from hunger.
	if p.FoodGrade() == condition.FoodFaint &&
		p.TimedValue(condition.Paralyzed) == 0 && w.OneIn(10) {
		e.msg("You faint from the lack of food.")
		e.disturb()
		p.IncTimed(condition.Paralyzed, 1+w.RandInt(5))
	}

	if p.IsDead {
		return ActorDied
	}
	return Continued
}

// decreaseTimeouts ages every timed condition under its decay policy,
// then ages equipment curses independently.
func (e *Engine) decreaseTimeouts() {
	w := e.world
	p := e.player
	adjust := condition.ConDecayAmount(p.Con)

	for _, kind := range condition.All {
		if p.TimedValue(kind) == 0 {
			continue
		}

		decr := 1
		switch condition.PolicyFor(kind) {
		case condition.DecaySkip:
			continue
		case condition.DecayConScaled:
			decr = adjust
		case condition.DecayFloorAtMortal:
			if p.CutGrade() == condition.CutMortalWound || p.HasTrait(actor.TraitRock) {
				continue
			}
			decr = adjust
		case condition.DecayMirrored:
			mon, ok := e.monsters.Commanded()
			if !ok || e.cave == nil || !e.cave.LOS(p.Grid, mon.Grid()) {
				// The bond breaks when sight does.
				if ok {
					mon.ClearTimed()
				}
				p.SetTimed(kind, 0)
				continue
			}
			mon.DecTimed(decr)
		}

		p.DecTimed(kind, decr)
	}

	for _, it := range p.Gear {
		if !it.Equipped {
			continue
		}
		for i := range it.Curses {
			cu := &it.Curses[i]
			if cu.Power == 0 {
				continue
			}
			cu.Timeout--
			if cu.Timeout > 0 {
				continue
			}
			e.effects.CurseEffect(it, cu)
			cu.Timeout = w.RandInt(cu.Period) + 1
		}
	}
}

// passiveItemEffects runs experience drain from cursed gear and the
// slow-burn item knowledge that only time reveals.
func (e *Engine) passiveItemEffects() {
	w := e.world
	p := e.player

	if p.HasTrait(actor.TraitDrainExp) {
		if p.Exp > 0 && w.OneIn(10) {
			drain := (w.DamRoll(10, 6) + p.Exp/100*w.Config.LifeDrainPercent) / 10
			e.effects.LoseExp(p, drain)
		}
		e.effects.NoticeDrainGear(p)
	}

	if w.Turn%100 == 0 {
		e.effects.LearnAfterTime(p)
	}
}

// rechargeObjects sweeps every rechargeable stack the player carries
// and every one on the floor, advancing charge timers one tick.
func (e *Engine) rechargeObjects(c *level.Level) {
	p := e.player

	for _, it := range p.Gear {
		if !it.CanRecharge() {
			continue
		}
		if it.Equipped {
			if it.RechargeTick() && it.Timeout == 0 {
				e.rechargedNotice(it, true)
			}
			continue
		}
		// For an inventory stack, a fully discharged stack regaining
		// its first charged unit is worth a note too.
		discharged := it.NumCharging() == it.Number
		if it.RechargeTick() {
			if it.Timeout == 0 {
				e.rechargedNotice(it, true)
			} else if discharged {
				e.rechargedNotice(it, false)
			}
		}
	}

	for _, it := range c.Objects {
		if it.CanRecharge() {
			it.RechargeTick()
		}
	}
}

// rechargedNotice tells the player about a finished recharge, but only
// when they asked (the "!!" inscription) or the server is configured
// to always notify.
func (e *Engine) rechargedNotice(it *item.Item, all bool) {
	if !e.world.Config.NotifyRecharge && !it.WantsRechargeNotice() {
		return
	}

	e.disturb()
	switch {
	case it.Artifact:
		e.msg("The " + it.Name + " has recharged.")
	case it.Number > 1 && all:
		e.msg("Your " + it.Name + "s have all recharged.")
	case it.Number > 1:
		e.msg("One of your " + it.Name + "s has recharged.")
	default:
		e.msg("Your " + it.Name + " has recharged.")
	}
	e.emit(events.EventTypeRecharge, map[string]any{"item": it.Name, "all": all})
}

// decayTraps cools down every triggered trap on the level and redraws
// cells whose trap just re-armed if the player can see them.
func (e *Engine) decayTraps(c *level.Level) {
	c.EachTrapCell(func(loc grid.Loc, traps []*level.Trap) {
		rearmed := false
		for _, t := range traps {
			if t.Timeout > 0 {
				t.Timeout--
				if t.Timeout == 0 {
					rearmed = true
				}
			}
		}
		if rearmed && c.IsSeen(loc) {
			e.redraw(loc)
		}
	})
}

// scriptedTravel counts down word of recall and deep descent and fires
// them at zero.
func (e *Engine) scriptedTravel() {
	w := e.world
	p := e.player

	if p.WordRecall > 0 {
		p.WordRecall--
		if p.WordRecall == 0 {
			e.disturb()
			e.commands.Flush()
			if p.Depth > 0 {
				e.msg("You feel yourself yanked upwards!")
				e.scheduleLevelChange(0, "recall")
			} else {
				if p.RecallDepth == 0 {
					p.RecallDepth = p.MaxDepth
					if p.RecallDepth < 1 {
						p.RecallDepth = 1
					}
				}
				e.msg("You feel yourself yanked downwards!")
				e.scheduleLevelChange(p.RecallDepth, "recall")
			}
		}
	}

	if p.DeepDescent > 0 {
		p.DeepDescent--
		if p.DeepDescent == 0 {
			target := p.MaxDepth + 4/w.Config.StairSkip + 1
			if target > w.Config.MaxDepth {
				target = w.Config.MaxDepth
			}
			e.disturb()
			if target > p.Depth {
				e.msg("The floor opens beneath you!")
				e.scheduleLevelChange(target, "deep descent")
			} else {
				// Nowhere deeper to go; the magic discharges violently.
				e.msg("The air around you starts to swirl...")
				if e.cave != nil {
					e.effects.Destruction(e.cave, p.Grid, 5)
				}
			}
		}
	}
}
