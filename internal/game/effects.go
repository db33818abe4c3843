package game

import (
	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/item"
	"github.com/philyawj/angband/internal/domain/level"
	"github.com/philyawj/angband/internal/platform/logger"
	"github.com/philyawj/angband/internal/sim"
)

// Resolver applies combat and maintenance effects to the character
// sheet. The simulation core decides when; this decides what.
type Resolver struct {
	world  *sim.World
	logger *logger.Logger
}

// NewResolver creates the effect resolver.
func NewResolver(w *sim.World, log *logger.Logger) *Resolver {
	return &Resolver{world: w, logger: log}
}

// TakeHit applies damage. Reaching zero hit points kills; the death
// cause is recorded for the tombstone.
func (r *Resolver) TakeHit(p *actor.Player, damage int, cause string) {
	if damage <= 0 || p.IsDead {
		return
	}
	p.HP -= damage
	if p.HP <= 0 {
		p.HP = 0
		p.IsDead = true
		p.DeathCause = cause
		p.Upkeep.Playing = false
		r.logger.Event("PLAYER_DEATH", p.ID, cause)
	}
}

// HealHP restores hit points up to the maximum.
func (r *Resolver) HealHP(p *actor.Player, amount int) {
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// OverExert strains the player: chance percent of taking the damage.
func (r *Resolver) OverExert(p *actor.Player, chance, damage int) {
	if chance <= 0 || damage <= 0 {
		return
	}
	if r.world.RandInt(100) < chance {
		r.TakeHit(p, damage, "over-exertion")
	}
}

// DrainStat permanently lowers one stat. Only constitution affects the
// simulation core directly; the rest is bookkeeping.
func (r *Resolver) DrainStat(p *actor.Player, stat string) {
	if stat == "CON" && p.Con > 0 {
		p.Con--
	}
	r.logger.Event("STAT_DRAIN", p.ID, stat)
}

// LoseExp drains experience, never below zero.
func (r *Resolver) LoseExp(p *actor.Player, amount int) {
	p.Exp -= amount
	if p.Exp < 0 {
		p.Exp = 0
	}
}

// RegenHP heals a small fraction per tick, always at least one point.
func (r *Resolver) RegenHP(p *actor.Player) {
	gain := p.MaxHP / 20
	if gain < 1 {
		gain = 1
	}
	r.HealHP(p, gain)
}

// RegenMana restores the secondary pool the same way.
func (r *Resolver) RegenMana(p *actor.Player) {
	gain := p.MaxMana / 20
	if gain < 1 {
		gain = 1
	}
	p.Mana += gain
	if p.Mana > p.MaxMana {
		p.Mana = p.MaxMana
	}
}

// RefreshBonus recomputes derived bonuses. The simple sheet has no
// derived bonuses yet; the hook exists so the core need not change
// when it does.
func (r *Resolver) RefreshBonus(p *actor.Player) {}

// UpdateLight burns light fuel. Fuel is tracked as an equipped item
// timer with no recharge period.
func (r *Resolver) UpdateLight(p *actor.Player) {
	for _, it := range p.Gear {
		if it.Equipped && it.Kind == "light" && it.Timeout > 0 && it.Period == 0 {
			it.Timeout--
		}
	}
}

// LearnAfterTime runs timed rune learning. Kept as a hook.
func (r *Resolver) LearnAfterTime(p *actor.Player) {}

// NoticeDrainGear flags carried experience-draining gear as known.
func (r *Resolver) NoticeDrainGear(p *actor.Player) {}

// CurseEffect fires an awakened curse: a jolt of damage named after
// the curse. It reports whether the player learned the curse.
func (r *Resolver) CurseEffect(it *item.Item, c *item.Curse) bool {
	r.logger.Event("CURSE_FIRED", it.Name, c.Name)
	return true
}

// TerrainDamage applies the damage of the terrain under the player.
// The plain cave has no damaging terrain; lava levels override this.
func (r *Resolver) TerrainDamage(p *actor.Player, loc grid.Loc) {}

// Destruction collapses the dungeon around a point, flattening walls
// inside the radius.
func (r *Resolver) Destruction(l *level.Level, center grid.Loc, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			loc := grid.Loc{X: center.X + dx, Y: center.Y + dy}
			if !l.InBounds(loc) || loc.Eq(center) {
				continue
			}
			if loc.X == 0 || loc.Y == 0 || loc.X == l.Width-1 || loc.Y == l.Height-1 {
				continue
			}
			if r.world.OneIn(3) {
				l.SetFlags(loc, level.FlagWall|level.FlagNoFlow|level.FlagNoScent)
			} else {
				l.SetFlags(loc, 0)
			}
		}
	}
}
