// Package actor defines the player character state the world core owns.
// Monster bookkeeping lives behind the population service; this package
// is PURE and must NOT import any infrastructure packages.
package actor

import (
	"github.com/philyawj/angband/internal/domain/condition"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/item"
)

// TraitID identifies an innate or equipment-derived passive ability.
type TraitID string

const (
	TraitRegeneration  TraitID = "Regeneration"  // faster healing, double food cost
	TraitSlowDigestion TraitID = "SlowDigestion" // half food cost
	TraitRock          TraitID = "Rock"          // cuts neither bleed nor close
	TraitUnlight       TraitID = "Unlight"       // bonuses shift with light level
	TraitDrainExp      TraitID = "DrainExp"      // carried item leaks experience
)

// Upkeep carries the scheduler bookkeeping that must survive a return
// to the caller while waiting for input. Nothing here lives on a call
// stack; the loop is re-entrant across input waits.
type Upkeep struct {
	Playing       bool `json:"playing"`        // false once the stop signal fires
	EnergyUse     int  `json:"energy_use"`     // energy consumed by the last command
	GenerateLevel bool `json:"generate_level"` // a level rebuild is pending
	NextDepth     int  `json:"next_depth"`     // target depth for the rebuild
	Resting       bool `json:"resting"`        // suppresses noise/scent updates
}

// Player is the player character.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Grid        grid.Loc `json:"grid"`
	Depth       int      `json:"depth"`
	MaxDepth    int      `json:"max_depth"`
	RecallDepth int      `json:"recall_depth"`

	// Speed is a 0..199 index into the energy table; 110 is normal.
	Speed       int   `json:"speed"`
	Energy      int   `json:"energy"`
	TotalEnergy int64 `json:"total_energy"` // lifetime energy spent

	HP      int `json:"hp"`
	MaxHP   int `json:"max_hp"`
	Mana    int `json:"mana"`
	MaxMana int `json:"max_mana"`
	Exp     int `json:"exp"`
	Con     int `json:"con"` // constitution index, 0..17

	Timed  map[condition.Kind]int `json:"timed"` // condition -> remaining duration
	Traits []TraitID              `json:"traits"`

	// Delayed scripted events.
	WordRecall  int `json:"word_recall"`  // ticks until recall fires; 0 = inactive
	DeepDescent int `json:"deep_descent"` // ticks until descent fires; 0 = inactive

	Gear []*item.Item `json:"gear"`

	IsDead     bool   `json:"is_dead"`
	DeathCause string `json:"death_cause,omitempty"`

	Upkeep Upkeep `json:"upkeep"`
}

// NewPlayer creates a fresh player at the surface with default vitals.
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Speed:  110,
		HP:     20,
		MaxHP:  20,
		Con:    10,
		Timed:  map[condition.Kind]int{condition.Food: 6000},
		Upkeep: Upkeep{Playing: true},
	}
}

// HasTrait reports whether the player has the given passive ability.
func (p *Player) HasTrait(trait TraitID) bool {
	for _, t := range p.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// TimedValue returns the remaining duration of a condition, 0 if inactive.
func (p *Player) TimedValue(kind condition.Kind) int {
	return p.Timed[kind]
}

// SetTimed sets a condition timer, removing it at zero or below.
func (p *Player) SetTimed(kind condition.Kind, value int) {
	if value <= 0 {
		delete(p.Timed, kind)
		return
	}
	p.Timed[kind] = value
}

// DecTimed lowers a condition timer, clamping at zero. It reports
// whether the condition just ran out.
func (p *Player) DecTimed(kind condition.Kind, amount int) bool {
	cur, ok := p.Timed[kind]
	if !ok || amount <= 0 {
		return false
	}
	next := cur - amount
	p.SetTimed(kind, next)
	return next <= 0
}

// IncTimed raises a condition timer.
func (p *Player) IncTimed(kind condition.Kind, amount int) {
	if amount <= 0 {
		return
	}
	p.SetTimed(kind, p.Timed[kind]+amount)
}

// CutGrade returns the current severity of the cut condition.
func (p *Player) CutGrade() condition.CutGrade {
	return condition.GradeOfCut(p.Timed[condition.Cut])
}

// FoodGrade returns the current fullness of the food clock.
func (p *Player) FoodGrade() condition.FoodGrade {
	return condition.GradeOfFood(p.Timed[condition.Food])
}

// OnSurface reports whether the player is on the surface level.
func (p *Player) OnSurface() bool {
	return p.Depth == 0
}
