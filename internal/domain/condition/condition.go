// Package condition defines timed status effects and their decay rules.
// This package is PURE and must NOT import any infrastructure packages.
package condition

// Kind identifies a timed status effect on an actor.
type Kind string

const (
	Poisoned    Kind = "Poisoned"
	Cut         Kind = "Cut"
	Stun        Kind = "Stun"
	Paralyzed   Kind = "Paralyzed"
	Confused    Kind = "Confused"
	Afraid      Kind = "Afraid"
	Bloodlust   Kind = "Bloodlust"
	Heal        Kind = "Heal"
	BlackBreath Kind = "BlackBreath"
	Food        Kind = "Food"
	CoverTracks Kind = "CoverTracks"
	Command     Kind = "Command"
)

// All lists every condition kind, in decay-processing order.
var All = []Kind{
	Poisoned, Cut, Stun, Paralyzed, Confused, Afraid,
	Bloodlust, Heal, BlackBreath, Food, CoverTracks, Command,
}

// CutGrade ranks the severity of the cut condition.
type CutGrade int

const (
	CutNone CutGrade = iota
	CutGraze
	CutLightCut
	CutBadCut
	CutNastyCut
	CutSevereCut
	CutDeepGash
	CutMortalWound
)

// GradeOfCut maps a cut timer value to its severity grade.
func GradeOfCut(value int) CutGrade {
	switch {
	case value <= 0:
		return CutNone
	case value < 10:
		return CutGraze
	case value < 25:
		return CutLightCut
	case value < 50:
		return CutBadCut
	case value < 100:
		return CutNastyCut
	case value < 200:
		return CutSevereCut
	case value < 1000:
		return CutDeepGash
	default:
		return CutMortalWound
	}
}

// StunKnockoutMin is the stun timer value at and above which the actor
// is knocked out and cannot act.
const StunKnockoutMin = 100

// FoodGrade ranks the fullness of the food clock.
type FoodGrade int

const (
	FoodStarving FoodGrade = iota
	FoodFaint
	FoodHungry
	FoodFed
	FoodFull
)

// Food clock thresholds.
const (
	FoodStarveMax = 100  // below this, taking starvation damage
	FoodFaintMax  = 500  // below this, fainting spells
	FoodHungryMax = 2000 // below this, hungry
	FoodFullMin   = 8000 // at or above this, gorged
	FoodMax       = 10000
)

// GradeOfFood maps a food timer value to its fullness grade.
func GradeOfFood(value int) FoodGrade {
	switch {
	case value < FoodStarveMax:
		return FoodStarving
	case value < FoodFaintMax:
		return FoodFaint
	case value < FoodHungryMax:
		return FoodHungry
	case value < FoodFullMin:
		return FoodFed
	default:
		return FoodFull
	}
}
