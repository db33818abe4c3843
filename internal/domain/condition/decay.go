package condition

// DecayPolicy selects how a condition timer decrements each world tick.
type DecayPolicy int

const (
	// DecayNormal decrements the timer by 1.
	DecayNormal DecayPolicy = iota
	// DecaySkip leaves the timer alone; something else owns its decay.
	DecaySkip
	// DecayConScaled decrements by a constitution-derived amount.
	DecayConScaled
	// DecayFloorAtMortal is DecayConScaled, except a cut at the Mortal
	// Wound grade never decrements through this path.
	DecayFloorAtMortal
	// DecayMirrored decrements by 1 and mirrors the decrement onto the
	// bound monster while it stays in line of sight; otherwise both
	// sides of the condition are cleared.
	DecayMirrored
)

// Policies is the per-kind decay override table. Kinds absent from the
// table decay normally; adding a condition never touches the decay loop.
var Policies = map[Kind]DecayPolicy{
	Food:     DecaySkip, // digestion is handled by the hunger clock
	Cut:      DecayFloorAtMortal,
	Poisoned: DecayConScaled,
	Stun:     DecayConScaled,
	Command:  DecayMirrored,
}

// PolicyFor returns the decay policy for a condition kind.
func PolicyFor(kind Kind) DecayPolicy {
	if p, ok := Policies[kind]; ok {
		return p
	}
	return DecayNormal
}

// adjConFix maps a constitution score (0-17 scale index) to bonus healing.
// Index clamped by the caller contract: constitution is always 0..17.
var adjConFix = [18]int{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 1, 1, 1, 1, 2, 2, 3,
}

// ConDecayAmount returns the per-tick decrement for constitution-scaled
// conditions given the actor's constitution index.
func ConDecayAmount(conIndex int) int {
	return adjConFix[conIndex] + 1
}
