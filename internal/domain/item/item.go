// Package item defines the minimal object model the world core needs:
// rechargeable stacks, inscriptions, and equipment-borne curses.
// This package is PURE and must NOT import any infrastructure packages.
package item

import "strings"

// Item represents a stack of identical objects carried or on the ground.
type Item struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Number   int    `json:"number"`   // stack size
	Artifact bool   `json:"artifact"` // unique items get different messages

	// Recharging. Period 0 means the item can never hold a charge timer.
	Timeout int `json:"timeout"` // summed charge timer for the stack
	Period  int `json:"period"`  // turns one unit needs to recharge

	Equipped bool   `json:"equipped"`
	Note     string `json:"note"` // player inscription

	Curses []Curse `json:"curses,omitempty"`
}

// Curse is one curse instance bound to an equipped item.
type Curse struct {
	Name    string `json:"name"`
	Power   int    `json:"power"`   // 0 means the curse slot is empty
	Timeout int    `json:"timeout"` // ticks until the curse fires again
	Period  int    `json:"period"`  // base for the re-rolled duration
}

// CanRecharge reports whether the stack can carry a charge timer at all.
func (it *Item) CanRecharge() bool {
	return it.Period > 0
}

// NumCharging returns how many units of the stack are still recharging.
func (it *Item) NumCharging() int {
	if it.Timeout <= 0 || it.Period <= 0 {
		return 0
	}
	n := (it.Timeout + it.Period - 1) / it.Period
	if n > it.Number {
		n = it.Number
	}
	return n
}

// RechargeTick advances the stack's charge timer by one world tick.
// Each charging unit contributes one point of recharge. It reports
// whether at least one unit finished charging this tick.
func (it *Item) RechargeTick() bool {
	if it.Timeout <= 0 {
		return false
	}
	before := it.NumCharging()
	it.Timeout -= before
	if it.Timeout < 0 {
		it.Timeout = 0
	}
	return it.NumCharging() < before
}

// WantsRechargeNotice reports whether the stack is inscribed with "!!",
// the conventional request to be told when it recharges.
func (it *Item) WantsRechargeNotice() bool {
	return strings.Contains(it.Note, "!!")
}
