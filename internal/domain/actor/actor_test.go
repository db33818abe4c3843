package actor

import (
	"encoding/json"
	"testing"

	"github.com/philyawj/angband/internal/domain/condition"
)

func TestTimedConditionLifecycle(t *testing.T) {
	p := NewPlayer("P001", "Subject")

	p.SetTimed(condition.Poisoned, 5)
	if p.TimedValue(condition.Poisoned) != 5 {
		t.Fatalf("Expected poison 5, got %d", p.TimedValue(condition.Poisoned))
	}

	if ranOut := p.DecTimed(condition.Poisoned, 3); ranOut {
		t.Error("Expected the poison to still be running")
	}
	if ranOut := p.DecTimed(condition.Poisoned, 10); !ranOut {
		t.Error("Expected the poison to run out")
	}
	if p.TimedValue(condition.Poisoned) != 0 {
		t.Errorf("Expected the timer clamped at zero, got %d", p.TimedValue(condition.Poisoned))
	}
	if _, lingers := p.Timed[condition.Poisoned]; lingers {
		t.Error("Expected the expired condition removed from the map")
	}

	// Decrementing an inactive condition is a no-op, not an expiry.
	if ranOut := p.DecTimed(condition.Confused, 2); ranOut {
		t.Error("Expected no expiry on an inactive condition")
	}

	p.IncTimed(condition.Stun, 4)
	p.IncTimed(condition.Stun, 3)
	if p.TimedValue(condition.Stun) != 7 {
		t.Errorf("Expected stun stacked to 7, got %d", p.TimedValue(condition.Stun))
	}
}

func TestHasTrait(t *testing.T) {
	p := NewPlayer("P001", "Subject")
	p.Traits = []TraitID{TraitRock, TraitUnlight}

	if !p.HasTrait(TraitRock) || !p.HasTrait(TraitUnlight) {
		t.Error("Expected both listed traits")
	}
	if p.HasTrait(TraitRegeneration) {
		t.Error("Expected no unlisted trait")
	}
}

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer("P001", "Fresh")

	if p.Speed != 110 {
		t.Errorf("Expected normal speed, got %d", p.Speed)
	}
	if !p.Upkeep.Playing {
		t.Error("Expected a fresh player to be playing")
	}
	if p.FoodGrade() != condition.FoodFed {
		t.Errorf("Expected a fed start, got %v", p.FoodGrade())
	}
	if !p.OnSurface() {
		t.Error("Expected a fresh player on the surface")
	}
}

func TestPlayerSheetRoundTrip(t *testing.T) {
	p := NewPlayer("P001", "Traveller")
	p.Depth = 12
	p.MaxDepth = 15
	p.WordRecall = 7
	p.SetTimed(condition.Cut, 30)
	p.Traits = []TraitID{TraitSlowDigestion}

	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	restored := &Player{}
	if err := json.Unmarshal(raw, restored); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if restored.Depth != 12 || restored.MaxDepth != 15 || restored.WordRecall != 7 {
		t.Error("Expected the travel state to survive the round trip")
	}
	if restored.TimedValue(condition.Cut) != 30 {
		t.Errorf("Expected the cut timer restored, got %d", restored.TimedValue(condition.Cut))
	}
	if !restored.HasTrait(TraitSlowDigestion) {
		t.Error("Expected the traits restored")
	}
}
