package sim

import (
	"testing"

	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/condition"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/item"
	"github.com/philyawj/angband/internal/domain/level"
	"github.com/philyawj/angband/internal/events"
)

// enterDepth builds and installs a level at the given depth.
func enterDepth(rig *testRig, depth int) {
	rig.player.Upkeep.GenerateLevel = true
	rig.player.Upkeep.NextDepth = depth
	rig.engine.changeLevel()
}

func TestWorldTickHazardDeathStopsTick(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	p := rig.player

	p.HP = 1
	p.SetTimed(condition.Poisoned, 5)
	p.SetTimed(condition.Cut, 30)
	rig.world.Turn = 100 // digestion would fire this tick

	foodBefore := p.TimedValue(condition.Food)

	if got := rig.engine.ProcessWorld(rig.engine.Level()); got != ActorDied {
		t.Fatalf("Expected ActorDied, got %v", got)
	}

	// Death aborts the remaining steps: no digestion, no condition
	// decay, nothing after the killing hazard.
	if p.TimedValue(condition.Food) != foodBefore {
		t.Errorf("Expected food untouched after death, got %d", p.TimedValue(condition.Food))
	}
	if p.TimedValue(condition.Cut) != 30 {
		t.Errorf("Expected cut timer untouched after death, got %d", p.TimedValue(condition.Cut))
	}
}

func TestPoisonDamage(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.player.SetTimed(condition.Poisoned, 5)

	if got := rig.engine.applyHazards(); got != Continued {
		t.Fatalf("Expected Continued, got %v", got)
	}
	if rig.player.HP != 19 {
		t.Errorf("Expected 1 poison damage, HP is %d", rig.player.HP)
	}
}

func TestCutDamageScalesWithGrade(t *testing.T) {
	cases := []struct {
		name   string
		timer  int
		wantHP int
	}{
		{"graze bleeds one", 5, 19},
		{"severe cut bleeds two", 150, 18},
		{"deep gash bleeds three", 500, 17},
		{"mortal wound bleeds three", 1500, 17},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rig := newTestRig(nil)
			enterDepth(rig, 1)
			rig.player.SetTimed(condition.Cut, tc.timer)

			rig.engine.applyHazards()
			if rig.player.HP != tc.wantHP {
				t.Errorf("Expected HP %d, got %d", tc.wantHP, rig.player.HP)
			}
		})
	}
}

func TestRockTraitDoesNotBleed(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.player.Traits = []actor.TraitID{actor.TraitRock}
	rig.player.SetTimed(condition.Cut, 1500)

	rig.engine.applyHazards()
	if rig.player.HP != 20 {
		t.Errorf("Expected a rock body to take no cut damage, HP is %d", rig.player.HP)
	}
}

func TestStarvationDamage(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.player.SetTimed(condition.Food, 50)

	rig.engine.applyHazards()

	// Damage is a tenth of the distance below the starvation line.
	if rig.player.HP != 15 {
		t.Errorf("Expected 5 starvation damage, HP is %d", rig.player.HP)
	}
}

func TestDigestNormalRate(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.world.Turn = 100

	rig.engine.digest()

	// Normal speed: 10 energy per turn against a food value of 100
	// burns 10 food per hundred turns.
	if got := rig.player.TimedValue(condition.Food); got != 5990 {
		t.Errorf("Expected food 5990, got %d", got)
	}
}

func TestDigestSkipsBetweenHundredTurnMarks(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.world.Turn = 110

	rig.engine.digest()

	if got := rig.player.TimedValue(condition.Food); got != 6000 {
		t.Errorf("Expected food unchanged at 6000, got %d", got)
	}
}

func TestDigestGorgedBurnsEveryTick(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.world.Turn = 110 // not a hundred-turn mark; gorged burns anyway
	rig.player.SetTimed(condition.Food, 9000)

	rig.engine.digest()

	if got := rig.player.TimedValue(condition.Food); got != 8950 {
		t.Errorf("Expected gorged food 8950, got %d", got)
	}
}

func TestDigestTraitModifiers(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.world.Turn = 100
	rig.player.Traits = []actor.TraitID{actor.TraitRegeneration}

	rig.engine.digest()
	if got := rig.player.TimedValue(condition.Food); got != 5980 {
		t.Errorf("Expected regeneration to double the burn to 20, food is %d", got)
	}

	rig2 := newTestRig(nil)
	enterDepth(rig2, 1)
	rig2.world.Turn = 100
	rig2.player.Traits = []actor.TraitID{actor.TraitSlowDigestion}

	rig2.engine.digest()
	if got := rig2.player.TimedValue(condition.Food); got != 5995 {
		t.Errorf("Expected slow digestion to halve the burn to 5, food is %d", got)
	}
}

func TestDigestHealBurnsFoodEveryTick(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.world.Turn = 110 // off the hundred-turn mark
	rig.player.SetTimed(condition.Heal, 50)

	rig.engine.digest()

	// Fast metabolism burns eight food values per tick regardless of
	// the digestion schedule.
	want := 6000 - 8*rig.world.Config.FoodValue
	if got := rig.player.TimedValue(condition.Food); got != want {
		t.Errorf("Expected food %d while healing, got %d", want, got)
	}
	if rig.player.TimedValue(condition.Heal) == 0 {
		t.Error("Expected the heal to keep running on a full stomach")
	}
}

func TestDigestHealStarvesItselfOut(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.world.Turn = 110
	rig.player.SetTimed(condition.Food, condition.FoodHungryMax+100)
	rig.player.SetTimed(condition.Heal, 50)

	rig.engine.digest()

	if got := rig.player.TimedValue(condition.Heal); got != 0 {
		t.Errorf("Expected the heal to end once the stomach runs low, got %d", got)
	}
}

func TestDrainExpScalesWithLifeForce(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	p := rig.player
	p.Traits = []actor.TraitID{actor.TraitDrainExp}
	p.Exp = 1000

	for i := 0; i < 200 && len(rig.effects.expLosses) == 0; i++ {
		rig.engine.passiveItemEffects()
	}
	if len(rig.effects.expLosses) == 0 {
		t.Fatal("Expected the drain to fire within 200 ticks")
	}

	// The drain is a tenth of 10d6 plus the scaled life force.
	scaled := 1000 / 100 * rig.world.Config.LifeDrainPercent
	min := (10 + scaled) / 10
	max := (60 + scaled) / 10
	if got := rig.effects.expLosses[0]; got < min || got > max {
		t.Errorf("Expected a drain in [%d,%d], got %d", min, max, got)
	}
}

func TestDrainExpSparesAnEmptyLifeForce(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	p := rig.player
	p.Traits = []actor.TraitID{actor.TraitDrainExp}
	p.Exp = 0

	for i := 0; i < 200; i++ {
		rig.engine.passiveItemEffects()
	}

	if len(rig.effects.expLosses) != 0 {
		t.Errorf("Expected no drain with nothing to lose, got %v", rig.effects.expLosses)
	}
}

func TestDecayNormalAndConScaled(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	p := rig.player
	p.Con = 17 // decays constitution-scaled conditions by 4
	p.SetTimed(condition.Poisoned, 10)
	p.SetTimed(condition.Confused, 3)

	rig.engine.decreaseTimeouts()

	if got := p.TimedValue(condition.Poisoned); got != 6 {
		t.Errorf("Expected poison 6 at constitution 17, got %d", got)
	}
	if got := p.TimedValue(condition.Confused); got != 2 {
		t.Errorf("Expected confusion to decay by one, got %d", got)
	}
}

func TestDecaySkipsFood(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)

	rig.engine.decreaseTimeouts()

	if got := rig.player.TimedValue(condition.Food); got != 6000 {
		t.Errorf("Expected the food clock to be owned by digestion alone, got %d", got)
	}
}

func TestMortalWoundNeverCloses(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	rig.player.SetTimed(condition.Cut, 1500)

	rig.engine.decreaseTimeouts()

	if got := rig.player.TimedValue(condition.Cut); got != 1500 {
		t.Errorf("Expected a mortal wound to stay at 1500, got %d", got)
	}

	// A lesser cut closes at the constitution-scaled rate.
	rig.player.SetTimed(condition.Cut, 30)
	rig.engine.decreaseTimeouts()
	if got := rig.player.TimedValue(condition.Cut); got != 29 {
		t.Errorf("Expected a bad cut to close by one, got %d", got)
	}
}

func TestCommandMirrorsOntoMonster(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	p := rig.player

	mon := &fakeCommanded{loc: grid.Loc{X: 8, Y: 5}, timer: 3}
	rig.monsters.commanded = mon
	p.SetTimed(condition.Command, 3)

	rig.engine.decreaseTimeouts()

	if got := p.TimedValue(condition.Command); got != 2 {
		t.Errorf("Expected player command timer 2, got %d", got)
	}
	if mon.timer != 2 {
		t.Errorf("Expected the bound monster to mirror the decay, timer is %d", mon.timer)
	}
}

func TestCommandBreaksWithLineOfSight(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	p := rig.player
	c := rig.engine.Level()

	mon := &fakeCommanded{loc: grid.Loc{X: 8, Y: 5}, timer: 3}
	rig.monsters.commanded = mon
	p.SetTimed(condition.Command, 3)
	c.SetFlags(grid.Loc{X: 6, Y: 5}, level.FlagWall)

	rig.engine.decreaseTimeouts()

	if got := p.TimedValue(condition.Command); got != 0 {
		t.Errorf("Expected the command to break behind a wall, player timer is %d", got)
	}
	if mon.timer != 0 {
		t.Errorf("Expected the monster side cleared too, timer is %d", mon.timer)
	}
}

func TestCurseTimersFireAndReroll(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)

	ring := &item.Item{
		Kind:     "ring",
		Name:     "Ring of Teeth",
		Number:   1,
		Equipped: true,
		Curses: []item.Curse{
			{Name: "teeth", Power: 1, Timeout: 2, Period: 10},
		},
	}
	rig.player.Gear = append(rig.player.Gear, ring)

	rig.engine.decreaseTimeouts()
	if ring.Curses[0].Timeout != 1 {
		t.Fatalf("Expected curse timeout 1, got %d", ring.Curses[0].Timeout)
	}
	if len(rig.effects.curses) != 0 {
		t.Fatal("Expected no curse to fire yet")
	}

	rig.engine.decreaseTimeouts()
	if len(rig.effects.curses) != 1 || rig.effects.curses[0] != "teeth" {
		t.Fatalf("Expected the teeth curse to fire once, got %v", rig.effects.curses)
	}
	if to := ring.Curses[0].Timeout; to < 1 || to > 10 {
		t.Errorf("Expected the timeout re-rolled into [1,10], got %d", to)
	}
}

func TestCurseSkipsUnequippedGear(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)

	packed := &item.Item{
		Kind:   "ring",
		Name:   "Ring of Teeth",
		Number: 1,
		Curses: []item.Curse{
			{Name: "teeth", Power: 1, Timeout: 1, Period: 10},
		},
	}
	rig.player.Gear = append(rig.player.Gear, packed)

	rig.engine.decreaseTimeouts()

	if packed.Curses[0].Timeout != 1 {
		t.Errorf("Expected a packed curse to stay frozen, timeout is %d", packed.Curses[0].Timeout)
	}
}

func TestRechargeNoticeHonorsInscription(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)

	inscribed := &item.Item{
		Kind: "rod", Name: "Rod of Recall", Number: 1,
		Period: 5, Timeout: 1, Equipped: true, Note: "!!",
	}
	silent := &item.Item{
		Kind: "rod", Name: "Rod of Light", Number: 1,
		Period: 5, Timeout: 1, Equipped: true,
	}
	rig.player.Gear = append(rig.player.Gear, inscribed, silent)

	before := countEvents(rig.engine, events.EventTypeRecharge)
	rig.engine.rechargeObjects(rig.engine.Level())

	if inscribed.Timeout != 0 || silent.Timeout != 0 {
		t.Fatalf("Expected both rods recharged, timeouts %d and %d",
			inscribed.Timeout, silent.Timeout)
	}
	if got := countEvents(rig.engine, events.EventTypeRecharge) - before; got != 1 {
		t.Errorf("Expected exactly the inscribed rod to announce itself, got %d notices", got)
	}
}

func TestFloorObjectsRechargeSilently(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	c := rig.engine.Level()

	dropped := &item.Item{
		Kind: "rod", Name: "Rod of Light", Number: 1,
		Period: 3, Timeout: 2, Note: "!!",
	}
	c.Objects = append(c.Objects, dropped)

	before := countEvents(rig.engine, events.EventTypeRecharge)
	rig.engine.rechargeObjects(c)

	if dropped.Timeout != 1 {
		t.Errorf("Expected the floor rod to tick to 1, got %d", dropped.Timeout)
	}
	if got := countEvents(rig.engine, events.EventTypeRecharge) - before; got != 0 {
		t.Errorf("Expected no notice for floor items, got %d", got)
	}
}

func TestTrapDecayRedrawsSeenCells(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	c := rig.engine.Level()

	seen := grid.Loc{X: 3, Y: 3}
	hidden := grid.Loc{X: 7, Y: 7}
	c.AddTrap(seen, &level.Trap{Kind: "pit", Timeout: 1})
	c.AddTrap(hidden, &level.Trap{Kind: "pit", Timeout: 1})
	c.MarkSeen(seen, true)

	before := countEvents(rig.engine, events.EventTypeRedraw)
	rig.engine.decayTraps(c)

	if c.TrapsAt(seen)[0].Timeout != 0 || c.TrapsAt(hidden)[0].Timeout != 0 {
		t.Fatal("Expected both traps to re-arm")
	}
	if got := countEvents(rig.engine, events.EventTypeRedraw) - before; got != 1 {
		t.Errorf("Expected one redraw for the visible trap only, got %d", got)
	}
}

func TestRecallYanksUpward(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 5)
	p := rig.player
	p.WordRecall = 2

	rig.engine.scriptedTravel()
	if p.WordRecall != 1 || p.Upkeep.GenerateLevel {
		t.Fatalf("Expected only a countdown on the first tick, recall %d", p.WordRecall)
	}

	rig.queue.Push(RestCommand{}) // scripted travel flushes pending input
	rig.engine.scriptedTravel()

	if !p.Upkeep.GenerateLevel || p.Upkeep.NextDepth != 0 {
		t.Errorf("Expected recall to queue a trip to the surface, got depth %d", p.Upkeep.NextDepth)
	}
	if _, ok := rig.queue.Pop(); ok {
		t.Error("Expected the command queue flushed when recall fires")
	}
}

func TestRecallYanksDownToDeepestDepth(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 0)
	p := rig.player
	p.MaxDepth = 7
	p.WordRecall = 1

	rig.engine.scriptedTravel()

	if p.Upkeep.NextDepth != 7 {
		t.Errorf("Expected recall to target the deepest visited depth 7, got %d", p.Upkeep.NextDepth)
	}
	if p.RecallDepth != 7 {
		t.Errorf("Expected the recall depth remembered as 7, got %d", p.RecallDepth)
	}
}

func TestRecallFromSurfaceWithNoHistory(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 0)
	p := rig.player
	p.MaxDepth = 0
	p.WordRecall = 1

	rig.engine.scriptedTravel()

	if p.Upkeep.NextDepth != 1 {
		t.Errorf("Expected a first recall to target depth 1, got %d", p.Upkeep.NextDepth)
	}
}

func TestDeepDescentPlunges(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 0)
	p := rig.player
	p.MaxDepth = 3
	p.DeepDescent = 1

	rig.engine.scriptedTravel()

	if !p.Upkeep.GenerateLevel || p.Upkeep.NextDepth != 8 {
		t.Errorf("Expected deep descent to target depth 8, got %d", p.Upkeep.NextDepth)
	}
}

func TestDeepDescentAtBottomCollapsesInstead(t *testing.T) {
	rig := newTestRig(nil)
	rig.world.Config.MaxDepth = 5
	enterDepth(rig, 5)
	p := rig.player
	p.DeepDescent = 1

	rig.engine.scriptedTravel()

	if p.Upkeep.GenerateLevel {
		t.Error("Expected no travel when already at the bottom")
	}
	if rig.effects.destroys != 1 {
		t.Errorf("Expected the discharge to collapse the dungeon once, got %d", rig.effects.destroys)
	}
}

func TestCalendarDawnAndDusk(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 0)
	c := rig.engine.Level()
	rig.levels.illums = nil

	rig.world.Turn = 0
	rig.engine.processCalendar(c)
	if len(rig.levels.illums) != 1 || !rig.levels.illums[0] {
		t.Fatalf("Expected dawn illumination at turn 0, got %v", rig.levels.illums)
	}

	rig.world.Turn = rig.world.DayTurns() / 2
	rig.engine.processCalendar(c)
	if len(rig.levels.illums) != 2 || rig.levels.illums[1] {
		t.Fatalf("Expected dusk darkening at half day, got %v", rig.levels.illums)
	}

	if got := countEvents(rig.engine, events.EventTypeDayNight); got != 2 {
		t.Errorf("Expected 2 day/night events, got %d", got)
	}
}

func TestCalendarUndergroundDayCounter(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 5)
	c := rig.engine.Level()

	rig.world.Turn = 10 * int64(rig.world.Config.StoreTurns)
	rig.engine.processCalendar(c)
	if rig.world.DayCount != 1 {
		t.Fatalf("Expected the underground day counter at 1, got %d", rig.world.DayCount)
	}

	rig.world.Turn += 10
	rig.engine.processCalendar(c)
	if rig.world.DayCount != 1 {
		t.Errorf("Expected the day counter unchanged between marks, got %d", rig.world.DayCount)
	}
	if len(rig.levels.illums) != 0 {
		t.Error("Expected no surface illumination underground")
	}
}

func TestMaintainPopulationEvictsAndSqueezes(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	c := rig.engine.Level()

	rig.monsters.count = rig.world.Config.LevelMonsterMax
	rig.monsters.capacity = rig.world.Config.LevelMonsterMax
	rig.engine.maintainPopulation(c)
	if len(rig.monsters.compacts) != 1 || rig.monsters.compacts[0] != compactMargin {
		t.Fatalf("Expected one eviction pass with keep %d, got %v",
			compactMargin, rig.monsters.compacts)
	}

	rig.monsters.compacts = nil
	rig.monsters.count = 10
	rig.monsters.capacity = 100
	rig.engine.maintainPopulation(c)
	if len(rig.monsters.compacts) != 1 || rig.monsters.compacts[0] != 0 {
		t.Errorf("Expected one squeeze-only pass, got %v", rig.monsters.compacts)
	}
}

func TestRestingLeavesNoTrail(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	c := rig.engine.Level()
	p := rig.player

	c.Scent[2][2] = 5
	p.Upkeep.Resting = true
	rig.world.Turn = 10

	if got := rig.engine.ProcessWorld(c); got != Continued {
		t.Fatalf("Expected Continued, got %v", got)
	}

	// Rest is a true no-op for detectability: no noise flood, and the
	// old scent neither ages nor refreshes.
	if c.Noise[p.Grid.Y][p.Grid.X+1] != 0 {
		t.Error("Expected no noise while resting")
	}
	if c.Scent[2][2] != 5 {
		t.Errorf("Expected the stale scent untouched at 5, got %d", c.Scent[2][2])
	}
}

func TestActiveTurnLaysNoiseAndScent(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	c := rig.engine.Level()
	p := rig.player
	rig.world.Turn = 10

	rig.engine.ProcessWorld(c)

	if c.Noise[p.Grid.Y][p.Grid.X+1] != 1 {
		t.Errorf("Expected adjacent noise 1, got %d", c.Noise[p.Grid.Y][p.Grid.X+1])
	}
	if c.Scent[p.Grid.Y][p.Grid.X+1] != 1 {
		t.Errorf("Expected adjacent scent 1, got %d", c.Scent[p.Grid.Y][p.Grid.X+1])
	}
}

func TestCoverTracksMuffles(t *testing.T) {
	rig := newTestRig(nil)
	enterDepth(rig, 1)
	c := rig.engine.Level()
	p := rig.player
	p.SetTimed(condition.CoverTracks, 5)
	c.Scent[2][2] = 5
	rig.world.Turn = 10

	rig.engine.ProcessWorld(c)

	// Covered tracks sound farther away and lay no fresh scent, but the
	// old trail still ages.
	if got := c.Noise[p.Grid.Y][p.Grid.X+1]; got != rig.world.Config.CoverTracksStep {
		t.Errorf("Expected adjacent noise %d while covering tracks, got %d",
			rig.world.Config.CoverTracksStep, got)
	}
	if c.Scent[p.Grid.Y][p.Grid.X+1] != 0 {
		t.Error("Expected no fresh scent while covering tracks")
	}
	if c.Scent[2][2] != 6 {
		t.Errorf("Expected the old trail aged to 6, got %d", c.Scent[2][2])
	}
}
