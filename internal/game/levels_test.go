package game

import (
	"testing"

	"github.com/philyawj/angband/internal/config"
	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/platform/logger"
	"github.com/philyawj/angband/internal/sim"
)

func testBuilder() *CaveBuilder {
	w := sim.NewWorld(config.Default(), 17)
	return NewCaveBuilder(w, logger.NewLogger(), 30, 20)
}

func TestBuildNextCachesByDepth(t *testing.T) {
	b := testBuilder()
	p := actor.NewPlayer("P001", "Diver")

	first, err := b.BuildNext(p, 3)
	if err != nil {
		t.Fatalf("BuildNext failed: %v", err)
	}
	again, err := b.BuildNext(p, 3)
	if err != nil {
		t.Fatalf("BuildNext failed: %v", err)
	}

	// Returning to a depth returns to the same level.
	if first != again {
		t.Error("Expected the cached level on a second visit")
	}
	if first.Depth != 3 || first.Name != "cave-3" {
		t.Errorf("Expected cave-3 at depth 3, got %q at %d", first.Name, first.Depth)
	}
}

func TestBuildNextNamesSurfaceTown(t *testing.T) {
	b := testBuilder()
	p := actor.NewPlayer("P001", "Diver")

	town, err := b.BuildNext(p, 0)
	if err != nil {
		t.Fatalf("BuildNext failed: %v", err)
	}
	if town.Name != "town" {
		t.Errorf("Expected the surface level named town, got %q", town.Name)
	}
}

func TestBuildNextRejectsNegativeDepth(t *testing.T) {
	b := testBuilder()
	p := actor.NewPlayer("P001", "Diver")

	if _, err := b.BuildNext(p, -1); err == nil {
		t.Error("Expected an error below the surface")
	}
}

func TestBuildNextPlacesPlayerOnOpenGround(t *testing.T) {
	b := testBuilder()
	p := actor.NewPlayer("P001", "Diver")

	l, err := b.BuildNext(p, 5)
	if err != nil {
		t.Fatalf("BuildNext failed: %v", err)
	}
	if !l.InBounds(p.Grid) {
		t.Fatalf("Expected the player placed on the map, got (%d,%d)", p.Grid.X, p.Grid.Y)
	}
	if l.IsWall(p.Grid) {
		t.Error("Expected the player placed on open ground")
	}
}

func TestTeardownDropsStealthFieldsOnly(t *testing.T) {
	b := testBuilder()
	p := actor.NewPlayer("P001", "Diver")

	l, err := b.BuildNext(p, 2)
	if err != nil {
		t.Fatalf("BuildNext failed: %v", err)
	}
	l.Noise[5][5] = 9
	l.Scent[6][6] = 4
	wall := l.IsWall(grid.Loc{X: 0, Y: 0})

	b.Teardown(l)

	if l.Noise[5][5] != 0 || l.Scent[6][6] != 0 {
		t.Error("Expected the noise and scent fields dropped")
	}
	if l.IsWall(grid.Loc{X: 0, Y: 0}) != wall {
		t.Error("Expected the terrain untouched by teardown")
	}
}

func TestIlluminateOnlyTouchesTheSurface(t *testing.T) {
	b := testBuilder()
	p := actor.NewPlayer("P001", "Diver")

	town, _ := b.BuildNext(p, 0)
	cave, _ := b.BuildNext(p, 1)

	b.Illuminate(town, true)
	if !town.IsSeen(grid.Loc{X: 4, Y: 4}) {
		t.Error("Expected the surface lit at dawn")
	}

	b.Illuminate(town, false)
	if town.IsSeen(grid.Loc{X: 4, Y: 4}) {
		t.Error("Expected the surface dark at dusk")
	}

	b.Illuminate(cave, true)
	if cave.IsSeen(grid.Loc{X: 4, Y: 4}) {
		t.Error("Expected dawn to mean nothing underground")
	}
}
