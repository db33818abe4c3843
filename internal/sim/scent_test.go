package sim

import (
	"testing"

	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/level"
)

func scentTestLevel() (*level.Level, *actor.Player) {
	l := level.New("scent-lab", 1, 11, 11)
	p := actor.NewPlayer("P001", "Walker")
	p.Grid = grid.Loc{X: 5, Y: 5}
	return l, p
}

func TestScentLaysTrailAroundPlayer(t *testing.T) {
	l, p := scentTestLevel()

	UpdateScent(l, p, true)

	if l.Scent[5][5] != 0 {
		t.Errorf("Expected the player cell at freshness 0, got %d", l.Scent[5][5])
	}
	for _, d := range grid.Directions {
		adj := p.Grid.Sum(d)
		if l.Scent[adj.Y][adj.X] != 1 {
			t.Errorf("Expected freshness 1 at (%d,%d), got %d", adj.X, adj.Y, l.Scent[adj.Y][adj.X])
		}
	}
}

func TestScentOuterRingNeedsAGradient(t *testing.T) {
	l, p := scentTestLevel()

	UpdateScent(l, p, true)

	// The outer ring settles in deposit order: a cell only takes the
	// value 2 once a neighboring 1 exists, so on a fresh board the top
	// row is laid down before any 1 exists and stays empty, while the
	// bottom row follows the already-laid inner ring.
	if l.Scent[3][5] != 0 {
		t.Errorf("Expected the top outer cell unlaid on a fresh board, got %d", l.Scent[3][5])
	}
	if l.Scent[7][5] != 2 {
		t.Errorf("Expected the bottom outer cell at freshness 2, got %d", l.Scent[7][5])
	}
}

func TestScentAgesWithoutBound(t *testing.T) {
	l, p := scentTestLevel()
	l.Scent[2][2] = 10
	l.Scent[3][3] = 48

	UpdateScent(l, p, false)
	UpdateScent(l, p, false)

	if l.Scent[2][2] != 12 {
		t.Errorf("Expected the trail aged to 12, got %d", l.Scent[2][2])
	}
	// An old trail keeps aging; it never resets to zero on its own.
	if l.Scent[3][3] != 50 {
		t.Errorf("Expected the old trail aged to 50, got %d", l.Scent[3][3])
	}
}

func TestScentSkipsScentlessCells(t *testing.T) {
	l, p := scentTestLevel()
	blocked := grid.Loc{X: 6, Y: 5}
	l.SetFlags(blocked, level.FlagWall|level.FlagNoScent)

	UpdateScent(l, p, true)

	if l.Scent[blocked.Y][blocked.X] != 0 {
		t.Errorf("Expected no scent on a scentless cell, got %d", l.Scent[blocked.Y][blocked.X])
	}
}

func TestScentCoverTracksOnlyAges(t *testing.T) {
	l, p := scentTestLevel()
	l.Scent[5][6] = 7

	UpdateScent(l, p, false)

	if l.Scent[5][6] != 8 {
		t.Errorf("Expected the old trail aged to 8, got %d", l.Scent[5][6])
	}
	if l.Scent[5][4] != 0 {
		t.Errorf("Expected no fresh deposit, got %d", l.Scent[5][4])
	}
}

func TestScentTrailSurvivesRepeatedDeposits(t *testing.T) {
	l, p := scentTestLevel()

	UpdateScent(l, p, true)
	p.Grid = grid.Loc{X: 6, Y: 5}
	UpdateScent(l, p, true)

	// The new position is fresh again, and the far side of the new
	// kernel picks up a fresh inner-ring value.
	if l.Scent[5][6] != 0 {
		t.Errorf("Expected the occupied cell at freshness 0, got %d", l.Scent[5][6])
	}
	if l.Scent[5][7] != 1 {
		t.Errorf("Expected freshness 1 ahead of the player, got %d", l.Scent[5][7])
	}
	// The abandoned cell is surrounded by aged values only, so no fresh
	// 1 settles there; it keeps its zero until the neighborhood decays.
	if l.Scent[5][5] != 0 {
		t.Errorf("Expected the abandoned cell still at 0, got %d", l.Scent[5][5])
	}
}
