package sim

import (
	"math/rand"

	"github.com/philyawj/angband/internal/config"
	"github.com/philyawj/angband/internal/domain/level"
)

// World owns the session-wide simulation state: the monotonic turn
// counter, the underground day counter, the level registry, and the
// seeded random source. It is created once per game and passed
// explicitly; nothing in the core reads ambient globals.
type World struct {
	Turn     int64
	DayCount int

	Registry *level.Registry
	Config   *config.Tuning

	rng *rand.Rand
}

// NewWorld creates a fresh world context with a deterministic seed.
func NewWorld(cfg *config.Tuning, seed int64) *World {
	return &World{
		Registry: level.NewRegistry(),
		Config:   cfg,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Reset returns the world to new-game state, dropping all levels.
func (w *World) Reset(seed int64) {
	w.Turn = 0
	w.DayCount = 0
	w.Registry.Reset()
	w.rng = rand.New(rand.NewSource(seed))
}

// DayTurns returns the length of a full day/night cycle in turns.
func (w *World) DayTurns() int64 {
	return 10 * int64(w.Config.DayLength)
}

// IsDaytime reports whether the surface is currently lit.
func (w *World) IsDaytime() bool {
	return w.Turn%w.DayTurns() < w.DayTurns()/2
}

// OneIn rolls a 1-in-n chance.
func (w *World) OneIn(n int) bool {
	return w.rng.Intn(n) == 0
}

// RandInt returns a uniform value in [0, n).
func (w *World) RandInt(n int) int {
	return w.rng.Intn(n)
}

// DamRoll rolls num dice with the given number of sides.
func (w *World) DamRoll(num, sides int) int {
	total := 0
	for i := 0; i < num; i++ {
		total += w.rng.Intn(sides) + 1
	}
	return total
}
