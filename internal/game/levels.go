package game

import (
	"fmt"

	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/level"
	"github.com/philyawj/angband/internal/platform/logger"
	"github.com/philyawj/angband/internal/sim"
)

// CaveBuilder generates simple bordered cave levels and caches them by
// depth, so returning to a depth returns to the same level.
type CaveBuilder struct {
	world  *sim.World
	logger *logger.Logger
	width  int
	height int
	cache  map[int]*level.Level
}

// NewCaveBuilder creates a builder producing levels of a fixed size.
func NewCaveBuilder(w *sim.World, log *logger.Logger, width, height int) *CaveBuilder {
	return &CaveBuilder{
		world:  w,
		logger: log,
		width:  width,
		height: height,
		cache:  make(map[int]*level.Level),
	}
}

// BuildNext returns the level at the requested depth, generating it on
// first visit. The player is placed on a free cell near the center.
func (b *CaveBuilder) BuildNext(p *actor.Player, depth int) (*level.Level, error) {
	if depth < 0 {
		return nil, fmt.Errorf("depth %d below the surface", depth)
	}

	l, ok := b.cache[depth]
	if !ok {
		l = b.generate(depth)
		b.cache[depth] = l
	}

	p.Grid = b.placePlayer(l)
	return l, nil
}

// Teardown releases per-visit state. Cached levels persist; only the
// stealth fields are dropped since they are regenerated on arrival.
func (b *CaveBuilder) Teardown(l *level.Level) {
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			l.Noise[y][x] = 0
			l.Scent[y][x] = 0
		}
	}
}

// Illuminate marks the whole surface seen at dawn and unseen at dusk.
func (b *CaveBuilder) Illuminate(l *level.Level, daytime bool) {
	if l.Depth != 0 {
		return
	}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			l.MarkSeen(grid.Loc{X: x, Y: y}, daytime)
		}
	}
}

func (b *CaveBuilder) generate(depth int) *level.Level {
	name := "town"
	if depth > 0 {
		name = fmt.Sprintf("cave-%d", depth)
	}
	l := level.New(name, depth, b.width, b.height)

	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if x == 0 || y == 0 || x == l.Width-1 || y == l.Height-1 {
				l.SetFlags(grid.Loc{X: x, Y: y}, level.FlagWall|level.FlagNoFlow|level.FlagNoScent)
			}
		}
	}

	// Scatter pillars; deeper levels are denser.
	pillars := (b.width * b.height) / 40
	pillars += depth / 4
	for i := 0; i < pillars; i++ {
		loc := grid.Loc{
			X: 1 + b.world.RandInt(b.width-2),
			Y: 1 + b.world.RandInt(b.height-2),
		}
		l.SetFlags(loc, level.FlagWall|level.FlagNoFlow|level.FlagNoScent)
	}

	b.logger.Info("generated %s (%dx%d, depth %d)", name, b.width, b.height, depth)
	return l
}

func (b *CaveBuilder) placePlayer(l *level.Level) grid.Loc {
	center := grid.Loc{X: l.Width / 2, Y: l.Height / 2}
	if !l.IsWall(center) {
		return center
	}
	for try := 0; try < 200; try++ {
		loc := grid.Loc{
			X: 1 + b.world.RandInt(l.Width-2),
			Y: 1 + b.world.RandInt(l.Height-2),
		}
		if !l.IsWall(loc) {
			return loc
		}
	}
	// Clear the center as a last resort.
	l.SetFlags(center, 0)
	return center
}
