package sim

import (
	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/level"
)

// noiseNode is one queue entry of the noise flood fill. A ring node is
// a sentinel marking the boundary between distance bands; real nodes
// carry a cell.
type noiseNode struct {
	loc  grid.Loc
	ring bool
}

// MakeNoise rebuilds the level's noise field as a breadth-first flood
// from the player. Each cell receives its flow distance from the player
// times step; sound-proof cells stay at zero and block propagation.
// Step is normally 1, raised while the player is covering tracks so
// monsters hear an older, fainter trail.
func MakeNoise(l *level.Level, p *actor.Player, step int) {
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			l.Noise[y][x] = 0
		}
	}

	queue := make([]noiseNode, 0, l.Width*l.Height/4)
	queue = append(queue, noiseNode{loc: p.Grid}, noiseNode{ring: true})

	// The counter holds the value for the NEXT ring; the player's own
	// cell stays at zero.
	noise := step

	for len(queue) > 0 {
		head := queue[0]
		queue = queue[1:]

		if head.ring {
			if len(queue) == 0 {
				break
			}
			noise += step
			queue = append(queue, head)
			continue
		}

		for _, d := range grid.Directions {
			next := head.loc.Sum(d)
			if !l.InBounds(next) || l.IsNoFlow(next) {
				continue
			}
			if l.Noise[next.Y][next.X] != 0 || next.Eq(p.Grid) {
				continue
			}
			l.Noise[next.Y][next.X] = noise
			queue = append(queue, noiseNode{loc: next})
		}
	}
}
