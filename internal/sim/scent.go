package sim

import (
	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/level"
)

// scentStrength is the freshness laid down around the player, indexed
// [dy+2][dx+2]. Zero is the player's cell.
var scentStrength = [5][5]int{
	{2, 2, 2, 2, 2},
	{2, 1, 1, 1, 2},
	{2, 1, 0, 1, 2},
	{2, 1, 1, 1, 2},
	{2, 2, 2, 2, 2},
}

// UpdateScent ages every scented cell by one and, unless the player is
// covering tracks, lays a fresh 5x5 trail around them. Aging has no
// upper bound; whether a trail is too stale to follow is the smeller's
// call, not the grid's. A fresh value only settles where the gradient
// stays walkable: the cell must border a cell holding exactly the next
// fresher value, so trails never jump across walls. The lay-down pass
// runs in row-major kernel order, which makes same-value diagonal
// chains within one deposit order dependent; monsters only ever follow
// the gradient downhill, so the quirk is harmless and keeping it
// preserves trail shapes.
func UpdateScent(l *level.Level, p *actor.Player, layDown bool) {
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.Scent[y][x] == 0 {
				continue
			}
			l.Scent[y][x]++
		}
	}

	if !layDown {
		return
	}

	for ky := 0; ky < 5; ky++ {
		for kx := 0; kx < 5; kx++ {
			target := grid.Loc{X: p.Grid.X + kx - 2, Y: p.Grid.Y + ky - 2}
			fresh := scentStrength[ky][kx]
			if !l.InBounds(target) || l.IsNoScent(target) {
				continue
			}

			ok := false
			for _, d := range grid.Directions {
				adj := target.Sum(d)
				if !l.InBounds(adj) {
					continue
				}
				if kx == 2 && ky == 2 {
					ok = true
				}
				if l.Scent[adj.Y][adj.X] == fresh-1 {
					ok = true
				}
			}
			if !ok {
				continue
			}

			l.Scent[target.Y][target.X] = fresh
		}
	}
}
