package level

import "github.com/philyawj/angband/internal/domain/grid"

// LOS reports whether a straight line from a to b crosses no walls.
// Endpoints never block their own line.
func (l *Level) LOS(a, b grid.Loc) bool {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx := sign(b.X - a.X)
	sy := sign(b.Y - a.Y)

	cur := a
	err := dx - dy
	for {
		if cur.Eq(b) {
			return true
		}
		if !cur.Eq(a) && l.IsWall(cur) {
			return false
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			cur.X += sx
		}
		if e2 < dx {
			err += dx
			cur.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
