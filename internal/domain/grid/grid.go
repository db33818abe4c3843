// Package grid defines strongly-typed map coordinates.
// This package is PURE and must NOT import any infrastructure packages.
package grid

// Loc is a location on a level map.
type Loc struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Directions lists the 8 compass neighbors in scan order.
var Directions = [8]Loc{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: -1, Y: -1},
	{X: -1, Y: 1},
	{X: 1, Y: -1},
	{X: 1, Y: 1},
}

// Sum returns the component-wise sum of two locations.
func (l Loc) Sum(other Loc) Loc {
	return Loc{X: l.X + other.X, Y: l.Y + other.Y}
}

// Eq reports whether two locations are the same cell.
func (l Loc) Eq(other Loc) bool {
	return l.X == other.X && l.Y == other.Y
}
