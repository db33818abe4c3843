// Package level defines level maps and the session-wide level registry.
// This package is PURE and must NOT import any infrastructure packages.
package level

import (
	"fmt"

	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/item"
)

// Flag is a bitset of terrain properties for one cell.
type Flag uint8

const (
	// FlagWall blocks movement.
	FlagWall Flag = 1 << iota
	// FlagNoFlow blocks sound transmission.
	FlagNoFlow
	// FlagNoScent prevents scent from settling on the cell.
	FlagNoScent
)

// Trap is a triggered trap cooling down on a cell.
type Trap struct {
	Kind    string `json:"kind"`
	Timeout int    `json:"timeout"` // ticks until the trap is armed again
}

// Level is one generated map of the game world. The surface level has
// depth 0; everything deeper is underground.
type Level struct {
	Name   string `json:"name"`
	Depth  int    `json:"depth"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	flags [][]Flag

	// Noise and Scent are the per-cell detectability fields, recomputed
	// by the simulation core and read by monster perception.
	Noise [][]int `json:"noise"`
	Scent [][]int `json:"scent"`

	traps   map[grid.Loc][]*Trap
	seen    map[grid.Loc]bool
	Objects []*item.Item `json:"objects,omitempty"` // items on the floor
}

// New allocates an empty level of the given size.
func New(name string, depth, width, height int) *Level {
	if width < 3 || height < 3 {
		panic(fmt.Sprintf("level %q: grid %dx%d is below the minimum 3x3", name, width, height))
	}
	l := &Level{
		Name:   name,
		Depth:  depth,
		Width:  width,
		Height: height,
		flags:  make([][]Flag, height),
		Noise:  make([][]int, height),
		Scent:  make([][]int, height),
		traps:  make(map[grid.Loc][]*Trap),
		seen:   make(map[grid.Loc]bool),
	}
	for y := 0; y < height; y++ {
		l.flags[y] = make([]Flag, width)
		l.Noise[y] = make([]int, width)
		l.Scent[y] = make([]int, width)
	}
	return l
}

// InBounds reports whether the location is on the map.
func (l *Level) InBounds(loc grid.Loc) bool {
	return loc.X >= 0 && loc.X < l.Width && loc.Y >= 0 && loc.Y < l.Height
}

// SetFlags replaces the terrain flags of one cell.
func (l *Level) SetFlags(loc grid.Loc, f Flag) {
	l.flags[loc.Y][loc.X] = f
}

// IsWall reports whether the cell blocks movement.
func (l *Level) IsWall(loc grid.Loc) bool {
	return l.flags[loc.Y][loc.X]&FlagWall != 0
}

// IsNoFlow reports whether the cell blocks sound transmission.
func (l *Level) IsNoFlow(loc grid.Loc) bool {
	return l.flags[loc.Y][loc.X]&FlagNoFlow != 0
}

// IsNoScent reports whether scent cannot settle on the cell.
func (l *Level) IsNoScent(loc grid.Loc) bool {
	return l.flags[loc.Y][loc.X]&FlagNoScent != 0
}

// AddTrap places a trap on a cell.
func (l *Level) AddTrap(loc grid.Loc, t *Trap) {
	l.traps[loc] = append(l.traps[loc], t)
}

// TrapsAt returns the traps on a cell.
func (l *Level) TrapsAt(loc grid.Loc) []*Trap {
	return l.traps[loc]
}

// EachTrapCell visits every cell holding at least one trap.
func (l *Level) EachTrapCell(fn func(loc grid.Loc, traps []*Trap)) {
	for loc, ts := range l.traps {
		fn(loc, ts)
	}
}

// MarkSeen records that the player can currently see the cell.
func (l *Level) MarkSeen(loc grid.Loc, seen bool) {
	if seen {
		l.seen[loc] = true
	} else {
		delete(l.seen, loc)
	}
}

// IsSeen reports whether the player can currently see the cell.
func (l *Level) IsSeen(loc grid.Loc) bool {
	return l.seen[loc]
}
