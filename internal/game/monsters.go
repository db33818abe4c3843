// Package game provides the concrete collaborators the simulation core
// drives: the monster roster, the effect resolver, and the cave
// builder. The core only sees their interfaces.
package game

import (
	"sort"

	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/level"
	"github.com/philyawj/angband/internal/platform/logger"
	"github.com/philyawj/angband/internal/sim"
)

// Monster is one live monster on the roster.
type Monster struct {
	ID     int
	Name   string
	Loc    grid.Loc
	Speed  int
	Energy int
	HP     int

	// Commanded mirrors the player's command condition.
	CommandTimer int

	acted   bool
	deleted bool
	// transient visibility flags cleared after a player turn
	noticed bool
}

// Grid returns the monster's position.
func (m *Monster) Grid() grid.Loc { return m.Loc }

// DecTimed lowers the command timer, clamping at zero.
func (m *Monster) DecTimed(amount int) {
	m.CommandTimer -= amount
	if m.CommandTimer < 0 {
		m.CommandTimer = 0
	}
}

// ClearTimed drops the command bond entirely.
func (m *Monster) ClearTimed() { m.CommandTimer = 0 }

// ActFunc decides one monster turn. It returns the energy spent.
type ActFunc func(m *Monster) int

// Roster owns the monster population of the active level. One flat
// slice carries live and deleted slots; deletion punches holes that
// compaction squeezes out later, so iteration order stays stable
// between compactions.
type Roster struct {
	world      *sim.World
	logger     *logger.Logger
	monsters   []*Monster
	nextID     int
	act        ActFunc
	moveEnergy int
}

// NewRoster creates an empty roster. The act function may be nil, in
// which case monsters idle (spend their turn doing nothing).
func NewRoster(w *sim.World, log *logger.Logger, act ActFunc) *Roster {
	r := &Roster{
		world:      w,
		logger:     log,
		nextID:     1,
		act:        act,
		moveEnergy: w.Config.MoveEnergy,
	}
	if r.act == nil {
		r.act = func(m *Monster) int { return r.moveEnergy }
	}
	return r
}

// Add places a monster and returns it.
func (r *Roster) Add(name string, loc grid.Loc, speed, hp int) *Monster {
	m := &Monster{
		ID:    r.nextID,
		Name:  name,
		Loc:   loc,
		Speed: speed,
		HP:    hp,
	}
	r.nextID++
	r.monsters = append(r.monsters, m)
	return m
}

// Delete marks a monster's slot as a hole.
func (r *Roster) Delete(m *Monster) { m.deleted = true }

// Live returns the live monsters in slot order.
func (r *Roster) Live() []*Monster {
	var out []*Monster
	for _, m := range r.monsters {
		if !m.deleted {
			out = append(out, m)
		}
	}
	return out
}

// Count returns the number of live monsters on the level.
func (r *Roster) Count(l *level.Level) int {
	n := 0
	for _, m := range r.monsters {
		if !m.deleted {
			n++
		}
	}
	return n
}

// Capacity returns the allocated slots, holes included.
func (r *Roster) Capacity(l *level.Level) int {
	return len(r.monsters)
}

// Compact evicts the weakest monsters until the population fits under
// the ceiling minus keep, then squeezes the holes out of the slice.
// keep 0 means squeeze only.
func (r *Roster) Compact(l *level.Level, keep int) {
	if keep > 0 {
		max := r.world.Config.LevelMonsterMax
		for r.Count(l)+keep > max {
			victim := r.weakest()
			if victim == nil {
				break
			}
			victim.deleted = true
		}
	}

	compacted := r.monsters[:0]
	for _, m := range r.monsters {
		if !m.deleted {
			compacted = append(compacted, m)
		}
	}
	r.monsters = compacted
}

func (r *Roster) weakest() *Monster {
	var victim *Monster
	for _, m := range r.monsters {
		if m.deleted {
			continue
		}
		if victim == nil || m.HP < victim.HP {
			victim = m
		}
	}
	return victim
}

// SpawnNearby places one wandering monster at least minDist away from
// origin. It reports whether a spot was found.
func (r *Roster) SpawnNearby(l *level.Level, origin grid.Loc, minDist int) bool {
	for try := 0; try < 50; try++ {
		loc := grid.Loc{
			X: r.world.RandInt(l.Width),
			Y: r.world.RandInt(l.Height),
		}
		if l.IsWall(loc) {
			continue
		}
		if chebyshev(loc, origin) < minDist {
			continue
		}
		r.Add("wandering beast", loc, sim.SpeedNormal, 10+r.world.RandInt(20))
		return true
	}
	return false
}

// Process gives one turn to every monster whose energy is at least the
// threshold, in strictly descending energy order. Ties act in slot
// order, which is stable between compactions, so equal-energy monsters
// keep a deterministic ordering.
func (r *Roster) Process(minEnergy int) {
	live := r.Live()
	sort.SliceStable(live, func(i, j int) bool {
		return live[i].Energy > live[j].Energy
	})

	for _, m := range live {
		if m.acted || m.Energy < minEnergy || m.Energy < r.moveEnergy {
			continue
		}
		spent := r.act(m)
		if spent <= 0 {
			spent = r.moveEnergy
		}
		m.Energy -= spent
		m.acted = true
	}
}

// ResetReady re-arms every monster for the next round and grants its
// per-turn energy.
func (r *Roster) ResetReady(l *level.Level) {
	for _, m := range r.monsters {
		if m.deleted {
			continue
		}
		m.acted = false
		m.Energy += sim.TurnEnergy(m.Speed, r.moveEnergy)
	}
}

// ClearTransient drops the one-command visibility flags after the
// player spends a turn.
func (r *Roster) ClearTransient(l *level.Level) {
	for _, m := range r.monsters {
		m.noticed = false
	}
}

// Commanded returns the monster currently under player command, if any.
func (r *Roster) Commanded() (sim.CommandedMonster, bool) {
	for _, m := range r.monsters {
		if !m.deleted && m.CommandTimer > 0 {
			return m, true
		}
	}
	return nil, false
}

func chebyshev(a, b grid.Loc) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
