package sim

import (
	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/domain/item"
	"github.com/philyawj/angband/internal/domain/level"
)

// Outcome is the explicit result of a world-tick step or a full round.
// Death never propagates through hidden flags alone; each step that can
// kill returns its outcome and the caller short-circuits on it.
type Outcome int

const (
	Continued Outcome = iota
	ActorDied
)

// Command is one queued player action. Execute performs the action and
// returns the energy it consumed; zero marks a free action and the
// scheduler offers the player another command in the same round.
type Command interface {
	Execute(e *Engine) int
}

// CommandQueue is the source of player actions. The engine only pops;
// the transport layer pushes, and scripted travel flushes.
type CommandQueue interface {
	Pop() (Command, bool)
	Push(cmd Command)
	Flush()
}

// SleepCommand is the forced action of a paralyzed or knocked-out
// player. It burns a full turn of energy and does nothing else.
type SleepCommand struct{}

func (SleepCommand) Execute(e *Engine) int {
	return e.world.Config.MoveEnergy
}

// CommandBuffer is a plain FIFO CommandQueue for the server and tests.
type CommandBuffer struct {
	cmds []Command
}

func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

func (b *CommandBuffer) Push(cmd Command) {
	b.cmds = append(b.cmds, cmd)
}

func (b *CommandBuffer) Pop() (Command, bool) {
	if len(b.cmds) == 0 {
		return nil, false
	}
	cmd := b.cmds[0]
	b.cmds = b.cmds[1:]
	return cmd, true
}

func (b *CommandBuffer) Flush() {
	b.cmds = nil
}

// CommandedMonster is the one monster currently under the player's
// mental command, if any. Its timer mirrors the player's command
// condition while line of sight holds.
type CommandedMonster interface {
	Grid() grid.Loc
	DecTimed(amount int)
	ClearTimed()
}

// MonsterService is the population layer the world core drives. The
// core never walks monster lists itself; it tells the service when to
// act, compact, spawn, and reset.
type MonsterService interface {
	// Count returns the number of live monsters on the level.
	Count(l *level.Level) int
	// Capacity returns the allocated monster slots, holes included.
	Capacity(l *level.Level) int
	// Compact removes the least interesting monsters until at most
	// keep slack remains, then squeezes deleted holes out of the list.
	Compact(l *level.Level, keep int)
	// SpawnNearby tries to place one new monster at least minDist away
	// from origin. It reports whether a monster was placed.
	SpawnNearby(l *level.Level, origin grid.Loc, minDist int) bool
	// Process gives a turn to every monster with more energy than the
	// threshold. The player's energy plus one keeps faster monsters
	// acting first.
	Process(minEnergy int)
	// ResetReady re-arms the per-round acted flags.
	ResetReady(l *level.Level)
	// ClearTransient drops the one-command visibility flags after the
	// player spends energy.
	ClearTransient(l *level.Level)
	// Commanded returns the monster under player command, if any.
	Commanded() (CommandedMonster, bool)
}

// Effects is the combat and character-maintenance layer. The world core
// decides when these fire; the effect layer decides what they do to the
// character sheet.
type Effects interface {
	// TakeHit applies damage with a death cause. The player's IsDead
	// flag is authoritative afterwards.
	TakeHit(p *actor.Player, damage int, cause string)
	// HealHP restores hit points up to the maximum.
	HealHP(p *actor.Player, amount int)
	// OverExert strains the player: chance percent of damage to hit
	// points from pushing past their limits.
	OverExert(p *actor.Player, chance, damage int)
	// DrainStat permanently lowers one stat.
	DrainStat(p *actor.Player, stat string)
	// LoseExp drains experience.
	LoseExp(p *actor.Player, amount int)
	// RegenHP and RegenMana run the passive recovery step.
	RegenHP(p *actor.Player)
	RegenMana(p *actor.Player)
	// RefreshBonus recomputes derived bonuses after a light change.
	RefreshBonus(p *actor.Player)
	// UpdateLight burns light-source fuel and adjusts the light radius.
	UpdateLight(p *actor.Player)
	// LearnAfterTime runs timed rune learning on carried gear.
	LearnAfterTime(p *actor.Player)
	// NoticeDrainGear flags carried experience-draining gear as known.
	NoticeDrainGear(p *actor.Player)
	// CurseEffect fires an awakened curse and reports whether the
	// player identified it.
	CurseEffect(it *item.Item, c *item.Curse) bool
	// TerrainDamage applies the damage of the terrain under the player.
	TerrainDamage(p *actor.Player, loc grid.Loc)
	// Destruction collapses the dungeon around a point.
	Destruction(l *level.Level, center grid.Loc, radius int)
}

// LevelBuilder generates and recycles level descriptors. BuildNext may
// return a cached descriptor for a persistent depth.
type LevelBuilder interface {
	BuildNext(p *actor.Player, depth int) (*level.Level, error)
	Teardown(l *level.Level)
	// Illuminate relights or darkens a surface level at dawn or dusk.
	Illuminate(l *level.Level, daytime bool)
}
