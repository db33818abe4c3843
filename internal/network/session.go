// Package network carries the transport layer: the websocket hub that
// streams game events out, the client read/write pumps that feed player
// commands in, and the small REST API for status and replay.
package network

import (
	"encoding/json"
	"sync"

	"github.com/philyawj/angband/internal/domain/actor"
	"github.com/philyawj/angband/internal/events"
	"github.com/philyawj/angband/internal/sim"
)

// Session serializes access to one engine. The engine is strictly
// single-threaded; every transport goroutine funnels through here, so
// the simulation only ever runs under the session lock.
type Session struct {
	mu     sync.Mutex
	engine *sim.Engine
	queue  *sim.CommandBuffer
}

func NewSession(engine *sim.Engine, queue *sim.CommandBuffer) *Session {
	return &Session{engine: engine, queue: queue}
}

// Enqueue pushes a command and gives the engine the thread until it
// needs more input. It returns the world turn after the engine settles.
func (s *Session) Enqueue(cmd sim.Command) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Push(cmd)
	s.engine.Run()
	return s.engine.World().Turn
}

// SessionSnapshot is a consistent copy of the mutable session state,
// taken under the session lock so readers never observe the engine
// mid-mutation.
type SessionSnapshot struct {
	Turn       int64
	DayCount   int
	Daytime    bool
	PlayerID   string
	PlayerName string
	Depth      int
	HP         int
	MaxHP      int
	Energy     int
	IsDead     bool
	DeathCause string
	Sheet      json.RawMessage
}

// Snapshot copies the player and clock under the session lock. The
// engine mutates both in place during Enqueue, so any concurrent reader
// (status endpoints, the backup loop) must go through here.
func (s *Session) Snapshot() (SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.engine.Player()
	w := s.engine.World()

	sheet, err := json.Marshal(p)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return SessionSnapshot{
		Turn:       w.Turn,
		DayCount:   w.DayCount,
		Daytime:    w.IsDaytime(),
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Depth:      p.Depth,
		HP:         p.HP,
		MaxHP:      p.MaxHP,
		Energy:     p.Energy,
		IsDead:     p.IsDead,
		DeathCause: p.DeathCause,
		Sheet:      sheet,
	}, nil
}

// Player returns the player character. Callers must hold the engine
// thread (no concurrent Enqueue) or use Snapshot instead.
func (s *Session) Player() *actor.Player {
	return s.engine.Player()
}

// World returns the world context under the same caveat as Player.
func (s *Session) World() *sim.World {
	return s.engine.World()
}

// EventLog returns the session's event stream.
func (s *Session) EventLog() *events.EventLog {
	return s.engine.EventLog()
}
