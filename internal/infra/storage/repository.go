// Package storage persists the world clock, the player snapshot, and
// the immutable event log. Grids and monsters are regenerable and are
// deliberately not stored here; a save needs only the clock, the day
// counter, and the character sheet to resume.
package storage

import (
	"context"
	"time"
)

// EventRecord is the durable form of one game event.
type EventRecord struct {
	ID        string
	GameID    string
	Timestamp time.Time
	EventType string
	ActorID   string
	Turn      int64
	Payload   any
}

// WorldState is the persisted slice of the world clock.
type WorldState struct {
	GameID   string
	Turn     int64
	DayCount int
	Seed     int64
}

// PlayerSnapshot is the persisted character sheet, stored as a JSON
// document keyed by player.
type PlayerSnapshot struct {
	PlayerID string
	GameID   string
	Name     string
	Depth    int
	Sheet    []byte // full player JSON
}

// EventRepository stores the append-only event log.
type EventRepository interface {
	Append(ctx context.Context, event EventRecord) error
	GetByGameID(ctx context.Context, gameID string) ([]EventRecord, error)
	GetByEventType(ctx context.Context, gameID, eventType string) ([]EventRecord, error)
	GetSinceTurn(ctx context.Context, gameID string, turn int64) ([]EventRecord, error)
}

// WorldRepository stores the world clock.
type WorldRepository interface {
	Upsert(ctx context.Context, state WorldState) error
	Get(ctx context.Context, gameID string) (*WorldState, error)
}

// SnapshotRepository stores player snapshots.
type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot PlayerSnapshot) error
	GetByPlayerID(ctx context.Context, playerID string) (*PlayerSnapshot, error)
}
