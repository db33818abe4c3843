package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event EventRecord) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO events (id, game_id, timestamp, event_type, actor_id, turn, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.GameID, event.Timestamp, event.EventType, event.ActorID,
		event.Turn, string(payloadBytes),
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]EventRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var e EventRecord
		var payloadStr string
		err := rows.Scan(
			&e.ID, &e.GameID, &e.Timestamp, &e.EventType, &e.ActorID,
			&e.Turn, &payloadStr,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *SQLiteEventRepository) GetByGameID(ctx context.Context, gameID string) ([]EventRecord, error) {
	query := `SELECT id, game_id, timestamp, event_type, actor_id, turn, payload FROM events WHERE game_id = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, gameID)
}

func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, gameID, eventType string) ([]EventRecord, error) {
	query := `SELECT id, game_id, timestamp, event_type, actor_id, turn, payload FROM events WHERE game_id = ? AND event_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, gameID, eventType)
}

func (r *SQLiteEventRepository) GetSinceTurn(ctx context.Context, gameID string, turn int64) ([]EventRecord, error) {
	query := `SELECT id, game_id, timestamp, event_type, actor_id, turn, payload FROM events WHERE game_id = ? AND turn >= ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, gameID, turn)
}

// ---------------------------------------------------------
// SQLiteWorldRepository
// ---------------------------------------------------------

type SQLiteWorldRepository struct {
	db *sql.DB
}

func NewSQLiteWorldRepository(db *sql.DB) *SQLiteWorldRepository {
	return &SQLiteWorldRepository{db: db}
}

func (r *SQLiteWorldRepository) Upsert(ctx context.Context, state WorldState) error {
	query := `
		INSERT INTO world_state (game_id, turn, day_count, seed, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO UPDATE SET
			turn=excluded.turn,
			day_count=excluded.day_count,
			seed=excluded.seed,
			last_updated=excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query,
		state.GameID, state.Turn, state.DayCount, state.Seed, time.Now(),
	)
	return err
}

func (r *SQLiteWorldRepository) Get(ctx context.Context, gameID string) (*WorldState, error) {
	query := `SELECT game_id, turn, day_count, seed FROM world_state WHERE game_id = ?`
	var s WorldState
	err := r.db.QueryRowContext(ctx, query, gameID).Scan(
		&s.GameID, &s.Turn, &s.DayCount, &s.Seed,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ---------------------------------------------------------
// SQLiteSnapshotRepository
// ---------------------------------------------------------

type SQLiteSnapshotRepository struct {
	db *sql.DB
}

func NewSQLiteSnapshotRepository(db *sql.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

func (r *SQLiteSnapshotRepository) Upsert(ctx context.Context, snapshot PlayerSnapshot) error {
	query := `
		INSERT INTO players (player_id, game_id, name, depth, sheet_json, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			game_id=excluded.game_id,
			name=excluded.name,
			depth=excluded.depth,
			sheet_json=excluded.sheet_json,
			last_updated=excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query,
		snapshot.PlayerID, snapshot.GameID, snapshot.Name, snapshot.Depth,
		string(snapshot.Sheet), time.Now(),
	)
	return err
}

func (r *SQLiteSnapshotRepository) GetByPlayerID(ctx context.Context, playerID string) (*PlayerSnapshot, error) {
	query := `SELECT player_id, game_id, name, depth, sheet_json FROM players WHERE player_id = ?`
	var p PlayerSnapshot
	var sheet string
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&p.PlayerID, &p.GameID, &p.Name, &p.Depth, &sheet,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.Sheet = []byte(sheet)
	return &p, nil
}
