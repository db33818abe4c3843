package storage

import (
	"context"
	"fmt"

	"github.com/philyawj/angband/internal/events"
)

// Reconstructor rebuilds the world clock from the event log. The
// world_state row is authoritative; replay exists to detect divergence
// between the row and the log after a crash mid-save.
type Reconstructor struct {
	eventsRepo EventRepository
	worldRepo  WorldRepository
}

func NewReconstructor(eventsRepo EventRepository, worldRepo WorldRepository) *Reconstructor {
	return &Reconstructor{eventsRepo: eventsRepo, worldRepo: worldRepo}
}

// ReplayClock derives the last known turn and day count from the
// recorded tick events.
func (r *Reconstructor) ReplayClock(ctx context.Context, gameID string) (turn int64, dayCount int, err error) {
	ticks, err := r.eventsRepo.GetByEventType(ctx, gameID, string(events.EventTypeTimeTick))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load tick events: %w", err)
	}

	for _, t := range ticks {
		if t.Turn > turn {
			turn = t.Turn
		}
		payload, ok := t.Payload.(map[string]any)
		if !ok {
			continue
		}
		if dc, ok := payload["day_count"].(float64); ok && int(dc) > dayCount {
			dayCount = int(dc)
		}
	}
	return turn, dayCount, nil
}

// Verify compares the stored world state against the replayed clock.
// A stored turn behind the log means the last save never finished.
func (r *Reconstructor) Verify(ctx context.Context, gameID string) error {
	state, err := r.worldRepo.Get(ctx, gameID)
	if err != nil {
		return err
	}
	if state == nil {
		return nil
	}

	turn, _, err := r.ReplayClock(ctx, gameID)
	if err != nil {
		return err
	}
	if state.Turn < turn {
		return fmt.Errorf("world state turn %d is behind event log turn %d", state.Turn, turn)
	}
	return nil
}
