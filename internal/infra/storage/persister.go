package storage

import (
	"context"
	"time"

	"github.com/philyawj/angband/internal/events"
	"github.com/philyawj/angband/internal/platform/metrics"
)

// EventPersister adapts an EventRepository to the event log's
// fire-and-forget persistence hook. Write latency and failures are
// recorded but never surfaced to the simulation.
type EventPersister struct {
	repo    EventRepository
	gameID  string
	timeout time.Duration
}

func NewEventPersister(repo EventRepository, gameID string) *EventPersister {
	return &EventPersister{
		repo:    repo,
		gameID:  gameID,
		timeout: 5 * time.Second,
	}
}

func (p *EventPersister) Append(event events.GameEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	start := time.Now()
	err := p.repo.Append(ctx, EventRecord{
		ID:        event.ID,
		GameID:    p.gameID,
		Timestamp: event.Timestamp,
		EventType: string(event.Type),
		ActorID:   event.ActorID,
		Turn:      event.Turn,
		Payload:   event.Payload,
	})
	metrics.Get().RecordEventWrite(time.Since(start), err)
	return err
}
