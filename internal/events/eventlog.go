// Package events provides the append-only event stream of the game.
// The simulation core emits fire-and-forget notifications here; the
// websocket hub, the persister, and tests all consume the same stream.
package events

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// EventType defines the category of a game event.
type EventType string

const (
	EventTypeMessage     EventType = "MESSAGE"      // text for the player
	EventTypeSound       EventType = "SOUND"        // ambient or cue sound
	EventTypeDisturb     EventType = "DISTURB"      // break rest/repeat
	EventTypeRedraw      EventType = "REDRAW"       // region redraw hint
	EventTypeTimeTick    EventType = "TIME_TICK"    // world tick fired
	EventTypeDayNight    EventType = "DAY_NIGHT"    // dawn or dusk on the surface
	EventTypeLevelChange EventType = "LEVEL_CHANGE" // forced or scripted travel
	EventTypeActorDied   EventType = "ACTOR_DIED"   // the player died
	EventTypeRecharge    EventType = "RECHARGE"     // an item stack recharged
)

// MessagePayload carries player-visible text.
type MessagePayload struct {
	Text string `json:"text"`
}

// SoundPayload names a sound cue.
type SoundPayload struct {
	Cue string `json:"cue"`
}

// RedrawPayload hints at a map region needing a redraw.
type RedrawPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TimeTickPayload is attached to each world-tick event.
type TimeTickPayload struct {
	Turn     int64 `json:"turn"`
	DayCount int   `json:"day_count"`
	Daytime  bool  `json:"daytime"`
}

// DayNightPayload describes a surface lighting transition.
type DayNightPayload struct {
	Dawn bool `json:"dawn"`
}

// LevelChangePayload describes scripted travel between depths.
type LevelChangePayload struct {
	FromDepth int    `json:"from_depth"`
	ToDepth   int    `json:"to_depth"`
	Reason    string `json:"reason"`
}

// GameEvent represents an immutable record of something that happened.
type GameEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ActorID   string    `json:"actor_id"`
	Turn      int64     `json:"turn"`
	Payload   any       `json:"payload"`
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// EventLog is the in-memory append-only log of game events.
type EventLog struct {
	mu        sync.RWMutex
	events    []GameEvent
	persister EventPersister
}

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]GameEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. Events are immutable once appended.
// The simulation never blocks on persistence.
func (el *EventLog) Append(event GameEvent) {
	el.mu.Lock()
	el.events = append(el.events, event)
	el.mu.Unlock()

	if el.persister != nil {
		go func(e GameEvent) {
			_ = el.persister.Append(e)
		}(event)
	}
}

// Replay returns the full history of events.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.events
}

// GetByType returns all events of one category.
func (el *EventLog) GetByType(t EventType) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// GetSinceTurn returns all events recorded at or after the given turn.
func (el *EventLog) GetSinceTurn(turn int64) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.Turn >= turn {
			result = append(result, e)
		}
	}
	return result
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return time.Now().Format("20060102150405") + "-" + fmt.Sprintf("%06x", rand.Intn(1<<24))
}
