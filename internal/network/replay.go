package network

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/philyawj/angband/internal/events"
	"github.com/philyawj/angband/internal/platform/logger"
)

// ReplayHandler exposes the immutable event history over REST, for
// spectators and for post-mortem analysis of a run.
type ReplayHandler struct {
	eventLog *events.EventLog
	logger   *logger.Logger
}

// NewReplayHandler creates a new replay handler.
func NewReplayHandler(el *events.EventLog, log *logger.Logger) *ReplayHandler {
	return &ReplayHandler{
		eventLog: el,
		logger:   log,
	}
}

// ReplayEvent is the public form of one recorded event.
type ReplayEvent struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Turn      int64  `json:"turn"`
	Type      string `json:"type"`
	ActorID   string `json:"actor_id"`
	Summary   string `json:"summary"`
	Details   any    `json:"details,omitempty"`
}

// ReplayResponse is the API response for a replay query.
type ReplayResponse struct {
	TotalEvents int           `json:"total_events"`
	FilteredBy  string        `json:"filtered_by,omitempty"`
	GeneratedAt string        `json:"generated_at"`
	Events      []ReplayEvent `json:"events"`
}

// HandleReplay returns the recorded history.
// GET /api/replay?since_turn=N&type=MESSAGE
func (rh *ReplayHandler) HandleReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sinceStr := r.URL.Query().Get("since_turn")
	eventType := r.URL.Query().Get("type")

	allEvents := rh.eventLog.Replay()

	var replayEvents []ReplayEvent
	filterDesc := ""

	for _, e := range allEvents {
		if sinceStr != "" {
			since, _ := strconv.ParseInt(sinceStr, 10, 64)
			if e.Turn < since {
				continue
			}
			filterDesc = "Turn >= " + sinceStr
		}
		if eventType != "" && string(e.Type) != eventType {
			continue
		}
		replayEvents = append(replayEvents, rh.convertToReplayEvent(e))
	}

	response := ReplayResponse{
		TotalEvents: len(replayEvents),
		FilteredBy:  filterDesc,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Events:      replayEvents,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// HandleEventDetail returns one event with its full payload.
// GET /api/replay/event?event_id=XXX
func (rh *ReplayHandler) HandleEventDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		rh.jsonError(w, "Missing event_id", http.StatusBadRequest)
		return
	}

	for _, e := range rh.eventLog.Replay() {
		if e.ID == eventID {
			detail := rh.convertToReplayEvent(e)
			detail.Details = e.Payload
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(detail)
			return
		}
	}

	rh.jsonError(w, "Event not found", http.StatusNotFound)
}

// HandleStats returns aggregate counts per event category.
// GET /api/replay/stats
func (rh *ReplayHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rh.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	allEvents := rh.eventLog.Replay()

	stats := map[string]int{
		"total_events":  len(allEvents),
		"messages":      0,
		"world_ticks":   0,
		"level_changes": 0,
		"deaths":        0,
	}

	for _, e := range allEvents {
		switch e.Type {
		case events.EventTypeMessage:
			stats["messages"]++
		case events.EventTypeTimeTick:
			stats["world_ticks"]++
		case events.EventTypeLevelChange:
			stats["level_changes"]++
		case events.EventTypeActorDied:
			stats["deaths"]++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"stats":        stats,
	})
}

// RegisterRoutes sets up the replay API routes.
func (rh *ReplayHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/replay", rh.HandleReplay)
	mux.HandleFunc("/api/replay/event", rh.HandleEventDetail)
	mux.HandleFunc("/api/replay/stats", rh.HandleStats)
}

// convertToReplayEvent transforms an internal event to public format.
func (rh *ReplayHandler) convertToReplayEvent(e events.GameEvent) ReplayEvent {
	return ReplayEvent{
		ID:        e.ID,
		Timestamp: e.Timestamp.Format("15:04:05"),
		Turn:      e.Turn,
		Type:      string(e.Type),
		ActorID:   e.ActorID,
		Summary:   summarizeEvent(e),
	}
}

// summarizeEvent creates a human-readable summary.
func summarizeEvent(e events.GameEvent) string {
	switch e.Type {
	case events.EventTypeMessage:
		if p, ok := e.Payload.(events.MessagePayload); ok {
			return p.Text
		}
		return "A message was shown."
	case events.EventTypeTimeTick:
		return "The world aged by ten turns."
	case events.EventTypeDayNight:
		return "Day turned to night, or night to day."
	case events.EventTypeLevelChange:
		return "The player travelled between depths."
	case events.EventTypeActorDied:
		return "The player died."
	case events.EventTypeRecharge:
		return "An item finished recharging."
	default:
		return "Something happened..."
	}
}

// jsonError sends an error response.
func (rh *ReplayHandler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
