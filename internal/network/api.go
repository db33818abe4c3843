package network

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/philyawj/angband/internal/platform/logger"
)

// APIBridge is the REST face of one game session: status inspection
// and command injection for clients that do not hold a websocket.
type APIBridge struct {
	session *Session
	logger  *logger.Logger
}

// NewAPIBridge creates the REST handler for a session.
func NewAPIBridge(session *Session, log *logger.Logger) *APIBridge {
	return &APIBridge{session: session, logger: log}
}

// StatusResponse is the snapshot returned by /api/status.
type StatusResponse struct {
	Turn        int64  `json:"turn"`
	DayCount    int    `json:"day_count"`
	Daytime     bool   `json:"daytime"`
	PlayerID    string `json:"player_id"`
	PlayerName  string `json:"player_name"`
	Depth       int    `json:"depth"`
	HP          int    `json:"hp"`
	MaxHP       int    `json:"max_hp"`
	Energy      int    `json:"energy"`
	IsDead      bool   `json:"is_dead"`
	DeathCause  string `json:"death_cause,omitempty"`
	GeneratedAt string `json:"generated_at"`
}

// HandleStatus returns the current world and player state.
// GET /api/status
func (a *APIBridge) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := a.session.Snapshot()
	if err != nil {
		a.jsonError(w, "Failed to snapshot session", http.StatusInternalServerError)
		return
	}

	resp := StatusResponse{
		Turn:        snap.Turn,
		DayCount:    snap.DayCount,
		Daytime:     snap.Daytime,
		PlayerID:    snap.PlayerID,
		PlayerName:  snap.PlayerName,
		Depth:       snap.Depth,
		HP:          snap.HP,
		MaxHP:       snap.MaxHP,
		Energy:      snap.Energy,
		IsDead:      snap.IsDead,
		DeathCause:  snap.DeathCause,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleCommand injects one player action into the session.
// POST /api/command with a PlayerAction body.
func (a *APIBridge) HandleCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var action PlayerAction
	if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
		a.jsonError(w, "Malformed action body", http.StatusBadRequest)
		return
	}

	snap, err := a.session.Snapshot()
	if err != nil {
		a.jsonError(w, "Failed to snapshot session", http.StatusInternalServerError)
		return
	}
	if snap.IsDead {
		a.jsonError(w, "The player is dead", http.StatusConflict)
		return
	}

	cmd, err := BuildCommand(action)
	if err != nil {
		a.jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	turn := a.session.Enqueue(cmd)
	a.logger.Event("API_COMMAND", snap.PlayerID, action.Type)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"accepted": true,
		"turn":     turn,
	})
}

// RegisterRoutes sets up the session API routes.
func (a *APIBridge) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/status", a.HandleStatus)
	mux.HandleFunc("/api/command", a.HandleCommand)
}

// jsonError sends an error response.
func (a *APIBridge) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
