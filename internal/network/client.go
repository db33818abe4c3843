package network

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"

	"github.com/philyawj/angband/internal/domain/grid"
	"github.com/philyawj/angband/internal/platform/metrics"
	"github.com/philyawj/angband/internal/sim"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second
	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var (
	errBadDirection  = errors.New("direction must be a unit step")
	errBadFoodValue  = errors.New("food value must be positive")
	errUnknownAction = errors.New("unknown action type")
)

// NewClient creates a new WebSocket client bound to a game session.
func NewClient(hub *Hub, session *Session, conn *websocket.Conn) *Client {
	return &Client{
		hub:     hub,
		session: session,
		conn:    conn,
		send:    make(chan []byte, 256),
	}
}

// PlayerAction is an incoming command from the frontend.
type PlayerAction struct {
	Type    string          `json:"type"` // "MOVE", "REST", "STAIRS", "EAT", "RECALL", "DESCENT"
	Payload json.RawMessage `json:"payload"`
}

// Register adds the client to the hub.
func (c *Client) Register() {
	c.hub.register <- c
}

// ReadPump pumps messages from the websocket connection into the game
// session.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				metrics.Get().RecordWSError()
				c.hub.logger.Error("websocket read failed: %v", err)
			}
			break
		}
		metrics.Get().RecordWSMessage(true)

		var action PlayerAction
		if err := json.Unmarshal(message, &action); err != nil {
			c.hub.logger.Error("Failed to parse PlayerAction from WebSocket: %v", err)
			continue
		}

		c.handlePlayerAction(action)
	}
}

func (c *Client) handlePlayerAction(action PlayerAction) {
	snap, err := c.session.Snapshot()
	if err != nil || snap.IsDead {
		return
	}

	cmd, err := BuildCommand(action)
	if err != nil {
		c.hub.logger.Warn("Rejected player action %q: %v", action.Type, err)
		return
	}

	c.session.Enqueue(cmd)
	c.hub.logger.Event("PLAYER_ACTION", snap.PlayerID, action.Type)
}

// BuildCommand translates a wire action into a game command.
func BuildCommand(action PlayerAction) (sim.Command, error) {
	switch action.Type {
	case "MOVE":
		var parsed struct {
			DX int `json:"dx"`
			DY int `json:"dy"`
		}
		if err := json.Unmarshal(action.Payload, &parsed); err != nil {
			return nil, err
		}
		if parsed.DX < -1 || parsed.DX > 1 || parsed.DY < -1 || parsed.DY > 1 ||
			(parsed.DX == 0 && parsed.DY == 0) {
			return nil, errBadDirection
		}
		return sim.MoveCommand{Dir: grid.Loc{X: parsed.DX, Y: parsed.DY}}, nil
	case "REST":
		return sim.RestCommand{}, nil
	case "STAIRS":
		var parsed struct {
			Down bool `json:"down"`
		}
		if err := json.Unmarshal(action.Payload, &parsed); err != nil {
			return nil, err
		}
		return sim.StairsCommand{Down: parsed.Down}, nil
	case "EAT":
		var parsed struct {
			Value int `json:"value"`
		}
		if err := json.Unmarshal(action.Payload, &parsed); err != nil {
			return nil, err
		}
		if parsed.Value <= 0 {
			return nil, errBadFoodValue
		}
		return sim.EatCommand{Value: parsed.Value}, nil
	case "RECALL":
		return sim.RecallCommand{}, nil
	case "DESCENT":
		return sim.DeepDescentCommand{}, nil
	}
	return nil, errUnknownAction
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current websocket message.
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
