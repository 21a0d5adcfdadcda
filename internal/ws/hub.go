// Package ws is the realtime transport. Each game has a set of live
// player sessions; every mutation is followed by a per-viewer state
// fanout so no client ever renders from a stale or over-shared
// snapshot.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"secrethitler/internal/models"
	"secrethitler/internal/store"
	"secrethitler/internal/view"
)

// outbound is the envelope for every server-to-client message.
type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// inbound is the envelope for every client-to-server message.
type inbound struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// Hub tracks live sessions per game and fans messages out to them.
type Hub struct {
	store *store.GameStore
	log   *zap.SugaredLogger

	upgrader websocket.Upgrader

	// OnMutate is called after every successful game mutation, outside
	// the game lock. main wires it to the bot runner.
	OnMutate func(g *models.Game)

	mu       sync.RWMutex
	sessions map[string]map[string]*client // gameID -> playerName -> client
}

// NewHub builds a hub. allowedOrigins restricts websocket upgrades; an
// empty list allows any origin.
func NewHub(st *store.GameStore, log *zap.SugaredLogger, allowedOrigins []string) *Hub {
	h := &Hub{
		store:    st,
		log:      log,
		sessions: make(map[string]map[string]*client),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
	return h
}

// register installs a session, replacing any previous connection the
// same player held for the game.
func (h *Hub) register(c *client) {
	h.mu.Lock()
	game := h.sessions[c.gameID]
	if game == nil {
		game = make(map[string]*client)
		h.sessions[c.gameID] = game
	}
	old := game[c.playerName]
	game[c.playerName] = c
	h.mu.Unlock()

	if old != nil {
		old.shutdown()
	}
}

// unregister removes a session if it is still the player's current one
// and reports whether it was. A client replaced by a reconnect is not
// current; tearing it down must not disturb the new session. Safe to
// call more than once.
func (h *Hub) unregister(c *client) bool {
	h.mu.Lock()
	game := h.sessions[c.gameID]
	current := game != nil && game[c.playerName] == c
	if current {
		delete(game, c.playerName)
		if len(game) == 0 {
			delete(h.sessions, c.gameID)
		}
	}
	h.mu.Unlock()

	if current {
		c.shutdown()
	}
	return current
}

// sendTo delivers one message to one session.
func (h *Hub) sendTo(c *client, typ string, payload any) {
	msg, err := json.Marshal(outbound{Type: typ, Payload: payload})
	if err != nil {
		h.log.Errorw("marshalling websocket message", "type", typ, "error", err)
		return
	}
	c.enqueue(msg)
}

// SendToPlayer delivers one message to a named player in a game, if
// they are connected.
func (h *Hub) SendToPlayer(gameID, playerName, typ string, payload any) {
	h.mu.RLock()
	c := h.sessions[gameID][playerName]
	h.mu.RUnlock()
	if c != nil {
		h.sendTo(c, typ, payload)
	}
}

// Broadcast sends the same message to every session in a game.
func (h *Hub) Broadcast(gameID, typ string, payload any) {
	msg, err := json.Marshal(outbound{Type: typ, Payload: payload})
	if err != nil {
		h.log.Errorw("marshalling broadcast", "type", typ, "error", err)
		return
	}
	for _, c := range h.gameClients(gameID) {
		c.enqueue(msg)
	}
}

// BroadcastState sends each connected player their own redacted view of
// the game. Messages are built under the game's read lock and sent
// after it is released.
func (h *Hub) BroadcastState(g *models.Game) {
	clients := h.gameClients(g.ID)
	if len(clients) == 0 {
		return
	}

	type delivery struct {
		c   *client
		msg []byte
	}
	deliveries := make([]delivery, 0, len(clients))

	g.RLock()
	for _, c := range clients {
		msg, err := json.Marshal(outbound{
			Type:    "game_state",
			Payload: view.Project(g, c.playerName),
		})
		if err != nil {
			h.log.Errorw("marshalling game state", "game", g.ID, "player", c.playerName, "error", err)
			continue
		}
		deliveries = append(deliveries, delivery{c: c, msg: msg})
	}
	g.RUnlock()

	for _, d := range deliveries {
		d.c.enqueue(d.msg)
	}
}

// gameClients snapshots the sessions of one game.
func (h *Hub) gameClients(gameID string) []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	game := h.sessions[gameID]
	out := make([]*client, 0, len(game))
	for _, c := range game {
		out = append(out, c)
	}
	return out
}

// kick notifies the bot runner that the game may be waiting on bots.
func (h *Hub) kick(g *models.Game) {
	if h.OnMutate != nil {
		h.OnMutate(g)
	}
}
