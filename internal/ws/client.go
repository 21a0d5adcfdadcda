package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Outbound queue depth per connection.
	sendBuffer = 32
)

// client is one player's live connection to one game. A player has at
// most one client per game; reconnecting replaces the old one.
type client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	gameID     string
	playerName string

	// mu guards closed. The send channel is only closed with mu held
	// and closed set, so enqueue can never write to a closed channel
	// even from a stale snapshot of the session registry.
	mu     sync.Mutex
	closed bool
}

func newClient(h *Hub, conn *websocket.Conn, gameID, playerName string) *client {
	return &client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, sendBuffer),
		gameID:     gameID,
		playerName: playerName,
	}
}

// writePump drains the send channel onto the connection and keeps the
// peer alive with pings. It exits when the send channel closes or a
// write fails.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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

// enqueue queues a marshalled message for delivery. Messages to a
// shut-down client are dropped. A client whose queue is full is
// considered stuck and dropped rather than allowed to stall broadcasts.
func (c *client) enqueue(msg []byte) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	select {
	case c.send <- msg:
		c.mu.Unlock()
	default:
		c.mu.Unlock()
		c.hub.log.Warnw("dropping stalled websocket client",
			"game", c.gameID, "player", c.playerName)
		c.hub.unregister(c)
	}
}

// shutdown closes the send channel exactly once, which stops writePump.
// Safe to call from any goroutine and more than once.
func (c *client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
