package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// client is one websocket subscriber. Only its write loop touches conn
// for writing.
type client struct {
	gameID string
	conn   *websocket.Conn
	send   chan game.Event
}

// Hub fans move events out to the websocket subscribers of each game.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*client]struct{}
	log  zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		subs: make(map[string]map[*client]struct{}),
		log:  log,
	}
}

// Subscribe registers conn for events of gameID and starts its read and
// write loops. The hub owns conn from here on.
func (h *Hub) Subscribe(gameID string, conn *websocket.Conn) {
	c := &client{
		gameID: gameID,
		conn:   conn,
		send:   make(chan game.Event, sendBuffer),
	}

	h.mu.Lock()
	if h.subs[gameID] == nil {
		h.subs[gameID] = make(map[*client]struct{})
	}
	h.subs[gameID][c] = struct{}{}
	h.mu.Unlock()

	h.log.Debug().Str("game", gameID).Str("remote", conn.RemoteAddr().String()).Msg("subscriber joined")
	go h.writeLoop(c)
	go h.readLoop(c)
}

// Broadcast queues ev for every subscriber of its game. A subscriber whose
// buffer is full is dropped.
func (h *Hub) Broadcast(ev game.Event) {
	var slow []*client

	h.mu.RLock()
	for c := range h.subs[ev.GameID] {
		select {
		case c.send <- ev:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn().Str("game", c.gameID).Msg("dropping slow subscriber")
		h.unsubscribe(c)
	}
}

// Subscribers returns the number of subscribers of gameID.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[gameID])
}

// CloseGame disconnects every subscriber of gameID.
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.subs[gameID] {
		close(c.send)
	}
	delete(h.subs, gameID)
}

// CloseAll disconnects every subscriber.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, clients := range h.subs {
		for c := range clients {
			close(c.send)
		}
		delete(h.subs, id)
	}
}

// unsubscribe removes c once; its send channel is closed under the lock so
// Broadcast never sends on a closed channel.
func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients := h.subs[c.gameID]
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.subs, c.gameID)
	}
	close(c.send)
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for ev := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			h.log.Debug().Err(err).Str("game", c.gameID).Msg("write failed")
			h.unsubscribe(c)
			return
		}
	}

	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game closed"),
		time.Now().Add(writeWait))
}

// readLoop discards client messages and notices when the peer goes away.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.unsubscribe(c)
			return
		}
	}
}

func (s *Server) watchGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, err := s.games.Get(id); err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.log.Debug().Err(err).Str("game", id).Msg("websocket upgrade failed")
		return
	}
	s.hub.Subscribe(id, conn)
}
