// Package hub owns the set of live WebSocket connections. It is the only
// place the live set is mutated; everything else talks to it through
// Broadcast and the aggregated Inbound channel.
package hub

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/dyncan/data-bi-directional-sync/stats"
	"github.com/dyncan/data-bi-directional-sync/types"
)

const (
	DefaultSendBufferSize    = 32
	DefaultInboundBufferSize = 64
	DefaultWriteTimeout      = 10 * time.Second
)

type Config struct {
	SendBufferSize    int
	InboundBufferSize int
	WriteTimeout      time.Duration
}

type Hub struct {
	cfg *Config

	live  map[string]*Connection
	mutex *sync.RWMutex

	inboundCh chan *types.RelayMessage
	upgrader  websocket.Upgrader

	log *logrus.Entry
}

func New(cfg *Config) *Hub {
	if cfg == nil {
		cfg = &Config{}
	}

	if cfg.SendBufferSize <= 0 {
		cfg.SendBufferSize = DefaultSendBufferSize
	}

	if cfg.InboundBufferSize <= 0 {
		cfg.InboundBufferSize = DefaultInboundBufferSize
	}

	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	return &Hub{
		cfg:       cfg,
		live:      make(map[string]*Connection),
		mutex:     &sync.RWMutex{},
		inboundCh: make(chan *types.RelayMessage, cfg.InboundBufferSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: logrus.WithField("pkg", "hub"),
	}
}

// ServeWS upgrades an HTTP request into a hub connection. userID is the
// authenticated submitter identity; it travels with every inbound message
// from this connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID string) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("unable to upgrade connection: %s", err)
		return
	}

	h.Accept(ws, userID)
}

// Accept registers a new connection into the live set and starts its read
// and write pumps. No ordering is assigned relative to other connections.
func (h *Hub) Accept(ws wsConn, userID string) *Connection {
	conn := newConnection(h, ws, userID)

	h.mutex.Lock()
	h.live[conn.ID] = conn
	size := len(h.live)
	h.mutex.Unlock()

	stats.SetPromGauge(stats.HubLiveConnections, float64(size))

	h.log.Debugf("accepted connection '%s' (user '%s'), %d live", conn.ID, userID, size)

	go conn.writePump()
	go conn.readPump()

	return conn
}

// Broadcast serializes msg once and attempts delivery to every live
// connection. A failed or overflowing peer is removed from the live set
// and the failure is swallowed - one bad connection never blocks delivery
// to the rest.
func (h *Hub) Broadcast(msg *types.RelayMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Errorf("unable to serialize broadcast message: %s", err)
		return
	}

	for _, conn := range h.snapshot() {
		if !conn.trySend(data) {
			h.log.Warningf("connection '%s' is not accepting sends - removing", conn.ID)
			stats.Incr(stats.HubDroppedConnections, 1)
			h.Remove(conn)
		}
	}
}

// Inbound returns the aggregated stream of messages from all connections.
// Per-connection receipt order is preserved; there is no ordering across
// connections.
func (h *Hub) Inbound() <-chan *types.RelayMessage {
	return h.inboundCh
}

// Remove tears down a connection and drops it from the live set. Removing
// an already-absent connection is a no-op.
func (h *Hub) Remove(conn *Connection) {
	h.mutex.Lock()
	_, present := h.live[conn.ID]
	if present {
		delete(h.live, conn.ID)
	}
	size := len(h.live)
	h.mutex.Unlock()

	if !present {
		return
	}

	conn.close()

	stats.SetPromGauge(stats.HubLiveConnections, float64(size))

	h.log.Debugf("removed connection '%s', %d live", conn.ID, size)
}

func (h *Hub) Size() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.live)
}

// snapshot copies the live set so broadcast iteration tolerates
// concurrent removal.
func (h *Hub) snapshot() []*Connection {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	conns := make([]*Connection, 0, len(h.live))
	for _, conn := range h.live {
		conns = append(conns, conn)
	}

	return conns
}
