package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"

	"github.com/dyncan/data-bi-directional-sync/stats"
	"github.com/dyncan/data-bi-directional-sync/types"
)

// wsConn is the slice of *websocket.Conn the hub actually uses. Tests
// substitute their own implementation.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(int, []byte) error
	SetWriteDeadline(time.Time) error
	Close() error
}

// Connection is one live client channel. It is owned exclusively by the
// hub: created on accept, destroyed on disconnect or send failure. A
// destroyed connection never receives further sends.
type Connection struct {
	ID     string
	UserID string

	hub  *Hub
	ws   wsConn
	send chan []byte
	done chan struct{}

	closeOnce sync.Once

	log *logrus.Entry
}

func newConnection(h *Hub, ws wsConn, userID string) *Connection {
	id := uuid.NewV4().String()

	return &Connection{
		ID:     id,
		UserID: userID,
		hub:    h,
		ws:     ws,
		send:   make(chan []byte, h.cfg.SendBufferSize),
		done:   make(chan struct{}),
		log:    logrus.WithField("pkg", "hub").WithField("connId", id),
	}
}

// trySend enqueues data without blocking. A false return means the
// connection is closed or its send buffer is full - the hub's cue to drop
// the peer rather than stall the broadcast.
func (c *Connection) trySend(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

func (c *Connection) writePump() {
	for {
		select {
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(c.hub.cfg.WriteTimeout))

			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debugf("send failed: %s", err)
				stats.Incr(stats.HubDroppedConnections, 1)
				c.hub.Remove(c)
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Connection) readPump() {
	defer c.hub.Remove(c)

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			c.log.Debugf("read failed: %s", err)
			return
		}

		msg := &types.RelayMessage{}
		if err := json.Unmarshal(raw, msg); err != nil {
			c.log.Errorf("discarding malformed frame: %s", err)
			continue
		}

		msg.Raw = raw
		msg.ConnectionID = c.ID
		msg.UserID = c.UserID

		select {
		case c.hub.inboundCh <- msg:
		case <-c.done:
			return
		}
	}
}
