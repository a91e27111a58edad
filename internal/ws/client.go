package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	writeTimeout     = 10 * time.Second
	wsReadLimit      = 4096
	clientSendBuffer = 256
	maxConnLifetime  = 4 * time.Hour
	pingInterval     = 30 * time.Second
	pingTimeout      = 10 * time.Second
	maxMissedPongs   = 2
)

// Client is one scene viewer connected over WebSocket.
type Client struct {
	ID          string
	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	log         *logrus.Entry
	connectedAt time.Time

	mu     sync.Mutex
	closed bool
}

// NewClient wraps conn for use with hub.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	id := uuid.NewString()

	return &Client{
		ID:          id,
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, clientSendBuffer),
		log:         hub.log.WithField("client_id", id),
		connectedAt: time.Now(),
	}
}

// closeSend closes the send queue once. Later enqueues are dropped.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// enqueue queues msg for this client only. It reports false when the queue
// is full or already closed.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) reply(kind, message string) {
	msg, err := json.Marshal(ReplyMsg{Type: kind, Message: message})
	if err != nil {
		return
	}
	c.enqueue(msg)
}

// ReadPump applies client messages until the connection closes, then
// unregisters the client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.CloseNow() //nolint:errcheck
	}()

	c.conn.SetReadLimit(wsReadLimit)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				c.log.WithField("status", status).Debug("client disconnected")
			}

			return
		}

		c.dispatch(data)
	}
}

func (c *Client) dispatch(data []byte) {
	var msg ClientMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		c.reply("error", "malformed message")

		return
	}

	switch msg.Type {
	case MsgSubscribe:
		if !c.hub.ReplayEvents(c, msg.LastEventID) {
			c.reply("resync", "requested events no longer available, fetch the scene snapshot")
		}
	case MsgHover, MsgUnhover:
		if err := c.hub.interact(msg.Type, msg.NodeID); err != nil {
			c.log.WithError(err).WithField("node_id", msg.NodeID).Debug("interaction rejected")
			c.reply("error", err.Error())
		}
	default:
		c.reply("error", fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

// WritePump delivers queued messages, keeps the connection alive with pings
// and closes it after maxConnLifetime.
func (c *Client) WritePump(ctx context.Context) {
	defer c.conn.CloseNow() //nolint:errcheck

	lifetime := time.NewTimer(time.Until(c.connectedAt.Add(maxConnLifetime)))
	defer lifetime.Stop()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	missed := 0

	for {
		select {
		case <-ping.C:
			if c.ping(ctx) {
				missed = 0

				continue
			}

			missed++
			if missed >= maxMissedPongs {
				c.log.WithField("missed", missed).Debug("closing unresponsive client")

				return
			}
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.write(ctx, msg); err != nil {
				c.log.WithError(err).Debug("write failed")

				return
			}
		case <-lifetime.C:
			c.log.Info("closing WebSocket: max connection lifetime exceeded")
			c.conn.Close(websocket.StatusNormalClosure, "max connection lifetime exceeded") //nolint:errcheck

			return
		}
	}
}

func (c *Client) ping(ctx context.Context) bool {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return c.conn.Ping(pctx) == nil
}

func (c *Client) write(ctx context.Context, msg []byte) error {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return c.conn.Write(wctx, websocket.MessageText, msg)
}
