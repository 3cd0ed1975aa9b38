package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pingInterval  = 30 * time.Second
	writeDeadline = 5 * time.Second
	readDeadline  = 60 * time.Second
	maxFrameSize  = 1 << 16
)

// Client is one live display connection. The hub owns the subscriber set;
// the client owns its connection and its buffered send channel. A client
// whose buffer is full when a broadcast arrives is considered a slow
// consumer and gets detached rather than blocking the hub.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, sendBuffer int) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// writePump drains the send channel onto the connection and keeps the
// connection alive with periodic pings. Returns when the send channel is
// closed or a write fails; the deferred detach makes both paths converge.
func (c *Client) writePump() {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()
	defer c.hub.Unsubscribe(c)

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write failed", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
				slog.Warn("websocket ping failed", slog.Any("error", err))
				return
			}
		}
	}
}

// readPump consumes incoming frames to keep the read deadline fresh and
// learn about closure. Display clients have no message protocol: whatever
// they send is discarded.
func (c *Client) readPump() {
	defer c.hub.Unsubscribe(c)

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read ended", slog.Any("error", err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	}
}
