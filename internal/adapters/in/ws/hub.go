// Package ws implements the notification fanout: a publish/subscribe hub
// pushing order events to every connected display client over gorilla
// websockets. The hub implements ports.EventPublisher, so command handlers
// publish through the port without knowing about connections.
//
// Delivery is best-effort by contract: a publish with zero subscribers is a
// no-op, a failing connection is detached without affecting the others, and
// nothing is retried.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/gorilla/websocket"
)

// Hub owns the subscriber set behind a mutex. The raw collection is never
// exposed; callers interact only through Subscribe, Unsubscribe and the
// publisher port methods.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	sendBuffer int
	upgrader   websocket.Upgrader
}

// NewHub creates a fanout hub. sendBuffer is the per-client queue depth;
// a client that falls this far behind is detached on the next broadcast.
func NewHub(sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Displays connect from kiosk hardware on the restaurant LAN.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// Serve upgrades an HTTP request to a websocket connection, subscribes it
// and runs the pumps. Blocks until the connection ends.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := h.subscribeConn(conn)
	go client.writePump()
	client.readPump()
	return nil
}

// subscribeConn registers a new live connection and returns its handle.
func (h *Hub) subscribeConn(conn *websocket.Conn) *Client {
	client := newClient(h, conn, h.sendBuffer)

	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()

	slog.Info("display client connected", slog.Int("clients", total))
	return client
}

// Unsubscribe removes a connection. Safe to call multiple times and on a
// client that was already detached.
func (h *Hub) Unsubscribe(client *Client) {
	if client == nil {
		return
	}

	h.mu.Lock()
	_, known := h.clients[client]
	delete(h.clients, client)
	total := len(h.clients)
	// Closing under the lock keeps broadcast from writing to a closed
	// channel: sends only happen while the read lock is held.
	client.close()
	h.mu.Unlock()

	if known {
		slog.Info("display client detached", slog.Int("clients", total))
	}
}

// PublishNewOrder pushes a new-order event to every subscriber.
func (h *Hub) PublishNewOrder(placed *order.Order, sessionToken string) {
	h.broadcast(newOrderEvent{
		Type: eventTypeNewOrder,
		Order: newOrderPayload{
			ID:          placed.ID().String(),
			Number:      placed.Number(),
			SessionID:   sessionToken,
			TableNumber: placed.TableNumber(),
			Status:      placed.Status().String(),
			TotalPrice:  placed.TotalPrice().Float64(),
			CreatedAt:   placed.CreatedAt(),
		},
		Timestamp: time.Now().UTC(),
	})
}

// PublishOrderStatusChanged pushes a status-change event to every subscriber.
func (h *Hub) PublishOrderStatusChanged(orderID kernel.UUID, status order.Status) {
	h.broadcast(orderStatusUpdateEvent{
		Type:      eventTypeOrderStatusUpdate,
		OrderID:   orderID.String(),
		Status:    status.String(),
		Timestamp: time.Now().UTC(),
	})
}

// broadcast serializes the event once and queues it on every subscriber.
// A subscriber whose buffer is full is detached asynchronously; delivery to
// the others proceeds regardless.
func (h *Hub) broadcast(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		slog.Error("event marshal failed", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			slog.Warn("display client send buffer full, detaching")
			go h.Unsubscribe(client)
		}
	}
	h.mu.RUnlock()
}
