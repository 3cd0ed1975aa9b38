package ws

import (
	"time"
)

// Event wire format pushed to display clients. Two event types exist:
//
//	{"type":"new_order","order":{...},"timestamp":...}
//	{"type":"order_status_update","order_id":...,"status":...,"timestamp":...}
//
// The timestamp is the publication time, not the order mutation time.
const (
	eventTypeNewOrder          = "new_order"
	eventTypeOrderStatusUpdate = "order_status_update"
)

type newOrderEvent struct {
	Type      string          `json:"type"`
	Order     newOrderPayload `json:"order"`
	Timestamp time.Time       `json:"timestamp"`
}

type newOrderPayload struct {
	ID          string    `json:"id"`
	Number      string    `json:"order_number"`
	SessionID   string    `json:"session_id"`
	TableNumber string    `json:"table_number"`
	Status      string    `json:"status"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
}

type orderStatusUpdateEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
