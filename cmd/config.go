package cmd

import (
	"time"

	"tableside/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Config carries everything the composition root needs to wire the
// application. Values come from the environment; parsing and defaulting
// happen in cmd/app before the root is built.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// TaxRate is the fraction applied on top of the bill subtotal.
	TaxRate decimal.Decimal

	// SessionCloseStatus is the terminal status finishing a session applies
	// to its open orders: order.Served or order.Paid.
	SessionCloseStatus order.Status

	// WSSendBuffer is the per-display-client event queue depth.
	WSSendBuffer int

	// EmptySessionTTL is how long an orderless session may block a table
	// before the background sweep abandons it.
	EmptySessionTTL time.Duration
}
