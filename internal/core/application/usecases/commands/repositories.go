// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"tableside/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// SessionRepoFactory provides access to the session repository within a transaction.
	SessionRepoFactory interface {
		SessionRepository() ports.SessionRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CustomerRepoFactory provides access to the customer repository within a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// MenuReaderFactory provides access to the menu catalog within a transaction.
	MenuReaderFactory interface {
		MenuReader() ports.MenuReader
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// SessionOrderUoW manages transactions spanning session and order
	// aggregates. Used by session finishing and abandonment.
	SessionOrderUoW interface {
		TxManager
		SessionRepoFactory
		OrderRepoFactory
	}

	// SessionOrderUoWFactory creates new session/order unit of work instances.
	SessionOrderUoWFactory interface {
		Create() SessionOrderUoW
	}

	// PlaceOrderUoW manages the full placement transaction: session
	// resolution, customer upsert, menu pricing and order persistence.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   sessionRepo := uow.SessionRepository()
	//   orderRepo := uow.OrderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	PlaceOrderUoW interface {
		TxManager
		SessionRepoFactory
		OrderRepoFactory
		CustomerRepoFactory
		MenuReaderFactory
	}

	// PlaceOrderUoWFactory creates new placement unit of work instances.
	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}
)
