package commands

import (
	"errors"
	"time"

	"tableside/internal/pkg/guard"
)

var (
	ErrAbandonEmptySessionsCommandIsNotConstructed = errors.New(
		"AbandonEmptySessionsCommand must be created via NewAbandonEmptySessionsCommand constructor",
	)
	ErrOlderThanIsInvalid = errors.New("older-than duration must be greater than 0")
)

// AbandonEmptySessionsCommand represents a housekeeping request to close
// active sessions that were opened but never received an order.
type AbandonEmptySessionsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewAbandonEmptySessionsCommand creates a command to abandon stale empty
// sessions older than the given duration.
func NewAbandonEmptySessionsCommand(olderThan time.Duration) (AbandonEmptySessionsCommand, error) {
	abandonCommand := AbandonEmptySessionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := abandonCommand.setOlderThan(olderThan); err != nil {
		return AbandonEmptySessionsCommand{}, err
	}

	return abandonCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAbandonEmptySessionsCommandIsNotConstructed if validation fails.
func (c AbandonEmptySessionsCommand) Validate() error {
	return c.guard.Validate(ErrAbandonEmptySessionsCommandIsNotConstructed)
}

// OlderThan returns the minimum age of sessions eligible for abandonment.
func (c AbandonEmptySessionsCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c *AbandonEmptySessionsCommand) setOlderThan(olderThan time.Duration) error {
	if olderThan <= 0 {
		return ErrOlderThanIsInvalid
	}

	c.olderThan = olderThan
	return nil
}
