package commands

import (
	"errors"

	"tableside/internal/pkg/guard"
)

var (
	ErrFinishSessionCommandIsNotConstructed = errors.New(
		"FinishSessionCommand must be created via NewFinishSessionCommand constructor",
	)
	ErrSessionTokenIsRequired = errors.New("session token is required")
)

// FinishSessionCommand represents a request to close a dining session and
// settle its bill. Sessions are addressed by the public token handed out
// when the session was opened.
//
// Example:
//
//	cmd, err := NewFinishSessionCommand(sessionToken)
//	if err != nil {
//	    return fmt.Errorf("invalid finish request: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type FinishSessionCommand struct { //nolint:recvcheck //using for validation
	sessionToken string

	guard guard.ConstructorGuard
}

// NewFinishSessionCommand creates a command to finish a session.
// Validates that the session token is present.
func NewFinishSessionCommand(sessionToken string) (FinishSessionCommand, error) {
	finishCommand := FinishSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := finishCommand.setSessionToken(sessionToken); err != nil {
		return FinishSessionCommand{}, err
	}

	return finishCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFinishSessionCommandIsNotConstructed if validation fails.
func (c FinishSessionCommand) Validate() error {
	return c.guard.Validate(ErrFinishSessionCommandIsNotConstructed)
}

// SessionToken returns the public token of the session to finish.
func (c FinishSessionCommand) SessionToken() string {
	return c.sessionToken
}

func (c *FinishSessionCommand) setSessionToken(sessionToken string) error {
	if sessionToken == "" {
		return ErrSessionTokenIsRequired
	}

	c.sessionToken = sessionToken
	return nil
}
