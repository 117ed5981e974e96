package session

import (
	"context"
	"errors"
)

// Store maps session tokens to user ids.
type Store interface {
	Save(ctx context.Context, token, userID string) error

	Lookup(ctx context.Context, token string) (string, error)

	Delete(ctx context.Context, token string) error
}

var ErrSessionNotFound = errors.New("session not found")
