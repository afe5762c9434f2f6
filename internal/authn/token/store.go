// Package token owns the persisted token record: validity checks, the code
// exchange and refresh grants, and the stores that hold the record between
// sessions.
package token

import (
	"context"
	"errors"

	"flowauth/internal/authn/models"
)

// ErrNotFound is returned by Load when no token record exists.
var ErrNotFound = errors.New("token record not found")

// Store defines the persistence interface for the token record.
// Error Contract: Load returns ErrNotFound when no record is persisted.
// Implementations must be safe for concurrent use; the Manager serializes
// read-modify-write sequences on top.
type Store interface {
	Save(ctx context.Context, state *models.TokenState) error
	Load(ctx context.Context) (*models.TokenState, error)
	Clear(ctx context.Context) error
}
