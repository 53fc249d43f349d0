package resolver

import (
	"context"

	"github.com/google/uuid"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth"
)

// Resolver determines which internal user an external identity belongs
// to, and reads internal users back out. It is the ONLY place where
// identity-to-user mapping logic lives.
type Resolver interface {
	// Resolve finds or creates the internal user for an external
	// identity and returns its stable UUID.
	Resolve(ctx context.Context, identity *auth.ExternalIdentity) (uuid.UUID, error)

	// UserByID loads the internal identity record for a resolved user.
	// Returns (nil, nil) when the user does not exist.
	UserByID(ctx context.Context, id uuid.UUID) (*auth.Identity, error)

	// UserByEmail loads the internal identity record by email.
	// Returns (nil, nil) when the user does not exist.
	UserByEmail(ctx context.Context, email string) (*auth.Identity, error)
}
