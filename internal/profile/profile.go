// Package profile guarantees that every authenticated user has exactly
// one profile record. Profiles are created lazily on first login and
// never overwritten by the authentication flow.
package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile is the persisted patient-facing record for a user. Its ID is
// the user's UUID, so there can be at most one per identity.
type Profile struct {
	ID        uuid.UUID
	Email     string
	Name      string
	AvatarURL string
	CreatedAt time.Time
}

// Store defines the narrow persistence surface the provisioner needs.
type Store interface {
	// FindByID returns (nil, nil) when no profile exists.
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// Insert creates the profile if absent. A concurrent duplicate
	// insert for the same ID must not error and must not produce a
	// second record.
	Insert(ctx context.Context, p Profile) error
}
