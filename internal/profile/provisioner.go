package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth"
)

// Provisioner ensures an authenticated identity has a profile record.
type Provisioner struct {
	store Store
	log   zerolog.Logger
}

func NewProvisioner(store Store, log zerolog.Logger) *Provisioner {
	return &Provisioner{
		store: store,
		log:   log.With().Str("component", "profile-provisioner").Logger(),
	}
}

// Ensure creates the profile for an identity if it does not exist yet.
// Existing profiles are left untouched, so repeated logins (including
// concurrent duplicate callbacks for the same magic link) are no-ops.
func (p *Provisioner) Ensure(ctx context.Context, identity *auth.Identity) error {
	if identity == nil {
		return errors.New("identity is nil")
	}

	existing, err := p.store.FindByID(ctx, identity.ID)
	if err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}

	if existing != nil {
		return nil
	}

	name := identity.Metadata.FullName
	if name == "" {
		name = identity.Metadata.Name
	}

	if err := p.store.Insert(ctx, Profile{
		ID:        identity.ID,
		Email:     identity.Email,
		Name:      name,
		AvatarURL: identity.Metadata.AvatarURL,
	}); err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}

	p.log.Info().
		Str("user_id", identity.ID.String()).
		Msg("profile created")

	return nil
}
