package auth

import "github.com/google/uuid"

// ExternalIdentity represents a normalized identity assertion returned
// by an OAuth/OIDC provider. It contains facts only, no decisions.
type ExternalIdentity struct {
	Provider       string // e.g. "google", "oidc"
	ProviderUserID string // provider-scoped unique user identifier (sub)
	Email          string
	EmailVerified  bool
	FullName       string // display name claim, may be empty
	AvatarURL      string // picture claim, may be empty
}

// Metadata carries the optional display attributes a provider asserted
// for an identity.
type Metadata struct {
	FullName  string
	Name      string
	AvatarURL string
}

// Identity is an authenticated internal user as seen by the rest of the
// service: the stable UUID plus whatever the provider told us. It is
// read-only to callers; the resolver owns its persistence.
type Identity struct {
	ID       uuid.UUID
	Email    string
	Metadata Metadata
}
