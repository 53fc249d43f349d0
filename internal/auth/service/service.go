// Package service composes the OAuth providers, the credential
// service, the identity resolver and the session store into the
// authentication capability the HTTP handlers depend on.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/credentials"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/provider"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/resolver"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

// ErrInvalidCredentials mirrors the provider wording the translation
// table keys on, so the raw error is translatable as-is.
var ErrInvalidCredentials = errors.New("invalid login credentials")

// ErrUserNotFound is returned when a session resolves to no user row.
var ErrUserNotFound = errors.New("user not found")

// ExchangeRequest carries everything needed to redeem an authorization
// code: which provider issued it and the PKCE verifier bound to it.
type ExchangeRequest struct {
	Provider     string
	Code         string
	CodeVerifier string
}

// Service is the production authentication capability.
type Service struct {
	providers   *provider.Registry
	credentials *credentials.Service
	resolver    resolver.Resolver
	sessions    session.Store
	log         zerolog.Logger
}

func New(
	registry *provider.Registry,
	creds *credentials.Service,
	res resolver.Resolver,
	sessions session.Store,
	log zerolog.Logger,
) *Service {
	return &Service{
		providers:   registry,
		credentials: creds,
		resolver:    res,
		sessions:    sessions,
		log:         log.With().Str("component", "auth-service").Logger(),
	}
}

// ExchangeCodeForSession redeems an authorization code with the named
// provider, resolves the asserted identity to an internal user and
// creates a server-side session for it.
func (s *Service) ExchangeCodeForSession(
	ctx context.Context,
	r ExchangeRequest,
) (*session.Session, error) {

	p, err := s.providers.Get(r.Provider)
	if err != nil {
		return nil, err
	}

	identity, err := p.ExchangeCode(ctx, r.Code, r.CodeVerifier)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	userID, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	sess, err := session.New(userID.String())
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.log.Info().
		Str("provider", r.Provider).
		Str("user_id", userID.String()).
		Msg("code exchanged for session")

	return &sess, nil
}

// User returns the identity a session belongs to, or (nil, nil) when
// the user record is gone.
func (s *Service) User(ctx context.Context, sess *session.Session) (*auth.Identity, error) {
	if sess == nil {
		return nil, nil
	}

	userID, err := uuid.Parse(sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("malformed session user id: %w", err)
	}

	return s.resolver.UserByID(ctx, userID)
}

// SignInWithPassword authenticates an email/password credential and
// creates a session for the matched user. The returned error wording
// for rejected credentials is stable and translatable.
func (s *Service) SignInWithPassword(
	ctx context.Context,
	email string,
	password string,
) (*auth.Identity, *session.Session, error) {

	userID, err := s.credentials.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, credentials.ErrInvalidCredentials) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("authenticate: %w", err)
	}

	identity, err := s.resolver.UserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}
	if identity == nil {
		return nil, nil, ErrUserNotFound
	}

	sess, err := session.New(userID.String())
	if err != nil {
		return nil, nil, err
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, fmt.Errorf("persist session: %w", err)
	}

	return identity, &sess, nil
}
