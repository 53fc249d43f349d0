// Package login drives password-based sign-in from a submitted form to
// a session or a displayed, localized error. All provider failures are
// absorbed here; callers only ever see an Outcome.
package login

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/translate"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/audit"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

// RedirectTarget is where a successful credential login navigates.
const RedirectTarget = "/dashboard"

// Kind discriminates the possible results of a login attempt.
type Kind int

const (
	// Success carries the navigation target and the created session.
	Success Kind = iota
	// ValidationError means malformed input; no provider call happened.
	ValidationError
	// AuthError means the provider rejected or the attempt failed.
	AuthError
)

// Outcome is the single result of one login attempt.
type Outcome struct {
	Kind Kind

	// RedirectTarget is set on Success.
	RedirectTarget string
	// Session is set on Success; the HTTP layer issues the cookie.
	Session *session.Session
	// Message is the localized user-facing text on error outcomes.
	Message string
}

// AuthService is the credential slice of the authentication capability.
type AuthService interface {
	SignInWithPassword(ctx context.Context, email, password string) (*auth.Identity, *session.Session, error)
}

// Notifier is the user-visible notification side channel. It is
// injected per call so tests and callers can observe exact sequences;
// there is no process-wide notification state.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Controller handles password login attempts.
type Controller struct {
	auth  AuthService
	audit audit.Recorder
	log   zerolog.Logger
}

func NewController(authSvc AuthService, recorder audit.Recorder, log zerolog.Logger) *Controller {
	return &Controller{
		auth:  authSvc,
		audit: recorder,
		log:   log.With().Str("component", "credential-login").Logger(),
	}
}

// Submit runs one login attempt. Exactly one notification is emitted
// per attempt, and navigation happens only on success.
func (c *Controller) Submit(
	ctx context.Context,
	notifier Notifier,
	email string,
	password string,
) (out Outcome) {

	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("login attempt panicked")
			out = Outcome{Kind: AuthError, Message: translate.Fallback}
			notifier.Error(out.Message)
		}
	}()

	if email == "" || password == "" {
		out = Outcome{Kind: ValidationError, Message: translate.MsgMissingFields}
		notifier.Error(out.Message)
		return out
	}

	identity, sess, err := c.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		out = Outcome{Kind: AuthError, Message: translate.Translate(err.Error())}
		notifier.Error(out.Message)
		return out
	}

	if identity == nil {
		out = Outcome{Kind: AuthError, Message: translate.Fallback}
		notifier.Error(out.Message)
		return out
	}

	c.recordAccess(ctx, identity)

	out = Outcome{
		Kind:           Success,
		RedirectTarget: RedirectTarget,
		Session:        sess,
	}
	notifier.Success("Login realizado com sucesso!")
	return out
}

func (c *Controller) recordAccess(ctx context.Context, identity *auth.Identity) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn().Interface("panic", r).Msg("audit recorder panicked")
		}
	}()
	c.audit.Record(ctx, identity.ID, audit.TypePasswordLogin)
}
