// Package callback drives the redirect-based half of authentication:
// turning an authorization code from the request URL into a session, a
// guaranteed profile record and an access-log entry, then computing
// where the browser goes next. Every outcome is a redirect; nothing
// escapes to the caller.
package callback

import (
	"context"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/service"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/translate"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/audit"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

// DefaultTarget is where successful logins land when the link carried
// no explicit destination.
const DefaultTarget = "/dashboard"

// AuthService is the slice of the authentication capability this
// handler needs.
type AuthService interface {
	ExchangeCodeForSession(ctx context.Context, r service.ExchangeRequest) (*session.Session, error)
	User(ctx context.Context, s *session.Session) (*auth.Identity, error)
}

// Provisioner guarantees a profile record for an authenticated user.
type Provisioner interface {
	Ensure(ctx context.Context, identity *auth.Identity) error
}

// Redirect is the only kind of response the callback produces.
type Redirect struct {
	Location string
	// Session is set only on the success path; the HTTP layer issues
	// the cookie from it before redirecting.
	Session *session.Session
}

// Request is the callback input: the incoming request URL plus the
// PKCE verifier recovered from the flow cookie.
type Request struct {
	URL          *url.URL
	CodeVerifier string
}

type Handler struct {
	auth            AuthService
	profiles        Provisioner
	audit           audit.Recorder
	origin          string
	defaultProvider string
	log             zerolog.Logger
}

// NewHandler builds the callback handler. origin must be the trusted
// application origin from configuration; it is never derived from the
// incoming request.
func NewHandler(
	authSvc AuthService,
	profiles Provisioner,
	recorder audit.Recorder,
	origin string,
	defaultProvider string,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		auth:            authSvc,
		profiles:        profiles,
		audit:           recorder,
		origin:          origin,
		defaultProvider: defaultProvider,
		log:             log.With().Str("component", "oauth-callback").Logger(),
	}
}

// Handle processes one callback request. It always returns a redirect:
// to the requested in-app target on success, to the login page with a
// localized error otherwise.
func (h *Handler) Handle(ctx context.Context, req Request) (rd Redirect) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("callback handling panicked")
			rd = h.LoginError(translate.MsgInternalError)
		}
	}()

	query := req.URL.Query()

	code := query.Get("code")
	if code == "" {
		return h.LoginError(translate.MsgInvalidLink)
	}

	providerName := query.Get("provider")
	if providerName == "" {
		providerName = h.defaultProvider
	}

	sess, err := h.auth.ExchangeCodeForSession(ctx, service.ExchangeRequest{
		Provider:     providerName,
		Code:         code,
		CodeVerifier: req.CodeVerifier,
	})
	if err != nil {
		h.log.Warn().Err(err).Str("provider", providerName).Msg("code exchange failed")
		return h.LoginError(translate.MsgAuthFailed)
	}

	identity, err := h.auth.User(ctx, sess)
	if err != nil {
		h.log.Error().Err(err).Msg("user fetch failed after exchange")
		return h.LoginError(translate.MsgAuthFailed)
	}
	if identity == nil {
		h.log.Warn().Msg("exchange succeeded but session has no user")
		return h.LoginError(translate.MsgAuthFailed)
	}

	// Access is logged before the profile check and regardless of its
	// outcome; a failing audit sink must never abort the login.
	h.recordAccess(ctx, identity.ID)

	if err := h.profiles.Ensure(ctx, identity); err != nil {
		h.log.Error().
			Err(err).
			Str("user_id", identity.ID.String()).
			Msg("profile provisioning failed")
		return h.LoginError(translate.MsgInternalError)
	}

	return Redirect{
		Location: h.origin + sanitizeTarget(query.Get("redirect_to")),
		Session:  sess,
	}
}

// LoginError builds the login-page redirect carrying a localized,
// URL-encoded message. The target origin is always the configured one.
func (h *Handler) LoginError(message string) Redirect {
	return Redirect{
		Location: h.origin + "/login?error=" + url.QueryEscape(message),
	}
}

func (h *Handler) recordAccess(ctx context.Context, userID uuid.UUID) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Warn().Interface("panic", r).Msg("audit recorder panicked")
		}
	}()
	h.audit.Record(ctx, userID, audit.TypeOAuthLogin)
}

// sanitizeTarget keeps redirect targets inside the application: only
// relative paths are accepted, everything else falls back to the
// dashboard. Prevents open redirects via attacker-supplied links.
func sanitizeTarget(target string) string {
	if target == "" ||
		!strings.HasPrefix(target, "/") ||
		strings.HasPrefix(target, "//") ||
		strings.Contains(target, "\\") {
		return DefaultTarget
	}
	return target
}
