package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/callback"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/credentials"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/login"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/provider"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/resolver"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/profile"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

// Handler wires the authentication flows to HTTP. All decisions live
// in the callback and login packages; this layer only moves cookies,
// query strings and JSON around.
type Handler struct {
	providers    *provider.Registry
	callback     *callback.Handler
	login        *login.Controller
	credentials  *credentials.Service
	sessionStore session.Store
	profiles     profile.Store
	resolver     resolver.Resolver
	log          zerolog.Logger
}

func NewHandler(
	providers *provider.Registry,
	cb *callback.Handler,
	loginCtrl *login.Controller,
	creds *credentials.Service,
	sessionStore session.Store,
	profiles profile.Store,
	res resolver.Resolver,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		providers:    providers,
		callback:     cb,
		login:        loginCtrl,
		credentials:  creds,
		sessionStore: sessionStore,
		profiles:     profiles,
		resolver:     res,
		log:          log.With().Str("component", "http").Logger(),
	}
}

// RegisterRoutes mounts the public authentication routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/oauth/login/:provider", h.oauthLogin)
	r.GET("/auth/callback", h.oauthCallback)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/register", h.Register)
	r.POST("/api/auth/logout", h.Logout)
}

// Logout deletes the session server-side and clears the cookie. It is
// idempotent: logging out twice is a 204 both times.
func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// best-effort delete; an expired redis key is fine
		_ = h.sessionStore.Delete(c.Request.Context(), cookie.Value)

		h.log.Info().
			Str("ip", c.ClientIP()).
			Msg("session terminated")
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}
