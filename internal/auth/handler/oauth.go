package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/callback"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/translate"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

// oauthLogin starts the provider round-trip: state + PKCE cookies are
// issued here and validated when the provider redirects back.
func (h *Handler) oauthLogin(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	saveRedirectTarget(c, c.Query("redirect_to"))

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	c.Redirect(http.StatusFound, p.AuthCodeURL(state, codeChallenge))
}

// oauthCallback is the browser-facing callback endpoint. Every outcome
// is a 302; the decision logic lives in the callback package.
func (h *Handler) oauthCallback(c *gin.Context) {
	// The round-trip cookies are consumed by this request regardless of
	// its outcome. Clearing writes response headers only; the values are
	// still readable from the request below.
	clearFlowCookies(c)

	if !validateState(c) {
		h.redirect(c, h.callback.LoginError(translate.MsgInvalidLink))
		return
	}

	// Providers report user-driven aborts (e.g. consent denied) via an
	// error parameter instead of a code.
	if errParam := c.Query("error"); errParam != "" {
		h.log.Warn().
			Str("error", errParam).
			Str("desc", c.Query("error_description")).
			Msg("provider returned callback error")

		h.redirect(c, h.callback.LoginError(translate.MsgAuthFailed))
		return
	}

	reqURL := *c.Request.URL
	query := reqURL.Query()
	if query.Get("redirect_to") == "" {
		if target := redirectTarget(c); target != "" {
			query.Set("redirect_to", target)
			reqURL.RawQuery = query.Encode()
		}
	}

	rd := h.callback.Handle(c.Request.Context(), callback.Request{
		URL:          &reqURL,
		CodeVerifier: getPKCEVerifier(c),
	})

	if rd.Session != nil {
		session.SetCookie(c.Writer, rd.Session.SessionID, rd.Session.ExpiresAt, session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	h.redirect(c, rd)
}

func (h *Handler) redirect(c *gin.Context, rd callback.Redirect) {
	c.Redirect(http.StatusFound, rd.Location)
}
