package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/utils"
)

const (
	stateCookieName    = "__oauth_state"
	redirectCookieName = "__oauth_redirect"
	flowTTL            = 5 * time.Minute
)

func generateState(c *gin.Context) string {
	state := utils.RandomString(32)

	setFlowCookie(c, stateCookieName, state)

	return state
}

// validateState checks the CSRF state round-trip. Flows initiated here
// carry a state cookie; emailed magic links hit the callback directly
// with neither cookie nor query value, which is accepted.
func validateState(c *gin.Context) bool {
	stateQuery := c.Query("state")
	cookie, err := c.Request.Cookie(stateCookieName)

	if stateQuery == "" && err != nil {
		return true
	}
	if stateQuery == "" || err != nil {
		return false
	}

	return cookie.Value == stateQuery
}

// saveRedirectTarget remembers the requested post-login destination for
// the duration of the OAuth round-trip.
func saveRedirectTarget(c *gin.Context, target string) {
	if target == "" {
		return
	}
	setFlowCookie(c, redirectCookieName, target)
}

func redirectTarget(c *gin.Context) string {
	cookie, err := c.Request.Cookie(redirectCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// clearFlowCookies expires the OAuth round-trip cookies. The callback
// consumes them exactly once; leaving them behind would let a stale
// state or verifier ride along on a later flow.
func clearFlowCookies(c *gin.Context) {
	for _, name := range []string{stateCookieName, pkceCookieName, redirectCookieName} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

func setFlowCookie(c *gin.Context, name, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(flowTTL.Seconds()),
	})
}
