package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/login"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// responseNotifier is the per-request notification channel: whatever
// the controller emits becomes the message field of the JSON response.
type responseNotifier struct {
	message string
}

func (n *responseNotifier) Success(message string) { n.message = message }
func (n *responseNotifier) Error(message string)   { n.message = message }

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requisição inválida"})
		return
	}

	notifier := &responseNotifier{}
	out := h.login.Submit(c.Request.Context(), notifier, req.Email, req.Password)

	switch out.Kind {
	case login.ValidationError:
		c.JSON(http.StatusBadRequest, gin.H{"error": out.Message})

	case login.AuthError:
		c.JSON(http.StatusUnauthorized, gin.H{"error": out.Message})

	case login.Success:
		session.SetCookie(c.Writer, out.Session.SessionID, out.Session.ExpiresAt, session.CookieOptions{
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})

		c.JSON(http.StatusOK, gin.H{
			"status":      "authenticated",
			"message":     notifier.message,
			"redirect_to": out.RedirectTarget,
		})
	}
}
