package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/credentials"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register: creates the credential,
// then signs the new user in directly.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requisição inválida"})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preencha e-mail e senha."})
		return
	}

	userID, err := h.credentials.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, credentials.ErrAlreadyRegistered) {
			c.JSON(http.StatusConflict, gin.H{"error": "Esta conta já existe."})
			return
		}
		if errors.Is(err, credentials.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A senha deve ter pelo menos 8 caracteres."})
			return
		}
		h.log.Error().Err(err).Msg("registration failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Não foi possível criar a conta."})
		return
	}

	sess, err := session.New(userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	if err := h.sessionStore.Create(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	session.SetCookie(c.Writer, sess.SessionID, sess.ExpiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(http.StatusCreated, gin.H{"status": "registered"})
}
