package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type profileResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Profile handles GET /api/auth/profile for the authenticated session.
// Mounted behind the auth middleware, which puts userID in the context.
func (h *Handler) Profile(c *gin.Context) {
	userID, err := uuid.Parse(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	p, err := h.profiles.FindByID(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if p != nil {
		c.JSON(http.StatusOK, profileResponse{
			ID:        p.ID.String(),
			Email:     p.Email,
			Name:      p.Name,
			AvatarURL: p.AvatarURL,
		})
		return
	}

	// Credential-only users may not have been provisioned yet; serve
	// the identity record instead of failing the session.
	identity, err := h.resolver.UserByID(c.Request.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Msg("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if identity == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		ID:        identity.ID.String(),
		Email:     identity.Email,
		Name:      identity.Metadata.FullName,
		AvatarURL: identity.Metadata.AvatarURL,
	})
}
