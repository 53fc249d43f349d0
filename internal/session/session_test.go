package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIDIsUniqueAndOpaque(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.GreaterOrEqual(t, len(a), 40, "256 bits base64url encoded")
}

func TestNewSession(t *testing.T) {
	s, err := New("user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", s.UserID)
	assert.NotEmpty(t, s.SessionID)
	assert.WithinDuration(t, s.CreatedAt.Add(TTL), s.ExpiresAt, time.Second)
}

func TestSetCookieDefaults(t *testing.T) {
	w := httptest.NewRecorder()

	SetCookie(w, "sid", time.Now().Add(time.Hour), CookieOptions{})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "sid", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path, "__Host- cookies require path /")
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestClearCookie(t *testing.T) {
	w := httptest.NewRecorder()

	ClearCookie(w, CookieOptions{Secure: true})

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
