package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

type memStore struct {
	sessions map[string]session.Session
	deleted  []string
}

func newMemStore() *memStore {
	return &memStore{sessions: map[string]session.Session{}}
}

func (m *memStore) Create(_ context.Context, s session.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*session.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memStore) Update(_ context.Context, s session.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.sessions, id)
	return nil
}

func protected(t *testing.T, store session.Store) (http.Handler, *string) {
	t.Helper()
	var seenUserID string
	mw := NewAuthMiddleware(store)
	h := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		seenUserID = id
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seenUserID
}

func TestRequireAuthNoCookie(t *testing.T) {
	h, _ := protected(t, newMemStore())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthUnknownSession(t *testing.T) {
	h, _ := protected(t, newMemStore())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "nope"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthExpiredSessionIsDeleted(t *testing.T) {
	store := newMemStore()
	store.sessions["old"] = session.Session{
		SessionID: "old",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	h, _ := protected(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "old"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"old"}, store.deleted)
}

func TestRequireAuthValidSession(t *testing.T) {
	store := newMemStore()
	store.sessions["live"] = session.Session{
		SessionID: "live",
		UserID:    "user-2",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	h, seen := protected(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "live"})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-2", *seen)
}
