package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/callback"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/login"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/auth/service"
	"github.com/rafaelminatto1/dudufisio-sub005/internal/session"
)

const origin = "https://app.clinicafisio.com.br"

type mockAuthService struct {
	exchangeFunc func(ctx context.Context, r service.ExchangeRequest) (*session.Session, error)
	userFunc     func(ctx context.Context, s *session.Session) (*auth.Identity, error)
	signInFunc   func(ctx context.Context, email, password string) (*auth.Identity, *session.Session, error)
}

func (m *mockAuthService) ExchangeCodeForSession(ctx context.Context, r service.ExchangeRequest) (*session.Session, error) {
	return m.exchangeFunc(ctx, r)
}

func (m *mockAuthService) User(ctx context.Context, s *session.Session) (*auth.Identity, error) {
	return m.userFunc(ctx, s)
}

func (m *mockAuthService) SignInWithPassword(ctx context.Context, email, password string) (*auth.Identity, *session.Session, error) {
	return m.signInFunc(ctx, email, password)
}

type mockProvisioner struct{}

func (mockProvisioner) Ensure(context.Context, *auth.Identity) error { return nil }

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, uuid.UUID, string) {}

type memSessionStore struct {
	sessions map[string]session.Session
	deleted  []string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]session.Session{}}
}

func (m *memSessionStore) Create(_ context.Context, s session.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSessionStore) Update(_ context.Context, s session.Session) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	delete(m.sessions, id)
	return nil
}

func newTestRouter(t *testing.T, svc *mockAuthService, store session.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cb := callback.NewHandler(svc, mockProvisioner{}, noopRecorder{}, origin, "google", zerolog.Nop())
	loginCtrl := login.NewController(svc, noopRecorder{}, zerolog.Nop())

	h := NewHandler(nil, cb, loginCtrl, nil, store, nil, nil, zerolog.Nop())

	router := gin.New()
	h.RegisterRoutes(router)
	return router
}

func postLogin(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginEndpointSuccess(t *testing.T) {
	userID := uuid.New()
	svc := &mockAuthService{
		signInFunc: func(context.Context, string, string) (*auth.Identity, *session.Session, error) {
			return &auth.Identity{ID: userID, Email: "admin@clinicafisio.com.br"},
				&session.Session{SessionID: "sid-1", UserID: userID.String()},
				nil
		},
	}
	router := newTestRouter(t, svc, newMemSessionStore())

	w := postLogin(t, router, gin.H{
		"email":    "admin@clinicafisio.com.br",
		"password": "AdminTeste123!",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "authenticated", resp["status"])
	assert.Equal(t, "/dashboard", resp["redirect_to"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Equal(t, "sid-1", cookies[0].Value)
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{
		signInFunc: func(context.Context, string, string) (*auth.Identity, *session.Session, error) {
			return nil, nil, errors.New("invalid login credentials")
		},
	}
	router := newTestRouter(t, svc, newMemSessionStore())

	w := postLogin(t, router, gin.H{
		"email":    "admin@clinicafisio.com.br",
		"password": "errada",
	})

	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "E-mail ou senha incorretos.", resp["error"])
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginEndpointMissingFields(t *testing.T) {
	svc := &mockAuthService{
		signInFunc: func(context.Context, string, string) (*auth.Identity, *session.Session, error) {
			t.Fatal("provider must not be called for empty fields")
			return nil, nil, nil
		},
	}
	router := newTestRouter(t, svc, newMemSessionStore())

	w := postLogin(t, router, gin.H{"email": "", "password": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCallbackEndpointSuccessSetsCookieAndRedirects(t *testing.T) {
	userID := uuid.New()
	sess := &session.Session{SessionID: "sid-2", UserID: userID.String()}
	svc := &mockAuthService{
		exchangeFunc: func(context.Context, service.ExchangeRequest) (*session.Session, error) {
			return sess, nil
		},
		userFunc: func(context.Context, *session.Session) (*auth.Identity, error) {
			return &auth.Identity{ID: userID, Email: "paciente@clinicafisio.com.br"}, nil
		},
	}
	router := newTestRouter(t, svc, newMemSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&redirect_to=/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, origin+"/profile", w.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == session.CookieName {
			sessionCookie = ck
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "sid-2", sessionCookie.Value)
}

func TestCallbackEndpointNoCode(t *testing.T) {
	svc := &mockAuthService{
		exchangeFunc: func(context.Context, service.ExchangeRequest) (*session.Session, error) {
			t.Fatal("exchange must not be called without a code")
			return nil, nil
		},
	}
	router := newTestRouter(t, svc, newMemSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), origin+"/login?error=")
}

func TestCallbackEndpointStateMismatch(t *testing.T) {
	svc := &mockAuthService{}
	router := newTestRouter(t, svc, newMemSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=from-query", nil)
	req.AddCookie(&http.Cookie{Name: "__oauth_state", Value: "from-cookie"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), origin+"/login?error=")
}

func TestCallbackEndpointProviderError(t *testing.T) {
	svc := &mockAuthService{}
	router := newTestRouter(t, svc, newMemSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?error=access_denied", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), origin+"/login?error=")
}

func TestCallbackEndpointReadsRedirectCookie(t *testing.T) {
	userID := uuid.New()
	svc := &mockAuthService{
		exchangeFunc: func(context.Context, service.ExchangeRequest) (*session.Session, error) {
			return &session.Session{SessionID: "sid-3", UserID: userID.String()}, nil
		},
		userFunc: func(context.Context, *session.Session) (*auth.Identity, error) {
			return &auth.Identity{ID: userID}, nil
		},
	}
	router := newTestRouter(t, svc, newMemSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc", nil)
	req.AddCookie(&http.Cookie{Name: "__oauth_redirect", Value: "/agenda"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, origin+"/agenda", w.Header().Get("Location"))
}

func TestCallbackEndpointExpiresFlowCookies(t *testing.T) {
	userID := uuid.New()
	svc := &mockAuthService{
		exchangeFunc: func(context.Context, service.ExchangeRequest) (*session.Session, error) {
			return &session.Session{SessionID: "sid-5", UserID: userID.String()}, nil
		},
		userFunc: func(context.Context, *session.Session) (*auth.Identity, error) {
			return &auth.Identity{ID: userID}, nil
		},
	}
	router := newTestRouter(t, svc, newMemSessionStore())

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=abc&state=s1", nil)
	req.AddCookie(&http.Cookie{Name: "__oauth_state", Value: "s1"})
	req.AddCookie(&http.Cookie{Name: "__oauth_pkce", Value: "verifier"})
	req.AddCookie(&http.Cookie{Name: "__oauth_redirect", Value: "/agenda"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)

	// the flow cookies are single-use: the response must expire all three
	expired := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			expired[ck.Name] = true
		}
	}
	assert.True(t, expired["__oauth_state"])
	assert.True(t, expired["__oauth_pkce"])
	assert.True(t, expired["__oauth_redirect"])
}

func TestLogoutEndpointIsIdempotent(t *testing.T) {
	store := newMemSessionStore()
	store.sessions["sid-4"] = session.Session{SessionID: "sid-4", UserID: "u"}
	router := newTestRouter(t, &mockAuthService{}, store)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-4"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"sid-4"}, store.deleted)

	// second logout with no cookie still succeeds
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
