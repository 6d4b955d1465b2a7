package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/metrics"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "handler-test-secret-with-enough-entropy"

// fixture holds the services behind every handler, over an in-memory store
type fixture struct {
	store      *store.Store
	audit      *services.AuditService
	sessions   *services.SessionService
	handshakes *services.OAuthStateService
	users      *services.UserService
	accounts   *services.AccountStatusService
	cookies    middleware.CookieConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	m := metrics.NewNoopMetrics()
	logger := zap.NewNop()
	audit := services.NewAuditService(s, logger, false, 10)
	sessions := services.NewSessionService(s, services.DefaultSessionLifetime, m, logger)

	return &fixture{
		store:      s,
		audit:      audit,
		sessions:   sessions,
		handshakes: services.NewOAuthStateService(s, testSecret, services.DefaultOAuthStateTTL, m, logger),
		users:      services.NewUserService(s, nil, logger),
		accounts:   services.NewAccountStatusService(s, sessions, audit, m, logger),
		cookies:    middleware.NewCookieConfig(true, sessions.Lifetime()),
	}
}

// engine returns a router with session resolution installed
func (f *fixture) engine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.SessionMiddleware(f.sessions, f.cookies, zap.NewNop()))
	return r
}

func (f *fixture) createUser(t *testing.T, role string) *models.User {
	t.Helper()
	u := &models.User{
		ID:       uuid.New().String(),
		Username: "user-" + uuid.New().String()[:8],
		Role:     role,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, f.store.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) signIn(t *testing.T, user *models.User) (string, *models.Session) {
	t.Helper()
	token, session, err := f.sessions.CreateSession(context.Background(), user.ID)
	require.NoError(t, err)
	return token, session
}

func serve(r http.Handler, method, path, token, body string, cookies middleware.CookieConfig) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookies.SessionCookieName(), Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// findCookie returns the last Set-Cookie for name, the one a browser keeps
func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	resp := w.Result()
	defer resp.Body.Close()
	var found *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
