package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthRouter(f *fixture) *gin.Engine {
	h := NewAuthHandler(f.sessions, f.audit, f.cookies, zap.NewNop())
	r := f.engine()
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", h.Me)
	return r
}

func TestLogout(t *testing.T) {
	t.Run("Invalidates the session and clears cookies", func(t *testing.T) {
		f := newFixture(t)
		r := newAuthRouter(f)
		user := f.createUser(t, "user")
		token, _ := f.signIn(t, user)
		_, other := f.signIn(t, user)

		w := serve(r, http.MethodPost, "/auth/logout", token, "", f.cookies)
		require.Equal(t, http.StatusOK, w.Code)

		for _, name := range []string{f.cookies.SessionCookieName(), f.cookies.CSRFCookieName()} {
			cleared := findCookie(w, name)
			require.NotNil(t, cleared, name)
			assert.Empty(t, cleared.Value)
			assert.Negative(t, cleared.MaxAge)
		}

		_, err := f.sessions.ValidateSession(context.Background(), token)
		assert.ErrorIs(t, err, services.ErrInvalidSession)

		remaining, err := f.sessions.GetUserSessions(context.Background(), user.ID)
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.Equal(t, other.ID, remaining[0].ID)
	})

	t.Run("Anonymous sign-out still clears cookies", func(t *testing.T) {
		f := newFixture(t)
		r := newAuthRouter(f)

		w := serve(r, http.MethodPost, "/auth/logout", "", "", f.cookies)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotNil(t, findCookie(w, f.cookies.SessionCookieName()))
	})
}

func TestMe(t *testing.T) {
	f := newFixture(t)
	r := newAuthRouter(f)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/auth/me", "", "", f.cookies).Code)

	user := f.createUser(t, "user")
	token, _ := f.signIn(t, user)
	w := serve(r, http.MethodGet, "/auth/me", token, "", f.cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"`+user.Username+`"`)
	assert.Contains(t, w.Body.String(), `"status":"active"`)
}
