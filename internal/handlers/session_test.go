package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionRouter(f *fixture) *gin.Engine {
	h := NewSessionHandler(f.sessions, f.audit, f.cookies, zap.NewNop())
	r := f.engine()
	account := r.Group("/account", middleware.RequireAuth())
	account.GET("/sessions", h.ListSessions)
	account.DELETE("/sessions/:id", h.RevokeSession)
	account.POST("/sessions/revoke-all", h.RevokeAllSessions)
	return r
}

func TestListSessions(t *testing.T) {
	f := newFixture(t)
	r := newSessionRouter(f)
	user := f.createUser(t, "user")
	other := f.createUser(t, "user")

	token, current := f.signIn(t, user)
	_, second := f.signIn(t, user)
	f.signIn(t, other)

	w := serve(r, http.MethodGet, "/account/sessions", token, "", f.cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Sessions []services.SessionInfo `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Sessions, 2)

	flags := map[string]bool{}
	for _, s := range body.Sessions {
		flags[s.ID] = s.Current
	}
	assert.True(t, flags[current.ID])
	assert.False(t, flags[second.ID])
	assert.NotContains(t, w.Body.String(), token, "raw tokens never leave the server")
}

func TestRevokeSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Another own session", func(t *testing.T) {
		f := newFixture(t)
		r := newSessionRouter(f)
		user := f.createUser(t, "user")
		token, _ := f.signIn(t, user)
		otherToken, other := f.signIn(t, user)

		w := serve(r, http.MethodDelete, "/account/sessions/"+other.ID, token, "", f.cookies)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"revoked":true,"current":false}`, w.Body.String())
		assert.Nil(t, findCookie(w, f.cookies.SessionCookieName()))

		_, err := f.sessions.ValidateSession(ctx, otherToken)
		assert.ErrorIs(t, err, services.ErrInvalidSession)
		_, err = f.sessions.ValidateSession(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("Current session clears cookies", func(t *testing.T) {
		f := newFixture(t)
		r := newSessionRouter(f)
		user := f.createUser(t, "user")
		token, current := f.signIn(t, user)

		w := serve(r, http.MethodDelete, "/account/sessions/"+current.ID, token, "", f.cookies)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"revoked":true,"current":true}`, w.Body.String())

		cleared := findCookie(w, f.cookies.SessionCookieName())
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
	})

	t.Run("Session of another user looks missing", func(t *testing.T) {
		f := newFixture(t)
		r := newSessionRouter(f)
		user := f.createUser(t, "user")
		victim := f.createUser(t, "user")
		token, _ := f.signIn(t, user)
		victimToken, victimSession := f.signIn(t, victim)

		w := serve(r, http.MethodDelete, "/account/sessions/"+victimSession.ID, token, "", f.cookies)
		assert.Equal(t, http.StatusNotFound, w.Code)

		_, err := f.sessions.ValidateSession(ctx, victimToken)
		assert.NoError(t, err)
	})

	t.Run("Anonymous", func(t *testing.T) {
		f := newFixture(t)
		r := newSessionRouter(f)
		w := serve(r, http.MethodDelete, "/account/sessions/anything", "", "", f.cookies)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRevokeAllSessions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := newSessionRouter(f)
	user := f.createUser(t, "user")
	bystander := f.createUser(t, "user")

	token, _ := f.signIn(t, user)
	f.signIn(t, user)
	f.signIn(t, user)
	bystanderToken, _ := f.signIn(t, bystander)

	w := serve(r, http.MethodPost, "/account/sessions/revoke-all", token, "", f.cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"revoked":3}`, w.Body.String())

	cleared := findCookie(w, f.cookies.CSRFCookieName())
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)

	_, err := f.sessions.ValidateSession(ctx, token)
	assert.ErrorIs(t, err, services.ErrInvalidSession)
	_, err = f.sessions.ValidateSession(ctx, bystanderToken)
	assert.NoError(t, err)
}
