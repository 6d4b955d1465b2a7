package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promMetrics(t *testing.T) *Metrics {
	t.Helper()
	m, ok := Init(true).(*Metrics)
	require.True(t, ok, "Init(true) should return *Metrics")
	return m
}

func TestInit(t *testing.T) {
	m := promMetrics(t)
	assert.NotNil(t, m.SessionsCreatedTotal)
	assert.NotNil(t, m.CSRFFailuresTotal)
	assert.NotNil(t, m.OAuthHandshakeTotal)
	assert.NotNil(t, m.HTTPRequestsTotal)

	assert.Same(t, m, promMetrics(t), "Init(true) should return the same instance")
}

func TestInitNoop(t *testing.T) {
	m := Init(false)
	assert.NotNil(t, m)

	_, ok := m.(*NoopMetrics)
	assert.True(t, ok, "Init(false) should return *NoopMetrics")

	// Every method must be callable without panicking
	m.RecordSessionCreated()
	m.RecordSessionValidation("valid")
	m.RecordSessionRefreshed()
	m.RecordSessionInvalidated("logout", 1)
	m.RecordSessionsExpired(3)
	m.RecordCSRFFailure("mismatch")
	m.RecordOAuthHandshake("begin", "success")
	m.RecordOAuthCallback("github", true)
	m.RecordStatusChange("banned")
	m.SetActiveSessionsCount(10)
	m.RecordDatabaseQueryError("count_active_sessions")
}

func TestRecordSessionCreated(t *testing.T) {
	m := promMetrics(t)

	before := testutil.ToFloat64(m.SessionsCreatedTotal)
	m.RecordSessionCreated()
	assert.InDelta(t, before+1, testutil.ToFloat64(m.SessionsCreatedTotal), 0.001)
}

func TestRecordSessionInvalidated(t *testing.T) {
	m := promMetrics(t)
	counter := m.SessionsInvalidatedTotal.WithLabelValues("status_change")

	before := testutil.ToFloat64(counter)
	m.RecordSessionInvalidated("status_change", 3)
	assert.InDelta(t, before+3, testutil.ToFloat64(counter), 0.001)

	m.RecordSessionInvalidated("status_change", 0)
	assert.InDelta(t, before+3, testutil.ToFloat64(counter), 0.001)
}

func TestRecordSessionsExpired(t *testing.T) {
	m := promMetrics(t)

	before := testutil.ToFloat64(m.SessionsExpiredTotal)
	m.RecordSessionsExpired(5)
	m.RecordSessionsExpired(-1)
	assert.InDelta(t, before+5, testutil.ToFloat64(m.SessionsExpiredTotal), 0.001)
}

func TestRecordCSRFFailure(t *testing.T) {
	m := promMetrics(t)
	counter := m.CSRFFailuresTotal.WithLabelValues("mismatch")

	before := testutil.ToFloat64(counter)
	m.RecordCSRFFailure("mismatch")
	assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0.001)
}

func TestRecordOAuthCallback(t *testing.T) {
	m := promMetrics(t)
	ok := m.AuthOAuthCallbackTotal.WithLabelValues("github", resultSuccess)
	failed := m.AuthOAuthCallbackTotal.WithLabelValues("github", resultError)

	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)
	m.RecordOAuthCallback("github", true)
	m.RecordOAuthCallback("github", false)
	m.RecordOAuthCallback("github", false)

	assert.InDelta(t, okBefore+1, testutil.ToFloat64(ok), 0.001)
	assert.InDelta(t, failedBefore+2, testutil.ToFloat64(failed), 0.001)
}

func TestSetActiveSessionsCount(t *testing.T) {
	m := promMetrics(t)

	m.SetActiveSessionsCount(42)
	assert.InDelta(t, 42, testutil.ToFloat64(m.SessionsActive), 0.001)
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(m core.Recorder) *gin.Engine {
		r := gin.New()
		r.Use(HTTPMetricsMiddleware(m))
		r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
		r.GET("/auth/:provider/login", func(c *gin.Context) {
			if c.Param("provider") != "github" {
				c.Status(http.StatusNotFound)
				return
			}
			c.Status(http.StatusFound)
		})
		r.POST("/admin/users/:id/ban", func(c *gin.Context) { c.Status(http.StatusForbidden) })
		return r
	}
	serve := func(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return w
	}

	t.Run("Records route pattern", func(t *testing.T) {
		m := promMetrics(t)
		counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/:id", RouteGroupOther, "200")
		before := testutil.ToFloat64(counter)

		w := serve(newRouter(m), http.MethodGet, "/items/123")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.InDelta(t, before+1, testutil.ToFloat64(counter), 0.001)
	})

	t.Run("Sign-in routes carry the accepted provider", func(t *testing.T) {
		m := promMetrics(t)
		known := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/auth/github/login", RouteGroupAuth, "302")
		unknown := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/auth/:provider/login", RouteGroupAuth, "404")
		knownBefore, unknownBefore := testutil.ToFloat64(known), testutil.ToFloat64(unknown)

		r := newRouter(m)
		serve(r, http.MethodGet, "/auth/github/login")
		serve(r, http.MethodGet, "/auth/made-up/login")

		assert.InDelta(t, knownBefore+1, testutil.ToFloat64(known), 0.001)
		assert.InDelta(t, unknownBefore+1, testutil.ToFloat64(unknown), 0.001)
	})

	t.Run("Denied admin requests are counted", func(t *testing.T) {
		m := promMetrics(t)
		denied := m.HTTPDeniedTotal.WithLabelValues(RouteGroupAdmin, "403")
		before := testutil.ToFloat64(denied)

		w := serve(newRouter(m), http.MethodPost, "/admin/users/u1/ban")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.InDelta(t, before+1, testutil.ToFloat64(denied), 0.001)
	})

	t.Run("Unmatched paths share one label", func(t *testing.T) {
		m := promMetrics(t)
		counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, RouteGroupUnmatched, RouteGroupUnmatched, "404")
		before := testutil.ToFloat64(counter)

		r := newRouter(m)
		serve(r, http.MethodGet, "/wp-login.php")
		serve(r, http.MethodGet, "/.env")

		assert.InDelta(t, before+2, testutil.ToFloat64(counter), 0.001)
	})

	t.Run("Noop recorder passes through", func(t *testing.T) {
		r := gin.New()
		r.Use(HTTPMetricsMiddleware(Init(false)))
		r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

		w := serve(r, http.MethodGet, "/ping")
		assert.Equal(t, "pong", w.Body.String())
	})
}

func TestRouteGroup(t *testing.T) {
	tests := []struct {
		fullPath string
		want     string
	}{
		{"", RouteGroupUnmatched},
		{"/auth/:provider/callback", RouteGroupAuth},
		{"/auth/logout", RouteGroupAuth},
		{"/account/sessions/:id", RouteGroupAccount},
		{"/admin/users/:id/status/history", RouteGroupAdmin},
		{"/health", RouteGroupHealth},
		{"/swagger/*any", RouteGroupDocs},
		{"/items/:id", RouteGroupOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, routeGroup(tt.fullPath), tt.fullPath)
	}
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, RouteGroupUnmatched, routeLabel("", "", http.StatusNotFound))
	assert.Equal(t, "/admin/users/:id/ban", routeLabel("/admin/users/:id/ban", "", http.StatusOK))
	assert.Equal(t, "/auth/google/callback", routeLabel("/auth/:provider/callback", "google", http.StatusFound))
	assert.Equal(t, "/auth/:provider/callback", routeLabel("/auth/:provider/callback", "nope", http.StatusNotFound))
}
