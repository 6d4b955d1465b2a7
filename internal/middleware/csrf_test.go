package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValidateCSRFToken(t *testing.T) {
	const token = "Zm9vYmFyYmF6cXV4Zm9vYmFyYmF6cXV4Zm9vYmFyYmF"

	assert.False(t, ValidateCSRFToken("", "anything"))
	assert.False(t, ValidateCSRFToken("anything", ""))
	assert.False(t, ValidateCSRFToken("", ""))
	assert.True(t, ValidateCSRFToken(token, token))
	assert.False(t, ValidateCSRFToken(token, token[:len(token)-1]+"G"))
	assert.False(t, ValidateCSRFToken(token, token+"x"))
}

func newCSRFRouter(cookies CookieConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CSRFMiddleware(cookies, metrics.NewNoopMetrics(), nil, zap.NewNop()))
	handler := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/resource", handler)
	r.HEAD("/resource", handler)
	r.OPTIONS("/resource", handler)
	r.POST("/resource", handler)
	r.PUT("/resource", handler)
	r.PATCH("/resource", handler)
	r.DELETE("/resource", handler)
	return r
}

func TestCSRFMiddleware(t *testing.T) {
	cookies := NewCookieConfig(true, 14*24*time.Hour)
	r := newCSRFRouter(cookies)
	const token = "csrf-token-value-0123456789abcdefghijklmnop"

	do := func(method string, body string, mutate func(*http.Request)) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, "/resource", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		} else {
			req = httptest.NewRequest(method, "/resource", nil)
		}
		if mutate != nil {
			mutate(req)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	withCookie := func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: cookies.CSRFCookieName(), Value: token})
	}

	t.Run("Safe methods are exempt", func(t *testing.T) {
		for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
			w := do(method, "", nil)
			assert.Equal(t, http.StatusOK, w.Code, method)
		}
	})

	t.Run("Mutations without tokens are rejected", func(t *testing.T) {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			w := do(method, "", nil)
			assert.Equal(t, http.StatusForbidden, w.Code, method)
		}
	})

	t.Run("Header token matching cookie passes", func(t *testing.T) {
		w := do(http.MethodPost, "", func(req *http.Request) {
			withCookie(req)
			req.Header.Set(CSRFHeaderName, token)
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Form field matching cookie passes", func(t *testing.T) {
		form := url.Values{CSRFFormField: {token}}
		w := do(http.MethodPost, form.Encode(), withCookie)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Header takes priority over form", func(t *testing.T) {
		form := url.Values{CSRFFormField: {token}}
		w := do(http.MethodPost, form.Encode(), func(req *http.Request) {
			withCookie(req)
			req.Header.Set(CSRFHeaderName, "wrong")
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Missing cookie is rejected", func(t *testing.T) {
		w := do(http.MethodDelete, "", func(req *http.Request) {
			req.Header.Set(CSRFHeaderName, token)
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "CSRF token validation failed")
	})

	t.Run("Mismatch is rejected", func(t *testing.T) {
		w := do(http.MethodPut, "", func(req *http.Request) {
			withCookie(req)
			req.Header.Set(CSRFHeaderName, token+"x")
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestIssueCSRFToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cookies := NewCookieConfig(true, 14*24*time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	token, err := IssueCSRFToken(c, cookies)
	require.NoError(t, err)
	assert.Len(t, token, 43)

	resp := w.Result()
	defer resp.Body.Close()
	require.Len(t, resp.Cookies(), 1)
	cookie := resp.Cookies()[0]
	assert.Equal(t, "__Host-bonsai_csrf", cookie.Name)
	assert.Equal(t, token, cookie.Value)
	assert.False(t, cookie.HttpOnly, "CSRF cookie must be readable by same-origin script")
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 14*24*60*60, cookie.MaxAge)
}
