package middleware

import (
	"net/http"
	"time"
)

// Cookie names. Secure deployments use the __Host- prefix, which pins the
// cookie to the exact host, Path=/ and HTTPS.
const (
	sessionCookieBase = "bonsai_session"
	csrfCookieBase    = "bonsai_csrf"
	hostCookiePrefix  = "__Host-"
)

// CookieConfig frames the session and CSRF cookies
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

// NewCookieConfig returns the cookie framing for a session lifetime of maxAge
func NewCookieConfig(secure bool, maxAge time.Duration) CookieConfig {
	return CookieConfig{Secure: secure, MaxAge: maxAge}
}

// SessionCookieName returns the name of the HttpOnly session cookie
func (c CookieConfig) SessionCookieName() string {
	return c.name(sessionCookieBase)
}

// CSRFCookieName returns the name of the script-readable CSRF cookie
func (c CookieConfig) CSRFCookieName() string {
	return c.name(csrfCookieBase)
}

func (c CookieConfig) name(base string) string {
	if c.Secure {
		return hostCookiePrefix + base
	}
	return base
}

func (c CookieConfig) cookie(name, value string, httpOnly bool, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   c.Secure,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
	}
}

// SetSessionCookie writes the session token cookie
func (c CookieConfig) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(c.SessionCookieName(), token, true, int(c.MaxAge.Seconds())))
}

// ClearSessionCookie expires the session cookie (Max-Age=0)
func (c CookieConfig) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(c.SessionCookieName(), "", true, -1))
}

// SetCSRFCookie writes the CSRF token cookie. It is not HttpOnly so that
// same-origin script can echo it in the request header.
func (c CookieConfig) SetCSRFCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, c.cookie(c.CSRFCookieName(), token, false, int(c.MaxAge.Seconds())))
}

// ClearCSRFCookie expires the CSRF cookie (Max-Age=0)
func (c CookieConfig) ClearCSRFCookie(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(c.CSRFCookieName(), "", false, -1))
}
