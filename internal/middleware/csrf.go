package middleware

import (
	"net/http"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CSRFHeaderName = "X-CSRF-Token"
	CSRFFormField  = "csrf_token"
)

// ValidateCSRFToken reports whether the submitted candidate matches the token
// held in the CSRF cookie. Either side being empty fails.
func ValidateCSRFToken(cookieToken, candidate string) bool {
	if cookieToken == "" || candidate == "" {
		return false
	}
	return util.SecureCompare(cookieToken, candidate)
}

// IssueCSRFToken generates a fresh CSRF token and writes it to the CSRF cookie
func IssueCSRFToken(c *gin.Context, cookies CookieConfig) (string, error) {
	token, err := util.GenerateCSRFToken()
	if err != nil {
		return "", err
	}
	cookies.SetCSRFCookie(c.Writer, token)
	return token, nil
}

// csrfCandidate extracts the submitted token: header first, then form field
func csrfCandidate(c *gin.Context) string {
	if token := c.GetHeader(CSRFHeaderName); token != "" {
		return token
	}
	return c.PostForm(CSRFFormField)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// CSRFMiddleware rejects state-changing requests whose submitted CSRF token
// does not match the CSRF cookie. It keeps no server-side state.
func CSRFMiddleware(
	cookies CookieConfig,
	m core.Recorder,
	audit *services.AuditService,
	logger *zap.Logger,
) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}

	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		cookieToken, _ := c.Cookie(cookies.CSRFCookieName())
		candidate := csrfCandidate(c)

		if ValidateCSRFToken(cookieToken, candidate) {
			c.Next()
			return
		}

		reason := "mismatch"
		switch {
		case cookieToken == "":
			reason = "missing_cookie"
		case candidate == "":
			reason = "missing_token"
		}

		logger.Warn("csrf validation failed",
			zap.String("reason", reason),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
		)
		m.RecordCSRFFailure(reason)

		var actorID string
		if user := GetCurrentUser(c); user != nil {
			actorID = user.ID
		}
		audit.Log(c.Request.Context(), services.AuditLogEntry{
			EventType:     models.EventCSRFRejected,
			Severity:      models.SeverityWarning,
			ActorUserID:   actorID,
			ActorIP:       c.ClientIP(),
			ResourceType:  models.ResourceRequest,
			Action:        "CSRF validation failed",
			Details:       models.AuditDetails{"reason": reason},
			UserAgent:     c.Request.UserAgent(),
			RequestPath:   c.Request.URL.Path,
			RequestMethod: c.Request.Method,
		})

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "CSRF token validation failed",
		})
	}
}
