package middleware

import (
	"errors"
	"net/http"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys set by SessionMiddleware
const (
	ContextKeyUser    = "user"
	ContextKeySession = "session"
)

// SessionMiddleware resolves the session cookie into the current user. It
// never rejects a request: a missing, invalid or expired session, or a user
// that is not active, leaves the request anonymous. Valid sessions get the
// sliding refresh and a re-issued cookie when it writes.
func SessionMiddleware(
	sessions *services.SessionService,
	cookies CookieConfig,
	logger *zap.Logger,
) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}

	return func(c *gin.Context) {
		token, err := c.Cookie(cookies.SessionCookieName())
		if err != nil || token == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		result, err := sessions.ValidateSession(ctx, token)
		if err != nil {
			if errors.Is(err, services.ErrInvalidSession) {
				cookies.ClearSessionCookie(c.Writer)
				c.Next()
				return
			}
			logger.Error("failed to resolve session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "internal_error",
			})
			return
		}

		if !result.User.IsActive() {
			c.Next()
			return
		}

		refreshed, err := sessions.ExtendSession(ctx, result.Session)
		if err != nil {
			logger.Warn("failed to refresh session",
				zap.String("user_id", result.User.ID),
				zap.Error(err),
			)
		}
		csrfToken, _ := c.Cookie(cookies.CSRFCookieName())
		switch {
		case csrfToken == "":
			if _, err := IssueCSRFToken(c, cookies); err != nil {
				logger.Warn("failed to issue csrf token", zap.Error(err))
			}
		case refreshed:
			cookies.SetCSRFCookie(c.Writer, csrfToken)
		}
		if refreshed {
			cookies.SetSessionCookie(c.Writer, token)
		}

		c.Set(ContextKeyUser, result.User)
		c.Set(ContextKeySession, result.Session)
		c.Request = c.Request.WithContext(models.SetUserContext(ctx, result.User))

		c.Next()
	}
}

// GetCurrentUser returns the user resolved by SessionMiddleware, or nil
func GetCurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextKeyUser); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// GetCurrentSession returns the session resolved by SessionMiddleware, or nil
func GetCurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(ContextKeySession); ok {
		if session, ok := v.(*models.Session); ok {
			return session
		}
	}
	return nil
}
