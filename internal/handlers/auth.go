package handlers

import (
	"net/http"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves sign-out and the current identity
type AuthHandler struct {
	sessions *services.SessionService
	audit    *services.AuditService
	cookies  middleware.CookieConfig
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	sessions *services.SessionService,
	audit *services.AuditService,
	cookies middleware.CookieConfig,
	logger *zap.Logger,
) *AuthHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &AuthHandler{
		sessions: sessions,
		audit:    audit,
		cookies:  cookies,
		logger:   logger.Named("auth"),
	}
}

// Logout invalidates the current session and clears both cookies. Signing out
// without a session still clears the cookies.
//
//	@Summary		Sign out
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	object{message=string}
//	@Failure		403	{object}	object{error=string,message=string}	"Missing or mismatched CSRF token"
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Security		CSRFToken
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	if token, err := c.Cookie(h.cookies.SessionCookieName()); err == nil && token != "" {
		if err := h.sessions.InvalidateSession(ctx, token); err != nil {
			h.logger.Error("failed to invalidate session", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "internal_error", "Failed to sign out.")
			return
		}
	}

	h.cookies.ClearSessionCookie(c.Writer)
	h.cookies.ClearCSRFCookie(c.Writer)

	if user := middleware.GetCurrentUser(c); user != nil {
		var sessionID string
		if session := middleware.GetCurrentSession(c); session != nil {
			sessionID = session.ID
		}
		h.audit.Log(ctx, services.AuditLogEntry{
			EventType:     models.EventLogout,
			Severity:      models.SeverityInfo,
			ActorUserID:   user.ID,
			ActorUsername: user.Username,
			ActorIP:       c.ClientIP(),
			ResourceType:  models.ResourceSession,
			ResourceID:    sessionID,
			Action:        "Signed out",
			Success:       true,
			UserAgent:     c.Request.UserAgent(),
			RequestPath:   c.Request.URL.Path,
			RequestMethod: c.Request.Method,
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// Me godoc
//
//	@Summary		Current user
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	object{id=string,username=string,email=string,full_name=string,avatar_url=string,role=string,status=string}
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Security		SessionAuth
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "unauthorized", "Sign in required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"full_name":  user.FullName,
		"avatar_url": user.AvatarURL,
		"role":       user.Role,
		"status":     user.Status,
	})
}
