package handlers

import (
	"net/http"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler lets a signed-in user see and revoke their own sessions.
// Routes must sit behind RequireAuth.
type SessionHandler struct {
	sessions *services.SessionService
	audit    *services.AuditService
	cookies  middleware.CookieConfig
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(
	sessions *services.SessionService,
	audit *services.AuditService,
	cookies middleware.CookieConfig,
	logger *zap.Logger,
) *SessionHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &SessionHandler{
		sessions: sessions,
		audit:    audit,
		cookies:  cookies,
		logger:   logger.Named("sessions"),
	}
}

func currentSessionID(c *gin.Context) string {
	if session := middleware.GetCurrentSession(c); session != nil {
		return session.ID
	}
	return ""
}

// ListSessions returns the unexpired sessions of the current user, marking
// the one this request was made with
//
//	@Summary		List own sessions
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	object{sessions=[]services.SessionInfo}
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Router			/account/sessions [get]
func (h *SessionHandler) ListSessions(c *gin.Context) {
	user := middleware.GetCurrentUser(c)

	sessions, err := h.sessions.GetUserSessions(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to list sessions", zap.String("user_id", user.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to retrieve sessions.")
		return
	}

	currentID := currentSessionID(c)
	for i := range sessions {
		sessions[i].Current = sessions[i].ID == currentID
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// RevokeSession deletes one of the current user's sessions. Sessions of other
// users are indistinguishable from missing ones.
//
//	@Summary		Revoke one own session
//	@Tags			Account
//	@Produce		json
//	@Param			id	path		string	true	"Session id"
//	@Success		200	{object}	object{revoked=bool,current=bool}
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Failure		403	{object}	object{error=string,message=string}	"Missing or mismatched CSRF token"
//	@Failure		404	{object}	object{error=string,message=string}
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Security		CSRFToken
//	@Router			/account/sessions/{id} [delete]
func (h *SessionHandler) RevokeSession(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	sessionID := c.Param("id")
	ctx := c.Request.Context()

	deleted, err := h.sessions.DeleteSessionByID(ctx, sessionID, user.ID)
	if err != nil {
		h.logger.Error("failed to revoke session", zap.String("user_id", user.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to revoke session.")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "not_found", "Session not found.")
		return
	}

	current := sessionID == currentSessionID(c)
	if current {
		h.cookies.ClearSessionCookie(c.Writer)
		h.cookies.ClearCSRFCookie(c.Writer)
	}

	h.audit.Log(ctx, services.AuditLogEntry{
		EventType:     models.EventSessionRevoked,
		Severity:      models.SeverityInfo,
		ActorUserID:   user.ID,
		ActorUsername: user.Username,
		ActorIP:       c.ClientIP(),
		ResourceType:  models.ResourceSession,
		ResourceID:    sessionID,
		Action:        "Session revoked",
		Details:       models.AuditDetails{"current": current},
		Success:       true,
		UserAgent:     c.Request.UserAgent(),
		RequestPath:   c.Request.URL.Path,
		RequestMethod: c.Request.Method,
	})

	c.JSON(http.StatusOK, gin.H{"revoked": true, "current": current})
}

// RevokeAllSessions godoc
//
//	@Summary		Revoke all own sessions
//	@Description	Deletes every session of the current user, this one included
//	@Tags			Account
//	@Produce		json
//	@Success		200	{object}	object{revoked=int}
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Failure		403	{object}	object{error=string,message=string}	"Missing or mismatched CSRF token"
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Security		CSRFToken
//	@Router			/account/sessions/revoke-all [post]
func (h *SessionHandler) RevokeAllSessions(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	ctx := c.Request.Context()

	count, err := h.sessions.InvalidateAllUserSessions(ctx, user.ID)
	if err != nil {
		h.logger.Error("failed to revoke sessions", zap.String("user_id", user.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to revoke sessions.")
		return
	}

	h.cookies.ClearSessionCookie(c.Writer)
	h.cookies.ClearCSRFCookie(c.Writer)

	h.audit.Log(ctx, services.AuditLogEntry{
		EventType:     models.EventSessionsRevokedAll,
		Severity:      models.SeverityWarning,
		ActorUserID:   user.ID,
		ActorUsername: user.Username,
		ActorIP:       c.ClientIP(),
		ResourceType:  models.ResourceUser,
		ResourceID:    user.ID,
		Action:        "All sessions revoked",
		Details:       models.AuditDetails{"count": count},
		Success:       true,
		UserAgent:     c.Request.UserAgent(),
		RequestPath:   c.Request.URL.Path,
		RequestMethod: c.Request.Method,
	})

	c.JSON(http.StatusOK, gin.H{"revoked": count})
}
