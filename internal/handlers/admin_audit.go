package handlers

import (
	"net/http"
	"strconv"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminAuditHandler exposes recent audit events to administrators
type AdminAuditHandler struct {
	audit  *services.AuditService
	logger *zap.Logger
}

// NewAdminAuditHandler creates a new admin audit handler
func NewAdminAuditHandler(audit *services.AuditService, logger *zap.Logger) *AdminAuditHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &AdminAuditHandler{
		audit:  audit,
		logger: logger.Named("admin_audit"),
	}
}

// ListAuditLogs godoc
//
//	@Summary		List audit events
//	@Description	Returns the newest audit logs of one event type
//	@Tags			Admin
//	@Produce		json
//	@Param			event	query		string	true	"Event type, e.g. LOGOUT or USER_STATUS_CHANGED"
//	@Param			limit	query		int		false	"Maximum entries (default 20, max 100)"
//	@Success		200		{object}	object{logs=[]models.AuditLog}
//	@Failure		400	{object}	object{error=string,message=string}	"Unknown event type"
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Failure		403	{object}	object{error=string,message=string}	"Missing or mismatched CSRF token, or not an admin"
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Router			/admin/audit [get]
func (h *AdminAuditHandler) ListAuditLogs(c *gin.Context) {
	eventType := models.EventType(c.Query("event"))
	if !eventType.IsValid() {
		respondError(c, http.StatusBadRequest, "invalid_event", "Unknown audit event type.")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultPageLimit)))
	limit = store.NewCursorParams(limit, "").Limit

	logs, err := h.audit.ListRecentEvents(c.Request.Context(), eventType, limit)
	if err != nil {
		h.logger.Error("failed to list audit logs",
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to load audit logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
