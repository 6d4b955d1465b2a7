package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusChangeRequest is the body of the ban, suspend and unban endpoints
type StatusChangeRequest struct {
	Reason string `json:"reason"`
}

type statusChangeFunc func(
	ctx context.Context,
	userID string,
	opts services.StatusChangeOptions,
) (services.StatusChangeResult, error)

// AdminStatusHandler exposes account status administration. Routes must sit
// behind RequireAuth and RequireAdmin.
type AdminStatusHandler struct {
	accounts *services.AccountStatusService
	logger   *zap.Logger
}

// NewAdminStatusHandler creates a new admin status handler
func NewAdminStatusHandler(
	accounts *services.AccountStatusService,
	logger *zap.Logger,
) *AdminStatusHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &AdminStatusHandler{
		accounts: accounts,
		logger:   logger.Named("admin_status"),
	}
}

// BanUser godoc
//
//	@Summary		Ban a user
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User id"
//	@Param			request	body		StatusChangeRequest	false	"Optional reason"
//	@Success		200		{object}	services.StatusChangeResult
//	@Failure		400	{object}	object{error=string,message=string}	"Body is not JSON"
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Failure		403	{object}	object{error=string,message=string}	"Missing or mismatched CSRF token, or not an admin"
//	@Failure		404	{object}	object{error=string,message=string}	"User not found"
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Security		CSRFToken
//	@Router			/admin/users/{id}/ban [post]
func (h *AdminStatusHandler) BanUser(c *gin.Context) {
	h.changeStatus(c, "ban", h.accounts.BanUser)
}

// SuspendUser godoc
//
//	@Summary		Suspend a user
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User id"
//	@Param			request	body		StatusChangeRequest	false	"Optional reason"
//	@Success		200		{object}	services.StatusChangeResult
//	@Failure		400	{object}	object{error=string,message=string}	"Body is not JSON"
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Failure		403	{object}	object{error=string,message=string}	"Missing or mismatched CSRF token, or not an admin"
//	@Failure		404	{object}	object{error=string,message=string}	"User not found"
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Security		CSRFToken
//	@Router			/admin/users/{id}/suspend [post]
func (h *AdminStatusHandler) SuspendUser(c *gin.Context) {
	h.changeStatus(c, "suspend", h.accounts.SuspendUser)
}

// UnbanUser godoc
//
//	@Summary		Reactivate a user
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User id"
//	@Param			request	body		StatusChangeRequest	false	"Optional reason"
//	@Success		200		{object}	services.StatusChangeResult
//	@Failure		400	{object}	object{error=string,message=string}	"Body is not JSON"
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Failure		403	{object}	object{error=string,message=string}	"Missing or mismatched CSRF token, or not an admin"
//	@Failure		404	{object}	object{error=string,message=string}	"User not found"
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Security		CSRFToken
//	@Router			/admin/users/{id}/unban [post]
func (h *AdminStatusHandler) UnbanUser(c *gin.Context) {
	h.changeStatus(c, "unban", h.accounts.UnbanUser)
}

func (h *AdminStatusHandler) changeStatus(c *gin.Context, action string, change statusChangeFunc) {
	userID := c.Param("id")

	var req StatusChangeRequest
	// An empty body, chunked or not, means no reason
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "invalid_request", "Request body must be JSON.")
		return
	}

	var changedBy string
	if admin := middleware.GetCurrentUser(c); admin != nil {
		changedBy = admin.ID
	}

	result, err := change(c.Request.Context(), userID, services.StatusChangeOptions{
		Reason:    req.Reason,
		ChangedBy: changedBy,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		h.logger.Error("status change failed",
			zap.String("action", action),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to change account status.")
		return
	}
	if !result.Success {
		respondError(c, http.StatusNotFound, "not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetUserStatus godoc
//
//	@Summary		Account status
//	@Tags			Admin
//	@Produce		json
//	@Param			id	path		string	true	"User id"
//	@Success		200	{object}	object{user_id=string,status=string}
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Failure		403	{object}	object{error=string,message=string}	"Missing or mismatched CSRF token, or not an admin"
//	@Failure		404	{object}	object{error=string,message=string}
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Router			/admin/users/{id}/status [get]
func (h *AdminStatusHandler) GetUserStatus(c *gin.Context) {
	userID := c.Param("id")

	status, err := h.accounts.GetUserStatus(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "User not found.")
			return
		}
		h.logger.Error("failed to load user status", zap.String("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to load account status.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": userID, "status": status})
}

// GetUserStatusHistory godoc
//
//	@Summary		Account status history
//	@Description	One page of status changes, newest first
//	@Tags			Admin
//	@Produce		json
//	@Param			id		path		string	true	"User id"
//	@Param			limit	query		int		false	"Page size (default 20, max 100)"
//	@Param			cursor	query		string	false	"next_cursor of the previous page"
//	@Success		200		{object}	services.StatusHistoryPage
//	@Failure		400	{object}	object{error=string,message=string}	"Invalid cursor"
//	@Failure		401	{object}	object{error=string,message=string}	"Sign in required"
//	@Failure		403	{object}	object{error=string,message=string}	"Missing or mismatched CSRF token, or not an admin"
//	@Failure		500	{object}	object{error=string,message=string}
//	@Security		SessionAuth
//	@Router			/admin/users/{id}/status/history [get]
func (h *AdminStatusHandler) GetUserStatusHistory(c *gin.Context) {
	userID := c.Param("id")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultPageLimit)))
	params := store.NewCursorParams(limit, c.Query("cursor"))

	page, err := h.accounts.GetUserStatusHistory(c.Request.Context(), userID, params)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCursor) {
			respondError(c, http.StatusBadRequest, "invalid_cursor", "The pagination cursor is invalid.")
			return
		}
		h.logger.Error("failed to list status history", zap.String("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to load status history.")
		return
	}

	c.JSON(http.StatusOK, page)
}
