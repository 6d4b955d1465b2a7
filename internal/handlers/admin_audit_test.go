package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListAuditLogs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	audit := services.NewAuditService(f.store, zap.NewNop(), true, 10)
	t.Cleanup(func() { _ = audit.Shutdown(context.Background()) })

	for _, event := range []models.EventType{models.EventLogout, models.EventLogout, models.EventCSRFRejected} {
		require.NoError(t, audit.LogSync(ctx, services.AuditLogEntry{
			EventType:    event,
			Severity:     models.SeverityInfo,
			ResourceType: models.ResourceSession,
			Action:       string(event),
			Success:      true,
		}))
	}

	h := NewAdminAuditHandler(audit, zap.NewNop())
	r := f.engine()
	r.GET("/admin/audit", middleware.RequireAuth(), middleware.RequireAdmin(), h.ListAuditLogs)
	adminToken, _ := f.signIn(t, f.createUser(t, "admin"))

	t.Run("Filters by event type", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/admin/audit?event=LOGOUT", adminToken, "", f.cookies)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Logs []models.AuditLog `json:"logs"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Logs, 2)
		for _, log := range body.Logs {
			assert.Equal(t, models.EventLogout, log.EventType)
		}
	})

	t.Run("Limit is honored", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/admin/audit?event=LOGOUT&limit=1", adminToken, "", f.cookies)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"event_type":"LOGOUT"`)

		var body struct {
			Logs []models.AuditLog `json:"logs"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Logs, 1)
	})

	t.Run("Unknown event type", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/admin/audit?event=DROP_TABLES", adminToken, "", f.cookies)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
