package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/metrics"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/mocks"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newMockedStatusService(
	t *testing.T,
) (*AccountStatusService, *mocks.MockAccountStatusStore, *mocks.MockSessionRevoker) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockAccountStatusStore(ctrl)
	mockRevoker := mocks.NewMockSessionRevoker(ctrl)
	svc := NewAccountStatusService(mockStore, mockRevoker, nil, metrics.NewNoopMetrics(), zap.NewNop())
	return svc, mockStore, mockRevoker
}

func TestChangeUserStatus_Mocked(t *testing.T) {
	ctx := context.Background()

	t.Run("Same status is a no-op", func(t *testing.T) {
		svc, mockStore, _ := newMockedStatusService(t)

		// Only the lookup is expected; any write or revocation fails the test
		mockStore.EXPECT().
			GetUserStatus(gomock.Any(), "u1").
			Return(models.UserStatusActive, nil).
			Times(1)

		result, err := svc.ChangeUserStatus(ctx, "u1", models.UserStatusActive, StatusChangeOptions{})
		require.NoError(t, err)
		assert.Equal(t, StatusChangeResult{PreviousStatus: models.UserStatusActive, Success: true}, result)
	})

	t.Run("Missing user reports failure without mutation", func(t *testing.T) {
		svc, mockStore, _ := newMockedStatusService(t)

		mockStore.EXPECT().
			GetUserStatus(gomock.Any(), "ghost").
			Return(models.UserStatus(""), store.ErrRecordNotFound)

		result, err := svc.BanUser(ctx, "ghost", StatusChangeOptions{Reason: "spam"})
		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("Ban records history and revokes sessions", func(t *testing.T) {
		svc, mockStore, mockRevoker := newMockedStatusService(t)

		gomock.InOrder(
			mockStore.EXPECT().
				GetUserStatus(gomock.Any(), "u1").
				Return(models.UserStatusActive, nil),
			mockStore.EXPECT().
				ApplyUserStatusChange(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, entry *models.UserStatusHistory) error {
					assert.Equal(t, "u1", entry.UserID)
					assert.Equal(t, models.UserStatusActive, entry.PreviousStatus)
					assert.Equal(t, models.UserStatusBanned, entry.NewStatus)
					require.NotNil(t, entry.Reason)
					assert.Equal(t, "spam", *entry.Reason)
					require.NotNil(t, entry.ChangedBy)
					assert.Equal(t, "admin-1", *entry.ChangedBy)
					assert.Nil(t, entry.IPAddress)
					assert.NotEmpty(t, entry.ID)
					return nil
				}),
			mockRevoker.EXPECT().
				InvalidateAllUserSessions(gomock.Any(), "u1").
				Return(int64(2), nil),
		)

		result, err := svc.BanUser(ctx, "u1", StatusChangeOptions{Reason: "spam", ChangedBy: "admin-1"})
		require.NoError(t, err)
		assert.Equal(t, StatusChangeResult{PreviousStatus: models.UserStatusActive, Success: true}, result)
	})

	t.Run("Suspend revokes sessions", func(t *testing.T) {
		svc, mockStore, mockRevoker := newMockedStatusService(t)

		mockStore.EXPECT().GetUserStatus(gomock.Any(), "u1").Return(models.UserStatusActive, nil)
		mockStore.EXPECT().ApplyUserStatusChange(gomock.Any(), gomock.Any()).Return(nil)
		mockRevoker.EXPECT().InvalidateAllUserSessions(gomock.Any(), "u1").Return(int64(0), nil).Times(1)

		result, err := svc.SuspendUser(ctx, "u1", StatusChangeOptions{})
		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("Unban does not touch sessions", func(t *testing.T) {
		svc, mockStore, _ := newMockedStatusService(t)

		mockStore.EXPECT().GetUserStatus(gomock.Any(), "u1").Return(models.UserStatusBanned, nil)
		mockStore.EXPECT().ApplyUserStatusChange(gomock.Any(), gomock.Any()).Return(nil)

		result, err := svc.UnbanUser(ctx, "u1", StatusChangeOptions{ChangedBy: "admin-1"})
		require.NoError(t, err)
		assert.Equal(t, StatusChangeResult{PreviousStatus: models.UserStatusBanned, Success: true}, result)
	})

	t.Run("Invalid status is rejected before any lookup", func(t *testing.T) {
		svc, _, _ := newMockedStatusService(t)

		_, err := svc.ChangeUserStatus(ctx, "u1", models.UserStatus("deleted"), StatusChangeOptions{})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("Store errors propagate", func(t *testing.T) {
		svc, mockStore, _ := newMockedStatusService(t)
		boom := errors.New("connection reset")

		mockStore.EXPECT().GetUserStatus(gomock.Any(), "u1").Return(models.UserStatusActive, nil)
		mockStore.EXPECT().ApplyUserStatusChange(gomock.Any(), gomock.Any()).Return(boom)

		_, err := svc.BanUser(ctx, "u1", StatusChangeOptions{})
		assert.ErrorIs(t, err, boom)
	})
}

func TestGetUserStatus_Mocked(t *testing.T) {
	svc, mockStore, _ := newMockedStatusService(t)
	ctx := context.Background()

	mockStore.EXPECT().GetUserStatus(gomock.Any(), "u1").Return(models.UserStatusSuspended, nil)
	mockStore.EXPECT().GetUserStatus(gomock.Any(), "ghost").Return(models.UserStatus(""), store.ErrRecordNotFound)

	status, err := svc.GetUserStatus(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusSuspended, status)

	_, err = svc.GetUserStatus(ctx, "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCascadingRevocation(t *testing.T) {
	s := setupTestStore(t)
	clock := newFakeClock()
	sessions := newTestSessionService(t, s, clock)
	svc := NewAccountStatusService(s, sessions, nil, metrics.NewNoopMetrics(), zap.NewNop())
	svc.now = clock.Now
	ctx := context.Background()

	for _, ban := range []struct {
		name   string
		change func(context.Context, string, StatusChangeOptions) (StatusChangeResult, error)
		status models.UserStatus
	}{
		{"Ban", svc.BanUser, models.UserStatusBanned},
		{"Suspend", svc.SuspendUser, models.UserStatusSuspended},
	} {
		t.Run(ban.name, func(t *testing.T) {
			user := createTestUser(t, s)
			bystander := createTestUser(t, s)

			tokens := make([]string, 0, 3)
			for range 3 {
				token, _, err := sessions.CreateSession(ctx, user.ID)
				require.NoError(t, err)
				tokens = append(tokens, token)
			}
			bystanderToken, _, err := sessions.CreateSession(ctx, bystander.ID)
			require.NoError(t, err)

			clock.Advance(time.Minute)
			result, err := ban.change(ctx, user.ID, StatusChangeOptions{Reason: "abuse", IPAddress: "203.0.113.7"})
			require.NoError(t, err)
			assert.Equal(t, models.UserStatusActive, result.PreviousStatus)

			for _, token := range tokens {
				_, err := sessions.ValidateSession(ctx, token)
				assert.ErrorIs(t, err, ErrInvalidSession)
			}
			_, err = sessions.ValidateSession(ctx, bystanderToken)
			assert.NoError(t, err)

			status, err := svc.GetUserStatus(ctx, user.ID)
			require.NoError(t, err)
			assert.Equal(t, ban.status, status)

			// Unbanning does not resurrect revoked sessions
			clock.Advance(time.Minute)
			result, err = svc.UnbanUser(ctx, user.ID, StatusChangeOptions{})
			require.NoError(t, err)
			assert.Equal(t, ban.status, result.PreviousStatus)
			for _, token := range tokens {
				_, err := sessions.ValidateSession(ctx, token)
				assert.ErrorIs(t, err, ErrInvalidSession)
			}

			page, err := svc.GetUserStatusHistory(ctx, user.ID, store.NewCursorParams(10, ""))
			require.NoError(t, err)
			require.Len(t, page.Entries, 2)
			assert.Equal(t, models.UserStatusActive, page.Entries[0].NewStatus)
			assert.Equal(t, ban.status, page.Entries[1].NewStatus)
			require.NotNil(t, page.Entries[1].IPAddress)
			assert.Equal(t, "203.0.113.7", *page.Entries[1].IPAddress)
		})
	}
}

func TestGetUserStatusHistory(t *testing.T) {
	s := setupTestStore(t)
	clock := newFakeClock()
	sessions := newTestSessionService(t, s, clock)
	svc := NewAccountStatusService(s, sessions, nil, metrics.NewNoopMetrics(), zap.NewNop())
	svc.now = clock.Now
	ctx := context.Background()
	user := createTestUser(t, s)

	transitions := []models.UserStatus{
		models.UserStatusSuspended,
		models.UserStatusActive,
		models.UserStatusBanned,
		models.UserStatusSuspended,
		models.UserStatusActive,
	}
	for _, status := range transitions {
		clock.Advance(time.Minute)
		result, err := svc.ChangeUserStatus(ctx, user.ID, status, StatusChangeOptions{})
		require.NoError(t, err)
		require.True(t, result.Success)
	}

	t.Run("Pages newest first", func(t *testing.T) {
		var seen []models.UserStatus
		cursor := ""
		pages := 0
		for {
			page, err := svc.GetUserStatusHistory(ctx, user.ID, store.NewCursorParams(2, cursor))
			require.NoError(t, err)
			pages++
			for _, e := range page.Entries {
				seen = append(seen, e.NewStatus)
			}
			if !page.HasMore {
				assert.Empty(t, page.NextCursor)
				break
			}
			require.NotEmpty(t, page.NextCursor)
			cursor = page.NextCursor
		}

		assert.Equal(t, 3, pages)
		assert.Equal(t, []models.UserStatus{
			models.UserStatusActive,
			models.UserStatusSuspended,
			models.UserStatusBanned,
			models.UserStatusActive,
			models.UserStatusSuspended,
		}, seen)
	})

	t.Run("Exact page has no more", func(t *testing.T) {
		page, err := svc.GetUserStatusHistory(ctx, user.ID, store.NewCursorParams(5, ""))
		require.NoError(t, err)
		assert.Len(t, page.Entries, 5)
		assert.False(t, page.HasMore)
	})

	t.Run("Unknown user has empty history", func(t *testing.T) {
		page, err := svc.GetUserStatusHistory(ctx, "nobody", store.NewCursorParams(5, ""))
		require.NoError(t, err)
		assert.NotNil(t, page.Entries)
		assert.Empty(t, page.Entries)
	})

	t.Run("Malformed cursor", func(t *testing.T) {
		_, err := svc.GetUserStatusHistory(ctx, user.ID, store.NewCursorParams(2, "%%%"))
		assert.ErrorIs(t, err, store.ErrInvalidCursor)
	})
}
