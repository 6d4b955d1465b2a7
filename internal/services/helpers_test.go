package services

import (
	"context"
	"testing"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	// Use in-memory SQLite database for testing
	s, err := store.New(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createTestUser(t *testing.T, s *store.Store) *models.User {
	t.Helper()
	u := &models.User{
		ID:       uuid.New().String(),
		Username: "user-" + uuid.New().String()[:8],
		Email:    uuid.New().String()[:8] + "@example.com",
		Role:     "user",
		Status:   models.UserStatusActive,
	}
	require.NoError(t, s.CreateUser(context.Background(), u))
	return u
}

// fakeClock is a settable time source for services with an injectable now
type fakeClock struct {
	t0 time.Time
	d  time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{t0: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t0.Add(c.d) }

func (c *fakeClock) Advance(d time.Duration) { c.d += d }
