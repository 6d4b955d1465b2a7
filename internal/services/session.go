package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/util"

	"go.uber.org/zap"
)

// DefaultSessionLifetime is the absolute lifetime of a freshly issued or refreshed session
const DefaultSessionLifetime = 14 * 24 * time.Hour

// Ensure SessionService can revoke sessions for the account status service
var _ core.SessionRevoker = (*SessionService)(nil)

// ValidatedSession is the identity resolved from a session token
type ValidatedSession struct {
	User    *models.User
	Session *models.Session
}

// SessionInfo is the client-visible view of a session. The bearer token is
// never part of it.
type SessionInfo struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Current   bool      `json:"current"`
}

// SessionService issues, validates, refreshes and revokes login sessions.
// Rows are keyed by the SHA-256 hash of the token.
type SessionService struct {
	store    *store.Store
	metrics  core.Recorder
	logger   *zap.Logger
	lifetime time.Duration
	now      func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(
	s *store.Store,
	lifetime time.Duration,
	m core.Recorder,
	logger *zap.Logger,
) *SessionService {
	if lifetime <= 0 {
		lifetime = DefaultSessionLifetime
	}
	if logger == nil {
		logger = zap.L()
	}
	return &SessionService{
		store:    s,
		metrics:  m,
		logger:   logger.Named("session"),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Lifetime returns the configured session lifetime
func (s *SessionService) Lifetime() time.Duration {
	return s.lifetime
}

// currentTime returns now in UTC at the precision the store keeps
func (s *SessionService) currentTime() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// CreateSession issues a new session for userID. The raw token is returned
// once and must go straight into the session cookie.
func (s *SessionService) CreateSession(
	ctx context.Context,
	userID string,
) (string, *models.Session, error) {
	token, err := util.GenerateSessionID()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := s.currentTime()
	session := &models.Session{
		ID:        util.SHA256Hash(token),
		UserID:    userID,
		ExpiresAt: now.Add(s.lifetime),
		CreatedAt: now,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return "", nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.metrics.RecordSessionCreated()
	return token, session, nil
}

// ValidateSession resolves token to its session and owner. Unknown tokens,
// expired sessions and soft-deleted owners all yield ErrInvalidSession.
func (s *SessionService) ValidateSession(
	ctx context.Context,
	token string,
) (*ValidatedSession, error) {
	if token == "" {
		s.metrics.RecordSessionValidation("missing")
		return nil, ErrInvalidSession
	}

	session, user, err := s.store.GetActiveSession(ctx, util.SHA256Hash(token), s.currentTime())
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			s.metrics.RecordSessionValidation("invalid")
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	s.metrics.RecordSessionValidation("valid")
	return &ValidatedSession{User: user, Session: session}, nil
}

// RefreshSession extends the session behind token when less than half of its
// lifetime remains. It reports whether a write happened.
func (s *SessionService) RefreshSession(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	session, err := s.store.GetSession(ctx, util.SHA256Hash(token))
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load session: %w", err)
	}
	return s.ExtendSession(ctx, session)
}

// ExtendSession applies the sliding-window rule to an already loaded session
// and updates session.ExpiresAt in place when it writes.
func (s *SessionService) ExtendSession(ctx context.Context, session *models.Session) (bool, error) {
	now := s.currentTime()
	if session.IsExpired(now) {
		return false, nil
	}
	if session.ExpiresAt.Sub(now) >= s.lifetime/2 {
		return false, nil
	}

	expiresAt := now.Add(s.lifetime)
	if err := s.store.UpdateSessionExpiry(ctx, session.ID, expiresAt); err != nil {
		return false, fmt.Errorf("failed to refresh session: %w", err)
	}
	session.ExpiresAt = expiresAt

	s.metrics.RecordSessionRefreshed()
	return true, nil
}

// InvalidateSession deletes the session behind token. Unknown tokens are not an error.
func (s *SessionService) InvalidateSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	n, err := s.store.DeleteSession(ctx, util.SHA256Hash(token))
	if err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}
	s.metrics.RecordSessionInvalidated("logout", int(n))
	return nil
}

// InvalidateAllUserSessions deletes every session of userID and returns how many were removed
func (s *SessionService) InvalidateAllUserSessions(ctx context.Context, userID string) (int64, error) {
	n, err := s.store.DeleteSessionsByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate user sessions: %w", err)
	}

	if n > 0 {
		s.logger.Info("invalidated all user sessions",
			zap.String("user_id", userID),
			zap.Int64("count", n),
		)
	}
	s.metrics.RecordSessionInvalidated("revoke_all", int(n))
	return n, nil
}

// DeleteSessionByID deletes one session by its stored id, only if it belongs
// to userID. It reports whether a row was removed.
func (s *SessionService) DeleteSessionByID(ctx context.Context, sessionID, userID string) (bool, error) {
	n, err := s.store.DeleteSessionForUser(ctx, sessionID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	s.metrics.RecordSessionInvalidated("user_revoke", int(n))
	return n > 0, nil
}

// CleanupExpiredSessions removes every expired session and returns the count
func (s *SessionService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpiredSessions(ctx, s.currentTime())
	if err != nil {
		return 0, fmt.Errorf("failed to clean up expired sessions: %w", err)
	}
	s.metrics.RecordSessionsExpired(int(n))
	return n, nil
}

// GetUserSessions lists the unexpired sessions of userID
func (s *SessionService) GetUserSessions(ctx context.Context, userID string) ([]SessionInfo, error) {
	sessions, err := s.store.ListActiveSessions(ctx, userID, s.currentTime())
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, SessionInfo{
			ID:        session.ID,
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
		})
	}
	return infos, nil
}
