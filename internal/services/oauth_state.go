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

// DefaultOAuthStateTTL bounds how long a user may take at the provider
const DefaultOAuthStateTTL = 10 * time.Minute

// Handshake is a consumed OAuth handshake with the PKCE verifier decrypted
type Handshake struct {
	Provider     string
	CodeVerifier string
	Nonce        *string
	ReturnTo     *string
}

// OAuthStateService stores the short-lived, single-use state that binds a
// provider redirect to its callback.
type OAuthStateService struct {
	store   *store.Store
	secret  string
	ttl     time.Duration
	metrics core.Recorder
	logger  *zap.Logger
	now     func() time.Time
}

// NewOAuthStateService creates a new OAuth handshake state service. secret
// encrypts the PKCE verifier at rest.
func NewOAuthStateService(
	s *store.Store,
	secret string,
	ttl time.Duration,
	m core.Recorder,
	logger *zap.Logger,
) *OAuthStateService {
	if ttl <= 0 {
		ttl = DefaultOAuthStateTTL
	}
	if logger == nil {
		logger = zap.L()
	}
	return &OAuthStateService{
		store:   s,
		secret:  secret,
		ttl:     ttl,
		metrics: m,
		logger:  logger.Named("oauth_state"),
		now:     time.Now,
	}
}

func (s *OAuthStateService) currentTime() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// BeginHandshake persists a new handshake and returns the state value to send
// to the provider. nonce and returnTo are optional.
func (s *OAuthStateService) BeginHandshake(
	ctx context.Context,
	provider, codeVerifier string,
	nonce, returnTo *string,
) (string, error) {
	state, err := util.GenerateState()
	if err != nil {
		s.metrics.RecordOAuthHandshake("begin", resultError)
		return "", fmt.Errorf("failed to generate state: %w", err)
	}

	encrypted, err := util.Encrypt(codeVerifier, s.secret)
	if err != nil {
		s.metrics.RecordOAuthHandshake("begin", resultError)
		return "", fmt.Errorf("failed to encrypt code verifier: %w", err)
	}

	now := s.currentTime()
	record := &models.OAuthState{
		ID:           state,
		CodeVerifier: encrypted,
		Provider:     provider,
		ReturnTo:     returnTo,
		Nonce:        nonce,
		ExpiresAt:    now.Add(s.ttl),
		CreatedAt:    now,
	}
	if err := s.store.CreateOAuthState(ctx, record); err != nil {
		s.metrics.RecordOAuthHandshake("begin", resultError)
		return "", fmt.Errorf("failed to store oauth state: %w", err)
	}

	s.metrics.RecordOAuthHandshake("begin", resultSuccess)
	return state, nil
}

// CompleteHandshake consumes the handshake for state. The row is gone once
// this returns, whether or not it succeeds. Unknown, expired, reused and
// undecryptable states all yield ErrInvalidOAuthState.
func (s *OAuthStateService) CompleteHandshake(ctx context.Context, state string) (*Handshake, error) {
	if state == "" {
		s.metrics.RecordOAuthHandshake("complete", resultInvalid)
		return nil, ErrInvalidOAuthState
	}

	record, err := s.store.ConsumeOAuthState(ctx, state)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			s.metrics.RecordOAuthHandshake("complete", resultInvalid)
			return nil, ErrInvalidOAuthState
		}
		s.metrics.RecordOAuthHandshake("complete", resultError)
		return nil, fmt.Errorf("failed to consume oauth state: %w", err)
	}

	if record.IsExpired(s.currentTime()) {
		s.metrics.RecordOAuthHandshake("complete", resultInvalid)
		return nil, ErrInvalidOAuthState
	}

	verifier, err := util.Decrypt(record.CodeVerifier, s.secret)
	if err != nil {
		s.logger.Warn("failed to decrypt stored code verifier",
			zap.String("provider", record.Provider),
			zap.Error(err),
		)
		s.metrics.RecordOAuthHandshake("complete", resultInvalid)
		return nil, ErrInvalidOAuthState
	}

	s.metrics.RecordOAuthHandshake("complete", resultSuccess)
	return &Handshake{
		Provider:     record.Provider,
		CodeVerifier: verifier,
		Nonce:        record.Nonce,
		ReturnTo:     record.ReturnTo,
	}, nil
}

// CleanupExpired removes abandoned handshakes and returns the count
func (s *OAuthStateService) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpiredOAuthStates(ctx, s.currentTime())
	if err != nil {
		return 0, fmt.Errorf("failed to clean up oauth states: %w", err)
	}
	return n, nil
}
