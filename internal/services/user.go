package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/auth"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUsernameAttempts = 5

// UserService maps OAuth identities onto local users
type UserService struct {
	store       *store.Store
	adminEmails map[string]struct{}
	logger      *zap.Logger
}

// NewUserService creates a new user service. Users signing up with an email
// in adminEmails get the admin role.
func NewUserService(s *store.Store, adminEmails []string, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.L()
	}
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
			admins[email] = struct{}{}
		}
	}
	return &UserService{
		store:       s,
		adminEmails: admins,
		logger:      logger.Named("user"),
	}
}

// AuthenticateWithOAuth returns the local user linked to the provider account,
// creating user and link on first sign-in. Suspended and banned users get
// ErrAccountDisabled.
func (s *UserService) AuthenticateWithOAuth(
	ctx context.Context,
	provider string,
	info *auth.OAuthUserInfo,
) (*models.User, error) {
	conn, err := s.store.GetOAuthConnection(ctx, provider, info.ProviderUserID)
	switch {
	case err == nil:
		return s.signInExisting(ctx, conn, info)
	case errors.Is(err, store.ErrRecordNotFound):
		return s.signUp(ctx, provider, info)
	default:
		return nil, fmt.Errorf("failed to load oauth connection: %w", err)
	}
}

func (s *UserService) signInExisting(
	ctx context.Context,
	conn *models.OAuthConnection,
	info *auth.OAuthUserInfo,
) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, conn.UserID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive() {
		return nil, ErrAccountDisabled
	}

	conn.ProviderUsername = info.Username
	conn.ProviderEmail = info.Email
	conn.AvatarURL = info.AvatarURL
	conn.LastUsedAt = time.Now()
	if err := s.store.UpdateOAuthConnection(ctx, conn); err != nil {
		s.logger.Warn("failed to update oauth connection",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
	}

	changed := false
	if info.FullName != "" && info.FullName != user.FullName {
		user.FullName = info.FullName
		changed = true
	}
	if info.AvatarURL != "" && info.AvatarURL != user.AvatarURL {
		user.AvatarURL = info.AvatarURL
		changed = true
	}
	if changed {
		if err := s.store.UpdateUserProfile(ctx, user); err != nil {
			s.logger.Warn("failed to sync user profile",
				zap.String("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	return user, nil
}

func (s *UserService) signUp(
	ctx context.Context,
	provider string,
	info *auth.OAuthUserInfo,
) (*models.User, error) {
	role := "user"
	if _, ok := s.adminEmails[strings.ToLower(info.Email)]; ok {
		role = "admin"
	}

	base := strings.TrimSpace(info.Username)
	if base == "" {
		base = provider + "-user"
	}

	now := time.Now()
	for attempt := range maxUsernameAttempts {
		username := base
		if attempt > 0 {
			username = fmt.Sprintf("%s-%s", base, uuid.New().String()[:6])
		}

		user := &models.User{
			ID:        uuid.New().String(),
			Username:  username,
			Email:     info.Email,
			Role:      role,
			FullName:  info.FullName,
			AvatarURL: info.AvatarURL,
			Status:    models.UserStatusActive,
		}
		conn := &models.OAuthConnection{
			ID:               uuid.New().String(),
			Provider:         provider,
			ProviderUserID:   info.ProviderUserID,
			ProviderUsername: info.Username,
			ProviderEmail:    info.Email,
			AvatarURL:        info.AvatarURL,
			LastUsedAt:       now,
		}

		err := s.store.CreateUserWithConnection(ctx, user, conn)
		if err == nil {
			s.logger.Info("new user created via oauth",
				zap.String("user_id", user.ID),
				zap.String("provider", provider),
				zap.String("role", role),
			)
			return user, nil
		}
		if !errors.Is(err, store.ErrUsernameConflict) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: could not allocate a unique username for %q", store.ErrUsernameConflict, base)
}
