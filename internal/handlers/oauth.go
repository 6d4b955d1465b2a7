package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/auth"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const defaultReturnTo = "/"

// OAuthHandler runs the authorization-code + PKCE sign-in flow
type OAuthHandler struct {
	providers  map[string]*auth.OAuthProvider
	handshakes *services.OAuthStateService
	users      *services.UserService
	sessions   *services.SessionService
	audit      *services.AuditService
	cookies    middleware.CookieConfig
	httpClient *http.Client // Custom HTTP client for OAuth requests
	metrics    core.Recorder
	logger     *zap.Logger

	newCSRFToken func() (string, error)
}

// NewOAuthHandler creates a new OAuth handler
func NewOAuthHandler(
	providers map[string]*auth.OAuthProvider,
	handshakes *services.OAuthStateService,
	users *services.UserService,
	sessions *services.SessionService,
	audit *services.AuditService,
	cookies middleware.CookieConfig,
	httpClient *http.Client,
	m core.Recorder,
	logger *zap.Logger,
) *OAuthHandler {
	if logger == nil {
		logger = zap.L()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OAuthHandler{
		providers:  providers,
		handshakes: handshakes,
		users:      users,
		sessions:   sessions,
		audit:      audit,
		cookies:    cookies,
		httpClient: httpClient,
		metrics:    m,
		logger:     logger.Named("oauth"),

		newCSRFToken: util.GenerateCSRFToken,
	}
}

// LoginWithProvider godoc
//
//	@Summary		Start OAuth sign-in
//	@Description	Stores a single-use handshake and redirects to the provider with a PKCE challenge
//	@Tags			Auth
//	@Param			provider	path		string	true	"github or google"
//	@Param			return_to	query		string	false	"Relative path to land on after sign-in"
//	@Success		302
//	@Failure		404	{object}	object{error=string,message=string}	"Provider not configured"
//	@Failure		500	{object}	object{error=string,message=string}
//	@Router			/auth/{provider}/login [get]
func (h *OAuthHandler) LoginWithProvider(c *gin.Context) {
	provider := c.Param("provider")

	oauthProvider, exists := h.providers[provider]
	if !exists {
		respondError(c, http.StatusNotFound, "unsupported_provider",
			"The requested sign-in provider is not configured.")
		return
	}

	codeVerifier, err := util.GenerateCodeVerifier()
	if err != nil {
		h.logger.Error("failed to generate code verifier", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to start sign-in.")
		return
	}

	var nonce *string
	if oauthProvider.UsesNonce() {
		n, err := util.GenerateNonce()
		if err != nil {
			h.logger.Error("failed to generate nonce", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "internal_error", "Failed to start sign-in.")
			return
		}
		nonce = &n
	}

	var returnTo *string
	if raw := c.Query("return_to"); raw != "" {
		safe := util.SanitizeReturnTo(raw, defaultReturnTo)
		returnTo = &safe
	}

	state, err := h.handshakes.BeginHandshake(
		c.Request.Context(),
		provider,
		codeVerifier,
		nonce,
		returnTo,
	)
	if err != nil {
		h.logger.Error("failed to persist handshake",
			zap.String("provider", provider),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to start sign-in.")
		return
	}

	var nonceValue string
	if nonce != nil {
		nonceValue = *nonce
	}
	c.Redirect(http.StatusFound, oauthProvider.GetAuthURL(state, codeVerifier, nonceValue))
}

// OAuthCallback consumes the handshake, completes the code exchange and
// signs the user in
//
//	@Summary		OAuth callback
//	@Tags			Auth
//	@Param			provider	path		string	true	"github or google"
//	@Param			state		query		string	true	"Handshake state"
//	@Param			code		query		string	false	"Authorization code"
//	@Param			error		query		string	false	"Provider error"
//	@Success		302	"Signed in; session and CSRF cookies set"
//	@Failure		400	{object}	object{error=string,message=string}	"Invalid state, cancelled sign-in or unverifiable token"
//	@Failure		403	{object}	object{error=string,message=string}	"Account suspended or banned"
//	@Failure		502	{object}	object{error=string,message=string}	"Provider unreachable"
//	@Router			/auth/{provider}/callback [get]
func (h *OAuthHandler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	ctx := c.Request.Context()

	oauthProvider, exists := h.providers[provider]
	if !exists {
		respondError(c, http.StatusNotFound, "unsupported_provider",
			"The requested sign-in provider is not configured.")
		return
	}

	// The state is consumed even when the provider reports an error so it
	// cannot be replayed.
	handshake, err := h.handshakes.CompleteHandshake(ctx, c.Query("state"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidOAuthState) {
			h.rejectState(c, provider, "invalid_state")
			return
		}
		h.logger.Error("failed to consume handshake", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "internal_error", "Sign-in failed.")
		return
	}

	if handshake.Provider != provider {
		h.rejectState(c, provider, "provider_mismatch")
		return
	}

	if providerErr := c.Query("error"); providerErr != "" {
		h.fail(c, provider, "provider_error", providerErr)
		respondError(c, http.StatusBadRequest, "access_denied",
			"Sign-in was cancelled at the provider. Please restart sign-in.")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.fail(c, provider, "missing_code", "")
		respondError(c, http.StatusBadRequest, "invalid_request",
			"Missing authorization code. Please restart sign-in.")
		return
	}

	// Use custom HTTP client for OAuth requests
	oauthCtx := context.WithValue(ctx, oauth2.HTTPClient, h.httpClient)

	token, err := oauthProvider.ExchangeCode(oauthCtx, code, handshake.CodeVerifier)
	if err != nil {
		h.logger.Warn("code exchange failed", zap.String("provider", provider), zap.Error(err))
		h.fail(c, provider, "exchange_failed", "")
		respondError(c, http.StatusBadGateway, "oauth_error",
			"Failed to exchange authorization code.")
		return
	}

	var expectedNonce string
	if handshake.Nonce != nil {
		expectedNonce = *handshake.Nonce
	}
	userInfo, err := oauthProvider.GetUserInfo(oauthCtx, token, expectedNonce)
	if err != nil {
		h.logger.Warn("failed to load provider profile", zap.String("provider", provider), zap.Error(err))
		h.fail(c, provider, "userinfo_failed", "")
		if errors.Is(err, auth.ErrNonceMismatch) || errors.Is(err, auth.ErrMissingIDToken) {
			respondError(c, http.StatusBadRequest, "invalid_token",
				"The identity token could not be verified. Please restart sign-in.")
			return
		}
		respondError(c, http.StatusBadGateway, "oauth_error",
			"Failed to retrieve user information from provider.")
		return
	}

	user, err := h.users.AuthenticateWithOAuth(ctx, provider, userInfo)
	if err != nil {
		if errors.Is(err, services.ErrAccountDisabled) {
			h.fail(c, provider, "account_disabled", "")
			respondError(c, http.StatusForbidden, "account_disabled",
				"This account is suspended or banned.")
			return
		}
		h.logger.Error("oauth authentication failed", zap.String("provider", provider), zap.Error(err))
		h.fail(c, provider, "authentication_failed", "")
		respondError(c, http.StatusInternalServerError, "internal_error",
			"Unable to authenticate your account at this time.")
		return
	}

	// Nothing is persisted or written until both tokens exist
	csrfToken, err := h.newCSRFToken()
	if err != nil {
		h.logger.Error("failed to generate csrf token", zap.Error(err))
		h.fail(c, provider, "session_failed", "")
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to create session.")
		return
	}

	sessionToken, session, err := h.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		h.logger.Error("failed to create session", zap.String("user_id", user.ID), zap.Error(err))
		h.fail(c, provider, "session_failed", "")
		respondError(c, http.StatusInternalServerError, "internal_error", "Failed to create session.")
		return
	}

	h.cookies.SetSessionCookie(c.Writer, sessionToken)
	h.cookies.SetCSRFCookie(c.Writer, csrfToken)

	h.metrics.RecordOAuthCallback(provider, true)
	h.audit.Log(ctx, services.AuditLogEntry{
		EventType:     models.EventAuthenticationSuccess,
		Severity:      models.SeverityInfo,
		ActorUserID:   user.ID,
		ActorUsername: user.Username,
		ActorIP:       c.ClientIP(),
		ResourceType:  models.ResourceSession,
		ResourceID:    session.ID,
		Action:        "Signed in with " + oauthProvider.GetDisplayName(),
		Details:       models.AuditDetails{"provider": provider},
		Success:       true,
		UserAgent:     c.Request.UserAgent(),
		RequestPath:   c.Request.URL.Path,
		RequestMethod: c.Request.Method,
	})

	h.logger.Info("user signed in",
		zap.String("user_id", user.ID),
		zap.String("provider", provider),
	)

	redirectURL := defaultReturnTo
	if handshake.ReturnTo != nil {
		redirectURL = util.SanitizeReturnTo(*handshake.ReturnTo, defaultReturnTo)
	}
	c.Redirect(http.StatusFound, redirectURL)
}

func (h *OAuthHandler) rejectState(c *gin.Context, provider, reason string) {
	h.metrics.RecordOAuthCallback(provider, false)
	h.audit.Log(c.Request.Context(), services.AuditLogEntry{
		EventType:     models.EventOAuthStateRejected,
		Severity:      models.SeverityWarning,
		ActorIP:       c.ClientIP(),
		ResourceType:  models.ResourceOAuth,
		Action:        "OAuth state rejected",
		Details:       models.AuditDetails{"provider": provider, "reason": reason},
		UserAgent:     c.Request.UserAgent(),
		RequestPath:   c.Request.URL.Path,
		RequestMethod: c.Request.Method,
	})
	respondError(c, http.StatusBadRequest, "invalid_state",
		"Your sign-in link has expired or was already used. Please restart sign-in.")
}

func (h *OAuthHandler) fail(c *gin.Context, provider, reason, providerErr string) {
	h.metrics.RecordOAuthCallback(provider, false)
	details := models.AuditDetails{"provider": provider, "reason": reason}
	if providerErr != "" {
		details["provider_error"] = providerErr
	}
	h.audit.Log(c.Request.Context(), services.AuditLogEntry{
		EventType:     models.EventAuthenticationFailure,
		Severity:      models.SeverityWarning,
		ActorIP:       c.ClientIP(),
		ResourceType:  models.ResourceOAuth,
		Action:        "OAuth sign-in failed",
		Details:       details,
		Success:       false,
		ErrorMessage:  reason,
		UserAgent:     c.Request.UserAgent(),
		RequestPath:   c.Request.URL.Path,
		RequestMethod: c.Request.Method,
	})
}
