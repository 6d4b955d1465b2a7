package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGitHub = "github"
	ProviderGoogle = "google"

	githubAPIBaseURL = "https://api.github.com"
)

// OAuthProviderConfig contains configuration for an OAuth provider
type OAuthProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	// Endpoint and APIBaseURL override the provider defaults (tests, GitHub Enterprise)
	Endpoint   *oauth2.Endpoint
	APIBaseURL string
}

// OAuthUserInfo contains user information from OAuth provider
type OAuthUserInfo struct {
	ProviderUserID string // Provider's user ID
	Username       string // Provider's username
	Email          string // User email (required)
	FullName       string // User full name
	AvatarURL      string // Avatar URL
}

// OAuthProvider handles the authorization-code + PKCE exchange with one provider
type OAuthProvider struct {
	config     *oauth2.Config
	provider   string // "github", "google"
	apiBaseURL string
}

// NewGitHubProvider creates a new GitHub OAuth provider
func NewGitHubProvider(cfg OAuthProviderConfig) *OAuthProvider {
	endpoint := github.Endpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}
	apiBaseURL := githubAPIBaseURL
	if cfg.APIBaseURL != "" {
		apiBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	}

	return &OAuthProvider{
		provider:   ProviderGitHub,
		apiBaseURL: apiBaseURL,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint:     endpoint,
		},
	}
}

// NewGoogleProvider creates a new Google OpenID Connect provider
func NewGoogleProvider(cfg OAuthProviderConfig) *OAuthProvider {
	endpoint := google.Endpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"openid", "email", "profile"}
	}

	return &OAuthProvider{
		provider: ProviderGoogle,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
	}
}

// UsesNonce reports whether the provider returns an OIDC id_token bound to a nonce
func (p *OAuthProvider) UsesNonce() bool {
	return p.provider == ProviderGoogle
}

// GetAuthURL returns the authorization URL carrying state, the S256 challenge
// for codeVerifier and, for OIDC providers, the nonce.
func (p *OAuthProvider) GetAuthURL(state, codeVerifier, nonce string) string {
	opts := []oauth2.AuthCodeOption{oauth2.S256ChallengeOption(codeVerifier)}
	if p.UsesNonce() && nonce != "" {
		opts = append(opts, oauth2.SetAuthURLParam("nonce", nonce))
	}
	return p.config.AuthCodeURL(state, opts...)
}

// ExchangeCode exchanges authorization code for access token
func (p *OAuthProvider) ExchangeCode(
	ctx context.Context,
	code, codeVerifier string,
) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
}

// GetUserInfo retrieves user information from the OAuth provider. For OIDC
// providers expectedNonce must match the id_token nonce claim.
func (p *OAuthProvider) GetUserInfo(
	ctx context.Context,
	token *oauth2.Token,
	expectedNonce string,
) (*OAuthUserInfo, error) {
	switch p.provider {
	case ProviderGitHub:
		return p.getGitHubUserInfo(ctx, token)
	case ProviderGoogle:
		return p.getGoogleUserInfo(token, expectedNonce)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", p.provider)
	}
}

// GetProvider returns the provider name
func (p *OAuthProvider) GetProvider() string {
	return p.provider
}

// GetDisplayName returns the human-readable provider name
func (p *OAuthProvider) GetDisplayName() string {
	switch p.provider {
	case ProviderGitHub:
		return "GitHub"
	case ProviderGoogle:
		return "Google"
	default:
		return p.provider
	}
}

// GitHub user info structures
type githubUser struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// getGitHubUserInfo retrieves user info from GitHub API
func (p *OAuthProvider) getGitHubUserInfo(
	ctx context.Context,
	token *oauth2.Token,
) (*OAuthUserInfo, error) {
	client := p.config.Client(ctx, token)

	var user githubUser
	if err := p.getJSON(ctx, client, p.apiBaseURL+"/user", &user); err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}

	// If email is not public, fetch from emails endpoint
	if user.Email == "" {
		email, err := p.getGitHubPrimaryEmail(ctx, client)
		if err != nil {
			return nil, fmt.Errorf("failed to get user email: %w", err)
		}
		user.Email = email
	}

	return &OAuthUserInfo{
		ProviderUserID: fmt.Sprintf("%d", user.ID),
		Username:       user.Login,
		Email:          user.Email,
		FullName:       user.Name,
		AvatarURL:      user.AvatarURL,
	}, nil
}

// getGitHubPrimaryEmail fetches primary email from GitHub emails endpoint
func (p *OAuthProvider) getGitHubPrimaryEmail(
	ctx context.Context,
	client *http.Client,
) (string, error) {
	var emails []githubEmail
	if err := p.getJSON(ctx, client, p.apiBaseURL+"/user/emails", &emails); err != nil {
		return "", err
	}

	// Find primary verified email
	for _, email := range emails {
		if email.Primary && email.Verified {
			return email.Email, nil
		}
	}

	// Fallback to first verified email
	for _, email := range emails {
		if email.Verified {
			return email.Email, nil
		}
	}

	return "", ErrNoEmail
}

func (p *OAuthProvider) getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s API error: %s - %s", p.GetDisplayName(), resp.Status, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// googleClaims are the id_token claims used for sign-in
type googleClaims struct {
	jwt.RegisteredClaims
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Nonce         string `json:"nonce"`
}

// getGoogleUserInfo reads the identity from the id_token returned by the token
// endpoint. The token arrived over the direct TLS back-channel, so its
// signature is not re-verified here; the audience and nonce are.
func (p *OAuthProvider) getGoogleUserInfo(
	token *oauth2.Token,
	expectedNonce string,
) (*OAuthUserInfo, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, ErrMissingIDToken
	}

	var claims googleClaims
	if _, _, err := jwt.NewParser().ParseUnverified(rawIDToken, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse id_token: %w", err)
	}

	if !audienceContains(claims.Audience, p.config.ClientID) {
		return nil, fmt.Errorf("id_token audience does not include client %q", p.config.ClientID)
	}
	if expectedNonce == "" || !util.SecureCompare(claims.Nonce, expectedNonce) {
		return nil, ErrNonceMismatch
	}
	if claims.Email == "" || !claims.EmailVerified {
		return nil, ErrNoEmail
	}

	username, _, _ := strings.Cut(claims.Email, "@")
	return &OAuthUserInfo{
		ProviderUserID: claims.Subject,
		Username:       username,
		Email:          claims.Email,
		FullName:       claims.Name,
		AvatarURL:      claims.Picture,
	}, nil
}

func audienceContains(aud jwt.ClaimStrings, clientID string) bool {
	for _, a := range aud {
		if a == clientID {
			return true
		}
	}
	return false
}
