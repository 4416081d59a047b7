package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/vfa-khuongdv/docs-demo/internal/database"
)

// TokenStore persists OAuth2 tokens per client ID
type TokenStore interface {
	SaveTokenConfig(config *database.TokenConfig) error
	GetTokenConfig(clientID string) (*database.TokenConfig, error)
	DeleteTokenConfig(clientID string) error
}

// CodePrompt asks the user to visit the consent URL and returns the authorization code
type CodePrompt interface {
	AuthorizationCode(url string) (string, error)
}

// Service handles OAuth2 authentication for the Drive and Sheets APIs
type Service struct {
	config *oauth2.Config
	store  TokenStore
	log    hclog.Logger
}

// TokenInfo represents token information for display
type TokenInfo struct {
	HasToken bool      `json:"has_token"`
	Expiry   time.Time `json:"expiry,omitempty"`
	Valid    bool      `json:"valid"`
}

// NewService creates a new auth service for an OAuth client ID/secret pair
func NewService(clientID, clientSecret, redirectURL string, store TokenStore, log hclog.Logger) *Service {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{drive.DriveScope, sheets.SpreadsheetsReadonlyScope},
		Endpoint:     google.Endpoint,
	}

	return &Service{
		config: config,
		store:  store,
		log:    log.Named("auth"),
	}
}

// GetAuthURL returns the authorization URL for OAuth2 flow
func (s *Service) GetAuthURL() string {
	return s.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// ExchangeToken exchanges authorization code for tokens and saves them
func (s *Service) ExchangeToken(ctx context.Context, authCode string) (*oauth2.Token, error) {
	code := strings.TrimSpace(authCode)
	if code == "" {
		return nil, fmt.Errorf("authorization code is required")
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	if err := s.save(token); err != nil {
		return nil, fmt.Errorf("failed to save token config: %w", err)
	}

	s.log.Debug("token exchanged", "client", s.config.ClientID, "expiry", token.Expiry)

	return token, nil
}

// GetValidToken returns the stored token, refreshing it if it expires within five minutes
func (s *Service) GetValidToken(ctx context.Context) (*oauth2.Token, error) {
	tokenConfig, err := s.store.GetTokenConfig(s.config.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stored token: %w", err)
	}

	token := &oauth2.Token{
		AccessToken:  tokenConfig.AccessToken,
		RefreshToken: tokenConfig.RefreshToken,
		TokenType:    tokenConfig.TokenType,
		Expiry:       tokenConfig.Expiry,
	}

	if token.Expiry.IsZero() || token.Expiry.After(time.Now().Add(5*time.Minute)) {
		return token, nil
	}

	expired := *token
	expired.Expiry = time.Now().Add(-time.Minute)

	newToken, err := s.config.TokenSource(ctx, &expired).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	if newToken.AccessToken != token.AccessToken {
		if err := s.save(newToken); err != nil {
			return nil, fmt.Errorf("failed to save refreshed token: %w", err)
		}
		s.log.Debug("token refreshed", "client", s.config.ClientID, "expiry", newToken.Expiry)
	}

	return newToken, nil
}

// Authenticate returns an HTTP client authorised for the Drive and Sheets APIs. The stored
// token is used when there is one, otherwise the user is sent through the consent page.
// A stored token the authorization server rejects is dropped before asking for consent again.
func (s *Service) Authenticate(ctx context.Context, prompt CodePrompt) (*http.Client, error) {
	token, err := s.GetValidToken(ctx)

	var rejected *oauth2.RetrieveError
	switch {
	case err == nil:
	case errors.Is(err, database.ErrTokenNotFound):
		s.log.Debug("no stored token", "client", s.config.ClientID)
		token, err = s.consent(ctx, prompt)
	case errors.As(err, &rejected):
		s.log.Warn("stored token was rejected", "client", s.config.ClientID, "error", rejected.ErrorCode)
		if err := s.store.DeleteTokenConfig(s.config.ClientID); err != nil {
			return nil, fmt.Errorf("failed to delete stored token: %w", err)
		}
		token, err = s.consent(ctx, prompt)
	}
	if err != nil {
		return nil, err
	}

	return s.config.Client(ctx, token), nil
}

func (s *Service) consent(ctx context.Context, prompt CodePrompt) (*oauth2.Token, error) {
	code, err := prompt.AuthorizationCode(s.GetAuthURL())
	if err != nil {
		return nil, err
	}

	return s.ExchangeToken(ctx, code)
}

// GetTokenInfo returns information about the current token
func (s *Service) GetTokenInfo() (*TokenInfo, error) {
	tokenConfig, err := s.store.GetTokenConfig(s.config.ClientID)
	if err != nil {
		return &TokenInfo{HasToken: false}, nil
	}

	info := &TokenInfo{
		HasToken: true,
		Expiry:   tokenConfig.Expiry,
		Valid:    time.Now().Before(tokenConfig.Expiry),
	}

	return info, nil
}

func (s *Service) save(token *oauth2.Token) error {
	return s.store.SaveTokenConfig(&database.TokenConfig{
		ClientID:     s.config.ClientID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.Type(),
		Expiry:       token.Expiry,
	})
}
