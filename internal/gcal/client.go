package gcal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenStore persists the Google OAuth token between runs.
type TokenStore interface {
	GetGoogleToken() (*oauth2.Token, error)
	SaveGoogleToken(token *oauth2.Token) error
}

// Client wraps the Google Calendar API client
type Client struct {
	service *calendar.Service
	config  *oauth2.Config
	tokens  TokenStore
	token   *oauth2.Token
}

// NewClient creates a new Google Calendar client
func NewClient(credentialsFile string, tokens TokenStore) (*Client, error) {
	config, err := loadOAuthConfig(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth config: %w", err)
	}

	client := &Client{
		config: config,
		tokens: tokens,
	}

	// Try to load existing token and initialize the service
	token, err := tokens.GetGoogleToken()
	if err == nil {
		client.token = token
		if err := client.tryInitService(); err != nil {
			// Token might be expired, but that's OK - user will need to re-auth
			fmt.Printf("Note: Could not initialize calendar service with existing token: %v\n", err)
		}
	}

	return client, nil
}

// tryInitService attempts to initialize the service, refreshing the token if needed
func (c *Client) tryInitService() error {
	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	ctx := context.Background()

	// If token is expired but we have a refresh token, try to refresh
	if !c.token.Valid() && c.token.RefreshToken != "" {
		tokenSource := c.config.TokenSource(ctx, c.token)
		newToken, err := tokenSource.Token()
		if err != nil {
			return fmt.Errorf("failed to refresh token: %w", err)
		}
		c.token = newToken
		if err := c.tokens.SaveGoogleToken(newToken); err != nil {
			fmt.Printf("Warning: could not save refreshed token: %v\n", err)
		}
	}

	return c.initService(ctx)
}

// IsAuthenticated returns true if the client is authenticated
func (c *Client) IsAuthenticated() bool {
	return c.service != nil
}

// GetAuthURL returns the OAuth authorization URL
func (c *Client) GetAuthURL() string {
	return c.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// initService initializes the Calendar service with the current token
func (c *Client) initService(ctx context.Context) error {
	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	httpClient := c.config.Client(ctx, c.token)
	httpClient.Timeout = 30 * time.Second
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create calendar service: %w", err)
	}

	c.service = service
	return nil
}

// ExchangeCode exchanges an authorization code for a token and saves it
func (c *Client) ExchangeCode(ctx context.Context, code string) error {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code for token: %w", err)
	}

	c.token = token
	if err := c.tokens.SaveGoogleToken(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return c.initService(ctx)
}

// HTTPClient returns an authenticated HTTP client for other Google services
// (e.g. the People API). Returns ErrAuthExpired when no token is available.
func (c *Client) HTTPClient(ctx context.Context) (*http.Client, error) {
	if c.token == nil {
		return nil, fmt.Errorf("google client not authenticated: %w", ErrAuthExpired)
	}
	httpClient := c.config.Client(ctx, c.token)
	httpClient.Timeout = 30 * time.Second
	return httpClient, nil
}
