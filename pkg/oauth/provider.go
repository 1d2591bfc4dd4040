package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

// Profile is provider-agnostic user information retrieved after the
// authorization-code exchange.
type Profile struct {
	ID      string // Provider's unique user identifier
	Email   string // Verified email address
	Name    string
	Picture string
}

// Provider abstracts a single OAuth identity provider.
// Implementations own all provider-specific details, including the
// verified-email requirement: Profile must carry a verified email, otherwise
// the provider returns ErrEmailNotVerified.
type Provider interface {
	// Name returns the provider identifier (e.g. "google", "github").
	Name() string

	// AuthCodeURL builds the authorization URL for the given state.
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string

	// Exchange trades an authorization code for tokens.
	// A non-empty redirectURI overrides the configured redirect URL.
	Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error)

	// Profile retrieves the user profile using the access token.
	Profile(ctx context.Context, token *oauth2.Token) (*Profile, error)
}

// exchange performs the code exchange against cfg, optionally overriding the
// redirect URL. Shared by all providers.
func exchange(ctx context.Context, cfg *oauth2.Config, httpClient *http.Client, code, redirectURI string) (*oauth2.Token, error) {
	if redirectURI != "" {
		override := *cfg
		override.RedirectURL = redirectURI
		cfg = &override
	}
	return cfg.Exchange(withHTTPClient(ctx, httpClient), code)
}

// withHTTPClient injects a custom HTTP client into the oauth2 context.
func withHTTPClient(ctx context.Context, client *http.Client) context.Context {
	if client != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, client)
	}
	return ctx
}

// getJSON fetches url with the authorized client and decodes the JSON body
// into dest. Non-200 responses map to ErrRequestFailed.
func getJSON(client *http.Client, url string, dest any) error {
	resp, err := client.Get(url)
	if err != nil {
		return errors.Join(ErrFetchFailed, fmt.Errorf("get %s: %w", url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Join(ErrRequestFailed, fmt.Errorf("get %s: status=%d", url, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Join(ErrDecodeFailed, fmt.Errorf("decode %s: %w", url, err))
	}
	return nil
}
