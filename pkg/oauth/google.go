package oauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	googleendpoint "golang.org/x/oauth2/google"
)

const (
	// GoogleName is the identifier for the Google provider.
	GoogleName = "google"

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// GoogleDefaultScopes returns the default scopes for Google OAuth.
func GoogleDefaultScopes() []string {
	return []string{
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	}
}

// Google implements Provider for Google OAuth.
type Google struct {
	config      *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

// NewGoogle creates a Google OAuth provider.
func NewGoogle(cfg Config, opts ...Option) (*Google, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := newOptions(opts)

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = GoogleDefaultScopes()
	}

	userInfoURL := o.userInfoURL
	if userInfoURL == "" {
		userInfoURL = googleUserInfoURL
	}

	return &Google{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     googleendpoint.Endpoint,
		},
		httpClient:  o.httpClient,
		userInfoURL: userInfoURL,
	}, nil
}

// Name returns the provider identifier.
func (p *Google) Name() string {
	return GoogleName
}

// AuthCodeURL builds the authorization URL for the given state.
func (p *Google) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (p *Google) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	return exchange(ctx, p.config, p.httpClient, code, redirectURI)
}

// Profile retrieves the user profile from Google's userinfo endpoint.
// Returns ErrEmailNotVerified if Google reports the email as unverified.
func (p *Google) Profile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := p.config.Client(withHTTPClient(ctx, p.httpClient), token)

	var user struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
		VerifiedEmail bool   `json:"verified_email"`
	}
	if err := getJSON(client, p.userInfoURL, &user); err != nil {
		return nil, err
	}

	if !user.VerifiedEmail {
		return nil, ErrEmailNotVerified
	}

	return &Profile{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
	}, nil
}
