package oauth

import (
	"context"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
	githubendpoint "golang.org/x/oauth2/github"
)

const (
	// GitHubName is the identifier for the GitHub provider.
	GitHubName = "github"

	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// GitHubDefaultScopes returns the default scopes for GitHub OAuth.
func GitHubDefaultScopes() []string {
	return []string{"read:user", "user:email"}
}

// GitHub implements Provider for GitHub OAuth.
type GitHub struct {
	config     *oauth2.Config
	httpClient *http.Client
	userURL    string
	emailsURL  string
}

// NewGitHub creates a GitHub OAuth provider.
func NewGitHub(cfg Config, opts ...Option) (*GitHub, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	o := newOptions(opts)

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = GitHubDefaultScopes()
	}

	userURL := o.userInfoURL
	if userURL == "" {
		userURL = githubUserURL
	}
	emailsURL := o.emailsURL
	if emailsURL == "" {
		emailsURL = githubEmailsURL
	}

	return &GitHub{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     githubendpoint.Endpoint,
		},
		httpClient: o.httpClient,
		userURL:    userURL,
		emailsURL:  emailsURL,
	}, nil
}

// Name returns the provider identifier.
func (p *GitHub) Name() string {
	return GitHubName
}

// AuthCodeURL builds the authorization URL for the given state.
func (p *GitHub) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	return p.config.AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens.
func (p *GitHub) Exchange(ctx context.Context, code, redirectURI string) (*oauth2.Token, error) {
	return exchange(ctx, p.config, p.httpClient, code, redirectURI)
}

// Profile retrieves the user profile from GitHub.
// GitHub's user endpoint may hide the email, so emails are fetched separately;
// the primary verified email wins, any verified email is the fallback.
func (p *GitHub) Profile(ctx context.Context, token *oauth2.Token) (*Profile, error) {
	client := p.config.Client(withHTTPClient(ctx, p.httpClient), token)

	var user struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
		ID        int64  `json:"id"`
	}
	if err := getJSON(client, p.userURL, &user); err != nil {
		return nil, err
	}

	email, err := p.verifiedEmail(client)
	if err != nil {
		return nil, err
	}

	return &Profile{
		ID:      strconv.FormatInt(user.ID, 10),
		Email:   email,
		Name:    user.Name,
		Picture: user.AvatarURL,
	}, nil
}

// verifiedEmail picks the primary verified email, falling back to any
// verified one. Returns ErrEmailNotVerified when none qualifies.
func (p *GitHub) verifiedEmail(client *http.Client) (string, error) {
	var emails []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := getJSON(client, p.emailsURL, &emails); err != nil {
		return "", err
	}

	fallback := ""
	for _, e := range emails {
		if !e.Verified {
			continue
		}
		if e.Primary {
			return e.Email, nil
		}
		if fallback == "" {
			fallback = e.Email
		}
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", ErrEmailNotVerified
}
