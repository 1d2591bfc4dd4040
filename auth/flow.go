package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/loom/internal"
	"github.com/dmitrymomot/loom/pkg/jwt"
	"github.com/dmitrymomot/loom/pkg/oauth"
)

// Defaults for the sign-in flow.
const (
	DefaultStateCookie = "oauth_state"
	DefaultAuthCookie  = "auth_token"
	DefaultStateTTL    = 10 * time.Minute
)

// Failure codes carried in the redirect's error query parameter.
const (
	FailUnknownProvider = "unknown_provider"
	FailProviderDenied  = "provider_denied"
	FailStateMismatch   = "state_mismatch"
	FailMissingCode     = "missing_code"
	FailExchange        = "exchange_failed"
	FailProfile         = "profile_failed"
	FailEmailUnverified = "email_not_verified"
	FailStore           = "store_failed"
	FailToken           = "token_failed"
)

// Flow mounts the OAuth sign-in routes. Every callback failure redirects
// to the failure URL with an error query parameter; the flow never
// responds with a 5xx.
type Flow struct {
	providers   map[string]oauth.Provider
	users       UserStore
	tokens      *jwt.Service
	stateCookie string
	authCookie  string
	stateTTL    time.Duration
	successURL  string
	failureURL  string
	logoutURL   string
}

// FlowOption configures the Flow.
type FlowOption func(*Flow)

// WithSuccessURL sets the post-login redirect target. Defaults to "/".
func WithSuccessURL(u string) FlowOption {
	return func(f *Flow) {
		if u != "" {
			f.successURL = u
		}
	}
}

// WithFailureURL sets where callback failures redirect. Defaults to
// "/login".
func WithFailureURL(u string) FlowOption {
	return func(f *Flow) {
		if u != "" {
			f.failureURL = u
		}
	}
}

// WithLogoutURL sets the post-logout redirect target. Defaults to "/".
func WithLogoutURL(u string) FlowOption {
	return func(f *Flow) {
		if u != "" {
			f.logoutURL = u
		}
	}
}

// WithAuthCookie overrides the session cookie name. It must match the
// cookie the JWT middleware reads.
func WithAuthCookie(name string) FlowOption {
	return func(f *Flow) {
		if name != "" {
			f.authCookie = name
		}
	}
}

// WithStateCookie overrides the state cookie name.
func WithStateCookie(name string) FlowOption {
	return func(f *Flow) {
		if name != "" {
			f.stateCookie = name
		}
	}
}

// WithStateTTL sets how long a started sign-in stays valid.
func WithStateTTL(ttl time.Duration) FlowOption {
	return func(f *Flow) {
		if ttl > 0 {
			f.stateTTL = ttl
		}
	}
}

// NewFlow creates the sign-in flow over the given providers.
//
// Example:
//
//	google, _ := oauth.NewGoogle(cfg.Auth.Providers["google"])
//	flow := auth.NewFlow(users, tokens, auth.WithSuccessURL("/dashboard"),
//	    auth.WithProvider(google))
//	app := loom.New(loom.WithHandlers(flow))
func NewFlow(users UserStore, tokens *jwt.Service, opts ...FlowOption) *Flow {
	f := &Flow{
		providers:   make(map[string]oauth.Provider),
		users:       users,
		tokens:      tokens,
		stateCookie: DefaultStateCookie,
		authCookie:  DefaultAuthCookie,
		stateTTL:    DefaultStateTTL,
		successURL:  "/",
		failureURL:  "/login",
		logoutURL:   "/",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// WithProvider registers an identity provider under its Name().
func WithProvider(p oauth.Provider) FlowOption {
	return func(f *Flow) {
		if p != nil {
			f.providers[p.Name()] = p
		}
	}
}

// Routes implements loom.Handler.
func (f *Flow) Routes(r internal.Router) {
	r.Route("/auth", func(r internal.Router) {
		r.GET("/{provider}", f.begin)
		r.GET("/{provider}/callback", f.callback)
		r.POST("/logout", f.logout)
	})
}

// begin starts the authorization-code flow: a fresh state value is
// persisted in a signed short-lived cookie, then the browser is sent to
// the provider's consent page.
func (f *Flow) begin(c internal.Context) error {
	provider, ok := f.providers[c.Param("provider")]
	if !ok {
		return f.fail(c, FailUnknownProvider)
	}

	state := uuid.NewString()
	if err := c.SetCookieSigned(f.stateCookie, state, int(f.stateTTL.Seconds())); err != nil {
		c.LogError("failed to set state cookie", "error", err)
		return f.fail(c, FailStateMismatch)
	}

	return c.Redirect(http.StatusFound, provider.AuthCodeURL(state))
}

// callback finishes the flow. Every failure is turned into a redirect
// with a stable error code; details go to the log only.
func (f *Flow) callback(c internal.Context) error {
	provider, ok := f.providers[c.Param("provider")]
	if !ok {
		return f.fail(c, FailUnknownProvider)
	}

	if errCode := c.Query("error"); errCode != "" {
		c.LogWarn("provider returned error", "provider", provider.Name(), "error", errCode)
		return f.fail(c, FailProviderDenied)
	}

	wantState, err := c.CookieSigned(f.stateCookie)
	c.DeleteCookie(f.stateCookie)
	gotState := c.Query("state")
	if err != nil || wantState == "" ||
		subtle.ConstantTimeCompare([]byte(wantState), []byte(gotState)) != 1 {
		return f.fail(c, FailStateMismatch)
	}

	code := c.Query("code")
	if code == "" {
		return f.fail(c, FailMissingCode)
	}

	token, err := provider.Exchange(c.Context(), code, "")
	if err != nil {
		c.LogError("code exchange failed", "provider", provider.Name(), "error", err)
		return f.fail(c, FailExchange)
	}

	profile, err := provider.Profile(c.Context(), token)
	if err != nil {
		if errors.Is(err, oauth.ErrEmailNotVerified) {
			return f.fail(c, FailEmailUnverified)
		}
		c.LogError("profile fetch failed", "provider", provider.Name(), "error", err)
		return f.fail(c, FailProfile)
	}

	user, err := f.users.Upsert(c.Context(), userFromProfile(provider.Name(), profile))
	if err != nil {
		c.LogError("user upsert failed", "provider", provider.Name(), "error", err)
		return f.fail(c, FailStore)
	}

	session, err := f.tokens.Issue(user.ID)
	if err != nil {
		c.LogError("token issue failed", "error", err)
		return f.fail(c, FailToken)
	}

	c.SetCookie(f.authCookie, session, int(f.tokens.TTL().Seconds()))
	c.LogInfo("user signed in", "provider", provider.Name(), "user_id", user.ID)

	return c.Redirect(http.StatusSeeOther, f.successURL)
}

func (f *Flow) logout(c internal.Context) error {
	c.DeleteCookie(f.authCookie)
	return c.Redirect(http.StatusSeeOther, f.logoutURL)
}

// fail redirects to the failure URL with a machine-readable error code.
func (f *Flow) fail(c internal.Context, code string) error {
	u, err := url.Parse(f.failureURL)
	if err != nil {
		u = &url.URL{Path: "/login"}
	}
	q := u.Query()
	q.Set("error", code)
	u.RawQuery = q.Encode()

	return c.Redirect(http.StatusSeeOther, u.String())
}
