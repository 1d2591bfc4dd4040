package middlewares

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/loom/internal"
	"github.com/dmitrymomot/loom/pkg/jwt"
)

// DefaultAuthCookie is the cookie checked for a token when no custom
// extractor is configured. It matches the cookie the auth flow sets.
const DefaultAuthCookie = "auth_token"

// JWTConfig configures the JWT middleware.
type JWTConfig struct {
	Extractor    internal.Extractor
	LoginPath    string
	Optional     bool
	extractorSet bool
}

// JWTOption configures JWTConfig.
type JWTOption func(*JWTConfig)

// WithJWTExtractor sets a custom token extractor chain.
func WithJWTExtractor(ext internal.Extractor) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// WithOptionalJWT lets requests without a valid token through
// unauthenticated instead of rejecting them. Claims are still set when
// a valid token is present, so handlers can branch on
// c.IsAuthenticated.
func WithOptionalJWT() JWTOption {
	return func(cfg *JWTConfig) {
		cfg.Optional = true
	}
}

// WithLoginRedirect redirects unauthenticated requests to the given
// path instead of returning 401. Intended for page scopes; API scopes
// should keep the default.
func WithLoginRedirect(path string) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.LoginPath = path
	}
}

// JWT returns middleware that extracts a token from the request,
// verifies it, and stores the claims in the request context where
// c.Claims, c.UserID, and c.IsAuthenticated read them.
//
// By default tokens are accepted from a Bearer authorization header or
// the auth cookie.
func JWT(svc *jwt.Service, opts ...JWTOption) internal.Middleware {
	cfg := &JWTConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			internal.FromBearerToken(),
			internal.FromCookie(DefaultAuthCookie),
		)
	}

	reject := func(c internal.Context, next internal.HandlerFunc, message string) error {
		if cfg.Optional {
			return next(c)
		}
		if cfg.LoginPath != "" {
			return c.Redirect(http.StatusSeeOther, cfg.LoginPath)
		}
		return internal.ErrUnauthorized(message)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := cfg.Extractor.Extract(c)
			if !ok {
				return reject(c, next, "missing authentication token")
			}

			claims := &jwt.StandardClaims{}
			if err := svc.Parse(token, claims); err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					return reject(c, next, "token expired")
				}
				return reject(c, next, "invalid token")
			}

			c.Set(internal.JWTClaimsKey{}, claims)

			return next(c)
		}
	}
}

// RequireAuth returns middleware that rejects requests without verified
// claims in context. It must run after JWT in the chain; use it on
// scopes where JWT is applied optionally further up.
func RequireAuth(opts ...JWTOption) internal.Middleware {
	cfg := &JWTConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if !c.IsAuthenticated() {
				if cfg.LoginPath != "" {
					return c.Redirect(http.StatusSeeOther, cfg.LoginPath)
				}
				return internal.ErrUnauthorized("authentication required")
			}
			return next(c)
		}
	}
}
