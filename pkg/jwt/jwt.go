package jwt

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
)

// Errors.
var (
	ErrNoSecret         = errors.New("jwt: signing secret required")
	ErrSigningFailed    = errors.New("jwt: failed to sign token")
	ErrInvalidToken     = errors.New("jwt: invalid token")
	ErrExpiredToken     = errors.New("jwt: token expired")
	ErrInvalidSignature = errors.New("jwt: invalid signature")
)

// StandardClaims is the default claims type issued by the auth flow.
type StandardClaims = gojwt.RegisteredClaims

// Service issues and parses HMAC-signed tokens.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	parser *gojwt.Parser
}

// Option configures the Service.
type Option func(*Service)

// WithIssuer sets the issuer claim on issued tokens.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithTTL sets the lifetime of issued tokens.
// Defaults to 24 hours.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New creates a token service signing with HMAC-SHA256.
// The secret must be at least 32 bytes.
func New(secret string, opts ...Option) (*Service, error) {
	if len(secret) < 32 {
		return nil, ErrNoSecret
	}

	s := &Service{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
		parser: gojwt.NewParser(gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()})),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given subject with the service's issuer and TTL.
// Extra claims beyond the registered set go through IssueClaims.
func (s *Service) Issue(subject string) (string, error) {
	now := time.Now()
	return s.IssueClaims(StandardClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(s.ttl)),
	})
}

// IssueClaims signs a token carrying the provided claims as-is.
func (s *Service) IssueClaims(claims gojwt.Claims) (string, error) {
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Join(ErrSigningFailed, err)
	}
	return signed, nil
}

// Parse validates a token and hydrates claims into dest.
// dest must be a pointer to a type implementing jwt.Claims.
func (s *Service) Parse(tokenString string, dest gojwt.Claims) error {
	token, err := s.parser.ParseWithClaims(tokenString, dest, func(*gojwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gojwt.ErrTokenExpired):
			return errors.Join(ErrExpiredToken, err)
		case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
			return errors.Join(ErrInvalidSignature, err)
		default:
			return errors.Join(ErrInvalidToken, err)
		}
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
