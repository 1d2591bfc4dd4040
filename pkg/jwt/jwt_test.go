package jwt_test

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/pkg/jwt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()

		_, err := jwt.New("too-short")
		require.ErrorIs(t, err, jwt.ErrNoSecret)
	})

	t.Run("accepts 32 byte secret", func(t *testing.T) {
		t.Parallel()

		svc, err := jwt.New(testSecret)
		require.NoError(t, err)
		require.NotNil(t, svc)
	})
}

func TestIssueAndParse(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New(testSecret, jwt.WithIssuer("loom-test"), jwt.WithTTL(time.Hour))
	require.NoError(t, err)

	token, err := svc.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	var claims jwt.StandardClaims
	require.NoError(t, svc.Parse(token, &claims))
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "loom-test", claims.Issuer)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	svc, err := jwt.New(testSecret)
	require.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		var claims jwt.StandardClaims
		require.ErrorIs(t, svc.Parse("not-a-token", &claims), jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		expired, err := svc.IssueClaims(jwt.StandardClaims{
			Subject:   "user-123",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
		})
		require.NoError(t, err)

		var claims jwt.StandardClaims
		require.ErrorIs(t, svc.Parse(expired, &claims), jwt.ErrExpiredToken)
	})

	t.Run("wrong signature", func(t *testing.T) {
		t.Parallel()

		other, err := jwt.New(strings.Repeat("x", 32))
		require.NoError(t, err)

		token, err := other.Issue("user-123")
		require.NoError(t, err)

		var claims jwt.StandardClaims
		require.ErrorIs(t, svc.Parse(token, &claims), jwt.ErrInvalidSignature)
	})
}
