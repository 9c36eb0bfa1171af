package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/bloggyhq/bloggy/internal/common"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec([]byte("secret"), time.Hour)

	token, err := codec.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "alice@example.com", claims.Email)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenCodec_Expired(t *testing.T) {
	// A 1h token observed 61 minutes after issue must be rejected. Issuing
	// with a negative validity puts the expiry in the past directly.
	codec := NewTokenCodec([]byte("secret"), -time.Minute)

	token, err := codec.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	issuer := NewTokenCodec([]byte("right"), time.Hour)
	verifier := NewTokenCodec([]byte("wrong"), time.Hour)

	token, err := issuer.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, common.ErrTokenSignatureInvalid)
}

func TestTokenCodec_VerificationTokenIsNotASessionToken(t *testing.T) {
	session := NewTokenCodec([]byte("session-secret"), time.Hour)
	verification := NewTokenCodec([]byte("email-secret"), time.Hour)

	token, err := verification.Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	_, err = session.Verify(token)
	require.ErrorIs(t, err, common.ErrTokenSignatureInvalid)
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := NewTokenCodec([]byte("secret"), time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := codec.Verify(tok)
		require.ErrorIs(t, err, common.ErrTokenMalformed, "token %q", tok)
	}
}

func TestTokenCodec_RejectsNonHMACAlg(t *testing.T) {
	codec := NewTokenCodec([]byte("secret"), time.Hour)

	// alg=none tokens must never validate
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	require.Error(t, err)
}
