package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bloggyhq/bloggy/internal/common"
)

// Claims carries the identity embedded in a signed token: the user ID as
// subject plus the account email, alongside the registered issued-at and
// expiry claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// TokenCodec issues and verifies HS256-signed tokens. The server holds two
// independent codecs: one for sessions and one for email verification links.
// Because each codec owns its secret, a token minted by one never validates
// against the other.
type TokenCodec struct {
	secret   []byte
	validity time.Duration
}

// NewTokenCodec constructs a codec with the given signing secret and token
// lifetime.
func NewTokenCodec(secret []byte, validity time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, validity: validity}
}

// Issue mints a signed token for the given identity, valid from now for the
// codec's configured lifetime.
func (c *TokenCodec) Issue(userID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
		UserID: userID,
		Email:  email,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. It returns one of the sentinel
// errors from the common package so callers can distinguish an expired token
// from a forged or garbled one:
//
//	common.ErrTokenExpired          - valid signature, past expiry
//	common.ErrTokenSignatureInvalid - MAC mismatch (wrong secret or tampering)
//	common.ErrTokenMalformed        - anything that does not decode
func (c *TokenCodec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrTokenSignatureInvalid
		default:
			return nil, common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}
