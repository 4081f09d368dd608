package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A reset-handoff token cannot be used as a session token
// and vice versa.
const (
	PurposeSession = "session"
	PurposeReset   = "password_reset"
)

// Token lifetimes.
const (
	SessionTokenTTL = 30 * time.Minute
	ResetTokenTTL   = 15 * time.Minute
)

// Verification fails distinctly for expired vs malformed/invalid tokens so
// the boundary layer can report them differently.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims are the JWT claims carried by every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
}

// TokenIssuer creates and validates signed, time-bounded tokens. Tokens are
// opaque to the holder and self-expiring; there is no revocation.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates a TokenIssuer signing with the given secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue signs a token for the given subject with the given purpose and TTL.
func (t *TokenIssuer) Issue(userID, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:  userID,
		Purpose: purpose,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token, returning the subject user ID. The
// token must carry the expected purpose.
func (t *TokenIssuer) Verify(tokenString, purpose string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Purpose != purpose {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}
