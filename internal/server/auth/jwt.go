// Package auth implements the two credential primitives of the server:
// stateless HS256 bearer tokens and bcrypt password hashing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/learnable-edu/learnable/internal/common"
)

// Claims extends the registered JWT claims with the id of the account the
// token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	AccountID string
}

// GenerateToken mints a signed token whose subject is accountID and whose
// expiry is now + validityDuration. Tokens are self-contained; verification
// never needs server-side state beyond the secret.
func GenerateToken(accountID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AccountID: accountID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetAccountIDFromToken verifies tokenString and returns the embedded account
// id. A bad signature, an unparseable payload, and an expired token all
// produce the same common.ErrInvalidToken: callers must not be able to tell
// which check failed.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}

	if claims.AccountID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.AccountID, nil
}
