// Package auth issues and validates the signed access tokens that carry user
// identity between requests. Tokens are stateless: expiry is the only
// server-side invalidation path.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/todolist/internal/common"
)

// Claims embeds the registered claims (sub = user id, jti = unique token id,
// exp = absolute expiry) and adds the username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"name"`
}

// GenerateToken mints an HS256-signed token for the given user, valid for
// validityDuration from now.
func GenerateToken(userID int64, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies signature and expiry and returns the embedded identity.
// Expired tokens yield common.ErrTokenExpired; any other failure (bad
// signature, malformed token, missing subject) yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (int64, string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, "", common.ErrTokenExpired
		}
		return 0, "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return 0, "", common.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", common.ErrInvalidToken
	}

	return userID, claims.Username, nil
}
