// Package auth mints and validates session tokens. A token is an HS256 JWT
// carrying the user id; the currently valid token is also stored on the user
// row, so re-login invalidates all previously issued tokens.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/haidang99/oceanchat/internal/common"
)

// Claims includes the registered claims plus the user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken mints a signed session token. Every token carries a random
// jti, so two tokens minted for the same user in the same second are still
// distinct and the stored-token comparison in Verify can tell them apart.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	jti, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", common.ErrSessionExpired
	}

	return claims.UserID, nil
}
