// Package auth issues and verifies the signed session tokens that gate every
// storage operation, and hashes account passwords.
package auth

import (
	"errors"
	"time"

	"github.com/avoronova/filecove/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims embeds the registered claims plus the identity the token asserts.
// A token is self-contained: verifying it needs no server-side state.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string
	Username string
	Email    string
}

// Identity is the verified subject extracted from a valid token.
type Identity struct {
	UserID   string
	Username string
	Email    string
}

// GenerateToken mints an HS256 token for the given identity, valid for
// validityDuration from now. Once issued, a token stays valid until expiry;
// there is no revocation.
func GenerateToken(id Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID:   id.UserID,
		Username: id.Username,
		Email:    id.Email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetIdentityFromToken decodes the token, checks signature and expiry, and
// returns the embedded identity. Expired tokens yield common.ErrTokenExpired;
// any other defect yields common.ErrInvalidToken.
func GetIdentityFromToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username, Email: claims.Email}, nil
}
