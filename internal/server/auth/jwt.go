// Package auth implements the session token codec: a signed, time-bounded
// JWT carrying the user's id and role. Tokens are stateless; no server-side
// session record exists, so verification needs only the shared secret.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

// Claims are the JWT claims: the registered set plus the user's identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID string      `json:"uid"`
	Role   models.Role `json:"role"`
}

// GenerateToken signs a session token for the given user, valid for
// validityDuration from now (HS256).
func GenerateToken(userID string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
		Role:   role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ActorFromToken verifies the token signature and expiry and returns the
// actor it encodes. Malformed, expired, and badly signed tokens all map to
// common.ErrInvalidToken.
//
// Note: the actor is taken from the token as issued. Deactivating or
// deleting a user does not invalidate outstanding tokens; the staleness
// window is bounded by the token validity duration.
func ActorFromToken(tokenString string, secretKey []byte) (models.Actor, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Actor{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" || !models.ValidRole(claims.Role) {
		return models.Actor{}, common.ErrInvalidToken
	}

	return models.Actor{ID: claims.UserID, Role: claims.Role}, nil
}
