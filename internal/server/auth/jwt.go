// Package auth issues and verifies the server's signed tokens: access tokens
// for authenticated parties and short-lived login challenges.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/securechat/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token audiences. A challenge can never be used as an access token and
// vice versa.
const (
	AudienceAccess    = "access"
	AudienceChallenge = "challenge"
)

// Claims carries the canonical id of the party as the subject. Hint is the
// identifier as the party typed it; only challenges carry one.
type Claims struct {
	jwt.RegisteredClaims
	Hint string `json:"hint,omitempty"`
}

// GenerateToken signs a token for subject with the given audience.
func GenerateToken(subject, audience string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return generate(subject, "", audience, secretKey, validityDuration)
}

func generate(subject, hint, audience string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Hint: hint,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired, anything else that fails verification
// common.ErrInvalidToken.
func ParseToken(tokenString, audience string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithAudience(audience),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

func GenerateAccessToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return GenerateToken(userID, AudienceAccess, secretKey, validityDuration)
}

// GetUserIDFromToken returns the canonical id an access token was issued to.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims, err := ParseToken(tokenString, AudienceAccess, secretKey)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// GenerateChallenge returns the caller-held login state for a phone number:
// canonicalID as entered after normalization, rawPhone as typed. The client
// hands it back together with the one-time code.
func GenerateChallenge(canonicalID, rawPhone string, secretKey []byte, validityDuration time.Duration) (string, error) {
	return generate(canonicalID, rawPhone, AudienceChallenge, secretKey, validityDuration)
}

// ParseChallenge returns the canonical id and the raw phone of a challenge.
func ParseChallenge(challenge string, secretKey []byte) (string, string, error) {
	claims, err := ParseToken(challenge, AudienceChallenge, secretKey)
	if err != nil {
		return "", "", err
	}
	return claims.Subject, claims.Hint, nil
}
