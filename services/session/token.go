package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// subjectClaims are checked in order for the user id.
var subjectClaims = []string{"id", "userId", "_id", "sub"}

// ErrNoSubject is returned when a token carries no recognisable user id.
var ErrNoSubject = errors.New("token does not contain a user id")

// decodeClaims reads the payload without verifying the signature. The backend
// owns the signing key; the gateway only ever trusts its own round trip.
func decodeClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

// SubjectFromToken extracts the user id from a JWT payload.
func SubjectFromToken(token string) (string, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		return "", err
	}
	if id := claimString(claims, subjectClaims); id != "" {
		return id, nil
	}
	if user, ok := claims["user"].(map[string]any); ok {
		if id := claimString(user, subjectClaims); id != "" {
			return id, nil
		}
	}
	return "", ErrNoSubject
}

// RemainingLifetime returns how long the token stays valid, or fallback when it
// has no readable expiry.
func RemainingLifetime(token string, fallback time.Duration) time.Duration {
	claims, err := decodeClaims(token)
	if err != nil {
		return fallback
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return fallback
	}
	left := time.Until(time.Unix(int64(exp), 0))
	if left <= 0 {
		return time.Second
	}
	return left
}

func claimString(claims map[string]any, keys []string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
