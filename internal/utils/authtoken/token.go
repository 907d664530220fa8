// Package authtoken issues and verifies the HS256 bearer tokens accepted by the API.
package authtoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSubject is returned for a validly signed token that names no user.
var ErrMissingSubject = errors.New("token has no subject")

// Issue signs a token for userID valid from now until now+ttl.
func Issue(userID, secret, issuer string, ttl time.Duration, now time.Time) (string, error) {
	if userID == "" {
		return "", ErrMissingSubject
	}
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse verifies the signature and time claims and returns the user ID.
// Errors wrap the jwt sentinels, so jwt.ErrTokenExpired can be matched with errors.Is.
func Parse(tokenString, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
