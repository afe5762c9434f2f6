package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "flowauth/pkg/domain-errors"
)

// ID-token claims are parsed without signature verification: the client
// received the token over the authenticated token endpoint and is not its
// verifier. The claims feed display and expiry bookkeeping only.

// ParseIDTokenClaims returns the claim set of a raw JWT.
func ParseIDTokenClaims(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed id token")
	}
	return claims, nil
}

// Subject returns the sub claim of a raw JWT.
func Subject(raw string) (string, error) {
	claims, err := ParseIDTokenClaims(raw)
	if err != nil {
		return "", err
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "id token missing subject")
	}
	return sub, nil
}

// Expiry returns the exp claim of a raw JWT as an absolute instant.
func Expiry(raw string) (time.Time, error) {
	claims, err := ParseIDTokenClaims(raw)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, dErrors.New(dErrors.CodeInvalidInput, "id token missing expiry")
	}
	return exp.Time, nil
}
