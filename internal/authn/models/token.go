package models

import "time"

// TokenState is the access/refresh/id token triple plus expiry and scope
// metadata persisted between sessions. It is owned exclusively by the token
// store: mutated only by a successful code exchange or refresh grant and
// cleared on logout.
type TokenState struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	Scope        string

	// AccessTokenExpiry is the absolute expiry instant of the access token.
	AccessTokenExpiry time.Time
}

// Valid reports whether the access token can still be presented:
// non-empty and not yet expired at the given instant.
func (t *TokenState) Valid(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return now.Before(t.AccessTokenExpiry)
}

// CanRefresh reports whether a refresh grant is possible.
func (t *TokenState) CanRefresh() bool {
	return t != nil && t.RefreshToken != ""
}
