package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	dErrors "flowauth/pkg/domain-errors"
)

func basicAuthenticator() Authenticator {
	return Authenticator{
		AuthenticatorID: "QmFzaWM",
		Name:            "Basic",
		IdpID:           "LOCAL",
		RequiredParams:  []string{"username", "password"},
	}
}

func TestSerializeParams(t *testing.T) {
	t.Run("basic credentials fill every required param", func(t *testing.T) {
		params, err := SerializeParams(basicAuthenticator(), BasicAuthParams{
			Username: "u",
			Password: "p",
		})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"username": "u", "password": "p"}, params)
	})

	t.Run("missing typed param is invalid input", func(t *testing.T) {
		_, err := SerializeParams(basicAuthenticator(), BasicAuthParams{Username: "u"})
		require.Error(t, err)
		require.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("totp serializes against its param name", func(t *testing.T) {
		a := Authenticator{Name: "TOTP", RequiredParams: []string{"token"}}
		params, err := SerializeParams(a, TOTPParams{Token: "000000"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"token": "000000"}, params)
	})

	t.Run("raw params may omit required entries", func(t *testing.T) {
		a := Authenticator{Name: "Github", RequiredParams: []string{"code", "state"}}
		params, err := SerializeParams(a, RawParams{"code": "xyz"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"code": "xyz"}, params)
	})

	t.Run("raw params drop values outside required set", func(t *testing.T) {
		a := Authenticator{Name: "Github", RequiredParams: []string{"code"}}
		params, err := SerializeParams(a, RawParams{"code": "xyz", "extra": "1"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"code": "xyz"}, params)
	})

	t.Run("idp params omit empty token fields", func(t *testing.T) {
		a := Authenticator{Name: "Google", RequiredParams: []string{"accessToken"}}
		params, err := SerializeParams(a, IDPParams{AccessToken: "at"})
		require.NoError(t, err)
		require.Equal(t, map[string]string{"accessToken": "at"}, params)
	})
}
