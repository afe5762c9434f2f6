package models

import (
	dErrors "flowauth/pkg/domain-errors"
)

// AuthParams is a sealed union of per-authenticator-family credential
// payloads. Each variant exposes its values keyed by the canonical wire
// parameter names; SerializeParams projects them onto an authenticator's
// declared RequiredParams.
type AuthParams interface {
	// Values returns the wire parameter values keyed by parameter name.
	Values() map[string]string
}

// BasicAuthParams carries username/password credentials.
type BasicAuthParams struct {
	Username string
	Password string
}

func (p BasicAuthParams) Values() map[string]string {
	return map[string]string{
		"username": p.Username,
		"password": p.Password,
	}
}

// TOTPParams carries a one-time code.
type TOTPParams struct {
	Token string
}

func (p TOTPParams) Values() map[string]string {
	return map[string]string{"token": p.Token}
}

// PasskeyParams carries the serialized assertion produced by a completed
// passkey ceremony. The ceremony itself happens outside this client.
type PasskeyParams struct {
	TokenResponse string
}

func (p PasskeyParams) Values() map[string]string {
	return map[string]string{"tokenResponse": p.TokenResponse}
}

// IDPParams carries tokens obtained from a social identity provider SDK.
type IDPParams struct {
	AccessToken string
	IDToken     string
}

func (p IDPParams) Values() map[string]string {
	values := map[string]string{}
	if p.AccessToken != "" {
		values["accessToken"] = p.AccessToken
	}
	if p.IDToken != "" {
		values["idToken"] = p.IDToken
	}
	return values
}

// RawParams is an untyped parameter map, used when parameters arrive from a
// redirect callback. Unlike the typed variants, missing required parameters
// are tolerated here; the server validates completeness.
type RawParams map[string]string

func (p RawParams) Values() map[string]string {
	return p
}

// SerializeParams builds the wire parameter map for the given authenticator,
// walking its RequiredParams in declared order. Typed variants must supply
// every required parameter; RawParams may omit entries.
func SerializeParams(a Authenticator, p AuthParams) (map[string]string, error) {
	values := p.Values()
	_, partial := p.(RawParams)

	out := make(map[string]string, len(a.RequiredParams))
	for _, name := range a.RequiredParams {
		v, ok := values[name]
		if !ok || v == "" {
			if partial {
				continue
			}
			return nil, dErrors.New(dErrors.CodeInvalidInput,
				"missing required parameter "+name+" for authenticator "+a.Name)
		}
		out[name] = v
	}
	return out, nil
}
