package models

// PromptType describes how an authenticator collects its input.
type PromptType string

const (
	// PromptUser asks the user to type credentials (username/password, TOTP).
	PromptUser PromptType = "USER_PROMPT"
	// PromptInternal is satisfied by the device itself (passkey ceremony).
	PromptInternal PromptType = "INTERNAL_PROMPT"
	// PromptRedirection sends the user to an external party and resumes on a
	// redirect callback (social identity providers).
	PromptRedirection PromptType = "REDIRECTION_PROMPT"
)

// Authenticator is a named, typed credential-collection method offered in a
// flow step. AuthenticatorID is the unique key within a step; Name groups
// semantically equivalent authenticators and may repeat across entries.
type Authenticator struct {
	AuthenticatorID string        `json:"authenticatorId"`
	Name            string        `json:"authenticator"`
	IdpID           string        `json:"idp"`
	Metadata        *AuthMetadata `json:"metadata,omitempty"`
	RequiredParams  []string      `json:"requiredParams"`
}

// AuthMetadata is the authenticator-specific detail block returned by the
// authenticator-detail request. Step stubs may carry a nil Metadata until
// the catalog resolver fills it in.
type AuthMetadata struct {
	I18nKey        string            `json:"i18nKey,omitempty"`
	PromptType     PromptType        `json:"promptType,omitempty"`
	Params         []ParamDescriptor `json:"params,omitempty"`
	AdditionalData *AdditionalData   `json:"additionalData,omitempty"`
}

// ParamDescriptor describes one input parameter of an authenticator, in the
// order the server wants it rendered.
type ParamDescriptor struct {
	Param        string `json:"param"`
	Type         string `json:"type"`
	Order        int    `json:"order"`
	I18nKey      string `json:"i18nKey,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
	Confidential bool   `json:"confidential,omitempty"`
}

// AdditionalData carries authenticator-family specific values: the challenge
// for passkeys, the external redirect URL for redirect-based authenticators,
// and OAuth bookkeeping for social providers.
type AdditionalData struct {
	Nonce         string `json:"nonce,omitempty"`
	ClientID      string `json:"clientId,omitempty"`
	Scope         string `json:"scope,omitempty"`
	State         string `json:"state,omitempty"`
	ChallengeData string `json:"challengeData,omitempty"`
	RedirectURL   string `json:"redirectUrl,omitempty"`
}

// IsRedirect reports whether this authenticator completes via an external
// redirect callback.
func (a Authenticator) IsRedirect() bool {
	return a.Metadata != nil && a.Metadata.PromptType == PromptRedirection
}

// RedirectURL returns the external redirect URL, if declared.
func (a Authenticator) RedirectURL() string {
	if a.Metadata == nil || a.Metadata.AdditionalData == nil {
		return ""
	}
	return a.Metadata.AdditionalData.RedirectURL
}
