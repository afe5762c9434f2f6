package models

// Wire response shapes for the authorize and authenticate endpoints.
// These are transport DTOs; Classify turns them into AuthenticationFlow
// domain values.

// FlowResponse is the raw JSON body returned by both the authorize and the
// authenticate endpoints. Which fields are populated depends on FlowStatus.
type FlowResponse struct {
	FlowID     string        `json:"flowId"`
	FlowStatus FlowStatus    `json:"flowStatus"`
	FlowType   string        `json:"flowType,omitempty"`
	NextStep   *StepResponse `json:"nextStep,omitempty"`
	AuthData   *AuthData     `json:"authData,omitempty"`
}

// StepResponse is the wire shape of one flow step.
type StepResponse struct {
	StepType       string          `json:"stepType"`
	Authenticators []Authenticator `json:"authenticators"`
}

// TokenResponse is the wire shape returned by the token endpoint for both
// the authorization_code and refresh_token grants.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}
