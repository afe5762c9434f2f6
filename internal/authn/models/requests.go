package models

// Wire request shapes for the authenticate endpoint.

// AuthnRequest is the JSON body of an authenticate call. The detail variant
// omits Params to ask the server for the authenticator's full metadata.
type AuthnRequest struct {
	FlowID                string                `json:"flowId"`
	SelectedAuthenticator SelectedAuthenticator `json:"selectedAuthenticator"`
}

// SelectedAuthenticator names the authenticator being satisfied and carries
// its serialized credential parameters.
type SelectedAuthenticator struct {
	AuthenticatorID string            `json:"authenticatorId"`
	Params          map[string]string `json:"params,omitempty"`
}
