package models

// This file contains pure domain models for the step-based authentication
// flow: entities that should not depend on transport or HTTP-specific
// concerns.

// FlowStatus is the server-declared classification of a flow response.
// Every response carries exactly one of these three values; anything else is
// a protocol violation.
type FlowStatus string

const (
	FlowStatusIncomplete     FlowStatus = "INCOMPLETE"
	FlowStatusFailIncomplete FlowStatus = "FAIL_INCOMPLETE"
	FlowStatusSuccess        FlowStatus = "SUCCESS"
)

func (s FlowStatus) IsValid() bool {
	return s == FlowStatusIncomplete || s == FlowStatusFailIncomplete || s == FlowStatusSuccess
}

func (s FlowStatus) String() string {
	return string(s)
}

// AuthenticationFlow is the outcome of one protocol round. It is a sealed
// union: the only implementations are FlowNotSuccess and FlowSuccess.
// A FAIL_INCOMPLETE response never becomes a flow value; it surfaces as an
// authentication_incomplete error instead.
type AuthenticationFlow interface {
	flowOutcome()
}

// FlowNotSuccess carries the next step of an in-progress flow.
type FlowNotSuccess struct {
	FlowID   string
	FlowType string
	NextStep FlowStep
}

func (FlowNotSuccess) flowOutcome() {}

// FlowSuccess carries the terminal authorization data of a completed flow.
type FlowSuccess struct {
	AuthData AuthData
}

func (FlowSuccess) flowOutcome() {}

// FlowStep is one round of the flow: the set of candidate authenticators the
// user may satisfy next.
type FlowStep struct {
	StepType       string
	Authenticators []Authenticator
}

// AuthData holds the authorization code issued on flow success.
type AuthData struct {
	Code         string `json:"code"`
	SessionState string `json:"session_state,omitempty"`
}

// Verify the union is sealed as intended.
var (
	_ AuthenticationFlow = FlowNotSuccess{}
	_ AuthenticationFlow = FlowSuccess{}
)
