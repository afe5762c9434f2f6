package models

// AuthenticationState is the observable session state published by the
// dispatcher. It is a sealed union; exactly one value is current at any
// time. Error is not terminal: any subsequent call re-enters Loading.
type AuthenticationState interface {
	authnState()
}

// StateInitial is the state before Initialize and after a successful logout.
type StateInitial struct{}

func (StateInitial) authnState() {}

// StateLoading is published while a public operation is in flight.
type StateLoading struct{}

func (StateLoading) authnState() {}

// StateUnauthenticated carries the current in-progress flow step.
type StateUnauthenticated struct {
	Flow FlowNotSuccess
}

func (StateUnauthenticated) authnState() {}

// StateAuthenticated is reached once tokens are exchanged and persisted.
type StateAuthenticated struct{}

func (StateAuthenticated) authnState() {}

// StateError carries the cause of a failed operation. The previous stable
// state remains retryable unless the cause is authentication_incomplete,
// which requires restarting via Initialize.
type StateError struct {
	Cause error
}

func (StateError) authnState() {}

var (
	_ AuthenticationState = StateInitial{}
	_ AuthenticationState = StateLoading{}
	_ AuthenticationState = StateUnauthenticated{}
	_ AuthenticationState = StateAuthenticated{}
	_ AuthenticationState = StateError{}
)
