package domainerrors

import "errors"

// Code represents a domain error category independent of transport layer.
// These codes describe what went wrong in authentication-flow terms, not HTTP terms.
type Code string

const (
	CodeInternal     Code = "internal_error"
	CodeInvalidInput Code = "invalid_input"
	CodeNotFound     Code = "not_found"
	CodeTimeout      Code = "timeout"

	// Flow protocol error codes
	CodeNetwork                  Code = "network_error"             // Transport I/O failure, retryable by the caller
	CodeProtocol                 Code = "protocol_error"            // Non-200 status or malformed/unexpected response shape
	CodeAuthenticationIncomplete Code = "authentication_incomplete" // Server declared the flow terminally failed
	CodeAuthenticatorNotFound    Code = "authenticator_not_found"   // Selector matched no candidate in the current step
	CodeAmbiguousAuthenticator   Code = "ambiguous_authenticator"   // Selector or server response matched more than one authenticator
	CodeRedirectConfiguration    Code = "redirect_configuration"    // Redirect authenticator misconfigured or redirect already pending
	CodeNoAuthenticatorSelected  Code = "no_authenticator_selected" // Redirect callback arrived without a pending redirect wait
	CodeTokenExchange            Code = "token_exchange"            // Code exchange or refresh grant failed after protocol success
	CodeLogout                   Code = "logout_failed"             // End-session call rejected; tokens left intact
)

// Error wraps domain or infrastructure failures with a stable code.
// It is transport-agnostic and can be used across service, store, and other layers.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

// Unwrap implements error unwrapping for error chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is enables errors.Is() to match errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new domain error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap creates a new domain error wrapping an existing error.
// If the wrapped error is already a domain error, the original code is preserved.
func Wrap(err error, code Code, msg string) error {
	var existing *Error
	if errors.As(err, &existing) {
		// Preserve the original domain code, update message
		return &Error{Code: existing.Code, Message: msg, Err: err}
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode checks if an error is a domain error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or CodeInternal when err is not a
// domain error. Useful for metrics labels and log attributes.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
