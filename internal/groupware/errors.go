package groupware

import "fmt"

// AuthError indicates that the credential exchange with the backend
// failed. It aborts the triggering call; the gateway does not retry
// beyond the single 401-triggered reauthentication.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("groupware authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RequestError indicates a non-auth backend failure: an unexpected HTTP
// status, a network error, or a timeout. StatusCode is zero when no HTTP
// response was received.
type RequestError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("groupware %s failed with status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("groupware %s failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
