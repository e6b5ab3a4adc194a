package probe

import (
	"errors"
	"fmt"
)

// Reason categorizes why a probe excluded a host from the result set.
type Reason int

const (
	// ReasonConnectFailed indicates the WebSocket connection could not be
	// opened within the timeout
	ReasonConnectFailed Reason = iota
	// ReasonNoNonce indicates the handshake message was missing or carried
	// no nonce field
	ReasonNoNonce
	// ReasonQueryFailed indicates a timeout or transport error during a
	// query round
	ReasonQueryFailed
	// ReasonFilterMismatch indicates the identity response did not contain
	// the requested MAC suffix
	ReasonFilterMismatch
)

// String returns a human-readable name for the reason
func (r Reason) String() string {
	switch r {
	case ReasonConnectFailed:
		return "connect failed"
	case ReasonNoNonce:
		return "no nonce"
	case ReasonQueryFailed:
		return "query failed"
	case ReasonFilterMismatch:
		return "filter mismatch"
	default:
		return fmt.Sprintf("Reason(%d)", r)
	}
}

// Error describes a per-host probe failure. Probe failures never propagate
// past the owning session; they travel inside the session's Outcome.
type Error struct {
	// Reason is the failure category
	Reason Reason

	// Addr is the probed host, for context
	Addr string

	// QueryKey is the callType in flight when the failure occurred
	// (ReasonQueryFailed only)
	QueryKey string

	// Err is the underlying transport error, if any
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Addr, e.Reason)
	if e.QueryKey != "" {
		msg += fmt.Sprintf(" (query %q)", e.QueryKey)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

func newConnectError(addr string, err error) *Error {
	return &Error{Reason: ReasonConnectFailed, Addr: addr, Err: err}
}

func newNoNonceError(addr string, err error) *Error {
	return &Error{Reason: ReasonNoNonce, Addr: addr, Err: err}
}

func newQueryError(addr, key string, err error) *Error {
	return &Error{Reason: ReasonQueryFailed, Addr: addr, QueryKey: key, Err: err}
}

func newFilterMismatchError(addr string) *Error {
	return &Error{Reason: ReasonFilterMismatch, Addr: addr}
}

// ReasonOf extracts the probe failure reason from an error chain.
// The second return is false when err is not a probe error.
func ReasonOf(err error) (Reason, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Reason, true
	}
	return 0, false
}

// IsConnectFailed reports whether err is a connect failure
func IsConnectFailed(err error) bool {
	r, ok := ReasonOf(err)
	return ok && r == ReasonConnectFailed
}

// IsNoNonce reports whether err is a missing-nonce handshake failure
func IsNoNonce(err error) bool {
	r, ok := ReasonOf(err)
	return ok && r == ReasonNoNonce
}

// IsQueryFailed reports whether err is a mid-chain query failure
func IsQueryFailed(err error) bool {
	r, ok := ReasonOf(err)
	return ok && r == ReasonQueryFailed
}

// IsFilterMismatch reports whether err is a MAC filter mismatch
func IsFilterMismatch(err error) bool {
	r, ok := ReasonOf(err)
	return ok && r == ReasonFilterMismatch
}
