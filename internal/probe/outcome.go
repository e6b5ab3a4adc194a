package probe

import (
	"net/netip"

	"github.com/muurk/pulsescan/internal/catalog"
)

// Field pairs a catalog entry with the value the device reported for it.
type Field struct {
	Query catalog.Query
	Value string
}

// Outcome is the terminal result of one probe session. It is produced by
// Session.Run and consumed exactly once by the scan aggregator.
type Outcome struct {
	// Addr is the probed host
	Addr netip.Addr

	// Found is true when the full query chain completed (or was gated off
	// early by display level) without a failure
	Found bool

	// Fields holds the collected (query, value) pairs, in catalog order
	Fields []Field

	// MatchedFilter is true when a MAC-suffix filter was supplied and the
	// identity response contained it
	MatchedFilter bool

	// Err carries the failure reason when Found is false (always a *Error)
	Err error
}

// found builds a successful outcome.
func found(addr netip.Addr, fields []Field, matched bool) Outcome {
	return Outcome{Addr: addr, Found: true, Fields: fields, MatchedFilter: matched}
}

// notFound builds a failure outcome. Partial results are discarded.
func notFound(addr netip.Addr, err *Error) Outcome {
	return Outcome{Addr: addr, Err: err}
}
