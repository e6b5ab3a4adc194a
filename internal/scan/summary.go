package scan

import (
	"time"

	"go.uber.org/zap"

	"github.com/muurk/pulsescan/internal/logging"
	"github.com/muurk/pulsescan/internal/probe"
)

// Summary is the aggregate result of one scan pass.
type Summary struct {
	// Network is the masked CIDR that was scanned
	Network string

	// Targets is the number of host addresses probed
	Targets int

	// TotalFound counts hosts that completed the protocol and, when a MAC
	// filter is active, matched it
	TotalFound int

	// Devices holds the counted outcomes in arrival order
	Devices []probe.Outcome

	// Elapsed is the wall-clock duration of the scan
	Elapsed time.Duration
}

// Reporter receives outcomes as sessions complete. Calls are serialized by
// the aggregator; implementations need no locking of their own.
type Reporter interface {
	Report(o probe.Outcome)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(o probe.Outcome)

// Report implements Reporter
func (f ReporterFunc) Report(o probe.Outcome) { f(o) }

// Aggregator turns the unordered stream of session outcomes into the live
// display stream and the final tally. It is driven from a single goroutine;
// Add must not be called concurrently.
type Aggregator struct {
	filterActive bool
	reporter     Reporter
	counted      bool
	summary      Summary
}

// NewAggregator creates an aggregator. reporter may be nil when no live
// output is wanted.
func NewAggregator(filterActive bool, reporter Reporter) *Aggregator {
	return &Aggregator{filterActive: filterActive, reporter: reporter}
}

// Add consumes one outcome. Failed outcomes are passed through to the
// reporter (which typically ignores them) without affecting the tally. When
// a MAC filter is active only the first matching host counts; later matches
// from sessions that were already in flight are discarded.
func (a *Aggregator) Add(o probe.Outcome) {
	if !o.Found {
		a.report(o)
		return
	}

	if !a.filterActive {
		a.summary.TotalFound++
		a.summary.Devices = append(a.summary.Devices, o)
		a.report(o)
		return
	}

	if o.MatchedFilter && !a.counted {
		a.counted = true
		a.summary.TotalFound++
		a.summary.Devices = append(a.summary.Devices, o)
		a.report(o)
		return
	}

	logging.Debug("Discarding late result after filter match",
		zap.String("addr", o.Addr.String()),
	)
}

// Summary returns the tally accumulated so far.
func (a *Aggregator) Summary() Summary {
	return a.summary
}

func (a *Aggregator) report(o probe.Outcome) {
	if a.reporter != nil {
		a.reporter.Report(o)
	}
}
