package scan

import (
	"context"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muurk/pulsescan/internal/logging"
	"github.com/muurk/pulsescan/internal/probe"
)

// Scanner sweeps a CIDR block for nGeniusPULSE devices, one concurrent
// session per host. Sessions are fully isolated: a timeout or protocol
// failure on one host never affects another, and the scan always runs to
// completion unless a MAC filter match short-circuits it.
type Scanner struct {
	// Network is the CIDR block to sweep
	Network string

	// Port is the device WebSocket port
	Port int

	// Timeout bounds each network operation within a session
	Timeout time.Duration

	// DisplayLevel gates how deep into the query catalog each session goes
	DisplayLevel int

	// MACFilter, when non-empty, targets a single physical device: the
	// first matching host stops further sessions from starting
	MACFilter string

	// Reporter receives outcomes as they arrive; may be nil
	Reporter Reporter
}

// NewScanner creates a scanner with default port and timeout.
func NewScanner(network string) *Scanner {
	return &Scanner{
		Network: network,
		Port:    probe.DefaultPort,
		Timeout: probe.DefaultTimeout,
	}
}

// Targets returns the host addresses this scanner will probe.
func (s *Scanner) Targets() ([]netip.Addr, error) {
	return Hosts(s.Network)
}

// Scan probes every usable host address concurrently and returns the
// aggregate summary once all sessions have terminated. Outcomes are streamed
// to the Reporter as they complete. The only error returned is
// ErrInvalidNetwork; per-host failures surface as absent results.
func (s *Scanner) Scan(ctx context.Context) (Summary, error) {
	targets, err := Hosts(s.Network)
	if err != nil {
		return Summary{}, err
	}
	prefix, _ := Network(s.Network)

	logging.LogScanStart(prefix.String(), len(targets))
	start := time.Now()

	outcomes := make(chan probe.Outcome)
	var matched atomic.Bool
	var wg sync.WaitGroup

	for _, addr := range targets {
		wg.Add(1)
		go func(addr netip.Addr) {
			defer wg.Done()

			// Once a MAC filter match is recorded, sessions that have not
			// started yet are skipped. In-flight sessions run to completion
			// and the aggregator discards their results.
			if s.MACFilter != "" && matched.Load() {
				return
			}

			sess := probe.NewSession(addr)
			sess.Port = s.Port
			sess.Timeout = s.Timeout
			sess.DisplayLevel = s.DisplayLevel
			sess.MACFilter = s.MACFilter

			o := sess.Run(ctx)
			if o.Found && o.MatchedFilter {
				matched.Store(true)
			}
			outcomes <- o
		}(addr)
	}

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	// Single consumer: serializes reporter calls and the tally, so outcome
	// arrival order cannot influence the count.
	agg := NewAggregator(s.MACFilter != "", s.Reporter)
	for o := range outcomes {
		agg.Add(o)
	}

	summary := agg.Summary()
	summary.Network = prefix.String()
	summary.Targets = len(targets)
	summary.Elapsed = time.Since(start)

	logging.LogScanComplete(summary.TotalFound, summary.Elapsed.Seconds())
	return summary, nil
}
