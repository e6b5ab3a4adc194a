package scan_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/muurk/pulsescan/internal/probe"
	"github.com/muurk/pulsescan/internal/probe/probetest"
	"github.com/muurk/pulsescan/internal/scan"
)

// collector is a Reporter that records every outcome it receives.
type collector struct {
	mu       sync.Mutex
	outcomes []probe.Outcome
}

func (c *collector) Report(o probe.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, o)
}

func (c *collector) all() []probe.Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]probe.Outcome, len(c.outcomes))
	copy(out, c.outcomes)
	return out
}

func TestScan_InvalidNetwork(t *testing.T) {
	s := scan.NewScanner("not-a-network")
	_, err := s.Scan(context.Background())
	if err == nil {
		t.Fatal("Scan succeeded, want error")
	}
	if !errors.Is(err, scan.ErrInvalidNetwork) {
		t.Errorf("error %v does not wrap ErrInvalidNetwork", err)
	}
}

func TestScan_OneDeviceOnLoopbackBlock(t *testing.T) {
	dev := &probetest.Device{Data: map[string]string{
		"gtme_web": "AA:BB:00:C0:17:33:00:30",
		"bver":     "3.0.0",
	}}
	dev.Start()
	defer dev.Close()

	// 127.0.0.0/30 probes 127.0.0.1 (the device) and 127.0.0.2 (nothing
	// listening, refused immediately on loopback).
	rep := &collector{}
	s := scan.NewScanner("127.0.0.0/30")
	s.Port = dev.Port()
	s.Timeout = 2 * time.Second
	s.Reporter = rep

	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}

	if summary.TotalFound != 1 {
		t.Errorf("TotalFound = %d, want 1", summary.TotalFound)
	}
	if summary.Targets != 2 {
		t.Errorf("Targets = %d, want 2", summary.Targets)
	}
	if summary.Network != "127.0.0.0/30" {
		t.Errorf("Network = %q, want 127.0.0.0/30", summary.Network)
	}

	outcomes := rep.all()
	if len(outcomes) != 2 {
		t.Fatalf("reporter saw %d outcomes, want 2", len(outcomes))
	}

	var foundAddr, failedAddr string
	for _, o := range outcomes {
		if o.Found {
			foundAddr = o.Addr.String()
		} else {
			failedAddr = o.Addr.String()
			if !probe.IsConnectFailed(o.Err) {
				t.Errorf("failure reason for %s = %v, want connect failed", o.Addr, o.Err)
			}
		}
	}
	if foundAddr != "127.0.0.1" {
		t.Errorf("found device at %q, want 127.0.0.1", foundAddr)
	}
	if failedAddr != "127.0.0.2" {
		t.Errorf("failed host = %q, want 127.0.0.2", failedAddr)
	}
}

func TestScan_FailedHostDoesNotAffectOthers(t *testing.T) {
	// The device refuses nothing, but its neighbor never answers. The
	// neighbor's failure must not reduce the device's result.
	dev := &probetest.Device{OmitNonce: false}
	dev.Start()
	defer dev.Close()

	s := scan.NewScanner("127.0.0.0/29")
	s.Port = dev.Port()
	s.Timeout = 2 * time.Second

	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if summary.TotalFound != 1 {
		t.Errorf("TotalFound = %d, want 1", summary.TotalFound)
	}
	if summary.Targets != 6 {
		t.Errorf("Targets = %d, want 6", summary.Targets)
	}
}

func TestScan_MACFilterMatchCounts(t *testing.T) {
	dev := &probetest.Device{Data: map[string]string{
		"gtme_web": "AA:BB:00:C0:17:33:00:30",
	}}
	dev.Start()
	defer dev.Close()

	rep := &collector{}
	s := scan.NewScanner("127.0.0.0/30")
	s.Port = dev.Port()
	s.Timeout = 2 * time.Second
	s.MACFilter = "330030"
	s.Reporter = rep

	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if summary.TotalFound != 1 {
		t.Errorf("TotalFound = %d, want 1", summary.TotalFound)
	}

	for _, o := range rep.all() {
		if o.Found && !o.MatchedFilter {
			t.Error("found outcome without MatchedFilter under an active filter")
		}
	}
}

func TestScan_MACFilterMismatchExcludesHost(t *testing.T) {
	dev := &probetest.Device{Data: map[string]string{
		"gtme_web": "AA:BB:00:C0:17:33:00:30",
	}}
	dev.Start()
	defer dev.Close()

	s := scan.NewScanner("127.0.0.0/30")
	s.Port = dev.Port()
	s.Timeout = 2 * time.Second
	s.MACFilter = "deadbeef"

	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if summary.TotalFound != 0 {
		t.Errorf("TotalFound = %d, want 0", summary.TotalFound)
	}

	// Only the identity query may have been sent before the mismatch.
	if got := dev.Received(); len(got) > 1 {
		t.Errorf("device received %v, want at most the identity query", got)
	}
}

func TestScan_NoNonceHostExcluded(t *testing.T) {
	dev := &probetest.Device{OmitNonce: true}
	dev.Start()
	defer dev.Close()

	rep := &collector{}
	s := scan.NewScanner("127.0.0.0/30")
	s.Port = dev.Port()
	s.Timeout = 2 * time.Second
	s.Reporter = rep

	summary, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan error: %v", err)
	}
	if summary.TotalFound != 0 {
		t.Errorf("TotalFound = %d, want 0", summary.TotalFound)
	}
	if got := dev.Received(); len(got) != 0 {
		t.Errorf("nonce-less host received queries: %v", got)
	}

	for _, o := range rep.all() {
		if o.Addr.String() == "127.0.0.1" && !probe.IsNoNonce(o.Err) {
			t.Errorf("reason for 127.0.0.1 = %v, want no nonce", o.Err)
		}
	}
}
