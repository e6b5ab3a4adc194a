package report

import (
	"fmt"
	"io"
	"net/netip"

	"github.com/muurk/pulsescan/internal/catalog"
	"github.com/muurk/pulsescan/internal/probe"
	"github.com/muurk/pulsescan/internal/scan"
)

// Console streams scan results to a writer as plain text. It implements
// scan.Reporter; per-host failures produce no output here (they are logged
// upstream), so the primary stream stays a clean list of discovered devices.
type Console struct {
	out  io.Writer
	lang catalog.Language
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer, lang catalog.Language) *Console {
	return &Console{out: w, lang: lang}
}

// Banner prints the scan header before any session starts.
func (c *Console) Banner(network string, targets []netip.Addr) {
	fmt.Fprintf(c.out, "Scan IP Network: %s\n", network)
	fmt.Fprintf(c.out, "Scan Begin Addr: %s\n", targets[0])
	fmt.Fprintf(c.out, "Scan End Addr:   %s\n", targets[len(targets)-1])
	fmt.Fprintln(c.out)
}

// Report implements scan.Reporter.
func (c *Console) Report(o probe.Outcome) {
	if !o.Found {
		return
	}
	for _, line := range FormatDevice(o, c.lang) {
		fmt.Fprintln(c.out, line)
	}
	fmt.Fprintln(c.out)
}

// Finish prints the end-of-scan trailer. The total is shown only when no
// MAC filter is active; a filtered scan's per-match block already confirms
// the device it was looking for.
func (c *Console) Finish(summary scan.Summary, filterActive bool) {
	fmt.Fprintln(c.out, "DONE")
	if !filterActive {
		fmt.Fprintf(c.out, "Total nGeniusPULSE devices found= %d\n", summary.TotalFound)
	}
}
