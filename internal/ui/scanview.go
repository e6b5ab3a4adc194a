package ui

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muurk/pulsescan/internal/catalog"
	"github.com/muurk/pulsescan/internal/probe"
	"github.com/muurk/pulsescan/internal/report"
	"github.com/muurk/pulsescan/internal/scan"
)

// Messages for async scan progress
type outcomeMsg struct {
	outcome probe.Outcome
}

type scanDoneMsg struct {
	summary scan.Summary
	err     error
}

// ScanModel renders a live sweep: a progress bar over the target block with
// found devices appended as their sessions complete.
type ScanModel struct {
	network      string
	first        netip.Addr
	last         netip.Addr
	total        int
	lang         catalog.Language
	filterActive bool

	done    int
	devices []string // pre-rendered device blocks, in arrival order
	found   int

	spinner  spinner.Model
	progress progress.Model

	finished bool
	summary  scan.Summary
	err      error
	width    int
}

// NewScanModel creates the live scan view for the given target block.
func NewScanModel(network string, targets []netip.Addr, lang catalog.Language, filterActive bool) ScanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SummaryStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return ScanModel{
		network:      network,
		first:        targets[0],
		last:         targets[len(targets)-1],
		total:        len(targets),
		lang:         lang,
		filterActive: filterActive,
		spinner:      s,
		progress:     bar,
		width:        GetTerminalWidth(),
	}
}

// Init implements tea.Model
func (m ScanModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update implements tea.Model
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		barWidth := msg.Width - 20
		if barWidth < 20 {
			barWidth = 20
		}
		if barWidth > 60 {
			barWidth = 60
		}
		m.progress.Width = barWidth

	case outcomeMsg:
		m.done++
		if msg.outcome.Found {
			m.found++
			m.devices = append(m.devices, renderDevice(msg.outcome, m.lang))
		}

	case scanDoneMsg:
		m.finished = true
		m.summary = msg.summary
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m ScanModel) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("Scan IP Network: %s", m.network)))
	b.WriteString("\n")
	b.WriteString(HeaderDetailStyle.Render(fmt.Sprintf("Scan Begin Addr: %s", m.first)))
	b.WriteString("\n")
	b.WriteString(HeaderDetailStyle.Render(fmt.Sprintf("Scan End Addr:   %s", m.last)))
	b.WriteString("\n\n")

	for _, block := range m.devices {
		b.WriteString(block)
		b.WriteString("\n")
	}

	if m.finished {
		b.WriteString(SummaryStyle.Render("DONE"))
		b.WriteString("\n")
		if !m.filterActive {
			b.WriteString(SummaryStyle.Render(
				fmt.Sprintf("Total nGeniusPULSE devices found= %d", m.summary.TotalFound)))
			b.WriteString("\n")
		}
	} else {
		done := m.done
		if done > m.total {
			done = m.total
		}
		b.WriteString(StatusStyle.Render(fmt.Sprintf("%s Probing %d hosts", m.spinner.View(), m.total)))
		b.WriteString("\n")
		b.WriteString("  " + m.progress.ViewAs(float64(done)/float64(m.total)))
		b.WriteString("\n")
		b.WriteString(StatusStyle.Render(fmt.Sprintf("%d/%d probed, %d found  (q to stop)", done, m.total, m.found)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderDevice pre-renders one found device as a styled block. Blocks are
// cached as strings so View stays cheap on every spinner tick.
func renderDevice(o probe.Outcome, lang catalog.Language) string {
	lines := report.FormatDevice(o, lang)
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(DeviceTitleStyle.Render(lines[0]))
	b.WriteString("\n")
	for _, line := range lines[1:] {
		b.WriteString(DeviceFieldStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// RunScan drives a full sweep under the live display and returns the final
// summary. The scan runs in the background; outcomes are forwarded into the
// program as messages. Quitting the display cancels the remaining sessions.
func RunScan(ctx context.Context, scanner *scan.Scanner, lang catalog.Language) (scan.Summary, error) {
	targets, err := scanner.Targets()
	if err != nil {
		return scan.Summary{}, err
	}

	scanCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewScanModel(scanner.Network, targets, lang, scanner.MACFilter != "")
	p := tea.NewProgram(model)

	scanner.Reporter = scan.ReporterFunc(func(o probe.Outcome) {
		p.Send(outcomeMsg{outcome: o})
	})

	results := make(chan scanDoneMsg, 1)
	go func() {
		summary, err := scanner.Scan(scanCtx)
		msg := scanDoneMsg{summary: summary, err: err}
		results <- msg
		p.Send(msg)
	}()

	finalModel, err := p.Run()
	if err != nil {
		cancel()
		<-results
		return scan.Summary{}, err
	}

	final := finalModel.(ScanModel)
	if final.finished {
		return final.summary, final.err
	}

	// User quit before the sweep finished; cancel and wait for the
	// in-flight sessions to drain.
	cancel()
	res := <-results
	return res.summary, res.err
}
