// Package ui implements the live terminal display for network sweeps.
//
// The scan view is a Bubble Tea program fed by the scanner's reporter
// stream: each completed session arrives as a message, found devices are
// appended to the display as styled blocks, and a progress bar tracks how
// much of the target block has been probed. When stdout is not a terminal
// callers should use the plain console reporter instead; IsTerminal makes
// that call.
package ui
