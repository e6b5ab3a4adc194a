// Package report renders scan results for humans: per-field labels in the
// selected language, firmware-specific value cleanup, and the plain-text
// console stream used when no TUI is attached.
package report
