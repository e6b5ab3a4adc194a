package report

import (
	"fmt"
	"strings"

	"github.com/muurk/pulsescan/internal/catalog"
	"github.com/muurk/pulsescan/internal/probe"
)

// voltagePrefixLen is the length of the status prefix nPoint firmware
// prepends to battery and PoE voltage readings.
const voltagePrefixLen = 5

// FormatField renders one (query, value) pair as display lines in the given
// language. Most fields render as a single "Label= value" line; memory info
// renders the label on its own line followed by one line per entry.
func FormatField(f probe.Field, lang catalog.Language) []string {
	label := f.Query.Label(lang)

	switch f.Query.Key {
	case "free":
		lines := []string{label}
		return append(lines, memoryLines(f.Value)...)
	case "batt", "poev":
		value := f.Value
		if len(value) > voltagePrefixLen {
			value = value[voltagePrefixLen:]
		}
		return []string{fmt.Sprintf("%s= %s", label, value)}
	default:
		return []string{fmt.Sprintf("%s= %s", label, flatten(f.Value))}
	}
}

// FormatDevice renders a full per-host result block: the address line
// followed by every collected field.
func FormatDevice(o probe.Outcome, lang catalog.Language) []string {
	identity, _ := catalog.Lookup(catalog.IdentityKey)
	lines := []string{fmt.Sprintf("%s= %s", identity.Label(lang), o.Addr)}
	for _, f := range o.Fields {
		lines = append(lines, FormatField(f, lang)...)
	}
	return lines
}

// memoryLines reformats the free-memory blob into one "name= valuek" line
// per entry. The firmware reports entries as "Name: 12345kB" runs.
func memoryLines(value string) []string {
	s := flatten(value)
	s = strings.ReplaceAll(s, ":", "=")
	s = strings.ReplaceAll(s, "kB ", "kB\n")
	s = strings.ReplaceAll(s, "kB", "k")
	return strings.Split(s, "\n")
}

// flatten collapses embedded newlines so multi-line payloads stay on one
// display line.
func flatten(value string) string {
	return strings.ReplaceAll(value, "\n", " ")
}
