package catalog

// Language selects which label set is used for display output.
// It has no effect on protocol behavior.
type Language string

const (
	// English labels (default)
	English Language = "EN"
	// Spanish labels
	Spanish Language = "ES"
)

// ParseLanguage maps a CLI language code to a Language, defaulting to English.
func ParseLanguage(code string) (Language, bool) {
	switch code {
	case "EN", "en":
		return English, true
	case "ES", "es":
		return Spanish, true
	default:
		return English, false
	}
}

// MaxDisplayLevel is the highest meaningful display level. Every catalog
// entry is requested at this level.
const MaxDisplayLevel = 9

// IdentityKey is the key of the catalog's first entry. Its response carries
// the device MAC address and is the subject of MAC-suffix filtering.
const IdentityKey = "gtme_web"

// Query describes one device attribute the protocol can request.
type Query struct {
	// Key is the callType sent on the wire
	Key string

	// MinLevel is the display level required before this query is sent
	MinLevel int

	labelEN string
	labelES string
}

// Label returns the display label for the given language
func (q Query) Label(lang Language) string {
	if lang == Spanish {
		return q.labelES
	}
	return q.labelEN
}

// queries is the fixed catalog. Order matters twice over: it is the order in
// which queries are sent, and the device's nonce chain advances one step per
// entry, so reordering would desynchronize every signature after the first.
var queries = []Query{
	{"gtme_web", 0, "MAC Address", "Dirección MAC"},
	{"bver", 0, "Build Version", "Información de la versión"},
	{"temp", 1, "CPU Temp (degC)", "CPU temperatura (degC)"},
	{"link", 0, "Link Info", "Enlace información"},
	{"up_dhm", 0, "System UpTime", "El tiempo de actividad"},
	{"batt", 2, "Voltage - Battery", "Voltaje - Batería"},
	{"poev", 2, "Voltage - PoE", "Voltaje - PoE"},
	{"gurl", 0, "Gemini Cloud URL", "Gemini Cloud URL"},
	{"mach", 0, "Machine Hardware Name", "Máquina nombre de hardware"},
	{"sw_port", 3, "Nearest Switch - Port", "Conmutador de red - Identificador de puerto"},
	{"sw_addr", 0, "Nearest Switch - IP/MAC", "Conmutador de red - Dirección (IP/MAC)"},
	{"sw_name", 0, "Nearest Switch - Name", "Conmutador de red - Nombre"},
	{"free", 4, "Memory Information...", "Información de la memoria..."},
}

// Queries returns the full catalog in protocol order.
func Queries() []Query {
	out := make([]Query, len(queries))
	copy(out, queries)
	return out
}

// ForLevel returns the prefix of the catalog that a session at the given
// display level will execute: every entry up to, but not including, the first
// whose MinLevel exceeds level. Entries after that point are never sent even
// if their own level would qualify, because the nonce chain stops advancing.
func ForLevel(level int) []Query {
	out := make([]Query, 0, len(queries))
	for _, q := range queries {
		if q.MinLevel > level {
			break
		}
		out = append(out, q)
	}
	return out
}

// Lookup returns the catalog entry for a key.
func Lookup(key string) (Query, bool) {
	for _, q := range queries {
		if q.Key == key {
			return q, true
		}
	}
	return Query{}, false
}
