package config

import "time"

// Registry represents the entire user configuration file.
// It stores scan preferences and user-defined metadata for known devices.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device MAC address
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single nPoint device.
// This is keyed by the device's MAC address in the Registry.
type Device struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	LastIP   string    `yaml:"last_ip,omitempty"`   // Last address the device answered from
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last time a scan found the device
}

// Preferences represents default scan parameters. Command-line flags
// override these per run.
type Preferences struct {
	Network      string  `yaml:"network"`       // Default CIDR block to sweep
	TimeoutSecs  float64 `yaml:"timeout_secs"`  // Per-operation timeout in seconds
	DisplayLevel int     `yaml:"display_level"` // How deep into the query catalog to go
	Language     string  `yaml:"language"`      // Label language: EN or ES
}

// Default preference values. The default network is the Fluke Colorado lab
// block the original tooling was pointed at.
const (
	DefaultNetwork      = "129.196.196.0/23"
	DefaultTimeoutSecs  = 0.10
	DefaultDisplayLevel = 0
	DefaultLanguage     = "EN"
)

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			Network:      DefaultNetwork,
			TimeoutSecs:  DefaultTimeoutSecs,
			DisplayLevel: DefaultDisplayLevel,
			Language:     DefaultLanguage,
		},
	}
}

// RememberDevice records that a scan found the device with the given MAC at
// the given address. Existing nicknames are preserved.
func (r *Registry) RememberDevice(mac, ip string) {
	if mac == "" {
		return
	}
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}
	dev, ok := r.Devices[mac]
	if !ok {
		dev = &Device{}
		r.Devices[mac] = dev
	}
	dev.LastIP = ip
	dev.LastSeen = time.Now()
}
