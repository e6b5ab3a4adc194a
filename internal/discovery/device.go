package discovery

import (
	"fmt"
	"time"
)

// Device represents an nPoint device announced over mDNS
type Device struct {
	// Serial is the device serial number (e.g., "17330030")
	Serial string

	// Hostname is the mDNS hostname (e.g., "nPoint17330030.local")
	Hostname string

	// IP is the IPv4 address (e.g., "192.168.1.40")
	IP string

	// Port is the WebSocket service port (typically 8000)
	Port int

	// Metadata contains additional mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	return fmt.Sprintf("nPoint %s (%s) at %s:%d", d.Serial, d.Hostname, d.IP, d.Port)
}

// WSURL returns the WebSocket endpoint for the device
func (d *Device) WSURL() string {
	return fmt.Sprintf("ws://%s:%d", d.IP, d.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (d *Device) GetMetadata(key string) string {
	if d.Metadata == nil {
		return ""
	}
	return d.Metadata[key]
}
