// Package config persists user preferences and known-device metadata for
// pulsescan in a YAML file under the platform's configuration directory.
//
// The registry stores scan defaults (network, timeout, display level,
// language) and a per-MAC record of devices previous scans have found.
// Command-line flags always override registry preferences for a single run.
package config
