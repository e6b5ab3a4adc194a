// Package scan coordinates a concurrent sweep of an IPv4 network for
// nGeniusPULSE devices.
//
// Hosts expands a CIDR block into usable host addresses. Scanner launches
// one probe session per address, all concurrently, and an Aggregator
// consumes the unordered outcome stream from a single goroutine, forwarding
// each outcome to a Reporter and keeping the final tally. The only shared
// state between sessions is an atomic flag used to short-circuit the sweep
// when a MAC filter finds its device.
package scan
