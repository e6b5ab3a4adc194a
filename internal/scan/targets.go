package scan

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
)

// ErrInvalidNetwork is returned when the scan network cannot be expanded
// into usable host addresses. It is the only error that aborts a whole run.
var ErrInvalidNetwork = errors.New("invalid network")

// Hosts expands an IPv4 CIDR block into its usable host addresses: every
// address strictly between the network and broadcast addresses, in ascending
// order. Input with host bits set is accepted and masked first, so
// "10.0.0.5/24" scans 10.0.0.0/24.
func Hosts(cidr string) ([]netip.Addr, error) {
	prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidNetwork, cidr, err)
	}
	if !prefix.Addr().Is4() {
		return nil, fmt.Errorf("%w: %q: IPv4 network required", ErrInvalidNetwork, cidr)
	}

	prefix = prefix.Masked()

	var hosts []netip.Addr
	// The loop condition looks one address ahead: an address is a usable
	// host only if something follows it inside the prefix, which excludes
	// the broadcast address. Starting at Next() excludes the network address.
	for addr := prefix.Addr().Next(); prefix.Contains(addr.Next()); addr = addr.Next() {
		hosts = append(hosts, addr)
	}

	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w: %q: no usable host addresses", ErrInvalidNetwork, cidr)
	}
	return hosts, nil
}

// Network normalizes a CIDR string to its masked form for display.
func Network(cidr string) (netip.Prefix, error) {
	prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: %q: %v", ErrInvalidNetwork, cidr, err)
	}
	return prefix.Masked(), nil
}
