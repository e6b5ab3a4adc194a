package scan

import (
	"errors"
	"net/netip"
	"testing"
)

func TestHosts_Slash30(t *testing.T) {
	hosts, err := Hosts("10.0.0.0/30")
	if err != nil {
		t.Fatalf("Hosts() error: %v", err)
	}

	want := []string{"10.0.0.1", "10.0.0.2"}
	if len(hosts) != len(want) {
		t.Fatalf("got %d hosts, want %d", len(hosts), len(want))
	}
	for i, w := range want {
		if hosts[i].String() != w {
			t.Errorf("hosts[%d] = %s, want %s", i, hosts[i], w)
		}
	}
}

func TestHosts_Slash24(t *testing.T) {
	hosts, err := Hosts("192.168.1.0/24")
	if err != nil {
		t.Fatalf("Hosts() error: %v", err)
	}

	// 256 addresses minus network and broadcast
	if len(hosts) != 254 {
		t.Fatalf("got %d hosts, want 254", len(hosts))
	}
	if hosts[0].String() != "192.168.1.1" {
		t.Errorf("first host = %s, want 192.168.1.1", hosts[0])
	}
	if hosts[253].String() != "192.168.1.254" {
		t.Errorf("last host = %s, want 192.168.1.254", hosts[253])
	}
}

func TestHosts_AscendingOrder(t *testing.T) {
	hosts, err := Hosts("172.16.0.0/26")
	if err != nil {
		t.Fatalf("Hosts() error: %v", err)
	}
	if len(hosts) != 62 {
		t.Fatalf("got %d hosts, want 62", len(hosts))
	}
	for i := 1; i < len(hosts); i++ {
		if !hosts[i-1].Less(hosts[i]) {
			t.Fatalf("hosts not ascending at index %d: %s >= %s", i, hosts[i-1], hosts[i])
		}
	}
}

func TestHosts_HostBitsSet(t *testing.T) {
	// Non-canonical input is masked, matching a lenient CIDR parse.
	hosts, err := Hosts("10.0.0.5/30")
	if err != nil {
		t.Fatalf("Hosts() error: %v", err)
	}
	want := []string{"10.0.0.5", "10.0.0.6"}
	for i, w := range want {
		if hosts[i].String() != w {
			t.Errorf("hosts[%d] = %s, want %s", i, hosts[i], w)
		}
	}
}

func TestHosts_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cidr string
	}{
		{"garbage", "not-a-network"},
		{"missing prefix length", "10.0.0.0"},
		{"prefix too large", "10.0.0.0/33"},
		{"ipv6", "2001:db8::/64"},
		{"slash 31 has no usable hosts", "10.0.0.0/31"},
		{"slash 32 has no usable hosts", "10.0.0.1/32"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Hosts(tt.cidr)
			if err == nil {
				t.Fatalf("Hosts(%q) succeeded, want error", tt.cidr)
			}
			if !errors.Is(err, ErrInvalidNetwork) {
				t.Errorf("error %v does not wrap ErrInvalidNetwork", err)
			}
		})
	}
}

func TestHosts_SizeProperty(t *testing.T) {
	// For any valid prefix, the host count is the block size minus the
	// network and broadcast addresses.
	for bits := 24; bits <= 30; bits++ {
		prefix := netip.PrefixFrom(netip.MustParseAddr("10.1.0.0"), bits)
		hosts, err := Hosts(prefix.String())
		if err != nil {
			t.Fatalf("Hosts(%s) error: %v", prefix, err)
		}
		want := (1 << (32 - bits)) - 2
		if len(hosts) != want {
			t.Errorf("Hosts(%s) = %d hosts, want %d", prefix, len(hosts), want)
		}
	}
}

func TestNetwork_Masked(t *testing.T) {
	prefix, err := Network("10.0.0.5/24")
	if err != nil {
		t.Fatalf("Network() error: %v", err)
	}
	if prefix.String() != "10.0.0.0/24" {
		t.Errorf("Network() = %s, want 10.0.0.0/24", prefix)
	}
}
