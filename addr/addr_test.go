package addr_test

import (
	"net/netip"
	"testing"

	"github.com/momentics/netsock/addr"
	"github.com/momentics/netsock/api"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []string{
		"127.0.0.1:80",
		"0.0.0.0:0",
		"255.255.255.255:65535",
		"[::1]:443",
		"[::]:0",
		"[2001:db8::ff00:42:8329]:8080",
		"[fe80::1%3]:9000",
	}
	for _, c := range cases {
		want := netip.MustParseAddrPort(c)
		raw, err := addr.Encode(want)
		if err != nil {
			t.Fatalf("Encode(%s): %v", c, err)
		}
		got, err := addr.Decode(raw)
		if err != nil {
			t.Fatalf("Decode(%s): %v", c, err)
		}
		if got != want {
			t.Fatalf("round trip mismatch: got %s, want %s", got, want)
		}
	}
}

func TestDecodeRejectsForeignFamily(t *testing.T) {
	raw, err := addr.Encode(netip.MustParseAddrPort("127.0.0.1:1"))
	if err != nil {
		t.Fatal(err)
	}
	// Overwrite the family tag with AF_UNIX-ish garbage.
	raw[0] = 1
	raw[1] = 1
	if _, err := addr.Decode(raw); !api.IsInvalidInput(err) {
		t.Fatalf("expected invalid-input for foreign family, got %v", err)
	}
}

func TestDecodeRejectsShortBuffer(t *testing.T) {
	if _, err := addr.Decode(nil); !api.IsInvalidInput(err) {
		t.Fatalf("expected invalid-input for empty buffer, got %v", err)
	}
	raw, err := addr.Encode(netip.MustParseAddrPort("[::1]:1"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := addr.Decode(raw[:10]); !api.IsInvalidInput(err) {
		t.Fatalf("expected invalid-input for truncated sockaddr_in6, got %v", err)
	}
}

func TestEncodeRejectsInvalidAddr(t *testing.T) {
	if _, err := addr.Encode(netip.AddrPort{}); !api.IsInvalidInput(err) {
		t.Fatalf("expected invalid-input for zero endpoint, got %v", err)
	}
}

func TestEncodeRejectsNamedZone(t *testing.T) {
	// An interface-name zone has no portable scope id here; silently encoding
	// scope 0 would break the Encode/Decode round trip.
	ap := netip.MustParseAddrPort("[fe80::1%eth0]:9000")
	if _, err := addr.Encode(ap); !api.IsInvalidInput(err) {
		t.Fatalf("expected invalid-input for named zone, got %v", err)
	}
}
