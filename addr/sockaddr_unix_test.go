//go:build unix
// +build unix

package addr_test

import (
	"net/netip"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/momentics/netsock/addr"
	"github.com/momentics/netsock/api"
)

func TestToSockaddrCarriesNumericZone(t *testing.T) {
	sa, err := addr.ToSockaddr(netip.MustParseAddrPort("[fe80::1%3]:9000"))
	if err != nil {
		t.Fatalf("ToSockaddr: %v", err)
	}
	sa6, ok := sa.(*unix.SockaddrInet6)
	if !ok {
		t.Fatalf("got %T, want *unix.SockaddrInet6", sa)
	}
	if sa6.ZoneId != 3 || sa6.Port != 9000 {
		t.Fatalf("zone/port = %d/%d, want 3/9000", sa6.ZoneId, sa6.Port)
	}
}

func TestToSockaddrRejectsNamedZone(t *testing.T) {
	ap := netip.MustParseAddrPort("[fe80::1%eth0]:9000")
	if _, err := addr.ToSockaddr(ap); !api.IsInvalidInput(err) {
		t.Fatalf("expected invalid-input for named zone, got %v", err)
	}
}
