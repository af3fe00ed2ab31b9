//go:build linux
// +build linux

// Author: momentics <momentics@gmail.com>

package sockopt_test

import (
	"net/netip"
	"testing"

	"golang.org/x/sys/unix"

	"github.com/momentics/netsock/sockopt"
	"github.com/momentics/netsock/udp"
)

func bindLoopback(t *testing.T) *udp.Socket {
	t.Helper()
	s, err := udp.Bind(netip.MustParseAddrPort("127.0.0.1:0"))
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGetRcvBuf(t *testing.T) {
	s := bindLoopback(t)

	const want = int32(64 << 10)
	if err := sockopt.Set(s, unix.SOL_SOCKET, unix.SO_RCVBUF, want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := sockopt.Get[int32](s, unix.SOL_SOCKET, unix.SO_RCVBUF)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	// The kernel doubles SO_RCVBUF to leave room for bookkeeping, so accept
	// anything at least as large as requested.
	if got < want {
		t.Fatalf("SO_RCVBUF = %d, want >= %d", got, want)
	}
}

func TestGetSocketType(t *testing.T) {
	s := bindLoopback(t)

	typ, err := sockopt.Get[int32](s, unix.SOL_SOCKET, unix.SO_TYPE)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if typ != unix.SOCK_DGRAM {
		t.Fatalf("SO_TYPE = %d, want %d", typ, unix.SOCK_DGRAM)
	}
}

func TestGetOnBadOptionFails(t *testing.T) {
	s := bindLoopback(t)

	if _, err := sockopt.Get[int32](s, -1, -1); err == nil {
		t.Fatal("Get with bogus level succeeded")
	}
}
