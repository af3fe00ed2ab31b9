//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
//
// Conversions between netip.AddrPort and the x/sys/windows Sockaddr values
// passed at every syscall boundary.

package addr

import (
	"net/netip"
	"strconv"

	"github.com/momentics/netsock/api"
	"golang.org/x/sys/windows"
)

// FromSockaddr converts a syscall-level peer address into an endpoint.
// Address families other than IPv4/IPv6 are rejected as invalid input.
func FromSockaddr(sa windows.Sockaddr) (netip.AddrPort, error) {
	switch sa := sa.(type) {
	case *windows.SockaddrInet4:
		return netip.AddrPortFrom(netip.AddrFrom4(sa.Addr), uint16(sa.Port)), nil
	case *windows.SockaddrInet6:
		ip := netip.AddrFrom16(sa.Addr)
		if sa.ZoneId != 0 {
			ip = ip.WithZone(strconv.FormatUint(uint64(sa.ZoneId), 10))
		}
		return netip.AddrPortFrom(ip, uint16(sa.Port)), nil
	}
	return netip.AddrPort{}, api.Errorf(api.KindInvalidInput, "sockaddr",
		"unsupported sockaddr type %T", sa)
}

// ToSockaddr converts an endpoint into the syscall-level representation.
func ToSockaddr(ap netip.AddrPort) (windows.Sockaddr, error) {
	if !ap.Addr().IsValid() {
		return nil, api.Errorf(api.KindInvalidInput, "sockaddr", "invalid address")
	}
	if ap.Addr().Is4() {
		return &windows.SockaddrInet4{Port: int(ap.Port()), Addr: ap.Addr().As4()}, nil
	}
	scope, err := zoneScope(ap.Addr().Zone())
	if err != nil {
		return nil, err
	}
	return &windows.SockaddrInet6{
		Port:   int(ap.Port()),
		ZoneId: scope,
		Addr:   ap.Addr().As16(),
	}, nil
}

// Family returns the protocol family constant for the endpoint's address.
func Family(ap netip.AddrPort) int {
	if ap.Addr().Is4() {
		return windows.AF_INET
	}
	return windows.AF_INET6
}
