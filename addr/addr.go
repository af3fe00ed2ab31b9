// Author: momentics <momentics@gmail.com>
//
// Bounds-checked encode/decode between raw sockaddr bytes and netip.AddrPort.

package addr

import (
	"encoding/binary"
	"net/netip"
	"strconv"

	"github.com/momentics/netsock/api"
)

// Raw sockaddr_in / sockaddr_in6 sizes shared by the supported platforms.
const (
	sockaddrInet4Len = 16
	sockaddrInet6Len = 28
)

// Decode parses a raw OS sockaddr buffer into an endpoint. The buffer must be
// at least as long as the fixed structure size of the family named by its
// family tag; anything shorter, and any family other than IPv4/IPv6, is an
// invalid-input error.
func Decode(raw []byte) (netip.AddrPort, error) {
	fam, ok := rawFamily(raw)
	if !ok {
		return netip.AddrPort{}, api.Errorf(api.KindInvalidInput, "sockaddr",
			"buffer too short for family tag: %d bytes", len(raw))
	}
	switch fam {
	case afInet:
		if len(raw) < sockaddrInet4Len {
			return netip.AddrPort{}, api.Errorf(api.KindInvalidInput, "sockaddr",
				"short sockaddr_in: %d bytes", len(raw))
		}
		var a [4]byte
		copy(a[:], raw[4:8])
		port := binary.BigEndian.Uint16(raw[2:4])
		return netip.AddrPortFrom(netip.AddrFrom4(a), port), nil
	case afInet6:
		if len(raw) < sockaddrInet6Len {
			return netip.AddrPort{}, api.Errorf(api.KindInvalidInput, "sockaddr",
				"short sockaddr_in6: %d bytes", len(raw))
		}
		var a [16]byte
		copy(a[:], raw[8:24])
		ip := netip.AddrFrom16(a)
		if scope := binary.NativeEndian.Uint32(raw[24:28]); scope != 0 {
			ip = ip.WithZone(strconv.FormatUint(uint64(scope), 10))
		}
		port := binary.BigEndian.Uint16(raw[2:4])
		return netip.AddrPortFrom(ip, port), nil
	}
	return netip.AddrPort{}, api.Errorf(api.KindInvalidInput, "sockaddr",
		"unsupported address family %d", fam)
}

// Encode produces the platform's raw sockaddr bytes for an endpoint.
// The inverse of Decode for every valid IPv4/IPv6 endpoint.
func Encode(ap netip.AddrPort) ([]byte, error) {
	if !ap.Addr().IsValid() {
		return nil, api.Errorf(api.KindInvalidInput, "sockaddr", "invalid address")
	}
	if ap.Addr().Is4() {
		raw := make([]byte, sockaddrInet4Len)
		putRawFamily(raw, afInet)
		binary.BigEndian.PutUint16(raw[2:4], ap.Port())
		a := ap.Addr().As4()
		copy(raw[4:8], a[:])
		return raw, nil
	}
	raw := make([]byte, sockaddrInet6Len)
	putRawFamily(raw, afInet6)
	binary.BigEndian.PutUint16(raw[2:4], ap.Port())
	a := ap.Addr().As16()
	copy(raw[8:24], a[:])
	scope, err := zoneScope(ap.Addr().Zone())
	if err != nil {
		return nil, err
	}
	binary.NativeEndian.PutUint32(raw[24:28], scope)
	return raw, nil
}

// zoneScope maps a numeric IPv6 zone to the kernel scope id. Zones that are
// interface names are not resolved here; rather than drop them silently they
// are rejected as invalid input.
func zoneScope(zone string) (uint32, error) {
	if zone == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(zone, 10, 32)
	if err != nil {
		return 0, api.Errorf(api.KindInvalidInput, "sockaddr",
			"non-numeric zone %q", zone)
	}
	return uint32(n), nil
}
