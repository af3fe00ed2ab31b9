// Author: momentics <momentics@gmail.com>

package resolve

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"strings"
	"unicode/utf8"

	"github.com/momentics/netsock/api"
)

// niMaxHost caps reverse-lookup results, matching the NI_MAXHOST convention.
const niMaxHost = 1025

// Hosts is a finite, non-restartable sequence of resolved addresses.
// Iterate with Next/Addr; a single malformed entry fails on its own without
// aborting the rest of the sequence.
//
//	hosts, err := resolve.LookupHost(ctx, "example.com")
//	if err != nil { ... }
//	defer hosts.Close()
//	for hosts.Next() {
//		a, err := hosts.Addr()
//		...
//	}
type Hosts struct {
	addrs []net.IPAddr
	pos   int
}

// LookupHost resolves a host name through the platform resolver. A host that
// resolves to zero addresses yields an empty, already-exhausted sequence; a
// host that cannot be resolved at all is a resolver error.
func LookupHost(ctx context.Context, host string) (*Hosts, error) {
	if host == "" {
		return nil, api.Errorf(api.KindInvalidInput, "lookup", "empty host name")
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, resolverError("lookup", err)
	}
	return &Hosts{addrs: addrs}, nil
}

// Next advances to the next resolved address. It returns false once the
// sequence is exhausted or released.
func (l *Hosts) Next() bool {
	if l.addrs == nil || l.pos >= len(l.addrs) {
		return false
	}
	l.pos++
	return true
}

// Addr returns the element Next advanced to. A malformed resolver entry is
// reported here and iteration may continue past it.
func (l *Hosts) Addr() (netip.Addr, error) {
	if l.addrs == nil || l.pos == 0 || l.pos > len(l.addrs) {
		return netip.Addr{}, api.Errorf(api.KindInvalidInput, "lookup", "no current element")
	}
	cur := l.addrs[l.pos-1]
	ip, ok := netip.AddrFromSlice(cur.IP)
	if !ok {
		return netip.Addr{}, api.Errorf(api.KindInvalidInput, "lookup",
			"malformed resolved address of %d bytes", len(cur.IP))
	}
	ip = ip.Unmap()
	if cur.Zone != "" {
		ip = ip.WithZone(cur.Zone)
	}
	return ip, nil
}

// Close releases the resolved list. The first call frees it; later calls and
// abandoned sequences are no-ops. Next reports exhaustion afterwards.
func (l *Hosts) Close() {
	l.addrs = nil
	l.pos = 0
}

// LookupAddr reverse-resolves an IP address into a host name. The result is
// capped at NI_MAXHOST bytes and must decode as UTF-8, otherwise the lookup
// fails generically.
func LookupAddr(ctx context.Context, ip netip.Addr) (string, error) {
	if !ip.IsValid() {
		return "", api.Errorf(api.KindInvalidInput, "lookupaddr", "invalid address")
	}
	names, err := net.DefaultResolver.LookupAddr(ctx, ip.Unmap().WithZone("").String())
	if err != nil {
		return "", resolverError("lookupaddr", err)
	}
	if len(names) == 0 {
		return "", api.NewError(api.KindResolver, "lookupaddr",
			errors.New("no name for address"))
	}
	name := strings.TrimSuffix(names[0], ".")
	if len(name) > niMaxHost {
		name = name[:niMaxHost]
	}
	if !utf8.ValidString(name) {
		return "", api.Errorf(api.KindResolver, "lookupaddr",
			"failed to lookup address information")
	}
	return name, nil
}

// resolverError maps resolver failures onto the library taxonomy, keeping
// them distinct from generic I/O errors.
func resolverError(op string, err error) error {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && dnsErr.IsTimeout {
		return api.NewError(api.KindTimeout, op, err)
	}
	return api.NewError(api.KindResolver, op, err)
}
