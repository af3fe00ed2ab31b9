// Author: momentics <momentics@gmail.com>

package tcp

import (
	"net/netip"
	"runtime"

	"github.com/momentics/netsock/internal/sockfd"
)

// backlog is the fixed pending-connection queue length for new listeners.
const backlog = 128

// Listener is a bound, listening TCP socket owning exactly one OS handle.
type Listener struct {
	fd *sockfd.FD
}

// Bind creates a listener on the local endpoint. On Berkeley-derived stacks
// SO_REUSEADDR is enabled before bind so a restart does not fail while a
// prior socket lingers in teardown; Windows keeps it off because there the
// option permits hijacking an in-use address.
func Bind(local netip.AddrPort) (*Listener, error) {
	fd, err := sockfd.New(local, sockfd.Stream)
	if err != nil {
		return nil, err
	}
	if runtime.GOOS != "windows" {
		if err := fd.SetReuseAddr(true); err != nil {
			fd.Close()
			return nil, err
		}
	}
	if err := fd.Bind(local); err != nil {
		fd.Close()
		return nil, err
	}
	if err := fd.Listen(backlog); err != nil {
		fd.Close()
		return nil, err
	}
	return &Listener{fd: fd}, nil
}

// Accept blocks until a peer connects and returns the new stream together
// with the peer's endpoint.
func (l *Listener) Accept() (*Stream, netip.AddrPort, error) {
	fd, peer, err := l.fd.Accept()
	if err != nil {
		return nil, netip.AddrPort{}, err
	}
	return newStream(fd), peer, nil
}

// Addr reports the listener's bound endpoint, including the kernel-assigned
// port after an ephemeral bind.
func (l *Listener) Addr() (netip.AddrPort, error) { return l.fd.LocalAddr() }

// Duplicate creates an independently owned handle over the same listening
// socket.
func (l *Listener) Duplicate() (*Listener, error) {
	fd, err := l.fd.Duplicate()
	if err != nil {
		return nil, err
	}
	return &Listener{fd: fd}, nil
}

// RawFD exposes the raw handle for sockopt access.
func (l *Listener) RawFD() uintptr { return l.fd.RawFD() }

// Close releases the handle. Safe to call more than once.
func (l *Listener) Close() error { return l.fd.Close() }
