//go:build !unix && !windows
// +build !unix,!windows

// Author: momentics <momentics@gmail.com>
//
// Placeholder implementation for platforms without native socket support.

package sockfd

import (
	"net/netip"
	"time"

	"github.com/momentics/netsock/api"
)

const (
	Stream   Type = 1
	Datagram Type = 2
)

// FD is a stub; every operation reports not-supported.
type FD struct{}

func errUnsupported(op string) error {
	return api.NewError(api.KindNotSupported, op, nil)
}

func New(ap netip.AddrPort, typ Type) (*FD, error) {
	return nil, errUnsupported("socket")
}

func (fd *FD) RawFD() uintptr { return ^uintptr(0) }
func (fd *FD) Close() error   { return nil }

func (fd *FD) Connect(ap netip.AddrPort) error { return errUnsupported("connect") }
func (fd *FD) Bind(ap netip.AddrPort) error    { return errUnsupported("bind") }
func (fd *FD) Listen(backlog int) error        { return errUnsupported("listen") }

func (fd *FD) Accept() (*FD, netip.AddrPort, error) {
	return nil, netip.AddrPort{}, errUnsupported("accept")
}

func (fd *FD) Read(p []byte) (int, error)  { return 0, errUnsupported("read") }
func (fd *FD) Write(p []byte) (int, error) { return 0, errUnsupported("write") }

func (fd *FD) RecvFrom(p []byte) (int, netip.AddrPort, error) {
	return 0, netip.AddrPort{}, errUnsupported("recvfrom")
}

func (fd *FD) SendTo(p []byte, dst netip.AddrPort) (int, error) {
	return 0, errUnsupported("sendto")
}

func (fd *FD) Shutdown(how How) error     { return errUnsupported("shutdown") }
func (fd *FD) Duplicate() (*FD, error)    { return nil, errUnsupported("dup") }
func (fd *FD) SetReuseAddr(on bool) error { return errUnsupported("setsockopt") }

func (fd *FD) SetTimeout(which Which, d time.Duration) error {
	return errUnsupported("setsockopt")
}

func (fd *FD) Timeout(which Which) (time.Duration, error) {
	return 0, errUnsupported("getsockopt")
}

func (fd *FD) LocalAddr() (netip.AddrPort, error) {
	return netip.AddrPort{}, errUnsupported("getsockname")
}

func (fd *FD) PeerAddr() (netip.AddrPort, error) {
	return netip.AddrPort{}, errUnsupported("getpeername")
}
