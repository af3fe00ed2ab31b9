//go:build unix
// +build unix

// Author: momentics <momentics@gmail.com>
//
// POSIX implementation of the owned socket handle. One wrapper call maps to
// exactly one syscall; interrupted syscalls are retried until they succeed
// or fail for another reason.

package sockfd

import (
	"net/netip"
	"sync/atomic"
	"time"

	"github.com/momentics/netsock/addr"
	"github.com/momentics/netsock/api"
	"golang.org/x/sys/unix"
)

const (
	Stream   Type = unix.SOCK_STREAM
	Datagram Type = unix.SOCK_DGRAM
)

// FD owns exactly one OS socket descriptor.
type FD struct {
	sysfd  int
	closed atomic.Bool
}

// New creates a socket for the endpoint's address family.
func New(ap netip.AddrPort, typ Type) (*FD, error) {
	fd, err := sysSocket(addr.Family(ap), int(typ))
	if err != nil {
		return nil, api.NewError(api.KindIO, "socket", err)
	}
	return &FD{sysfd: fd}, nil
}

// RawFD exposes the raw descriptor for option access. The FD keeps ownership.
func (fd *FD) RawFD() uintptr { return uintptr(fd.sysfd) }

func (fd *FD) ok() error {
	if fd == nil || fd.closed.Load() {
		return api.NewError(api.KindClosed, "socket", nil)
	}
	return nil
}

// Close releases the descriptor. Calling Close again is a no-op.
func (fd *FD) Close() error {
	if fd == nil || fd.closed.Swap(true) {
		return nil
	}
	if err := unix.Close(fd.sysfd); err != nil {
		return api.NewError(api.KindIO, "close", err)
	}
	return nil
}

// Connect attaches the socket to a remote endpoint.
func (fd *FD) Connect(ap netip.AddrPort) error {
	if err := fd.ok(); err != nil {
		return err
	}
	sa, err := addr.ToSockaddr(ap)
	if err != nil {
		return err
	}
	for {
		err := unix.Connect(fd.sysfd, sa)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return errKind("connect", err)
		}
		return nil
	}
}

// Bind attaches the socket to a local endpoint.
func (fd *FD) Bind(ap netip.AddrPort) error {
	if err := fd.ok(); err != nil {
		return err
	}
	sa, err := addr.ToSockaddr(ap)
	if err != nil {
		return err
	}
	if err := unix.Bind(fd.sysfd, sa); err != nil {
		return errKind("bind", err)
	}
	return nil
}

// Listen marks the socket as accepting connections.
func (fd *FD) Listen(backlog int) error {
	if err := fd.ok(); err != nil {
		return err
	}
	if err := unix.Listen(fd.sysfd, backlog); err != nil {
		return errKind("listen", err)
	}
	return nil
}

// Accept blocks until a peer connects and returns a new owned FD for it
// together with the peer endpoint.
func (fd *FD) Accept() (*FD, netip.AddrPort, error) {
	if err := fd.ok(); err != nil {
		return nil, netip.AddrPort{}, err
	}
	for {
		nfd, sa, err := sysAccept(fd.sysfd)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, netip.AddrPort{}, errKind("accept", err)
		}
		ap, err := addr.FromSockaddr(sa)
		if err != nil {
			unix.Close(nfd)
			return nil, netip.AddrPort{}, err
		}
		return &FD{sysfd: nfd}, ap, nil
	}
}

// Read receives bytes from a connected socket. n == 0 with a nil error means
// the peer shut down its write side.
func (fd *FD) Read(p []byte) (int, error) {
	if err := fd.ok(); err != nil {
		return 0, err
	}
	for {
		n, err := unix.Read(fd.sysfd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, errKind("read", err)
		}
		return n, nil
	}
}

// Write sends bytes on a connected socket and returns how many were taken.
func (fd *FD) Write(p []byte) (int, error) {
	if err := fd.ok(); err != nil {
		return 0, err
	}
	for {
		n, err := unix.Write(fd.sysfd, p)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, errKind("write", err)
		}
		return n, nil
	}
}

// RecvFrom receives one datagram and the sender's endpoint.
func (fd *FD) RecvFrom(p []byte) (int, netip.AddrPort, error) {
	if err := fd.ok(); err != nil {
		return 0, netip.AddrPort{}, err
	}
	for {
		n, sa, err := unix.Recvfrom(fd.sysfd, p, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, netip.AddrPort{}, errKind("recvfrom", err)
		}
		ap, err := addr.FromSockaddr(sa)
		if err != nil {
			return 0, netip.AddrPort{}, err
		}
		return n, ap, nil
	}
}

// SendTo sends one datagram to the destination endpoint.
func (fd *FD) SendTo(p []byte, dst netip.AddrPort) (int, error) {
	if err := fd.ok(); err != nil {
		return 0, err
	}
	sa, err := addr.ToSockaddr(dst)
	if err != nil {
		return 0, err
	}
	for {
		n, err := unix.SendmsgN(fd.sysfd, p, nil, sa, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, errKind("sendto", err)
		}
		return n, nil
	}
}

// Shutdown half- or full-closes the data directions without releasing the
// descriptor.
func (fd *FD) Shutdown(how How) error {
	if err := fd.ok(); err != nil {
		return err
	}
	var sysHow int
	switch how {
	case ShutRead:
		sysHow = unix.SHUT_RD
	case ShutWrite:
		sysHow = unix.SHUT_WR
	case ShutBoth:
		sysHow = unix.SHUT_RDWR
	default:
		return api.Errorf(api.KindInvalidInput, "shutdown", "unknown how %d", how)
	}
	if err := unix.Shutdown(fd.sysfd, sysHow); err != nil {
		return errKind("shutdown", err)
	}
	return nil
}

// Duplicate creates a second, independently owned descriptor referring to the
// same underlying socket.
func (fd *FD) Duplicate() (*FD, error) {
	if err := fd.ok(); err != nil {
		return nil, err
	}
	nfd, err := unix.FcntlInt(uintptr(fd.sysfd), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, errKind("dup", err)
	}
	return &FD{sysfd: nfd}, nil
}

// SetReuseAddr toggles SO_REUSEADDR, letting a listener rebind while a prior
// socket lingers in teardown.
func (fd *FD) SetReuseAddr(on bool) error {
	if err := fd.ok(); err != nil {
		return err
	}
	v := 0
	if on {
		v = 1
	}
	if err := unix.SetsockoptInt(fd.sysfd, unix.SOL_SOCKET, unix.SO_REUSEADDR, v); err != nil {
		return errKind("setsockopt", err)
	}
	return nil
}

// SetTimeout configures the read or write timeout. A zero duration disables
// the timeout; negative durations are invalid input.
func (fd *FD) SetTimeout(which Which, d time.Duration) error {
	if err := fd.ok(); err != nil {
		return err
	}
	if d < 0 {
		return api.Errorf(api.KindInvalidInput, "setsockopt", "negative timeout %v", d)
	}
	tv := unix.NsecToTimeval(d.Nanoseconds())
	if d > 0 && tv.Sec == 0 && tv.Usec == 0 {
		// Sub-microsecond timeouts must not collapse into "no timeout".
		tv.Usec = 1
	}
	if err := unix.SetsockoptTimeval(fd.sysfd, unix.SOL_SOCKET, timeoutOpt(which), &tv); err != nil {
		return errKind("setsockopt", err)
	}
	return nil
}

// Timeout reports the configured read or write timeout, zero when disabled.
func (fd *FD) Timeout(which Which) (time.Duration, error) {
	if err := fd.ok(); err != nil {
		return 0, err
	}
	tv, err := unix.GetsockoptTimeval(fd.sysfd, unix.SOL_SOCKET, timeoutOpt(which))
	if err != nil {
		return 0, errKind("getsockopt", err)
	}
	return time.Duration(tv.Sec)*time.Second + time.Duration(tv.Usec)*time.Microsecond, nil
}

// LocalAddr reports the socket's bound endpoint.
func (fd *FD) LocalAddr() (netip.AddrPort, error) {
	if err := fd.ok(); err != nil {
		return netip.AddrPort{}, err
	}
	sa, err := unix.Getsockname(fd.sysfd)
	if err != nil {
		return netip.AddrPort{}, errKind("getsockname", err)
	}
	return addr.FromSockaddr(sa)
}

// PeerAddr reports the connected peer's endpoint.
func (fd *FD) PeerAddr() (netip.AddrPort, error) {
	if err := fd.ok(); err != nil {
		return netip.AddrPort{}, err
	}
	sa, err := unix.Getpeername(fd.sysfd)
	if err != nil {
		return netip.AddrPort{}, errKind("getpeername", err)
	}
	return addr.FromSockaddr(sa)
}

func timeoutOpt(which Which) int {
	if which == WriteTimeout {
		return unix.SO_SNDTIMEO
	}
	return unix.SO_RCVTIMEO
}

// errKind maps an errno onto the library error taxonomy. EAGAIN after a
// configured SO_RCVTIMEO/SO_SNDTIMEO is how the kernel reports expiry.
func errKind(op string, err error) error {
	switch err {
	case unix.EAGAIN, unix.ETIMEDOUT:
		return api.NewError(api.KindTimeout, op, err)
	case unix.EINVAL, unix.EAFNOSUPPORT:
		return api.NewError(api.KindInvalidInput, op, err)
	case unix.EBADF:
		return api.NewError(api.KindClosed, op, err)
	}
	return api.NewError(api.KindIO, op, err)
}
