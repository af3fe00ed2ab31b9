//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>
//
// Winsock implementation of the owned socket handle. Sockets are created
// with the overlapped attribute and used synchronously; accept goes through
// AcceptEx with an event-backed overlapped wait.

package sockfd

import (
	"net/netip"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/momentics/netsock/addr"
	"github.com/momentics/netsock/api"
	"golang.org/x/sys/windows"
)

const (
	Stream   Type = windows.SOCK_STREAM
	Datagram Type = windows.SOCK_DGRAM
)

// Winsock constants the x/sys/windows package does not export.
const (
	sdReceive = 0 // SD_RECEIVE
	sdSend    = 1 // SD_SEND
	sdBoth    = 2 // SD_BOTH

	soRcvTimeo = 0x1006 // SO_RCVTIMEO, milliseconds
	soSndTimeo = 0x1005 // SO_SNDTIMEO, milliseconds
)

var (
	wsaOnce sync.Once
	wsaErr  error

	modws2_32               = windows.NewLazySystemDLL("ws2_32.dll")
	procWSADuplicateSocketW = modws2_32.NewProc("WSADuplicateSocketW")
)

// initWSA performs the one-time Winsock 2.2 startup.
func initWSA() error {
	wsaOnce.Do(func() {
		var d windows.WSAData
		wsaErr = windows.WSAStartup(uint32(0x202), &d)
	})
	return wsaErr
}

// FD owns exactly one Winsock handle.
type FD struct {
	sysfd  windows.Handle
	closed atomic.Bool
}

// New creates a socket for the endpoint's address family.
func New(ap netip.AddrPort, typ Type) (*FD, error) {
	if err := initWSA(); err != nil {
		return nil, api.NewError(api.KindIO, "wsastartup", err)
	}
	fd, err := windows.WSASocket(int32(addr.Family(ap)), int32(typ), 0, nil, 0,
		windows.WSA_FLAG_OVERLAPPED|windows.WSA_FLAG_NO_HANDLE_INHERIT)
	if err != nil {
		return nil, errKind("socket", err)
	}
	return &FD{sysfd: fd}, nil
}

// RawFD exposes the raw handle for option access. The FD keeps ownership.
func (fd *FD) RawFD() uintptr { return uintptr(fd.sysfd) }

func (fd *FD) ok() error {
	if fd == nil || fd.closed.Load() {
		return api.NewError(api.KindClosed, "socket", nil)
	}
	return nil
}

// Close releases the handle. Calling Close again is a no-op.
func (fd *FD) Close() error {
	if fd == nil || fd.closed.Swap(true) {
		return nil
	}
	if err := windows.Closesocket(fd.sysfd); err != nil {
		return api.NewError(api.KindIO, "closesocket", err)
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
	if err := windows.Connect(fd.sysfd, sa); err != nil {
		return errKind("connect", err)
	}
	return nil
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
	if err := windows.Bind(fd.sysfd, sa); err != nil {
		return errKind("bind", err)
	}
	return nil
}

// Listen marks the socket as accepting connections.
func (fd *FD) Listen(backlog int) error {
	if err := fd.ok(); err != nil {
		return err
	}
	if err := windows.Listen(fd.sysfd, backlog); err != nil {
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
	local, err := fd.LocalAddr()
	if err != nil {
		return nil, netip.AddrPort{}, err
	}
	ns, err := windows.WSASocket(int32(addr.Family(local)), int32(Stream), 0, nil, 0,
		windows.WSA_FLAG_OVERLAPPED|windows.WSA_FLAG_NO_HANDLE_INHERIT)
	if err != nil {
		return nil, netip.AddrPort{}, errKind("accept", err)
	}
	ev, err := windows.CreateEvent(nil, 1, 0, nil)
	if err != nil {
		windows.Closesocket(ns)
		return nil, netip.AddrPort{}, errKind("accept", err)
	}
	defer windows.CloseHandle(ev)

	var rawsa [2]windows.RawSockaddrAny
	rsaLen := uint32(unsafe.Sizeof(rawsa[0]))
	var recvd uint32
	o := &windows.Overlapped{HEvent: ev}
	err = windows.AcceptEx(fd.sysfd, ns, (*byte)(unsafe.Pointer(&rawsa[0])),
		0, rsaLen, rsaLen, &recvd, o)
	if err != nil && err != windows.ERROR_IO_PENDING {
		windows.Closesocket(ns)
		return nil, netip.AddrPort{}, errKind("accept", err)
	}
	if err := windows.GetOverlappedResult(fd.sysfd, o, &recvd, true); err != nil {
		windows.Closesocket(ns)
		return nil, netip.AddrPort{}, errKind("accept", err)
	}

	// Accepted handle inherits listener state only after this option call;
	// without it the new socket cannot report addresses or shut down.
	ls := fd.sysfd
	if err := windows.Setsockopt(ns, windows.SOL_SOCKET, windows.SO_UPDATE_ACCEPT_CONTEXT,
		(*byte)(unsafe.Pointer(&ls)), int32(unsafe.Sizeof(ls))); err != nil {
		windows.Closesocket(ns)
		return nil, netip.AddrPort{}, errKind("accept", err)
	}

	var lrsa, rrsa *windows.RawSockaddrAny
	var llen, rlen int32
	windows.GetAcceptExSockaddrs((*byte)(unsafe.Pointer(&rawsa[0])),
		0, rsaLen, rsaLen, &lrsa, &llen, &rrsa, &rlen)
	sa, err := rrsa.Sockaddr()
	if err != nil {
		windows.Closesocket(ns)
		return nil, netip.AddrPort{}, api.NewError(api.KindInvalidInput, "accept", err)
	}
	ap, err := addr.FromSockaddr(sa)
	if err != nil {
		windows.Closesocket(ns)
		return nil, netip.AddrPort{}, err
	}
	return &FD{sysfd: ns}, ap, nil
}

// Read receives bytes from a connected socket. n == 0 with a nil error means
// the peer shut down its write side.
func (fd *FD) Read(p []byte) (int, error) {
	if err := fd.ok(); err != nil {
		return 0, err
	}
	buf := windows.WSABuf{Len: uint32(len(p))}
	if len(p) > 0 {
		buf.Buf = &p[0]
	}
	var n, flags uint32
	if err := windows.WSARecv(fd.sysfd, &buf, 1, &n, &flags, nil, nil); err != nil {
		return 0, errKind("read", err)
	}
	return int(n), nil
}

// Write sends bytes on a connected socket and returns how many were taken.
func (fd *FD) Write(p []byte) (int, error) {
	if err := fd.ok(); err != nil {
		return 0, err
	}
	buf := windows.WSABuf{Len: uint32(len(p))}
	if len(p) > 0 {
		buf.Buf = &p[0]
	}
	var n uint32
	if err := windows.WSASend(fd.sysfd, &buf, 1, &n, 0, nil, nil); err != nil {
		return 0, errKind("write", err)
	}
	return int(n), nil
}

// RecvFrom receives one datagram and the sender's endpoint.
func (fd *FD) RecvFrom(p []byte) (int, netip.AddrPort, error) {
	if err := fd.ok(); err != nil {
		return 0, netip.AddrPort{}, err
	}
	n, sa, err := windows.Recvfrom(fd.sysfd, p, 0)
	if err != nil {
		return 0, netip.AddrPort{}, errKind("recvfrom", err)
	}
	ap, err := addr.FromSockaddr(sa)
	if err != nil {
		return 0, netip.AddrPort{}, err
	}
	return n, ap, nil
}

// SendTo sends one datagram to the destination endpoint. Datagram sends are
// all-or-nothing, so success reports the full length.
func (fd *FD) SendTo(p []byte, dst netip.AddrPort) (int, error) {
	if err := fd.ok(); err != nil {
		return 0, err
	}
	sa, err := addr.ToSockaddr(dst)
	if err != nil {
		return 0, err
	}
	if err := windows.Sendto(fd.sysfd, p, 0, sa); err != nil {
		return 0, errKind("sendto", err)
	}
	return len(p), nil
}

// Shutdown half- or full-closes the data directions without releasing the
// handle.
func (fd *FD) Shutdown(how How) error {
	if err := fd.ok(); err != nil {
		return err
	}
	var sysHow int
	switch how {
	case ShutRead:
		sysHow = sdReceive
	case ShutWrite:
		sysHow = sdSend
	case ShutBoth:
		sysHow = sdBoth
	default:
		return api.Errorf(api.KindInvalidInput, "shutdown", "unknown how %d", how)
	}
	if err := windows.Shutdown(fd.sysfd, sysHow); err != nil {
		return errKind("shutdown", err)
	}
	return nil
}

// Duplicate creates a second, independently owned handle referring to the
// same underlying socket via WSADuplicateSocketW.
func (fd *FD) Duplicate() (*FD, error) {
	if err := fd.ok(); err != nil {
		return nil, err
	}
	var info windows.WSAProtocolInfo
	r1, _, e1 := procWSADuplicateSocketW.Call(
		uintptr(fd.sysfd),
		uintptr(windows.GetCurrentProcessId()),
		uintptr(unsafe.Pointer(&info)),
	)
	if r1 != 0 {
		return nil, errKind("dup", e1)
	}
	ns, err := windows.WSASocket(info.AddressFamily, info.SocketType, info.Protocol,
		&info, 0, windows.WSA_FLAG_OVERLAPPED|windows.WSA_FLAG_NO_HANDLE_INHERIT)
	if err != nil {
		return nil, errKind("dup", err)
	}
	return &FD{sysfd: ns}, nil
}

// SetReuseAddr toggles SO_REUSEADDR.
func (fd *FD) SetReuseAddr(on bool) error {
	if err := fd.ok(); err != nil {
		return err
	}
	v := 0
	if on {
		v = 1
	}
	if err := windows.SetsockoptInt(fd.sysfd, windows.SOL_SOCKET, windows.SO_REUSEADDR, v); err != nil {
		return errKind("setsockopt", err)
	}
	return nil
}

// SetTimeout configures the read or write timeout as whole milliseconds, the
// unit Winsock expects. A zero duration disables the timeout; negative
// durations are invalid input.
func (fd *FD) SetTimeout(which Which, d time.Duration) error {
	if err := fd.ok(); err != nil {
		return err
	}
	if d < 0 {
		return api.Errorf(api.KindInvalidInput, "setsockopt", "negative timeout %v", d)
	}
	ms := int(d / time.Millisecond)
	if d > 0 && ms == 0 {
		// Sub-millisecond timeouts must not collapse into "no timeout".
		ms = 1
	}
	if err := windows.SetsockoptInt(fd.sysfd, windows.SOL_SOCKET, timeoutOpt(which), ms); err != nil {
		return errKind("setsockopt", err)
	}
	return nil
}

// Timeout reports the configured read or write timeout, zero when disabled.
func (fd *FD) Timeout(which Which) (time.Duration, error) {
	if err := fd.ok(); err != nil {
		return 0, err
	}
	var ms int32
	l := int32(unsafe.Sizeof(ms))
	if err := windows.Getsockopt(fd.sysfd, windows.SOL_SOCKET, int32(timeoutOpt(which)),
		(*byte)(unsafe.Pointer(&ms)), &l); err != nil {
		return 0, errKind("getsockopt", err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// LocalAddr reports the socket's bound endpoint.
func (fd *FD) LocalAddr() (netip.AddrPort, error) {
	if err := fd.ok(); err != nil {
		return netip.AddrPort{}, err
	}
	sa, err := windows.Getsockname(fd.sysfd)
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
	sa, err := windows.Getpeername(fd.sysfd)
	if err != nil {
		return netip.AddrPort{}, errKind("getpeername", err)
	}
	return addr.FromSockaddr(sa)
}

func timeoutOpt(which Which) int {
	if which == WriteTimeout {
		return soSndTimeo
	}
	return soRcvTimeo
}

// errKind maps a Winsock error onto the library error taxonomy.
func errKind(op string, err error) error {
	switch err {
	case windows.WSAETIMEDOUT:
		return api.NewError(api.KindTimeout, op, err)
	case windows.WSAEINVAL, windows.WSAEAFNOSUPPORT:
		return api.NewError(api.KindInvalidInput, op, err)
	case windows.WSAENOTSOCK:
		return api.NewError(api.KindClosed, op, err)
	}
	return api.NewError(api.KindIO, op, err)
}
