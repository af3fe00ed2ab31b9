// Author: momentics <momentics@gmail.com>

package udp

import (
	"net/netip"
	"time"

	"github.com/momentics/netsock/internal/sockfd"
)

// Socket is a bound UDP socket owning exactly one OS handle.
type Socket struct {
	fd *sockfd.FD
}

// Bind creates a datagram socket attached to the local endpoint.
func Bind(local netip.AddrPort) (*Socket, error) {
	fd, err := sockfd.New(local, sockfd.Datagram)
	if err != nil {
		return nil, err
	}
	if err := fd.Bind(local); err != nil {
		fd.Close()
		return nil, err
	}
	return &Socket{fd: fd}, nil
}

// RecvFrom blocks for one datagram and returns the byte count and the
// sender's endpoint. Datagrams longer than p are truncated by the kernel.
func (s *Socket) RecvFrom(p []byte) (int, netip.AddrPort, error) {
	return s.fd.RecvFrom(p)
}

// SendTo sends one datagram to the destination endpoint.
func (s *Socket) SendTo(p []byte, dst netip.AddrPort) (int, error) {
	return s.fd.SendTo(p, dst)
}

// LocalAddr reports the socket's bound endpoint.
func (s *Socket) LocalAddr() (netip.AddrPort, error) { return s.fd.LocalAddr() }

// SetReadTimeout bounds blocking receives. Zero disables the timeout.
func (s *Socket) SetReadTimeout(d time.Duration) error {
	return s.fd.SetTimeout(sockfd.ReadTimeout, d)
}

// SetWriteTimeout bounds blocking sends. Zero disables the timeout.
func (s *Socket) SetWriteTimeout(d time.Duration) error {
	return s.fd.SetTimeout(sockfd.WriteTimeout, d)
}

// ReadTimeout reports the configured receive timeout, zero when disabled.
func (s *Socket) ReadTimeout() (time.Duration, error) {
	return s.fd.Timeout(sockfd.ReadTimeout)
}

// WriteTimeout reports the configured send timeout, zero when disabled.
func (s *Socket) WriteTimeout() (time.Duration, error) {
	return s.fd.Timeout(sockfd.WriteTimeout)
}

// Duplicate creates an independently owned handle over the same binding.
func (s *Socket) Duplicate() (*Socket, error) {
	fd, err := s.fd.Duplicate()
	if err != nil {
		return nil, err
	}
	return &Socket{fd: fd}, nil
}

// RawFD exposes the raw handle for sockopt access.
func (s *Socket) RawFD() uintptr { return s.fd.RawFD() }

// Close releases the handle. Safe to call more than once.
func (s *Socket) Close() error { return s.fd.Close() }
