// Author: momentics <momentics@gmail.com>

package tcp

import (
	"io"
	"net/netip"
	"time"

	"github.com/momentics/netsock/internal/sockfd"
)

// Stream is a connected TCP socket owning exactly one OS handle.
type Stream struct {
	fd *sockfd.FD
}

// Connect opens a blocking connection to the remote endpoint.
func Connect(remote netip.AddrPort) (*Stream, error) {
	fd, err := sockfd.New(remote, sockfd.Stream)
	if err != nil {
		return nil, err
	}
	if err := fd.Connect(remote); err != nil {
		fd.Close()
		return nil, err
	}
	return &Stream{fd: fd}, nil
}

// newStream wraps an already-connected handle, e.g. from Accept.
func newStream(fd *sockfd.FD) *Stream { return &Stream{fd: fd} }

// Read fills p with received bytes. Blocks until data arrives, the peer shuts
// down (io.EOF), the configured read timeout expires, or the call fails.
func (s *Stream) Read(p []byte) (int, error) {
	n, err := s.fd.Read(p)
	if err == nil && n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, err
}

// Write sends bytes and returns how many the kernel accepted. A short write
// is not an error; the caller decides whether to continue.
func (s *Stream) Write(p []byte) (int, error) {
	return s.fd.Write(p)
}

// LocalAddr reports the socket's local endpoint.
func (s *Stream) LocalAddr() (netip.AddrPort, error) { return s.fd.LocalAddr() }

// PeerAddr reports the connected peer's endpoint.
func (s *Stream) PeerAddr() (netip.AddrPort, error) { return s.fd.PeerAddr() }

// SetReadTimeout bounds blocking reads. Zero disables the timeout.
func (s *Stream) SetReadTimeout(d time.Duration) error {
	return s.fd.SetTimeout(sockfd.ReadTimeout, d)
}

// SetWriteTimeout bounds blocking writes. Zero disables the timeout.
func (s *Stream) SetWriteTimeout(d time.Duration) error {
	return s.fd.SetTimeout(sockfd.WriteTimeout, d)
}

// ReadTimeout reports the configured read timeout, zero when disabled.
func (s *Stream) ReadTimeout() (time.Duration, error) {
	return s.fd.Timeout(sockfd.ReadTimeout)
}

// WriteTimeout reports the configured write timeout, zero when disabled.
func (s *Stream) WriteTimeout() (time.Duration, error) {
	return s.fd.Timeout(sockfd.WriteTimeout)
}

// How selects the shutdown direction.
type How = sockfd.How

const (
	ShutRead  = sockfd.ShutRead
	ShutWrite = sockfd.ShutWrite
	ShutBoth  = sockfd.ShutBoth
)

// Shutdown half- or full-closes the stream's data directions while keeping
// the handle open.
func (s *Stream) Shutdown(how How) error { return s.fd.Shutdown(how) }

// Duplicate creates an independently owned handle over the same connection.
// Either side may be closed without affecting the other.
func (s *Stream) Duplicate() (*Stream, error) {
	fd, err := s.fd.Duplicate()
	if err != nil {
		return nil, err
	}
	return &Stream{fd: fd}, nil
}

// RawFD exposes the raw handle for sockopt access.
func (s *Stream) RawFD() uintptr { return s.fd.RawFD() }

// Close releases the handle. Safe to call more than once.
func (s *Stream) Close() error { return s.fd.Close() }
