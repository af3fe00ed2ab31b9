// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development. Provides predictable,
// controllable in-memory endpoints mirroring the udp.Socket surface.

package fake

import (
	"net/netip"
	"sync"

	"github.com/eapache/queue"
	"github.com/momentics/netsock/api"
)

type packet struct {
	payload []byte
	from    netip.AddrPort
}

// PacketConn is an in-memory datagram endpoint. Datagrams sent to its peer
// are delivered in FIFO order; receiving from an empty queue reports a
// timeout, so tests stay deterministic without real clocks.
type PacketConn struct {
	mu     sync.Mutex
	inbox  *queue.Queue
	peer   *PacketConn
	local  netip.AddrPort
	closed bool

	sendErr error
	recvErr error
}

// NewPair creates two cross-linked endpoints with distinct loopback
// addresses.
func NewPair() (*PacketConn, *PacketConn) {
	a := &PacketConn{
		inbox: queue.New(),
		local: netip.MustParseAddrPort("127.0.0.1:10001"),
	}
	b := &PacketConn{
		inbox: queue.New(),
		local: netip.MustParseAddrPort("127.0.0.1:10002"),
	}
	a.peer, b.peer = b, a
	return a, b
}

// LocalAddr reports the endpoint's synthetic bound address.
func (c *PacketConn) LocalAddr() (netip.AddrPort, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return netip.AddrPort{}, api.NewError(api.KindClosed, "getsockname", nil)
	}
	return c.local, nil
}

// SendTo delivers one datagram into the peer's inbox. The destination is
// recorded but, as with a real unconnected socket, not validated.
func (c *PacketConn) SendTo(p []byte, dst netip.AddrPort) (int, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, api.NewError(api.KindClosed, "sendto", nil)
	}
	if err := c.sendErr; err != nil {
		c.mu.Unlock()
		return 0, err
	}
	peer, from := c.peer, c.local
	c.mu.Unlock()

	buf := make([]byte, len(p))
	copy(buf, p)
	peer.mu.Lock()
	peer.inbox.Add(packet{payload: buf, from: from})
	peer.mu.Unlock()
	return len(p), nil
}

// RecvFrom pops the next queued datagram. An empty inbox reports a timeout
// error immediately.
func (c *PacketConn) RecvFrom(p []byte) (int, netip.AddrPort, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, netip.AddrPort{}, api.NewError(api.KindClosed, "recvfrom", nil)
	}
	if err := c.recvErr; err != nil {
		return 0, netip.AddrPort{}, err
	}
	if c.inbox.Length() == 0 {
		return 0, netip.AddrPort{}, api.NewError(api.KindTimeout, "recvfrom", nil)
	}
	pkt := c.inbox.Remove().(packet)
	n := copy(p, pkt.payload)
	return n, pkt.from, nil
}

// SetSendError injects a failure for subsequent SendTo calls; nil clears it.
func (c *PacketConn) SetSendError(err error) {
	c.mu.Lock()
	c.sendErr = err
	c.mu.Unlock()
}

// SetRecvError injects a failure for subsequent RecvFrom calls; nil clears it.
func (c *PacketConn) SetRecvError(err error) {
	c.mu.Lock()
	c.recvErr = err
	c.mu.Unlock()
}

// Pending reports how many datagrams wait in the inbox.
func (c *PacketConn) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inbox.Length()
}

// Close marks the endpoint closed. Safe to call more than once.
func (c *PacketConn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}
