package tcp_test

import (
	"bytes"
	"errors"
	"io"
	"net/netip"
	"testing"
	"time"

	"github.com/momentics/netsock/api"
	"github.com/momentics/netsock/tcp"
)

// pair binds an ephemeral loopback listener and connects one stream to it,
// returning both ends of the connection.
func pair(t *testing.T) (client, server *tcp.Stream, peer netip.AddrPort) {
	t.Helper()
	ln, err := tcp.Bind(netip.MustParseAddrPort("127.0.0.1:0"))
	if err != nil {
		if errors.Is(err, api.ErrNotSupported) {
			t.Skip("no native socket support on this platform")
		}
		t.Fatalf("bind: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	local, err := ln.Addr()
	if err != nil {
		t.Fatalf("listener addr: %v", err)
	}

	type dial struct {
		s   *tcp.Stream
		err error
	}
	ch := make(chan dial, 1)
	go func() {
		s, err := tcp.Connect(local)
		ch <- dial{s, err}
	}()

	server, peer, err = ln.Accept()
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	t.Cleanup(func() { server.Close() })

	d := <-ch
	if d.err != nil {
		t.Fatalf("connect: %v", d.err)
	}
	client = d.s
	t.Cleanup(func() { client.Close() })
	return client, server, peer
}

func TestAcceptReportsConnectingPeer(t *testing.T) {
	client, _, peer := pair(t)
	local, err := client.LocalAddr()
	if err != nil {
		t.Fatalf("client local addr: %v", err)
	}
	if peer != local {
		t.Fatalf("accepted peer %s does not match connecting local %s", peer, local)
	}
}

func TestAcceptedStreamFullyUsable(t *testing.T) {
	// A successful accept must hand back a handle that is immediately fully
	// connected; half-initialized accepts surface as an accept error instead.
	_, server, _ := pair(t)

	if _, err := server.LocalAddr(); err != nil {
		t.Fatalf("local addr after accept: %v", err)
	}
	if _, err := server.PeerAddr(); err != nil {
		t.Fatalf("peer addr after accept: %v", err)
	}
	if err := server.Shutdown(tcp.ShutWrite); err != nil {
		t.Fatalf("shutdown after accept: %v", err)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	client, server, _ := pair(t)

	msg := []byte("ping over loopback")
	if n, err := client.Write(msg); err != nil || n != len(msg) {
		t.Fatalf("write: n=%d err=%v", n, err)
	}
	buf := make([]byte, 64)
	n, err := server.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(buf[:n], msg) {
		t.Fatalf("read %q, want %q", buf[:n], msg)
	}
}

func TestReadTimeoutFires(t *testing.T) {
	_, server, _ := pair(t)

	const d = 300 * time.Millisecond
	if err := server.SetReadTimeout(d); err != nil {
		t.Fatalf("set read timeout: %v", err)
	}
	start := time.Now()
	_, err := server.Read(make([]byte, 1))
	elapsed := time.Since(start)
	if !api.IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if elapsed < d-50*time.Millisecond {
		t.Fatalf("timeout fired too early: %v", elapsed)
	}
	if elapsed >= 2*d {
		t.Fatalf("timeout fired too late: %v (want < %v)", elapsed, 2*d)
	}
}

func TestTimeoutGetReflectsSet(t *testing.T) {
	client, _, _ := pair(t)

	const d = 1500 * time.Millisecond
	if err := client.SetWriteTimeout(d); err != nil {
		t.Fatalf("set write timeout: %v", err)
	}
	got, err := client.WriteTimeout()
	if err != nil {
		t.Fatalf("get write timeout: %v", err)
	}
	if got != d {
		t.Fatalf("write timeout = %v, want %v", got, d)
	}
	// The read side stays untouched.
	if got, err := client.ReadTimeout(); err != nil || got != 0 {
		t.Fatalf("read timeout = %v, %v; want 0, nil", got, err)
	}
}

func TestDuplicateOutlivesOriginal(t *testing.T) {
	client, server, _ := pair(t)

	dup, err := client.Duplicate()
	if err != nil {
		t.Fatalf("duplicate: %v", err)
	}
	defer dup.Close()

	if err := client.Close(); err != nil {
		t.Fatalf("close original: %v", err)
	}
	msg := []byte("via duplicate")
	if _, err := dup.Write(msg); err != nil {
		t.Fatalf("write on duplicate after original closed: %v", err)
	}
	buf := make([]byte, 64)
	n, err := server.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(buf[:n], msg) {
		t.Fatalf("read %q, want %q", buf[:n], msg)
	}
}

func TestShutdownWriteSignalsEOF(t *testing.T) {
	client, server, _ := pair(t)

	if err := client.Shutdown(tcp.ShutWrite); err != nil {
		t.Fatalf("shutdown write: %v", err)
	}
	if _, err := server.Read(make([]byte, 1)); err != io.EOF {
		t.Fatalf("expected io.EOF after peer shutdown, got %v", err)
	}
}

func TestListenerDuplicate(t *testing.T) {
	ln, err := tcp.Bind(netip.MustParseAddrPort("127.0.0.1:0"))
	if err != nil {
		if errors.Is(err, api.ErrNotSupported) {
			t.Skip("no native socket support on this platform")
		}
		t.Fatalf("bind: %v", err)
	}
	defer ln.Close()

	dup, err := ln.Duplicate()
	if err != nil {
		t.Fatalf("duplicate listener: %v", err)
	}
	defer dup.Close()

	a1, err := ln.Addr()
	if err != nil {
		t.Fatal(err)
	}
	a2, err := dup.Addr()
	if err != nil {
		t.Fatal(err)
	}
	if a1 != a2 {
		t.Fatalf("duplicate bound to %s, original %s", a2, a1)
	}

	// The duplicate keeps accepting after the original is closed.
	if err := ln.Close(); err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() {
		s, _, err := dup.Accept()
		if err == nil {
			s.Close()
		}
		done <- err
	}()
	c, err := tcp.Connect(a1)
	if err != nil {
		t.Fatalf("connect to duplicated listener: %v", err)
	}
	defer c.Close()
	if err := <-done; err != nil {
		t.Fatalf("accept on duplicate: %v", err)
	}
}
