// File: facade/netsock.go
// Unified facade layer for the netsock library.
// Author: momentics <momentics@gmail.com>
//
// Aggregates a TCP listener with runtime counters and debug probes behind a
// single type, and runs the blocking accept loop. The facade is an additive
// convenience layer: the underlying packages stay single-syscall wrappers
// with no scheduling of their own.

package facade

import (
	"errors"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/momentics/netsock/api"
	"github.com/momentics/netsock/control"
	"github.com/momentics/netsock/tcp"
)

// Handler consumes one accepted stream. The stream is closed by the facade
// when the handler returns.
type Handler func(s *tcp.Stream, peer netip.AddrPort)

// Config holds parameters immutable per run.
type Config struct {
	ListenAddr    string        // endpoint to bind, e.g. "127.0.0.1:9000"
	ReadTimeout   time.Duration // applied to every accepted stream, zero = none
	WriteTimeout  time.Duration // applied to every accepted stream, zero = none
	EnableMetrics bool          // whether to count socket activity
	EnableDebug   bool          // whether to expose debug probes
	Logger        *zap.Logger   // nil means a no-op logger
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:    "127.0.0.1:0",
		EnableMetrics: true,
		EnableDebug:   true,
	}
}

// Netsock is the main facade type.
type Netsock struct {
	cfg     *Config
	log     *zap.Logger
	metrics *control.Metrics
	probes  *control.DebugProbes

	mu       sync.Mutex
	ln       *tcp.Listener
	started  bool
	stopping atomic.Bool
	wg       sync.WaitGroup
}

// New validates the configuration and assembles the facade. The listener is
// not bound until Start.
func New(cfg *Config) (*Netsock, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if _, err := netip.ParseAddrPort(cfg.ListenAddr); err != nil {
		return nil, api.Errorf(api.KindInvalidInput, "facade",
			"listen address %q: %v", cfg.ListenAddr, err)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	n := &Netsock{
		cfg:     cfg,
		log:     log,
		metrics: &control.Metrics{},
		probes:  control.NewDebugProbes(),
	}
	if cfg.EnableDebug {
		n.probes.RegisterMetrics("metrics", n.metrics)
		n.probes.RegisterProbe("listen_addr", func() any {
			if ap, err := n.Addr(); err == nil {
				return ap.String()
			}
			return ""
		})
	}
	return n, nil
}

// Start binds the listener. Starting twice is an error.
func (n *Netsock) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started {
		return api.Errorf(api.KindInvalidInput, "facade", "already started")
	}
	ap, err := netip.ParseAddrPort(n.cfg.ListenAddr)
	if err != nil {
		return api.NewError(api.KindInvalidInput, "facade", err)
	}
	ln, err := tcp.Bind(ap)
	if err != nil {
		return err
	}
	n.ln = ln
	n.started = true
	n.metrics.MarkStarted()
	if local, err := ln.Addr(); err == nil {
		n.log.Info("listening", zap.String("addr", local.String()))
	}
	return nil
}

// Serve runs the blocking accept loop until Stop closes the listener. Each
// accepted stream is handed to the handler on its own goroutine.
func (n *Netsock) Serve(h Handler) error {
	n.mu.Lock()
	ln := n.ln
	n.mu.Unlock()
	if ln == nil {
		return api.Errorf(api.KindInvalidInput, "facade", "not started")
	}
	for {
		s, peer, err := ln.Accept()
		if n.stopping.Load() {
			if err == nil {
				s.Close()
			}
			return nil
		}
		if err != nil {
			if errors.Is(err, api.ErrClosed) {
				return nil
			}
			n.count(&n.metrics.AcceptErrors)
			n.log.Warn("accept failed", zap.Error(err))
			continue
		}
		n.count(&n.metrics.Accepted)
		n.log.Debug("accepted", zap.String("peer", peer.String()))
		if err := n.applyTimeouts(s); err != nil {
			n.log.Warn("timeout setup failed", zap.Error(err))
			s.Close()
			continue
		}
		n.wg.Add(1)
		go func() {
			defer n.wg.Done()
			defer s.Close()
			n.count(&n.metrics.OpenStreams)
			defer n.uncount(&n.metrics.OpenStreams)
			h(s, peer)
			n.count(&n.metrics.Served)
		}()
	}
}

// Stop closes the listener and waits for in-flight handlers. A blocked accept
// syscall is not interrupted by closing the handle on all platforms, so Stop
// first kicks the loop with a throwaway local connection.
func (n *Netsock) Stop() error {
	n.mu.Lock()
	ln := n.ln
	n.ln = nil
	n.started = false
	n.mu.Unlock()
	if ln == nil {
		return nil
	}
	n.stopping.Store(true)
	if ap, err := ln.Addr(); err == nil {
		if c, err := tcp.Connect(ap); err == nil {
			c.Close()
		}
	}
	err := ln.Close()
	n.wg.Wait()
	return err
}

// Addr reports the bound endpoint once started.
func (n *Netsock) Addr() (netip.AddrPort, error) {
	n.mu.Lock()
	ln := n.ln
	n.mu.Unlock()
	if ln == nil {
		return netip.AddrPort{}, api.Errorf(api.KindInvalidInput, "facade", "not started")
	}
	return ln.Addr()
}

// Metrics exposes the activity counters.
func (n *Netsock) Metrics() *control.Metrics { return n.metrics }

// Probes exposes the debug probe registry.
func (n *Netsock) Probes() *control.DebugProbes { return n.probes }

func (n *Netsock) applyTimeouts(s *tcp.Stream) error {
	if d := n.cfg.ReadTimeout; d > 0 {
		if err := s.SetReadTimeout(d); err != nil {
			return err
		}
	}
	if d := n.cfg.WriteTimeout; d > 0 {
		if err := s.SetWriteTimeout(d); err != nil {
			return err
		}
	}
	return nil
}

func (n *Netsock) count(c *atomic.Int64) {
	if n.cfg.EnableMetrics {
		c.Add(1)
	}
}

func (n *Netsock) uncount(c *atomic.Int64) {
	if n.cfg.EnableMetrics {
		c.Add(-1)
	}
}
