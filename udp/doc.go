// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package udp provides blocking UDP datagram sockets over owned OS handles.
// Sockets carry no connection state; every send and receive names its peer.
package udp
