// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package addr converts between the operating system's raw binary sockaddr
// layouts and netip.AddrPort endpoints. Only the IPv4 and IPv6 families are
// accepted; anything else is rejected as invalid input. All decoding is
// explicit and bounds-checked, never a reinterpretation of raw memory.
package addr
