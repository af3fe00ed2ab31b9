//go:build !linux && !windows && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd
// +build !linux,!windows,!darwin,!dragonfly,!freebsd,!netbsd,!openbsd

// Author: momentics <momentics@gmail.com>
//
// Fallback layout for platforms without native socket support. Keeps the
// package self-consistent so Encode/Decode round-trips still hold.

package addr

import "encoding/binary"

const (
	afInet  = uint16(2)
	afInet6 = uint16(10)
)

func rawFamily(b []byte) (uint16, bool) {
	if len(b) < 2 {
		return 0, false
	}
	return binary.NativeEndian.Uint16(b[:2]), true
}

func putRawFamily(b []byte, fam uint16) {
	binary.NativeEndian.PutUint16(b[:2], fam)
}
