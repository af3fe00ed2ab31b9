//go:build linux
// +build linux

// Author: momentics <momentics@gmail.com>
//
// Linux raw sockaddr layout: 16-bit family tag in host byte order.

package addr

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

const (
	afInet  = uint16(unix.AF_INET)
	afInet6 = uint16(unix.AF_INET6)
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
