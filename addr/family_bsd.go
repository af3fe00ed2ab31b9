//go:build darwin || dragonfly || freebsd || netbsd || openbsd
// +build darwin dragonfly freebsd netbsd openbsd

// Author: momentics <momentics@gmail.com>
//
// BSD raw sockaddr layout: length byte followed by an 8-bit family tag.

package addr

import "golang.org/x/sys/unix"

const (
	afInet  = uint16(unix.AF_INET)
	afInet6 = uint16(unix.AF_INET6)
)

func rawFamily(b []byte) (uint16, bool) {
	if len(b) < 2 {
		return 0, false
	}
	return uint16(b[1]), true
}

func putRawFamily(b []byte, fam uint16) {
	b[0] = byte(len(b))
	b[1] = byte(fam)
}
