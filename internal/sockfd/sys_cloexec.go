//go:build unix && !linux && !dragonfly && !freebsd && !netbsd && !openbsd
// +build unix,!linux,!dragonfly,!freebsd,!netbsd,!openbsd

// Author: momentics <momentics@gmail.com>
//
// Socket creation on platforms without an atomic SOCK_CLOEXEC: the flag is
// set in a separate fcntl after the descriptor exists.

package sockfd

import "golang.org/x/sys/unix"

func sysSocket(family, typ int) (int, error) {
	fd, err := unix.Socket(family, typ, 0)
	if err != nil {
		return -1, err
	}
	unix.CloseOnExec(fd)
	return fd, nil
}

func sysAccept(fd int) (int, unix.Sockaddr, error) {
	nfd, sa, err := unix.Accept(fd)
	if err != nil {
		return -1, nil, err
	}
	unix.CloseOnExec(nfd)
	return nfd, sa, nil
}
