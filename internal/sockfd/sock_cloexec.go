//go:build linux || dragonfly || freebsd || netbsd || openbsd
// +build linux dragonfly freebsd netbsd openbsd

// Author: momentics <momentics@gmail.com>
//
// Socket creation on platforms where the kernel sets the close-on-exec flag
// atomically via SOCK_CLOEXEC and accept4.

package sockfd

import "golang.org/x/sys/unix"

func sysSocket(family, typ int) (int, error) {
	return unix.Socket(family, typ|unix.SOCK_CLOEXEC, 0)
}

func sysAccept(fd int) (int, unix.Sockaddr, error) {
	return unix.Accept4(fd, unix.SOCK_CLOEXEC)
}
