//go:build windows
// +build windows

// Author: momentics <momentics@gmail.com>

package sockopt

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func getRaw(fd uintptr, level, opt int, p unsafe.Pointer, n uintptr) (uintptr, error) {
	l := int32(n)
	err := windows.Getsockopt(windows.Handle(fd), int32(level), int32(opt), (*byte)(p), &l)
	if err != nil {
		return 0, err
	}
	return uintptr(l), nil
}

func setRaw(fd uintptr, level, opt int, p unsafe.Pointer, n uintptr) error {
	return windows.Setsockopt(windows.Handle(fd), int32(level), int32(opt), (*byte)(p), int32(n))
}
