//go:build !linux && !windows
// +build !linux,!windows

// Author: momentics <momentics@gmail.com>

package sockopt

import (
	"unsafe"

	"github.com/momentics/netsock/api"
)

func getRaw(fd uintptr, level, opt int, p unsafe.Pointer, n uintptr) (uintptr, error) {
	return 0, api.NewError(api.KindNotSupported, "getsockopt", nil)
}

func setRaw(fd uintptr, level, opt int, p unsafe.Pointer, n uintptr) error {
	return api.NewError(api.KindNotSupported, "setsockopt", nil)
}
