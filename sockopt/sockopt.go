// Author: momentics <momentics@gmail.com>

package sockopt

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/momentics/netsock/api"
)

// Socket is anything exposing a raw OS socket handle, such as tcp.Stream,
// tcp.Listener and udp.Socket.
type Socket interface {
	RawFD() uintptr
}

// Get reads a fixed-size option value. T must match the kernel's layout for
// the option byte for byte.
func Get[T any](s Socket, level, opt int) (T, error) {
	var v T
	size := unsafe.Sizeof(v)
	n, err := getRaw(s.RawFD(), level, opt, unsafe.Pointer(&v), size)
	if err != nil {
		return v, optErr("getsockopt", err)
	}
	if n != size {
		panic(fmt.Sprintf("sockopt: option %d/%d returned %d bytes into a %d-byte value",
			level, opt, n, size))
	}
	return v, nil
}

// Set writes a fixed-size option value.
func Set[T any](s Socket, level, opt int, val T) error {
	if err := setRaw(s.RawFD(), level, opt, unsafe.Pointer(&val), unsafe.Sizeof(val)); err != nil {
		return optErr("setsockopt", err)
	}
	return nil
}

// optErr wraps a raw-layer failure as a generic I/O error, except when the
// raw layer already categorized it.
func optErr(op string, err error) error {
	var ae *api.Error
	if errors.As(err, &ae) {
		return err
	}
	return api.NewError(api.KindIO, op, err)
}
