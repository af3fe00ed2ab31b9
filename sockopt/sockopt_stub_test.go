//go:build !linux && !windows
// +build !linux,!windows

// Author: momentics <momentics@gmail.com>

package sockopt_test

import (
	"errors"
	"testing"

	"github.com/momentics/netsock/api"
	"github.com/momentics/netsock/sockopt"
)

type rawSocket uintptr

func (r rawSocket) RawFD() uintptr { return uintptr(r) }

func TestUnsupportedKindSurvivesWrapping(t *testing.T) {
	s := rawSocket(0)
	_, err := sockopt.Get[int32](s, 0, 0)
	if !errors.Is(err, api.ErrNotSupported) {
		t.Fatalf("Get: %v, want ErrNotSupported", err)
	}
	var ae *api.Error
	if !errors.As(err, &ae) || ae.Kind != api.KindNotSupported {
		t.Fatalf("Get error kind = %v, want not supported", err)
	}
	if err := sockopt.Set(s, 0, 0, int32(1)); !errors.Is(err, api.ErrNotSupported) {
		t.Fatalf("Set: %v, want ErrNotSupported", err)
	}
}
