package api_test

import (
	"errors"
	"syscall"
	"testing"

	"github.com/momentics/netsock/api"
)

func TestErrorIsSentinel(t *testing.T) {
	err := api.NewError(api.KindTimeout, "read", syscall.EAGAIN)
	if !errors.Is(err, api.ErrTimeout) {
		t.Fatalf("timeout error does not match ErrTimeout: %v", err)
	}
	if errors.Is(err, api.ErrClosed) {
		t.Fatalf("timeout error must not match ErrClosed")
	}
	if !api.IsTimeout(err) {
		t.Fatal("IsTimeout returned false for timeout error")
	}
}

func TestErrorUnwrapsErrno(t *testing.T) {
	err := api.NewError(api.KindIO, "write", syscall.EPIPE)
	if !errors.Is(err, syscall.EPIPE) {
		t.Fatalf("expected EPIPE in chain, got %v", err)
	}
	var se *api.Error
	if !errors.As(err, &se) || se.Op != "write" {
		t.Fatalf("errors.As failed: %v", err)
	}
}

func TestErrorfAndKindString(t *testing.T) {
	err := api.Errorf(api.KindInvalidInput, "decode", "family %d not supported", 17)
	if !api.IsInvalidInput(err) {
		t.Fatalf("expected invalid-input kind: %v", err)
	}
	if api.KindResolver.String() != "resolver" {
		t.Fatalf("unexpected kind string: %q", api.KindResolver.String())
	}
}
