// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package tcp provides blocking TCP stream and listener wrappers over owned
// OS socket handles. One wrapper call maps to exactly one syscall; there is
// no internal buffering, retry or connection state beyond the handle itself.
package tcp
