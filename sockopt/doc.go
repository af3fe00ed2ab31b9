// Package sockopt
// Author: momentics <momentics@gmail.com>
//
// Generic get/set of fixed-size socket options addressed by numeric level and
// option codes. The caller supplies a value type whose in-memory layout
// matches the kernel's expected option size exactly; a size mismatch reported
// by the kernel on read is a programming error and panics.
package sockopt
