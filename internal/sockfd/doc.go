// Package sockfd
// Author: momentics <momentics@gmail.com>
//
// Owned OS socket handles and the syscall surface over them. Every FD owns
// exactly one descriptor; duplication goes through the OS duplication call
// and yields a second independently owned FD, never shared ownership.
// Platform-specific implementations live in build-tag-partitioned files.
package sockfd
