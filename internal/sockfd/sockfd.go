// Author: momentics <momentics@gmail.com>
//
// Platform-independent types shared by all sockfd implementations.

package sockfd

// Type selects the socket type when creating a descriptor.
type Type int

// How selects which direction of a connected stream to shut down.
type How int

const (
	ShutRead How = iota
	ShutWrite
	ShutBoth
)

// Which selects the timeout option being accessed.
type Which int

const (
	ReadTimeout Which = iota
	WriteTimeout
)
