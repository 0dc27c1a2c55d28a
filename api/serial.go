// File: api/serial.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Raw byte surface of the serialization buffer.

package api

// ByteSerializer is the untyped portion of the serialization buffer
// contract: bulk byte moves plus the sticky failure latch. The typed
// little-endian accessors are concrete methods of core/buffer.
type ByteSerializer interface {
	TryWriteBytes(p []byte) bool
	TryReadBytes(p []byte) bool
	TryPeekBytes(p []byte) bool

	// Fail reports whether any read or write came up short since the
	// last Clear.
	Fail() bool
	// Clear resets both cursors to zero and clears the fail latch.
	Clear()

	UsedSpace() int
	AvailableSpace() int
	Capacity() int
}
