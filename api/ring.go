// File: api/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Byte ring contract for cross-thread producer/consumer transfer.

package api

// ByteRing is a bounded byte FIFO with explicit overflow handling.
//
// Implementations declare their own threading discipline; the core
// SPSC ring permits exactly one concurrent producer and one consumer.
type ByteRing interface {
	// TryWrite appends len(p) bytes, all or nothing.
	TryWrite(p []byte) bool
	// TryRead fills p and consumes the bytes, all or nothing.
	TryRead(p []byte) bool
	// TryPeek fills p without consuming.
	TryPeek(p []byte) bool

	// AvailableRead reports bytes readable before empty (consumer side).
	AvailableRead() int
	// AvailableWrite reports bytes writable before full (producer side).
	AvailableWrite() int
	// EffectiveCapacity is the number of bytes the ring can usefully hold.
	EffectiveCapacity() int
}
