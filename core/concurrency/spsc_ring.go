// File: core/concurrency/spsc_ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SPSCRing is a lock-free byte ring for exactly one producer goroutine
// and one consumer goroutine. The producer alone stores posWrite, the
// consumer alone stores posRead; each side acquires the other's cursor
// before touching the shared bytes, so a successful TryRead observes
// every byte published by the writes it covers. Go's atomic Load and
// Store give the release/acquire pairing this protocol needs.

package concurrency

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/netbuff/api"
)

// Ensure compile-time interface compliance.
var _ api.ByteRing = (*SPSCRing)(nil)

// SPSCRing stores bytes in a ring of effectiveCapacity+1 slots; the
// spare slot disambiguates full from empty.
//
// TryResize, Clear and moves require quiescence: no concurrent producer
// or consumer.
type SPSCRing struct {
	buf      []byte
	capacity int // slot count, effective capacity + 1

	_        cpu.CacheLinePad // keep the cursors off each other's line
	posRead  atomic.Uint64
	_        cpu.CacheLinePad
	posWrite atomic.Uint64
	_        cpu.CacheLinePad
}

// NewSPSCRing builds a ring that can usefully hold effectiveCapacity
// bytes. Zero is allowed and performs no allocation.
func NewSPSCRing(effectiveCapacity int) *SPSCRing {
	r := &SPSCRing{capacity: effectiveCapacity + 1}
	if effectiveCapacity > 0 {
		r.buf = make([]byte, effectiveCapacity+1)
	}
	return r
}

// TryWrite appends len(p) bytes, all or nothing. Producer only.
func (r *SPSCRing) TryWrite(p []byte) bool {
	length := len(p)
	if length > r.AvailableWrite() {
		return false
	}

	w := int(r.posWrite.Load())
	consecutive := r.capacity - w
	if length <= consecutive {
		copy(r.buf[w:], p)
	} else {
		copy(r.buf[w:], p[:consecutive])
		copy(r.buf, p[consecutive:])
	}

	r.MoveWritePos(length)
	return true
}

// TryPeek fills p without consuming. Consumer only.
func (r *SPSCRing) TryPeek(p []byte) bool {
	length := len(p)
	if length > r.AvailableRead() {
		return false
	}

	pos := int(r.posRead.Load())
	consecutive := r.capacity - pos
	if length <= consecutive {
		copy(p, r.buf[pos:])
	} else {
		copy(p[:consecutive], r.buf[pos:])
		copy(p[consecutive:], r.buf)
	}
	return true
}

// TryRead fills p and consumes the bytes, all or nothing. Consumer only.
func (r *SPSCRing) TryRead(p []byte) bool {
	if !r.TryPeek(p) {
		return false
	}
	r.MoveReadPos(len(p))
	return true
}

// AvailableRead reports bytes readable before empty. Consumer only: it
// acquires the producer's cursor.
func (r *SPSCRing) AvailableRead() int {
	w := int(r.posWrite.Load())
	pos := int(r.posRead.Load())
	return (r.capacity + w - pos) % r.capacity
}

// AvailableWrite reports bytes writable before full. Producer only: it
// acquires the consumer's cursor.
func (r *SPSCRing) AvailableWrite() int {
	w := int(r.posWrite.Load())
	pos := int(r.posRead.Load())
	return r.EffectiveCapacity() - (r.capacity+w-pos)%r.capacity
}

// ConsecutiveReadLength is how many bytes the consumer can take in one
// contiguous copy before the ring wraps.
func (r *SPSCRing) ConsecutiveReadLength() int {
	return min(r.capacity-int(r.posRead.Load()), r.AvailableRead())
}

// ConsecutiveWriteLength is how many bytes the producer can place in
// one contiguous copy before the ring wraps.
func (r *SPSCRing) ConsecutiveWriteLength() int {
	return min(r.capacity-int(r.posWrite.Load()), r.AvailableWrite())
}

// ReadPos returns the consumer cursor.
func (r *SPSCRing) ReadPos() int {
	return int(r.posRead.Load())
}

// WritePos returns the producer cursor.
func (r *SPSCRing) WritePos() int {
	return int(r.posWrite.Load())
}

// MoveReadPos publishes a consumer cursor advance without checks.
// diff may be negative. Use with caution; consumer only.
func (r *SPSCRing) MoveReadPos(diff int) {
	pos := int(r.posRead.Load())
	r.posRead.Store(uint64((pos + diff + r.capacity) % r.capacity))
}

// MoveWritePos publishes a producer cursor advance without checks.
// diff may be negative. Use with caution; producer only.
func (r *SPSCRing) MoveWritePos(diff int) {
	pos := int(r.posWrite.Load())
	r.posWrite.Store(uint64((pos + diff + r.capacity) % r.capacity))
}

// MonitorUsed is an observer snapshot of the used byte count. It is not
// a synchronization point; the value may be stale by the time it
// returns. Do not gate reads or writes on it.
func (r *SPSCRing) MonitorUsed() int {
	pos := int(r.posRead.Load())
	w := int(r.posWrite.Load())
	return (r.capacity - pos + w) % r.capacity
}

// MonitorAvailable is an observer snapshot of the free byte count.
func (r *SPSCRing) MonitorAvailable() int {
	return r.EffectiveCapacity() - r.MonitorUsed()
}

// Clear drops all buffered bytes. Exclusive access only.
func (r *SPSCRing) Clear() {
	r.posRead.Store(0)
	r.posWrite.Store(0)
}

// TryResize reallocates to a new effective capacity, compacting the
// readable bytes to offset zero. Exclusive access only.
//
// Fails when the buffered bytes would not fit or when the capacity
// would not change.
func (r *SPSCRing) TryResize(newEffectiveCapacity int) bool {
	used := r.AvailableRead()
	if newEffectiveCapacity < used || newEffectiveCapacity == r.capacity-1 {
		return false
	}

	var newBuf []byte
	if newEffectiveCapacity > 0 {
		newBuf = make([]byte, newEffectiveCapacity+1)
		if used > 0 {
			pos := int(r.posRead.Load())
			consecutive := min(r.capacity-pos, used)
			copy(newBuf, r.buf[pos:pos+consecutive])
			copy(newBuf[consecutive:], r.buf[:used-consecutive])
		}
	}

	r.posRead.Store(0)
	r.posWrite.Store(uint64(used))
	r.buf = newBuf
	r.capacity = newEffectiveCapacity + 1
	return true
}

// TakeFrom moves the state of src into r and leaves src empty with
// zero effective capacity. Both rings must be quiescent.
func (r *SPSCRing) TakeFrom(src *SPSCRing) {
	r.buf = src.buf
	r.capacity = src.capacity
	r.posRead.Store(src.posRead.Load())
	r.posWrite.Store(src.posWrite.Load())

	src.buf = nil
	src.capacity = 1
	src.posRead.Store(0)
	src.posWrite.Store(0)
}

// EffectiveCapacity is the number of bytes the ring can usefully hold.
func (r *SPSCRing) EffectiveCapacity() int {
	return r.capacity - 1
}

// Capacity is the underlying slot count, one more than effective.
func (r *SPSCRing) Capacity() int {
	return r.capacity
}

// Data exposes the backing storage for zero-copy framing layered above.
func (r *SPSCRing) Data() []byte {
	return r.buf
}
