// File: core/concurrency/ringqueue.go
// Package concurrency implements the bounded FIFO containers that move
// framed bytes and typed values between pipeline stages.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// RingQueue is the single-threaded handoff between stages where the
// element type is known. It never grows on its own; a full queue
// rejects pushes until the caller resizes.

package concurrency

import "github.com/momentics/netbuff/api"

// Ensure compile-time interface compliance.
var _ api.Queue[any] = (*RingQueue[any])(nil)

// RingQueue is a bounded ring of T with one always-empty slot so that
// full and empty are distinguishable by the two indices alone.
//
// Invariants: readIdx and writeIdx are in [0, cap+1); occupied slots
// hold live values, every other slot is zeroed so the GC can reclaim
// whatever the values referenced.
type RingQueue[T any] struct {
	elems []T // len == capacity+1, nil when capacity == 0

	capPlusOne int
	readIdx    int
	writeIdx   int
}

// NewRingQueue builds a queue holding up to capacity elements. Zero is
// allowed and performs no allocation.
func NewRingQueue[T any](capacity int) *RingQueue[T] {
	q := &RingQueue[T]{capPlusOne: capacity + 1}
	if capacity > 0 {
		q.elems = make([]T, capacity+1)
	}
	return q
}

// moveIdx advances idx by diff slots with wrap-around. diff may be
// negative; the +capPlusOne normalizes before the modulus.
func (q *RingQueue[T]) moveIdx(idx, diff int) int {
	return (idx + diff + q.capPlusOne) % q.capPlusOne
}

// TryPush appends a value; returns false if full.
func (q *RingQueue[T]) TryPush(v T) bool {
	if q.Full() {
		return false
	}
	q.elems[q.writeIdx] = v
	q.writeIdx = q.moveIdx(q.writeIdx, +1)
	return true
}

// TryEmplace constructs the element in place via mk; returns false if
// full without calling mk.
func (q *RingQueue[T]) TryEmplace(mk func() T) bool {
	if q.Full() {
		return false
	}
	q.elems[q.writeIdx] = mk()
	q.writeIdx = q.moveIdx(q.writeIdx, +1)
	return true
}

// Front returns the oldest element in place. Must not be called on an
// empty queue.
func (q *RingQueue[T]) Front() *T {
	return &q.elems[q.readIdx]
}

// Back returns the newest element in place. Must not be called on an
// empty queue.
func (q *RingQueue[T]) Back() *T {
	return &q.elems[q.moveIdx(q.writeIdx, -1)]
}

// Pop drops the oldest element, zeroing its slot. Must not be called on
// an empty queue.
func (q *RingQueue[T]) Pop() {
	var zero T
	q.elems[q.readIdx] = zero
	q.readIdx = q.moveIdx(q.readIdx, +1)
}

// Len is the number of stored elements.
func (q *RingQueue[T]) Len() int {
	return (q.writeIdx - q.readIdx + q.capPlusOne) % q.capPlusOne
}

// Cap is the maximum number of elements.
func (q *RingQueue[T]) Cap() int {
	return q.capPlusOne - 1
}

// Empty reports Len() == 0.
func (q *RingQueue[T]) Empty() bool {
	return q.readIdx == q.writeIdx
}

// Full reports Len() == Cap().
func (q *RingQueue[T]) Full() bool {
	return q.moveIdx(q.writeIdx, +1) == q.readIdx
}

// TryResizeBuffer reserves space for newCapacity elements.
//
// Fails only when newCapacity < Len(). Succeeds as a no-op when
// newCapacity <= Cap(): the buffer is grow-only. Shrink explicitly via
// ShrinkToFit.
func (q *RingQueue[T]) TryResizeBuffer(newCapacity int) bool {
	if newCapacity < q.Len() {
		return false
	}
	if newCapacity <= q.Cap() {
		return true
	}
	q.resize(newCapacity)
	return true
}

// ShrinkToFit reallocates to capacity == Len() unless already full.
func (q *RingQueue[T]) ShrinkToFit() {
	if !q.Full() {
		q.resize(q.Len())
	}
}

// resize moves the live elements in FIFO order to the head of a fresh
// buffer. After it returns, readIdx == 0 and writeIdx == old Len().
func (q *RingQueue[T]) resize(newCapacity int) {
	if newCapacity == 0 {
		q.elems = nil
		q.capPlusOne = 1
		q.readIdx = 0
		q.writeIdx = 0
		return
	}

	size := q.Len()
	elems := make([]T, newCapacity+1)
	for newIdx, oldIdx := 0, q.readIdx; newIdx < size; newIdx, oldIdx = newIdx+1, q.moveIdx(oldIdx, +1) {
		elems[newIdx] = q.elems[oldIdx]
	}

	q.elems = elems
	q.capPlusOne = newCapacity + 1
	q.readIdx = 0
	q.writeIdx = size
}

// Swap exchanges the whole state of two queues in O(1).
func (q *RingQueue[T]) Swap(other *RingQueue[T]) {
	q.elems, other.elems = other.elems, q.elems
	q.capPlusOne, other.capPlusOne = other.capPlusOne, q.capPlusOne
	q.readIdx, other.readIdx = other.readIdx, q.readIdx
	q.writeIdx, other.writeIdx = other.writeIdx, q.writeIdx
}

// TakeFrom moves the state of src into q and leaves src empty with zero
// capacity, the move-construction contract.
func (q *RingQueue[T]) TakeFrom(src *RingQueue[T]) {
	fresh := RingQueue[T]{capPlusOne: 1}
	*q = *src
	*src = fresh
}
