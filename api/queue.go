// File: api/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded typed FIFO contract.

package api

// Queue is a bounded FIFO of T values.
type Queue[T any] interface {
	// TryPush appends a value; returns false if full.
	TryPush(v T) bool
	// Front returns the oldest element in place. Must not be called on
	// an empty queue.
	Front() *T
	// Pop drops the oldest element. Must not be called on an empty queue.
	Pop()

	Len() int
	Cap() int
	Empty() bool
	Full() bool
}
