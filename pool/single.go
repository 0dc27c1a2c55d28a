// File: pool/single.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool is the single-threaded sibling of LockFreePool: same slot and
// block layout, plain pointer freelist, no atomics and no tag. Use it
// for per-goroutine pools where the CAS traffic would be pure overhead.

package pool

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/momentics/netbuff/api"
)

// Ensure compile-time interface compliance.
var _ api.ObjectPool[int] = (*Pool[int])(nil)

// Pool is a single-threaded object pool of T slots.
type Pool[T any] struct {
	freeHead *node[T]

	blocks         []block[T]
	nextBlockNodes int

	capacity int
	used     int

	totalAcquired int64
	totalReleased int64

	persist bool
	seed    func() T

	errSink   io.Writer
	integrity bool
}

// New builds a single-threaded pool with space for capacity slots
// reserved up front. Zero defers the first block to the first Acquire.
//
// The LockFreePool options apply; mode semantics are identical, only
// the threading discipline differs.
func New[T any](capacity int, opts ...Option[T]) *Pool[T] {
	o := applyOptions(opts)
	p := &Pool[T]{
		persist:   o.persist,
		seed:      o.seed,
		errSink:   o.errSink,
		integrity: api.IntegrityCheck,
	}
	p.nextBlockNodes = capacity
	if p.nextBlockNodes == 0 {
		p.nextBlockNodes = initBlockNodes
	}
	if capacity != 0 {
		p.addNewBlock()
	}
	return p
}

// SetErrSink replaces the diagnostic sink.
func (p *Pool[T]) SetErrSink(w io.Writer) {
	p.errSink = w
}

// Acquire pops a slot off the freelist, growing by a block when empty.
func (p *Pool[T]) Acquire() *T {
	if p.freeHead == nil {
		p.addNewBlock()
	}

	n := p.freeHead
	p.freeHead = n.next
	p.used++
	p.totalAcquired++

	if p.persist {
		if !n.constructed {
			n.data = p.construct()
			n.constructed = true
		}
	} else {
		n.data = p.construct()
	}
	return &n.data
}

func (p *Pool[T]) construct() T {
	if p.seed != nil {
		return p.seed()
	}
	var zero T
	return zero
}

// Release returns a slot to the freelist.
func (p *Pool[T]) Release(obj *T) {
	n := nodeOf(obj)
	if p.integrity && n.pool != unsafe.Pointer(p) {
		panic(fmt.Sprintf("pool: Release called with object that is not in object pool at 0x%x",
			uintptr(unsafe.Pointer(p))))
	}

	if !p.persist {
		var zero T
		n.data = zero
		n.constructed = false
	}

	n.next = p.freeHead
	p.freeHead = n
	p.used--
	p.totalReleased++
}

func (p *Pool[T]) addNewBlock() {
	count := p.nextBlockNodes
	nodes := make([]node[T], count)
	for i := 0; i < count-1; i++ {
		nodes[i].next = &nodes[i+1]
		nodes[i].pool = unsafe.Pointer(p)
	}
	nodes[count-1].pool = unsafe.Pointer(p)
	nodes[count-1].next = p.freeHead

	p.blocks = append(p.blocks, block[T]{nodes: nodes})
	p.freeHead = &nodes[0]

	p.capacity += count
	p.nextBlockNodes = p.capacity
}

// Capacity is the total slot count across all blocks.
func (p *Pool[T]) Capacity() int { return p.capacity }

// UsedSlots is the number of slots currently handed out.
func (p *Pool[T]) UsedSlots() int { return p.used }

// UnusedSlots is Capacity minus UsedSlots.
func (p *Pool[T]) UnusedSlots() int { return p.capacity - p.used }

// Stats exposes accounting counters for observability.
func (p *Pool[T]) Stats() api.PoolStats {
	return api.PoolStats{
		Capacity:      int64(p.capacity),
		Used:          int64(p.used),
		Blocks:        int64(len(p.blocks)),
		TotalAcquired: p.totalAcquired,
		TotalReleased: p.totalReleased,
	}
}

// Close tears the pool down, reporting outstanding slots as a single
// leak line to the error sink.
func (p *Pool[T]) Close() {
	if p.used > 0 && p.integrity && p.errSink != nil {
		fmt.Fprintf(p.errSink, "[LEAK] %d nodes are not returned to object pool at 0x%x\n",
			p.used, uintptr(unsafe.Pointer(p)))
	}
	p.freeHead = nil
	p.blocks = nil
	p.capacity = 0
	p.used = 0
}
