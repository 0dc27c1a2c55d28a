// File: pool/lockfree.go
// Package pool implements slot-recycling object pools for message
// objects crossing the I/O / application seam.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LockFreePool hands out slots from a freelist threaded through the
// slots themselves. The list head is a tagged-pointer word in a single
// atomic: the tag is bumped on every pop, so a CAS that observed an old
// head fails even when the same node address comes back around (the ABA
// hazard). Block allocation is the only blocking path.

package pool

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/momentics/netbuff/api"
	"github.com/momentics/netbuff/tagptr"
)

// initBlockNodes is the node count of the first block when no capacity
// was reserved up front.
const initBlockNodes = 16

// node is one pool slot. While free, next threads the freelist; pool
// backs the integrity check; constructed tracks whether data was ever
// seeded (persist mode only).
//
// next and data are distinct fields even in reset mode: Go cannot
// overlay them the way a union would, and the pointer must stay typed
// for the GC anyway.
type node[T any] struct {
	next        *node[T]
	pool        unsafe.Pointer
	constructed bool
	data        T
}

// block keeps one allocation of nodes alive. Nodes are never freed
// individually; the whole block goes when the pool closes.
type block[T any] struct {
	nodes []node[T]
}

// Ensure compile-time interface compliance.
var _ api.ObjectPool[int] = (*LockFreePool[int])(nil)

// LockFreePool is a lock-free, multi-producer multi-consumer object
// pool of T slots with geometric block growth.
//
// Two release modes:
//
//   - reset-on-release (default): Release zeroes the slot and Acquire
//     re-seeds it, so every Acquire observes a fresh value.
//   - persist-on-release (WithPersist): the value survives Release and
//     a later Acquire that draws the same slot does NOT re-seed it.
//     Callers reset state through a method of T. Use this for
//     expensive-to-construct payloads such as pre-reserved buffers.
type LockFreePool[T any] struct {
	head atomic.Uint64 // tagptr.Word over *node[T]
	tags tagptr.Config

	blockMu        sync.Mutex
	blocks         []block[T]
	nextBlockNodes int

	capacity atomic.Int64
	used     atomic.Int64

	totalAcquired atomic.Int64
	totalReleased atomic.Int64

	persist bool
	seed    func() T

	errSink   io.Writer
	integrity bool
}

// Option configures a pool of either threading discipline.
type Option[T any] func(*options[T])

type options[T any] struct {
	persist bool
	seed    func() T
	errSink io.Writer
}

// WithPersist switches the pool to persist-on-release mode.
func WithPersist[T any]() Option[T] {
	return func(o *options[T]) { o.persist = true }
}

// WithSeed sets the constructor run when a slot needs a fresh value.
func WithSeed[T any](seed func() T) Option[T] {
	return func(o *options[T]) { o.seed = seed }
}

// WithErrSink sets the diagnostic sink for leak reports. See ZapSink
// for an adapter onto a structured logger.
func WithErrSink[T any](w io.Writer) Option[T] {
	return func(o *options[T]) { o.errSink = w }
}

func applyOptions[T any](opts []Option[T]) options[T] {
	var o options[T]
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewLockFree builds a pool with space for capacity slots reserved up
// front. Zero defers the first block to the first Acquire.
func NewLockFree[T any](capacity int, opts ...Option[T]) *LockFreePool[T] {
	o := applyOptions(opts)
	p := &LockFreePool[T]{
		tags:      tagptr.NewConfig(api.VirtualAddressBits, unsafe.Alignof(node[T]{})),
		integrity: api.IntegrityCheck,
		persist:   o.persist,
		seed:      o.seed,
		errSink:   o.errSink,
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
func (p *LockFreePool[T]) SetErrSink(w io.Writer) {
	p.errSink = w
}

// Acquire pops a slot off the freelist, growing the pool by a new block
// when none is available.
func (p *LockFreePool[T]) Acquire() *T {
	cur := tagptr.Word(p.head.Load())
	for {
		// no unused node available: allocate a block and retry
		for p.tags.IsNil(cur) {
			p.addNewBlock()
			cur = tagptr.Word(p.head.Load())
		}

		n := (*node[T])(p.tags.Ptr(cur))

		// bump the tag on pop so a stalled CAS cannot succeed against a
		// relinked head that happens to reuse this node
		next := p.tags.Pack(unsafe.Pointer(n.next), p.tags.Tag(cur)+1)
		if p.head.CompareAndSwap(uint64(cur), uint64(next)) {
			p.used.Add(1)
			p.totalAcquired.Add(1)

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
		cur = tagptr.Word(p.head.Load())
	}
}

func (p *LockFreePool[T]) construct() T {
	if p.seed != nil {
		return p.seed()
	}
	var zero T
	return zero
}

// Release returns a slot to the freelist.
//
// obj must come from this pool's Acquire; with api.IntegrityCheck
// enabled a foreign object panics.
func (p *LockFreePool[T]) Release(obj *T) {
	n := nodeOf(obj)
	if p.integrity && n.pool != unsafe.Pointer(p) {
		panic(fmt.Sprintf("pool: Release called with object that is not in object pool at 0x%x", p.addr()))
	}

	if !p.persist {
		var zero T
		n.data = zero
		n.constructed = false
	}

	old := tagptr.Word(p.head.Load())
	for {
		// the tag carries over on push; only pops bump it
		n.next = (*node[T])(p.tags.Ptr(old))
		newHead := p.tags.Pack(unsafe.Pointer(n), p.tags.Tag(old))
		if p.head.CompareAndSwap(uint64(old), uint64(newHead)) {
			break
		}
		old = tagptr.Word(p.head.Load())
	}

	p.used.Add(-1)
	p.totalReleased.Add(1)
}

// nodeOf recovers the owning node from a data pointer by offset.
func nodeOf[T any](obj *T) *node[T] {
	return (*node[T])(unsafe.Pointer(uintptr(unsafe.Pointer(obj)) - unsafe.Offsetof(node[T]{}.data)))
}

// addNewBlock allocates the next block and splices its node chain onto
// the freelist. Serialized by blockMu; concurrent losers of an Acquire
// race re-check under the lock so only one block is added per drought.
func (p *LockFreePool[T]) addNewBlock() {
	p.blockMu.Lock()
	defer p.blockMu.Unlock()

	// double check: another goroutine may have refilled the list
	if !p.tags.IsNil(tagptr.Word(p.head.Load())) {
		return
	}

	count := p.nextBlockNodes
	nodes := make([]node[T], count)
	for i := 0; i < count-1; i++ {
		nodes[i].next = &nodes[i+1]
		nodes[i].pool = unsafe.Pointer(p)
	}
	nodes[count-1].pool = unsafe.Pointer(p)

	p.blocks = append(p.blocks, block[T]{nodes: nodes})

	// splice: last node takes the current head, then the chain's first
	// node becomes the head with the tag carried over
	last := &nodes[count-1]
	old := tagptr.Word(p.head.Load())
	for {
		last.next = (*node[T])(p.tags.Ptr(old))
		newHead := p.tags.Pack(unsafe.Pointer(&nodes[0]), p.tags.Tag(old))
		if p.head.CompareAndSwap(uint64(old), uint64(newHead)) {
			break
		}
		old = tagptr.Word(p.head.Load())
	}

	// next block doubles the total capacity
	newCap := p.capacity.Add(int64(count))
	p.nextBlockNodes = int(newCap)
}

// Capacity is the total slot count across all blocks.
func (p *LockFreePool[T]) Capacity() int {
	return int(p.capacity.Load())
}

// UsedSlots is the number of slots currently handed out.
func (p *LockFreePool[T]) UsedSlots() int {
	return int(p.used.Load())
}

// UnusedSlots is Capacity minus UsedSlots.
func (p *LockFreePool[T]) UnusedSlots() int {
	return p.Capacity() - p.UsedSlots()
}

// Stats exposes accounting counters for observability.
func (p *LockFreePool[T]) Stats() api.PoolStats {
	p.blockMu.Lock()
	blocks := int64(len(p.blocks))
	p.blockMu.Unlock()

	return api.PoolStats{
		Capacity:      p.capacity.Load(),
		Used:          p.used.Load(),
		Blocks:        blocks,
		TotalAcquired: p.totalAcquired.Load(),
		TotalReleased: p.totalReleased.Load(),
	}
}

// Close tears the pool down. Exclusive access only: no Acquire or
// Release may be in flight.
//
// Outstanding slots are reported as a single leak line to the error
// sink; the pool is unusable afterwards.
func (p *LockFreePool[T]) Close() {
	if used := p.UsedSlots(); used > 0 && p.integrity && p.errSink != nil {
		fmt.Fprintf(p.errSink, "[LEAK] %d nodes are not returned to object pool at 0x%x\n", used, p.addr())
	}

	p.head.Store(0)
	p.blockMu.Lock()
	p.blocks = nil
	p.blockMu.Unlock()
	p.capacity.Store(0)
	p.used.Store(0)
}

func (p *LockFreePool[T]) addr() uintptr {
	return uintptr(unsafe.Pointer(p))
}
