// File: list/list.go
// Package list implements an intrusive doubly-linked list with a
// sentinel node: the links live inside the elements, so insertion and
// removal are O(1) and allocation-free.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Embed a Hook in the element type and hand the same Hook to the list:
//
//	type session struct {
//		list.Hook
//		conn net.Conn
//	}
//
// An element may sit in at most one list per Hook. Unlike
// container/list there is no per-insert node allocation, which is the
// point: these lists track pooled objects that must not allocate.

package list

// Hook is the intrusive link pair. Its zero value is ready for use.
type Hook struct {
	prev, next *Hook
	elem       any
}

// Bind associates the hook with its owner. Call once before first
// insertion, typically right after constructing the element.
func (h *Hook) Bind(elem any) {
	h.elem = elem
}

// Elem returns the bound owner.
func (h *Hook) Elem() any {
	return h.elem
}

// Linked reports whether the hook currently sits in a list.
func (h *Hook) Linked() bool {
	return h.next != nil
}

// List is an intrusive doubly-linked list with a sentinel root, so
// every insert and remove is the same two pointer swings with no
// special cases at the ends.
type List struct {
	root Hook
	size int
}

// New returns an empty list.
func New() *List {
	l := &List{}
	l.root.prev = &l.root
	l.root.next = &l.root
	return l
}

// lazyInit supports the zero value.
func (l *List) lazyInit() {
	if l.root.next == nil {
		l.root.prev = &l.root
		l.root.next = &l.root
	}
}

// Len is the number of linked elements.
func (l *List) Len() int {
	return l.size
}

// Empty reports Len() == 0.
func (l *List) Empty() bool {
	return l.size == 0
}

// Front returns the first hook, or nil when empty.
func (l *List) Front() *Hook {
	if l.size == 0 {
		return nil
	}
	return l.root.next
}

// Back returns the last hook, or nil when empty.
func (l *List) Back() *Hook {
	if l.size == 0 {
		return nil
	}
	return l.root.prev
}

// insertBetween links h after prev.
func (l *List) insertBetween(h, prev, next *Hook) {
	h.prev = prev
	h.next = next
	prev.next = h
	next.prev = h
	l.size++
}

// PushBack appends h.
func (l *List) PushBack(h *Hook) {
	l.lazyInit()
	l.insertBetween(h, l.root.prev, &l.root)
}

// PushFront prepends h.
func (l *List) PushFront(h *Hook) {
	l.lazyInit()
	l.insertBetween(h, &l.root, l.root.next)
}

// InsertBefore links h immediately before pos, which must be linked in
// this list.
func (l *List) InsertBefore(h, pos *Hook) {
	l.insertBetween(h, pos.prev, pos)
}

// InsertAfter links h immediately after pos, which must be linked in
// this list.
func (l *List) InsertAfter(h, pos *Hook) {
	l.insertBetween(h, pos, pos.next)
}

// Remove unlinks h. Removing an unlinked hook is a no-op.
func (l *List) Remove(h *Hook) {
	if h.next == nil {
		return
	}
	h.prev.next = h.next
	h.next.prev = h.prev
	h.prev = nil
	h.next = nil
	l.size--
}

// PopFront unlinks and returns the first hook, or nil when empty.
func (l *List) PopFront() *Hook {
	h := l.Front()
	if h != nil {
		l.Remove(h)
	}
	return h
}

// PopBack unlinks and returns the last hook, or nil when empty.
func (l *List) PopBack() *Hook {
	h := l.Back()
	if h != nil {
		l.Remove(h)
	}
	return h
}

// Clear unlinks every hook. O(n): each hook is reset so Linked()
// reports false afterwards.
func (l *List) Clear() {
	for !l.Empty() {
		l.PopFront()
	}
}

// Do calls fn for each hook in order. fn may remove the hook it
// receives but must not mutate the list otherwise.
func (l *List) Do(fn func(*Hook)) {
	for h := l.root.next; h != nil && h != &l.root; {
		next := h.next
		fn(h)
		h = next
	}
}
