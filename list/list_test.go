// File: list/list_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	Hook
	v int
}

func newItem(v int) *item {
	it := &item{v: v}
	it.Bind(it)
	return it
}

func collect(l *List) []int {
	var out []int
	l.Do(func(h *Hook) {
		out = append(out, h.Elem().(*item).v)
	})
	return out
}

func TestPushPopOrder(t *testing.T) {
	l := New()
	for i := 1; i <= 3; i++ {
		l.PushBack(&newItem(i).Hook)
	}
	l.PushFront(&newItem(0).Hook)

	require.Equal(t, []int{0, 1, 2, 3}, collect(l))
	require.Equal(t, 4, l.Len())

	require.Equal(t, 0, l.PopFront().Elem().(*item).v)
	require.Equal(t, 3, l.PopBack().Elem().(*item).v)
	require.Equal(t, []int{1, 2}, collect(l))
}

func TestInsertRelative(t *testing.T) {
	l := New()
	a, c := newItem(1), newItem(3)
	l.PushBack(&a.Hook)
	l.PushBack(&c.Hook)

	b := newItem(2)
	l.InsertBefore(&b.Hook, &c.Hook)
	d := newItem(4)
	l.InsertAfter(&d.Hook, &c.Hook)

	require.Equal(t, []int{1, 2, 3, 4}, collect(l))
}

func TestRemoveIdempotent(t *testing.T) {
	l := New()
	a := newItem(1)
	l.PushBack(&a.Hook)
	require.True(t, a.Linked())

	l.Remove(&a.Hook)
	require.False(t, a.Linked())
	require.True(t, l.Empty())

	l.Remove(&a.Hook) // second remove is a no-op
	require.Equal(t, 0, l.Len())
}

func TestZeroValueList(t *testing.T) {
	var l List
	require.True(t, l.Empty())
	require.Nil(t, l.Front())

	a := newItem(9)
	l.PushBack(&a.Hook)
	require.Equal(t, 1, l.Len())
	require.Equal(t, 9, l.Front().Elem().(*item).v)
}

func TestDoWithRemoval(t *testing.T) {
	l := New()
	for i := 0; i < 6; i++ {
		l.PushBack(&newItem(i).Hook)
	}
	// drop the even elements during traversal
	l.Do(func(h *Hook) {
		if h.Elem().(*item).v%2 == 0 {
			l.Remove(h)
		}
	})
	require.Equal(t, []int{1, 3, 5}, collect(l))
}

func TestClear(t *testing.T) {
	l := New()
	hooks := make([]*item, 4)
	for i := range hooks {
		hooks[i] = newItem(i)
		l.PushBack(&hooks[i].Hook)
	}
	l.Clear()
	require.True(t, l.Empty())
	for _, h := range hooks {
		require.False(t, h.Linked())
	}
}
