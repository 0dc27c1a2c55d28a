// File: pool/single_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingleThreadedRoundTrip(t *testing.T) {
	p := New[message](0)
	require.Equal(t, 0, p.Capacity())

	a := p.Acquire()
	b := p.Acquire()
	require.Equal(t, 16, p.Capacity())
	require.Equal(t, 2, p.UsedSlots())
	require.NotSame(t, a, b)

	p.Release(a)
	p.Release(b)
	require.Equal(t, 0, p.UsedSlots())
	require.Equal(t, p.Capacity(), p.UnusedSlots())
}

func TestSingleThreadedGrowth(t *testing.T) {
	p := New[int](4)
	held := make([]*int, 0, 16)
	for i := 0; i < 5; i++ {
		held = append(held, p.Acquire())
	}
	require.Equal(t, 8, p.Capacity(), "block sizes double from the reserved capacity")

	for _, v := range held {
		p.Release(v)
	}
	require.EqualValues(t, 2, p.Stats().Blocks)
}

func TestSingleThreadedPersist(t *testing.T) {
	p := New[message](1, WithPersist[message]())
	m := p.Acquire()
	m.id = 7
	p.Release(m)

	m2 := p.Acquire()
	require.Same(t, m, m2)
	require.Equal(t, 7, m2.id)
	p.Release(m2)
}

func TestSingleThreadedReset(t *testing.T) {
	p := New[message](1)
	m := p.Acquire()
	m.id = 7
	p.Release(m)

	m2 := p.Acquire()
	require.Equal(t, 0, m2.id, "reset mode zeroes the slot on release")
	p.Release(m2)
}

func TestSingleThreadedForeign(t *testing.T) {
	a := New[int](2)
	b := New[int](2)
	v := a.Acquire()
	require.Panics(t, func() { b.Release(v) })
}

func TestSingleThreadedLeak(t *testing.T) {
	var sink bytes.Buffer
	p := New[int](2, WithErrSink[int](&sink))
	_ = p.Acquire()
	_ = p.Acquire()
	p.Close()
	require.Contains(t, sink.String(), "[LEAK] 2 nodes")
}
