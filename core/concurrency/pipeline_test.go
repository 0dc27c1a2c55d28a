// File: core/concurrency/pipeline_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// End-to-end shape of the intended data flow: a producer frames typed
// messages into bytes and streams them through the SPSC ring; the
// consumer reassembles frames into a serialization buffer, decodes
// fields into pool-allocated messages and hands them back.

package concurrency_test

import (
	"encoding/binary"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/momentics/netbuff/core/buffer"
	"github.com/momentics/netbuff/core/concurrency"
	"github.com/momentics/netbuff/pool"
)

type event struct {
	seq  uint32
	note string
}

func TestMessagePipeline(t *testing.T) {
	const count = 500

	ring := concurrency.NewSPSCRing(256)
	msgs := pool.NewLockFree[event](32)
	parsed := concurrency.NewRingQueue[*event](count)

	go func() {
		sb := buffer.New(128)
		for seq := uint32(0); seq < count; seq++ {
			sb.Clear()
			sb.WriteUint32(seq)
			sb.WriteString("evt")

			// frame = 2-byte length + payload
			frame := make([]byte, 2+sb.UsedSpace())
			binary.LittleEndian.PutUint16(frame, uint16(sb.UsedSpace()))
			copy(frame[2:], sb.Data()[:sb.WritePos()])

			for !ring.TryWrite(frame) {
				runtime.Gosched()
			}
		}
	}()

	sb := buffer.New(128)
	hdr := make([]byte, 2)
	for got := 0; got < count; {
		if !ring.TryRead(hdr) {
			runtime.Gosched()
			continue
		}
		payload := make([]byte, binary.LittleEndian.Uint16(hdr))
		for !ring.TryRead(payload) {
			runtime.Gosched()
		}

		sb.Clear()
		require.True(t, sb.TryWriteBytes(payload))

		ev := msgs.Acquire()
		var ok bool
		ev.seq, ok = sb.ReadUint32()
		require.True(t, ok)
		ev.note, ok = sb.ReadString()
		require.True(t, ok)
		require.True(t, sb.Empty())

		require.True(t, parsed.TryPush(ev))
		got++
	}

	for want := uint32(0); want < count; want++ {
		ev := *parsed.Front()
		require.Equal(t, want, ev.seq)
		require.Equal(t, "evt", ev.note)
		parsed.Pop()
		msgs.Release(ev)
	}
	require.True(t, parsed.Empty())
	require.Equal(t, 0, msgs.UsedSlots())
}
