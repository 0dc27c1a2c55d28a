// File: core/buffer/serialize_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTripMixedFields(t *testing.T) {
	sb := New(64)

	require.True(t, sb.WriteInt8(-7))
	require.True(t, sb.WriteUint32(0xDEADBEEF))
	require.True(t, sb.WriteFloat64(3.125))
	require.True(t, sb.WriteString("hi"))

	want := []byte{
		0xF9,
		0xEF, 0xBE, 0xAD, 0xDE,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x09, 0x40,
		0x02, 0x00, 0x00, 0x00, 0x68, 0x69,
	}
	require.Equal(t, want, sb.Data()[:sb.WritePos()])

	i, ok := sb.ReadInt8()
	require.True(t, ok)
	require.EqualValues(t, -7, i)

	u, ok := sb.ReadUint32()
	require.True(t, ok)
	require.EqualValues(t, 0xDEADBEEF, u)

	f, ok := sb.ReadFloat64()
	require.True(t, ok)
	require.Equal(t, 3.125, f)

	s, ok := sb.ReadString()
	require.True(t, ok)
	require.Equal(t, "hi", s)

	require.True(t, sb.Empty())
	require.False(t, sb.Fail())
}

func TestStickyFail(t *testing.T) {
	sb := New(4)

	require.True(t, sb.WriteUint32(1))
	require.False(t, sb.WriteUint8(2)) // full
	require.True(t, sb.Fail())

	// latch survives successful operations
	v, ok := sb.ReadUint32()
	require.True(t, ok)
	require.EqualValues(t, 1, v)
	require.True(t, sb.Fail())

	sb.Clear()
	require.False(t, sb.Fail())
	require.Equal(t, 0, sb.ReadPos())
	require.Equal(t, 0, sb.WritePos())
}

func TestShortReadDoesNotCommit(t *testing.T) {
	sb := New(16)
	require.True(t, sb.WriteUint16(0x1234))

	// asking for more than is present must not advance the cursor
	if _, ok := sb.ReadUint64(); ok {
		t.Fatal("short read succeeded")
	}
	require.True(t, sb.Fail())
	require.Equal(t, 0, sb.ReadPos())

	v, ok := sb.ReadUint16()
	require.True(t, ok)
	require.EqualValues(t, 0x1234, v)
}

func TestStringShortPayload(t *testing.T) {
	sb := New(16)
	// prefix says 200 code units, payload absent
	require.True(t, sb.WriteUint32(200))

	_, ok := sb.ReadString()
	require.False(t, ok)
	require.True(t, sb.Fail())
	require.Equal(t, 0, sb.ReadPos(), "failed string read must not advance")
}

func TestPeekDoesNotAdvance(t *testing.T) {
	sb := New(32)
	require.True(t, sb.WriteString("peekaboo"))

	s1, ok := sb.PeekString()
	require.True(t, ok)
	s2, ok := sb.PeekString()
	require.True(t, ok)
	require.Equal(t, s1, s2)

	s3, ok := sb.ReadString()
	require.True(t, ok)
	require.Equal(t, "peekaboo", s3)
	require.True(t, sb.Empty())
}

func TestPrefixWidths(t *testing.T) {
	for _, w := range []PrefixWidth{P8, P16, P32, P64} {
		sb := New(64)
		require.True(t, sb.WriteStringN("abc", w))
		require.Equal(t, int(w)+3, sb.WritePos())

		s, ok := sb.ReadStringN(w)
		require.True(t, ok)
		require.Equal(t, "abc", s)
	}
}

func TestPrefixOverflowFails(t *testing.T) {
	sb := New(1024)
	long := string(make([]byte, 300))

	require.False(t, sb.WriteStringN(long, P8), "300 bytes do not fit an 8-bit prefix")
	require.True(t, sb.Fail())
	require.Equal(t, 0, sb.WritePos(), "overflowing write must not commit")

	sb.Clear()
	require.True(t, sb.WriteStringN(long, P16))

	sb.Clear()
	units := make([]uint16, 256)
	require.False(t, sb.WriteUTF16N(units, P8))
	require.False(t, sb.WriteUTF32N(make([]rune, 256), P8))
	require.Equal(t, 0, sb.WritePos())
}

func TestUTF16RoundTrip(t *testing.T) {
	sb := New(64)
	units := []uint16{0x0068, 0x0069, 0x2603} // "hi☃"
	require.True(t, sb.WriteUTF16(units))

	// each code unit little-endian after the 4-byte prefix
	want := []byte{0x03, 0x00, 0x00, 0x00, 0x68, 0x00, 0x69, 0x00, 0x03, 0x26}
	require.Equal(t, want, sb.Data()[:sb.WritePos()])

	got, ok := sb.ReadUTF16()
	require.True(t, ok)
	require.Equal(t, units, got)
	require.False(t, sb.Fail())
}

func TestUTF32RoundTrip(t *testing.T) {
	sb := New(64)
	units := []rune("héllo✓")
	require.True(t, sb.WriteUTF32N(units, P16))

	got, ok := sb.ReadUTF32N(P16)
	require.True(t, ok)
	require.Equal(t, units, got)
	require.True(t, sb.Empty())
}

func TestCString(t *testing.T) {
	sb := New(32)
	src := []byte("net\x00garbage")
	require.True(t, sb.WriteCString(src))

	// identical on-wire format as WriteString("net")
	require.Equal(t, []byte{0x03, 0x00, 0x00, 0x00, 'n', 'e', 't'}, sb.Data()[:sb.WritePos()])

	dst := make([]byte, 8)
	n, ok := sb.ReadCString(dst)
	require.True(t, ok)
	require.Equal(t, 3, n)
	require.Equal(t, byte(0), dst[3])
	require.True(t, bytes.Equal(dst[:3], []byte("net")))
}

func TestTryResizeCompacts(t *testing.T) {
	sb := New(8)
	require.True(t, sb.WriteUint32(0xAABBCCDD))
	v, ok := sb.ReadUint16()
	require.True(t, ok)
	require.EqualValues(t, 0xCCDD, v)

	// 2 unread bytes; resize below that fails
	require.False(t, sb.TryResize(1))
	// same capacity fails
	require.False(t, sb.TryResize(8))

	require.True(t, sb.TryResize(4))
	require.Equal(t, 4, sb.Capacity())
	require.Equal(t, 0, sb.ReadPos())
	require.Equal(t, 2, sb.WritePos())

	rest, ok := sb.ReadUint16()
	require.True(t, ok)
	require.EqualValues(t, 0xAABB, rest)
}

func TestZeroCapacity(t *testing.T) {
	sb := New(0)
	require.Equal(t, 0, sb.Capacity())
	require.True(t, sb.Empty())
	require.True(t, sb.Full())

	require.False(t, sb.WriteUint8(1))
	require.True(t, sb.Fail())

	sb.Clear()
	require.True(t, sb.TryResize(8))
	require.True(t, sb.WriteUint8(1))
}

func TestWriteBytesAllOrNothing(t *testing.T) {
	sb := New(4)
	require.False(t, sb.TryWriteBytes([]byte("12345")))
	require.Equal(t, 0, sb.WritePos(), "failed write must not commit")
	require.True(t, sb.TryWriteBytes([]byte("1234")))
	require.True(t, sb.Full())
}
