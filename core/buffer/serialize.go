// File: core/buffer/serialize.go
// Package buffer implements the linear serialization buffer used to
// frame typed message fields into a wire-ready byte stream.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A SerializeBuffer is write-then-read (or read-then-write), never
// interleaved; for back-and-forth traffic use core/concurrency.SPSCRing.
// There is no wrap-around: once the write cursor reaches capacity the
// buffer is full until Clear or TryResize.
//
// All multi-byte values are little-endian on the wire, so buffers are
// bit-exact across hosts. encoding/binary handles the host-order
// conversion for every fixed-width field and for each wide code unit.

package buffer

import (
	"encoding/binary"
	"math"

	"github.com/momentics/netbuff/api"
)

// PrefixWidth selects the on-wire width of a string length prefix.
type PrefixWidth int

const (
	P8  PrefixWidth = 1
	P16 PrefixWidth = 2
	P32 PrefixWidth = 4 // default
	P64 PrefixWidth = 8
)

// SerializeBuffer is a bounded linear byte buffer with one read and one
// write cursor and a sticky failure latch.
//
// Invariants: 0 <= posRead <= posWrite <= capacity. Bytes in
// [posRead, posWrite) are unread payload; [posWrite, cap) is free.
// Cursors never move backwards except through Clear and TryResize
// (which compacts the payload to offset zero).
//
// If the buffer is full it does NOT grow automatically; resize manually
// via TryResize. Single-threaded use only.
type SerializeBuffer struct {
	buf      []byte
	posRead  int
	posWrite int
	fail     bool
}

var _ api.ByteSerializer = (*SerializeBuffer)(nil)

// New creates a buffer with the given capacity. Zero is allowed and
// performs no allocation.
func New(capacity int) *SerializeBuffer {
	sb := &SerializeBuffer{}
	if capacity > 0 {
		sb.buf = make([]byte, capacity)
	}
	return sb
}

// Fail reports whether any read or write came up short since the last
// Clear. The latch is sticky: pipeline many operations, check once.
func (sb *SerializeBuffer) Fail() bool {
	return sb.fail
}

// OK is the inverse of Fail.
func (sb *SerializeBuffer) OK() bool {
	return !sb.fail
}

// TryWriteBytes appends p, all or nothing.
func (sb *SerializeBuffer) TryWriteBytes(p []byte) bool {
	if len(p) > sb.AvailableSpace() {
		sb.fail = true
		return false
	}
	copy(sb.buf[sb.posWrite:], p)
	sb.posWrite += len(p)
	return true
}

// TryPeekBytes fills p from the unread payload without consuming it.
func (sb *SerializeBuffer) TryPeekBytes(p []byte) bool {
	if len(p) > sb.UsedSpace() {
		sb.fail = true
		return false
	}
	copy(p, sb.buf[sb.posRead:])
	return true
}

// TryReadBytes fills p and consumes the bytes, all or nothing.
func (sb *SerializeBuffer) TryReadBytes(p []byte) bool {
	if !sb.TryPeekBytes(p) {
		return false
	}
	sb.posRead += len(p)
	return true
}

// grab reserves n free bytes at the write cursor, or latches failure.
func (sb *SerializeBuffer) grab(n int) []byte {
	if n > sb.AvailableSpace() {
		sb.fail = true
		return nil
	}
	out := sb.buf[sb.posWrite : sb.posWrite+n]
	sb.posWrite += n
	return out
}

// view returns n unread bytes at the read cursor without consuming.
func (sb *SerializeBuffer) view(n int) []byte {
	if n > sb.UsedSpace() {
		sb.fail = true
		return nil
	}
	return sb.buf[sb.posRead : sb.posRead+n]
}

// WriteUint8 appends one byte.
func (sb *SerializeBuffer) WriteUint8(v uint8) bool {
	if b := sb.grab(1); b != nil {
		b[0] = v
		return true
	}
	return false
}

// WriteUint16 appends v in little-endian.
func (sb *SerializeBuffer) WriteUint16(v uint16) bool {
	if b := sb.grab(2); b != nil {
		binary.LittleEndian.PutUint16(b, v)
		return true
	}
	return false
}

// WriteUint32 appends v in little-endian.
func (sb *SerializeBuffer) WriteUint32(v uint32) bool {
	if b := sb.grab(4); b != nil {
		binary.LittleEndian.PutUint32(b, v)
		return true
	}
	return false
}

// WriteUint64 appends v in little-endian.
func (sb *SerializeBuffer) WriteUint64(v uint64) bool {
	if b := sb.grab(8); b != nil {
		binary.LittleEndian.PutUint64(b, v)
		return true
	}
	return false
}

func (sb *SerializeBuffer) WriteInt8(v int8) bool   { return sb.WriteUint8(uint8(v)) }
func (sb *SerializeBuffer) WriteInt16(v int16) bool { return sb.WriteUint16(uint16(v)) }
func (sb *SerializeBuffer) WriteInt32(v int32) bool { return sb.WriteUint32(uint32(v)) }
func (sb *SerializeBuffer) WriteInt64(v int64) bool { return sb.WriteUint64(uint64(v)) }

// WriteFloat32 appends the IEEE-754 bits of v in little-endian.
func (sb *SerializeBuffer) WriteFloat32(v float32) bool {
	return sb.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends the IEEE-754 bits of v in little-endian.
func (sb *SerializeBuffer) WriteFloat64(v float64) bool {
	return sb.WriteUint64(math.Float64bits(v))
}

// WriteBool appends one byte, 1 for true.
func (sb *SerializeBuffer) WriteBool(v bool) bool {
	if v {
		return sb.WriteUint8(1)
	}
	return sb.WriteUint8(0)
}

// ReadUint8 consumes one byte.
func (sb *SerializeBuffer) ReadUint8() (uint8, bool) {
	v, ok := sb.PeekUint8()
	if ok {
		sb.posRead++
	}
	return v, ok
}

// ReadUint16 consumes a little-endian uint16.
func (sb *SerializeBuffer) ReadUint16() (uint16, bool) {
	v, ok := sb.PeekUint16()
	if ok {
		sb.posRead += 2
	}
	return v, ok
}

// ReadUint32 consumes a little-endian uint32.
func (sb *SerializeBuffer) ReadUint32() (uint32, bool) {
	v, ok := sb.PeekUint32()
	if ok {
		sb.posRead += 4
	}
	return v, ok
}

// ReadUint64 consumes a little-endian uint64.
func (sb *SerializeBuffer) ReadUint64() (uint64, bool) {
	v, ok := sb.PeekUint64()
	if ok {
		sb.posRead += 8
	}
	return v, ok
}

func (sb *SerializeBuffer) ReadInt8() (int8, bool) {
	v, ok := sb.ReadUint8()
	return int8(v), ok
}

func (sb *SerializeBuffer) ReadInt16() (int16, bool) {
	v, ok := sb.ReadUint16()
	return int16(v), ok
}

func (sb *SerializeBuffer) ReadInt32() (int32, bool) {
	v, ok := sb.ReadUint32()
	return int32(v), ok
}

func (sb *SerializeBuffer) ReadInt64() (int64, bool) {
	v, ok := sb.ReadUint64()
	return int64(v), ok
}

func (sb *SerializeBuffer) ReadFloat32() (float32, bool) {
	v, ok := sb.ReadUint32()
	return math.Float32frombits(v), ok
}

func (sb *SerializeBuffer) ReadFloat64() (float64, bool) {
	v, ok := sb.ReadUint64()
	return math.Float64frombits(v), ok
}

func (sb *SerializeBuffer) ReadBool() (bool, bool) {
	v, ok := sb.ReadUint8()
	return v != 0, ok
}

// PeekUint8 reads one byte without consuming it.
func (sb *SerializeBuffer) PeekUint8() (uint8, bool) {
	if b := sb.view(1); b != nil {
		return b[0], true
	}
	return 0, false
}

func (sb *SerializeBuffer) PeekUint16() (uint16, bool) {
	if b := sb.view(2); b != nil {
		return binary.LittleEndian.Uint16(b), true
	}
	return 0, false
}

func (sb *SerializeBuffer) PeekUint32() (uint32, bool) {
	if b := sb.view(4); b != nil {
		return binary.LittleEndian.Uint32(b), true
	}
	return 0, false
}

func (sb *SerializeBuffer) PeekUint64() (uint64, bool) {
	if b := sb.view(8); b != nil {
		return binary.LittleEndian.Uint64(b), true
	}
	return 0, false
}

// Clear resets both cursors to zero and clears the fail latch. The
// backing storage is retained.
func (sb *SerializeBuffer) Clear() {
	sb.posRead = 0
	sb.posWrite = 0
	sb.fail = false
}

// TryResize reallocates the buffer to newCapacity, compacting unread
// payload to offset zero. Fails if the payload would not fit or if the
// capacity would not change.
func (sb *SerializeBuffer) TryResize(newCapacity int) bool {
	used := sb.UsedSpace()
	if newCapacity < used || newCapacity == len(sb.buf) {
		return false
	}

	var newBuf []byte
	if newCapacity > 0 {
		newBuf = make([]byte, newCapacity)
		copy(newBuf, sb.buf[sb.posRead:sb.posWrite])
	}
	sb.buf = newBuf
	sb.posRead = 0
	sb.posWrite = used
	return true
}

// TakeFrom moves the state of src into sb and resets src to a fresh
// zero-capacity buffer.
func (sb *SerializeBuffer) TakeFrom(src *SerializeBuffer) {
	*sb = *src
	*src = SerializeBuffer{}
}

// Empty reports posRead == posWrite.
//
// Both Empty and Full can be true at once when both cursors sit at the
// end of the buffer.
func (sb *SerializeBuffer) Empty() bool {
	return sb.posRead == sb.posWrite
}

// Full reports AvailableSpace() == 0.
func (sb *SerializeBuffer) Full() bool {
	return sb.AvailableSpace() == 0
}

// UsedSpace is the number of unread payload bytes.
func (sb *SerializeBuffer) UsedSpace() int {
	return sb.posWrite - sb.posRead
}

// AvailableSpace is the number of bytes writable before full.
func (sb *SerializeBuffer) AvailableSpace() int {
	return len(sb.buf) - sb.posWrite
}

// Capacity is the total byte capacity.
func (sb *SerializeBuffer) Capacity() int {
	return len(sb.buf)
}

// Data exposes the backing storage.
func (sb *SerializeBuffer) Data() []byte {
	return sb.buf
}

// ReadPos returns the read cursor.
func (sb *SerializeBuffer) ReadPos() int {
	return sb.posRead
}

// WritePos returns the write cursor.
func (sb *SerializeBuffer) WritePos() int {
	return sb.posWrite
}

// MoveReadPos shifts the read cursor without checks. Use with caution.
func (sb *SerializeBuffer) MoveReadPos(diff int) {
	sb.posRead += diff
}

// MoveWritePos shifts the write cursor without checks. Use with caution.
func (sb *SerializeBuffer) MoveWritePos(diff int) {
	sb.posWrite += diff
}
